package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ppiankov/fbreport/internal/render"
	"github.com/spf13/viper"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Accepted values of the analyzer settings echoed into the report
var (
	Thresholds = []string{"low", "medium", "high"}
	Efforts    = []string{"min", "less", "default", "more", "max"}
	LogFormats = []string{"console", "json"}
)

// Config holds all configuration for fbreport
type Config struct {
	// Bug priority threshold the analyzer ran with (low, medium, high)
	Threshold string `mapstructure:"threshold"`

	// Analysis effort the analyzer ran with (min, less, default, more, max)
	Effort string `mapstructure:"effort"`

	// Base of the cross-referenced source pages; empty disables line links
	XrefPath string `mapstructure:"xref_path"`

	// Output format
	Format string `mapstructure:"format"`

	// Strict rejects reports with unresolved category or pattern references
	Strict bool `mapstructure:"strict"`

	// Verbose output
	Verbose bool `mapstructure:"verbose"`

	// Debug mode
	Debug bool `mapstructure:"debug"`

	// Log encoding (console, json)
	LogFormat string `mapstructure:"log_format"`

	// Optional rotating log file
	LogFile string `mapstructure:"log_file"`
}

// Error reports a setting outside its accepted values
type Error struct {
	Key     string
	Value   string
	Allowed []string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s %q (must be one of: %s)", e.Key, e.Value, strings.Join(e.Allowed, ", "))
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Threshold: "medium",
		Effort:    "default",
		Format:    render.FormatMarkdown,
		Strict:    true,
		LogFormat: "console",
	}
}

// Load loads configuration with the following precedence (lowest to highest):
// 1. Default values
// 2. Config file (./fbreport.yaml, ~/fbreport.yaml or $XDG_CONFIG_HOME/fbreport/fbreport.yaml)
// 3. Environment variables (FBREPORT_*)
// 4. CLI flags (handled by caller)
func Load() (*Config, error) {
	return LoadFromFile("")
}

// LoadFromFile loads configuration from a specific file path
// If path is empty, it searches for config in standard locations.
// Values are validated by callers after flag overrides.
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("threshold", defaults.Threshold)
	v.SetDefault("effort", defaults.Effort)
	v.SetDefault("xref_path", defaults.XrefPath)
	v.SetDefault("format", defaults.Format)
	v.SetDefault("strict", defaults.Strict)
	v.SetDefault("verbose", defaults.Verbose)
	v.SetDefault("debug", defaults.Debug)
	v.SetDefault("log_format", defaults.LogFormat)
	v.SetDefault("log_file", defaults.LogFile)

	v.SetConfigName("fbreport")
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")

		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}

		if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
			v.AddConfigPath(filepath.Join(xdgConfig, "fbreport"))
		}
	}

	v.SetEnvPrefix("FBREPORT")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// ConfigPath returns the path new config files are written to
func ConfigPath() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "fbreport", "fbreport.yaml")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, "fbreport.yaml")
	}
	return "fbreport.yaml"
}

// Validate checks if the configuration is valid. Threshold and effort are
// normalized to lower case.
func (c *Config) Validate() error {
	if !render.IsValidFormat(c.Format) {
		return &Error{Key: "format", Value: c.Format, Allowed: render.Formats}
	}

	threshold, err := ValidateThreshold(c.Threshold)
	if err != nil {
		return err
	}
	c.Threshold = threshold

	effort, err := ValidateEffort(c.Effort)
	if err != nil {
		return err
	}
	c.Effort = effort

	return c.ValidateLogging()
}

// ValidateLogging checks only the logging settings, which every command
// needs before it runs.
func (c *Config) ValidateLogging() error {
	if c.LogFormat != "" && !slices.Contains(LogFormats, c.LogFormat) {
		return &Error{Key: "log_format", Value: c.LogFormat, Allowed: LogFormats}
	}
	return nil
}

// ValidateThreshold checks a bug priority threshold case-insensitively and
// returns it lower-cased.
func ValidateThreshold(s string) (string, error) {
	return oneOf("threshold", s, Thresholds)
}

// ValidateEffort checks an analysis effort case-insensitively and returns
// it lower-cased.
func ValidateEffort(s string) (string, error) {
	return oneOf("effort", s, Efforts)
}

func oneOf(key, value string, allowed []string) (string, error) {
	folded := cases.Lower(language.Und).String(strings.TrimSpace(value))
	if !slices.Contains(allowed, folded) {
		return "", &Error{Key: key, Value: value, Allowed: allowed}
	}
	return folded, nil
}

// GenerateSampleConfig generates a sample configuration file content
func GenerateSampleConfig() string {
	return `# fbreport configuration
# Save this file as ./fbreport.yaml, ~/fbreport.yaml or
# $XDG_CONFIG_HOME/fbreport/fbreport.yaml

# Bug priority threshold the analyzer ran with: low, medium or high
threshold: medium

# Analysis effort the analyzer ran with: min, less, default, more or max
effort: default

# Base URL or path of cross-referenced source pages (leave empty to
# disable line links)
# xref_path: ../xref

# Output format: markdown, html, text, terminal, events-json or events-msgpack
format: markdown

# Reject reports that reference unknown bug categories or patterns
strict: true

# Enable verbose output
verbose: false

# Enable debug mode
debug: false

# Log encoding: console or json
log_format: console

# Write logs to a rotating file as well
# log_file: fbreport.log
`
}
