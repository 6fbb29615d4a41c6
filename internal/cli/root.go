package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/ppiankov/fbreport/internal/collector"
	"github.com/ppiankov/fbreport/internal/config"
	"github.com/ppiankov/fbreport/internal/logging"
	"github.com/ppiankov/fbreport/internal/validator"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

const (
	ExitOK           = 0 // Success
	ExitPolicyFail   = 1 // Report violates the policy
	ExitInvalidInput = 2 // Malformed report, unresolved references or bad settings
	ExitRuntimeError = 3 // I/O, permissions, or runtime error
)

var (
	// Global config instance
	cfg *config.Config

	// Logger for the current run; nil until the root command starts
	logger *zap.Logger

	// buildVersion is set by SetVersion
	buildVersion = "dev"

	// Global flags
	configFile string
	verbose    bool
	debug      bool
	logFormat  string
	logFile    string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "fbreport",
	Short: "fbreport - FindBugs XML report renderer",
	Long: `fbreport turns the XML output of the FindBugs static analyzer into a
readable report: an introduction, a summary, bugs by class and bugs by category.

It provides:
- Markdown, HTML, plain text and terminal output
- Links from bug rows to cross-referenced source pages
- An interactive browser for the bug list
- A policy gate and csv/json/sarif export for CI pipelines

Quick start:
  fbreport render findbugs.xml -o report.md
  fbreport render build/reports --format html -o site/
  fbreport check findbugs.xml
  fbreport browse findbugs.xml`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadFromFile(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Override config with flags if provided
		if verbose {
			cfg.Verbose = true
		}
		if debug {
			cfg.Debug = true
		}
		if logFormat != "" {
			cfg.LogFormat = logFormat
		}
		if logFile != "" {
			cfg.LogFile = logFile
		}
		// Report settings are validated by each command after its own flags
		if err := cfg.ValidateLogging(); err != nil {
			return err
		}

		var runID string
		logger, runID = logging.WithRunID(newLogger(cfg, os.Stderr))
		logDebug("starting %s (run %s)", cmd.CommandPath(), runID)

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logging.Sync(logger)
	},
}

// Execute runs the root command and exits with the code HandleError picks
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		if logger != nil {
			logError("%v", err)
			_ = logging.Sync(logger)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
	os.Exit(HandleError(err))
}

// SetVersion records the build version shown by the version command
func SetVersion(v string) {
	buildVersion = v
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default: ./fbreport.yaml or ~/fbreport.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"debug mode (very verbose)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"log encoding: console or json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"also write JSON logs to this rotating file")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// versionCmd shows version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("fbreport %s\n", buildVersion)
		fmt.Println("FindBugs XML report renderer")
	},
}

func newLogger(c *config.Config, w *os.File) *zap.Logger {
	return logging.New(logging.Options{
		Level:  logging.Level(c.Verbose, c.Debug),
		Format: c.LogFormat,
		Color:  isTerminalWriter(w) && !color.NoColor,
		File:   c.LogFile,
	}, zapcore.Lock(w))
}

// HandleError determines the appropriate exit code for an error
func HandleError(err error) int {
	if err == nil {
		return ExitOK
	}

	var (
		validationErr *ValidationError
		thresholdErr  *ThresholdExceededError
		configErr     *config.Error
		malformedErr  *collector.MalformedReportError
		referenceErr  *validator.ValidationError
	)
	switch {
	case errors.As(err, &thresholdErr):
		return ExitPolicyFail
	case errors.As(err, &validationErr),
		errors.As(err, &configErr),
		errors.As(err, &malformedErr),
		errors.As(err, &referenceErr):
		return ExitInvalidInput
	default:
		return ExitRuntimeError
	}
}

// ValidationError represents invalid command input
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ThresholdExceededError represents a policy failure
type ThresholdExceededError struct {
	Violations int
	BugCount   int
}

func (e *ThresholdExceededError) Error() string {
	return fmt.Sprintf("report violates policy: %d violation(s) across %d bugs", e.Violations, e.BugCount)
}

func isTerminalWriter(w io.Writer) bool {
	switch v := w.(type) {
	case *os.File:
		return term.IsTerminal(int(v.Fd()))
	default:
		return false
	}
}

func isTerminalReader(r io.Reader) bool {
	switch v := r.(type) {
	case *os.File:
		return term.IsTerminal(int(v.Fd()))
	default:
		return false
	}
}

func log() *zap.SugaredLogger {
	if logger == nil {
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}

// logVerbose logs a message shown with --verbose
func logVerbose(format string, args ...interface{}) {
	log().Infof(format, args...)
}

// logDebug logs a message shown with --debug
func logDebug(format string, args ...interface{}) {
	log().Debugf(format, args...)
}

// logError logs an error message
func logError(format string, args ...interface{}) {
	log().Errorf(format, args...)
}

// logWarn logs a warning
func logWarn(format string, args ...interface{}) {
	log().Warnf(format, args...)
}
