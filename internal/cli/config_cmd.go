package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ppiankov/fbreport/internal/config"
	"github.com/spf13/cobra"
)

var (
	configWrite bool
	configForce bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print or write a sample configuration file",
	Long: `Config prints a commented sample fbreport.yaml. With --write the sample
is saved to the user config location ($XDG_CONFIG_HOME/fbreport/fbreport.yaml
or ~/fbreport.yaml).

Example:
  fbreport config > fbreport.yaml
  fbreport config --write`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&configWrite, "write", false,
		"write the sample to the user config location")
	configCmd.Flags().BoolVar(&configForce, "force", false,
		"overwrite an existing config file")
}

func runConfig(cmd *cobra.Command, args []string) error {
	if !configWrite {
		_, err := fmt.Fprint(os.Stdout, config.GenerateSampleConfig())
		return err
	}
	return writeSampleConfig(config.ConfigPath(), configForce, os.Stdout)
}

func writeSampleConfig(path string, force bool, stdout io.Writer) error {
	if _, err := os.Stat(path); err == nil && !force {
		return &ValidationError{Message: fmt.Sprintf("config file already exists: %s (use --force to overwrite)", path)}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(config.GenerateSampleConfig()), 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Fprintf(stdout, "Wrote %s\n", path)
	return nil
}
