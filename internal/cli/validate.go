package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/ppiankov/fbreport/internal/collector"
	"github.com/ppiankov/fbreport/internal/validator"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <report.xml>",
	Short: "Check that a FindBugs XML report can be rendered",
	Long: `Validate parses a FindBugs XML report and checks its cross references:
every bug instance must name a declared category and bug pattern, and have
exactly one primary class.

Returns exit 0 if valid, exit 2 if invalid with details on stderr.

Example:
  fbreport validate findbugs.xml`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	return validateReport(args[0], os.Stdout, os.Stderr)
}

func validateReport(path string, stdout, stderr io.Writer) error {
	valid := color.New(color.FgGreen, color.Bold).SprintFunc()
	invalid := color.New(color.FgRed, color.Bold).SprintFunc()

	bc, err := collector.New(collector.Config{Logger: logger}).LoadFile(path)
	if err != nil {
		var mre *collector.MalformedReportError
		if !errors.As(err, &mre) {
			return err
		}
		fmt.Fprintf(stderr, "%s %v\n", invalid("INVALID:"), err)
		return &ValidationError{Message: err.Error()}
	}

	if err := validator.New().Validate(bc); err != nil {
		var verr *validator.ValidationError
		if errors.As(err, &verr) {
			verr.Source = path
		}
		fmt.Fprintf(stderr, "%s %v\n", invalid("INVALID:"), err)
		return &ValidationError{Message: err.Error()}
	}

	fmt.Fprintf(stdout, "%s %s (%d bug instances, %d categories, %d bug patterns)\n",
		valid("VALID:"), path, len(bc.Instances), len(bc.Categories), len(bc.Patterns))
	return nil
}
