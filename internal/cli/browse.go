package cli

import (
	"os"

	"github.com/ppiankov/fbreport/internal/aggregator"
	"github.com/ppiankov/fbreport/internal/tui"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse <report.xml>",
	Short: "Browse the bugs of a report interactively",
	Long: `Browse opens an interactive bug list for a FindBugs XML report.

Keys: / search, f filter by category, s change sort, c copy, esc clear,
q quit. Requires a terminal.

Example:
  fbreport browse findbugs.xml`,
	Args: cobra.ExactArgs(1),
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	if !isTerminalWriter(os.Stdout) || !isTerminalReader(os.Stdin) {
		return &ValidationError{Message: "browse requires an interactive terminal (try: fbreport render --format terminal)"}
	}

	reports, err := loadReports(args)
	if err != nil {
		return err
	}

	return tui.Run(aggregator.Build(reports[0].Collection), reports[0].Path)
}
