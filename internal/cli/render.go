package cli

import (
	"os"
	"strings"

	"github.com/ppiankov/fbreport/internal/render"
	"github.com/spf13/cobra"
)

var (
	renderFormat    string
	renderOutput    string
	renderXref      string
	renderThreshold string
	renderEffort    string
	renderLenient   bool
	renderStyle     string
	renderWidth     int
)

var renderCmd = &cobra.Command{
	Use:   "render <report.xml|dir>...",
	Short: "Render FindBugs XML reports",
	Long: `Render turns one or more FindBugs XML reports into a readable document
with an introduction, a summary, bugs by class and bugs by category.

Directories are scanned for bug report XML files. With several reports,
--output names a directory and each report is written to <name>.<ext>.
Output is written only after the whole report was generated.

Formats:
  ` + strings.Join(render.Formats, ", ") + `

Example:
  fbreport render findbugs.xml
  fbreport render findbugs.xml -o report.md --xref ../xref
  fbreport render build/reports --format html -o site/
  fbreport render findbugs.xml --format terminal --style dark`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "",
		"output format (default from config: markdown)")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "",
		"write output to file or directory (default: stdout)")
	renderCmd.Flags().StringVar(&renderXref, "xref", "",
		"base path of cross-referenced source pages")
	renderCmd.Flags().StringVar(&renderThreshold, "threshold", "",
		"bug priority threshold echoed in the report: low, medium, high")
	renderCmd.Flags().StringVar(&renderEffort, "effort", "",
		"analysis effort echoed in the report: min, less, default, more, max")
	renderCmd.Flags().BoolVar(&renderLenient, "lenient", false,
		"render reports with unresolved categories or bug patterns")
	renderCmd.Flags().StringVar(&renderStyle, "style", "auto",
		"terminal format style: auto, dark, light, notty")
	renderCmd.Flags().IntVar(&renderWidth, "width", 0,
		"terminal format wrap width (default 80)")
}

func runRender(cmd *cobra.Command, args []string) error {
	return RunPipeline(args, renderPipelineConfig(), os.Stdout)
}

// renderPipelineConfig merges the render flags over the loaded config.
func renderPipelineConfig() PipelineConfig {
	pcfg := PipelineConfig{
		Format:    cfg.Format,
		Output:    renderOutput,
		XrefPath:  cfg.XrefPath,
		Threshold: cfg.Threshold,
		Effort:    cfg.Effort,
		Lenient:   !cfg.Strict || renderLenient,
		Terminal: render.TerminalOptions{
			Style: renderStyle,
			Width: renderWidth,
		},
	}

	if renderFormat != "" {
		pcfg.Format = renderFormat
	}
	if renderXref != "" {
		pcfg.XrefPath = renderXref
	}
	if renderThreshold != "" {
		pcfg.Threshold = renderThreshold
	}
	if renderEffort != "" {
		pcfg.Effort = renderEffort
	}
	if pcfg.Format == render.FormatTerminal && !isTerminalWriter(os.Stdout) && renderOutput == "" && renderStyle == "auto" {
		pcfg.Terminal.Style = "notty"
	}

	return pcfg
}
