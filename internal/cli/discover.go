package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	json "github.com/json-iterator/go"
	"github.com/ppiankov/fbreport/internal/discovery"
	"github.com/spf13/cobra"
)

var discoverJSON bool

var discoverCmd = &cobra.Command{
	Use:   "discover [dir]",
	Short: "Find bug reports in a project tree",
	Long: `Discover looks for FindBugs reports in the conventional output locations
of Maven, Gradle and Ant builds and suggests the render command to use.

Only the known locations are read; use 'fbreport render <dir>' to scan a
whole directory.

Example:
  fbreport discover
  fbreport discover ../service --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().BoolVar(&discoverJSON, "json", false,
		"output as JSON")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return &ValidationError{Message: fmt.Sprintf("not a directory: %s", root)}
	}

	plan := discovery.Default().Discover(root)
	logVerbose("Discovered %d report(s), %d valid", plan.TotalFound, plan.TotalValid)

	if discoverJSON {
		data, err := json.MarshalIndent(plan, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(os.Stdout, "%s\n", data)
		return err
	}
	printDiscoveryPlan(os.Stdout, plan)
	return nil
}

func printDiscoveryPlan(w io.Writer, plan *discovery.DiscoveryPlan) {
	fmt.Fprintf(w, "Build layouts in %s:\n", plan.Root)
	for _, b := range plan.Builds {
		status := "-"
		if b.Exists {
			status = "found"
		}
		fmt.Fprintf(w, "  %-8s %-14s %s\n", b.Build, b.Marker, status)
	}

	fmt.Fprintln(w)
	if plan.TotalFound == 0 {
		fmt.Fprintln(w, "No bug reports found.")
		return
	}

	fmt.Fprintf(w, "Reports (%d found, %d valid):\n", plan.TotalFound, plan.TotalValid)
	for _, r := range plan.Reports {
		mark := "ok"
		if !r.Valid {
			mark = "not a bug report"
		}
		fmt.Fprintf(w, "  [%s] %s (%s)\n", r.Build, r.Path, mark)
	}

	valid := plan.ValidReports()
	if len(valid) == 0 {
		return
	}
	suggestion := "fbreport render " + strings.Join(valid, " ")
	for _, r := range plan.Reports {
		if r.Valid && r.XrefPath != "" {
			suggestion += " --xref " + r.XrefPath
			break
		}
	}
	if len(valid) > 1 {
		suggestion += " -o reports/"
	}
	fmt.Fprintf(w, "\nNext step:\n  %s\n", suggestion)
}
