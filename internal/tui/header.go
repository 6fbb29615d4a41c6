package tui

import (
	"fmt"
	"strings"

	"github.com/ppiankov/fbreport/internal/aggregator"
	"github.com/ppiankov/fbreport/internal/models"
)

// headerHeight is the number of terminal lines the header occupies.
const headerHeight = 5

// renderHeader produces the header string from the report summary.
func renderHeader(source string, summary models.FindBugsSummary, bySeverity map[string]int, top []aggregator.Hotspot, width int) string {
	var b strings.Builder

	// Line 1: title and source
	b.WriteString("FindBugs Report")
	if source != "" {
		b.WriteString("  " + source)
	}
	b.WriteString("\n")

	// Line 2: totals
	b.WriteString(fmt.Sprintf("Bugs: %d  Classes: %d  Packages: %d  Lines: %d",
		summary.TotalBugs.Int(), summary.TotalClasses.Int(), summary.NumPackages.Int(), summary.TotalSize.Int()))
	b.WriteString("\n")

	// Line 3: priority breakdown
	sevParts := make([]string, 0, 3)
	for _, sev := range []string{aggregator.SeverityHigh, aggregator.SeverityMedium, aggregator.SeverityLow} {
		if count := bySeverity[sev]; count > 0 {
			label := fmt.Sprintf("%s:%d", strings.ToUpper(sev[:1]), count)
			sevParts = append(sevParts, severityStyle(sev).Render(label))
		}
	}
	if len(sevParts) > 0 {
		b.WriteString(strings.Join(sevParts, "  "))
	}
	b.WriteString("\n")

	// Line 4: top hotspot
	if len(top) > 0 {
		b.WriteString("Next: " + top[0].Action)
	}

	return styleHeader.Width(width).Render(b.String())
}
