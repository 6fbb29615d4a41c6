package tui

import (
	"fmt"
	"strings"

	"github.com/ppiankov/fbreport/internal/aggregator"
)

// detailHeight is the fixed number of lines for the detail panel.
const detailHeight = 5

// renderDetail produces the detail view for a selected bug.
func renderDetail(bug *aggregator.Row, width int) string {
	if bug == nil {
		return styleDetailPanel.Width(width).Render("No bug selected")
	}

	var b strings.Builder

	sevStyled := severityStyle(bug.Severity).Render(strings.ToUpper(bug.Priority))
	b.WriteString(fmt.Sprintf("%s  %s / %s\n", sevStyled, bug.Category, bug.Pattern))

	location := "Class: " + bug.Class
	if bug.Lines != "" {
		location += "  Lines: " + bug.Lines
	}
	b.WriteString(location + "\n")

	if bug.Message != "" {
		b.WriteString(bug.Message + "\n")
	}
	b.WriteString("Type: " + bug.Type)

	return styleDetailPanel.Width(width).Render(b.String())
}
