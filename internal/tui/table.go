package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/ppiankov/fbreport/internal/aggregator"
)

var tableColumns = []table.Column{
	{Title: "Priority", Width: 8},
	{Title: "Category", Width: 16},
	{Title: "Class", Width: 36},
	{Title: "Lines", Width: 9},
	{Title: "Bug Pattern", Width: 40},
}

// buildRows converts bug rows to table rows.
func buildRows(bugs []aggregator.Row) []table.Row {
	rows := make([]table.Row, 0, len(bugs))
	for _, bug := range bugs {
		rows = append(rows, table.Row{
			bug.Priority,
			truncate(bug.Category, tableColumns[1].Width),
			truncate(bug.Class, tableColumns[2].Width),
			bug.Lines,
			truncate(bug.Pattern, tableColumns[4].Width),
		})
	}
	return rows
}

// truncate shortens s to maxWidth display cells.
func truncate(s string, maxWidth int) string {
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	const ellipsis = "..."
	if maxWidth <= len(ellipsis) {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, ellipsis)
}

// newTable creates a bubbles table with standard columns and styling.
func newTable(rows []table.Row, height int) table.Model {
	t := table.New(
		table.WithColumns(tableColumns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorBorder).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(colorAccent).
		Bold(false)
	t.SetStyles(s)

	return t
}
