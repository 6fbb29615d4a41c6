package aggregator

import (
	"sort"
	"strings"

	"github.com/ppiankov/fbreport/internal/models"
	"github.com/ppiankov/fbreport/internal/xref"
)

// Severity levels used by flattened rows
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityLow    = "low"
)

// Row is one bug instance flattened with its resolved labels. Rows feed
// the browser and the export formats.
type Row struct {
	Type        string `json:"type"`
	Pattern     string `json:"pattern"`
	Category    string `json:"category"`
	CategoryRaw string `json:"category_code"`
	Priority    string `json:"priority"`
	Severity    string `json:"severity"`
	Class       string `json:"class"`
	Package     string `json:"package"`
	Start       string `json:"start,omitempty"`
	End         string `json:"end,omitempty"`
	Lines       string `json:"lines,omitempty"`
	Message     string `json:"message"`
}

// Flatten converts every instance of the index into a Row, in document
// order. Unresolved categories and patterns fall back to their codes.
func Flatten(x *Index) []Row {
	instances := x.Collection().Instances
	rows := make([]Row, 0, len(instances))

	for i := range instances {
		inst := &instances[i]
		class, _ := inst.PrimaryClass()
		start, end := inst.Lines()

		category, _ := x.CategoryDescription(inst.Category)
		pattern := inst.Type
		if p, ok := x.Pattern(inst.Type); ok && p.ShortDescription != "" {
			pattern = p.ShortDescription
		}

		rows = append(rows, Row{
			Type:        inst.Type,
			Pattern:     pattern,
			Category:    category,
			CategoryRaw: inst.Category,
			Priority:    models.PriorityLabel(inst.Priority),
			Severity:    mapPrioritySeverity(inst.Priority),
			Class:       class,
			Package:     packageOf(class),
			Start:       start,
			End:         end,
			Lines:       xref.LineText(start, end),
			Message:     inst.LongMessage,
		})
	}

	return rows
}

// SortRows orders rows by priority (High first), then class, then start
// line. The sort is stable so equal rows keep document order.
func SortRows(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		ri, rj := severityRank(rows[i].Severity), severityRank(rows[j].Severity)
		if ri != rj {
			return ri < rj
		}
		if rows[i].Class != rows[j].Class {
			return rows[i].Class < rows[j].Class
		}
		return models.Attr(rows[i].Start).Int() < models.Attr(rows[j].Start).Int()
	})
}

// CountBySeverity tallies rows per severity level.
func CountBySeverity(rows []Row) map[string]int {
	counts := make(map[string]int)
	for _, r := range rows {
		counts[r.Severity]++
	}
	return counts
}

func mapPrioritySeverity(priority string) string {
	switch priority {
	case models.PriorityHigh:
		return SeverityHigh
	case models.PriorityMedium:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

func severityRank(severity string) int {
	switch severity {
	case SeverityHigh:
		return 0
	case SeverityMedium:
		return 1
	default:
		return 2
	}
}

// packageOf returns the package part of a fully qualified class name.
func packageOf(class string) string {
	if i := strings.LastIndex(class, "."); i >= 0 {
		return class[:i]
	}
	return ""
}
