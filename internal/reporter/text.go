package reporter

import (
	"fmt"
	"io"

	"github.com/ppiankov/fbreport/internal/aggregator"
	"github.com/ppiankov/fbreport/internal/models"
	"github.com/ppiankov/fbreport/internal/narrative"
)

// TextReporter prints a short console overview of a bug report
type TextReporter struct {
	writer   io.Writer
	hotspots int
}

// NewTextReporter creates a new text reporter. At most hotspots groups
// are listed under recommended actions.
func NewTextReporter(writer io.Writer, hotspots int) *TextReporter {
	return &TextReporter{
		writer:   writer,
		hotspots: hotspots,
	}
}

// Generate writes the overview for idx
func (r *TextReporter) Generate(idx *aggregator.Index, opts Options) error {
	r.printHeader()

	version := opts.Version
	if version == "" {
		version = idx.Collection().Version
	}
	r.printf("FindBugs version: %s\n", version)
	if opts.Effort != "" {
		r.printf("Effort: %s\n", lower(opts.Effort))
	}
	if opts.Threshold != "" {
		r.printf("Bug Priority Threshold: %s\n", lower(opts.Threshold))
	}
	r.printf("\n")

	r.printf("%s\n\n", narrative.Summarize(idx.Summary()).Plain())

	rows := aggregator.Flatten(idx)
	if len(rows) == 0 {
		return nil
	}

	r.printPriorities(rows)
	r.printCategories(idx)
	r.printHotspots(aggregator.TopHotspots(aggregator.Hotspots(rows), r.hotspots))

	return nil
}

// printHeader prints the report header
func (r *TextReporter) printHeader() {
	r.printf("╔════════════════════════════════════════════╗\n")
	r.printf("║              FindBugs Report               ║\n")
	r.printf("╚════════════════════════════════════════════╝\n\n")
}

// printPriorities prints instance counts per priority, High first
func (r *TextReporter) printPriorities(rows []aggregator.Row) {
	counts := aggregator.CountBySeverity(rows)

	r.printf("Bugs by Priority:\n")
	r.printf("--------------------------------------------------\n")
	for _, p := range []struct {
		label    string
		severity string
	}{
		{models.LabelHigh, aggregator.SeverityHigh},
		{models.LabelMedium, aggregator.SeverityMedium},
		{models.LabelLow, aggregator.SeverityLow},
	} {
		if n := counts[p.severity]; n > 0 {
			r.printf("  %-8s %d\n", p.label+":", n)
		}
	}
	r.printf("\n")
}

// printCategories prints instance counts per category in document order
func (r *TextReporter) printCategories(idx *aggregator.Index) {
	r.printf("Bugs by Category:\n")
	r.printf("--------------------------------------------------\n")
	for _, c := range idx.Categories() {
		if n := idx.CategoryCount(c.Code); n > 0 {
			r.printf("  %s: %d\n", c.Description, n)
		}
	}
	r.printf("\n")
}

// printHotspots prints the recommended actions section
func (r *TextReporter) printHotspots(hotspots []aggregator.Hotspot) {
	if len(hotspots) == 0 {
		return
	}

	r.printf("Recommended Actions:\n")
	r.printf("--------------------------------------------------\n")
	for i, h := range hotspots {
		r.printf("  %d. [%s] %s\n", i+1, models.PriorityLabel(priorityOf(h.Severity)), h.Action)
		r.printf("     Category: %s\n", h.Category)
	}
}

// printf is a helper to write formatted output
func (r *TextReporter) printf(format string, args ...interface{}) {
	fmt.Fprintf(r.writer, format, args...)
}

func priorityOf(severity string) string {
	switch severity {
	case aggregator.SeverityHigh:
		return models.PriorityHigh
	case aggregator.SeverityMedium:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}
