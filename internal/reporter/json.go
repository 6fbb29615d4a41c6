package reporter

import (
	"io"

	json "github.com/json-iterator/go"
	"github.com/ppiankov/fbreport/internal/aggregator"
	"github.com/ppiankov/fbreport/internal/models"
	"github.com/ppiankov/fbreport/internal/narrative"
)

// JSONReporter generates machine-readable JSON reports
type JSONReporter struct {
	writer io.Writer
	pretty bool
}

// NewJSONReporter creates a new JSON reporter
func NewJSONReporter(writer io.Writer, pretty bool) *JSONReporter {
	return &JSONReporter{
		writer: writer,
		pretty: pretty,
	}
}

// JSONReport is the document written by JSONReporter
type JSONReport struct {
	Name       string                 `json:"name"`
	Version    string                 `json:"version"`
	Effort     string                 `json:"effort,omitempty"`
	Threshold  string                 `json:"threshold,omitempty"`
	Summary    models.FindBugsSummary `json:"summary"`
	Sentence   string                 `json:"sentence"`
	Packages   []JSONPackage          `json:"packages"`
	Categories []JSONCategory         `json:"categories"`
	Bugs       []aggregator.Row       `json:"bugs"`
	Hotspots   []aggregator.Hotspot   `json:"hotspots"`
}

// JSONPackage is a package with bugs
type JSONPackage struct {
	Name    string              `json:"package"`
	Classes int                 `json:"classes"`
	Lines   int                 `json:"lines"`
	Bugs    int                 `json:"bugs"`
	Details []models.ClassStats `json:"class_stats"`
}

// JSONCategory is a category with its patterns and live counts
type JSONCategory struct {
	Code        string        `json:"category"`
	Description string        `json:"description"`
	Count       int           `json:"count"`
	Patterns    []JSONPattern `json:"patterns"`
}

// JSONPattern is a bug pattern with its instance count
type JSONPattern struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Count       int    `json:"count"`
}

// Build assembles the JSON document for idx
func (r *JSONReporter) Build(idx *aggregator.Index, opts Options) JSONReport {
	version := opts.Version
	if version == "" {
		version = idx.Collection().Version
	}

	rows := aggregator.Flatten(idx)
	report := JSONReport{
		Name:       Name,
		Version:    version,
		Effort:     lower(opts.Effort),
		Threshold:  lower(opts.Threshold),
		Summary:    idx.Summary(),
		Sentence:   narrative.Summarize(idx.Summary()).Plain(),
		Packages:   []JSONPackage{},
		Categories: []JSONCategory{},
		Bugs:       rows,
		Hotspots:   aggregator.Hotspots(rows),
	}

	for _, pkg := range idx.PackagesWithBugs() {
		jp := JSONPackage{
			Name:    pkg.Name,
			Classes: pkg.TotalTypes.Int(),
			Lines:   pkg.TotalSize.Int(),
			Bugs:    pkg.TotalBugs.Int(),
			Details: []models.ClassStats{},
		}
		for _, c := range idx.ClassesWithBugs(pkg.Name) {
			jp.Details = append(jp.Details, *c)
		}
		report.Packages = append(report.Packages, jp)
	}

	for _, c := range idx.Categories() {
		jc := JSONCategory{
			Code:        c.Code,
			Description: c.Description,
			Count:       idx.CategoryCount(c.Code),
			Patterns:    []JSONPattern{},
		}
		for _, p := range idx.PatternsByCategory(c.Code) {
			jc.Patterns = append(jc.Patterns, JSONPattern{
				Type:        p.Type,
				Description: p.ShortDescription,
				Count:       idx.TypeCount(p.Type),
			})
		}
		report.Categories = append(report.Categories, jc)
	}

	return report
}

// Generate writes the JSON document for idx
func (r *JSONReporter) Generate(idx *aggregator.Index, opts Options) error {
	report := r.Build(idx, opts)

	var data []byte
	var err error

	if r.pretty {
		data, err = json.MarshalIndent(report, "", "  ")
	} else {
		data, err = json.Marshal(report)
	}

	if err != nil {
		return err
	}

	_, err = r.writer.Write(data)
	if err != nil {
		return err
	}

	// Add trailing newline for terminal output
	_, err = r.writer.Write([]byte("\n"))
	return err
}
