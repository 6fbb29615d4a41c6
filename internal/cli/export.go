package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	json "github.com/json-iterator/go"
	"github.com/ppiankov/fbreport/internal/aggregator"
	"github.com/ppiankov/fbreport/internal/collector"
	"github.com/ppiankov/fbreport/internal/models"
	"github.com/ppiankov/fbreport/internal/reporter"
	"github.com/ppiankov/fbreport/internal/xref"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export <report.xml|dir>...",
	Short: "Export bug instances for other tooling",
	Long: `Export flattens the bug instances of one or more FindBugs XML reports,
ordered by priority, class and line.

Supported formats:
  csv    Tabular format for spreadsheets
  json   Structured JSON for programmatic consumption
  sarif  SARIF 2.1.0 for GitHub Advanced Security and code scanning

Example:
  fbreport export findbugs.xml --format csv -o bugs.csv
  fbreport export findbugs.xml --format sarif -o results.sarif
  fbreport export build/reports --format json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv",
		"output format: csv, json, or sarif")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "",
		"write output to file (default: stdout)")
}

// BugRecord is a single row in the export.
type BugRecord struct {
	Source string `json:"source"`
	aggregator.Row
}

// BugExport is the full export payload.
type BugExport struct {
	ExportedAt  string         `json:"exported_at"`
	ReportCount int            `json:"report_count"`
	BugCount    int            `json:"bug_count"`
	BySeverity  map[string]int `json:"by_severity"`
	Records     []BugRecord    `json:"records"`
}

func runExport(cmd *cobra.Command, args []string) error {
	switch exportFormat {
	case "csv", "json", "sarif":
	default:
		return &ValidationError{Message: fmt.Sprintf("unsupported format: %s (use csv, json, or sarif)", exportFormat)}
	}

	reports, err := loadReports(args)
	if err != nil {
		return err
	}

	logVerbose("Exporting %d reports", len(reports))

	export := buildBugExport(reports, time.Now())

	var writer io.Writer = os.Stdout
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		writer = f
	}

	switch exportFormat {
	case "csv":
		return writeCSV(writer, export)
	case "json":
		return writeExportJSON(writer, export)
	default:
		return writeSARIF(writer, export, reports)
	}
}

func buildBugExport(reports []collector.Report, now time.Time) *BugExport {
	records := []BugRecord{}
	var all []aggregator.Row

	for _, r := range reports {
		rows := aggregator.Flatten(aggregator.Build(r.Collection))
		aggregator.SortRows(rows)
		for _, row := range rows {
			records = append(records, BugRecord{Source: r.Path, Row: row})
		}
		all = append(all, rows...)
	}

	return &BugExport{
		ExportedAt:  now.UTC().Format(time.RFC3339),
		ReportCount: len(reports),
		BugCount:    len(records),
		BySeverity:  aggregator.CountBySeverity(all),
		Records:     records,
	}
}

func writeCSV(w io.Writer, export *BugExport) error {
	writer := csv.NewWriter(w)

	header := []string{
		"source", "priority", "severity", "category", "type",
		"pattern", "class", "package", "lines", "message",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, r := range export.Records {
		row := []string{
			r.Source, r.Priority, r.Severity, r.Category, r.Type,
			r.Pattern, r.Class, r.Package, r.Lines, r.Message,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func writeExportJSON(w io.Writer, export *BugExport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(export)
}

// SARIF 2.1.0 output for GitHub Advanced Security integration.

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string             `json:"id"`
	ShortDescription sarifMessage       `json:"shortDescription"`
	DefaultConfig    sarifDefaultConfig `json:"defaultConfiguration"`
	Properties       sarifProperties    `json:"properties"`
}

type sarifProperties struct {
	Tags []string `json:"tags"`
}

type sarifDefaultConfig struct {
	Level string `json:"level"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysical `json:"physicalLocation"`
}

type sarifPhysical struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
	Region           *sarifRegion  `json:"region,omitempty"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine int `json:"startLine"`
	EndLine   int `json:"endLine,omitempty"`
}

func writeSARIF(w io.Writer, export *BugExport, reports []collector.Report) error {
	rulesMap := map[string]sarifRule{}
	results := []sarifResult{}

	for _, r := range export.Records {
		if _, exists := rulesMap[r.Type]; !exists {
			rulesMap[r.Type] = sarifRule{
				ID:               r.Type,
				ShortDescription: sarifMessage{Text: r.Pattern},
				DefaultConfig:    sarifDefaultConfig{Level: sarifLevel(r.Severity)},
				Properties:       sarifProperties{Tags: []string{r.Category}},
			}
		}

		results = append(results, sarifResult{
			RuleID:    r.Type,
			Level:     sarifLevel(r.Severity),
			Message:   sarifMessage{Text: r.Message},
			Locations: []sarifLocation{{PhysicalLocation: sarifPhysicalFor(r.Row)}},
		})
	}

	rules := make([]sarifRule, 0, len(rulesMap))
	for _, r := range rulesMap {
		rules = append(rules, r)
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].ID < rules[j].ID })

	version := ""
	if len(reports) > 0 {
		version = reports[0].Collection.Version
	}

	doc := sarifLog{
		Schema:  "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json",
		Version: "2.1.0",
		Runs: []sarifRun{{
			Tool: sarifTool{
				Driver: sarifDriver{
					Name:           "FindBugs",
					Version:        version,
					InformationURI: reporter.ToolURL,
					Rules:          rules,
				},
			},
			Results: results,
		}},
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// sarifPhysicalFor points at the source file of the row's class. The
// region is omitted when the report has no line numbers.
func sarifPhysicalFor(row aggregator.Row) sarifPhysical {
	p := sarifPhysical{
		ArtifactLocation: sarifArtifact{URI: xref.ClassPath(row.Class) + ".java"},
	}
	if start := models.Attr(row.Start).Int(); start > 0 {
		p.Region = &sarifRegion{StartLine: start}
		if end := models.Attr(row.End).Int(); end > start {
			p.Region.EndLine = end
		}
	}
	return p
}

func sarifLevel(severity string) string {
	switch severity {
	case aggregator.SeverityHigh:
		return "error"
	case aggregator.SeverityMedium:
		return "warning"
	default:
		return "note"
	}
}
