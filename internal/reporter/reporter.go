// Package reporter emits the three report views of a bug collection as a
// stream of document events.
package reporter

import (
	"strings"

	"github.com/ppiankov/fbreport/internal/aggregator"
	"github.com/ppiankov/fbreport/internal/sink"
	"github.com/ppiankov/fbreport/internal/xref"
)

// Report metadata
const (
	Name        = "FindBugs Report"
	Description = "Source code static analysis and bug report"
	OutputName  = "findbugs"
	ToolURL     = "http://findbugs.sourceforge.net/"
)

// Anchors of the top-level views
const (
	AnchorBugsByClass    = "report.BugsByClass"
	AnchorBugsByCategory = "report.BugsByCategory"
)

// PackageAnchor names the section of a package
func PackageAnchor(name string) string { return "package." + name }

// ClassAnchor names the section of a class
func ClassAnchor(name string) string { return "class." + name }

// CategoryAnchor names the section of a bug category
func CategoryAnchor(code string) string { return "category." + code }

// TypeAnchor names the section of a bug pattern
func TypeAnchor(code string) string { return "type." + code }

// Options is the configuration echoed into the report. Effort and Threshold
// are expected to be validated already; they are lower-cased for display.
type Options struct {
	// Version overrides the analyzer version read from the document.
	Version   string
	Effort    string
	Threshold string
	// XrefPath is the base of the cross-referenced source pages. Empty
	// disables line links.
	XrefPath string
}

// Emitter writes the report views for one index
type Emitter struct {
	idx  *aggregator.Index
	opts Options
}

// New creates an emitter for idx
func New(idx *aggregator.Index, opts Options) *Emitter {
	return &Emitter{idx: idx, opts: opts}
}

// Emit writes the whole document to s and flushes it. The phases always
// run in the same order: intro, summary, bugs by class, bugs by category.
func (e *Emitter) Emit(s sink.Sink) error {
	w := writer{s}

	w.open(sink.KindHead)
	w.wrap(sink.KindTitle, Name)
	w.close(sink.KindHead)

	w.open(sink.KindBody)
	e.intro(w)
	e.summary(w)
	e.bugsByClass(w)
	e.bugsByCategory(w)
	w.close(sink.KindBody)

	return s.Flush()
}

func (e *Emitter) version() string {
	if e.opts.Version != "" {
		return e.opts.Version
	}
	return e.idx.Collection().Version
}

// lines writes a line range, linked to the source page when a base path is
// configured and the range is known.
func (e *Emitter) lines(w writer, class, start, end string) {
	ref := xref.Resolve(e.opts.XrefPath, class, start, end)
	if ref.Linked && start != "" {
		w.link(ref.Target, ref.Text)
		return
	}
	w.Text(ref.Text)
}

// writer adds shorthands for common event sequences
type writer struct {
	sink.Sink
}

func (w writer) open(k sink.Kind)  { w.Begin(sink.Of(k)) }
func (w writer) close(k sink.Kind) { w.End(sink.Of(k)) }

// wrap writes text inside a node of kind k
func (w writer) wrap(k sink.Kind, text string) {
	w.open(k)
	w.Text(text)
	w.close(k)
}

func (w writer) link(target, text string) {
	n := sink.Link(target)
	w.Begin(n)
	w.Text(text)
	w.End(n)
}

func (w writer) section(level int, body func()) {
	n := sink.Section(level)
	w.Begin(n)
	body()
	w.End(n)
}

func (w writer) title(level int, body func()) {
	n := sink.SectionTitle(level)
	w.Begin(n)
	body()
	w.End(n)
}

func (w writer) paragraph(text string) {
	w.wrap(sink.KindParagraph, text)
}

func (w writer) headerRow(titles ...string) {
	w.open(sink.KindRow)
	for _, t := range titles {
		w.wrap(sink.KindHeaderCell, t)
	}
	w.close(sink.KindRow)
}

func (w writer) cell(body func()) {
	w.open(sink.KindCell)
	body()
	w.close(sink.KindCell)
}

func (w writer) textCell(text string) {
	w.wrap(sink.KindCell, text)
}

func (w writer) linkCell(target, text string) {
	w.cell(func() { w.link(target, text) })
}

func lower(s string) string {
	return strings.ToLower(s)
}
