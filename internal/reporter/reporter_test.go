package reporter

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ppiankov/fbreport/internal/aggregator"
	"github.com/ppiankov/fbreport/internal/collector"
	"github.com/ppiankov/fbreport/internal/sink"
	"github.com/ppiankov/fbreport/internal/testkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleOptions = Options{Effort: "Default", Threshold: "MEDIUM"}

func record(t *testing.T, xml string, opts Options) []sink.Event {
	t.Helper()
	bc, err := collector.Parse([]byte(xml))
	require.NoError(t, err)

	rec := sink.NewRecorder()
	require.NoError(t, New(aggregator.Build(bc), opts).Emit(rec))
	assert.Equal(t, 1, rec.Flushes())
	return rec.Events()
}

func texts(events []sink.Event) []string {
	var out []string
	for _, e := range events {
		if e.Op == sink.OpText {
			out = append(out, e.Text)
		}
	}
	return out
}

// tableRows returns the text of every table row, one string per cell.
func tableRows(events []sink.Event) [][]string {
	var rows [][]string
	var row []string
	var cell strings.Builder
	inCell := false

	isCell := func(k sink.Kind) bool { return k == sink.KindCell || k == sink.KindHeaderCell }

	for _, e := range events {
		switch {
		case e.Op == sink.OpBegin && e.Kind == sink.KindRow:
			row = []string{}
		case e.Op == sink.OpEnd && e.Kind == sink.KindRow:
			rows = append(rows, row)
		case e.Op == sink.OpBegin && isCell(e.Kind):
			inCell = true
			cell.Reset()
		case e.Op == sink.OpEnd && isCell(e.Kind):
			inCell = false
			row = append(row, cell.String())
		case e.Op == sink.OpText && inCell:
			cell.WriteString(e.Text)
		}
	}
	return rows
}

// rowsContaining returns the rows that have a cell equal to text
func rowsContaining(rows [][]string, text string) [][]string {
	var out [][]string
	for _, r := range rows {
		for _, c := range r {
			if c == text {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

func linkTargets(events []sink.Event) map[string]string {
	out := make(map[string]string)
	for i, e := range events {
		if e.Op == sink.OpBegin && e.Kind == sink.KindLink && i+1 < len(events) {
			out[e.Target] = events[i+1].Text
		}
	}
	return out
}

func TestEmitStreamIsWellFormed(t *testing.T) {
	for name, xml := range map[string]string{"sample": testkit.SampleXML, "empty": testkit.EmptyXML} {
		t.Run(name, func(t *testing.T) {
			events := record(t, xml, sampleOptions)
			require.NoError(t, sink.Balanced(events))
			require.NoError(t, testkit.CheckLinks(events))
		})
	}
}

func TestEmitIsIdempotent(t *testing.T) {
	first := record(t, testkit.SampleXML, sampleOptions)
	second := record(t, testkit.SampleXML, sampleOptions)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second run differs (-first +second):\n%s", diff)
	}
}

func TestEmitAnchorsOmitZeroBugEntries(t *testing.T) {
	events := record(t, testkit.SampleXML, sampleOptions)

	want := []string{
		"report.BugsByClass",
		"package.com.acme.core",
		"class.com.acme.core.Engine",
		"class.com.acme.core.Util",
		"package.com.acme.web",
		"class.com.acme.web.Servlet$Handler",
		"report.BugsByCategory",
		"category.CORRECTNESS",
		"type.NP_NULL_ON_SOME_PATH",
		"category.PERFORMANCE",
		"type.DM_STRING_CTOR",
		"category.STYLE",
		"type.UC_USELESS_CONDITION",
	}
	assert.Equal(t, want, testkit.Anchors(events))

	rows := tableRows(events)
	assert.Empty(t, rowsContaining(rows, "com.acme.model"))
	assert.Empty(t, rowsContaining(rows, "com.acme.core.Clean"))
}

func TestEmitPageStructure(t *testing.T) {
	events := record(t, testkit.SampleXML, sampleOptions)

	prefix := []sink.Event{
		{Op: sink.OpBegin, Kind: sink.KindHead},
		{Op: sink.OpBegin, Kind: sink.KindTitle},
		{Op: sink.OpText, Text: "FindBugs Report"},
		{Op: sink.OpEnd, Kind: sink.KindTitle},
		{Op: sink.OpEnd, Kind: sink.KindHead},
		{Op: sink.OpBegin, Kind: sink.KindBody},
	}
	assert.Equal(t, prefix, events[:len(prefix)])
	assert.Equal(t, sink.Event{Op: sink.OpEnd, Kind: sink.KindBody}, events[len(events)-1])

	var titles []string
	for i, e := range events {
		if e.Op == sink.OpBegin && e.Kind == sink.KindSectionTitle && e.Level == 1 {
			titles = append(titles, events[i+1].Text)
		}
	}
	assert.Equal(t, []string{"FindBugs Report", "Summary", "Bugs By Class", "Bugs By Category"}, titles)
}

func TestEmitIntro(t *testing.T) {
	all := texts(record(t, testkit.SampleXML, sampleOptions))
	assert.Contains(t, all, "FindBugs version: 1.3.9")
	assert.Contains(t, all, "Effort: default")
	assert.Contains(t, all, "Bug Priority Threshold: medium")

	overridden := texts(record(t, testkit.SampleXML, Options{Version: "2.0.1", Effort: "max", Threshold: "low"}))
	assert.Contains(t, overridden, "FindBugs version: 2.0.1")

	links := linkTargets(record(t, testkit.SampleXML, sampleOptions))
	assert.Equal(t, "FindBugs", links[ToolURL])
}

func TestEmitSummary(t *testing.T) {
	events := record(t, testkit.SampleXML, sampleOptions)

	var bold []string
	for i, e := range events {
		if e.Op == sink.OpBegin && (e.Kind == sink.KindBold || e.Kind == sink.KindItalic) {
			bold = append(bold, events[i+1].Text)
		}
	}
	// narrative fragments come first, the category overview adds more
	assert.Equal(t, []string{"4", "1", "High", "2", "Medium", "1", "Low", "500", "6", "3"}, bold[:10])

	links := linkTargets(events)
	assert.Equal(t, "Bugs by class", links["#report.BugsByClass"])
	assert.Equal(t, "Bugs by category", links["#report.BugsByCategory"])
	assert.Contains(t, texts(events), "Here are some entry points to the report:")
}

func TestEmitZeroBugs(t *testing.T) {
	events := record(t, testkit.EmptyXML, sampleOptions)
	all := texts(events)

	assert.Contains(t, all, "No bugs were found!")
	assert.NotContains(t, all, "Here are some entry points to the report:")

	// detail phases still run with empty tables
	assert.Contains(t, all, "Bugs By Class")
	assert.Contains(t, all, "Bugs By Category")
	assert.Equal(t, []string{"report.BugsByClass", "report.BugsByCategory", "category.CORRECTNESS"}, testkit.Anchors(events))

	rows := tableRows(events)
	assert.Equal(t, [][]string{
		{"Package", "Classes", "Lines", "Bugs"},
		{"Category / Bug Pattern", "Bugs"},
		{"Correctness", "0"},
		{"Bug Pattern", "Bugs"},
	}, rows)
}

func TestEmitBugsByClass(t *testing.T) {
	rows := tableRows(record(t, testkit.SampleXML, sampleOptions))

	assert.Equal(t, [][]string{{"com.acme.core", "3", "350", "3"}}, rowsContaining(rows, "com.acme.core"))
	assert.Equal(t, [][]string{{"com.acme.core.Util", "100", "1"}}, rowsContaining(rows, "com.acme.core.Util")[:1])

	tests := []struct {
		message string
		want    []string
	}{
		{
			"Possible null pointer dereference of conn in com.acme.core.Engine.start()",
			[]string{"Correctness", "10", "Possible null pointer dereference of conn in com.acme.core.Engine.start()", "Details", "High"},
		},
		{
			"com.acme.core.Util.copy() invokes inefficient new String(String) constructor",
			[]string{"Performance", "7-9", "com.acme.core.Util.copy() invokes inefficient new String(String) constructor", "Details", "Medium"},
		},
		{
			"Possible null pointer dereference in com.acme.core.Engine.stop()",
			[]string{"Correctness", "", "Possible null pointer dereference in com.acme.core.Engine.stop()", "Details", "Low"},
		},
	}
	for _, tt := range tests {
		found := rowsContaining(rows, tt.message)
		require.NotEmpty(t, found, tt.message)
		assert.Equal(t, tt.want, found[0])
	}
}

func TestEmitBugsByCategory(t *testing.T) {
	rows := tableRows(record(t, testkit.SampleXML, sampleOptions))

	assert.Contains(t, rows, []string{"Correctness", "2"})
	assert.Contains(t, rows, []string{"Dodgy code", "0"})
	assert.Contains(t, rows, []string{"Condition has no effect", "0"})

	dm := "Method invokes inefficient new String(String) constructor"
	assert.Len(t, rowsContaining(rows, dm), 2, "overview row and category table row")

	// occurrences iterate the sorted class set
	var occurrences [][]string
	for _, r := range rows {
		if len(r) == 3 && (r[0] == "com.acme.core.Util" || r[0] == "com.acme.web.Servlet$Handler") && r[1] != "100" && r[1] != "90" {
			occurrences = append(occurrences, r)
		}
	}
	assert.Equal(t, [][]string{
		{"com.acme.core.Util", "7-9", "com.acme.core.Util.copy() invokes inefficient new String(String) constructor"},
		{"com.acme.web.Servlet$Handler", "42-45", "com.acme.web.Servlet$Handler.handle() invokes inefficient new String(String) constructor"},
	}, occurrences)
}

func TestEmitRawDetails(t *testing.T) {
	events := record(t, testkit.SampleXML, sampleOptions)

	var raw []string
	for _, e := range events {
		if e.Op == sink.OpRaw {
			raw = append(raw, e.Text)
		}
	}
	require.Len(t, raw, 3)
	assert.Equal(t, "<p>Using the <code>java.lang.String(String)</code> constructor wastes memory.</p>", raw[1])
}

func TestEmitXrefLinks(t *testing.T) {
	events := record(t, testkit.SampleXML, Options{Effort: "default", Threshold: "medium", XrefPath: "/xref"})
	links := linkTargets(events)

	assert.Equal(t, "42-45", links["/xref/com/acme/web/Servlet.html#42"])
	assert.Equal(t, "10", links["/xref/com/acme/core/Engine.html#10"])
	assert.Equal(t, "7-9", links["/xref/com/acme/core/Util.html#7"])

	for target := range links {
		assert.False(t, strings.HasSuffix(target, ".html#"), "link without line: %s", target)
	}
	require.NoError(t, sink.Balanced(events))
}

func TestEmitWithoutXrefHasNoSourceLinks(t *testing.T) {
	for target := range linkTargets(record(t, testkit.SampleXML, sampleOptions)) {
		assert.False(t, strings.Contains(target, ".html"), "unexpected source link %s", target)
	}
}
