package tui

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ppiankov/fbreport/internal/aggregator"
	"github.com/ppiankov/fbreport/internal/models"
	"github.com/ppiankov/fbreport/internal/testkit"
)

func testIndex() *aggregator.Index {
	return aggregator.Build(testkit.Sample())
}

func testBugs() []aggregator.Row {
	return aggregator.Flatten(testIndex())
}

func newModel() Model {
	m := New(testIndex(), "findbugs.xml")
	m.clipOut = &bytes.Buffer{}
	return m
}

// --- Filter tests ---

func TestApplyFiltersNoFilter(t *testing.T) {
	bugs := testBugs()
	result := applyFilters(bugs, filterState{})
	if len(result) != len(bugs) {
		t.Errorf("expected %d bugs, got %d", len(bugs), len(result))
	}
}

func TestApplyFiltersCategoryFilter(t *testing.T) {
	result := applyFilters(testBugs(), filterState{Category: "Performance"})
	if len(result) != 2 {
		t.Errorf("expected 2 performance bugs, got %d", len(result))
	}
	for _, r := range result {
		if r.Category != "Performance" {
			t.Errorf("expected Performance, got %s", r.Category)
		}
	}
}

func TestApplyFiltersSeverityFilter(t *testing.T) {
	result := applyFilters(testBugs(), filterState{Severity: "medium"})
	if len(result) != 2 {
		t.Errorf("expected 2 medium bugs, got %d", len(result))
	}
}

func TestApplyFiltersSearchText(t *testing.T) {
	result := applyFilters(testBugs(), filterState{SearchText: "Servlet"})
	if len(result) != 1 {
		t.Fatalf("expected 1 bug matching 'Servlet', got %d", len(result))
	}
	if result[0].Class != "com.acme.web.Servlet$Handler" {
		t.Errorf("expected com.acme.web.Servlet$Handler, got %s", result[0].Class)
	}
}

func TestApplyFiltersSearchMatchesTypeAndMessage(t *testing.T) {
	if got := applyFilters(testBugs(), filterState{SearchText: "np_null"}); len(got) != 2 {
		t.Errorf("expected 2 bugs matching type code, got %d", len(got))
	}
	if got := applyFilters(testBugs(), filterState{SearchText: "of conn"}); len(got) != 1 {
		t.Errorf("expected 1 bug matching message, got %d", len(got))
	}
}

func TestApplyFiltersCombined(t *testing.T) {
	result := applyFilters(testBugs(), filterState{Category: "Correctness", SearchText: "stop"})
	if len(result) != 1 {
		t.Errorf("expected 1 bug, got %d", len(result))
	}
}

func TestApplyFiltersNoMatch(t *testing.T) {
	result := applyFilters(testBugs(), filterState{SearchText: "nonexistent"})
	if len(result) != 0 {
		t.Errorf("expected 0 bugs, got %d", len(result))
	}
}

// --- Sort tests ---

func TestSortBugsByPriority(t *testing.T) {
	bugs := testBugs()
	sortBugs(bugs, sortByPriority)
	if bugs[0].Severity != "high" {
		t.Errorf("expected high first, got %s", bugs[0].Severity)
	}
	if bugs[len(bugs)-1].Severity != "low" {
		t.Errorf("expected low last, got %s", bugs[len(bugs)-1].Severity)
	}
}

func TestSortBugsByClass(t *testing.T) {
	bugs := testBugs()
	sortBugs(bugs, sortByClass)
	if bugs[0].Class != "com.acme.core.Engine" {
		t.Errorf("expected com.acme.core.Engine first, got %s", bugs[0].Class)
	}
	if bugs[3].Class != "com.acme.web.Servlet$Handler" {
		t.Errorf("expected Servlet$Handler last, got %s", bugs[3].Class)
	}
}

func TestSortBugsByLine(t *testing.T) {
	bugs := testBugs()
	sortBugs(bugs, sortByLine)
	// missing lines sort as zero
	want := []string{"", "7", "10", "42"}
	for i, w := range want {
		if bugs[i].Start != w {
			t.Errorf("position %d: expected start %q, got %q", i, w, bugs[i].Start)
		}
	}
}

func TestSortBugsByCategoryAndPattern(t *testing.T) {
	bugs := testBugs()
	sortBugs(bugs, sortByCategory)
	if bugs[0].Category != "Correctness" {
		t.Errorf("expected Correctness first, got %s", bugs[0].Category)
	}

	sortBugs(bugs, sortByPattern)
	if bugs[0].Pattern != "Method invokes inefficient new String(String) constructor" {
		t.Errorf("unexpected first pattern %s", bugs[0].Pattern)
	}
}

// --- Category choices ---

func TestUniqueCategories(t *testing.T) {
	categories := uniqueCategories(testBugs())
	expected := []string{"Correctness", "Performance"}
	if len(categories) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, categories)
	}
	for i := range expected {
		if categories[i] != expected[i] {
			t.Errorf("expected %s at index %d, got %s", expected[i], i, categories[i])
		}
	}
}

func TestUniqueCategoriesEmpty(t *testing.T) {
	if categories := uniqueCategories(nil); len(categories) != 0 {
		t.Errorf("expected 0 categories, got %d", len(categories))
	}
}

// --- Row building tests ---

func TestBuildRows(t *testing.T) {
	bugs := testBugs()
	rows := buildRows(bugs)
	if len(rows) != len(bugs) {
		t.Fatalf("expected %d rows, got %d", len(bugs), len(rows))
	}
	if rows[0][0] != "High" {
		t.Errorf("expected High, got %s", rows[0][0])
	}
	if rows[0][2] != "com.acme.core.Engine" {
		t.Errorf("expected com.acme.core.Engine, got %s", rows[0][2])
	}
	if rows[1][3] != "42-45" {
		t.Errorf("expected line range 42-45, got %s", rows[1][3])
	}
}

func TestBuildRowsEmpty(t *testing.T) {
	if rows := buildRows(nil); len(rows) != 0 {
		t.Errorf("expected 0 rows, got %d", len(rows))
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input    string
		maxWidth int
		want     string
	}{
		{"short", 10, "short"},
		{"this is a very long string", 10, "this is..."},
		{"abc", 3, "abc"},
		{"abcd", 3, "abc"},
		{"", 5, ""},
	}
	for _, tt := range tests {
		got := truncate(tt.input, tt.maxWidth)
		if got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.want)
		}
	}
}

// --- Header rendering tests ---

func TestRenderHeaderTotals(t *testing.T) {
	m := newModel()
	output := renderHeader(m.source, m.summary, m.bySeverity, m.hotspots, 100)
	for _, want := range []string{"FindBugs Report", "findbugs.xml", "Bugs: 4", "Classes: 6", "Packages: 3", "Lines: 500"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected header to contain %q", want)
		}
	}
}

func TestRenderHeaderSeverityBreakdown(t *testing.T) {
	m := newModel()
	output := renderHeader(m.source, m.summary, m.bySeverity, m.hotspots, 100)
	for _, want := range []string{"H:1", "M:2", "L:1"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in header", want)
		}
	}
}

func TestRenderHeaderHotspot(t *testing.T) {
	m := newModel()
	output := renderHeader(m.source, m.summary, m.bySeverity, m.hotspots, 120)
	if !strings.Contains(output, "Next: Fix") {
		t.Errorf("expected top hotspot action in header, got:\n%s", output)
	}
}

func TestRenderHeaderEmpty(t *testing.T) {
	output := renderHeader("", models.FindBugsSummary{}, nil, nil, 80)
	if !strings.Contains(output, "Bugs: 0") {
		t.Error("expected zero totals")
	}
	if strings.Contains(output, "Next:") {
		t.Error("expected no hotspot line without bugs")
	}
}

// --- Detail rendering tests ---

func TestRenderDetailNil(t *testing.T) {
	output := renderDetail(nil, 80)
	if !strings.Contains(output, "No bug selected") {
		t.Error("expected 'No bug selected' for nil bug")
	}
}

func TestRenderDetailShowsFields(t *testing.T) {
	bug := testBugs()[1]
	output := renderDetail(&bug, 120)
	for _, want := range []string{
		"MEDIUM",
		"Performance",
		"Class: com.acme.web.Servlet$Handler",
		"Lines: 42-45",
		"Type: DM_STRING_CTOR",
		"invokes inefficient",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in detail", want)
		}
	}
}

func TestRenderDetailNoLines(t *testing.T) {
	bug := testBugs()[3]
	output := renderDetail(&bug, 120)
	if strings.Contains(output, "Lines:") {
		t.Error("expected no lines when the bug has no source line")
	}
}

// --- Sort field name tests ---

func TestSortFieldName(t *testing.T) {
	tests := []struct {
		field sortField
		want  string
	}{
		{sortByPriority, "priority"},
		{sortByCategory, "category"},
		{sortByClass, "class"},
		{sortByPattern, "pattern"},
		{sortByLine, "line"},
		{sortField(99), "unknown"},
	}
	for _, tt := range tests {
		if got := sortFieldName(tt.field); got != tt.want {
			t.Errorf("sortFieldName(%d) = %q, want %q", tt.field, got, tt.want)
		}
	}
}

// --- Model state tests ---

func TestModelInit(t *testing.T) {
	if cmd := newModel().Init(); cmd != nil {
		t.Error("Init should return nil cmd")
	}
}

func TestModelInitialSort(t *testing.T) {
	m := newModel()
	if len(m.filteredBugs) != 4 {
		t.Fatalf("expected 4 bugs, got %d", len(m.filteredBugs))
	}
	if m.filteredBugs[0].Severity != "high" {
		t.Errorf("expected high first after initial sort, got %s", m.filteredBugs[0].Severity)
	}
}

func TestModelWindowResize(t *testing.T) {
	updated, _ := newModel().Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	model := updated.(Model)
	if model.width != 120 || model.height != 40 {
		t.Errorf("expected 120x40, got %dx%d", model.width, model.height)
	}
}

func TestModelWindowResizeSmall(t *testing.T) {
	updated, _ := newModel().Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	model := updated.(Model)
	if model.width != 40 {
		t.Errorf("expected width 40, got %d", model.width)
	}
}

func TestModelQuit(t *testing.T) {
	_, cmd := newModel().Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Error("expected quit command, got nil")
	}
}

func TestModelEnterSearch(t *testing.T) {
	updated, _ := newModel().Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	if updated.(Model).mode != modeSearch {
		t.Errorf("expected modeSearch, got %d", updated.(Model).mode)
	}
}

func TestModelEnterFilterCategory(t *testing.T) {
	updated, _ := newModel().Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}})
	if updated.(Model).mode != modeFilterCategory {
		t.Errorf("expected modeFilterCategory, got %d", updated.(Model).mode)
	}
}

func TestModelCycleSort(t *testing.T) {
	m := newModel()
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	model := updated.(Model)
	if model.sortBy != sortByCategory {
		t.Errorf("expected sort by category after one cycle, got %d", model.sortBy)
	}
	if !strings.Contains(model.statusMsg, "category") {
		t.Errorf("expected status to mention sort field, got %q", model.statusMsg)
	}

	for i := 1; i < sortFieldCount; i++ {
		updated, _ = updated.(Model).Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	}
	if updated.(Model).sortBy != sortByPriority {
		t.Errorf("expected sort to wrap to priority, got %d", updated.(Model).sortBy)
	}
}

func TestModelClearFilter(t *testing.T) {
	m := newModel()
	m.filters = filterState{Category: "Performance"}
	m.statusMsg = "Filter: Performance"
	m.rebuildTable()
	if len(m.filteredBugs) != 2 {
		t.Fatalf("expected 2 filtered bugs, got %d", len(m.filteredBugs))
	}

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	model := updated.(Model)
	if model.filters.Category != "" {
		t.Errorf("expected category filter cleared, got %q", model.filters.Category)
	}
	if model.statusMsg != "" {
		t.Errorf("expected status cleared, got %q", model.statusMsg)
	}
	if len(model.filteredBugs) != 4 {
		t.Errorf("expected all 4 bugs after clear, got %d", len(model.filteredBugs))
	}
}

func TestModelSearchEscape(t *testing.T) {
	m := newModel()
	m.mode = modeSearch
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	if updated.(Model).mode != modeNormal {
		t.Errorf("expected modeNormal after esc in search, got %d", updated.(Model).mode)
	}
}

func TestModelSearchEnter(t *testing.T) {
	m := newModel()
	m.mode = modeSearch
	m.searchInput.SetValue("string")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model := updated.(Model)
	if model.mode != modeNormal {
		t.Errorf("expected modeNormal after enter, got %d", model.mode)
	}
	if model.filters.SearchText != "string" {
		t.Errorf("expected search text 'string', got %q", model.filters.SearchText)
	}
	if len(model.filteredBugs) != 2 {
		t.Errorf("expected 2 filtered bugs, got %d", len(model.filteredBugs))
	}
}

func TestModelFilterCategoryNavigate(t *testing.T) {
	m := newModel()
	m.mode = modeFilterCategory

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	model := updated.(Model)
	if model.categoryCursor != 1 {
		t.Errorf("expected cursor 1 after down, got %d", model.categoryCursor)
	}

	// cannot move past the last category
	for i := 0; i < 5; i++ {
		updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
		model = updated.(Model)
	}
	if model.categoryCursor != len(model.categoryChoices) {
		t.Errorf("expected cursor clamped at %d, got %d", len(model.categoryChoices), model.categoryCursor)
	}

	for i := 0; i < 5; i++ {
		updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyUp})
		model = updated.(Model)
	}
	if model.categoryCursor != 0 {
		t.Errorf("expected cursor stays at 0, got %d", model.categoryCursor)
	}
}

func TestModelFilterCategorySelect(t *testing.T) {
	m := newModel()
	m.mode = modeFilterCategory
	m.categoryCursor = 2

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model := updated.(Model)
	if model.mode != modeNormal {
		t.Errorf("expected modeNormal after enter, got %d", model.mode)
	}
	if model.filters.Category != "Performance" {
		t.Errorf("expected Performance filter, got %q", model.filters.Category)
	}
	if model.statusMsg != "Filter: Performance" {
		t.Errorf("unexpected status %q", model.statusMsg)
	}
}

func TestModelFilterCategorySelectAll(t *testing.T) {
	m := newModel()
	m.mode = modeFilterCategory
	m.categoryCursor = 0

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if updated.(Model).filters.Category != "" {
		t.Errorf("expected empty filter for All, got %q", updated.(Model).filters.Category)
	}
}

func TestModelFilterCategoryEscape(t *testing.T) {
	m := newModel()
	m.mode = modeFilterCategory
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	if updated.(Model).mode != modeNormal {
		t.Errorf("expected modeNormal after esc in filter, got %d", updated.(Model).mode)
	}
}

func TestModelView(t *testing.T) {
	m := newModel()
	m.width = 120
	m.height = 30
	output := m.View()

	if !strings.Contains(output, "FindBugs Report") {
		t.Error("expected title in view")
	}
	if !strings.Contains(output, "q:quit") {
		t.Error("expected keybinds in footer")
	}
	if !strings.Contains(output, "4/4 bugs") {
		t.Error("expected 4/4 bugs in footer")
	}
}

func TestModelViewFilterMode(t *testing.T) {
	m := newModel()
	m.mode = modeFilterCategory
	output := m.View()
	if !strings.Contains(output, "Filter by category:") {
		t.Error("expected category filter list in view")
	}
	if !strings.Contains(output, "All") {
		t.Error("expected All option in category filter")
	}
}

func TestModelCopy(t *testing.T) {
	m := newModel()
	var out bytes.Buffer
	m.clipOut = &out

	m.copySelectedBug()
	want := "[High] NP_NULL_ON_SOME_PATH com.acme.core.Engine:10 -- Possible null pointer dereference of conn in com.acme.core.Engine.start()"
	if m.clipboard != want {
		t.Errorf("clipboard = %q, want %q", m.clipboard, want)
	}
	if m.statusMsg != "Copied!" {
		t.Errorf("expected Copied!, got %q", m.statusMsg)
	}
	encoded := base64.StdEncoding.EncodeToString([]byte(want))
	if out.String() != "\033]52;c;"+encoded+"\a" {
		t.Errorf("unexpected OSC 52 output %q", out.String())
	}
}

func TestModelCopyNoSelection(t *testing.T) {
	m := newModel()
	m.filteredBugs = nil
	m.table.SetRows(nil)

	m.copySelectedBug()
	if m.statusMsg != "Nothing to copy" {
		t.Errorf("expected 'Nothing to copy', got %q", m.statusMsg)
	}
}

func TestModelEmptyReport(t *testing.T) {
	m := New(aggregator.Build(&models.BugCollection{}), "")
	m.clipOut = &bytes.Buffer{}
	if len(m.allBugs) != 0 {
		t.Fatalf("expected no bugs, got %d", len(m.allBugs))
	}
	output := m.View()
	if !strings.Contains(output, "No bug selected") {
		t.Error("expected empty detail panel")
	}
	if !strings.Contains(output, "0/0 bugs") {
		t.Error("expected 0/0 bugs in footer")
	}
}

func TestModelDoesNotMutateIndex(t *testing.T) {
	idx := testIndex()
	m := New(idx, "")

	m.filters = filterState{Category: "Correctness"}
	m.rebuildTable()

	if len(m.allBugs) != 4 {
		t.Errorf("allBugs mutated: expected 4, got %d", len(m.allBugs))
	}
	if idx.Collection().Instances[1].Type != "DM_STRING_CTOR" {
		t.Error("index instances were reordered")
	}
}
