package tui

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ppiankov/fbreport/internal/aggregator"
	"github.com/ppiankov/fbreport/internal/models"
)

// mode represents the current UI interaction mode.
type mode int

const (
	modeNormal mode = iota
	modeSearch
	modeFilterCategory
)

const defaultTableHeight = 15

// Model is the top-level Bubble Tea model for the bug browser.
type Model struct {
	// Data (immutable after init)
	source     string
	summary    models.FindBugsSummary
	bySeverity map[string]int
	hotspots   []aggregator.Hotspot
	allBugs    []aggregator.Row

	// UI state
	table           table.Model
	searchInput     textinput.Model
	filteredBugs    []aggregator.Row
	filters         filterState
	sortBy          sortField
	mode            mode
	categoryChoices []string
	categoryCursor  int
	width           int
	height          int
	statusMsg       string

	// clipboard keeps the last copied text; clipOut receives the OSC 52
	// sequence.
	clipboard string
	clipOut   io.Writer
}

// New creates a browser model for the bugs of idx. source names the report
// in the header.
func New(idx *aggregator.Index, source string) Model {
	bugs := aggregator.Flatten(idx)

	sortBugs(bugs, sortByPriority)
	t := newTable(buildRows(bugs), defaultTableHeight)

	ti := textinput.New()
	ti.Placeholder = "search..."
	ti.CharLimit = 64

	return Model{
		source:          source,
		summary:         idx.Summary(),
		bySeverity:      aggregator.CountBySeverity(bugs),
		hotspots:        aggregator.TopHotspots(aggregator.Hotspots(bugs), 1),
		allBugs:         bugs,
		filteredBugs:    bugs,
		table:           t,
		searchInput:     ti,
		sortBy:          sortByPriority,
		mode:            modeNormal,
		categoryChoices: uniqueCategories(bugs),
		width:           80,
		height:          24,
		clipOut:         os.Stdout,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetWidth(msg.Width)
		tableH := msg.Height - headerHeight - detailHeight - 3
		if tableH < 3 {
			tableH = 3
		}
		m.table.SetHeight(tableH)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	switch m.mode {
	case modeSearch:
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	default:
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeSearch:
		return m.handleSearchKey(msg)
	case modeFilterCategory:
		return m.handleFilterCategoryKey(msg)
	default:
		return m.handleNormalKey(msg)
	}
}

func (m Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Search):
		m.mode = modeSearch
		m.searchInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, keys.FilterCategory):
		m.mode = modeFilterCategory
		m.categoryCursor = 0
		return m, nil
	case key.Matches(msg, keys.Sort):
		m.sortBy = (m.sortBy + 1) % sortField(sortFieldCount)
		m.rebuildTable()
		m.statusMsg = fmt.Sprintf("Sort: %s", sortFieldName(m.sortBy))
		return m, nil
	case key.Matches(msg, keys.Copy):
		m.copySelectedBug()
		return m, nil
	case key.Matches(msg, keys.ClearFilter):
		m.filters = filterState{}
		m.statusMsg = ""
		m.rebuildTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.filters.SearchText = m.searchInput.Value()
		m.mode = modeNormal
		m.searchInput.Blur()
		m.rebuildTable()
		return m, nil
	case "esc":
		m.mode = modeNormal
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m Model) handleFilterCategoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.categoryCursor > 0 {
			m.categoryCursor--
		}
	case "down", "j":
		if m.categoryCursor < len(m.categoryChoices) {
			m.categoryCursor++
		}
	case "enter":
		if m.categoryCursor == 0 {
			m.filters.Category = ""
		} else if m.categoryCursor <= len(m.categoryChoices) {
			m.filters.Category = m.categoryChoices[m.categoryCursor-1]
		}
		m.mode = modeNormal
		m.rebuildTable()
		if m.filters.Category != "" {
			m.statusMsg = fmt.Sprintf("Filter: %s", m.filters.Category)
		} else {
			m.statusMsg = ""
		}
	case "esc":
		m.mode = modeNormal
	}
	return m, nil
}

func (m *Model) rebuildTable() {
	filtered := applyFilters(m.allBugs, m.filters)
	sortBugs(filtered, m.sortBy)
	m.filteredBugs = filtered
	m.table.SetRows(buildRows(filtered))
}

func (m *Model) selectedBug() *aggregator.Row {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.filteredBugs) {
		return nil
	}
	return &m.filteredBugs[cursor]
}

// copySelectedBug writes the selected bug to the clipboard via OSC 52.
func (m *Model) copySelectedBug() {
	bug := m.selectedBug()
	if bug == nil {
		m.statusMsg = "Nothing to copy"
		return
	}
	text := fmt.Sprintf("[%s] %s %s", bug.Priority, bug.Type, bug.Class)
	if bug.Lines != "" {
		text += ":" + bug.Lines
	}
	if bug.Message != "" {
		text += " -- " + bug.Message
	}
	m.clipboard = text
	m.statusMsg = "Copied!"
	fmt.Fprintf(m.clipOut, "\033]52;c;%s\a", base64.StdEncoding.EncodeToString([]byte(text)))
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(renderHeader(m.source, m.summary, m.bySeverity, m.hotspots, m.width))
	b.WriteString("\n")

	// Search bar overlay
	if m.mode == modeSearch {
		b.WriteString(styleSearchPrompt.Render("/ "))
		b.WriteString(m.searchInput.View())
		b.WriteString("\n")
	}

	// Category filter overlay
	if m.mode == modeFilterCategory {
		b.WriteString(m.renderCategoryFilter())
		b.WriteString("\n")
	}

	b.WriteString(m.table.View())
	b.WriteString("\n")

	b.WriteString(renderDetail(m.selectedBug(), m.width))
	b.WriteString("\n")

	b.WriteString(m.renderFooter())

	return b.String()
}

func (m *Model) renderCategoryFilter() string {
	var b strings.Builder
	b.WriteString("Filter by category:\n")

	options := append([]string{"All"}, m.categoryChoices...)
	for i, opt := range options {
		cursor := "  "
		if i == m.categoryCursor {
			cursor = "> "
		}
		b.WriteString(fmt.Sprintf("%s%s\n", cursor, opt))
	}
	return b.String()
}

func (m *Model) renderFooter() string {
	left := "q:quit  /:search  f:category  s:sort  c:copy  esc:clear"
	right := fmt.Sprintf("%d/%d bugs", len(m.filteredBugs), len(m.allBugs))

	if m.statusMsg != "" {
		right = m.statusMsg + "  " + right
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return styleFooter.Render(left + strings.Repeat(" ", gap) + right)
}

// Run starts the Bubble Tea program on the alternate screen.
func Run(idx *aggregator.Index, source string, opts ...tea.ProgramOption) error {
	m := New(idx, source)
	p := tea.NewProgram(m, append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)...)
	_, err := p.Run()
	return err
}
