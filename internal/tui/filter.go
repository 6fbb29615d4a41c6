package tui

import (
	"sort"
	"strings"

	"github.com/ppiankov/fbreport/internal/aggregator"
	"github.com/ppiankov/fbreport/internal/models"
)

// filterState holds current active filters.
type filterState struct {
	Category   string
	Severity   string
	SearchText string
}

// sortField enumerates columns that can be sorted.
type sortField int

const (
	sortByPriority sortField = iota
	sortByCategory
	sortByClass
	sortByPattern
	sortByLine
)

// sortFieldCount is the total number of sortable columns.
const sortFieldCount = 5

var severityPriority = map[string]int{
	"high": 0, "medium": 1, "low": 2,
}

// applyFilters returns rows matching all active filters.
func applyFilters(bugs []aggregator.Row, f filterState) []aggregator.Row {
	result := make([]aggregator.Row, 0, len(bugs))
	searchLower := strings.ToLower(f.SearchText)

	for _, bug := range bugs {
		if f.Category != "" && bug.Category != f.Category {
			continue
		}
		if f.Severity != "" && bug.Severity != f.Severity {
			continue
		}
		if searchLower != "" && !matchesSearch(bug, searchLower) {
			continue
		}
		result = append(result, bug)
	}
	return result
}

func matchesSearch(bug aggregator.Row, searchLower string) bool {
	for _, field := range []string{bug.Type, bug.Pattern, bug.Category, bug.Class, bug.Message} {
		if strings.Contains(strings.ToLower(field), searchLower) {
			return true
		}
	}
	return false
}

// sortBugs sorts rows in place by the given field.
func sortBugs(bugs []aggregator.Row, field sortField) {
	sort.SliceStable(bugs, func(i, j int) bool {
		switch field {
		case sortByPriority:
			return severityPriority[bugs[i].Severity] < severityPriority[bugs[j].Severity]
		case sortByCategory:
			return bugs[i].Category < bugs[j].Category
		case sortByClass:
			return bugs[i].Class < bugs[j].Class
		case sortByPattern:
			return bugs[i].Pattern < bugs[j].Pattern
		case sortByLine:
			return models.Attr(bugs[i].Start).Int() < models.Attr(bugs[j].Start).Int()
		default:
			return false
		}
	})
}

// uniqueCategories returns deduplicated, sorted category labels of rows.
func uniqueCategories(bugs []aggregator.Row) []string {
	seen := make(map[string]bool)
	var categories []string
	for _, bug := range bugs {
		if !seen[bug.Category] {
			seen[bug.Category] = true
			categories = append(categories, bug.Category)
		}
	}
	sort.Strings(categories)
	return categories
}

// sortFieldName returns a human-readable name for the sort field.
func sortFieldName(f sortField) string {
	switch f {
	case sortByPriority:
		return "priority"
	case sortByCategory:
		return "category"
	case sortByClass:
		return "class"
	case sortByPattern:
		return "pattern"
	case sortByLine:
		return "line"
	default:
		return "unknown"
	}
}
