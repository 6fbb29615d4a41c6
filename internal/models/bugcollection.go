package models

import (
	"strconv"
	"strings"

	"fortio.org/safecast"
)

// Priority values as they appear in BugInstance@priority
const (
	PriorityHigh   = "1"
	PriorityMedium = "2"
	PriorityLow    = "3"
)

// Priority labels shown in reports
const (
	LabelHigh   = "High"
	LabelMedium = "Medium"
	LabelLow    = "Low"
)

// Attr is a numeric attribute kept exactly as it appeared in the document.
// An absent attribute is the empty string and counts as zero.
type Attr string

// Int returns the attribute as an integer. Empty, malformed or out of range
// values yield 0.
func (a Attr) Int() int {
	s := strings.TrimSpace(string(a))
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	v, err := safecast.Conv[int](n)
	if err != nil {
		return 0
	}
	return v
}

// Present reports whether the attribute carries a non-zero count.
func (a Attr) Present() bool {
	return a.Int() != 0
}

// String returns the raw attribute text.
func (a Attr) String() string {
	return string(a)
}

// BugCollection is the root of a loaded bug report. It is never mutated
// after the loader returns it.
type BugCollection struct {
	Version    string          `json:"version"`
	Summary    FindBugsSummary `json:"summary"`
	Packages   []PackageStats  `json:"packages"`
	Categories []BugCategory   `json:"categories"`
	Patterns   []BugPattern    `json:"patterns"`
	Instances  []BugInstance   `json:"instances"`
}

// FindBugsSummary holds the project-wide totals.
type FindBugsSummary struct {
	TotalBugs    Attr `json:"total_bugs"`
	Priority1    Attr `json:"priority_1,omitempty"`
	Priority2    Attr `json:"priority_2,omitempty"`
	Priority3    Attr `json:"priority_3,omitempty"`
	TotalSize    Attr `json:"total_size"`
	TotalClasses Attr `json:"total_classes"`
	NumPackages  Attr `json:"num_packages"`
}

// PackageStats carries per-package totals. The totals are taken from the
// document as given and are not recomputed from Classes.
type PackageStats struct {
	Name       string       `json:"package"`
	TotalTypes Attr         `json:"total_types"`
	TotalSize  Attr         `json:"total_size"`
	TotalBugs  Attr         `json:"total_bugs"`
	Classes    []ClassStats `json:"classes"`
}

// ClassStats is one class row under a package
type ClassStats struct {
	Name string `json:"class"`
	Size Attr   `json:"size"`
	Bugs Attr   `json:"bugs"`
}

// BugCategory maps a category code to its description
type BugCategory struct {
	Code        string `json:"category"`
	Description string `json:"description"`
}

// BugPattern describes one bug type. Details is markup and is passed
// through to the output untouched.
type BugPattern struct {
	Type             string `json:"type"`
	Category         string `json:"category"`
	ShortDescription string `json:"short_description"`
	Details          string `json:"details"`
}

// BugInstance is a single reported defect
type BugInstance struct {
	Type        string      `json:"type"`
	Category    string      `json:"category"`
	Priority    string      `json:"priority"`
	LongMessage string      `json:"long_message"`
	Classes     []ClassRef  `json:"classes"`
	SourceLine  *SourceLine `json:"source_line,omitempty"`
}

// ClassRef is a class referenced by a bug instance
type ClassRef struct {
	Name    string `json:"classname"`
	Primary bool   `json:"primary"`
}

// SourceLine is the line range of a bug instance
type SourceLine struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// PrimaryClass returns the name of the first class reference flagged primary.
func (b *BugInstance) PrimaryClass() (string, bool) {
	for _, c := range b.Classes {
		if c.Primary {
			return c.Name, true
		}
	}
	return "", false
}

// PrimaryCount returns how many class references are flagged primary.
func (b *BugInstance) PrimaryCount() int {
	n := 0
	for _, c := range b.Classes {
		if c.Primary {
			n++
		}
	}
	return n
}

// Lines returns the start and end line text. A missing SourceLine yields
// two empty strings.
func (b *BugInstance) Lines() (string, string) {
	if b.SourceLine == nil {
		return "", ""
	}
	return b.SourceLine.Start, b.SourceLine.End
}

// PriorityLabel maps a raw priority to its display label.
// "1" is High, "2" is Medium and anything else is Low.
func PriorityLabel(priority string) string {
	switch priority {
	case PriorityHigh:
		return LabelHigh
	case PriorityMedium:
		return LabelMedium
	default:
		return LabelLow
	}
}

// PriorityRank orders priorities for sorting, High first.
func PriorityRank(priority string) int {
	switch priority {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}
