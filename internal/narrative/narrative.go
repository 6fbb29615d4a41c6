// Package narrative turns bug counts into the English summary sentence of a
// report.
package narrative

import (
	"strings"

	"github.com/ppiankov/fbreport/internal/models"
)

// NoBugs is the whole sentence when the analyzer found nothing.
const NoBugs = "No bugs were found!"

// Kind is the emphasis applied to a fragment
type Kind int

const (
	Text Kind = iota
	Bold
	Italic
)

// Fragment is a run of text with a single emphasis
type Fragment struct {
	Kind Kind
	Text string
}

// Sentence is an ordered list of fragments. Rendering backends decide how
// bold and italic look. A report without bugs yields an empty sentence,
// which renders as NoBugs.
type Sentence []Fragment

// String renders the sentence with markdown-style emphasis.
func (s Sentence) String() string {
	if s.Empty() {
		return NoBugs
	}
	var b strings.Builder
	for _, f := range s {
		switch f.Kind {
		case Bold:
			b.WriteString("**" + f.Text + "**")
		case Italic:
			b.WriteString("*" + f.Text + "*")
		default:
			b.WriteString(f.Text)
		}
	}
	return b.String()
}

// Plain renders the sentence without emphasis markers.
func (s Sentence) Plain() string {
	if s.Empty() {
		return NoBugs
	}
	var b strings.Builder
	for _, f := range s {
		b.WriteString(f.Text)
	}
	return b.String()
}

// Empty reports whether the report had no bugs to summarize.
func (s Sentence) Empty() bool {
	return len(s) == 0
}

// Plural returns "s" when n calls for a plural noun.
func Plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}

type clause struct {
	count models.Attr
	label string
}

// Summarize builds the summary sentence. Counts are echoed exactly as they
// appear in the document; empty and zero counts are treated alike.
func Summarize(s models.FindBugsSummary) Sentence {
	if !s.TotalBugs.Present() {
		return nil
	}

	out := Sentence{
		{Kind: Bold, Text: s.TotalBugs.String()},
		{Kind: Text, Text: " bug" + Plural(s.TotalBugs.Int())},
	}

	var clauses []clause
	for _, c := range []clause{
		{s.Priority1, models.LabelHigh},
		{s.Priority2, models.LabelMedium},
		{s.Priority3, models.LabelLow},
	} {
		if c.count.Present() {
			clauses = append(clauses, c)
		}
	}

	for i, c := range clauses {
		out = append(out, Fragment{Kind: Text, Text: joiner(i, len(clauses))})
		out = append(out,
			Fragment{Kind: Bold, Text: c.count.String()},
			Fragment{Kind: Text, Text: " "},
			Fragment{Kind: Italic, Text: c.label},
			Fragment{Kind: Text, Text: " priority bug" + Plural(c.count.Int())},
		)
	}

	out = append(out,
		Fragment{Kind: Text, Text: " found in "},
		Fragment{Kind: Bold, Text: s.TotalSize.String()},
		Fragment{Kind: Text, Text: " lines of code, in "},
		Fragment{Kind: Bold, Text: s.TotalClasses.String()},
		Fragment{Kind: Text, Text: " classes, in "},
		Fragment{Kind: Bold, Text: s.NumPackages.String()},
		Fragment{Kind: Text, Text: " package(s)."},
	)

	return out
}

// joiner returns the text that introduces clause i of n.
func joiner(i, n int) string {
	switch {
	case i == 0:
		return ", consisting of "
	case i == n-1:
		return " and "
	default:
		return ", "
	}
}
