package render

import (
	"bytes"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/ppiankov/fbreport/internal/sink"
)

// underline characters per section level
var underlines = map[int]string{1: "=", 2: "-", 3: "~"}

// Text renders a document as plain text with aligned tables. Links keep
// their text; external targets are shown after it.
type Text struct {
	w   io.Writer
	out bytes.Buffer

	head  bool
	title *strings.Builder
	table [][]string
	row   []string
	cell  *strings.Builder
}

// NewText creates a plain text renderer writing to w
func NewText(w io.Writer) *Text {
	return &Text{w: w}
}

func (t *Text) write(s string) {
	switch {
	case t.head:
	case t.cell != nil:
		t.cell.WriteString(s)
	case t.title != nil:
		t.title.WriteString(s)
	default:
		t.out.WriteString(s)
	}
}

func (t *Text) Begin(n sink.Node) {
	switch n.Kind {
	case sink.KindHead:
		t.head = true
	case sink.KindSectionTitle:
		t.blank()
		t.title = &strings.Builder{}
	case sink.KindParagraph, sink.KindList:
		t.blank()
	case sink.KindTable:
		t.blank()
		t.table = nil
	case sink.KindRow:
		t.row = nil
	case sink.KindCell, sink.KindHeaderCell:
		t.cell = &strings.Builder{}
	case sink.KindListItem:
		if t.cell != nil {
			t.write("- ")
		} else {
			t.write("  * ")
		}
	}
}

func (t *Text) End(n sink.Node) {
	switch n.Kind {
	case sink.KindHead:
		t.head = false
	case sink.KindSectionTitle:
		title := strings.TrimSpace(t.title.String())
		t.title = nil
		t.out.WriteString(title + "\n")
		t.out.WriteString(strings.Repeat(underlines[n.Level], runewidth.StringWidth(title)) + "\n\n")
	case sink.KindParagraph:
		t.write("\n\n")
	case sink.KindListItem:
		if t.cell == nil {
			t.write("\n")
		}
	case sink.KindTable:
		t.writeTable()
	case sink.KindRow:
		t.table = append(t.table, t.row)
	case sink.KindCell, sink.KindHeaderCell:
		t.row = append(t.row, strings.TrimSpace(t.cell.String()))
		t.cell = nil
	case sink.KindLink:
		if n.Target != "" && !strings.HasPrefix(n.Target, "#") {
			t.write(" <" + n.Target + ">")
		}
	}
}

func (t *Text) Text(s string) {
	if t.cell != nil {
		s = strings.ReplaceAll(s, "\n", " ")
	}
	t.write(s)
}

func (t *Text) Raw(markup string) {
	t.write(PlainText(markup))
	if t.cell == nil && t.title == nil {
		t.write("\n\n")
	}
}

// Anchor has no plain text form
func (t *Text) Anchor(string) {}

func (t *Text) LineBreak() {
	if t.cell != nil || t.title != nil {
		t.write(" ")
		return
	}
	t.write("\n")
}

// Flush writes the buffered document, ending it with a single newline.
func (t *Text) Flush() error {
	if t.out.Len() == 0 {
		return nil
	}
	doc := append(bytes.TrimRight(t.out.Bytes(), "\n"), '\n')
	t.out.Reset()
	_, err := t.w.Write(doc)
	return err
}

func (t *Text) blank() {
	if t.head || t.cell != nil || t.out.Len() == 0 {
		return
	}
	b := t.out.Bytes()
	switch {
	case bytes.HasSuffix(b, []byte("\n\n")):
	case bytes.HasSuffix(b, []byte("\n")):
		t.out.WriteString("\n")
	default:
		t.out.WriteString("\n\n")
	}
}

// writeTable aligns the collected rows on display width. The first row is
// the header and is underlined.
func (t *Text) writeTable() {
	if len(t.table) == 0 {
		return
	}

	var widths []int
	for _, r := range t.table {
		for i, c := range r {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], runewidth.StringWidth(c))
		}
	}

	line := func(cells []string) {
		parts := make([]string, len(widths))
		for i := range widths {
			c := ""
			if i < len(cells) {
				c = cells[i]
			}
			parts[i] = runewidth.FillRight(c, widths[i])
		}
		t.out.WriteString(strings.TrimRight(strings.Join(parts, "  "), " ") + "\n")
	}

	line(t.table[0])
	rules := make([]string, len(widths))
	for i, w := range widths {
		rules[i] = strings.Repeat("-", w)
	}
	line(rules)
	for _, r := range t.table[1:] {
		line(r)
	}
	t.out.WriteString("\n")
	t.table = nil
}
