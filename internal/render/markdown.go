package render

import (
	"bytes"
	"io"
	"strings"

	"github.com/ppiankov/fbreport/internal/sink"
	"golang.org/x/net/html"
)

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"|", `\|`,
	"<", "&lt;",
	">", "&gt;",
)

// MarkdownOptions tunes the Markdown output
type MarkdownOptions struct {
	// NoAnchors drops the HTML anchor tags
	NoAnchors bool
	// StripRaw replaces raw markup by its text content
	StripRaw bool
}

// Markdown renders a document as GitHub flavored markdown. Output is
// buffered until Flush.
type Markdown struct {
	w    io.Writer
	opts MarkdownOptions
	out  bytes.Buffer

	head  bool
	table [][]string
	row   []string
	cell  *strings.Builder
}

// NewMarkdown creates a markdown renderer writing to w
func NewMarkdown(w io.Writer, opts MarkdownOptions) *Markdown {
	return &Markdown{w: w, opts: opts}
}

func (m *Markdown) write(s string) {
	if m.head {
		return
	}
	if m.cell != nil {
		m.cell.WriteString(s)
		return
	}
	m.out.WriteString(s)
}

func (m *Markdown) Begin(n sink.Node) {
	switch n.Kind {
	case sink.KindHead:
		m.head = true
	case sink.KindSectionTitle:
		m.blank()
		m.write(strings.Repeat("#", n.Level) + " ")
	case sink.KindParagraph, sink.KindList:
		m.blank()
	case sink.KindTable:
		m.blank()
		m.table = nil
	case sink.KindRow:
		m.row = nil
	case sink.KindCell, sink.KindHeaderCell:
		m.cell = &strings.Builder{}
	case sink.KindListItem:
		if m.cell != nil {
			m.write("• ")
		} else {
			m.write("- ")
		}
	case sink.KindBold:
		m.write("**")
	case sink.KindItalic:
		m.write("*")
	case sink.KindLink:
		m.write("[")
	}
}

func (m *Markdown) End(n sink.Node) {
	switch n.Kind {
	case sink.KindHead:
		m.head = false
	case sink.KindSectionTitle, sink.KindParagraph:
		m.write("\n\n")
	case sink.KindTable:
		m.writeTable()
	case sink.KindRow:
		m.table = append(m.table, m.row)
	case sink.KindCell, sink.KindHeaderCell:
		m.row = append(m.row, strings.TrimSpace(m.cell.String()))
		m.cell = nil
	case sink.KindList:
		if m.cell == nil {
			m.write("\n")
		}
	case sink.KindListItem:
		if m.cell == nil {
			m.write("\n")
		}
	case sink.KindBold:
		m.write("**")
	case sink.KindItalic:
		m.write("*")
	case sink.KindLink:
		m.write("](" + n.Target + ")")
	}
}

func (m *Markdown) Text(s string) {
	s = markdownEscaper.Replace(s)
	if m.cell != nil {
		s = strings.ReplaceAll(s, "\n", " ")
	}
	m.write(s)
}

func (m *Markdown) Raw(markup string) {
	if m.opts.StripRaw {
		m.Text(PlainText(markup))
		if m.cell == nil {
			m.write("\n\n")
		}
		return
	}
	if m.cell != nil {
		m.write(strings.Join(strings.Fields(markup), " "))
		return
	}
	m.write(strings.TrimSpace(markup) + "\n\n")
}

func (m *Markdown) Anchor(name string) {
	if m.opts.NoAnchors {
		return
	}
	m.write(`<a name="` + html.EscapeString(name) + `"></a>`)
}

func (m *Markdown) LineBreak() {
	if m.cell != nil {
		m.write("<br>")
		return
	}
	m.write("  \n")
}

// blank ends the current block with an empty line
func (m *Markdown) blank() {
	if m.head || m.cell != nil || m.out.Len() == 0 {
		return
	}
	b := m.out.Bytes()
	switch {
	case bytes.HasSuffix(b, []byte("\n\n")):
	case bytes.HasSuffix(b, []byte("\n")):
		m.out.WriteString("\n")
	default:
		m.out.WriteString("\n\n")
	}
}

// Flush writes the buffered document, ending it with a single newline.
func (m *Markdown) Flush() error {
	if m.out.Len() == 0 {
		return nil
	}
	doc := append(bytes.TrimRight(m.out.Bytes(), "\n"), '\n')
	m.out.Reset()
	_, err := m.w.Write(doc)
	return err
}

// writeTable renders the collected rows as a pipe table. The first row is
// the header.
func (m *Markdown) writeTable() {
	if len(m.table) == 0 {
		return
	}

	cols := 0
	for _, r := range m.table {
		cols = max(cols, len(r))
	}

	line := func(cells []string) {
		m.out.WriteString("|")
		for i := 0; i < cols; i++ {
			c := ""
			if i < len(cells) {
				c = cells[i]
			}
			m.out.WriteString(" " + c + " |")
		}
		m.out.WriteString("\n")
	}

	line(m.table[0])
	sep := make([]string, cols)
	for i := range sep {
		sep[i] = "---"
	}
	line(sep)
	for _, r := range m.table[1:] {
		line(r)
	}
	m.out.WriteString("\n")
	m.table = nil
}
