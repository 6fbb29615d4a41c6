package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ppiankov/fbreport/internal/sink"
	"golang.org/x/net/html"
)

// HTML renders a document as a standalone HTML page
type HTML struct {
	w   io.Writer
	out bytes.Buffer
}

// NewHTML creates an HTML renderer writing to w
func NewHTML(w io.Writer) *HTML {
	return &HTML{w: w}
}

var htmlTags = map[sink.Kind]string{
	sink.KindSection:    "section",
	sink.KindParagraph:  "p",
	sink.KindTable:      "table",
	sink.KindRow:        "tr",
	sink.KindHeaderCell: "th",
	sink.KindCell:       "td",
	sink.KindList:       "ul",
	sink.KindListItem:   "li",
	sink.KindBold:       "b",
	sink.KindItalic:     "i",
	sink.KindTitle:      "title",
	sink.KindHead:       "head",
	sink.KindBody:       "body",
}

// block elements are followed by a newline
var htmlBlocks = map[sink.Kind]bool{
	sink.KindSection:      true,
	sink.KindSectionTitle: true,
	sink.KindParagraph:    true,
	sink.KindTable:        true,
	sink.KindRow:          true,
	sink.KindList:         true,
	sink.KindListItem:     true,
	sink.KindTitle:        true,
	sink.KindHead:         true,
	sink.KindBody:         true,
}

func (h *HTML) Begin(n sink.Node) {
	switch n.Kind {
	case sink.KindHead:
		h.out.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
		return
	case sink.KindSectionTitle:
		fmt.Fprintf(&h.out, "<h%d>", n.Level)
		return
	case sink.KindLink:
		h.out.WriteString(`<a href="` + html.EscapeString(n.Target) + `">`)
		return
	}

	tag, ok := htmlTags[n.Kind]
	if !ok {
		return
	}
	h.out.WriteString("<" + tag + ">")
	if htmlBlocks[n.Kind] && n.Kind != sink.KindTitle && n.Kind != sink.KindParagraph && n.Kind != sink.KindListItem {
		h.out.WriteString("\n")
	}
}

func (h *HTML) End(n sink.Node) {
	var tag string
	switch n.Kind {
	case sink.KindSectionTitle:
		tag = fmt.Sprintf("h%d", n.Level)
	case sink.KindLink:
		tag = "a"
	default:
		tag = htmlTags[n.Kind]
	}
	if tag == "" {
		return
	}

	h.out.WriteString("</" + tag + ">")
	if htmlBlocks[n.Kind] {
		h.out.WriteString("\n")
	}
	if n.Kind == sink.KindBody {
		h.out.WriteString("</html>\n")
	}
}

func (h *HTML) Text(s string) {
	h.out.WriteString(html.EscapeString(s))
}

func (h *HTML) Raw(markup string) {
	h.out.WriteString(markup)
	h.out.WriteString("\n")
}

func (h *HTML) Anchor(name string) {
	h.out.WriteString(`<a name="` + html.EscapeString(name) + `"></a>`)
}

func (h *HTML) LineBreak() {
	h.out.WriteString("<br/>\n")
}

// Flush writes the buffered page
func (h *HTML) Flush() error {
	_, err := h.w.Write(h.out.Bytes())
	h.out.Reset()
	return err
}
