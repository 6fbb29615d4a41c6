// Package sink defines the document event contract between the report
// emitter and rendering backends.
//
// A document is a stream of Begin/End pairs around structural nodes, with
// text, raw markup, anchors and line breaks in between. Backends decide how
// each node is serialized; the emitter never produces markup of its own
// except for bug pattern details, which pass through Raw.
package sink

// Kind identifies a structural node
type Kind string

// Structural node kinds
const (
	KindHead         Kind = "head"
	KindTitle        Kind = "title"
	KindBody         Kind = "body"
	KindSection      Kind = "section"
	KindSectionTitle Kind = "section_title"
	KindParagraph    Kind = "paragraph"
	KindTable        Kind = "table"
	KindRow          Kind = "row"
	KindHeaderCell   Kind = "header_cell"
	KindCell         Kind = "cell"
	KindList         Kind = "list"
	KindListItem     Kind = "list_item"
	KindBold         Kind = "bold"
	KindItalic       Kind = "italic"
	KindLink         Kind = "link"
)

// Node is a structural element. Level is set for sections and section
// titles (1 to 3). Target is set for links and is either an in-document
// fragment ("#name") or an external URL.
type Node struct {
	Kind   Kind
	Level  int
	Target string
}

// Sink receives a document
type Sink interface {
	Begin(n Node)
	End(n Node)
	Text(s string)
	Raw(markup string)
	Anchor(name string)
	LineBreak()
	Flush() error
}

// Section returns a section node of the given level
func Section(level int) Node {
	return Node{Kind: KindSection, Level: level}
}

// SectionTitle returns a section title node of the given level
func SectionTitle(level int) Node {
	return Node{Kind: KindSectionTitle, Level: level}
}

// Link returns a link node pointing at target
func Link(target string) Node {
	return Node{Kind: KindLink, Target: target}
}

// Fragment returns the in-document link target for an anchor name.
func Fragment(anchor string) string {
	return "#" + anchor
}

// Of returns a node of kind k with no level or target.
func Of(k Kind) Node {
	return Node{Kind: k}
}
