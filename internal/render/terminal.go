package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
)

// TerminalOptions tunes the terminal renderer
type TerminalOptions struct {
	// Style is a glamour standard style name. Empty or "auto" picks one
	// from the terminal background.
	Style string
	// Width wraps text at the given column; 0 uses the default of 80.
	Width int
}

// Terminal renders a document as styled markdown for a terminal. Raw
// markup is reduced to text and anchors are dropped.
type Terminal struct {
	*Markdown

	w    io.Writer
	buf  bytes.Buffer
	opts TerminalOptions
}

// NewTerminal creates a terminal renderer writing to w
func NewTerminal(w io.Writer, opts TerminalOptions) *Terminal {
	t := &Terminal{w: w, opts: opts}
	t.Markdown = NewMarkdown(&t.buf, MarkdownOptions{NoAnchors: true, StripRaw: true})
	return t
}

// Flush renders the buffered markdown and writes it out
func (t *Terminal) Flush() error {
	if err := t.Markdown.Flush(); err != nil {
		return err
	}

	width := t.opts.Width
	if width <= 0 {
		width = 80
	}

	style := glamour.WithAutoStyle()
	if t.opts.Style != "" && t.opts.Style != "auto" {
		style = glamour.WithStandardStyle(t.opts.Style)
	}

	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return fmt.Errorf("failed to create terminal renderer: %w", err)
	}

	out, err := r.Render(t.buf.String())
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	t.buf.Reset()

	_, err = io.WriteString(t.w, out)
	return err
}
