// Package render turns report document events into concrete output
// formats.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/ppiankov/fbreport/internal/sink"
)

// Output formats
const (
	FormatMarkdown      = "markdown"
	FormatHTML          = "html"
	FormatText          = "text"
	FormatTerminal      = "terminal"
	FormatEventsJSON    = "events-json"
	FormatEventsMsgpack = "events-msgpack"
)

// Formats lists every supported output format
var Formats = []string{
	FormatMarkdown,
	FormatHTML,
	FormatText,
	FormatTerminal,
	FormatEventsJSON,
	FormatEventsMsgpack,
}

var extensions = map[string]string{
	FormatMarkdown:      ".md",
	FormatHTML:          ".html",
	FormatText:          ".txt",
	FormatTerminal:      ".txt",
	FormatEventsJSON:    ".json",
	FormatEventsMsgpack: ".msgpack",
}

// Options configures the renderer created by New
type Options struct {
	Terminal TerminalOptions
}

// IsValidFormat reports whether format is supported
func IsValidFormat(format string) bool {
	_, ok := extensions[format]
	return ok
}

// Extension returns the file extension for format, including the dot.
func Extension(format string) string {
	return extensions[format]
}

// New creates the sink for format writing to w
func New(format string, w io.Writer, opts Options) (sink.Sink, error) {
	switch format {
	case FormatMarkdown:
		return NewMarkdown(w, MarkdownOptions{}), nil
	case FormatHTML:
		return NewHTML(w), nil
	case FormatText:
		return NewText(w), nil
	case FormatTerminal:
		return NewTerminal(w, opts.Terminal), nil
	case FormatEventsJSON:
		return NewEventDump(w, sink.EncodeJSON), nil
	case FormatEventsMsgpack:
		return NewEventDump(w, sink.EncodeMsgpack), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (valid: %s)", format, strings.Join(Formats, ", "))
	}
}

// EventDump records the document and writes the encoded event stream on
// Flush.
type EventDump struct {
	*sink.Recorder

	w      io.Writer
	encode func(io.Writer, []sink.Event) error
}

// NewEventDump creates an event dump using encode
func NewEventDump(w io.Writer, encode func(io.Writer, []sink.Event) error) *EventDump {
	return &EventDump{Recorder: sink.NewRecorder(), w: w, encode: encode}
}

// Flush encodes the recorded events
func (d *EventDump) Flush() error {
	if err := d.Recorder.Flush(); err != nil {
		return err
	}
	return d.encode(d.w, d.Events())
}
