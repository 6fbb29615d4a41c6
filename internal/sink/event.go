package sink

import (
	"fmt"
	"strings"
)

// Op is the kind of an Event
type Op string

// Event operations
const (
	OpBegin     Op = "begin"
	OpEnd       Op = "end"
	OpText      Op = "text"
	OpRaw       Op = "raw"
	OpAnchor    Op = "anchor"
	OpLineBreak Op = "br"
)

// Event is a single recorded sink call.
type Event struct {
	Op     Op     `json:"op" msgpack:"op"`
	Kind   Kind   `json:"kind,omitempty" msgpack:"kind,omitempty"`
	Level  int    `json:"level,omitempty" msgpack:"level,omitempty"`
	Target string `json:"target,omitempty" msgpack:"target,omitempty"`
	Text   string `json:"text,omitempty" msgpack:"text,omitempty"`
}

// Node returns the structural node of a begin or end event.
func (e Event) Node() Node {
	return Node{Kind: e.Kind, Level: e.Level, Target: e.Target}
}

func (e Event) String() string {
	switch e.Op {
	case OpBegin, OpEnd:
		var b strings.Builder
		b.WriteString(string(e.Op))
		b.WriteString(" ")
		b.WriteString(string(e.Kind))
		if e.Level > 0 {
			fmt.Fprintf(&b, "%d", e.Level)
		}
		if e.Target != "" {
			b.WriteString(" ")
			b.WriteString(e.Target)
		}
		return b.String()
	case OpLineBreak:
		return string(e.Op)
	default:
		return fmt.Sprintf("%s %q", e.Op, e.Text)
	}
}

// Apply sends the event to s.
func (e Event) Apply(s Sink) error {
	switch e.Op {
	case OpBegin:
		s.Begin(e.Node())
	case OpEnd:
		s.End(e.Node())
	case OpText:
		s.Text(e.Text)
	case OpRaw:
		s.Raw(e.Text)
	case OpAnchor:
		s.Anchor(e.Text)
	case OpLineBreak:
		s.LineBreak()
	default:
		return fmt.Errorf("unknown event op %q", e.Op)
	}
	return nil
}

// Balanced checks that every Begin is closed by an End of the same node,
// in stack order.
func Balanced(events []Event) error {
	var stack []Node
	for i, e := range events {
		switch e.Op {
		case OpBegin:
			stack = append(stack, e.Node())
		case OpEnd:
			if len(stack) == 0 {
				return fmt.Errorf("event %d: %s without matching begin", i, e)
			}
			top := stack[len(stack)-1]
			if top != e.Node() {
				return fmt.Errorf("event %d: %s closes %s", i, e, Event{Op: OpBegin, Kind: top.Kind, Level: top.Level, Target: top.Target})
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) > 0 {
		top := stack[len(stack)-1]
		return fmt.Errorf("%d unclosed nodes, innermost %s", len(stack), top.Kind)
	}
	return nil
}
