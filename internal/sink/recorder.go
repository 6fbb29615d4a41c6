package sink

// Recorder is a Sink that keeps every call as an Event.
type Recorder struct {
	events  []Event
	flushes int
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Begin(n Node) {
	r.events = append(r.events, Event{Op: OpBegin, Kind: n.Kind, Level: n.Level, Target: n.Target})
}

func (r *Recorder) End(n Node) {
	r.events = append(r.events, Event{Op: OpEnd, Kind: n.Kind, Level: n.Level, Target: n.Target})
}

func (r *Recorder) Text(s string) {
	r.events = append(r.events, Event{Op: OpText, Text: s})
}

func (r *Recorder) Raw(markup string) {
	r.events = append(r.events, Event{Op: OpRaw, Text: markup})
}

func (r *Recorder) Anchor(name string) {
	r.events = append(r.events, Event{Op: OpAnchor, Text: name})
}

func (r *Recorder) LineBreak() {
	r.events = append(r.events, Event{Op: OpLineBreak})
}

// Flush counts flushes; recorded events are kept.
func (r *Recorder) Flush() error {
	r.flushes++
	return nil
}

// Events returns the recorded stream
func (r *Recorder) Events() []Event {
	return r.events
}

// Flushes returns how many times Flush was called
func (r *Recorder) Flushes() int {
	return r.flushes
}

// Replay sends the recorded stream to dst and flushes it.
func (r *Recorder) Replay(dst Sink) error {
	return Replay(r.events, dst)
}

// Replay sends events to dst in order and flushes it.
func Replay(events []Event, dst Sink) error {
	for _, e := range events {
		if err := e.Apply(dst); err != nil {
			return err
		}
	}
	return dst.Flush()
}
