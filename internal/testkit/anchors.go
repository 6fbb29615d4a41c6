package testkit

import (
	"fmt"
	"strings"

	"github.com/ppiankov/fbreport/internal/sink"
)

// Anchors returns the anchor names of a recorded stream in order
func Anchors(events []sink.Event) []string {
	var names []string
	for _, e := range events {
		if e.Op == sink.OpAnchor {
			names = append(names, e.Text)
		}
	}
	return names
}

// Links returns the in-document link targets of a recorded stream, without
// the leading "#".
func Links(events []sink.Event) []string {
	var targets []string
	for _, e := range events {
		if e.Op == sink.OpBegin && e.Kind == sink.KindLink && strings.HasPrefix(e.Target, "#") {
			targets = append(targets, strings.TrimPrefix(e.Target, "#"))
		}
	}
	return targets
}

// CheckLinks reports duplicate anchors and in-document links that point
// at no anchor.
func CheckLinks(events []sink.Event) error {
	anchors := make(map[string]bool)
	for _, name := range Anchors(events) {
		if anchors[name] {
			return fmt.Errorf("duplicate anchor %q", name)
		}
		anchors[name] = true
	}

	for _, target := range Links(events) {
		if !anchors[target] {
			return fmt.Errorf("link #%s has no anchor", target)
		}
	}
	return nil
}
