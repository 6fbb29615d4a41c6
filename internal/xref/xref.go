// Package xref maps a class name and line range to a link into
// cross-referenced source pages. All functions are pure; the configured base
// path is never modified.
package xref

import "strings"

// Ref is a resolved line reference. When Linked is false only Text should
// be rendered.
type Ref struct {
	Target string
	Text   string
	Linked bool
}

// Resolve builds the reference for a class and line range. An empty base
// disables linking and yields the plain line text.
func Resolve(base, className, start, end string) Ref {
	text := LineText(start, end)
	if base == "" {
		return Ref{Text: text}
	}

	return Ref{
		Target: NormalizeBase(base) + ClassPath(className) + ".html#" + start,
		Text:   text,
		Linked: true,
	}
}

// NormalizeBase returns base ending in exactly one "/".
func NormalizeBase(base string) string {
	return strings.TrimRight(base, "/") + "/"
}

// ClassPath converts a fully qualified class name to the path of its source
// page. Inner classes share the page of their outermost class.
func ClassPath(className string) string {
	if idx := strings.IndexByte(className, '$'); idx >= 0 {
		className = className[:idx]
	}
	return strings.ReplaceAll(className, ".", "/")
}

// LineText renders a line range as "start" or "start-end".
func LineText(start, end string) string {
	if start == end {
		return start
	}
	return start + "-" + end
}
