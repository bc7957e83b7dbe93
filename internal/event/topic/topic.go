// Package topic defines hierarchical event topics using dot notation.
//
// Topics identify broadcast channels on the event bus. Overlay lifecycle
// notifications use "<kind>.<transition>" (e.g. "tooltip.shown") and global
// commands use "<kind>.command.<verb>" (e.g. "popover.command.hide").
package topic

import "strings"

// Topic represents a hierarchical event type using dot notation.
// Examples: "tooltip.show", "popover.command.hide".
type Topic string

// Wildcard constants for pattern matching.
const (
	// WildcardSingle matches exactly one segment.
	WildcardSingle = "*"

	// WildcardMulti matches zero or more trailing segments.
	WildcardMulti = "**"

	// Separator is the character used to separate topic segments.
	Separator = "."
)

// String returns the topic as a string.
func (t Topic) String() string {
	return string(t)
}

// Segments returns the topic split by the separator.
func (t Topic) Segments() []string {
	if t == "" {
		return nil
	}
	return strings.Split(string(t), Separator)
}

// Parent returns the parent topic by removing the last segment.
// Returns an empty topic if there is no parent.
func (t Topic) Parent() Topic {
	s := string(t)
	idx := strings.LastIndex(s, Separator)
	if idx < 0 {
		return ""
	}
	return Topic(s[:idx])
}

// Child returns a child topic by appending a segment.
func (t Topic) Child(segment string) Topic {
	if t == "" {
		return Topic(segment)
	}
	return Topic(string(t) + Separator + segment)
}

// Base returns the last segment of the topic.
func (t Topic) Base() string {
	s := string(t)
	idx := strings.LastIndex(s, Separator)
	if idx < 0 {
		return s
	}
	return s[idx+1:]
}

// IsPattern returns true if the topic contains wildcard segments.
func (t Topic) IsPattern() bool {
	for _, seg := range t.Segments() {
		if seg == WildcardSingle || seg == WildcardMulti {
			return true
		}
	}
	return false
}

// Match reports whether the concrete topic matches the pattern.
// The pattern may use "*" for a single segment and a trailing "**" for any
// remaining segments. The topic itself must not contain wildcards.
func Match(pattern, t Topic) bool {
	if pattern == "" || t == "" {
		return false
	}

	pSegs := pattern.Segments()
	tSegs := t.Segments()

	for i, pSeg := range pSegs {
		if pSeg == WildcardMulti {
			// Trailing multi wildcard swallows the rest, including zero segments.
			return i == len(pSegs)-1
		}
		if i >= len(tSegs) {
			return false
		}
		if pSeg != WildcardSingle && pSeg != tSegs[i] {
			return false
		}
	}

	return len(pSegs) == len(tSegs)
}
