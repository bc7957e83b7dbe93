package overlay

import (
	"strings"

	"github.com/rivo/uniseg"
)

// MaxTipWidth caps measured tip width (content cells, excluding the
// border box).
const MaxTipWidth = 40

// lineWidth measures one line in terminal cells, grapheme-cluster aware.
func lineWidth(s string) int {
	return uniseg.StringWidth(s)
}

// textWidth returns the widest line of s in cells.
func textWidth(s string) int {
	max := 0
	for _, line := range strings.Split(s, "\n") {
		if w := lineWidth(line); w > max {
			max = w
		}
	}
	return max
}

// lineCount returns the number of lines in s, zero for empty.
func lineCount(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}

// Measure computes the tip box size for a title and optional body content.
// The box includes a one-cell border on each side; title and content are
// separated by a rule line when both are present.
func Measure(title, content string) Size {
	w := textWidth(title)
	if cw := textWidth(content); cw > w {
		w = cw
	}
	if w > MaxTipWidth {
		w = MaxTipWidth
	}
	if w == 0 {
		w = 1
	}

	h := lineCount(title) + lineCount(content)
	if lineCount(title) > 0 && lineCount(content) > 0 {
		h++ // separator rule
	}
	if h == 0 {
		h = 1
	}

	return Size{W: w + 2, H: h + 2}
}
