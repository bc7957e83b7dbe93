// Package overlay implements the floating overlay template: a mountable
// tip element with placement computation, variant styling and a four-stage
// lifecycle (show, shown, hide, hidden) reported back to its owner.
//
// The trigger controller owns at most one Template at a time and drives it
// exclusively through Show and Hide; everything else arrives as callbacks.
package overlay

// Kind selects the overlay flavor. The lifecycle machinery is identical
// across kinds; only rendering and default configuration differ.
type Kind uint8

const (
	// KindTooltip is a short label shown near the host, title only.
	KindTooltip Kind = iota

	// KindPopover is a richer surface with a title and body content.
	KindPopover
)

// String returns the kind name used in topics and class names.
func (k Kind) String() string {
	switch k {
	case KindPopover:
		return "popover"
	default:
		return "tooltip"
	}
}

// HasContent reports whether the kind renders body content.
func (k Kind) HasContent() bool {
	return k == KindPopover
}

// ParseKind maps a kind name to a Kind. Unknown names map to KindTooltip.
func ParseKind(s string) Kind {
	if s == "popover" {
		return KindPopover
	}
	return KindTooltip
}
