// Package config defines the overlay configuration surface consumed by
// trigger controllers and overlay templates.
//
// Props is a plain value: the trigger core never reaches into loaders or
// files. Raw fields that accept heterogeneous input (Triggers, Delay,
// FallbackPlacement) are normalized by the consumer with pure functions;
// re-normalization happens on an explicit configuration-changed
// notification (see the notify sub-package).
package config

import "time"

// Props is the raw configuration for one overlay controller.
type Props struct {
	// ID overrides the generated component id.
	ID string

	// Triggers is the raw trigger configuration: a string of
	// whitespace-separated tokens or a list of strings. Recognized tokens
	// are click, hover, focus, blur and manual.
	Triggers any

	// Placement is the preferred overlay side: top, bottom, left, right
	// or auto.
	Placement string

	// FallbackPlacement lists placements to try when the preferred side
	// does not fit: a string or list of strings. Empty means flip to the
	// opposite side.
	FallbackPlacement any

	// Title is the overlay title text.
	Title string

	// Content is the overlay body text (popovers only).
	Content string

	// Variant selects a color variant (primary, danger, ...).
	Variant string

	// CustomClass is an extra class token applied to the overlay root.
	CustomClass string

	// Target is the id of an alternate host element. Empty means the
	// element the controller was created on.
	Target string

	// Container is the id of the element the overlay mounts into. Empty
	// means the document body.
	Container string

	// Boundary constrains placement: "viewport" (default) or the id of a
	// boundary element.
	Boundary string

	// BoundaryPadding keeps the overlay this many cells inside the
	// boundary.
	BoundaryPadding int

	// ArrowPadding keeps the arrow this many cells from the overlay
	// corners.
	ArrowPadding int

	// Offset shifts the overlay along its placement axis.
	Offset int

	// NoFade disables the show/hide transition.
	NoFade bool

	// Delay is the raw show/hide delay: a number of milliseconds, a
	// numeric string, or a {show, hide} record.
	Delay any

	// Disabled starts the controller disabled.
	Disabled bool

	// Interval is the visibility poll period while the overlay is open.
	// Zero means DefaultInterval.
	Interval time.Duration
}

// DefaultInterval is the visibility poll period used when Props.Interval
// is zero.
const DefaultInterval = 100 * time.Millisecond

// DefaultFadeDuration is the show/hide transition length when fading is
// enabled.
const DefaultFadeDuration = 150 * time.Millisecond

// DefaultsFor returns the default Props for an overlay kind name
// ("tooltip" or "popover"). Unknown kinds get tooltip defaults.
func DefaultsFor(kind string) Props {
	switch kind {
	case "popover":
		return Props{
			Triggers:  "click",
			Placement: "right",
			Boundary:  "viewport",
		}
	default:
		return Props{
			Triggers:  "hover focus",
			Placement: "top",
			Boundary:  "viewport",
		}
	}
}

// Merge overlays o on top of p: set fields of o win. String fields win
// when non-empty, numeric fields when non-zero, raw any fields when
// non-nil. Boolean flags are OR-ed.
func (p Props) Merge(o Props) Props {
	out := p
	if o.ID != "" {
		out.ID = o.ID
	}
	if o.Triggers != nil {
		out.Triggers = o.Triggers
	}
	if o.Placement != "" {
		out.Placement = o.Placement
	}
	if o.FallbackPlacement != nil {
		out.FallbackPlacement = o.FallbackPlacement
	}
	if o.Title != "" {
		out.Title = o.Title
	}
	if o.Content != "" {
		out.Content = o.Content
	}
	if o.Variant != "" {
		out.Variant = o.Variant
	}
	if o.CustomClass != "" {
		out.CustomClass = o.CustomClass
	}
	if o.Target != "" {
		out.Target = o.Target
	}
	if o.Container != "" {
		out.Container = o.Container
	}
	if o.Boundary != "" {
		out.Boundary = o.Boundary
	}
	if o.BoundaryPadding != 0 {
		out.BoundaryPadding = o.BoundaryPadding
	}
	if o.ArrowPadding != 0 {
		out.ArrowPadding = o.ArrowPadding
	}
	if o.Offset != 0 {
		out.Offset = o.Offset
	}
	out.NoFade = out.NoFade || o.NoFade
	if o.Delay != nil {
		out.Delay = o.Delay
	}
	out.Disabled = out.Disabled || o.Disabled
	if o.Interval != 0 {
		out.Interval = o.Interval
	}
	return out
}

// FromMap builds Props from a decoded configuration map. Unknown keys are
// ignored; values of the wrong shape are left for the consumer's
// normalizers to reject safely.
func FromMap(m map[string]any) Props {
	var p Props
	if m == nil {
		return p
	}

	str := func(key string) string {
		if v, ok := m[key].(string); ok {
			return v
		}
		return ""
	}
	num := func(key string) int {
		switch v := m[key].(type) {
		case int:
			return v
		case int64:
			return int(v)
		case float64:
			return int(v)
		}
		return 0
	}
	flag := func(key string) bool {
		v, _ := m[key].(bool)
		return v
	}

	p.ID = str("id")
	p.Triggers = m["triggers"]
	p.Placement = str("placement")
	p.FallbackPlacement = m["fallbackPlacement"]
	p.Title = str("title")
	p.Content = str("content")
	p.Variant = str("variant")
	p.CustomClass = str("customClass")
	p.Target = str("target")
	p.Container = str("container")
	p.Boundary = str("boundary")
	p.BoundaryPadding = num("boundaryPadding")
	p.ArrowPadding = num("arrowPadding")
	p.Offset = num("offset")
	p.NoFade = flag("noFade")
	p.Delay = m["delay"]
	p.Disabled = flag("disabled")
	if ms := num("interval"); ms > 0 {
		p.Interval = time.Duration(ms) * time.Millisecond
	}
	return p
}
