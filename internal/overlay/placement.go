package overlay

import (
	"strings"

	"github.com/mfields/hoverlay/internal/dom"
)

// Placement is the side of the target the overlay attaches to.
type Placement uint8

const (
	// PlacementAuto picks the side with the most room.
	PlacementAuto Placement = iota

	// PlacementTop places the overlay above the target.
	PlacementTop

	// PlacementBottom places the overlay below the target.
	PlacementBottom

	// PlacementLeft places the overlay to the left of the target.
	PlacementLeft

	// PlacementRight places the overlay to the right of the target.
	PlacementRight
)

// String returns the placement name.
func (p Placement) String() string {
	switch p {
	case PlacementTop:
		return "top"
	case PlacementBottom:
		return "bottom"
	case PlacementLeft:
		return "left"
	case PlacementRight:
		return "right"
	default:
		return "auto"
	}
}

// Opposite returns the flipped placement. Auto flips to itself.
func (p Placement) Opposite() Placement {
	switch p {
	case PlacementTop:
		return PlacementBottom
	case PlacementBottom:
		return PlacementTop
	case PlacementLeft:
		return PlacementRight
	case PlacementRight:
		return PlacementLeft
	default:
		return PlacementAuto
	}
}

// ParsePlacement maps a placement name to a Placement. Unknown names map
// to PlacementAuto.
func ParsePlacement(s string) Placement {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top":
		return PlacementTop
	case "bottom":
		return PlacementBottom
	case "left":
		return PlacementLeft
	case "right":
		return PlacementRight
	default:
		return PlacementAuto
	}
}

// ParseFallbacks normalizes raw fallback-placement configuration (string,
// []string or []any) into a placement list. Invalid entries are dropped.
func ParseFallbacks(raw any) []Placement {
	var names []string
	switch v := raw.(type) {
	case nil:
		return nil
	case string:
		names = strings.Fields(v)
	case []string:
		names = v
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				names = append(names, s)
			}
		}
	default:
		return nil
	}

	var out []Placement
	for _, name := range names {
		if name == "" {
			continue
		}
		if p := ParsePlacement(name); p != PlacementAuto {
			out = append(out, p)
		}
	}
	return out
}

// Size is the measured tip dimensions.
type Size struct {
	W, H int
}

// Compute positions a tip of the given size against the target within the
// boundary. The preferred placement is tried first, then the fallbacks
// (the opposite side when none are given), then the remaining sides. The
// first side the tip fully fits on wins; if none fit, the preferred side
// is used and the rect is clamped into the boundary.
//
// offset shifts the tip along the cross axis; padding insets the usable
// boundary.
func Compute(target dom.Rect, tip Size, boundary dom.Rect, preferred Placement, fallbacks []Placement, offset, padding int) (dom.Rect, Placement) {
	inner := dom.Rect{
		X: boundary.X + padding,
		Y: boundary.Y + padding,
		W: boundary.W - 2*padding,
		H: boundary.H - 2*padding,
	}

	candidates := candidateOrder(preferred, fallbacks, target, tip, inner)

	first := candidates[0]
	for _, p := range candidates {
		rect := place(target, tip, p, offset)
		if fits(rect, inner) {
			return rect, p
		}
	}

	// Nothing fits; clamp the first candidate into the boundary.
	rect := clamp(place(target, tip, first, offset), inner)
	return rect, first
}

// candidateOrder builds the placement try-order, resolving Auto to the
// side with the most available room.
func candidateOrder(preferred Placement, fallbacks []Placement, target dom.Rect, tip Size, boundary dom.Rect) []Placement {
	if preferred == PlacementAuto {
		preferred = roomiest(target, boundary)
	}

	order := []Placement{preferred}
	if len(fallbacks) == 0 {
		order = append(order, preferred.Opposite())
	} else {
		order = append(order, fallbacks...)
	}
	for _, p := range []Placement{PlacementTop, PlacementBottom, PlacementLeft, PlacementRight} {
		seen := false
		for _, o := range order {
			if o == p {
				seen = true
				break
			}
		}
		if !seen {
			order = append(order, p)
		}
	}
	return order
}

// roomiest returns the side of the target with the most boundary space.
func roomiest(target dom.Rect, boundary dom.Rect) Placement {
	space := map[Placement]int{
		PlacementTop:    target.Y - boundary.Y,
		PlacementBottom: (boundary.Y + boundary.H) - (target.Y + target.H),
		PlacementLeft:   target.X - boundary.X,
		PlacementRight:  (boundary.X + boundary.W) - (target.X + target.W),
	}
	best := PlacementTop
	for _, p := range []Placement{PlacementBottom, PlacementLeft, PlacementRight} {
		if space[p] > space[best] {
			best = p
		}
	}
	return best
}

// place computes the tip rect for a placement, centered on the cross axis
// and shifted by offset.
func place(target dom.Rect, tip Size, p Placement, offset int) dom.Rect {
	centerX := target.X + (target.W-tip.W)/2 + offset
	centerY := target.Y + (target.H-tip.H)/2 + offset

	switch p {
	case PlacementBottom:
		return dom.Rect{X: centerX, Y: target.Y + target.H, W: tip.W, H: tip.H}
	case PlacementLeft:
		return dom.Rect{X: target.X - tip.W, Y: centerY, W: tip.W, H: tip.H}
	case PlacementRight:
		return dom.Rect{X: target.X + target.W, Y: centerY, W: tip.W, H: tip.H}
	default: // top, and the clamped fallback for auto
		return dom.Rect{X: centerX, Y: target.Y - tip.H, W: tip.W, H: tip.H}
	}
}

// fits reports whether rect lies fully inside boundary.
func fits(rect, boundary dom.Rect) bool {
	return rect.X >= boundary.X &&
		rect.Y >= boundary.Y &&
		rect.X+rect.W <= boundary.X+boundary.W &&
		rect.Y+rect.H <= boundary.Y+boundary.H
}

// clamp moves rect inside boundary where possible.
func clamp(rect, boundary dom.Rect) dom.Rect {
	if rect.X < boundary.X {
		rect.X = boundary.X
	}
	if rect.Y < boundary.Y {
		rect.Y = boundary.Y
	}
	if over := rect.X + rect.W - (boundary.X + boundary.W); over > 0 {
		rect.X -= over
	}
	if over := rect.Y + rect.H - (boundary.Y + boundary.H); over > 0 {
		rect.Y -= over
	}
	return rect
}

// ArrowRect positions the 1x1 arrow cell on the tip edge facing the
// target, clamped arrowPadding cells away from the tip corners.
func ArrowRect(tipRect, target dom.Rect, p Placement, arrowPadding int) dom.Rect {
	arrow := dom.Rect{W: 1, H: 1}

	switch p {
	case PlacementTop, PlacementBottom:
		arrow.X = clampInt(target.X+target.W/2, tipRect.X+arrowPadding, tipRect.X+tipRect.W-1-arrowPadding)
		if p == PlacementTop {
			arrow.Y = tipRect.Y + tipRect.H - 1
		} else {
			arrow.Y = tipRect.Y
		}
	case PlacementLeft, PlacementRight:
		arrow.Y = clampInt(target.Y+target.H/2, tipRect.Y+arrowPadding, tipRect.Y+tipRect.H-1-arrowPadding)
		if p == PlacementLeft {
			arrow.X = tipRect.X + tipRect.W - 1
		} else {
			arrow.X = tipRect.X
		}
	}
	return arrow
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
