package overlay

import (
	"testing"

	"github.com/mfields/hoverlay/internal/dom"
)

func TestParsePlacement(t *testing.T) {
	tests := []struct {
		in   string
		want Placement
	}{
		{"top", PlacementTop},
		{"BOTTOM", PlacementBottom},
		{" left ", PlacementLeft},
		{"right", PlacementRight},
		{"auto", PlacementAuto},
		{"diagonal", PlacementAuto},
		{"", PlacementAuto},
	}
	for _, tt := range tests {
		if got := ParsePlacement(tt.in); got != tt.want {
			t.Errorf("ParsePlacement(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFallbacks(t *testing.T) {
	if got := ParseFallbacks("bottom right"); len(got) != 2 || got[0] != PlacementBottom || got[1] != PlacementRight {
		t.Errorf("string fallbacks = %v", got)
	}
	if got := ParseFallbacks([]string{"left", "junk", ""}); len(got) != 1 || got[0] != PlacementLeft {
		t.Errorf("slice fallbacks = %v", got)
	}
	if got := ParseFallbacks([]any{"top", 42}); len(got) != 1 || got[0] != PlacementTop {
		t.Errorf("any-slice fallbacks = %v", got)
	}
	if got := ParseFallbacks(nil); got != nil {
		t.Errorf("nil fallbacks = %v", got)
	}
	if got := ParseFallbacks(99); got != nil {
		t.Errorf("junk fallbacks = %v", got)
	}
}

func TestOpposite(t *testing.T) {
	pairs := map[Placement]Placement{
		PlacementTop:    PlacementBottom,
		PlacementBottom: PlacementTop,
		PlacementLeft:   PlacementRight,
		PlacementRight:  PlacementLeft,
		PlacementAuto:   PlacementAuto,
	}
	for p, want := range pairs {
		if got := p.Opposite(); got != want {
			t.Errorf("%v.Opposite() = %v, want %v", p, got, want)
		}
	}
}

func TestComputePreferredFits(t *testing.T) {
	boundary := dom.Rect{X: 0, Y: 0, W: 80, H: 24}
	target := dom.Rect{X: 30, Y: 10, W: 10, H: 1}
	tip := Size{W: 12, H: 3}

	rect, placement := Compute(target, tip, boundary, PlacementTop, nil, 0, 0)
	if placement != PlacementTop {
		t.Errorf("placement = %v, want top", placement)
	}
	if rect.Y+rect.H != target.Y {
		t.Errorf("tip bottom = %d, want %d (flush above target)", rect.Y+rect.H, target.Y)
	}
}

func TestComputeFlipsToOpposite(t *testing.T) {
	boundary := dom.Rect{X: 0, Y: 0, W: 80, H: 24}
	// Target at the top edge: no room above.
	target := dom.Rect{X: 30, Y: 0, W: 10, H: 1}
	tip := Size{W: 12, H: 3}

	rect, placement := Compute(target, tip, boundary, PlacementTop, nil, 0, 0)
	if placement != PlacementBottom {
		t.Errorf("placement = %v, want bottom (flipped)", placement)
	}
	if rect.Y != target.Y+target.H {
		t.Errorf("tip top = %d, want %d (flush below target)", rect.Y, target.Y+target.H)
	}
}

func TestComputeHonorsFallbackList(t *testing.T) {
	boundary := dom.Rect{X: 0, Y: 0, W: 80, H: 24}
	// No room above, but the explicit fallback beats the implicit flip.
	target := dom.Rect{X: 30, Y: 1, W: 10, H: 1}
	tip := Size{W: 12, H: 3}

	_, placement := Compute(target, tip, boundary, PlacementTop, []Placement{PlacementRight}, 0, 0)
	if placement != PlacementRight {
		t.Errorf("placement = %v, want right (explicit fallback)", placement)
	}
}

func TestComputeAutoPicksRoomiestSide(t *testing.T) {
	boundary := dom.Rect{X: 0, Y: 0, W: 80, H: 24}
	// Near the top-left corner: most room is right or bottom; right wins
	// on distance.
	target := dom.Rect{X: 2, Y: 2, W: 4, H: 1}
	tip := Size{W: 10, H: 3}

	_, placement := Compute(target, tip, boundary, PlacementAuto, nil, 0, 0)
	if placement != PlacementRight {
		t.Errorf("placement = %v, want right", placement)
	}
}

func TestComputeClampsWhenNothingFits(t *testing.T) {
	boundary := dom.Rect{X: 0, Y: 0, W: 10, H: 5}
	target := dom.Rect{X: 4, Y: 2, W: 2, H: 1}
	tip := Size{W: 9, H: 4}

	rect, _ := Compute(target, tip, boundary, PlacementTop, nil, 0, 0)
	if !fits(rect, boundary) {
		t.Errorf("clamped rect %+v escapes boundary %+v", rect, boundary)
	}
}

func TestComputeBoundaryPadding(t *testing.T) {
	boundary := dom.Rect{X: 0, Y: 0, W: 80, H: 24}
	// Fits above only without padding.
	target := dom.Rect{X: 30, Y: 3, W: 10, H: 1}
	tip := Size{W: 12, H: 3}

	_, noPad := Compute(target, tip, boundary, PlacementTop, nil, 0, 0)
	if noPad != PlacementTop {
		t.Fatalf("placement without padding = %v, want top", noPad)
	}
	_, padded := Compute(target, tip, boundary, PlacementTop, nil, 0, 2)
	if padded == PlacementTop {
		t.Error("padding should make the top placement overflow")
	}
}

func TestArrowRect(t *testing.T) {
	target := dom.Rect{X: 30, Y: 10, W: 10, H: 1}
	tipRect := dom.Rect{X: 29, Y: 7, W: 12, H: 3}

	arrow := ArrowRect(tipRect, target, PlacementTop, 0)
	if arrow.Y != tipRect.Y+tipRect.H-1 {
		t.Errorf("arrow Y = %d, want bottom edge of tip", arrow.Y)
	}
	if arrow.X != target.X+target.W/2 {
		t.Errorf("arrow X = %d, want target center", arrow.X)
	}

	// Arrow padding clamps toward the middle.
	narrow := dom.Rect{X: 0, Y: 7, W: 6, H: 3}
	clamped := ArrowRect(narrow, dom.Rect{X: 0, Y: 10, W: 1, H: 1}, PlacementTop, 2)
	if clamped.X < narrow.X+2 {
		t.Errorf("arrow X = %d escapes arrow padding", clamped.X)
	}
}
