package config

import (
	"testing"
	"time"
)

func TestDefaultsFor(t *testing.T) {
	tip := DefaultsFor("tooltip")
	if tip.Triggers != "hover focus" || tip.Placement != "top" {
		t.Errorf("tooltip defaults = %+v", tip)
	}

	pop := DefaultsFor("popover")
	if pop.Triggers != "click" || pop.Placement != "right" {
		t.Errorf("popover defaults = %+v", pop)
	}

	// Unknown kinds fall back to tooltip defaults.
	if got := DefaultsFor("bogus"); got.Placement != "top" {
		t.Errorf("unknown kind placement = %q, want top", got.Placement)
	}
}

func TestMerge(t *testing.T) {
	base := DefaultsFor("tooltip")
	merged := base.Merge(Props{
		Placement: "bottom",
		Delay:     250,
		NoFade:    true,
	})

	if merged.Placement != "bottom" {
		t.Errorf("Placement = %q, want bottom", merged.Placement)
	}
	if merged.Delay != 250 {
		t.Errorf("Delay = %v, want 250", merged.Delay)
	}
	if !merged.NoFade {
		t.Error("NoFade should be set")
	}
	// Unset override fields keep the base values.
	if merged.Triggers != "hover focus" {
		t.Errorf("Triggers = %v, want base value", merged.Triggers)
	}
	if merged.Boundary != "viewport" {
		t.Errorf("Boundary = %q, want base value", merged.Boundary)
	}
}

func TestFromMap(t *testing.T) {
	p := FromMap(map[string]any{
		"placement":       "left",
		"triggers":        "click blur",
		"delay":           map[string]any{"show": 100, "hide": 50},
		"offset":          int64(4),
		"boundaryPadding": float64(2),
		"noFade":          true,
		"interval":        200,
		"unknownKey":      "ignored",
	})

	if p.Placement != "left" {
		t.Errorf("Placement = %q", p.Placement)
	}
	if p.Triggers != "click blur" {
		t.Errorf("Triggers = %v", p.Triggers)
	}
	if p.Offset != 4 || p.BoundaryPadding != 2 {
		t.Errorf("numeric conversion failed: offset=%d padding=%d", p.Offset, p.BoundaryPadding)
	}
	if !p.NoFade {
		t.Error("NoFade should be true")
	}
	if p.Interval != 200*time.Millisecond {
		t.Errorf("Interval = %v, want 200ms", p.Interval)
	}
	if p.Delay == nil {
		t.Error("Delay record should be carried through raw")
	}
}

func TestFromMapNil(t *testing.T) {
	p := FromMap(nil)
	if p.Placement != "" || p.Triggers != nil {
		t.Errorf("expected zero Props, got %+v", p)
	}
}
