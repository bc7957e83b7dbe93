package trigger

// activeTriggers tracks which trigger kinds currently hold the overlay
// open. The overlay closes only when every kind is inactive.
type activeTriggers struct {
	hover  bool
	click  bool
	focus  bool
	manual bool
}

// any reports whether at least one trigger kind is active.
func (a *activeTriggers) any() bool {
	return a.hover || a.click || a.focus || a.manual
}

// clear deactivates every trigger kind.
func (a *activeTriggers) clear() {
	*a = activeTriggers{}
}

// hoverState records the last transition intent so a delayed show or hide
// timer can re-check it before acting. An intervening opposite transition
// flips the state and the stale timer becomes a no-op.
type hoverState string

const (
	hoverNone hoverState = ""
	hoverIn   hoverState = "in"
	hoverOut  hoverState = "out"
)
