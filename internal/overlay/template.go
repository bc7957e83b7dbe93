package overlay

import (
	"sync"
	"time"

	"github.com/mfields/hoverlay/internal/clock"
	"github.com/mfields/hoverlay/internal/dom"
)

// State is the template lifecycle stage.
type State uint8

const (
	// StateCreated means the template exists but is not mounted.
	StateCreated State = iota

	// StateShowing means the tip is mounted and transitioning in.
	StateShowing

	// StateShown means the tip is fully visible.
	StateShown

	// StateHiding means the tip is transitioning out.
	StateHiding

	// StateHidden means the tip is unmounted and the template is dead.
	StateHidden
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateShowing:
		return "showing"
	case StateShown:
		return "shown"
	case StateHiding:
		return "hiding"
	case StateHidden:
		return "hidden"
	default:
		return "unknown"
	}
}

// Callbacks are the lifecycle signals a Template reports to its owner.
// All callbacks are invoked without internal locks held; nil callbacks
// are skipped.
type Callbacks struct {
	// OnShow fires when the tip has been inserted but is not yet visible.
	OnShow func()

	// OnShown fires when the tip is fully visible.
	OnShown func()

	// OnHide fires when the tip starts hiding.
	OnHide func()

	// OnHidden fires when the tip is fully hidden and unmounted; the
	// template is dead afterwards.
	OnHidden func()

	// OnSelfDestruct fires instead of the hide/hidden pair when mounting
	// fails; the template is dead afterwards.
	OnSelfDestruct func()

	// OnEvent receives focus and hover events occurring inside the tip.
	OnEvent func(*dom.Event)
}

// Config describes one overlay instance.
type Config struct {
	// ID is the tip element id (also the aria-describedby token).
	ID string

	// Kind selects tooltip or popover rendering.
	Kind Kind

	// Placement is the preferred side; Fallbacks are tried when it
	// doesn't fit.
	Placement Placement
	Fallbacks []Placement

	// Title and Content are the rendered text. Content is ignored for
	// kinds without body content.
	Title   string
	Content string

	// Variant and CustomClass adjust the tip appearance.
	Variant     string
	CustomClass string

	// Offset shifts the tip along the cross axis.
	Offset int

	// NoFade disables the transition delay; FadeDuration is the
	// transition length otherwise (DefaultFadeDuration when zero).
	NoFade       bool
	FadeDuration time.Duration

	// ArrowPadding keeps the arrow away from tip corners;
	// BoundaryPadding insets the usable boundary.
	ArrowPadding    int
	BoundaryPadding int

	// Boundary constrains placement; nil means the container.
	Boundary *dom.Element

	// Container is the element the tip mounts into.
	Container *dom.Element

	// Target is the element the tip points at.
	Target *dom.Element
}

// DefaultFadeDuration matches the stock transition length.
const DefaultFadeDuration = 150 * time.Millisecond

// Template is a single mountable overlay instance. It is single-use:
// after hidden or self-destruct it cannot be shown again.
type Template struct {
	mu sync.Mutex

	cfg Config
	cb  Callbacks
	clk clock.Clock

	state     State
	placement Placement
	tip       *dom.Element
	arrow     *dom.Element
	inner     *dom.Element
	forward   []dom.ListenerHandle
	fadeTimer clock.Timer
	destroyed bool
}

// NewTemplate creates a template. A nil clock uses the system clock.
func NewTemplate(cfg Config, cb Callbacks, clk clock.Clock) *Template {
	if clk == nil {
		clk = clock.System()
	}
	if cfg.FadeDuration <= 0 {
		cfg.FadeDuration = DefaultFadeDuration
	}
	return &Template{
		cfg:   cfg,
		cb:    cb,
		clk:   clk,
		state: StateCreated,
	}
}

// State returns the current lifecycle stage.
func (t *Template) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// TipElement returns the mounted tip element, nil before Show or after
// teardown.
func (t *Template) TipElement() *dom.Element {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tip
}

// Placement returns the placement chosen during mounting.
func (t *Template) Placement() Placement {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.placement
}

// Show mounts the tip and runs the show transition. Mount failure (no
// container, detached container, no target) reports OnSelfDestruct and
// kills the template. Show is a no-op unless the template is freshly
// created.
func (t *Template) Show() {
	t.mu.Lock()
	if t.destroyed || t.state != StateCreated {
		t.mu.Unlock()
		return
	}

	cfg := t.cfg
	if cfg.Container == nil || !cfg.Container.IsAttached() || cfg.Target == nil {
		t.state = StateHidden
		t.destroyed = true
		t.mu.Unlock()
		if t.cb.OnSelfDestruct != nil {
			t.cb.OnSelfDestruct()
		}
		return
	}

	t.buildTip()
	t.position()
	cfg.Container.AppendChild(t.tip)
	t.attachForwarders()
	t.state = StateShowing
	t.mu.Unlock()

	if t.cb.OnShow != nil {
		t.cb.OnShow()
	}

	if cfg.NoFade {
		t.finishShow()
		return
	}
	t.mu.Lock()
	if t.state == StateShowing {
		t.fadeTimer = t.clk.AfterFunc(cfg.FadeDuration, t.finishShow)
	}
	t.mu.Unlock()
}

// Hide runs the hide transition and tears the tip down. Valid while
// showing or shown; otherwise a no-op.
func (t *Template) Hide() {
	t.mu.Lock()
	if t.destroyed || (t.state != StateShowing && t.state != StateShown) {
		t.mu.Unlock()
		return
	}
	if t.fadeTimer != nil {
		t.fadeTimer.Stop()
		t.fadeTimer = nil
	}
	t.state = StateHiding
	if t.tip != nil {
		t.tip.RemoveClass("show")
	}
	noFade := t.cfg.NoFade
	fade := t.cfg.FadeDuration
	t.mu.Unlock()

	if t.cb.OnHide != nil {
		t.cb.OnHide()
	}

	if noFade {
		t.finishHide()
		return
	}
	t.mu.Lock()
	if t.state == StateHiding {
		t.fadeTimer = t.clk.AfterFunc(fade, t.finishHide)
	}
	t.mu.Unlock()
}

// Destroy tears the template down without lifecycle callbacks. Safe to
// call at any time, any number of times.
func (t *Template) Destroy() {
	t.mu.Lock()
	if t.destroyed {
		t.mu.Unlock()
		return
	}
	t.destroyed = true
	t.state = StateHidden
	if t.fadeTimer != nil {
		t.fadeTimer.Stop()
		t.fadeTimer = nil
	}
	t.teardownLocked()
	t.mu.Unlock()
}

// finishShow completes the show transition.
func (t *Template) finishShow() {
	t.mu.Lock()
	if t.destroyed || t.state != StateShowing {
		t.mu.Unlock()
		return
	}
	t.state = StateShown
	t.fadeTimer = nil
	if t.tip != nil {
		t.tip.AddClass("show")
	}
	t.mu.Unlock()

	if t.cb.OnShown != nil {
		t.cb.OnShown()
	}
}

// finishHide completes the hide transition and kills the template.
func (t *Template) finishHide() {
	t.mu.Lock()
	if t.destroyed || t.state != StateHiding {
		t.mu.Unlock()
		return
	}
	t.destroyed = true
	t.state = StateHidden
	t.fadeTimer = nil
	t.teardownLocked()
	t.mu.Unlock()

	if t.cb.OnHidden != nil {
		t.cb.OnHidden()
	}
}

// buildTip assembles the tip element tree. Caller holds the lock.
func (t *Template) buildTip() {
	cfg := t.cfg
	kindClass := cfg.Kind.String()

	tip := dom.NewElement("div", dom.WithID(cfg.ID))
	tip.SetAttribute("role", "tooltip")
	tip.SetAttribute("tabindex", "-1")
	tip.AddClass(kindClass)
	tip.AddClass("b-" + kindClass)
	if cfg.Variant != "" {
		tip.AddClass("b-" + kindClass + "-" + cfg.Variant)
	}
	if cfg.CustomClass != "" {
		tip.AddClass(cfg.CustomClass)
	}
	if !cfg.NoFade {
		tip.AddClass("fade")
	}

	style := VariantStyle(cfg.Variant)
	tip.SetAttribute("data-bg", style.Background)
	tip.SetAttribute("data-border", style.Border)
	tip.SetAttribute("data-fg", style.Foreground)

	arrow := dom.NewElement("div")
	arrow.AddClass("arrow")
	tip.AppendChild(arrow)

	inner := dom.NewElement("div")
	if cfg.Kind.HasContent() {
		inner.AddClass(kindClass + "-body")
		if cfg.Title != "" {
			header := dom.NewElement("div")
			header.AddClass(kindClass + "-header")
			header.SetAttribute("text", cfg.Title)
			tip.AppendChild(header)
		}
		inner.SetAttribute("text", cfg.Content)
	} else {
		inner.AddClass(kindClass + "-inner")
		inner.SetAttribute("text", cfg.Title)
	}
	tip.AppendChild(inner)

	t.tip = tip
	t.arrow = arrow
	t.inner = inner
}

// position computes and applies the tip and arrow rects. Caller holds the
// lock.
func (t *Template) position() {
	cfg := t.cfg

	content := cfg.Content
	if !cfg.Kind.HasContent() {
		content = ""
	}
	size := Measure(cfg.Title, content)

	boundaryEl := cfg.Boundary
	if boundaryEl == nil {
		boundaryEl = cfg.Container
	}
	boundary := boundaryEl.Rect()

	rect, placement := Compute(cfg.Target.Rect(), size, boundary, cfg.Placement, cfg.Fallbacks, cfg.Offset, cfg.BoundaryPadding)
	t.placement = placement
	t.tip.SetRect(rect)
	t.tip.AddClass("bs-" + cfg.Kind.String() + "-" + placement.String())
	t.arrow.SetRect(ArrowRect(rect, cfg.Target.Rect(), placement, cfg.ArrowPadding))
}

// attachForwarders relays focus/hover events inside the tip to the owner.
// Caller holds the lock.
func (t *Template) attachForwarders() {
	if t.cb.OnEvent == nil {
		return
	}
	for _, typ := range []dom.EventType{dom.EventFocusIn, dom.EventFocusOut, dom.EventMouseEnter, dom.EventMouseLeave} {
		t.forward = append(t.forward, t.tip.AddListener(typ, t.cb.OnEvent))
	}
}

// teardownLocked unmounts the tip and drops forwarders. Caller holds the
// lock.
func (t *Template) teardownLocked() {
	for _, h := range t.forward {
		h.Remove()
	}
	t.forward = nil
	if t.tip != nil {
		t.tip.Detach()
		t.tip = nil
		t.arrow = nil
		t.inner = nil
	}
}
