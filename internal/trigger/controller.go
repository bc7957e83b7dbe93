// Package trigger implements the trigger-and-lifecycle controller for a
// floating overlay bound to a host element. The controller normalizes the
// raw trigger and delay configuration, tracks which trigger kinds (hover,
// click, focus, manual) currently hold the overlay open, applies show and
// hide delay timers with re-validation, and drives an at-most-one overlay
// template through its lifecycle.
//
// All state mutation is serialized behind one mutex; callbacks, bus
// publishes and template calls happen outside the lock.
package trigger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mfields/hoverlay/internal/clock"
	"github.com/mfields/hoverlay/internal/config"
	"github.com/mfields/hoverlay/internal/dom"
	"github.com/mfields/hoverlay/internal/event"
	"github.com/mfields/hoverlay/internal/logging"
	"github.com/mfields/hoverlay/internal/overlay"
)

// Option configures a Controller.
type Option func(*Controller)

// WithBus sets the event bus for notifications and broadcast commands.
// Without it the controller creates a private bus.
func WithBus(b event.Bus) Option {
	return func(c *Controller) { c.bus = b }
}

// WithClock sets the timer source. Defaults to the system clock.
func WithClock(clk clock.Clock) Option {
	return func(c *Controller) { c.clk = clk }
}

// WithLogger sets the logger. Defaults to a discarding logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *Controller) { c.log = l }
}

type observerEntry struct {
	id uint64
	fn Observer
}

// Controller is the long-lived trigger state machine bound 1:1 to a host
// element. Create with New, tear down with Destroy.
type Controller struct {
	mu sync.Mutex

	kind overlay.Kind
	id   string
	host *dom.Element
	bus  event.Bus
	clk  clock.Clock
	log  *logging.Logger

	props    config.Props
	triggers []string
	delay    Delay
	interval time.Duration

	active  activeTriggers
	hover   hoverState
	shown   bool
	enabled bool
	tmpl    *overlay.Template

	// pendingTimer is the single live show or hide delay timer; pollTimer
	// drives the while-open visibility poll, invalidated by pollGen.
	pendingTimer clock.Timer
	pollTimer    clock.Timer
	pollGen      uint64

	hostListeners []dom.ListenerHandle
	openListeners []dom.ListenerHandle
	busSubs       []event.Subscription

	observers    []observerEntry
	nextObserver uint64

	destroyed bool
}

// New creates a controller for the host element and registers its trigger
// listeners and broadcast command subscriptions immediately.
func New(kind overlay.Kind, host *dom.Element, props config.Props, opts ...Option) (*Controller, error) {
	if host == nil {
		return nil, ErrNilHost
	}

	c := &Controller{
		kind:  kind,
		host:  host,
		props: props,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.bus == nil {
		c.bus = event.NewBus()
	}
	if c.clk == nil {
		c.clk = clock.System()
	}
	if c.log == nil {
		c.log = logging.Discard()
	}

	c.id = props.ID
	if c.id == "" {
		c.id = fmt.Sprintf("%s-%s", kind, uuid.NewString()[:8])
	}
	c.log = c.log.WithComponent(c.id)
	c.enabled = !props.Disabled
	c.recomputeLocked()

	c.attachHostListeners()
	c.subscribeCommands()
	return c, nil
}

// recomputeLocked re-derives the normalized fields from the raw props.
// Caller holds the lock (or owns the controller exclusively).
func (c *Controller) recomputeLocked() {
	c.triggers = NormalizeTriggers(c.props.Triggers)
	c.delay = NormalizeDelay(c.props.Delay)
	c.interval = c.props.Interval
	if c.interval <= 0 {
		c.interval = config.DefaultInterval
	}
}

// ID returns the controller's stable component id.
func (c *Controller) ID() string {
	return c.id
}

// Kind returns the overlay kind.
func (c *Controller) Kind() overlay.Kind {
	return c.kind
}

// Host returns the bound host element.
func (c *Controller) Host() *dom.Element {
	return c.host
}

// IsShown reports whether the overlay is currently open.
func (c *Controller) IsShown() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.shown
}

// IsEnabled reports whether trigger handlers are active.
func (c *Controller) IsEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// Triggers returns the canonical trigger set.
func (c *Controller) Triggers() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.triggers))
	copy(out, c.triggers)
	return out
}

// TipElement returns the mounted overlay element, nil when closed.
func (c *Controller) TipElement() *dom.Element {
	c.mu.Lock()
	tmpl := c.tmpl
	c.mu.Unlock()
	if tmpl == nil {
		return nil
	}
	return tmpl.TipElement()
}

// OnNotification registers a local observer for this controller's
// notifications. The returned function removes it.
func (c *Controller) OnNotification(fn Observer) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextObserver++
	id := c.nextObserver
	c.observers = append(c.observers, observerEntry{id: id, fn: fn})
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, o := range c.observers {
			if o.id == id {
				c.observers = append(c.observers[:i], c.observers[i+1:]...)
				return
			}
		}
	}
}

// HandleEvent routes a host (or forwarded tip) event to the matching
// trigger handler. Events whose type is not in the canonical trigger set
// are ignored; everything is a no-op while disabled.
func (c *Controller) HandleEvent(ev *dom.Event) {
	if ev == nil {
		return
	}
	c.mu.Lock()
	if c.destroyed || !c.enabled {
		c.mu.Unlock()
		return
	}
	click := c.hasTriggerLocked(TriggerClick)
	hover := c.hasTriggerLocked(TriggerHover)
	focus := c.hasTriggerLocked(TriggerFocus)
	blur := c.hasTriggerLocked(TriggerBlur)
	c.mu.Unlock()

	switch ev.Type {
	case dom.EventClick:
		if click {
			c.clickToggle()
		}
	case dom.EventMouseEnter:
		if hover {
			c.enter(ev)
		}
	case dom.EventMouseLeave:
		if hover {
			c.leave(ev)
		}
	case dom.EventFocusIn:
		if focus {
			c.enter(ev)
		}
	case dom.EventFocusOut:
		if focus || blur {
			c.focusOut(ev)
		}
	}
}

func (c *Controller) hasTriggerLocked(tok string) bool {
	for _, t := range c.triggers {
		if t == tok {
			return true
		}
	}
	return false
}

// clickToggle flips the click trigger and enters or leaves accordingly.
func (c *Controller) clickToggle() {
	c.mu.Lock()
	c.active.click = !c.active.click
	nowActive := c.active.any()
	c.mu.Unlock()

	if nowActive {
		c.enter(nil)
	} else {
		c.leave(nil)
	}
}

// focusOut applies the containment rule: focus moving between the host
// and the open tip, or staying inside either, does not close the overlay.
func (c *Controller) focusOut(ev *dom.Event) {
	c.mu.Lock()
	tmpl := c.tmpl
	c.mu.Unlock()

	var tip *dom.Element
	if tmpl != nil {
		tip = tmpl.TipElement()
	}

	target, related := ev.Target, ev.RelatedTarget
	if target != nil && related != nil {
		if tip != nil {
			if c.host.Contains(target) && tip.Contains(related) {
				return
			}
			if tip.Contains(target) && c.host.Contains(related) {
				return
			}
			if tip.Contains(target) && tip.Contains(related) {
				return
			}
		}
		if c.host.Contains(target) && c.host.Contains(related) {
			return
		}
	}
	c.leave(ev)
}

// enter marks the event's trigger kind active and opens the overlay after
// the show delay. A nil event marks nothing (click and manual paths set
// their flags themselves). Idempotent while open or pending-open.
func (c *Controller) enter(ev *dom.Event) {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	if ev != nil {
		switch ev.Type {
		case dom.EventMouseEnter:
			c.active.hover = true
		case dom.EventFocusIn:
			c.active.focus = true
		}
	}
	if c.shown {
		c.hover = hoverIn
		c.mu.Unlock()
		return
	}
	// A show timer is already pending; keep its original deadline so a
	// stream of re-enters cannot defer the show.
	if c.hover == hoverIn && c.pendingTimer != nil {
		c.mu.Unlock()
		return
	}
	c.hover = hoverIn
	c.clearPendingLocked()
	delay := c.delay.Show
	if delay <= 0 {
		c.mu.Unlock()
		c.show()
		return
	}
	// The timer re-checks intent before acting; a leave in the meantime
	// flips hover to "out" and the fire becomes a no-op.
	c.pendingTimer = c.clk.AfterFunc(delay, func() {
		if c.hoverIs(hoverIn) {
			c.show()
		}
	})
	c.mu.Unlock()
}

// leave clears the event's trigger kind(s) and closes the overlay after
// the hide delay, but only once no trigger kind is active. A focusout
// with blur in the trigger set dismisses click and hover as well.
func (c *Controller) leave(ev *dom.Event) {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	if ev != nil {
		switch ev.Type {
		case dom.EventMouseLeave:
			c.active.hover = false
		case dom.EventFocusOut:
			c.active.focus = false
			if c.hasTriggerLocked(TriggerBlur) {
				c.active.click = false
				c.active.hover = false
			}
		}
	}
	if c.active.any() {
		c.mu.Unlock()
		return
	}
	c.hover = hoverOut
	c.clearPendingLocked()
	delay := c.delay.Hide
	if delay <= 0 {
		c.mu.Unlock()
		c.hide(false)
		return
	}
	c.pendingTimer = c.clk.AfterFunc(delay, func() {
		if c.hoverIs(hoverOut) {
			c.hide(false)
		}
	})
	c.mu.Unlock()
}

func (c *Controller) hoverIs(s hoverState) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hover == s
}

// clearPendingLocked stops the delay timer. Caller holds the lock.
func (c *Controller) clearPendingLocked() {
	if c.pendingTimer != nil {
		c.pendingTimer.Stop()
		c.pendingTimer = nil
	}
}

// Show opens the overlay programmatically, bypassing delays. Guards and
// the cancelable show notification still apply.
func (c *Controller) Show() {
	c.show()
}

// show mounts the overlay. Preconditions: enabled, not already shown,
// host attached and visible and not an open dropdown toggle, and the
// cancelable show notification not prevented.
func (c *Controller) show() {
	c.mu.Lock()
	if c.destroyed || c.shown || !c.enabled {
		c.mu.Unlock()
		return
	}
	if !c.host.IsAttached() || !c.host.IsVisible() || c.host.DropdownOpen() {
		c.mu.Unlock()
		c.log.Debug("show skipped: host not showable")
		return
	}
	cfg := c.templateConfigLocked()
	clk := c.clk
	c.mu.Unlock()

	tmpl := overlay.NewTemplate(cfg, overlay.Callbacks{
		OnShow:         c.onTipShow,
		OnShown:        c.onTipShown,
		OnHide:         c.onTipHide,
		OnHidden:       c.onTipHidden,
		OnSelfDestruct: c.onTipSelfDestruct,
		OnEvent:        c.HandleEvent,
	}, clk)

	n := c.newNotification(NotifyShow, nil)
	c.dispatch(n)
	if n.DefaultPrevented() {
		// Cancellation must not leave a half-created overlay behind.
		tmpl.Destroy()
		return
	}

	c.mu.Lock()
	if c.destroyed || c.shown {
		c.mu.Unlock()
		tmpl.Destroy()
		return
	}
	c.fixTitleLocked()
	c.tmpl = tmpl
	c.shown = true
	c.mu.Unlock()

	c.host.AddAttributeToken("aria-describedby", c.id)
	tmpl.Show()
}

// Hide closes the overlay, honoring the cancelable hide notification.
func (c *Controller) Hide() {
	c.hide(false)
}

// hide starts the overlay's hide transition. With force the hide
// notification is emitted non-cancelable. The template is destroyed later
// by its own hidden callback, not here.
func (c *Controller) hide(force bool) {
	c.mu.Lock()
	if !c.shown || c.tmpl == nil {
		c.mu.Unlock()
		return
	}
	tmpl := c.tmpl
	c.mu.Unlock()

	n := c.newNotification(NotifyHide, tmpl.TipElement())
	if force {
		n.cancelable = false
	}
	c.dispatch(n)
	if n.DefaultPrevented() {
		return
	}

	c.mu.Lock()
	if !c.shown || c.tmpl != tmpl {
		c.mu.Unlock()
		return
	}
	c.active.clear()
	c.hover = hoverNone
	c.clearPendingLocked()
	c.mu.Unlock()

	tmpl.Hide()
}

// ForceHide unconditionally closes the overlay: while-open listeners are
// dropped, timers and trigger state cleared, and the hide is not
// cancelable. No-op when already closed.
func (c *Controller) ForceHide() {
	c.mu.Lock()
	if !c.shown || c.tmpl == nil {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	c.setWhileOpenListeners(false)
	c.hide(true)
}

// Toggle is the manual trigger: opens when closed, closes when open.
// Respects the enabled flag and the dropdown-open guard.
func (c *Controller) Toggle() {
	c.mu.Lock()
	if c.destroyed || !c.enabled || c.host.DropdownOpen() {
		c.mu.Unlock()
		return
	}
	shown := c.shown
	c.active.manual = !shown
	c.mu.Unlock()

	if shown {
		c.leave(nil)
	} else {
		c.enter(nil)
	}
}

// Enable re-activates trigger handling and emits an enabled notification.
func (c *Controller) Enable() {
	c.mu.Lock()
	if c.destroyed || c.enabled {
		c.mu.Unlock()
		return
	}
	c.enabled = true
	c.mu.Unlock()
	c.dispatch(c.newNotification(NotifyEnabled, nil))
}

// Disable deactivates trigger handling. An already-open overlay stays
// open until explicitly closed.
func (c *Controller) Disable() {
	c.mu.Lock()
	if c.destroyed || !c.enabled {
		c.mu.Unlock()
		return
	}
	c.enabled = false
	c.mu.Unlock()
	c.dispatch(c.newNotification(NotifyDisabled, nil))
}

// Refresh replaces the raw props and re-derives triggers, delay and poll
// interval, re-registering host listeners for the new trigger set. This is
// the explicit configuration-changed entry point.
func (c *Controller) Refresh(props config.Props) {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	c.props = props
	c.recomputeLocked()
	c.mu.Unlock()

	c.attachHostListeners()
}

// Destroy unregisters all listeners, subscriptions and timers and tears
// down any open overlay without notifications. The controller is dead
// afterwards.
func (c *Controller) Destroy() {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	c.destroyed = true
	c.clearPendingLocked()
	c.stopPollLocked()
	tmpl := c.tmpl
	c.tmpl = nil
	wasShown := c.shown
	c.shown = false
	c.active.clear()
	c.hover = hoverNone
	hostHandles := c.hostListeners
	c.hostListeners = nil
	openHandles := c.openListeners
	c.openListeners = nil
	subs := c.busSubs
	c.busSubs = nil
	c.observers = nil
	c.mu.Unlock()

	for _, h := range hostHandles {
		h.Remove()
	}
	for _, h := range openHandles {
		h.Remove()
	}
	for _, s := range subs {
		_ = c.bus.Unsubscribe(s)
	}
	if tmpl != nil {
		tmpl.Destroy()
	}
	if wasShown {
		c.host.RemoveAttributeToken("aria-describedby", c.id)
		c.restoreTitle()
	}
	c.log.Debug("controller destroyed")
}

// templateConfigLocked derives the overlay template configuration from
// the current props. Caller holds the lock.
func (c *Controller) templateConfigLocked() overlay.Config {
	doc := c.host.Document()

	anchor := c.host
	var container, boundary *dom.Element
	if doc != nil {
		if c.props.Target != "" {
			if el := doc.ElementByID(c.props.Target); el != nil {
				anchor = el
			}
		}
		container = doc.Body()
		if c.props.Container != "" {
			if el := doc.ElementByID(c.props.Container); el != nil {
				container = el
			}
		}
		boundary = doc.Body()
		if c.props.Boundary != "" && c.props.Boundary != "viewport" {
			if el := doc.ElementByID(c.props.Boundary); el != nil {
				boundary = el
			}
		}
	}

	title := c.props.Title
	if title == "" {
		if v, ok := c.host.Attribute("data-original-title"); ok {
			title = v
		} else if v, ok := c.host.Attribute("title"); ok {
			title = v
		}
	}

	return overlay.Config{
		ID:              c.id,
		Kind:            c.kind,
		Placement:       overlay.ParsePlacement(c.props.Placement),
		Fallbacks:       overlay.ParseFallbacks(c.props.FallbackPlacement),
		Title:           title,
		Content:         c.props.Content,
		Variant:         c.props.Variant,
		CustomClass:     c.props.CustomClass,
		Offset:          c.props.Offset,
		NoFade:          c.props.NoFade,
		FadeDuration:    config.DefaultFadeDuration,
		ArrowPadding:    c.props.ArrowPadding,
		BoundaryPadding: c.props.BoundaryPadding,
		Boundary:        boundary,
		Container:       container,
		Target:          anchor,
	}
}

// fixTitleLocked parks the host's native title attribute so the platform
// does not render its own tooltip next to ours. Caller holds the lock.
func (c *Controller) fixTitleLocked() {
	if v, ok := c.host.Attribute("title"); ok && v != "" {
		c.host.SetAttribute("data-original-title", v)
		c.host.SetAttribute("title", "")
	}
}

// restoreTitle undoes fixTitleLocked.
func (c *Controller) restoreTitle() {
	if v, ok := c.host.Attribute("data-original-title"); ok {
		c.host.SetAttribute("title", v)
		c.host.RemoveAttribute("data-original-title")
	}
}

// dispatch delivers a notification to the bus and the local observers.
func (c *Controller) dispatch(n *Notification) {
	c.mu.Lock()
	obs := make([]observerEntry, len(c.observers))
	copy(obs, c.observers)
	bus := c.bus
	c.mu.Unlock()

	if bus != nil {
		if err := bus.Publish(context.Background(), n); err != nil {
			c.log.Debug("notification publish failed: %v", err)
		}
	}
	for _, o := range obs {
		o.fn(n)
	}
}

// onTipShow fires when the tip has been inserted: the while-open listener
// tier comes up.
func (c *Controller) onTipShow() {
	c.setWhileOpenListeners(true)
}

// onTipShown fires when the tip is fully visible. If intent flipped to
// "out" while the transition ran, the close happens now.
func (c *Controller) onTipShown() {
	c.mu.Lock()
	wasOut := c.hover == hoverOut
	c.hover = hoverNone
	tmpl := c.tmpl
	c.mu.Unlock()

	var tip *dom.Element
	if tmpl != nil {
		tip = tmpl.TipElement()
	}
	c.dispatch(c.newNotification(NotifyShown, tip))

	if wasOut {
		c.leave(nil)
	}
}

// onTipHide fires when the tip starts hiding: the while-open listener
// tier comes down.
func (c *Controller) onTipHide() {
	c.setWhileOpenListeners(false)
}

// onTipHidden fires when the tip is fully gone: the controller resets to
// the closed state and emits the hidden notification.
func (c *Controller) onTipHidden() {
	if !c.resetAfterClose() {
		return
	}
	c.dispatch(c.newNotification(NotifyHidden, nil))
}

// onTipSelfDestruct fires when mounting failed: same reset as hidden but
// without notifications.
func (c *Controller) onTipSelfDestruct() {
	c.log.Debug("overlay self-destructed during mount")
	c.resetAfterClose()
}

// resetAfterClose restores host bookkeeping and clears all transient
// state. Reports whether there was an open overlay to reset.
func (c *Controller) resetAfterClose() bool {
	c.mu.Lock()
	if c.destroyed || c.tmpl == nil {
		c.mu.Unlock()
		return false
	}
	c.tmpl = nil
	c.shown = false
	c.active.clear()
	c.hover = hoverNone
	c.clearPendingLocked()
	c.mu.Unlock()

	c.setWhileOpenListeners(false)
	c.host.RemoveAttributeToken("aria-describedby", c.id)
	c.restoreTitle()
	return true
}
