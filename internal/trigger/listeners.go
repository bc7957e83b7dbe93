package trigger

import (
	"context"
	"time"

	"github.com/mfields/hoverlay/internal/dom"
)

// attachHostListeners (re)registers the always-on DOM listeners matching
// the canonical trigger set: click listens for click, focus for
// focusin+focusout, blur for focusout, hover for mouseenter+mouseleave.
// Manual registers nothing.
func (c *Controller) attachHostListeners() {
	c.mu.Lock()
	old := c.hostListeners
	c.hostListeners = nil
	destroyed := c.destroyed
	triggers := c.triggers
	c.mu.Unlock()

	for _, h := range old {
		h.Remove()
	}
	if destroyed {
		return
	}

	types := make(map[dom.EventType]bool)
	for _, t := range triggers {
		switch t {
		case TriggerClick:
			types[dom.EventClick] = true
		case TriggerHover:
			types[dom.EventMouseEnter] = true
			types[dom.EventMouseLeave] = true
		case TriggerFocus:
			types[dom.EventFocusIn] = true
			types[dom.EventFocusOut] = true
		case TriggerBlur:
			types[dom.EventFocusOut] = true
		}
	}

	handles := make([]dom.ListenerHandle, 0, len(types))
	for typ := range types {
		handles = append(handles, c.host.AddListener(typ, c.HandleEvent))
	}

	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		for _, h := range handles {
			h.Remove()
		}
		return
	}
	c.hostListeners = handles
	c.mu.Unlock()
}

// subscribeCommands registers the four broadcast command subscriptions
// for the controller's kind. An empty target id addresses every
// controller of the kind; otherwise the command only applies when the id
// matches the component id or the host element id.
func (c *Controller) subscribeCommands() {
	actions := []struct {
		cmd Command
		fn  func()
	}{
		{CommandShow, c.Show},
		{CommandHide, c.ForceHide},
		{CommandEnable, c.Enable},
		{CommandDisable, c.Disable},
	}

	for _, action := range actions {
		fn := action.fn
		sub, err := c.bus.SubscribeFunc(CommandTopic(c.kind, action.cmd), func(ctx context.Context, ev any) error {
			ce, ok := ev.(CommandEvent)
			if !ok {
				return nil
			}
			if ce.TargetID != "" && ce.TargetID != c.id && ce.TargetID != c.host.ID() {
				return nil
			}
			fn()
			return nil
		})
		if err != nil {
			c.log.Warn("command subscription failed: %v", err)
			continue
		}
		c.mu.Lock()
		c.busSubs = append(c.busSubs, sub)
		c.mu.Unlock()
	}
}

// setWhileOpenListeners brings the while-open listener tier up or down:
// a modal-close watcher, a host dropdown-open watcher, the visibility
// poll and (on touch devices) inert shim listeners on top-level document
// children.
func (c *Controller) setWhileOpenListeners(open bool) {
	if !open {
		c.mu.Lock()
		handles := c.openListeners
		c.openListeners = nil
		c.pollGen++
		c.stopPollLocked()
		c.mu.Unlock()
		for _, h := range handles {
			h.Remove()
		}
		return
	}

	c.mu.Lock()
	if c.destroyed || c.openListeners != nil {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	doc := c.host.Document()
	if doc == nil {
		return
	}

	var handles []dom.ListenerHandle

	// A modal closing anywhere above the host takes the host down with it.
	handles = append(handles, doc.Body().AddListener(dom.EventModalHidden, func(ev *dom.Event) {
		if ev.Target != nil && ev.Target.Contains(c.host) {
			c.ForceHide()
		}
	}))

	// The host opening its own dropdown menu dismisses the overlay.
	handles = append(handles, c.host.AddListener(dom.EventDropdownShown, func(*dom.Event) {
		c.ForceHide()
	}))

	// Touch environments need inert listeners on top-level children so
	// delegated events still reach the host.
	if doc.TouchEnabled() {
		for _, child := range doc.Body().Children() {
			handles = append(handles, child.AddListener(dom.EventMouseEnter, noopListener))
		}
	}

	c.mu.Lock()
	if c.destroyed || c.openListeners != nil {
		c.mu.Unlock()
		for _, h := range handles {
			h.Remove()
		}
		return
	}
	c.openListeners = handles
	c.pollGen++
	gen := c.pollGen
	interval := c.interval
	c.mu.Unlock()

	c.schedulePoll(gen, interval)
}

func noopListener(*dom.Event) {}

// schedulePoll arms the next visibility check. A generation mismatch
// means the tier went down in the meantime and the timer chain ends.
func (c *Controller) schedulePoll(gen uint64, interval time.Duration) {
	c.mu.Lock()
	if c.destroyed || gen != c.pollGen || !c.shown {
		c.mu.Unlock()
		return
	}
	c.pollTimer = c.clk.AfterFunc(interval, func() {
		c.pollVisibility(gen, interval)
	})
	c.mu.Unlock()
}

// pollVisibility force-closes the overlay when the host left the layout
// while open, otherwise re-arms.
func (c *Controller) pollVisibility(gen uint64, interval time.Duration) {
	c.mu.Lock()
	stale := c.destroyed || gen != c.pollGen || !c.shown
	c.mu.Unlock()
	if stale {
		return
	}

	if !c.host.IsVisible() {
		c.log.Debug("host no longer visible, force-closing")
		c.ForceHide()
		return
	}
	c.schedulePoll(gen, interval)
}

// stopPollLocked stops the visibility poll timer. Caller holds the lock.
func (c *Controller) stopPollLocked() {
	if c.pollTimer != nil {
		c.pollTimer.Stop()
		c.pollTimer = nil
	}
}
