package trigger

import (
	"github.com/mfields/hoverlay/internal/dom"
	"github.com/mfields/hoverlay/internal/event/topic"
	"github.com/mfields/hoverlay/internal/overlay"
)

// NotificationType identifies a controller state transition of interest.
type NotificationType string

// Notification types. Show and hide are cancelable; the rest are not.
const (
	NotifyShow     NotificationType = "show"
	NotifyShown    NotificationType = "shown"
	NotifyHide     NotificationType = "hide"
	NotifyHidden   NotificationType = "hidden"
	NotifyEnabled  NotificationType = "enabled"
	NotifyDisabled NotificationType = "disabled"
)

// Notification is the event object emitted on controller state
// transitions, dispatched both on the global bus under a kind-qualified
// topic and to observers registered on the controller itself.
type Notification struct {
	// Type is the transition.
	Type NotificationType

	// Kind is the overlay kind of the emitting controller.
	Kind overlay.Kind

	// ComponentID is the controller's stable id.
	ComponentID string

	// Controller is the emitting controller, so subscribers can act on it
	// without an id lookup.
	Controller *Controller

	// Target is the host element.
	Target *dom.Element

	// Tip is the mounted overlay element, nil when none exists yet.
	Tip *dom.Element

	cancelable bool
	prevented  bool
}

func (c *Controller) newNotification(typ NotificationType, tip *dom.Element) *Notification {
	return &Notification{
		Type:        typ,
		Kind:        c.kind,
		ComponentID: c.id,
		Controller:  c,
		Target:      c.host,
		Tip:         tip,
		cancelable:  typ == NotifyShow || typ == NotifyHide,
	}
}

// EventTopic returns the bus topic, "<kind>.<type>".
func (n *Notification) EventTopic() topic.Topic {
	return topic.Topic(n.Kind.String()).Child(string(n.Type))
}

// Cancelable reports whether PreventDefault has any effect.
func (n *Notification) Cancelable() bool {
	return n.cancelable
}

// PreventDefault cancels the transition. No-op on non-cancelable
// notifications.
func (n *Notification) PreventDefault() {
	if n.cancelable {
		n.prevented = true
	}
}

// DefaultPrevented reports whether the transition was cancelled.
func (n *Notification) DefaultPrevented() bool {
	return n.prevented
}

// Observer receives a controller's own notifications.
type Observer func(*Notification)
