package dom

// EventType identifies a kind of element event.
type EventType string

// Element event types.
const (
	// EventClick is a pointer click on the element.
	EventClick EventType = "click"

	// EventMouseEnter fires when the pointer enters the element.
	EventMouseEnter EventType = "mouseenter"

	// EventMouseLeave fires when the pointer leaves the element.
	EventMouseLeave EventType = "mouseleave"

	// EventFocusIn fires when the element (or a descendant) gains focus.
	EventFocusIn EventType = "focusin"

	// EventFocusOut fires when focus leaves the element (or a descendant).
	EventFocusOut EventType = "focusout"

	// EventDropdownShown fires on a dropdown toggle when its menu opens.
	EventDropdownShown EventType = "dropdown.shown"

	// EventModalHidden fires on a modal container when it closes.
	EventModalHidden EventType = "modal.hidden"
)

// Event is delivered to element listeners. Events bubble from the target
// up through its ancestors unless propagation is stopped.
type Event struct {
	// Type is the event type.
	Type EventType

	// Target is the element the event was dispatched on.
	Target *Element

	// RelatedTarget carries the secondary element for focus and hover
	// transitions (where focus/pointer went or came from). May be nil.
	RelatedTarget *Element

	stopped bool
}

// StopPropagation prevents the event from bubbling further.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// PropagationStopped reports whether StopPropagation was called.
func (e *Event) PropagationStopped() bool {
	return e.stopped
}

// ListenerFunc handles a dispatched event.
type ListenerFunc func(*Event)

// ListenerHandle identifies a registered listener so it can be removed.
type ListenerHandle struct {
	el  *Element
	typ EventType
	id  uint64
}

// Remove unregisters the listener. Safe to call more than once.
func (h ListenerHandle) Remove() {
	if h.el != nil {
		h.el.removeListener(h.typ, h.id)
	}
}
