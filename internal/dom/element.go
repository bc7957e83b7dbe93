// Package dom provides the element-tree primitives the overlay machinery
// runs against: elements with attributes, containment, visibility, roles
// (dropdown toggle, modal container) and event listener dispatch.
//
// The package models just enough of a retained UI tree for trigger
// controllers and overlay templates to operate; it is not a rendering
// layer. Rendering backends map elements to screen cells (see cmd/hoverlay
// for the tcell demo).
package dom

import (
	"strings"
	"sync"
)

// Role marks an element as a recognized interactive construct.
type Role uint8

const (
	// RoleNone is an ordinary element.
	RoleNone Role = iota

	// RoleDropdownToggle is an element that owns a dropdown menu and
	// emits EventDropdownShown when the menu opens.
	RoleDropdownToggle

	// RoleModal is a modal container that emits EventModalHidden when
	// it closes.
	RoleModal
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RoleNone:
		return "none"
	case RoleDropdownToggle:
		return "dropdown-toggle"
	case RoleModal:
		return "modal"
	default:
		return "unknown"
	}
}

// Rect is an element's layout rectangle in screen coordinates.
type Rect struct {
	X, Y, W, H int
}

// Element is a node in the UI tree.
//
// Elements are safe for concurrent use; each element guards its own fields
// and tree traversal locks one node at a time.
type Element struct {
	mu sync.RWMutex

	tag   string
	id    string
	attrs map[string]string

	parent   *Element
	children []*Element

	// doc is set on document roots only; Document() walks to the root.
	doc *Document

	visible      bool
	role         Role
	dropdownOpen bool
	rect         Rect

	listeners    map[EventType]map[uint64]ListenerFunc
	nextListener uint64
}

// ElementOption configures a new element.
type ElementOption func(*Element)

// WithID sets the element id.
func WithID(id string) ElementOption {
	return func(e *Element) { e.id = id }
}

// WithRole sets the element role.
func WithRole(r Role) ElementOption {
	return func(e *Element) { e.role = r }
}

// WithAttribute sets an initial attribute.
func WithAttribute(name, value string) ElementOption {
	return func(e *Element) { e.attrs[name] = value }
}

// NewElement creates a detached, visible element.
func NewElement(tag string, opts ...ElementOption) *Element {
	e := &Element{
		tag:       tag,
		attrs:     make(map[string]string),
		visible:   true,
		listeners: make(map[EventType]map[uint64]ListenerFunc),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Tag returns the element tag.
func (e *Element) Tag() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.tag
}

// ID returns the element id ("" if unset).
func (e *Element) ID() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.id
}

// SetID sets the element id.
func (e *Element) SetID(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.id = id
}

// Attribute returns the attribute value and whether it is present.
func (e *Element) Attribute(name string) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	v, ok := e.attrs[name]
	return v, ok
}

// HasAttribute reports whether the attribute is present.
func (e *Element) HasAttribute(name string) bool {
	_, ok := e.Attribute(name)
	return ok
}

// SetAttribute sets an attribute.
func (e *Element) SetAttribute(name, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.attrs[name] = value
}

// RemoveAttribute removes an attribute.
func (e *Element) RemoveAttribute(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.attrs, name)
}

// AddAttributeToken adds a token to a whitespace-separated attribute
// (class, aria-describedby) without disturbing tokens already present.
func (e *Element) AddAttributeToken(name, token string) {
	if token == "" {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	tokens := strings.Fields(e.attrs[name])
	for _, t := range tokens {
		if t == token {
			return
		}
	}
	tokens = append(tokens, token)
	e.attrs[name] = strings.Join(tokens, " ")
}

// RemoveAttributeToken removes a token from a whitespace-separated
// attribute, preserving the other tokens. Removing the last token removes
// the attribute entirely.
func (e *Element) RemoveAttributeToken(name, token string) {
	if token == "" {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	current, ok := e.attrs[name]
	if !ok {
		return
	}
	var kept []string
	for _, t := range strings.Fields(current) {
		if t != token {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		delete(e.attrs, name)
		return
	}
	e.attrs[name] = strings.Join(kept, " ")
}

// HasAttributeToken reports whether the attribute contains the token.
func (e *Element) HasAttributeToken(name, token string) bool {
	v, ok := e.Attribute(name)
	if !ok {
		return false
	}
	for _, t := range strings.Fields(v) {
		if t == token {
			return true
		}
	}
	return false
}

// AddClass adds a class token.
func (e *Element) AddClass(class string) {
	e.AddAttributeToken("class", class)
}

// RemoveClass removes a class token.
func (e *Element) RemoveClass(class string) {
	e.RemoveAttributeToken("class", class)
}

// HasClass reports whether the class token is present.
func (e *Element) HasClass(class string) bool {
	return e.HasAttributeToken("class", class)
}

// AppendChild attaches child as the last child of e. The child is detached
// from any previous parent first. Appending an ancestor of e is a no-op.
func (e *Element) AppendChild(child *Element) {
	if child == nil || child == e || child.Contains(e) {
		return
	}
	child.Detach()

	child.mu.Lock()
	child.parent = e
	child.mu.Unlock()

	e.mu.Lock()
	e.children = append(e.children, child)
	e.mu.Unlock()
}

// RemoveChild detaches child from e if it is a direct child.
func (e *Element) RemoveChild(child *Element) {
	if child == nil {
		return
	}
	e.mu.Lock()
	for i, c := range e.children {
		if c == child {
			e.children = append(e.children[:i], e.children[i+1:]...)
			break
		}
	}
	e.mu.Unlock()

	child.mu.Lock()
	if child.parent == e {
		child.parent = nil
	}
	child.mu.Unlock()
}

// Detach removes the element from its parent, if any.
func (e *Element) Detach() {
	e.mu.RLock()
	parent := e.parent
	e.mu.RUnlock()
	if parent != nil {
		parent.RemoveChild(e)
	}
}

// Parent returns the parent element, or nil.
func (e *Element) Parent() *Element {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.parent
}

// Children returns a copy of the child list.
func (e *Element) Children() []*Element {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]*Element, len(e.children))
	copy(out, e.children)
	return out
}

// Root returns the topmost ancestor (possibly e itself).
func (e *Element) Root() *Element {
	node := e
	for {
		parent := node.Parent()
		if parent == nil {
			return node
		}
		node = parent
	}
}

// Contains reports whether other is e or a descendant of e.
func (e *Element) Contains(other *Element) bool {
	for node := other; node != nil; node = node.Parent() {
		if node == e {
			return true
		}
	}
	return false
}

// Document returns the owning document if the element is attached, nil
// otherwise.
func (e *Element) Document() *Document {
	root := e.Root()
	root.mu.RLock()
	defer root.mu.RUnlock()
	return root.doc
}

// IsAttached reports whether the element is part of a document tree.
func (e *Element) IsAttached() bool {
	return e.Document() != nil
}

// SetVisible sets the element's own display flag.
func (e *Element) SetVisible(visible bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.visible = visible
}

// Visible returns the element's own display flag, ignoring ancestors.
func (e *Element) Visible() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.visible
}

// IsVisible reports whether the element is attached to a visible document
// and neither it nor any ancestor is hidden.
func (e *Element) IsVisible() bool {
	for node := e; node != nil; node = node.Parent() {
		node.mu.RLock()
		visible := node.visible
		doc := node.doc
		parent := node.parent
		node.mu.RUnlock()

		if !visible {
			return false
		}
		if parent == nil {
			return doc != nil && doc.Visible()
		}
	}
	return false
}

// SetRect sets the element's layout rectangle.
func (e *Element) SetRect(r Rect) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rect = r
}

// Rect returns the element's layout rectangle.
func (e *Element) Rect() Rect {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.rect
}

// SetRole sets the element role.
func (e *Element) SetRole(r Role) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.role = r
}

// Role returns the element role.
func (e *Element) Role() Role {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.role
}

// SetDropdownOpen records the dropdown menu state on a dropdown toggle and
// emits EventDropdownShown when the menu opens. No-op for other roles.
func (e *Element) SetDropdownOpen(open bool) {
	e.mu.Lock()
	if e.role != RoleDropdownToggle {
		e.mu.Unlock()
		return
	}
	changed := e.dropdownOpen != open
	e.dropdownOpen = open
	e.mu.Unlock()

	if changed && open {
		e.Emit(EventDropdownShown, nil)
	}
}

// DropdownOpen reports whether the element is a dropdown toggle with its
// menu currently open.
func (e *Element) DropdownOpen() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.role == RoleDropdownToggle && e.dropdownOpen
}

// CloseModal emits EventModalHidden from a modal container. No-op for
// other roles.
func (e *Element) CloseModal() {
	if e.Role() != RoleModal {
		return
	}
	e.Emit(EventModalHidden, nil)
}

// AddListener registers a listener for the event type and returns a handle
// for removal.
func (e *Element) AddListener(typ EventType, fn ListenerFunc) ListenerHandle {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.listeners[typ] == nil {
		e.listeners[typ] = make(map[uint64]ListenerFunc)
	}
	e.nextListener++
	id := e.nextListener
	e.listeners[typ][id] = fn

	return ListenerHandle{el: e, typ: typ, id: id}
}

func (e *Element) removeListener(typ EventType, id uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if m := e.listeners[typ]; m != nil {
		delete(m, id)
	}
}

// listenersFor snapshots the listeners for a type in registration order.
func (e *Element) listenersFor(typ EventType) []ListenerFunc {
	e.mu.RLock()
	defer e.mu.RUnlock()

	m := e.listeners[typ]
	if len(m) == 0 {
		return nil
	}
	ids := make([]uint64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	// Registration order equals id order.
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j] < ids[j-1]; j-- {
			ids[j], ids[j-1] = ids[j-1], ids[j]
		}
	}
	fns := make([]ListenerFunc, 0, len(ids))
	for _, id := range ids {
		fns = append(fns, m[id])
	}
	return fns
}

// Dispatch delivers the event to listeners on the target and then bubbles
// it through the target's ancestors until stopped. The event's Target is
// set to e if unset.
func (e *Element) Dispatch(ev *Event) {
	if ev == nil {
		return
	}
	if ev.Target == nil {
		ev.Target = e
	}
	for node := e; node != nil; node = node.Parent() {
		for _, fn := range node.listenersFor(ev.Type) {
			fn(ev)
			if ev.PropagationStopped() {
				return
			}
		}
	}
}

// Emit is shorthand for dispatching a new event of the given type from e.
func (e *Element) Emit(typ EventType, related *Element) {
	e.Dispatch(&Event{Type: typ, Target: e, RelatedTarget: related})
}
