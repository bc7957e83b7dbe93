package dom

import "sync"

// Document owns an element tree. Elements attached under Body are
// considered part of the document; detached elements are never visible.
type Document struct {
	mu      sync.RWMutex
	body    *Element
	visible bool
	touch   bool
}

// NewDocument creates a document with an empty, visible body.
func NewDocument() *Document {
	d := &Document{visible: true}
	body := NewElement("body")
	body.mu.Lock()
	body.doc = d
	body.mu.Unlock()
	d.body = body
	return d
}

// Body returns the document root element.
func (d *Document) Body() *Element {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.body
}

// SetVisible sets the document visibility state (e.g. the terminal or tab
// being backgrounded).
func (d *Document) SetVisible(visible bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.visible = visible
}

// Visible returns the document visibility state.
func (d *Document) Visible() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.visible
}

// SetTouchEnabled records whether the host environment is a touch device.
func (d *Document) SetTouchEnabled(touch bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.touch = touch
}

// TouchEnabled reports whether the host environment is a touch device.
func (d *Document) TouchEnabled() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.touch
}

// ElementByID returns the first attached element with the given id, or nil.
func (d *Document) ElementByID(id string) *Element {
	if id == "" {
		return nil
	}
	return findByID(d.Body(), id)
}

func findByID(el *Element, id string) *Element {
	if el.ID() == id {
		return el
	}
	for _, child := range el.Children() {
		if found := findByID(child, id); found != nil {
			return found
		}
	}
	return nil
}
