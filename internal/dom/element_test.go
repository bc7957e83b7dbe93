package dom

import "testing"

func TestAttributeTokens(t *testing.T) {
	el := NewElement("span")
	el.SetAttribute("aria-describedby", "existing-id")

	el.AddAttributeToken("aria-describedby", "tooltip-1")
	if v, _ := el.Attribute("aria-describedby"); v != "existing-id tooltip-1" {
		t.Errorf("attribute = %q, want %q", v, "existing-id tooltip-1")
	}

	// Adding the same token twice is a no-op.
	el.AddAttributeToken("aria-describedby", "tooltip-1")
	if v, _ := el.Attribute("aria-describedby"); v != "existing-id tooltip-1" {
		t.Errorf("attribute after duplicate add = %q", v)
	}

	el.RemoveAttributeToken("aria-describedby", "tooltip-1")
	if v, _ := el.Attribute("aria-describedby"); v != "existing-id" {
		t.Errorf("attribute after remove = %q, want %q", v, "existing-id")
	}

	// Removing the last token removes the attribute.
	el.RemoveAttributeToken("aria-describedby", "existing-id")
	if el.HasAttribute("aria-describedby") {
		t.Error("expected attribute removed when last token removed")
	}
}

func TestClassHelpers(t *testing.T) {
	el := NewElement("div")
	el.AddClass("tooltip")
	el.AddClass("fade")
	if !el.HasClass("tooltip") || !el.HasClass("fade") {
		t.Error("expected both classes present")
	}
	el.RemoveClass("fade")
	if el.HasClass("fade") {
		t.Error("expected fade class removed")
	}
	if !el.HasClass("tooltip") {
		t.Error("expected tooltip class preserved")
	}
}

func TestTreeContainment(t *testing.T) {
	root := NewElement("div")
	mid := NewElement("div")
	leaf := NewElement("span")
	root.AppendChild(mid)
	mid.AppendChild(leaf)

	if !root.Contains(leaf) {
		t.Error("root should contain leaf")
	}
	if !root.Contains(root) {
		t.Error("an element contains itself")
	}
	if leaf.Contains(root) {
		t.Error("leaf should not contain root")
	}

	// Appending an ancestor under its own descendant must not corrupt the tree.
	leaf.AppendChild(root)
	if leaf.Contains(root) {
		t.Error("cycle-creating append should be ignored")
	}

	leaf.Detach()
	if root.Contains(leaf) {
		t.Error("detached leaf should no longer be contained")
	}
	if leaf.Parent() != nil {
		t.Error("detached leaf should have no parent")
	}
}

func TestAppendReparents(t *testing.T) {
	a := NewElement("div")
	b := NewElement("div")
	child := NewElement("span")

	a.AppendChild(child)
	b.AppendChild(child)

	if a.Contains(child) {
		t.Error("child should have left its first parent")
	}
	if !b.Contains(child) {
		t.Error("child should be under its new parent")
	}
	if len(a.Children()) != 0 {
		t.Errorf("old parent children = %d, want 0", len(a.Children()))
	}
}

func TestVisibility(t *testing.T) {
	doc := NewDocument()
	panel := NewElement("div")
	host := NewElement("button", WithID("save"))
	panel.AppendChild(host)

	if host.IsVisible() {
		t.Error("detached element should not be visible")
	}

	doc.Body().AppendChild(panel)
	if !host.IsVisible() {
		t.Error("attached element should be visible")
	}

	panel.SetVisible(false)
	if host.IsVisible() {
		t.Error("element under a hidden ancestor should not be visible")
	}
	panel.SetVisible(true)

	doc.SetVisible(false)
	if host.IsVisible() {
		t.Error("element in a hidden document should not be visible")
	}
	doc.SetVisible(true)
	if !host.IsVisible() {
		t.Error("element should be visible again")
	}
}

func TestDispatchBubbles(t *testing.T) {
	root := NewElement("div")
	child := NewElement("span")
	root.AppendChild(child)

	var order []string
	child.AddListener(EventClick, func(ev *Event) {
		order = append(order, "child")
		if ev.Target != child {
			t.Errorf("target = %v, want child", ev.Target)
		}
	})
	root.AddListener(EventClick, func(_ *Event) {
		order = append(order, "root")
	})

	child.Emit(EventClick, nil)

	if len(order) != 2 || order[0] != "child" || order[1] != "root" {
		t.Errorf("dispatch order = %v, want [child root]", order)
	}
}

func TestDispatchStopPropagation(t *testing.T) {
	root := NewElement("div")
	child := NewElement("span")
	root.AppendChild(child)

	child.AddListener(EventClick, func(ev *Event) {
		ev.StopPropagation()
	})
	rootCalled := false
	root.AddListener(EventClick, func(_ *Event) {
		rootCalled = true
	})

	child.Emit(EventClick, nil)
	if rootCalled {
		t.Error("expected propagation to stop before root")
	}
}

func TestListenerRemove(t *testing.T) {
	el := NewElement("div")
	count := 0
	h := el.AddListener(EventClick, func(_ *Event) { count++ })

	el.Emit(EventClick, nil)
	h.Remove()
	h.Remove() // safe to call twice
	el.Emit(EventClick, nil)

	if count != 1 {
		t.Errorf("listener calls = %d, want 1", count)
	}
}

func TestDropdownRole(t *testing.T) {
	toggle := NewElement("button", WithRole(RoleDropdownToggle))
	plain := NewElement("button")

	shown := 0
	toggle.AddListener(EventDropdownShown, func(_ *Event) { shown++ })

	toggle.SetDropdownOpen(true)
	if !toggle.DropdownOpen() {
		t.Error("expected dropdown open")
	}
	if shown != 1 {
		t.Errorf("dropdown.shown events = %d, want 1", shown)
	}

	// Re-setting open does not re-fire.
	toggle.SetDropdownOpen(true)
	if shown != 1 {
		t.Errorf("dropdown.shown events after repeat = %d, want 1", shown)
	}

	toggle.SetDropdownOpen(false)
	if toggle.DropdownOpen() {
		t.Error("expected dropdown closed")
	}

	plain.SetDropdownOpen(true)
	if plain.DropdownOpen() {
		t.Error("non-toggle element should never report dropdown open")
	}
}

func TestModalRole(t *testing.T) {
	doc := NewDocument()
	modal := NewElement("div", WithRole(RoleModal))
	doc.Body().AppendChild(modal)

	var target *Element
	doc.Body().AddListener(EventModalHidden, func(ev *Event) { target = ev.Target })

	modal.CloseModal()
	if target != modal {
		t.Error("expected modal.hidden to bubble to body with modal target")
	}

	// Non-modal elements do not emit.
	target = nil
	NewElement("div").CloseModal()
	if target != nil {
		t.Error("unexpected modal.hidden from non-modal element")
	}
}

func TestDocumentElementByID(t *testing.T) {
	doc := NewDocument()
	inner := NewElement("div")
	host := NewElement("button", WithID("host-1"))
	inner.AppendChild(host)
	doc.Body().AppendChild(inner)

	if got := doc.ElementByID("host-1"); got != host {
		t.Error("expected to find host by id")
	}
	if got := doc.ElementByID("missing"); got != nil {
		t.Error("expected nil for unknown id")
	}
	if got := doc.ElementByID(""); got != nil {
		t.Error("expected nil for empty id")
	}
}
