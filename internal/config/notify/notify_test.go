package notify

import "testing"

func TestSubscribeReceivesAllChanges(t *testing.T) {
	n := New()

	var got []Change
	n.Subscribe(func(c Change) { got = append(got, c) })

	n.NotifySet("tooltip.delay", 0, 100, "test")
	n.NotifyReload("test")

	if len(got) != 2 {
		t.Fatalf("deliveries = %d, want 2", len(got))
	}
	if got[0].Path != "tooltip.delay" || got[0].Type != ChangeSet {
		t.Errorf("first change = %+v", got[0])
	}
	if got[1].Type != ChangeReload {
		t.Errorf("second change = %+v", got[1])
	}
}

func TestSubscribePathScoping(t *testing.T) {
	n := New()

	var tooltip, popover int
	n.SubscribePath("tooltip", func(Change) { tooltip++ })
	n.SubscribePath("popover", func(Change) { popover++ })

	n.NotifySet("tooltip.delay", nil, 100, "test")
	n.NotifySet("tooltip", nil, nil, "test")
	n.NotifySet("tooltipextra.delay", nil, nil, "test")
	n.NotifySet("popover.placement", nil, "left", "test")

	if tooltip != 2 {
		t.Errorf("tooltip deliveries = %d, want 2", tooltip)
	}
	if popover != 1 {
		t.Errorf("popover deliveries = %d, want 1", popover)
	}
}

func TestReloadReachesScopedObservers(t *testing.T) {
	n := New()

	count := 0
	n.SubscribePath("tooltip", func(Change) { count++ })
	n.NotifyReload("watcher")

	if count != 1 {
		t.Errorf("reload deliveries = %d, want 1", count)
	}
}

func TestUnsubscribe(t *testing.T) {
	n := New()

	count := 0
	sub := n.Subscribe(func(Change) { count++ })

	n.NotifyReload("test")
	sub.Unsubscribe()
	sub.Unsubscribe() // idempotent
	n.NotifyReload("test")

	if count != 1 {
		t.Errorf("deliveries = %d, want 1", count)
	}
	if n.Count() != 0 {
		t.Errorf("Count = %d, want 0", n.Count())
	}
}

func TestUnsubscribeDuringDelivery(t *testing.T) {
	n := New()

	var sub *Subscription
	count := 0
	sub = n.Subscribe(func(Change) {
		count++
		sub.Unsubscribe()
	})

	n.NotifyReload("test")
	n.NotifyReload("test")

	if count != 1 {
		t.Errorf("deliveries = %d, want 1", count)
	}
}

func TestClose(t *testing.T) {
	n := New()

	count := 0
	n.Subscribe(func(Change) { count++ })
	n.Close()
	n.NotifyReload("test")

	if count != 0 {
		t.Errorf("deliveries after close = %d, want 0", count)
	}
}
