package clock

import (
	"testing"
	"time"
)

func TestManualAdvanceFiresDueTimers(t *testing.T) {
	m := NewManual()

	var fired []string
	m.AfterFunc(100*time.Millisecond, func() { fired = append(fired, "b") })
	m.AfterFunc(50*time.Millisecond, func() { fired = append(fired, "a") })

	m.Advance(49 * time.Millisecond)
	if len(fired) != 0 {
		t.Fatalf("fired early: %v", fired)
	}

	m.Advance(1 * time.Millisecond)
	if len(fired) != 1 || fired[0] != "a" {
		t.Fatalf("fired = %v, want [a]", fired)
	}

	m.Advance(time.Second)
	if len(fired) != 2 || fired[1] != "b" {
		t.Fatalf("fired = %v, want [a b]", fired)
	}
}

func TestManualStop(t *testing.T) {
	m := NewManual()

	fired := false
	timer := m.AfterFunc(10*time.Millisecond, func() { fired = true })

	if !timer.Stop() {
		t.Error("first Stop should return true")
	}
	if timer.Stop() {
		t.Error("second Stop should return false")
	}

	m.Advance(time.Second)
	if fired {
		t.Error("stopped timer must not fire")
	}
	if m.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", m.Pending())
	}
}

func TestManualRescheduleDuringAdvance(t *testing.T) {
	m := NewManual()

	ticks := 0
	var tick func()
	tick = func() {
		ticks++
		if ticks < 5 {
			m.AfterFunc(10*time.Millisecond, tick)
		}
	}
	m.AfterFunc(10*time.Millisecond, tick)

	// A 50ms window covers five 10ms ticks including the reschedules.
	m.Advance(50 * time.Millisecond)
	if ticks != 5 {
		t.Errorf("ticks = %d, want 5", ticks)
	}
}

func TestManualNowMovesWithTimers(t *testing.T) {
	m := NewManual()
	start := m.Now()

	var at time.Duration
	m.AfterFunc(30*time.Millisecond, func() { at = m.Now().Sub(start) })

	m.Advance(100 * time.Millisecond)
	if at != 30*time.Millisecond {
		t.Errorf("callback observed offset %v, want 30ms", at)
	}
	if got := m.Now().Sub(start); got != 100*time.Millisecond {
		t.Errorf("final offset = %v, want 100ms", got)
	}
}

func TestSystemAfterFunc(t *testing.T) {
	c := System()

	done := make(chan struct{})
	c.AfterFunc(time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("system timer did not fire")
	}
}
