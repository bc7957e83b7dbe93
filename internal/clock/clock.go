// Package clock abstracts timer scheduling so delay and polling behavior
// can be driven deterministically in tests.
package clock

import (
	"sort"
	"sync"
	"time"
)

// Timer is a handle to a scheduled callback.
type Timer interface {
	// Stop cancels the timer. Returns false if it already fired or was
	// stopped.
	Stop() bool
}

// Clock schedules callbacks.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// AfterFunc schedules fn to run after d. fn runs in its own goroutine
	// for the system clock; the manual clock runs it inside Advance.
	AfterFunc(d time.Duration, fn func()) Timer
}

// systemClock delegates to the time package.
type systemClock struct{}

// System returns the real-time clock.
func System() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// Manual is a test clock whose time only moves when Advance is called.
// Due callbacks run synchronously, in schedule order, on the advancing
// goroutine.
type Manual struct {
	mu     sync.Mutex
	now    time.Time
	timers []*manualTimer
	nextID uint64
}

type manualTimer struct {
	clock   *Manual
	id      uint64
	fireAt  time.Time
	fn      func()
	stopped bool
	fired   bool
}

// NewManual creates a manual clock starting at an arbitrary fixed time.
func NewManual() *Manual {
	return &Manual{now: time.Unix(1700000000, 0)}
}

// Now returns the manual clock's current time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// AfterFunc schedules fn to run when the clock advances past d.
func (m *Manual) AfterFunc(d time.Duration, fn func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()

	if d < 0 {
		d = 0
	}
	m.nextID++
	t := &manualTimer{
		clock:  m,
		id:     m.nextID,
		fireAt: m.now.Add(d),
		fn:     fn,
	}
	m.timers = append(m.timers, t)
	return t
}

// Stop cancels the timer.
func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves the clock forward by d, firing due timers in order. Timers
// scheduled by fired callbacks run too if they fall within the window.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	deadline := m.now.Add(d)
	m.mu.Unlock()

	for {
		t := m.popDue(deadline)
		if t == nil {
			break
		}
		t.fn()
	}

	m.mu.Lock()
	m.now = deadline
	m.mu.Unlock()
}

// popDue removes and returns the earliest unfired timer at or before
// deadline, moving the clock to its fire time. Returns nil if none.
func (m *Manual) popDue(deadline time.Time) *manualTimer {
	m.mu.Lock()
	defer m.mu.Unlock()

	live := m.timers[:0]
	for _, t := range m.timers {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	m.timers = live

	sort.SliceStable(m.timers, func(i, j int) bool {
		if m.timers[i].fireAt.Equal(m.timers[j].fireAt) {
			return m.timers[i].id < m.timers[j].id
		}
		return m.timers[i].fireAt.Before(m.timers[j].fireAt)
	})

	for _, t := range m.timers {
		if t.fireAt.After(deadline) {
			break
		}
		t.fired = true
		if t.fireAt.After(m.now) {
			m.now = t.fireAt
		}
		return t
	}
	return nil
}

// Pending returns the number of unfired, unstopped timers.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, t := range m.timers {
		if !t.stopped && !t.fired {
			count++
		}
	}
	return count
}
