package event

import (
	"context"
	"runtime/debug"
	"sync/atomic"

	"github.com/mfields/hoverlay/internal/event/topic"
)

// PanicHandler is called when a subscriber panics during delivery.
type PanicHandler func(event any, panicValue any, stack []byte)

// Stats reports bus counters.
type Stats struct {
	EventsPublished   uint64
	EventsDelivered   uint64
	HandlerErrors     uint64
	HandlerPanics     uint64
	ActiveSubscribers int
}

// Bus is the central event bus. Delivery is synchronous: Publish returns
// after every matching handler has run.
type Bus interface {
	// Publish delivers the event to all matching active subscriptions.
	// The event must implement TopicProvider.
	Publish(ctx context.Context, event any) error

	// Subscribe registers a handler for a topic pattern.
	Subscribe(pattern topic.Topic, handler Handler, opts ...SubscriptionOption) (Subscription, error)

	// SubscribeFunc registers a function handler for a topic pattern.
	SubscribeFunc(pattern topic.Topic, fn HandlerFunc, opts ...SubscriptionOption) (Subscription, error)

	// Unsubscribe cancels and removes a subscription.
	Unsubscribe(sub Subscription) error

	// Close shuts the bus down; further publishes fail with ErrBusClosed.
	Close()

	// Stats returns current bus counters.
	Stats() Stats
}

// BusOption configures a bus.
type BusOption func(*bus)

// WithPanicHandler sets the handler invoked when a subscriber panics.
func WithPanicHandler(h PanicHandler) BusOption {
	return func(b *bus) {
		b.panicHandler = h
	}
}

// bus is the default Bus implementation.
type bus struct {
	registry     *registry
	panicHandler PanicHandler
	closed       atomic.Bool

	eventsPublished uint64
	eventsDelivered uint64
	handlerErrors   uint64
	handlerPanics   uint64
}

// NewBus creates a new event bus.
func NewBus(opts ...BusOption) Bus {
	b := &bus{registry: newRegistry()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Publish delivers the event synchronously to matching subscriptions in
// priority order. Handler panics are captured; delivery continues with the
// remaining subscriptions.
func (b *bus) Publish(ctx context.Context, event any) error {
	if b.closed.Load() {
		return ErrBusClosed
	}

	tp, ok := event.(TopicProvider)
	if !ok {
		return ErrInvalidEvent
	}
	eventTopic := tp.EventTopic()
	if eventTopic == "" || eventTopic.IsPattern() {
		return ErrInvalidTopic
	}

	subs := b.registry.matchActive(eventTopic)
	atomic.AddUint64(&b.eventsPublished, 1)

	for _, sub := range subs {
		if !sub.shouldDeliver(event) {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if b.deliver(ctx, event, sub) && sub.config.Once {
			sub.Cancel()
			b.registry.remove(sub.ID())
		}
	}

	return nil
}

// deliver runs a single handler with panic capture. Returns true on success.
func (b *bus) deliver(ctx context.Context, event any, sub *subscription) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			atomic.AddUint64(&b.handlerPanics, 1)
			if b.panicHandler != nil {
				b.panicHandler(event, r, debug.Stack())
			}
			ok = false
		}
	}()

	if err := sub.handler.Handle(ctx, event); err != nil {
		atomic.AddUint64(&b.handlerErrors, 1)
		return false
	}
	atomic.AddUint64(&b.eventsDelivered, 1)
	return true
}

// Subscribe registers a handler for a topic pattern.
func (b *bus) Subscribe(pattern topic.Topic, handler Handler, opts ...SubscriptionOption) (Subscription, error) {
	if b.closed.Load() {
		return nil, ErrBusClosed
	}
	if handler == nil {
		return nil, ErrNilHandler
	}
	if pattern == "" {
		return nil, ErrInvalidTopic
	}

	sub := newSubscription(generateID(), pattern, handler, opts...)
	b.registry.add(sub)
	return sub, nil
}

// SubscribeFunc registers a function handler for a topic pattern.
func (b *bus) SubscribeFunc(pattern topic.Topic, fn HandlerFunc, opts ...SubscriptionOption) (Subscription, error) {
	return b.Subscribe(pattern, fn, opts...)
}

// Unsubscribe cancels and removes a subscription.
func (b *bus) Unsubscribe(sub Subscription) error {
	if sub == nil {
		return ErrInvalidSubscription
	}

	sub.Cancel()
	if !b.registry.remove(sub.ID()) {
		return ErrSubscriptionNotFound
	}
	return nil
}

// Close shuts the bus down and drops all subscriptions.
func (b *bus) Close() {
	if b.closed.Swap(true) {
		return
	}
	b.registry.clear()
}

// Stats returns current bus counters.
func (b *bus) Stats() Stats {
	return Stats{
		EventsPublished:   atomic.LoadUint64(&b.eventsPublished),
		EventsDelivered:   atomic.LoadUint64(&b.eventsDelivered),
		HandlerErrors:     atomic.LoadUint64(&b.handlerErrors),
		HandlerPanics:     atomic.LoadUint64(&b.handlerPanics),
		ActiveSubscribers: b.registry.countActive(),
	}
}
