// Package event provides the in-process publish/subscribe bus used for
// overlay broadcast channels.
//
// The bus delivers events synchronously in the publisher's goroutine: overlay
// controllers are cooperative, single-threaded state machines, and command
// effects (show/hide/enable/disable) must be observable as soon as Publish
// returns. Handler panics are captured so one misbehaving subscriber cannot
// take down the publisher.
//
// Events carry their own topic by implementing TopicProvider. Subscriptions
// are keyed by topic patterns ("tooltip.command.*") and delivered in priority
// order.
package event
