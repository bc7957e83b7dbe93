package event

import "errors"

// Errors returned by bus operations.
var (
	// ErrBusClosed indicates the bus has been closed.
	ErrBusClosed = errors.New("event bus is closed")

	// ErrNilHandler indicates a subscription was attempted with a nil handler.
	ErrNilHandler = errors.New("handler must not be nil")

	// ErrInvalidTopic indicates an empty or malformed topic.
	ErrInvalidTopic = errors.New("invalid topic")

	// ErrInvalidEvent indicates the event does not provide a topic.
	ErrInvalidEvent = errors.New("event does not provide a topic")

	// ErrInvalidSubscription indicates a nil subscription was passed.
	ErrInvalidSubscription = errors.New("invalid subscription")

	// ErrSubscriptionNotFound indicates the subscription is not registered.
	ErrSubscriptionNotFound = errors.New("subscription not found")
)
