package event

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/mfields/hoverlay/internal/event/topic"
)

// TopicProvider is implemented by events that can report their own topic.
// Everything published on the bus must implement it.
type TopicProvider interface {
	EventTopic() topic.Topic
}

// Handler processes a delivered event.
type Handler interface {
	Handle(ctx context.Context, event any) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, event any) error

// Handle implements Handler.
func (f HandlerFunc) Handle(ctx context.Context, event any) error {
	return f(ctx, event)
}

// generateID generates a unique subscription ID.
func generateID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// Fallback to timestamp-based ID if crypto/rand fails.
		return hex.EncodeToString([]byte(time.Now().String()))
	}
	return hex.EncodeToString(b)
}
