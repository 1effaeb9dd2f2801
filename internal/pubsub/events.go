// Package pubsub fans document events out to any number of listeners, such
// as the playground UI following a file on disk.
package pubsub

import (
	"context"
	"time"
)

// EventType names what happened to the document.
type EventType string

const (
	// ChangedEvent carries new document contents.
	ChangedEvent EventType = "changed"
	// FailedEvent reports that the document could not be read.
	FailedEvent EventType = "failed"
)

// Event is a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher publishes events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
