// Package pubsub is the in-process event bus. Messages are published through
// typed events (see Event) and carry who caused them and in which request.
package pubsub

import (
	"context"
	"time"
)

// Origin identifies where a message came from.
type Origin struct {
	// Actor is the email or mobile number the screen acted for, if known.
	Actor string
	// RequestID is the X-Request-ID of the HTTP request that published it.
	RequestID string
}

// Message is one event on the bus. Payload is the JSON encoding of the
// event's payload type.
type Message struct {
	Origin
	Topic       string
	Payload     []byte
	PublishedAt time.Time
}

// Handler processes a delivered message. Delivery is at most once; a handler
// error is logged and the message dropped.
type Handler func(ctx context.Context, msg Message) error

// Publisher sends messages.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
	Close() error
}

// Subscriber delivers the messages of a topic to a handler in the
// background. Delivery stops when ctx is canceled or the bus is closed.
type Subscriber interface {
	Subscribe(ctx context.Context, topic string, handler Handler) error
	Close() error
}
