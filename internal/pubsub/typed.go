package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
)

// Event[T] binds a topic name to its payload type so that publishers and
// subscribers agree on the shape at compile time.
type Event[T any] struct {
	topicName string
}

// NewEvent defines a typed event on the given topic.
func NewEvent[T any](name string) Event[T] {
	return Event[T]{topicName: name}
}

// Name returns the topic name.
func (e Event[T]) Name() string {
	return e.topicName
}

// Publish sends a typed event on behalf of origin.
func Publish[T any](ctx context.Context, p Publisher, event Event[T], origin Origin, payload T) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding %s payload: %w", event.Name(), err)
	}
	return p.Publish(ctx, Message{
		Origin:  origin,
		Topic:   event.Name(),
		Payload: data,
	})
}

// Decode unmarshals a message published for event.
func Decode[T any](event Event[T], msg Message) (T, error) {
	var payload T
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return payload, fmt.Errorf("decoding %s payload: %w", event.Name(), err)
	}
	return payload, nil
}
