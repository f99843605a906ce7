package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/kayotsaha/authweb/internal/pubsub"
)

// Subscriber writes every audit event to the log.
type Subscriber struct {
	sub    pubsub.Subscriber
	logger *slog.Logger
}

// NewSubscriber creates a new audit subscriber.
func NewSubscriber(sub pubsub.Subscriber, logger *slog.Logger) *Subscriber {
	return &Subscriber{sub: sub, logger: logger.With("component", "audit")}
}

// Start subscribes to all audit topics. Delivery stops when ctx is canceled.
func (s *Subscriber) Start(ctx context.Context) error {
	for _, topic := range Topics() {
		if err := s.sub.Subscribe(ctx, topic, s.handle); err != nil {
			return fmt.Errorf("subscribing to %s: %w", topic, err)
		}
	}
	return nil
}

func (s *Subscriber) handle(ctx context.Context, msg pubsub.Message) error {
	attrs := []any{
		"topic", msg.Topic,
		"actor", msg.Actor,
		"request_id", msg.RequestID,
		"published_at", msg.PublishedAt,
	}

	if msg.Topic == LoginFailed.Name() {
		attempt, err := pubsub.Decode(LoginFailed, msg)
		if err != nil {
			return err
		}
		s.logger.WarnContext(ctx, "audit", append(attrs, "reason", attempt.Reason)...)
		return nil
	}

	s.logger.InfoContext(ctx, "audit", append(attrs, "payload", json.RawMessage(msg.Payload))...)
	return nil
}
