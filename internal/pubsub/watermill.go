package pubsub

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// deliveryBuffer is how many messages may wait per subscriber before Publish
// blocks the request that emits them.
const deliveryBuffer = 64

const (
	metaTopic       = "topic"
	metaActor       = "actor"
	metaRequestID   = "request_id"
	metaPublishedAt = "published_at"
)

var (
	_ Publisher               = (*WatermillBridge)(nil)
	_ Subscriber              = (*WatermillBridge)(nil)
	_ watermill.LoggerAdapter = slogAdapter{}
)

// WatermillBridge is the bus on top of watermill's in-memory GoChannel.
// Events never leave the process.
type WatermillBridge struct {
	channel *gochannel.GoChannel
	logger  *slog.Logger
	now     func() time.Time
}

// NewWatermillBridge creates the bus. A nil logger means slog.Default().
func NewWatermillBridge(logger *slog.Logger) *WatermillBridge {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "pubsub")
	return &WatermillBridge{
		channel: gochannel.NewGoChannel(
			gochannel.Config{OutputChannelBuffer: deliveryBuffer},
			slogAdapter{logger: logger},
		),
		logger: logger,
		now:    time.Now,
	}
}

// Publish stamps msg with the publish time unless it already has one.
func (wb *WatermillBridge) Publish(ctx context.Context, msg Message) error {
	if msg.PublishedAt.IsZero() {
		msg.PublishedAt = wb.now()
	}
	return wb.channel.Publish(msg.Topic, encode(msg))
}

// Subscribe starts a delivery loop for topic and returns once the
// subscription exists.
func (wb *WatermillBridge) Subscribe(ctx context.Context, topic string, handler Handler) error {
	messages, err := wb.channel.Subscribe(ctx, topic)
	if err != nil {
		return err
	}

	go func() {
		for wmMsg := range messages {
			if err := handler(ctx, decode(wmMsg)); err != nil {
				wb.logger.Error("dropping message", "topic", topic, "msg_id", wmMsg.UUID, "error", err)
			}
			// Always ack: a nack makes GoChannel redeliver without end.
			wmMsg.Ack()
		}
	}()
	return nil
}

// Close stops every subscription.
func (wb *WatermillBridge) Close() error {
	return wb.channel.Close()
}

func encode(msg Message) *message.Message {
	wmMsg := message.NewMessage(watermill.NewUUID(), msg.Payload)
	wmMsg.Metadata.Set(metaTopic, msg.Topic)
	wmMsg.Metadata.Set(metaActor, msg.Actor)
	wmMsg.Metadata.Set(metaRequestID, msg.RequestID)
	wmMsg.Metadata.Set(metaPublishedAt, msg.PublishedAt.UTC().Format(time.RFC3339Nano))
	return wmMsg
}

func decode(wmMsg *message.Message) Message {
	msg := Message{
		Origin: Origin{
			Actor:     wmMsg.Metadata.Get(metaActor),
			RequestID: wmMsg.Metadata.Get(metaRequestID),
		},
		Topic:   wmMsg.Metadata.Get(metaTopic),
		Payload: wmMsg.Payload,
	}
	if ts, err := time.Parse(time.RFC3339Nano, wmMsg.Metadata.Get(metaPublishedAt)); err == nil {
		msg.PublishedAt = ts
	}
	return msg
}

// slogAdapter sends watermill's own logging to slog. Trace goes to debug.
type slogAdapter struct {
	logger *slog.Logger
}

func (a slogAdapter) Error(msg string, err error, fields watermill.LogFields) {
	a.logger.Error(msg, append(attrs(fields), "error", err)...)
}

func (a slogAdapter) Info(msg string, fields watermill.LogFields) {
	a.logger.Info(msg, attrs(fields)...)
}

func (a slogAdapter) Debug(msg string, fields watermill.LogFields) {
	a.logger.Debug(msg, attrs(fields)...)
}

func (a slogAdapter) Trace(msg string, fields watermill.LogFields) {
	a.logger.Debug(msg, attrs(fields)...)
}

func (a slogAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return slogAdapter{logger: a.logger.With(attrs(fields)...)}
}

// attrs flattens fields in key order so log lines are stable.
func attrs(fields watermill.LogFields) []any {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]any, 0, 2*len(keys))
	for _, k := range keys {
		out = append(out, k, fields[k])
	}
	return out
}
