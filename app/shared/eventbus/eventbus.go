// Package eventbus provides the in-process watermill pub/sub used to fan
// domain events out to other modules.
package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// EventBus publishes and subscribes to topics.
type EventBus interface {
	message.Publisher
	message.Subscriber
}

// New returns a gochannel-backed bus. Messages are delivered to subscribers
// in-process and are not persisted.
func New(logger *slog.Logger) EventBus {
	return gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 64,
	}, watermill.NewSlogLogger(logger))
}

// NewRouter builds a watermill router logging through slog.
func NewRouter(logger *slog.Logger) (*message.Router, error) {
	router, err := message.NewRouter(message.RouterConfig{}, watermill.NewSlogLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create message router: %w", err)
	}
	return router, nil
}

// NewMessage marshals payload into a message with a fresh UUID. The
// correlation id, when present in ctx, is copied into metadata.
func NewMessage(ctx context.Context, payload any) (*message.Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event payload: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), data)
	if id, ok := ctx.Value(correlationIDKey{}).(string); ok && id != "" {
		msg.Metadata.Set("correlation_id", id)
	}
	return msg, nil
}

// Decode unmarshals a message payload into T.
func Decode[T any](msg *message.Message) (T, error) {
	var out T
	if err := json.Unmarshal(msg.Payload, &out); err != nil {
		return out, fmt.Errorf("failed to unmarshal event payload: %w", err)
	}
	return out, nil
}

type correlationIDKey struct{}

// WithCorrelationID stores a correlation id in ctx for NewMessage.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}
