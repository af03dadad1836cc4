package eventbus

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ConsumedEvent is the envelope handlers receive.
type ConsumedEvent struct {
	EventID       uuid.UUID       `json:"event_id"`
	AggregateID   int64           `json:"aggregate_id"`
	AggregateType string          `json:"aggregate_type"`
	RoutingKey    string          `json:"routing_key"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Metadata      EventMetadata   `json:"metadata"`
	Raw           json.RawMessage `json:"-"`
}

// EventMetadata mirrors domain.EventMetadata on the consuming side.
type EventMetadata struct {
	CorrelationID string `json:"correlation_id,omitempty"`
	Username      string `json:"username,omitempty"`
}

// Handler reacts to one event.
type Handler func(ctx context.Context, event *ConsumedEvent) error

// InProcessBus delivers events synchronously to handlers subscribed by
// routing key. It stands in for RabbitMQ in local mode. "#" subscribes to
// everything.
type InProcessBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   *slog.Logger
}

// NewInProcessBus creates an empty bus.
func NewInProcessBus(logger *slog.Logger) *InProcessBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &InProcessBus{handlers: make(map[string][]Handler), logger: logger}
}

// Subscribe registers h for routingKey.
func (b *InProcessBus) Subscribe(routingKey string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[routingKey] = append(b.handlers[routingKey], h)
}

// Publish decodes payload and dispatches it. Handler failures are logged and
// never returned, so a broken handler cannot fail the operation that emitted the event.
func (b *InProcessBus) Publish(ctx context.Context, routingKey string, payload []byte) error {
	event := &ConsumedEvent{}
	if err := json.Unmarshal(payload, event); err != nil {
		b.logger.ErrorContext(ctx, "failed to unmarshal event payload",
			"routing_key", routingKey,
			"error", err,
		)
		return nil
	}
	if event.RoutingKey == "" {
		event.RoutingKey = routingKey
	}
	event.Raw = payload

	b.mu.RLock()
	handlers := append(append([]Handler(nil), b.handlers[routingKey]...), b.handlers["#"]...)
	b.mu.RUnlock()

	for _, h := range handlers {
		if err := h(ctx, event); err != nil {
			b.logger.ErrorContext(ctx, "event handler failed",
				"routing_key", routingKey,
				"event_id", event.EventID.String(),
				"error", err,
			)
		}
	}
	return nil
}

func (b *InProcessBus) Close() error {
	return nil
}

// ActivityLogHandler logs every event it receives. Wired in local mode so
// task activity is visible without a broker.
func ActivityLogHandler(logger *slog.Logger) Handler {
	return func(ctx context.Context, event *ConsumedEvent) error {
		logger.InfoContext(ctx, "task activity",
			"routing_key", event.RoutingKey,
			"aggregate_id", event.AggregateID,
			"actor", event.Metadata.Username,
		)
		return nil
	}
}
