// Package eventbus publishes domain events to a message broker, or to
// in-process handlers in local mode.
package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/todolist/internal/shared/domain"
)

// Publisher sends serialized events to the event bus.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload []byte) error
	Close() error
}

// DomainEventPublisher serializes domain events as JSON and hands them to a Publisher.
type DomainEventPublisher struct {
	publisher Publisher
	logger    *slog.Logger
}

// NewDomainEventPublisher creates a DomainEventPublisher.
func NewDomainEventPublisher(publisher Publisher, logger *slog.Logger) *DomainEventPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &DomainEventPublisher{publisher: publisher, logger: logger}
}

// Publish sends every event, stopping at the first failure.
func (p *DomainEventPublisher) Publish(ctx context.Context, events ...domain.DomainEvent) error {
	for _, event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", event.RoutingKey(), err)
		}
		if err := p.publisher.Publish(ctx, event.RoutingKey(), payload); err != nil {
			return fmt.Errorf("publish event %s: %w", event.RoutingKey(), err)
		}
		p.logger.DebugContext(ctx, "domain event published",
			"routing_key", event.RoutingKey(),
			"event_id", event.EventID().String(),
			"aggregate_id", event.AggregateID(),
		)
	}
	return nil
}

// NoopPublisher drops everything. Used when no broker is configured.
type NoopPublisher struct {
	logger *slog.Logger
}

// NewNoopPublisher creates a publisher that does nothing.
func NewNoopPublisher(logger *slog.Logger) *NoopPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &NoopPublisher{logger: logger}
}

func (p *NoopPublisher) Publish(ctx context.Context, routingKey string, payload []byte) error {
	p.logger.DebugContext(ctx, "noop publish",
		"routing_key", routingKey,
		"size", len(payload),
	)
	return nil
}

func (p *NoopPublisher) Close() error {
	return nil
}
