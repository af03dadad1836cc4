package application

import (
	"context"

	"github.com/felixgeelhaar/todolist/internal/shared/domain"
	"github.com/felixgeelhaar/todolist/pkg/observability"
)

type metadataSetter interface {
	SetMetadata(metadata domain.EventMetadata)
}

// NewEventMetadata builds event metadata for the acting user, reusing the
// correlation id carried by ctx when there is one.
func NewEventMetadata(ctx context.Context, username string) domain.EventMetadata {
	correlationID := observability.CorrelationIDFromContext(ctx)
	if correlationID == "" {
		correlationID = observability.RequestIDFromContext(ctx)
	}
	if correlationID == "" {
		correlationID = observability.CorrelationIDFromContext(observability.WithCorrelationID(ctx, ""))
	}
	return domain.EventMetadata{
		CorrelationID: correlationID,
		Username:      username,
	}
}

// ApplyEventMetadata sets metadata on all events that support it.
func ApplyEventMetadata(events []domain.DomainEvent, metadata domain.EventMetadata) {
	for _, event := range events {
		if setter, ok := event.(metadataSetter); ok {
			setter.SetMetadata(metadata)
		}
	}
}
