package domain_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/felixgeelhaar/todolist/internal/shared/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBaseEvent(t *testing.T) {
	before := time.Now().UTC()

	event := domain.NewBaseEvent(42, "Task", "todolist.task.created")

	after := time.Now().UTC()

	assert.NotEqual(t, uuid.Nil, event.EventID())
	assert.Equal(t, int64(42), event.AggregateID())
	assert.Equal(t, "Task", event.AggregateType())
	assert.Equal(t, "todolist.task.created", event.RoutingKey())
	assert.False(t, event.OccurredAt().Before(before))
	assert.False(t, event.OccurredAt().After(after))
}

func TestBaseEvent_WithMetadata(t *testing.T) {
	event := domain.NewBaseEvent(1, "Task", "todolist.task.deleted")
	event.SetMetadata(domain.EventMetadata{CorrelationID: "corr", Username: "admin"})

	assert.Equal(t, "corr", event.Metadata().CorrelationID)
	assert.Equal(t, "admin", event.Metadata().Username)
}

func TestBaseEvent_JSONShape(t *testing.T) {
	event := domain.NewBaseEvent(7, "Task", "todolist.task.updated")
	event.SetMetadata(domain.EventMetadata{Username: "admin"})

	payload, err := json.Marshal(event)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, float64(7), decoded["aggregate_id"])
	assert.Equal(t, "todolist.task.updated", decoded["routing_key"])
	assert.Equal(t, "admin", decoded["metadata"].(map[string]any)["username"])
}

func TestErrorKinds(t *testing.T) {
	wrapped := fmt.Errorf("task %w", domain.ErrNotFound)
	assert.True(t, errors.Is(wrapped, domain.ErrNotFound))
	assert.False(t, errors.Is(wrapped, domain.ErrInvalidState))
}
