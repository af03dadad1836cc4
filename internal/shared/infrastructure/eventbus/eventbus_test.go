package eventbus_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/todolist/internal/shared/domain"
	"github.com/felixgeelhaar/todolist/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/todolist/pkg/observability"
)

type recordingPublisher struct {
	mu       sync.Mutex
	keys     []string
	payloads [][]byte
	err      error
	closed   bool
}

func (p *recordingPublisher) Publish(_ context.Context, routingKey string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.keys = append(p.keys, routingKey)
	p.payloads = append(p.payloads, payload)
	return nil
}

func (p *recordingPublisher) Close() error {
	p.closed = true
	return nil
}

func TestDomainEventPublisher_Publish(t *testing.T) {
	rec := &recordingPublisher{}
	pub := eventbus.NewDomainEventPublisher(rec, observability.Discard())

	created := domain.NewBaseEvent(1, "Task", "todolist.task.created")
	deleted := domain.NewBaseEvent(2, "Task", "todolist.task.deleted")

	require.NoError(t, pub.Publish(context.Background(), created, deleted))
	assert.Equal(t, []string{"todolist.task.created", "todolist.task.deleted"}, rec.keys)
	assert.Contains(t, string(rec.payloads[0]), `"aggregate_id":1`)
}

func TestDomainEventPublisher_PropagatesError(t *testing.T) {
	rec := &recordingPublisher{err: errors.New("broker down")}
	pub := eventbus.NewDomainEventPublisher(rec, observability.Discard())

	err := pub.Publish(context.Background(), domain.NewBaseEvent(1, "Task", "todolist.task.created"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "todolist.task.created")
}

func TestNoopPublisher(t *testing.T) {
	p := eventbus.NewNoopPublisher(nil)
	assert.NoError(t, p.Publish(context.Background(), "any", []byte("{}")))
	assert.NoError(t, p.Close())
}

func TestBreakerPublisher_OpensAfterConsecutiveFailures(t *testing.T) {
	rec := &recordingPublisher{err: errors.New("broker down")}
	pub := eventbus.NewBreakerPublisher(rec, eventbus.BreakerConfig{
		ConsecutiveFailures: 2,
		OpenTimeout:         time.Minute,
	}, observability.Discard())

	ctx := context.Background()
	assert.EqualError(t, pub.Publish(ctx, "k", nil), "broker down")
	assert.EqualError(t, pub.Publish(ctx, "k", nil), "broker down")
	assert.Equal(t, gobreaker.StateOpen, pub.State())

	assert.ErrorIs(t, pub.Publish(ctx, "k", nil), eventbus.ErrPublisherUnavailable)

	require.NoError(t, pub.Close())
	assert.True(t, rec.closed)
}

func TestBreakerPublisher_PassesThrough(t *testing.T) {
	rec := &recordingPublisher{}
	pub := eventbus.NewBreakerPublisher(rec, eventbus.DefaultBreakerConfig(), nil)

	require.NoError(t, pub.Publish(context.Background(), "todolist.task.created", []byte(`{}`)))
	assert.Equal(t, gobreaker.StateClosed, pub.State())
	assert.Len(t, rec.keys, 1)
}

func TestInProcessBus_DispatchesByRoutingKey(t *testing.T) {
	bus := eventbus.NewInProcessBus(observability.Discard())

	var created, all []*eventbus.ConsumedEvent
	bus.Subscribe("todolist.task.created", func(_ context.Context, e *eventbus.ConsumedEvent) error {
		created = append(created, e)
		return nil
	})
	bus.Subscribe("#", func(_ context.Context, e *eventbus.ConsumedEvent) error {
		all = append(all, e)
		return errors.New("handler failures are swallowed")
	})

	pub := eventbus.NewDomainEventPublisher(bus, observability.Discard())
	event := domain.NewBaseEvent(9, "Task", "todolist.task.created")
	event.SetMetadata(domain.EventMetadata{Username: "admin"})

	require.NoError(t, pub.Publish(context.Background(), event, domain.NewBaseEvent(9, "Task", "todolist.task.deleted")))

	require.Len(t, created, 1)
	assert.Equal(t, int64(9), created[0].AggregateID)
	assert.Equal(t, "admin", created[0].Metadata.Username)
	assert.Equal(t, event.EventID(), created[0].EventID)
	assert.Len(t, all, 2)
}

func TestInProcessBus_IgnoresMalformedPayload(t *testing.T) {
	bus := eventbus.NewInProcessBus(observability.Discard())
	called := false
	bus.Subscribe("#", func(context.Context, *eventbus.ConsumedEvent) error {
		called = true
		return nil
	})

	assert.NoError(t, bus.Publish(context.Background(), "k", []byte("not json")))
	assert.False(t, called)
	assert.NoError(t, bus.Close())
}

func TestActivityLogHandler(t *testing.T) {
	h := eventbus.ActivityLogHandler(observability.Discard())
	assert.NoError(t, h(context.Background(), &eventbus.ConsumedEvent{RoutingKey: "todolist.task.updated"}))
}
