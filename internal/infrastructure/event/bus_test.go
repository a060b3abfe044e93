package event

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/snehagupta9582883065/recent-api/internal/domain/catalog"
	"github.com/snehagupta9582883065/recent-api/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// recorder collects the types of the events it receives
type recorder struct {
	types []string
	err   error

	mu   sync.Mutex
	seen []string
}

func (r *recorder) Handle(_ context.Context, event shared.DomainEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, event.EventType())
	return r.err
}

func (r *recorder) EventTypes() []string { return r.types }

func (r *recorder) received() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.seen...)
}

type panicking struct{}

func (panicking) Handle(context.Context, shared.DomainEvent) error { panic("boom") }
func (panicking) EventTypes() []string                             { return []string{catalog.EventTypeCategoryCreated} }

func categoryEvents(t *testing.T) (created, moved, deleted shared.DomainEvent, countChanged shared.DomainEvent) {
	t.Helper()

	root, err := catalog.NewCategory("Beverages", nil)
	require.NoError(t, err)
	child, err := catalog.NewCategory("Soda", root)
	require.NoError(t, err)

	product, err := catalog.NewProduct("Cola", "Fizz", decimal.NewFromInt(2), &child.ID)
	require.NoError(t, err)

	return catalog.NewCategoryCreatedEvent(root),
		catalog.NewCategoryMovedEvent(child, &root.ID, 1),
		catalog.NewCategoryDeletedEvent(child, catalog.DeletePolicyRefuse),
		catalog.NewProductCategoryChangedEvent(product, nil)
}

func TestInMemoryEventBus_Routing(t *testing.T) {
	created, moved, deleted, countChanged := categoryEvents(t)
	all := []shared.DomainEvent{created, moved, deleted, countChanged}

	tests := []struct {
		name       string
		subscribed []string
		want       []string
	}{
		{
			name:       "single type",
			subscribed: []string{catalog.EventTypeCategoryMoved},
			want:       []string{catalog.EventTypeCategoryMoved},
		},
		{
			name:       "every category event",
			subscribed: catalog.CategoryEventTypes,
			want: []string{
				catalog.EventTypeCategoryCreated,
				catalog.EventTypeCategoryMoved,
				catalog.EventTypeCategoryDeleted,
			},
		},
		{
			name:       "product events only",
			subscribed: []string{catalog.EventTypeProductCategoryChanged},
			want:       []string{catalog.EventTypeProductCategoryChanged},
		},
		{
			name:       "unmatched type",
			subscribed: []string{"BannerReordered"},
			want:       nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := NewInMemoryEventBus(zap.NewNop())
			h := &recorder{}
			bus.Subscribe(h, tt.subscribed...)

			require.NoError(t, bus.Publish(context.Background(), all...))

			assert.Equal(t, tt.want, h.received())
			assert.Equal(t, int64(len(all)), bus.Stats().Published)
			assert.Equal(t, int64(len(tt.want)), bus.Stats().Delivered)
		})
	}
}

func TestInMemoryEventBus_SubscribeFallsBackToHandlerTypes(t *testing.T) {
	created, moved, _, countChanged := categoryEvents(t)
	bus := NewInMemoryEventBus(nil)

	h := &recorder{types: []string{catalog.EventTypeCategoryCreated, catalog.EventTypeProductCategoryChanged}}
	bus.Subscribe(h)

	require.NoError(t, bus.Publish(context.Background(), created, moved, countChanged))
	assert.Equal(t, []string{catalog.EventTypeCategoryCreated, catalog.EventTypeProductCategoryChanged}, h.received())
}

func TestInMemoryEventBus_WildcardReceivesEverything(t *testing.T) {
	created, moved, deleted, countChanged := categoryEvents(t)
	bus := NewInMemoryEventBus(zap.NewNop())

	wildcard := &recorder{}
	bus.Subscribe(wildcard)

	require.NoError(t, bus.Publish(context.Background(), created, moved, deleted, countChanged))
	assert.Len(t, wildcard.received(), 4)
}

func TestInMemoryEventBus_FailuresDoNotStopDelivery(t *testing.T) {
	created, _, _, _ := categoryEvents(t)
	bus := NewInMemoryEventBus(zap.NewNop())

	failing := &recorder{err: assert.AnError}
	after := &recorder{}
	bus.Subscribe(failing, catalog.EventTypeCategoryCreated)
	bus.Subscribe(&panicking{})
	bus.Subscribe(after, catalog.EventTypeCategoryCreated)

	require.NotPanics(t, func() {
		require.NoError(t, bus.Publish(context.Background(), created))
	})

	assert.Len(t, failing.received(), 1)
	assert.Len(t, after.received(), 1)
	stats := bus.Stats()
	assert.Equal(t, int64(1), stats.Published)
	assert.Equal(t, int64(1), stats.Delivered)
	assert.Equal(t, int64(2), stats.Failed)
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	created, _, _, _ := categoryEvents(t)
	bus := NewInMemoryEventBus(zap.NewNop())

	h := &recorder{}
	bus.Subscribe(h, catalog.EventTypeCategoryCreated)
	require.NoError(t, bus.Publish(context.Background(), created))

	bus.Unsubscribe(h)
	require.NoError(t, bus.Publish(context.Background(), created))

	assert.Len(t, h.received(), 1)
}

func TestInMemoryEventBus_StopDropsUntilRestart(t *testing.T) {
	created, _, _, _ := categoryEvents(t)
	bus := NewInMemoryEventBus(zap.NewNop())
	h := &recorder{}
	bus.Subscribe(h, catalog.EventTypeCategoryCreated)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, bus.Start(ctx))
	require.NoError(t, bus.Publish(ctx, created))
	require.NoError(t, bus.Stop(ctx))

	require.NoError(t, bus.Publish(ctx, created))
	assert.Len(t, h.received(), 1)
	assert.Equal(t, int64(1), bus.Stats().Dropped)

	require.NoError(t, bus.Start(ctx))
	require.NoError(t, bus.Publish(ctx, created))
	assert.Len(t, h.received(), 2)
}

func TestInMemoryEventBus_StopWaitsForInflight(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	release := make(chan struct{})
	entered := make(chan struct{})
	bus.Subscribe(blockingHandler{entered: entered, release: release})

	slow := shared.NewEventBase("Slow", "Category", uuid.New())
	go func() {
		_ = bus.Publish(context.Background(), &slow)
	}()
	<-entered

	short, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, bus.Stop(short), context.DeadlineExceeded)

	close(release)
	require.NoError(t, bus.Stop(context.Background()))
}

type blockingHandler struct {
	entered chan struct{}
	release chan struct{}
}

func (h blockingHandler) Handle(context.Context, shared.DomainEvent) error {
	close(h.entered)
	<-h.release
	return nil
}

func (blockingHandler) EventTypes() []string { return nil }
