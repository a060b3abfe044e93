// Package event dispatches domain events to in-process handlers after the
// originating transaction has committed.
package event

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/snehagupta9582883065/recent-api/internal/domain/shared"
	"github.com/snehagupta9582883065/recent-api/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// BusStats counts dispatch outcomes since the bus was created
type BusStats struct {
	Published int64 `json:"published"`
	Delivered int64 `json:"delivered"`
	Failed    int64 `json:"failed"`
	Dropped   int64 `json:"dropped"`
}

// InMemoryEventBus implements EventBus with synchronous in-process delivery.
// A failing or panicking handler is logged and never affects the publisher
// or the remaining handlers.
type InMemoryEventBus struct {
	subscriptions *subscriptions
	logger        *zap.Logger
	stopped       atomic.Bool
	inflight      sync.WaitGroup

	published atomic.Int64
	delivered atomic.Int64
	failed    atomic.Int64
	dropped   atomic.Int64
}

// NewInMemoryEventBus creates a new in-memory event bus that accepts events immediately
func NewInMemoryEventBus(zapLogger *zap.Logger) *InMemoryEventBus {
	if zapLogger == nil {
		zapLogger = zap.NewNop()
	}
	return &InMemoryEventBus{
		subscriptions: newSubscriptions(),
		logger:        zapLogger.Named("eventbus"),
	}
}

// Publish delivers each event to every matching handler in subscription order
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	if b.stopped.Load() {
		b.dropped.Add(int64(len(events)))
		b.logger.Warn("event bus stopped, dropping events", zap.Int("count", len(events)))
		return nil
	}

	b.inflight.Add(1)
	defer b.inflight.Done()

	log := b.logger
	if requestID := logger.GetRequestID(ctx); requestID != "" {
		log = log.With(zap.String("request_id", requestID))
	}

	for _, event := range events {
		b.published.Add(1)
		for _, sub := range b.subscriptions.match(event.EventType()) {
			if err := b.dispatch(ctx, sub.handler, event); err != nil {
				b.failed.Add(1)
				log.Error("handler failed to process event",
					zap.String("handler", sub.name),
					zap.String("event_type", event.EventType()),
					zap.String("event_id", event.EventID().String()),
					zap.String("aggregate_id", event.AggregateID().String()),
					zap.Error(err),
				)
				continue
			}
			b.delivered.Add(1)
		}
	}
	return nil
}

// Subscribe registers a handler for the given event types, or for the
// handler's own EventTypes when none are passed. A handler with no types at
// all receives every event.
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	name := b.subscriptions.add(handler, eventTypes)
	b.logger.Debug("handler subscribed",
		zap.String("handler", name),
		zap.Strings("event_types", eventTypes),
	)
}

// Unsubscribe removes a handler from every event type
func (b *InMemoryEventBus) Unsubscribe(handler shared.EventHandler) {
	b.subscriptions.remove(handler)
	b.logger.Debug("handler unsubscribed", zap.String("handler", handlerName(handler)))
}

// Start (re)opens the bus for publishing
func (b *InMemoryEventBus) Start(ctx context.Context) error {
	b.stopped.Store(false)
	b.logger.Info("event bus started")
	return nil
}

// Stop refuses new events and waits for in-flight deliveries or ctx expiry
func (b *InMemoryEventBus) Stop(ctx context.Context) error {
	b.stopped.Store(true)

	done := make(chan struct{})
	go func() {
		b.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		b.logger.Info("event bus stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("event bus stop: %w", ctx.Err())
	}
}

// Stats returns a snapshot of the dispatch counters
func (b *InMemoryEventBus) Stats() BusStats {
	return BusStats{
		Published: b.published.Load(),
		Delivered: b.delivered.Load(),
		Failed:    b.failed.Load(),
		Dropped:   b.dropped.Load(),
	}
}

func (b *InMemoryEventBus) dispatch(ctx context.Context, handler shared.EventHandler, event shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()

	return handler.Handle(ctx, event)
}

// Ensure InMemoryEventBus implements EventBus
var _ shared.EventBus = (*InMemoryEventBus)(nil)

type subscription struct {
	handler shared.EventHandler
	name    string
}

// subscriptions maps event types to handlers; the empty key holds wildcard handlers
type subscriptions struct {
	mu     sync.RWMutex
	byType map[string][]subscription
}

const wildcard = ""

func newSubscriptions() *subscriptions {
	return &subscriptions{byType: make(map[string][]subscription)}
}

func (s *subscriptions) add(handler shared.EventHandler, eventTypes []string) string {
	sub := subscription{handler: handler, name: handlerName(handler)}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(eventTypes) == 0 {
		eventTypes = []string{wildcard}
	}
	for _, eventType := range eventTypes {
		s.byType[eventType] = append(s.byType[eventType], sub)
	}
	return sub.name
}

func (s *subscriptions) remove(handler shared.EventHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for eventType, subs := range s.byType {
		kept := subs[:0:0]
		for _, sub := range subs {
			if sub.handler != handler {
				kept = append(kept, sub)
			}
		}
		if len(kept) == 0 {
			delete(s.byType, eventType)
			continue
		}
		s.byType[eventType] = kept
	}
}

// match returns a snapshot of the type-specific handlers followed by wildcard handlers
func (s *subscriptions) match(eventType string) []subscription {
	s.mu.RLock()
	defer s.mu.RUnlock()
	typed := s.byType[eventType]
	all := s.byType[wildcard]
	result := make([]subscription, 0, len(typed)+len(all))
	result = append(result, typed...)
	if eventType != wildcard {
		result = append(result, all...)
	}
	return result
}

func handlerName(handler shared.EventHandler) string {
	return fmt.Sprintf("%T", handler)
}
