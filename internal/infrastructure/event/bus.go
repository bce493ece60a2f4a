// Package event dispatches domain events to in-process handlers and,
// when enabled, forwards them to Kafka.
package event

import (
	"context"
	"fmt"

	"github.com/sereci/sirepre/internal/domain/shared"
	"go.uber.org/zap"
)

// InMemoryEventBus calls subscribed handlers synchronously on Publish.
// Handlers run after the write has committed, so their failures are
// logged and Publish always returns nil.
type InMemoryEventBus struct {
	registry *HandlerRegistry
	logger   *zap.Logger
}

func NewInMemoryEventBus(logger *zap.Logger) *InMemoryEventBus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InMemoryEventBus{registry: NewHandlerRegistry(), logger: logger}
}

func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	for _, ev := range events {
		handlers := b.registry.GetHandlers(ev.EventType())
		for _, h := range handlers {
			panicked, err := b.deliver(ctx, h, ev)
			if err == nil {
				continue
			}
			b.logger.Error("event handler failed",
				zap.String("event_type", ev.EventType()),
				zap.Stringer("event_id", ev.EventID()),
				zap.Stringer("aggregate_id", ev.AggregateID()),
				zap.Bool("panicked", panicked),
				zap.Error(err))
		}
	}
	return nil
}

// Subscribe adds handler for eventTypes, or for handler.EventTypes() when
// none are given.
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	b.registry.Register(handler, eventTypes...)
}

func (b *InMemoryEventBus) Unsubscribe(handler shared.EventHandler) {
	b.registry.Unregister(handler)
}

func (b *InMemoryEventBus) deliver(ctx context.Context, h shared.EventHandler, ev shared.DomainEvent) (panicked bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			panicked, err = true, fmt.Errorf("%v", r)
		}
	}()
	return false, h.Handle(ctx, ev)
}

var _ shared.EventPublisher = (*InMemoryEventBus)(nil)
