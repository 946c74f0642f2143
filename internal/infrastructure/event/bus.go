// Package event provides the in-process event bus that carries order and
// package events to the dashboard cache, business metrics and audit log.
package event

import (
	"context"
	"fmt"
	"sync"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared"
	"github.com/Charan2012-gif/Shopping-App/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

var _ shared.EventBus = (*InMemoryEventBus)(nil)

// InMemoryEventBus dispatches events synchronously to the subscribed handlers.
// Events are delivered only between Start and Stop; anything published
// outside that window is dropped with a warning.
type InMemoryEventBus struct {
	registry *HandlerRegistry
	logger   *zap.Logger

	// held for reading during dispatch so Stop waits for in-flight events
	mu      sync.RWMutex
	running bool
}

// NewInMemoryEventBus creates a new in-memory event bus
func NewInMemoryEventBus(logger *zap.Logger) *InMemoryEventBus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InMemoryEventBus{
		registry: NewHandlerRegistry(),
		logger:   logger.Named("event_bus"),
	}
}

// Publish hands every event to its handlers. A failing or panicking handler is
// logged and does not stop delivery to the others, so Publish never fails a
// business operation that already committed.
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, event := range events {
		log := b.logger.With(
			zap.String("event_type", event.EventType()),
			zap.String("event_id", event.EventID().String()),
		)
		if !b.running {
			log.Warn("event bus not running, event dropped")
			continue
		}
		if handlers := b.registry.GetHandlers(event.EventType()); len(handlers) > 0 {
			b.deliver(ctx, log, event, handlers)
		}
	}
	return nil
}

// deliver runs handlers in registration order under one span per event.
func (b *InMemoryEventBus) deliver(ctx context.Context, log *zap.Logger, event shared.DomainEvent, handlers []shared.EventHandler) {
	ctx, span := telemetry.StartSpan(ctx, "event."+event.EventType(),
		telemetry.WithAttribute("event.id", event.EventID()),
		telemetry.WithAttribute("event.aggregate_id", event.AggregateID()),
		telemetry.WithAttribute("event.handlers", len(handlers)),
	)
	defer span.End()

	for _, handler := range handlers {
		err := safeHandle(ctx, handler, event)
		if err == nil {
			continue
		}
		telemetry.RecordError(span, err)
		log.Error("handler failed to process event", zap.String("handler", handlerName(handler)), zap.Error(err))
	}
}

func safeHandle(ctx context.Context, handler shared.EventHandler, event shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler %s panicked: %v", handlerName(handler), r)
		}
	}()
	return handler.Handle(ctx, event)
}

func handlerName(handler shared.EventHandler) string {
	return fmt.Sprintf("%T", handler)
}

// Subscribe registers handler for eventTypes, defaulting to handler.EventTypes()
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	b.registry.Register(handler, eventTypes...)
	b.logger.Debug("handler subscribed",
		zap.String("handler", handlerName(handler)),
		zap.Strings("event_types", eventTypes),
	)
}

func (b *InMemoryEventBus) Unsubscribe(handler shared.EventHandler) {
	b.registry.Unregister(handler)
}

func (b *InMemoryEventBus) Start(context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.running = true
	b.logger.Info("event bus started", zap.Strings("event_types", b.registry.EventTypes()))
	return nil
}

// Stop waits for in-flight deliveries, then drops whatever arrives later.
func (b *InMemoryEventBus) Stop(context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.running = false
	b.logger.Info("event bus stopped")
	return nil
}
