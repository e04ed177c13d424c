// Package eventbus implements the event bus adapter.
package eventbus

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bnema/registry-cli/internal/boundaries/out"
	"github.com/bnema/registry-cli/internal/domain"
	"github.com/bnema/registry-cli/internal/logging"
)

// Ensure InMemory implements out.EventBus.
var _ out.EventBus = (*InMemory)(nil)

// InMemory delivers events synchronously, in subscription order, on the
// publisher's goroutine. Publish returns once every handler has run.
type InMemory struct {
	handlers []out.EventHandler
	mu       sync.RWMutex
	log      logging.Logger
	now      func() time.Time
}

// NewInMemory creates a new in-memory event bus.
func NewInMemory(log logging.Logger) *InMemory {
	return &InMemory{
		handlers: make([]out.EventHandler, 0),
		log:      log,
		now:      time.Now,
	}
}

// Publish wraps payload in an event and hands it to every interested handler.
// Handler errors are logged and returned joined.
func (bus *InMemory) Publish(ctx context.Context, eventType domain.EventType, payload any) error {
	event := domain.Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: bus.now(),
		Data:      payload,
	}

	switch p := payload.(type) {
	case domain.RunStartedPayload:
		event.RunID = p.RunID
	case domain.RepositoryPlannedPayload:
		event.RunID = p.RunID
		event.Repository = p.Repository
	case domain.RepositorySkippedPayload:
		event.RunID = p.RunID
		event.Repository = p.Repository
	case domain.TagProcessedPayload:
		event.RunID = p.RunID
		event.Repository = p.Repository
		event.Tag = p.Result.Tag
	case domain.RunFinishedPayload:
		if p.Report != nil {
			event.RunID = p.Report.ID
		}
	case domain.RunAbortedPayload:
		event.RunID = p.RunID
	}

	bus.mu.RLock()
	handlers := make([]out.EventHandler, len(bus.handlers))
	copy(handlers, bus.handlers)
	bus.mu.RUnlock()

	var errs []error
	for _, h := range handlers {
		if !h.CanHandle(event.Type) {
			continue
		}
		start := time.Now()
		if err := h.Handle(ctx, event); err != nil {
			bus.log.Error().
				Str(logging.FieldLayer, "adapter").
				Str(logging.FieldAdapter, "eventbus").
				Err(err).
				Str("event_id", event.ID).
				Str(logging.FieldEvent, string(event.Type)).
				Str(logging.FieldHandler, fmt.Sprintf("%T", h)).
				Msg("error handling event")
			errs = append(errs, err)
			continue
		}
		bus.log.Debug().
			Str(logging.FieldLayer, "adapter").
			Str(logging.FieldAdapter, "eventbus").
			Str("event_id", event.ID).
			Str(logging.FieldEvent, string(event.Type)).
			Str(logging.FieldHandler, fmt.Sprintf("%T", h)).
			Dur(logging.FieldDuration, time.Since(start)).
			Msg("event handled")
	}

	return errors.Join(errs...)
}

// Subscribe adds an event handler to the bus.
func (bus *InMemory) Subscribe(handler out.EventHandler) error {
	if handler == nil {
		return fmt.Errorf("nil handler")
	}

	bus.mu.Lock()
	defer bus.mu.Unlock()

	bus.handlers = append(bus.handlers, handler)
	bus.log.Debug().
		Str(logging.FieldLayer, "adapter").
		Str(logging.FieldAdapter, "eventbus").
		Str(logging.FieldHandler, fmt.Sprintf("%T", handler)).
		Int("total_handlers", len(bus.handlers)).
		Msg("event handler subscribed")

	return nil
}

// Unsubscribe removes an event handler from the bus.
func (bus *InMemory) Unsubscribe(handler out.EventHandler) error {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	for i, h := range bus.handlers {
		if h == handler {
			bus.handlers = append(bus.handlers[:i], bus.handlers[i+1:]...)
			return nil
		}
	}

	return fmt.Errorf("handler not found")
}
