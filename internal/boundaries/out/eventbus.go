package out

import (
	"context"

	"github.com/bnema/registry-cli/internal/domain"
)

// EventHandler defines the contract for handling events.
type EventHandler interface {
	Handle(ctx context.Context, event domain.Event) error
	CanHandle(eventType domain.EventType) bool
}

// EventPublisher defines the contract for publishing events.
type EventPublisher interface {
	Publish(ctx context.Context, eventType domain.EventType, payload any) error
}

// EventSubscriber defines the contract for subscribing to events.
type EventSubscriber interface {
	Subscribe(handler EventHandler) error
	Unsubscribe(handler EventHandler) error
}

// EventBus combines publishing and subscribing capabilities.
type EventBus interface {
	EventPublisher
	EventSubscriber
}
