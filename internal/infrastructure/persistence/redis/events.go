package redis

import (
	"context"
	"time"

	"github.com/hobbylab/hobbylab-core/internal/domain/shared"
)

// EventMessage is the JSON body published for each domain event.
type EventMessage struct {
	Type        shared.EventType       `json:"type"`
	AggregateID string                 `json:"aggregate_id"`
	OccurredAt  time.Time              `json:"occurred_at"`
	Payload     map[string]interface{} `json:"payload"`
}

// NewEventMessage flattens an event for the wire.
func NewEventMessage(e shared.Event) EventMessage {
	return EventMessage{
		Type:        e.EventType(),
		AggregateID: e.AggregateID(),
		OccurredAt:  e.OccurredAt(),
		Payload:     e.Payload(),
	}
}

// EventForwarder republishes domain events on the owner's channel.
type EventForwarder struct {
	cache   *Cache
	channel string
	timeout time.Duration
}

// NewEventForwarder creates a forwarder for owner's events.
func NewEventForwarder(cache *Cache, owner string) *EventForwarder {
	return &EventForwarder{
		cache:   cache,
		channel: EventsChannel(owner),
		timeout: 2 * time.Second,
	}
}

// Handle is a shared.EventHandler.
func (f *EventForwarder) Handle(e shared.Event) error {
	ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
	defer cancel()
	return f.cache.Publish(ctx, f.channel, NewEventMessage(e))
}
