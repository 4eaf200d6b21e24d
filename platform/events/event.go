// Package events carries domain events between the configurator, lead-capture
// and notification modules. Delivery is in-process only; handlers must not
// assume durability across restarts.
package events

import (
	"context"
	"time"
)

// Event is implemented by every domain event.
type Event interface {
	// EventName identifies the event type, e.g. "lead.created".
	EventName() string
	// OccurredAt is when the event was raised.
	OccurredAt() time.Time
}

// BaseEvent carries the timestamp shared by all events.
type BaseEvent struct {
	Timestamp time.Time `json:"timestamp"`
}

// OccurredAt is when the event was raised.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// NewBaseEvent stamps a base event with the current time.
func NewBaseEvent() BaseEvent {
	return BaseEvent{Timestamp: time.Now()}
}

// Handler reacts to published events. A handler only receives events whose
// name it subscribed to, but one handler may serve several names.
type Handler interface {
	Handle(ctx context.Context, event Event) error
}
