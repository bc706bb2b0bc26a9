// Package events carries domain events between bounded contexts in-process.
// Modules publish what happened; subscribers react without the publisher
// knowing who listens. No business logic lives here.
package events

import (
	"context"
	"time"
)

// Event is implemented by every domain event. The name doubles as the
// subscription key on the bus.
type Event interface {
	// EventName identifies the event type, e.g. "booking.submitted".
	EventName() string
	// OccurredAt is the publish-side timestamp.
	OccurredAt() time.Time
}

// BaseEvent supplies the timestamp; concrete events embed it.
type BaseEvent struct {
	Timestamp time.Time `json:"timestamp"`
}

// OccurredAt returns the event's timestamp.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// NewBaseEvent stamps a base event with the current time.
func NewBaseEvent() BaseEvent {
	return BaseEvent{Timestamp: time.Now()}
}

// Handler reacts to one event type.
type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc adapts a plain function into a Handler.
type HandlerFunc func(ctx context.Context, event Event) error

// Handle invokes the wrapped function.
func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Bus dispatches events to their subscribers.
type Bus interface {
	// Publish dispatches asynchronously; the publisher does not wait and
	// handler failures only surface in the log.
	Publish(ctx context.Context, event Event)

	// PublishSync dispatches in the caller's goroutine and reports the
	// joined handler errors. Used where the side effect must land before
	// the operation returns, e.g. the booking audit trail on submit.
	PublishSync(ctx context.Context, event Event) error

	// Subscribe registers a handler under an event name as returned by
	// Event.EventName.
	Subscribe(eventName string, handler Handler)
}
