package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event is an immutable record of something that happened to an aggregate.
// Implementations carry primitive fields only.
type Event interface {
	EventName() string
	AggregateID() string
	OccurredAt() time.Time
}

// EventBase holds the fields shared by every event.
type EventBase struct {
	ID   string    `json:"aggregate_id"`
	When time.Time `json:"occurred_at"`
}

func (b EventBase) AggregateID() string   { return b.ID }
func (b EventBase) OccurredAt() time.Time { return b.When }

func newEventBase(id string, at time.Time) EventBase {
	return EventBase{ID: id, When: at}
}

// AggregateRoot buffers the events raised by an aggregate until they are dispatched.
type AggregateRoot struct {
	events []Event
}

func (a *AggregateRoot) record(event Event) {
	a.events = append(a.events, event)
}

// Events returns a copy of the pending events in the order they were raised.
func (a *AggregateRoot) Events() []Event {
	if a == nil || len(a.events) == 0 {
		return nil
	}
	out := make([]Event, len(a.events))
	copy(out, a.events)
	return out
}

// ClearEvents drops pending events. Call it only after dispatch.
func (a *AggregateRoot) ClearEvents() {
	if a == nil {
		return
	}
	a.events = nil
}

// EventSource is satisfied by every aggregate root.
type EventSource interface {
	Events() []Event
	ClearEvents()
}

// clock and id generation are package variables so tests can pin them.
var (
	now   = func() time.Time { return time.Now().UTC() }
	newID = uuid.NewString
)

// Touch returns the current time truncated to microseconds, matching postgres timestamp precision.
func Touch() time.Time {
	return now().Truncate(time.Microsecond)
}
