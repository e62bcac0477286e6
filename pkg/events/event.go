package events

import (
	"context"
	"errors"
	"time"
)

const (
	NoteCreated  = "NOTE_CREATED"
	NoteUpdated  = "NOTE_UPDATED"
	NoteDeleted  = "NOTE_DELETED"
	NoteShared   = "NOTE_SHARED"
	NoteUnshared = "NOTE_UNSHARED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "NOTE_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewNoteEvent builds a note lifecycle event. actorId is the session user
// that triggered it, which is not necessarily the owner.
func NewNoteEvent(eventType, noteId, actorId string) BaseEvent {
	return BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"note_id":  noteId,
			"actor_id": actorId,
		},
		OccurredAt: time.Now(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// MultiPublisher sends each event to every publisher and joins the errors.
type MultiPublisher []Publisher

func (m MultiPublisher) Publish(ctx context.Context, event Event) error {
	var errs []error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
