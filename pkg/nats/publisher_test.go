package nats

import (
	"testing"

	"notez-be/pkg/events"

	"github.com/stretchr/testify/assert"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, "notez.note_created", Subject(events.NoteCreated))
	assert.Equal(t, "notez.note_unshared", Subject(events.NoteUnshared))
}
