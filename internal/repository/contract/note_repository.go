package contract

import (
	"context"
	"errors"

	"notez-be/internal/entity"
)

// ErrNoteNotFound is returned by writes that matched no note.
var ErrNoteNotFound = errors.New("note not found")

type NoteRepository interface {
	FindByOwner(ctx context.Context, ownerId string) ([]*entity.Note, error)
	// FindById returns nil, nil when no note has the id.
	FindById(ctx context.Context, id string) (*entity.Note, error)
	Insert(ctx context.Context, note *entity.Note) error
	// UpdateById overwrites title and content and always clears Public.
	UpdateById(ctx context.Context, id string, title string, content string) error
	SetPublic(ctx context.Context, id string, public bool) error
	// DeleteById succeeds when nothing matches.
	DeleteById(ctx context.Context, id string) error
}
