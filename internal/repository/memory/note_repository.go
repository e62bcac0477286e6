package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"notez-be/internal/entity"
	"notez-be/internal/repository/contract"
)

// NoteRepository is a process-local store used for DB_DRIVER=memory and in
// tests. Notes are copied in and out so callers never share state with it.
type NoteRepository struct {
	mu    sync.RWMutex
	notes []*entity.Note
}

func NewNoteRepository() *NoteRepository {
	return &NoteRepository{}
}

var _ contract.NoteRepository = (*NoteRepository)(nil)

func clone(n *entity.Note) *entity.Note {
	c := *n
	if n.UpdatedAt != nil {
		t := *n.UpdatedAt
		c.UpdatedAt = &t
	}
	return &c
}

func (r *NoteRepository) FindByOwner(ctx context.Context, ownerId string) ([]*entity.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entity.Note
	for _, n := range r.notes {
		if n.OwnerId == ownerId {
			out = append(out, clone(n))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *NoteRepository) FindById(ctx context.Context, id string) (*entity.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	// insertion order is creation order, so the first hit is the oldest
	for _, n := range r.notes {
		if n.Id == id {
			return clone(n), nil
		}
	}
	return nil, nil
}

func (r *NoteRepository) Insert(ctx context.Context, note *entity.Note) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now()
	}
	r.notes = append(r.notes, clone(note))
	return nil
}

func (r *NoteRepository) update(ctx context.Context, id string, apply func(n *entity.Note)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	matched := false
	for _, n := range r.notes {
		if n.Id == id {
			apply(n)
			n.UpdatedAt = &now
			matched = true
		}
	}
	if !matched {
		return contract.ErrNoteNotFound
	}
	return nil
}

func (r *NoteRepository) UpdateById(ctx context.Context, id string, title string, content string) error {
	return r.update(ctx, id, func(n *entity.Note) {
		n.Title = title
		n.Content = content
		n.Public = false
	})
}

func (r *NoteRepository) SetPublic(ctx context.Context, id string, public bool) error {
	return r.update(ctx, id, func(n *entity.Note) {
		n.Public = public
	})
}

func (r *NoteRepository) DeleteById(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.notes[:0]
	for _, n := range r.notes {
		if n.Id != id {
			kept = append(kept, n)
		}
	}
	r.notes = kept
	return nil
}
