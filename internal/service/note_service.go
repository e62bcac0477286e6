package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"notez-be/internal/dto"
	"notez-be/internal/entity"
	"notez-be/internal/pkg/logger"
	"notez-be/internal/repository/contract"
	"notez-be/pkg/events"
	"notez-be/pkg/utils"
)

type INoteService interface {
	ListByOwner(ctx context.Context, ownerId string) ([]*dto.NoteListItem, error)
	Create(ctx context.Context, viewer entity.Viewer, req *dto.CreateNoteRequest) (*dto.CreateNoteResponse, error)
	Show(ctx context.Context, viewer entity.Viewer, id string) (*dto.ShowNoteResponse, error)
	Edit(ctx context.Context, viewer entity.Viewer, id string) (*dto.ShowNoteResponse, error)
	Update(ctx context.Context, viewer entity.Viewer, req *dto.UpdateNoteRequest) (*dto.UpdateNoteResponse, error)
	Delete(ctx context.Context, viewer entity.Viewer, id string) error
	SetPublic(ctx context.Context, viewer entity.Viewer, id string, public bool) (*dto.ShareNoteResponse, error)
}

type NoteServiceOptions struct {
	StoreTimeout time.Duration
	// EnforceOwnership limits private notes to their owner. Off by default:
	// any authenticated session may read and edit any private note.
	EnforceOwnership bool
	BaseURL          string
}

type noteService struct {
	repo      contract.NoteRepository
	publisher events.Publisher
	logger    logger.ILogger
	opts      NoteServiceOptions
}

func NewNoteService(
	repo contract.NoteRepository,
	publisher events.Publisher,
	log logger.ILogger,
	opts NoteServiceOptions,
) INoteService {
	if opts.StoreTimeout <= 0 {
		opts.StoreTimeout = 5 * time.Second
	}
	return &noteService{
		repo:      repo,
		publisher: publisher,
		logger:    log,
		opts:      opts,
	}
}

func (s *noteService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.opts.StoreTimeout)
}

func storeError(op string, err error) error {
	if errors.Is(err, contract.ErrNoteNotFound) {
		return ErrNoteNotFound
	}
	return fmt.Errorf("%w: %s: %w", ErrStoreUnavailable, op, err)
}

func (s *noteService) publish(ctx context.Context, eventType, noteId string, viewer entity.Viewer) {
	if s.publisher == nil {
		return
	}
	actor := ""
	if viewer.User != nil {
		actor = viewer.User.Id
	}
	// notification is auxiliary, never fail the request on it
	if err := s.publisher.Publish(ctx, events.NewNoteEvent(eventType, noteId, actor)); err != nil {
		s.logger.Warn("NoteService", "failed to publish event", map[string]interface{}{
			"type":    eventType,
			"note_id": noteId,
			"error":   err,
		})
	}
}

func (s *noteService) find(ctx context.Context, id string) (*entity.Note, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	note, err := s.repo.FindById(ctx, id)
	if err != nil {
		return nil, storeError("find note", err)
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}
	return note, nil
}

func (s *noteService) checkOwner(viewer entity.Viewer, note *entity.Note) error {
	if !s.opts.EnforceOwnership {
		return nil
	}
	if viewer.User == nil || viewer.User.Id != note.OwnerId {
		return ErrNotNoteOwner
	}
	return nil
}

func toShowResponse(note *entity.Note) *dto.ShowNoteResponse {
	return &dto.ShowNoteResponse{
		Id:        note.Id,
		Title:     note.Title,
		Content:   note.Content,
		Public:    note.Public,
		OwnerId:   note.OwnerId,
		OwnerName: note.OwnerName,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}

func (s *noteService) ListByOwner(ctx context.Context, ownerId string) ([]*dto.NoteListItem, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	notes, err := s.repo.FindByOwner(ctx, ownerId)
	if err != nil {
		return nil, storeError("list notes", err)
	}

	items := make([]*dto.NoteListItem, 0, len(notes))
	for _, n := range notes {
		items = append(items, &dto.NoteListItem{
			Id:        n.Id,
			Title:     n.Title,
			Public:    n.Public,
			CreatedAt: n.CreatedAt,
		})
	}
	return items, nil
}

func (s *noteService) Create(ctx context.Context, viewer entity.Viewer, req *dto.CreateNoteRequest) (*dto.CreateNoteResponse, error) {
	if strings.TrimSpace(req.Title) == "" || req.OwnerId == "" {
		return nil, fmt.Errorf("%w: title and owner are required", ErrValidation)
	}

	note := &entity.Note{
		Id:        utils.DeriveNoteId(req.Title, req.OwnerId),
		Title:     req.Title,
		Content:   utils.NormalizeContent(req.Content),
		Public:    false,
		OwnerId:   req.OwnerId,
		OwnerName: req.OwnerName,
		CreatedAt: time.Now(),
	}

	storeCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	if err := s.repo.Insert(storeCtx, note); err != nil {
		return nil, storeError("insert note", err)
	}

	s.publish(ctx, events.NoteCreated, note.Id, viewer)

	return &dto.CreateNoteResponse{Id: note.Id}, nil
}

// Show returns a note for display. Public notes are visible to anyone;
// private ones need a logged in viewer.
func (s *noteService) Show(ctx context.Context, viewer entity.Viewer, id string) (*dto.ShowNoteResponse, error) {
	note, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if note.Public {
		return toShowResponse(note), nil
	}
	if !viewer.LoggedIn() {
		return nil, ErrLoginRequired
	}
	if err := s.checkOwner(viewer, note); err != nil {
		return nil, err
	}
	return toShowResponse(note), nil
}

func (s *noteService) Edit(ctx context.Context, viewer entity.Viewer, id string) (*dto.ShowNoteResponse, error) {
	if !viewer.LoggedIn() {
		return nil, ErrLoginRequired
	}
	note, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwner(viewer, note); err != nil {
		return nil, err
	}

	res := toShowResponse(note)
	res.Content = utils.DenormalizeContent(note.Content)
	return res, nil
}

// Update overwrites title and content and makes the note private again.
// Concurrent edits are last-writer-wins.
func (s *noteService) Update(ctx context.Context, viewer entity.Viewer, req *dto.UpdateNoteRequest) (*dto.UpdateNoteResponse, error) {
	if !viewer.LoggedIn() {
		return nil, ErrLoginRequired
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}

	if s.opts.EnforceOwnership {
		note, err := s.find(ctx, req.Id)
		if err != nil {
			return nil, err
		}
		if err := s.checkOwner(viewer, note); err != nil {
			return nil, err
		}
	}

	storeCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	if err := s.repo.UpdateById(storeCtx, req.Id, req.Title, utils.NormalizeContent(req.Content)); err != nil {
		return nil, storeError("update note", err)
	}

	s.publish(ctx, events.NoteUpdated, req.Id, viewer)

	return &dto.UpdateNoteResponse{Id: req.Id}, nil
}

// Delete is idempotent: removing an unknown id succeeds.
func (s *noteService) Delete(ctx context.Context, viewer entity.Viewer, id string) error {
	if !viewer.LoggedIn() {
		return ErrLoginRequired
	}

	if s.opts.EnforceOwnership {
		note, err := s.find(ctx, id)
		if errors.Is(err, ErrNoteNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := s.checkOwner(viewer, note); err != nil {
			return err
		}
	}

	storeCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	if err := s.repo.DeleteById(storeCtx, id); err != nil {
		return storeError("delete note", err)
	}

	s.publish(ctx, events.NoteDeleted, id, viewer)
	return nil
}

func (s *noteService) SetPublic(ctx context.Context, viewer entity.Viewer, id string, public bool) (*dto.ShareNoteResponse, error) {
	if !viewer.LoggedIn() {
		return nil, ErrLoginRequired
	}
	note, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwner(viewer, note); err != nil {
		return nil, err
	}

	storeCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	if err := s.repo.SetPublic(storeCtx, id, public); err != nil {
		return nil, storeError("share note", err)
	}

	eventType := events.NoteUnshared
	if public {
		eventType = events.NoteShared
	}
	s.publish(ctx, eventType, id, viewer)

	return &dto.ShareNoteResponse{
		Id:     id,
		Title:  note.Title,
		Public: public,
		Link:   strings.TrimRight(s.opts.BaseURL, "/") + "/notes/" + id,
	}, nil
}
