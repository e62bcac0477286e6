package mapper

import (
	"time"

	"notez-be/internal/entity"
	"notez-be/internal/model"
)

type NoteMapper struct{}

func NewNoteMapper() *NoteMapper {
	return &NoteMapper{}
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func (m *NoteMapper) ToEntity(n *model.Note) *entity.Note {
	if n == nil {
		return nil
	}

	return &entity.Note{
		Id:        n.NoteId,
		Title:     n.Title,
		Content:   n.Content,
		Public:    n.Public,
		OwnerId:   n.OwnerId,
		OwnerName: n.OwnerName,
		CreatedAt: n.CreatedAt,
		UpdatedAt: optionalTime(n.UpdatedAt),
	}
}

func (m *NoteMapper) ToModel(n *entity.Note) *model.Note {
	if n == nil {
		return nil
	}

	var updatedAt time.Time
	if n.UpdatedAt != nil {
		updatedAt = *n.UpdatedAt
	}

	return &model.Note{
		NoteId:    n.Id,
		Title:     n.Title,
		Content:   n.Content,
		Public:    n.Public,
		OwnerId:   n.OwnerId,
		OwnerName: n.OwnerName,
		CreatedAt: n.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *NoteMapper) ToEntities(notes []*model.Note) []*entity.Note {
	entities := make([]*entity.Note, len(notes))
	for i, n := range notes {
		entities[i] = m.ToEntity(n)
	}
	return entities
}

func (m *NoteMapper) DocumentToEntity(d *model.NoteDocument) *entity.Note {
	if d == nil {
		return nil
	}

	return &entity.Note{
		Id:        d.Id,
		Title:     d.Title,
		Content:   d.Content,
		Public:    d.Public,
		OwnerId:   d.OwnerId,
		OwnerName: d.OwnerName,
		CreatedAt: d.CreatedAt,
		UpdatedAt: optionalTime(d.UpdatedAt),
	}
}

func (m *NoteMapper) ToDocument(n *entity.Note) *model.NoteDocument {
	if n == nil {
		return nil
	}

	d := &model.NoteDocument{
		Id:        n.Id,
		Title:     n.Title,
		Content:   n.Content,
		Public:    n.Public,
		OwnerId:   n.OwnerId,
		OwnerName: n.OwnerName,
		CreatedAt: n.CreatedAt,
	}
	if n.UpdatedAt != nil {
		d.UpdatedAt = *n.UpdatedAt
	}
	return d
}

func (m *NoteMapper) DocumentsToEntities(docs []*model.NoteDocument) []*entity.Note {
	entities := make([]*entity.Note, len(docs))
	for i, d := range docs {
		entities[i] = m.DocumentToEntity(d)
	}
	return entities
}
