package specification

import (
	"gorm.io/gorm"
)

// ByNoteID matches the public slug id, not the row key.
type ByNoteID struct {
	NoteID string
}

func (s ByNoteID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("notes.note_id = ?", s.NoteID)
}

type NoteOwnedBy struct {
	OwnerID string
}

func (s NoteOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("notes.owner_id = ?", s.OwnerID)
}

// OldestFirst keeps reads deterministic when several notes share an id.
type OldestFirst struct{}

func (OldestFirst) Apply(db *gorm.DB) *gorm.DB {
	return OrderBy{Field: "notes.created_at"}.Apply(db)
}
