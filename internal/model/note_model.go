package model

import (
	"time"

	"github.com/google/uuid"
)

// Note rows are keyed by a surrogate uuid. NoteId is the public slug id and
// is deliberately not unique.
type Note struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NoteId    string    `gorm:"type:varchar(512);not null;index"`
	Title     string    `gorm:"type:varchar(255);not null"`
	Content   string    `gorm:"type:text"`
	Public    bool      `gorm:"not null;default:false"`
	OwnerId   string    `gorm:"type:varchar(128);not null;index"`
	OwnerName string    `gorm:"type:varchar(255)"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Note) TableName() string {
	return "notes"
}

// NoteDocument is the shape of a note in the MongoDB "notes" collection.
type NoteDocument struct {
	Id        string    `bson:"id"`
	Title     string    `bson:"title"`
	Content   string    `bson:"content"`
	Public    bool      `bson:"public"`
	OwnerId   string    `bson:"ownerId"`
	OwnerName string    `bson:"ownerName"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt,omitempty"`
}
