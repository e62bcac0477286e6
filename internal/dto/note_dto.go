package dto

import (
	"time"
)

// CreateNoteRequest is the note submission form (noteTitle, noteContent,
// userId/userid, username) after the owner has been resolved.
type CreateNoteRequest struct {
	Title     string `form:"noteTitle" validate:"required"`
	Content   string `form:"noteContent"`
	OwnerId   string `validate:"required"`
	OwnerName string
}

type CreateNoteResponse struct {
	Id string `json:"id"`
}

type UpdateNoteRequest struct {
	Id      string `validate:"required"`
	Title   string `form:"noteTitle" validate:"required"`
	Content string `form:"noteContent"`
}

type UpdateNoteResponse struct {
	Id string `json:"id"`
}

type ShareNoteResponse struct {
	Id     string `json:"id"`
	Title  string `json:"title"`
	Public bool   `json:"public"`
	Link   string `json:"link"`
}

type NoteListItem struct {
	Id        string    `json:"id"`
	Title     string    `json:"title"`
	Public    bool      `json:"public"`
	CreatedAt time.Time `json:"created_at"`
}

type ShowNoteResponse struct {
	Id        string     `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Public    bool       `json:"public"`
	OwnerId   string     `json:"owner_id"`
	OwnerName string     `json:"owner_name"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}
