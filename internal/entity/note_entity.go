package entity

import (
	"time"
)

type Note struct {
	Id        string
	Title     string
	Content   string
	Public    bool
	OwnerId   string
	OwnerName string
	CreatedAt time.Time
	UpdatedAt *time.Time
}
