package entity

import (
	"time"

	"github.com/google/uuid"
)

// Note is a text document owned by exactly one User.
type Note struct {
	ID        uuid.UUID
	UserID    uuid.UUID // Owner. Every read and delete is scoped by it.
	Title     string
	Content   string
	CreatedAt time.Time // Set once at creation.
}
