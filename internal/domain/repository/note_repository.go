package repository

import (
	"context"

	"notekeeper/internal/domain/entity"

	"github.com/google/uuid"
)

// NoteRepository persists notes. Every read and delete is scoped by owner.
type NoteRepository interface {
	// Create persists a new note and fills in its ID and CreatedAt.
	Create(ctx context.Context, note *entity.Note) error

	// FindByOwner returns all notes owned by userID, newest first.
	FindByOwner(ctx context.Context, userID uuid.UUID) ([]*entity.Note, error)

	// DeleteOwned removes the note matching both id and owner in a single
	// statement and reports whether a row was removed.
	DeleteOwned(ctx context.Context, userID, noteID uuid.UUID) (bool, error)
}
