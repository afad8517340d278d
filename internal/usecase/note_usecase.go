package usecase

import (
	"context"

	"notekeeper/internal/domain/entity"

	"github.com/google/uuid"
)

// ListNotesInput selects the caller's notes, optionally filtered by Query.
type ListNotesInput struct {
	UserID uuid.UUID
	Query  string
}

// ListNotesOutput holds the caller's notes, newest first.
type ListNotesOutput struct {
	Notes []*entity.Note
	Query string
}

// CreateNoteInput is the home-page form. Details becomes the note content.
type CreateNoteInput struct {
	UserID  uuid.UUID `form:"-"`
	Title   string    `form:"title"`
	Details string    `form:"details"`
}

// CreateNoteOutput holds the stored note, or nil when the form was incomplete.
type CreateNoteOutput struct {
	Note *entity.Note
}

// DeleteNoteInput names the note to remove. NoteID is the raw path value.
type DeleteNoteInput struct {
	UserID uuid.UUID
	NoteID string
}

// NoteUsecase defines owner-scoped note operations.
type NoteUsecase interface {
	ListNotes(ctx context.Context, input *ListNotesInput) (*ListNotesOutput, error)
	CreateNote(ctx context.Context, input *CreateNoteInput) (*CreateNoteOutput, error)
	DeleteNote(ctx context.Context, input *DeleteNoteInput) error
}
