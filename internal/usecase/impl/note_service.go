package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "notekeeper/internal/delivery/context"
	"notekeeper/internal/domain/entity"
	domainerrors "notekeeper/internal/domain/errors"
	"notekeeper/internal/domain/repository"
	"notekeeper/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// noteService implements the NoteUsecase interface. Every operation is
// scoped to the caller's user id.
type noteService struct {
	noteRepo repository.NoteRepository
	logger   *slog.Logger
}

// NoteServiceParams holds dependencies for NoteService, injected by Fx.
type NoteServiceParams struct {
	fx.In

	NoteRepo repository.NoteRepository
	Logger   *slog.Logger
}

// NewNoteService creates a new note service.
func NewNoteService(params NoteServiceParams) usecase.NoteUsecase {
	return &noteService{
		noteRepo: params.NoteRepo,
		logger:   params.Logger,
	}
}

func (srv *noteService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListNotes returns the caller's notes newest first. A non-blank query keeps
// only notes whose title or content contains it, ignoring case.
func (srv *noteService) ListNotes(ctx context.Context, input *usecase.ListNotesInput) (*usecase.ListNotesOutput, error) {
	notes, err := srv.noteRepo.FindByOwner(ctx, input.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list notes")
	}

	query := strings.TrimSpace(input.Query)

	return &usecase.ListNotesOutput{
		Notes: filterNotes(notes, query),
		Query: query,
	}, nil
}

// CreateNote stores a note. A blank title or body is ignored without error.
func (srv *noteService) CreateNote(ctx context.Context, input *usecase.CreateNoteInput) (*usecase.CreateNoteOutput, error) {
	title := strings.TrimSpace(input.Title)
	content := strings.TrimSpace(input.Details)

	if title == "" || content == "" {
		srv.log(ctx).Debug("Skipping incomplete note", slog.Any("userID", input.UserID), slog.Any("reason", domainerrors.ErrNoteIncomplete))

		return &usecase.CreateNoteOutput{}, nil
	}

	note := &entity.Note{
		UserID:  input.UserID,
		Title:   title,
		Content: content,
	}
	if err := srv.noteRepo.Create(ctx, note); err != nil {
		return nil, errors.Wrap(err, "failed to create note")
	}

	srv.log(ctx).Debug("Note created", slog.Any("userID", input.UserID), slog.Any("noteID", note.ID))

	return &usecase.CreateNoteOutput{Note: note}, nil
}

// DeleteNote removes the note when the caller owns it. Missing, foreign and
// malformed ids are all silent no-ops.
func (srv *noteService) DeleteNote(ctx context.Context, input *usecase.DeleteNoteInput) error {
	err := srv.deleteOwned(ctx, input)
	if errors.Is(err, domainerrors.ErrNoteNotOwned) {
		srv.log(ctx).Debug("Delete ignored", slog.Any("userID", input.UserID), slog.String("noteID", input.NoteID))

		return nil
	}

	return err
}

func (srv *noteService) deleteOwned(ctx context.Context, input *usecase.DeleteNoteInput) error {
	noteID, err := uuid.Parse(strings.TrimSpace(input.NoteID))
	if err != nil {
		return domainerrors.ErrNoteNotOwned.WithDetails("malformed note id")
	}

	deleted, err := srv.noteRepo.DeleteOwned(ctx, input.UserID, noteID)
	if err != nil {
		return errors.Wrap(err, "failed to delete note")
	}
	if !deleted {
		return domainerrors.ErrNoteNotOwned
	}

	srv.log(ctx).Debug("Note deleted", slog.Any("userID", input.UserID), slog.Any("noteID", noteID))

	return nil
}

func filterNotes(notes []*entity.Note, query string) []*entity.Note {
	if query == "" {
		return notes
	}

	needle := strings.ToLower(query)
	matched := make([]*entity.Note, 0, len(notes))
	for _, note := range notes {
		if strings.Contains(strings.ToLower(note.Title), needle) ||
			strings.Contains(strings.ToLower(note.Content), needle) {
			matched = append(matched, note)
		}
	}

	return matched
}
