package handler

import (
	"log/slog"
	"net/http"
	"time"

	deliverycontext "notekeeper/internal/delivery/context"
	"notekeeper/internal/delivery/http/middleware"
	"notekeeper/internal/delivery/http/response"
	"notekeeper/internal/delivery/http/view"
	"notekeeper/internal/domain/entity"
	"notekeeper/internal/usecase"
	"notekeeper/internal/util"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// NoteHandler serves the pages behind the auth gate.
type NoteHandler struct {
	uc     usecase.NoteUsecase
	logger *slog.Logger
	now    func() time.Time
}

// NewNoteHandler is the constructor for NoteHandler, injected by Fx.
func NewNoteHandler(uc usecase.NoteUsecase, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{
		uc:     uc,
		logger: logger,
		now:    time.Now,
	}
}

// Index lists the caller's notes, filtered by the q query parameter. A store
// failure renders an empty list.
func (h *NoteHandler) Index(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.SeeOther(c, middleware.LoginPath)
	}

	page := view.IndexPage{
		Email: deliverycontext.GetEmail(c),
		Query: c.QueryParam("q"),
	}

	output, err := h.uc.ListNotes(c.Request().Context(), &usecase.ListNotesInput{
		UserID: userID,
		Query:  page.Query,
	})
	if err != nil {
		deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger).
			Error("Failed to list notes", slog.Any("error", err))
	} else {
		page.Notes = noteItems(output.Notes, h.now())
	}

	return response.Page(c, http.StatusOK, view.PageIndex, page)
}

// Create stores a note from the home-page form. Blank forms are ignored.
func (h *NoteHandler) Create(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.SeeOther(c, middleware.LoginPath)
	}

	input := new(usecase.CreateNoteInput)
	if err := c.Bind(input); err != nil {
		return errors.WithStack(err)
	}
	input.UserID = userID

	if _, err := h.uc.CreateNote(c.Request().Context(), input); err != nil {
		return errors.WithStack(err)
	}

	return response.SeeOther(c, homePath)
}

// Delete removes one of the caller's notes. Notes owned by someone else, or
// that do not exist, are left alone without telling the caller.
func (h *NoteHandler) Delete(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.SeeOther(c, middleware.LoginPath)
	}

	err := h.uc.DeleteNote(c.Request().Context(), &usecase.DeleteNoteInput{
		UserID: userID,
		NoteID: c.Param("noteId"),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.SeeOther(c, homePath)
}

// About renders the about page.
func (h *NoteHandler) About(c echo.Context) error {
	return response.Page(c, http.StatusOK, view.PageAbout, view.AboutPage{
		Email: deliverycontext.GetEmail(c),
	})
}

func noteItems(notes []*entity.Note, now time.Time) []view.NoteItem {
	items := make([]view.NoteItem, 0, len(notes))
	for _, n := range notes {
		items = append(items, view.NoteItem{
			ID:      n.ID.String(),
			Title:   n.Title,
			Content: n.Content,
			TimeAgo: util.TimeAgo(n.CreatedAt, now),
			Summary: util.Summary(n.Content),
		})
	}

	return items
}
