package impl

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"notekeeper/internal/domain/entity"
	domainerrors "notekeeper/internal/domain/errors"
	"notekeeper/internal/domain/repository"

	"github.com/google/uuid"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memStore is an in-memory store that honours the same uniqueness and
// ownership rules as the Postgres schema.
type memStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
	notes map[uuid.UUID]*entity.Note
	clock time.Time
}

func newMemStore() *memStore {
	return &memStore{
		users: map[uuid.UUID]*entity.User{},
		notes: map[uuid.UUID]*entity.Note{},
		clock: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *memStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)

	return s.clock
}

func (s *memStore) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(s)
}

func (s *memStore) UserRepo() repository.UserRepository { return memUsers{s} }

type memUsers struct{ s *memStore }

func (r memUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == email {
			clone := *u

			return &clone, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r memUsers) ExistsByEmailOrUsername(_ context.Context, email, username string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == email || u.Username == username {
			return true, nil
		}
	}

	return false, nil
}

func (r memUsers) ExistsByUsername(_ context.Context, username string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Username == username {
			return true, nil
		}
	}

	return false, nil
}

func (r memUsers) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == user.Email || u.Username == user.Username {
			return domainerrors.ErrUserAlreadyExists
		}
	}

	user.ID = uuid.New()
	user.CreatedAt = r.s.tick()
	clone := *user
	r.s.users[user.ID] = &clone

	return nil
}

type memNotes struct{ s *memStore }

func (r memNotes) Create(_ context.Context, note *entity.Note) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[note.UserID]; !ok {
		return domainerrors.NewDatabaseExecuteError(domainerrors.ErrInternalError, "note owner does not exist")
	}

	note.ID = uuid.New()
	note.CreatedAt = r.s.tick()
	clone := *note
	r.s.notes[note.ID] = &clone

	return nil
}

func (r memNotes) FindByOwner(_ context.Context, userID uuid.UUID) ([]*entity.Note, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var notes []*entity.Note
	for _, n := range r.s.notes {
		if n.UserID == userID {
			clone := *n
			notes = append(notes, &clone)
		}
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].CreatedAt.After(notes[j].CreatedAt) })

	return notes, nil
}

func (r memNotes) DeleteOwned(_ context.Context, userID, noteID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	n, ok := r.s.notes[noteID]
	if !ok || n.UserID != userID {
		return false, nil
	}
	delete(r.s.notes, noteID)

	return true, nil
}

func (r memNotes) titles(userID uuid.UUID) []string {
	notes, _ := r.FindByOwner(context.Background(), userID)
	titles := make([]string, 0, len(notes))
	for _, n := range notes {
		titles = append(titles, n.Title)
	}

	return titles
}
