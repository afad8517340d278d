package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"notekeeper/internal/domain/entity"
	domainerrors "notekeeper/internal/domain/errors"
	"notekeeper/internal/domain/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockDB opens gorm over sqlmock with the same options New uses.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = sqlDB.Close()
	})

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)

	return db, mock
}

func exactSQL(query string) string {
	return "^" + regexp.QuoteMeta(query) + "$"
}

func TestNoteRepository_DeleteOwned(t *testing.T) {
	const deleteSQL = `DELETE FROM "notes" WHERE id = $1 AND user_id = $2`

	ctx := context.Background()
	userID, noteID := uuid.New(), uuid.New()

	t.Run("single statement scoped by id and owner", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(exactSQL(deleteSQL)).
			WithArgs(noteID.String(), userID.String()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		deleted, err := NewNoteRepository(db).DeleteOwned(ctx, userID, noteID)
		require.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("someone else's note removes nothing", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(exactSQL(deleteSQL)).
			WithArgs(noteID.String(), userID.String()).
			WillReturnResult(sqlmock.NewResult(0, 0))

		deleted, err := NewNoteRepository(db).DeleteOwned(ctx, userID, noteID)
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("store failure", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(exactSQL(deleteSQL)).WillReturnError(errors.New("connection reset"))

		_, err := NewNoteRepository(db).DeleteOwned(ctx, userID, noteID)
		assert.Equal(t, domainerrors.KindStore, domainerrors.KindOf(err))
	})
}

func TestNoteRepository_FindByOwner(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	newer := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	older := newer.Add(-time.Hour)

	db, mock := newMockDB(t)
	rows := sqlmock.NewRows([]string{"id", "user_id", "title", "content", "created_at"}).
		AddRow(uuid.NewString(), userID.String(), "second", "b", newer).
		AddRow(uuid.NewString(), userID.String(), "first", "a", older)
	mock.ExpectQuery(exactSQL(`SELECT * FROM "notes" WHERE user_id = $1 ORDER BY created_at DESC`)).
		WithArgs(userID.String()).
		WillReturnRows(rows)

	notes, err := NewNoteRepository(db).FindByOwner(ctx, userID)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "second", notes[0].Title)
	assert.Equal(t, userID, notes[1].UserID)
	assert.True(t, notes[1].CreatedAt.Equal(older))
}

func TestNoteRepository_Create(t *testing.T) {
	ctx := context.Background()
	userID, noteID := uuid.New(), uuid.New()

	db, mock := newMockDB(t)
	mock.ExpectQuery(exactSQL(`INSERT INTO "notes" ("user_id","title","content","created_at") VALUES ($1,$2,$3,$4) RETURNING "id"`)).
		WithArgs(userID.String(), "Groceries", "milk", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(noteID.String()))

	note := &entity.Note{UserID: userID, Title: "Groceries", Content: "milk"}
	require.NoError(t, NewNoteRepository(db).Create(ctx, note))
	assert.Equal(t, noteID, note.ID)
	assert.False(t, note.CreatedAt.IsZero())
}

func TestUserRepository_Create(t *testing.T) {
	const insertSQL = `INSERT INTO "users" ("username","email","password_hash","created_at") VALUES ($1,$2,$3,$4) RETURNING "id"`

	ctx := context.Background()

	t.Run("fills in the generated id", func(t *testing.T) {
		db, mock := newMockDB(t)
		userID := uuid.New()
		mock.ExpectQuery(exactSQL(insertSQL)).
			WithArgs("alice", "a@x.com", "hash", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(userID.String()))

		user := &entity.User{Username: "alice", Email: "a@x.com", PasswordHash: "hash"}
		require.NoError(t, NewUserRepository(db).Create(ctx, user))
		assert.Equal(t, userID, user.ID)
	})

	t.Run("unique violation maps to already exists", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(exactSQL(insertSQL)).
			WillReturnError(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "idx_users_email"})

		err := NewUserRepository(db).Create(ctx, &entity.User{Username: "alice", Email: "a@x.com", PasswordHash: "hash"})
		assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
		assert.Equal(t, domainerrors.ErrUserAlreadyExists.Message(), domainerrors.UserMessage(err))
	})

	t.Run("not null violation maps to fields required", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(exactSQL(insertSQL)).
			WillReturnError(&pgconn.PgError{Code: pgNotNullViolation})

		err := NewUserRepository(db).Create(ctx, &entity.User{Username: "alice", Email: "a@x.com", PasswordHash: "hash"})
		assert.True(t, errors.Is(err, domainerrors.ErrFieldsRequired))
	})
}

func TestUserRepository_ExistsByEmailOrUsername(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		count int64
		want  bool
	}{
		{name: "free", count: 0, want: false},
		{name: "taken", count: 1, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			mock.ExpectQuery(exactSQL(`SELECT count(*) FROM "users" WHERE email = $1 OR username = $2`)).
				WithArgs("a@x.com", "alice").
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(tt.count))

			got, err := NewUserRepository(db).ExistsByEmailOrUsername(ctx, "a@x.com", "alice")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUserRepository_FindByEmail_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`^SELECT \* FROM "users" WHERE email = \$1 ORDER BY "users"\."id" LIMIT`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}))

	_, err := NewUserRepository(db).FindByEmail(context.Background(), "ghost@x.com")
	assert.True(t, errors.Is(err, repository.ErrUserNotFound))
}
