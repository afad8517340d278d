package impl

import (
	"context"
	"testing"

	"notekeeper/internal/domain/entity"
	domainerrors "notekeeper/internal/domain/errors"
	"notekeeper/internal/domain/repository"
	mockRepo "notekeeper/internal/mocks/repository"
	mockSvc "notekeeper/internal/mocks/service"
	"notekeeper/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// userServiceFixtures holds all test dependencies for user service tests.
type userServiceFixtures struct {
	service      usecase.UserUsecase
	txManager    *mockRepo.MockTransactionManager
	txFactory    *mockRepo.MockRepositoryFactory
	txUserRepo   *mockRepo.MockUserRepository
	userRepo     *mockRepo.MockUserRepository
	hasher       *mockSvc.MockPasswordHasher
	tokenService *mockSvc.MockTokenService
}

func createTestUserService(t *testing.T) userServiceFixtures {
	f := userServiceFixtures{
		txManager:    mockRepo.NewMockTransactionManager(t),
		txFactory:    mockRepo.NewMockRepositoryFactory(t),
		txUserRepo:   mockRepo.NewMockUserRepository(t),
		userRepo:     mockRepo.NewMockUserRepository(t),
		hasher:       mockSvc.NewMockPasswordHasher(t),
		tokenService: mockSvc.NewMockTokenService(t),
	}

	f.service = NewUserService(UserServiceParams{
		TxManager:    f.txManager,
		UserRepo:     f.userRepo,
		Hasher:       f.hasher,
		TokenService: f.tokenService,
		Logger:       newDiscardLogger(),
	})

	return f
}

// expectTx makes the transaction manager run the callback against txUserRepo.
func (f userServiceFixtures) expectTx() {
	f.txManager.On("Execute", mock.Anything, mock.Anything).Return(mockRepo.PassThrough(f.txFactory)).Once()
	f.txFactory.On("UserRepo").Return(f.txUserRepo).Once()
}

func TestUserService_RegisterUser(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the user with a hashed password", func(t *testing.T) {
		f := createTestUserService(t)
		f.expectTx()

		f.hasher.On("Hash", "secret1").Return("hashed", nil).Once()
		f.txUserRepo.On("ExistsByEmailOrUsername", ctx, "a@x.com", "alice").Return(false, nil).Once()
		f.txUserRepo.On("Create", ctx, mock.MatchedBy(func(u *entity.User) bool {
			return u.Username == "alice" && u.Email == "a@x.com" && u.PasswordHash == "hashed"
		})).Return(func(_ context.Context, u *entity.User) error {
			u.ID = uuid.New()

			return nil
		}).Once()

		out, err := f.service.RegisterUser(ctx, &usecase.RegisterUserInput{
			Username: " alice ",
			Email:    "a@x.com",
			Password: "secret1",
		})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, out.User.ID)
		assert.Equal(t, "alice", out.User.Username)
	})

	t.Run("rejects blank fields", func(t *testing.T) {
		f := createTestUserService(t)

		inputs := []*usecase.RegisterUserInput{
			{Username: "", Email: "a@x.com", Password: "p"},
			{Username: "alice", Email: "  ", Password: "p"},
			{Username: "alice", Email: "a@x.com", Password: ""},
		}
		for _, in := range inputs {
			_, err := f.service.RegisterUser(ctx, in)
			assert.True(t, errors.Is(err, domainerrors.ErrFieldsRequired))
			assert.Equal(t, "All fields are required", domainerrors.UserMessage(err))
		}
	})

	t.Run("rejects taken email or username", func(t *testing.T) {
		f := createTestUserService(t)
		f.expectTx()

		f.hasher.On("Hash", "secret1").Return("hashed", nil).Once()
		f.txUserRepo.On("ExistsByEmailOrUsername", ctx, "a@x.com", "alice").Return(true, nil).Once()

		_, err := f.service.RegisterUser(ctx, &usecase.RegisterUserInput{Username: "alice", Email: "a@x.com", Password: "secret1"})
		require.Error(t, err)
		assert.Equal(t, domainerrors.KindValidation, domainerrors.KindOf(err))
		assert.Equal(t, "Email or username already exists", domainerrors.UserMessage(err))
		f.txUserRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("maps a unique index race to the same error", func(t *testing.T) {
		f := createTestUserService(t)
		f.expectTx()

		f.hasher.On("Hash", "secret1").Return("hashed", nil).Once()
		f.txUserRepo.On("ExistsByEmailOrUsername", ctx, "a@x.com", "alice").Return(false, nil).Once()
		f.txUserRepo.On("Create", ctx, mock.Anything).Return(domainerrors.ErrUserAlreadyExists).Once()

		_, err := f.service.RegisterUser(ctx, &usecase.RegisterUserInput{Username: "alice", Email: "a@x.com", Password: "secret1"})
		assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
	})

	t.Run("store failure is not shown to the user", func(t *testing.T) {
		f := createTestUserService(t)
		f.expectTx()

		f.hasher.On("Hash", "secret1").Return("hashed", nil).Once()
		f.txUserRepo.On("ExistsByEmailOrUsername", ctx, "a@x.com", "alice").
			Return(false, domainerrors.NewDatabaseExecuteError(errors.New("conn reset"), "check")).Once()

		_, err := f.service.RegisterUser(ctx, &usecase.RegisterUserInput{Username: "alice", Email: "a@x.com", Password: "secret1"})
		require.Error(t, err)
		assert.Equal(t, domainerrors.KindStore, domainerrors.KindOf(err))
		assert.Equal(t, domainerrors.GenericMessage, domainerrors.UserMessage(err))
	})

	t.Run("hash failure", func(t *testing.T) {
		f := createTestUserService(t)

		f.hasher.On("Hash", "secret1").Return("", domainerrors.ErrPasswordHashFailed).Once()

		_, err := f.service.RegisterUser(ctx, &usecase.RegisterUserInput{Username: "alice", Email: "a@x.com", Password: "secret1"})
		assert.True(t, errors.Is(err, domainerrors.ErrPasswordHashFailed))
		assert.Equal(t, domainerrors.GenericMessage, domainerrors.UserMessage(err))
	})
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Username: "alice", Email: "a@x.com", PasswordHash: "hashed"}

	t.Run("success returns a token", func(t *testing.T) {
		f := createTestUserService(t)

		f.userRepo.On("FindByEmail", ctx, "a@x.com").Return(user, nil).Once()
		f.hasher.On("Check", "secret1", "hashed").Return(true).Once()
		f.tokenService.On("IssueToken", user.ID, "a@x.com").Return("signed", nil).Once()

		out, err := f.service.Login(ctx, &usecase.LoginInput{Email: "a@x.com", Password: "secret1"})
		require.NoError(t, err)
		assert.Equal(t, "signed", out.Token)
		assert.Equal(t, user.ID, out.User.ID)
	})

	t.Run("blank fields", func(t *testing.T) {
		f := createTestUserService(t)

		_, err := f.service.Login(ctx, &usecase.LoginInput{Email: "", Password: "x"})
		assert.Equal(t, "Email and password are required", domainerrors.UserMessage(err))

		_, err = f.service.Login(ctx, &usecase.LoginInput{Email: "a@x.com"})
		assert.True(t, errors.Is(err, domainerrors.ErrCredentialsRequired))
	})

	t.Run("unknown email", func(t *testing.T) {
		f := createTestUserService(t)

		f.userRepo.On("FindByEmail", ctx, "b@x.com").Return(nil, repository.ErrUserNotFound).Once()

		_, err := f.service.Login(ctx, &usecase.LoginInput{Email: "b@x.com", Password: "secret1"})
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
		assert.Equal(t, "Invalid email or password", domainerrors.UserMessage(err))
	})

	t.Run("wrong password", func(t *testing.T) {
		f := createTestUserService(t)

		f.userRepo.On("FindByEmail", ctx, "a@x.com").Return(user, nil).Once()
		f.hasher.On("Check", "nope", "hashed").Return(false).Once()

		_, err := f.service.Login(ctx, &usecase.LoginInput{Email: "a@x.com", Password: "nope"})
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
		f.tokenService.AssertNotCalled(t, "IssueToken", mock.Anything, mock.Anything)
	})

	t.Run("federated account cannot use a password", func(t *testing.T) {
		f := createTestUserService(t)
		federated := &entity.User{ID: uuid.New(), Email: "g@x.com", PasswordHash: entity.FederatedPasswordMarker}

		f.userRepo.On("FindByEmail", ctx, "g@x.com").Return(federated, nil).Once()

		_, err := f.service.Login(ctx, &usecase.LoginInput{Email: "g@x.com", Password: entity.FederatedPasswordMarker})
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
		f.hasher.AssertNotCalled(t, "Check", mock.Anything, mock.Anything)
	})

	t.Run("token failure is internal", func(t *testing.T) {
		f := createTestUserService(t)

		f.userRepo.On("FindByEmail", ctx, "a@x.com").Return(user, nil).Once()
		f.hasher.On("Check", "secret1", "hashed").Return(true).Once()
		f.tokenService.On("IssueToken", user.ID, "a@x.com").Return("", errors.New("sign")).Once()

		_, err := f.service.Login(ctx, &usecase.LoginInput{Email: "a@x.com", Password: "secret1"})
		assert.True(t, errors.Is(err, domainerrors.ErrTokenIssueFailed))
		assert.Equal(t, domainerrors.KindInternal, domainerrors.KindOf(err))
	})
}

func TestUserService_GoogleLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("reuses the account with the same email", func(t *testing.T) {
		f := createTestUserService(t)
		f.expectTx()
		existing := &entity.User{ID: uuid.New(), Username: "alice", Email: "a@x.com", PasswordHash: "hashed"}

		f.txUserRepo.On("FindByEmail", ctx, "a@x.com").Return(existing, nil).Once()
		f.tokenService.On("IssueToken", existing.ID, "a@x.com").Return("signed", nil).Once()

		out, err := f.service.GoogleLogin(ctx, &usecase.GoogleLoginInput{Email: "a@x.com", DisplayName: "Alice G", EmailVerified: true})
		require.NoError(t, err)
		assert.Equal(t, existing.ID, out.User.ID)
		f.txUserRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("creates a federated account on first sign-in", func(t *testing.T) {
		f := createTestUserService(t)
		f.expectTx()

		f.txUserRepo.On("FindByEmail", ctx, "new@x.com").Return(nil, repository.ErrUserNotFound).Once()
		f.txUserRepo.On("ExistsByUsername", ctx, "New Person").Return(false, nil).Once()
		f.txUserRepo.On("Create", ctx, mock.MatchedBy(func(u *entity.User) bool {
			return u.Username == "New Person" && u.PasswordHash == entity.FederatedPasswordMarker
		})).Return(func(_ context.Context, u *entity.User) error {
			u.ID = uuid.New()

			return nil
		}).Once()
		f.tokenService.On("IssueToken", mock.Anything, "new@x.com").Return("signed", nil).Once()

		out, err := f.service.GoogleLogin(ctx, &usecase.GoogleLoginInput{Email: "new@x.com", DisplayName: "New Person", EmailVerified: true})
		require.NoError(t, err)
		assert.True(t, out.User.IsFederated())
	})

	t.Run("suffixes a taken username", func(t *testing.T) {
		f := createTestUserService(t)
		f.expectTx()

		f.txUserRepo.On("FindByEmail", ctx, "bob@x.com").Return(nil, repository.ErrUserNotFound).Once()
		f.txUserRepo.On("ExistsByUsername", ctx, "bob").Return(true, nil).Once()
		f.txUserRepo.On("ExistsByUsername", ctx, mock.MatchedBy(func(name string) bool {
			return len(name) == len("bob-")+usernameSuffixLen
		})).Return(false, nil).Once()
		f.txUserRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		f.tokenService.On("IssueToken", mock.Anything, "bob@x.com").Return("signed", nil).Once()

		out, err := f.service.GoogleLogin(ctx, &usecase.GoogleLoginInput{Email: "bob@x.com", EmailVerified: true})
		require.NoError(t, err)
		assert.Regexp(t, `^bob-[0-9a-f]{6}$`, out.User.Username)
	})

	t.Run("concurrent first sign-in falls back to the winner", func(t *testing.T) {
		f := createTestUserService(t)
		f.expectTx()
		f.expectTx()
		winner := &entity.User{ID: uuid.New(), Username: "carol", Email: "c@x.com", PasswordHash: entity.FederatedPasswordMarker}

		f.txUserRepo.On("FindByEmail", ctx, "c@x.com").Return(nil, repository.ErrUserNotFound).Once()
		f.txUserRepo.On("ExistsByUsername", ctx, "carol").Return(false, nil).Once()
		f.txUserRepo.On("Create", ctx, mock.Anything).Return(domainerrors.ErrUserAlreadyExists).Once()
		f.txUserRepo.On("FindByEmail", ctx, "c@x.com").Return(winner, nil).Once()
		f.tokenService.On("IssueToken", winner.ID, "c@x.com").Return("signed", nil).Once()

		out, err := f.service.GoogleLogin(ctx, &usecase.GoogleLoginInput{Email: "c@x.com", DisplayName: "carol", EmailVerified: true})
		require.NoError(t, err)
		assert.Equal(t, winner.ID, out.User.ID)
	})

	t.Run("username taken concurrently gets a fresh one", func(t *testing.T) {
		f := createTestUserService(t)
		f.expectTx()
		f.expectTx()

		f.txUserRepo.On("FindByEmail", ctx, "dan@x.com").Return(nil, repository.ErrUserNotFound).Twice()
		f.txUserRepo.On("ExistsByUsername", ctx, "dan").Return(false, nil).Once()
		f.txUserRepo.On("Create", ctx, mock.MatchedBy(func(u *entity.User) bool {
			return u.Username == "dan"
		})).Return(domainerrors.ErrUserAlreadyExists).Once()
		f.txUserRepo.On("ExistsByUsername", ctx, "dan").Return(true, nil).Once()
		f.txUserRepo.On("ExistsByUsername", ctx, mock.MatchedBy(func(name string) bool {
			return name != "dan"
		})).Return(false, nil).Once()
		f.txUserRepo.On("Create", ctx, mock.MatchedBy(func(u *entity.User) bool {
			return u.Username != "dan"
		})).Return(func(_ context.Context, u *entity.User) error {
			u.ID = uuid.New()

			return nil
		}).Once()
		f.tokenService.On("IssueToken", mock.Anything, "dan@x.com").Return("signed", nil).Once()

		out, err := f.service.GoogleLogin(ctx, &usecase.GoogleLoginInput{Email: "dan@x.com", DisplayName: "dan", EmailVerified: true})
		require.NoError(t, err)
		assert.Regexp(t, `^dan-[0-9a-f]{6}$`, out.User.Username)
	})

	t.Run("unverified email is refused", func(t *testing.T) {
		f := createTestUserService(t)

		out, err := f.service.GoogleLogin(ctx, &usecase.GoogleLoginInput{Email: "victim@x.com", DisplayName: "mallory"})
		assert.Nil(t, out)
		assert.True(t, errors.Is(err, domainerrors.ErrOAuthEmailUnverified))
		f.txManager.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
	})

	t.Run("missing email", func(t *testing.T) {
		f := createTestUserService(t)

		_, err := f.service.GoogleLogin(ctx, &usecase.GoogleLoginInput{DisplayName: "x"})
		assert.True(t, errors.Is(err, domainerrors.ErrOAuthFailed))
	})
}

func TestFederatedUsername(t *testing.T) {
	assert.Equal(t, "Alice", federatedUsername("  Alice ", "a@x.com"))
	assert.Equal(t, "a.b", federatedUsername("", "a.b@x.com"))
	assert.Equal(t, "weird", federatedUsername("", "weird"))
}
