// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "notekeeper/internal/delivery/context"
	"notekeeper/internal/domain/entity"
	domainerrors "notekeeper/internal/domain/errors"
	"notekeeper/internal/domain/repository"
	"notekeeper/internal/domain/service"
	"notekeeper/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	maxUsernameAttempts = 5
	usernameSuffixLen   = 6
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RegisterUser creates a local account after checking that neither the
// email nor the username is taken.
func (srv *userService) RegisterUser(ctx context.Context, input *usecase.RegisterUserInput) (*usecase.RegisterOutput, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)

	if username == "" || email == "" || strings.TrimSpace(input.Password) == "" {
		return nil, domainerrors.ErrFieldsRequired
	}

	srv.log(ctx).Info("Starting registration", slog.String("email", email))

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password", slog.Any("error", err))

		return nil, err
	}

	user := &entity.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		exists, err := userRepo.ExistsByEmailOrUsername(ctx, email, username)
		if err != nil {
			return err
		}
		if exists {
			return domainerrors.ErrUserAlreadyExists
		}

		// The unique indexes still guard a concurrent insert of the same identifiers.
		return userRepo.Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrUserAlreadyExists) {
			srv.log(ctx).Info("Registration rejected", slog.String("email", email), slog.String("reason", "duplicate"))

			return nil, domainerrors.ErrUserAlreadyExists
		}
		srv.log(ctx).Error("Failed to execute registration transaction", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute user registration transaction")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", user.ID))

	return &usecase.RegisterOutput{User: user}, nil
}

// Login verifies a local password and mints a session token. Unknown
// email, wrong password and federated accounts all fail the same way.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" {
		return nil, domainerrors.ErrCredentialsRequired
	}

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.String("reason", "unknown email"))

		return nil, domainerrors.ErrInvalidCredentials
	}
	if err != nil {
		srv.log(ctx).Error("Login failed", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to load user")
	}

	if user.IsFederated() || !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.String("reason", "password mismatch"))

		return nil, domainerrors.ErrInvalidCredentials
	}

	return srv.issueSession(ctx, user)
}

// GoogleLogin links a Google profile to an account by email, creating the
// account on first sign-in. Profiles without a verified email are refused.
func (srv *userService) GoogleLogin(ctx context.Context, input *usecase.GoogleLoginInput) (*usecase.LoginOutput, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, domainerrors.ErrOAuthFailed.WithDetails("profile has no email")
	}

	if !input.EmailVerified {
		srv.log(ctx).Warn("Google login refused", slog.String("email", email), slog.String("reason", "email not verified"))

		return nil, domainerrors.ErrOAuthEmailUnverified
	}

	user, err := srv.findOrCreateFederated(ctx, email, input.DisplayName)
	if errors.Is(err, domainerrors.ErrUserAlreadyExists) {
		// A concurrent insert took the email or the chosen username. The
		// second pass either finds that account or picks another username.
		user, err = srv.findOrCreateFederated(ctx, email, input.DisplayName)
	}
	if err != nil {
		srv.log(ctx).Error("Google login failed", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to resolve federated user")
	}

	return srv.issueSession(ctx, user)
}

func (srv *userService) findOrCreateFederated(ctx context.Context, email, displayName string) (*entity.User, error) {
	var user *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		existing, err := userRepo.FindByEmail(ctx, email)
		if err == nil {
			user = existing

			return nil
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return err
		}

		username, err := srv.pickUsername(ctx, userRepo, federatedUsername(displayName, email))
		if err != nil {
			return err
		}

		user = &entity.User{
			Username:     username,
			Email:        email,
			PasswordHash: entity.FederatedPasswordMarker,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return err
		}

		srv.log(ctx).Info("Federated account created", slog.Any("userID", user.ID), slog.String("username", username))

		return nil
	})

	return user, err
}

// pickUsername returns base, or base with a short random suffix when taken.
func (srv *userService) pickUsername(ctx context.Context, userRepo repository.UserRepository, base string) (string, error) {
	candidate := base
	for range maxUsernameAttempts {
		taken, err := userRepo.ExistsByUsername(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = base + "-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:usernameSuffixLen]
	}

	return base + "-" + uuid.NewString(), nil
}

func (srv *userService) issueSession(ctx context.Context, user *entity.User) (*usecase.LoginOutput, error) {
	token, err := srv.tokenService.IssueToken(user.ID, user.Email)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, domainerrors.ErrTokenIssueFailed.WithDetails(err.Error())
	}

	srv.log(ctx).Info("User logged in", slog.Any("userID", user.ID))

	return &usecase.LoginOutput{Token: token, User: user}, nil
}

// federatedUsername prefers the provider display name and falls back to the
// local part of the email.
func federatedUsername(displayName, email string) string {
	if name := strings.TrimSpace(displayName); name != "" {
		return name
	}

	local, _, _ := strings.Cut(email, "@")
	if local == "" {
		return email
	}

	return local
}
