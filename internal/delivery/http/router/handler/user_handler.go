// Package handler contains the HTTP handlers for the application.
package handler

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"notekeeper/config"
	deliverycontext "notekeeper/internal/delivery/context"
	"notekeeper/internal/delivery/http/cookie"
	"notekeeper/internal/delivery/http/middleware"
	"notekeeper/internal/delivery/http/response"
	"notekeeper/internal/delivery/http/validator"
	"notekeeper/internal/delivery/http/view"
	domainerrors "notekeeper/internal/domain/errors"
	"notekeeper/internal/domain/service"
	"notekeeper/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	homePath      = "/"
	logoutPath    = middleware.LoginPath + "?logout=1"
	stateByteSize = 32

	eventLogin    = "login"
	eventRegister = "register"
	eventGoogle   = "google"

	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

// UserHandler serves login, registration, logout and Google sign-in.
type UserHandler struct {
	uc                 usecase.UserUsecase
	googleOAuthService service.OAuthService
	googleEnabled      bool
	tokenTTL           time.Duration
	metrics            *middleware.Metrics
	logger             *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(
	uc usecase.UserUsecase,
	googleOAuthService service.OAuthService,
	tokenService service.TokenService,
	cfg *config.Config,
	metrics *middleware.Metrics,
	logger *slog.Logger,
) *UserHandler {
	return &UserHandler{
		uc:                 uc,
		googleOAuthService: googleOAuthService,
		googleEnabled:      cfg.GoogleOAuth.Enabled(),
		tokenTTL:           tokenService.TTL(),
		metrics:            metrics,
		logger:             logger,
	}
}

// LoginPage renders the login form. Any existing session cookie is cleared.
func (h *UserHandler) LoginPage(c echo.Context) error {
	cookie.ClearSession(c)

	return response.Page(c, http.StatusOK, view.PageLogin, view.LoginPage{
		LoggedOut:     c.QueryParam("logout") != "",
		GoogleEnabled: h.googleEnabled,
	})
}

// Login handles the login form submission.
func (h *UserHandler) Login(c echo.Context) error {
	input := new(usecase.LoginInput)
	if err := bindForm(c, input); err != nil {
		return h.loginFailed(c, rejected(domainerrors.ErrCredentialsRequired, err))
	}

	output, err := h.uc.Login(c.Request().Context(), input)
	if err != nil {
		return h.loginFailed(c, err)
	}

	cookie.SetSession(c, output.Token, h.tokenTTL)
	h.metrics.AuthEvent(eventLogin, outcomeSuccess)

	return response.SeeOther(c, homePath)
}

func (h *UserHandler) loginFailed(c echo.Context, err error) error {
	h.metrics.AuthEvent(eventLogin, outcomeFailure)
	h.logFailure(c, "Login failed", err)

	info := domainerrors.ToErrorInfo(err)

	return response.Page(c, info.Status, view.PageLogin, view.LoginPage{
		Error:         info.Message,
		GoogleEnabled: h.googleEnabled,
	})
}

// RegisterPage renders the registration form.
func (h *UserHandler) RegisterPage(c echo.Context) error {
	return response.Page(c, http.StatusOK, view.PageRegister, view.RegisterPage{})
}

// Register handles the registration form submission.
func (h *UserHandler) Register(c echo.Context) error {
	input := new(usecase.RegisterUserInput)
	if err := bindForm(c, input); err != nil {
		return h.registerFailed(c, input, rejected(domainerrors.ErrFieldsRequired, err))
	}

	if _, err := h.uc.RegisterUser(c.Request().Context(), input); err != nil {
		return h.registerFailed(c, input, err)
	}

	h.metrics.AuthEvent(eventRegister, outcomeSuccess)

	return response.SeeOther(c, middleware.LoginPath)
}

func (h *UserHandler) registerFailed(c echo.Context, input *usecase.RegisterUserInput, err error) error {
	h.metrics.AuthEvent(eventRegister, outcomeFailure)
	h.logFailure(c, "Registration failed", err)

	info := domainerrors.ToErrorInfo(err)

	return response.Page(c, info.Status, view.PageRegister, view.RegisterPage{
		Error:    info.Message,
		Username: input.Username,
		Email:    input.Email,
	})
}

// Logout clears the session cookie.
func (h *UserHandler) Logout(c echo.Context) error {
	cookie.ClearSession(c)

	return response.SeeOther(c, logoutPath)
}

// GoogleLogin starts the Google sign-in flow.
func (h *UserHandler) GoogleLogin(c echo.Context) error {
	if !h.googleEnabled {
		return response.SeeOther(c, middleware.LoginPath)
	}

	state, err := newOAuthState()
	if err != nil {
		return errors.Wrap(err, "generate oauth state")
	}

	cookie.SetOAuthState(c, state)

	return c.Redirect(http.StatusFound, h.googleOAuthService.AuthCodeURL(state))
}

// GoogleCallback finishes the Google sign-in flow. Every failure lands back
// on the login page.
func (h *UserHandler) GoogleCallback(c echo.Context) error {
	if !h.googleEnabled {
		return response.SeeOther(c, middleware.LoginPath)
	}

	expected := cookie.TakeOAuthState(c)
	state := c.QueryParam("state")
	if expected == "" || subtle.ConstantTimeCompare([]byte(expected), []byte(state)) != 1 {
		return h.googleFailed(c, domainerrors.ErrOAuthStateMismatch)
	}

	if reason := c.QueryParam("error"); reason != "" {
		return h.googleFailed(c, domainerrors.ErrOAuthFailed.WithDetails(reason))
	}

	ctx := c.Request().Context()

	profile, err := h.googleOAuthService.Exchange(ctx, c.QueryParam("code"))
	if err != nil {
		return h.googleFailed(c, err)
	}
	if !profile.EmailVerified {
		return h.googleFailed(c, domainerrors.ErrOAuthEmailUnverified.WithDetails(profile.Email))
	}

	output, err := h.uc.GoogleLogin(ctx, &usecase.GoogleLoginInput{
		Email:         profile.Email,
		DisplayName:   profile.Name,
		EmailVerified: profile.EmailVerified,
	})
	if err != nil {
		return h.googleFailed(c, err)
	}

	cookie.SetSession(c, output.Token, h.tokenTTL)
	h.metrics.AuthEvent(eventGoogle, outcomeSuccess)

	return response.SeeOther(c, homePath)
}

func (h *UserHandler) googleFailed(c echo.Context, err error) error {
	h.metrics.AuthEvent(eventGoogle, outcomeFailure)
	h.logFailure(c, "Google sign-in failed", err)

	return response.SeeOther(c, middleware.LoginPath)
}

// logFailure logs expected rejections at debug and everything else as an error.
func (h *UserHandler) logFailure(c echo.Context, msg string, err error) {
	logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger)

	switch domainerrors.KindOf(err) {
	case domainerrors.KindValidation, domainerrors.KindAuth:
		logger.Debug(msg, slog.Any("error", err))
	default:
		logger.Error(msg, slog.Any("error", err))
	}
}

func newOAuthState() (string, error) {
	buf := make([]byte, stateByteSize)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.WithStack(err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// bindForm binds the request body into dst and runs its validate tags.
func bindForm(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return errors.Wrap(err, "bind form")
	}

	return c.Validate(dst)
}

// rejected attaches the failing form fields to a validation error. Details
// are logged, never rendered.
func rejected(base *domainerrors.BaseError, err error) error {
	fields := validator.FailedFields(err)
	if len(fields) == 0 {
		return base.WithDetails(err.Error())
	}

	return base.WithDetails("missing " + strings.Join(fields, ","))
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
