package middleware

import (
	"log/slog"
	"net/http"

	deliverycontext "notekeeper/internal/delivery/context"
	"notekeeper/internal/delivery/http/cookie"
	"notekeeper/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// LoginPath is where unauthenticated browsers are sent.
const LoginPath = "/login"

// AuthMiddleware gates pages behind a valid session cookie.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, logger: logger}
}

// Authenticate redirects to the login page unless the session cookie holds a
// valid token. An invalid or expired cookie is cleared first. On success the
// user id and email are stored on the context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := cookie.Session(c)
		if token == "" {
			return c.Redirect(http.StatusSeeOther, LoginPath)
		}

		claims, err := m.tokenSvc.ValidateToken(token)
		if err != nil {
			deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).
				Debug("Rejected session cookie", slog.Any("error", err))
			cookie.ClearSession(c)

			return c.Redirect(http.StatusSeeOther, LoginPath)
		}

		deliverycontext.SetUser(c, claims.UserID, claims.Email)

		return next(c)
	}
}
