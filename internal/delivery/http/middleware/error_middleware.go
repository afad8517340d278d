package middleware

import (
	"log/slog"
	"net/http"

	deliverycontext "notekeeper/internal/delivery/context"
	"notekeeper/internal/delivery/http/response"
	"notekeeper/internal/delivery/http/view"
	domainerrors "notekeeper/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware error handling middleware
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler. Browsers get the
// error page, JSON clients get the envelope. Only the client-safe message is
// ever written.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	info := m.describe(err, c)

	var writeErr error
	switch {
	case c.Request().Method == http.MethodHead:
		writeErr = c.NoContent(info.Status)
	case response.WantsJSON(c):
		writeErr = response.Error(c, info.Status, info.Code, info.Message)
	default:
		writeErr = response.Page(c, info.Status, view.PageError, view.ErrorPage{
			Status:  info.Status,
			Message: info.Message,
		})
	}

	if writeErr != nil {
		m.logger.Error("Failed to write error response", slog.Any("error", writeErr))
	}
}

func (m *ErrorMiddleware) describe(err error, c echo.Context) domainerrors.ErrorInfo {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok && httpErr.Code < http.StatusInternalServerError {
			message = msg
		}

		return domainerrors.ErrorInfo{Status: httpErr.Code, Code: "HTTP_ERROR", Message: message}
	}

	if kind := domainerrors.KindOf(err); kind == domainerrors.KindInternal || kind == domainerrors.KindStore {
		req := c.Request()
		deliverycontext.GetLoggerOrDefault(req.Context(), m.logger).Error("Unhandled error",
			slog.Any("error", err),
			slog.String("path", req.URL.Path),
			slog.String("method", req.Method),
		)
	}

	return domainerrors.ToErrorInfo(err)
}
