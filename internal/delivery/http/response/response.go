package response

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// Body is the JSON envelope used by the health probe and by JSON clients
// that hit an error.
type Body struct {
	Success bool       `json:"success"`
	Code    int        `json:"code"`    // HTTP status code
	Message string     `json:"message"` // User-friendly message
	Error   *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo detailed error information
type ErrorInfo struct {
	Code string `json:"code"` // Business error code, e.g., "INVALID_TOKEN"
}

// Page renders an HTML page.
func Page(c echo.Context, statusCode int, page string, data any) error {
	return c.Render(statusCode, page, data)
}

// SeeOther answers a form submission with a 303 so a browser refresh does
// not resubmit it.
func SeeOther(c echo.Context, location string) error {
	return c.Redirect(http.StatusSeeOther, location)
}

// Success successful JSON response
func Success(c echo.Context, statusCode int, message string) error {
	if message == "" {
		message = "Success"
	}

	return c.JSON(statusCode, Body{
		Success: true,
		Code:    statusCode,
		Message: message,
	})
}

// Error error JSON response
func Error(c echo.Context, statusCode int, errorCode string, message string) error {
	if message == "" {
		message = http.StatusText(statusCode)
	}

	return c.JSON(statusCode, Body{
		Success: false,
		Code:    statusCode,
		Message: message,
		Error:   &ErrorInfo{Code: errorCode},
	})
}

// WantsJSON reports whether the client asked for JSON rather than HTML.
func WantsJSON(c echo.Context) bool {
	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}
