package errors

import (
	"net/http"

	"notekeeper/internal/errors"
)

// Kind groups errors by how the delivery layer reacts to them.
type Kind int

const (
	// KindInternal covers unexpected failures. Details are logged, never shown.
	KindInternal Kind = iota
	// KindValidation means the submitted form is incomplete or conflicts with existing data.
	KindValidation
	// KindAuth means the caller could not be authenticated.
	KindAuth
	// KindAuthorization means the caller does not own the resource. Surfaced as a no-op.
	KindAuthorization
	// KindStore means the persistence layer failed.
	KindStore
)

// GenericMessage is what users see for internal and store failures.
const GenericMessage = "An error occurred. Please try again."

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	Kind() Kind
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	kind      Kind
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(kind Kind, httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		kind:      kind,
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.details != "" {
		return e.message + ": " + e.details
	}

	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// Kind returns the handling category.
func (e *BaseError) Kind() Kind {
	return e.kind
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// Is matches on error code so copies made by WithDetails still compare equal
// to the catalogue entry they came from.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == t.errorCode
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		kind:      e.kind,
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Validation
	ErrFieldsRequired = NewBaseError(
		KindValidation,
		http.StatusBadRequest,
		"FIELDS_REQUIRED",
		"All fields are required",
		"",
	)

	ErrCredentialsRequired = NewBaseError(
		KindValidation,
		http.StatusBadRequest,
		"CREDENTIALS_REQUIRED",
		"Email and password are required",
		"",
	)

	ErrUserAlreadyExists = NewBaseError(
		KindValidation,
		http.StatusConflict,
		"USER_ALREADY_EXISTS",
		"Email or username already exists",
		"",
	)

	ErrNoteIncomplete = NewBaseError(
		KindValidation,
		http.StatusBadRequest,
		"NOTE_INCOMPLETE",
		"Title and details are required",
		"",
	)

	// Authentication
	ErrInvalidCredentials = NewBaseError(
		KindAuth,
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid email or password",
		"",
	)

	ErrInvalidToken = NewBaseError(
		KindAuth,
		http.StatusUnauthorized,
		"INVALID_TOKEN",
		"Invalid or expired session",
		"",
	)

	ErrOAuthFailed = NewBaseError(
		KindAuth,
		http.StatusUnauthorized,
		"OAUTH_FAILED",
		"Google sign-in failed",
		"",
	)

	ErrOAuthStateMismatch = NewBaseError(
		KindAuth,
		http.StatusBadRequest,
		"OAUTH_STATE_MISMATCH",
		"Google sign-in failed",
		"",
	)

	// ErrOAuthEmailUnverified refuses profiles whose email the provider does not vouch for.
	ErrOAuthEmailUnverified = NewBaseError(
		KindAuth,
		http.StatusUnauthorized,
		"OAUTH_EMAIL_UNVERIFIED",
		"Google sign-in failed",
		"",
	)

	// Authorization
	ErrNoteNotOwned = NewBaseError(
		KindAuthorization,
		http.StatusNotFound,
		"NOTE_NOT_OWNED",
		"Note not found",
		"",
	)

	// Internal
	ErrPasswordHashFailed = NewBaseError(
		KindInternal,
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		GenericMessage,
		"",
	)

	ErrTokenIssueFailed = NewBaseError(
		KindInternal,
		http.StatusInternalServerError,
		"TOKEN_ISSUE_FAILED",
		GenericMessage,
		"",
	)

	ErrInternalError = NewBaseError(
		KindInternal,
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		GenericMessage,
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed: "+e.details).Error()
}

// Unwrap exposes the driver error.
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// Kind returns the handling category.
func (e *DatabaseExecuteError) Kind() Kind {
	return KindStore
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return GenericMessage
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}

// KindOf extracts the handling category of err. Errors outside the catalogue are internal.
func KindOf(err error) Kind {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.Kind()
	}

	return KindInternal
}

// UserMessage returns the text that may be shown to an end user for err.
func UserMessage(err error) string {
	var appErr AppError
	if !errors.As(err, &appErr) {
		return GenericMessage
	}

	switch appErr.Kind() {
	case KindValidation, KindAuth:
		return appErr.Message()
	default:
		return GenericMessage
	}
}
