package errors

import "notekeeper/internal/errors"

// ErrorInfo is the client-safe projection of an error, used by the error page.
type ErrorInfo struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`    // Business error code, e.g., "INVALID_TOKEN"
	Message string `json:"message"` // User-friendly error message
}

// ToErrorInfo converts err into its client-safe form. Internal and store
// failures collapse to GenericMessage so no driver detail reaches the client.
func ToErrorInfo(err error) ErrorInfo {
	var appErr AppError
	if !errors.As(err, &appErr) {
		return ErrorInfo{Status: ErrInternalError.HTTPCode(), Code: ErrInternalError.ErrorCode(), Message: GenericMessage}
	}

	return ErrorInfo{Status: appErr.HTTPCode(), Code: appErr.ErrorCode(), Message: UserMessage(err)}
}
