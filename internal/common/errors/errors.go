package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode tags an AppError with its place in the error taxonomy. Codes are
// stable strings so they can be matched by clients and tests.
type ErrorCode string

const (
	// Generic codes.
	ErrCodeInternal   ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"
	ErrCodeNotFound   ErrorCode = "NOT_FOUND"
	ErrCodeConflict   ErrorCode = "CONFLICT"
	ErrCodeForbidden  ErrorCode = "FORBIDDEN"

	// Identity codes.
	ErrCodeUserNotFound       ErrorCode = "USER_NOT_FOUND"
	ErrCodeUsernameTaken      ErrorCode = "USERNAME_TAKEN"
	ErrCodeEmailTaken         ErrorCode = "EMAIL_TAKEN"
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	ErrCodeUserBanned         ErrorCode = "USER_BANNED"

	// Messaging codes.
	ErrCodeEmptyContent ErrorCode = "EMPTY_CONTENT"

	// Invitation codes.
	ErrCodeInvitationNotFound ErrorCode = "INVITATION_NOT_FOUND"
	ErrCodeAlreadyResolved    ErrorCode = "ALREADY_RESOLVED"

	// Channel codes.
	ErrCodeChannelNotFound ErrorCode = "CHANNEL_NOT_FOUND"

	// Admin codes.
	ErrCodeInvalidAmount ErrorCode = "INVALID_AMOUNT"

	// Store codes.
	ErrCodeDatabaseError ErrorCode = "DATABASE_ERROR"
)

// AppError is the tagged result every service operation returns on failure.
// Internal causes are carried for logging but never serialized to clients.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// IsInternal reports whether the error must be surfaced to clients as an
// opaque internal failure instead of an actionable message.
func (e *AppError) IsInternal() bool {
	return e.Code == ErrCodeInternal || e.Code == ErrCodeDatabaseError
}

// New creates an AppError with the given code and message.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Newf creates an AppError with a formatted message.
func Newf(code ErrorCode, format string, args ...any) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause to a new AppError. The cause is kept for logs only.
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Cause: err}
}

// NewValidationError creates a field-level validation error.
func NewValidationError(field, reason string) *AppError {
	return Newf(ErrCodeValidation, "validation failed for %q: %s", field, reason)
}

// NewDatabaseError wraps an unexpected store fault. Callers see a generic
// internal error; the operation name and cause go to the log.
func NewDatabaseError(operation string, err error) *AppError {
	return Wrap(err, ErrCodeDatabaseError, fmt.Sprintf("database operation failed: %s", operation))
}

// NewForbiddenError creates an authorization failure.
func NewForbiddenError(reason string) *AppError {
	return Newf(ErrCodeForbidden, "forbidden: %s", reason)
}

// NewUserNotFoundError creates a missing-user error keyed by username or id.
func NewUserNotFoundError(ref any) *AppError {
	return Newf(ErrCodeUserNotFound, "user not found: %v", ref)
}

// AsAppError unwraps err to an *AppError if one is in the chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == code
	}
	return false
}

// HTTPStatus maps an error to the status code its taxonomy class answers with.
// Non-AppError values are treated as internal.
func HTTPStatus(err error) int {
	appErr, ok := AsAppError(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch appErr.Code {
	case ErrCodeValidation, ErrCodeEmptyContent, ErrCodeInvalidAmount:
		return http.StatusBadRequest
	case ErrCodeInvalidCredentials, ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden, ErrCodeUserBanned:
		return http.StatusForbidden
	case ErrCodeNotFound, ErrCodeUserNotFound, ErrCodeInvitationNotFound, ErrCodeChannelNotFound:
		return http.StatusNotFound
	case ErrCodeConflict, ErrCodeUsernameTaken, ErrCodeEmailTaken, ErrCodeAlreadyResolved:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
