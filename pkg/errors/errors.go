package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

type AppError struct {
	Code    string
	Message string
	Err     error

	// Meta carries per-field validation messages.
	Meta map[string][]string
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func Wrap(err error, code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation builds a VALIDATION_ERROR with field -> messages details.
func Validation(meta map[string][]string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: "Your request is malformed or missing fields.",
		Meta:    meta,
	}
}

// Common error codes
const (
	ErrCodeValidation            = "VALIDATION_ERROR"
	ErrCodeNotFound              = "NOT_FOUND"
	ErrCodeUserNotFound          = "USER_NOT_FOUND"
	ErrCodeFriendRequestNotFound = "FRIEND_REQUEST_NOT_FOUND"
	ErrCodeUnauthorized          = "UNAUTHORIZED"
	ErrCodeInternalError         = "INTERNAL_ERROR"
	ErrCodeRateLimitExceeded     = "RATE_LIMIT_EXCEEDED"
)

// ErrUserNotFound and ErrFriendRequestNotFound are the two domain lookups the
// API exposes verbatim.
func ErrUserNotFound() *AppError {
	return New(ErrCodeUserNotFound, "Unable to find the user with the given information")
}

func ErrFriendRequestNotFound() *AppError {
	return New(ErrCodeFriendRequestNotFound, "Unable to find the friend request the user with the given information")
}

// Is reports whether err is an AppError carrying code.
func Is(err error, code string) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// As unwraps err into an AppError. Unknown errors become INTERNAL_ERROR.
func As(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, ErrCodeInternalError, "internal server error")
}

// HTTPStatus maps an error code to its response status.
func HTTPStatus(code string) int {
	switch code {
	case ErrCodeValidation:
		return http.StatusUnprocessableEntity
	case ErrCodeNotFound, ErrCodeUserNotFound, ErrCodeFriendRequestNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Title is the short human heading rendered in error bodies.
func Title(code string) string {
	switch code {
	case ErrCodeValidation:
		return "Validation Error"
	case ErrCodeUserNotFound:
		return "User not found"
	case ErrCodeFriendRequestNotFound:
		return "Friend Request not found"
	case ErrCodeNotFound:
		return "Not found"
	case ErrCodeUnauthorized:
		return "Unauthenticated"
	case ErrCodeRateLimitExceeded:
		return "Too Many Requests"
	default:
		return "Server Error"
	}
}
