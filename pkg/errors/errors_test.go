package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{ErrCodeValidation, http.StatusUnprocessableEntity},
		{ErrCodeUserNotFound, http.StatusNotFound},
		{ErrCodeFriendRequestNotFound, http.StatusNotFound},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeRateLimitExceeded, http.StatusTooManyRequests},
		{ErrCodeInternalError, http.StatusInternalServerError},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := HTTPStatus(tt.code); got != tt.want {
				t.Errorf("HTTPStatus(%q) = %d, want %d", tt.code, got, tt.want)
			}
		})
	}
}

func TestAs_WrappedAppError(t *testing.T) {
	inner := ErrFriendRequestNotFound()
	wrapped := fmt.Errorf("responding: %w", inner)

	got := As(wrapped)
	if got != inner {
		t.Errorf("As() = %v, want the same AppError", got)
	}
	if !Is(wrapped, ErrCodeFriendRequestNotFound) {
		t.Error("Is() = false, want true for wrapped FRIEND_REQUEST_NOT_FOUND")
	}
}

func TestAs_UnknownError(t *testing.T) {
	cause := stderrors.New("connection reset")

	got := As(cause)
	if got.Code != ErrCodeInternalError {
		t.Errorf("Code = %q, want %q", got.Code, ErrCodeInternalError)
	}
	if !stderrors.Is(got, cause) {
		t.Error("expected internal error to unwrap to its cause")
	}
}

func TestAppError_Error(t *testing.T) {
	err := Wrap(stderrors.New("boom"), ErrCodeInternalError, "failed to create post")
	want := "INTERNAL_ERROR: failed to create post (boom)"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestTitle(t *testing.T) {
	if got := Title(ErrCodeUserNotFound); got != "User not found" {
		t.Errorf("Title(USER_NOT_FOUND) = %q", got)
	}
	if got := Title(ErrCodeFriendRequestNotFound); got != "Friend Request not found" {
		t.Errorf("Title(FRIEND_REQUEST_NOT_FOUND) = %q", got)
	}
}
