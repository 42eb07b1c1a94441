package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFoundMessages(t *testing.T) {
	t.Parallel()

	if got, want := UserNotFound(999).Error(), "User with id 999 not found"; got != want {
		t.Fatalf("UserNotFound = %q, want %q", got, want)
	}
	if got, want := CourseNotFound(1).Error(), "Course with id 1 not found"; got != want {
		t.Fatalf("CourseNotFound = %q, want %q", got, want)
	}
	if !errors.Is(UserNotFound(1), ErrResourceNotFound) {
		t.Fatal("UserNotFound does not match ErrResourceNotFound")
	}
}

func TestStorageErrorHidesCause(t *testing.T) {
	t.Parallel()

	cause := errors.New(`pq: relation "users" does not exist`)
	err := fmt.Errorf("service: %w", NewStorageError("Failed to load user", cause))

	if !errors.Is(err, ErrStorage) {
		t.Fatal("storage error does not match ErrStorage")
	}
	if !errors.Is(err, cause) {
		t.Fatal("cause is not reachable")
	}
	if got := Message(err); got != "Internal server error" {
		t.Fatalf("Message() = %q, want generic text", got)
	}
}

func TestMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{NewConflictError("User with email a@b.c already exists"), "User with email a@b.c already exists"},
		{NewValidationError("Validation failed", nil), "Validation failed"},
		{errors.New("driver exploded"), "Internal server error"},
	}
	for _, tt := range tests {
		if got := Message(tt.err); got != tt.want {
			t.Errorf("Message(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestDetailsAndCategory(t *testing.T) {
	t.Parallel()

	err := NewValidationError("Validation failed", map[string]interface{}{"email": "email is required"})
	if got := DetailsOf(err)["email"]; got != "email is required" {
		t.Fatalf("DetailsOf()[email] = %v", got)
	}
	if DetailsOf(errors.New("plain")) != nil {
		t.Fatal("DetailsOf(plain) != nil")
	}
	if !errors.Is(err, ErrValidationFailed) || errors.Is(err, ErrConflict) {
		t.Fatal("validation error matched the wrong category")
	}
}
