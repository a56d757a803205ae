package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelMatching(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"not found", NotFound("snippet", "abc"), ErrNotFound},
		{"validation", ValidationFailed("title", "too long"), ErrValidation},
		{"conflict", Conflict("taken"), ErrConflict},
		{"forbidden", Forbidden("nope"), ErrForbidden},
		{"unauthorized", Unauthorized(), ErrUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !errors.Is(tc.err, tc.sentinel) {
				t.Errorf("errors.Is(%v, sentinel) = false", tc.err)
			}
		})
	}
}

func TestSentinelMatching_SurvivesWrapping(t *testing.T) {
	// Services wrap repository errors with context; the category must
	// survive for the HTTP layer's status mapping.
	wrapped := fmt.Errorf("loading snippet: %w", NotFound("snippet", "abc"))

	if !errors.Is(wrapped, ErrNotFound) {
		t.Error("wrapped error lost its ErrNotFound category")
	}

	var appErr *AppError
	if !errors.As(wrapped, &appErr) {
		t.Fatal("errors.As failed to extract *AppError")
	}
	if appErr.Message != "snippet not found with id abc" {
		t.Errorf("message = %q", appErr.Message)
	}
}

func TestUnauthorized_UniformMessage(t *testing.T) {
	if Unauthorized().Message != "not authenticated" {
		t.Errorf("message = %q, want %q", Unauthorized().Message, "not authenticated")
	}
}
