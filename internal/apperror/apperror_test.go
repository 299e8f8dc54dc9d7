package apperror

import (
	"errors"
	"net/http"
	"testing"
)

func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{
			name:      "Unauthenticated wraps ErrUnauthenticated",
			err:       Unauthenticated(),
			target:    ErrUnauthenticated,
			wantMatch: true,
		},
		{
			name:      "Forbidden wraps ErrForbidden",
			err:       Forbidden("Incorrect User ID"),
			target:    ErrForbidden,
			wantMatch: true,
		},
		{
			name:      "NotFound wraps ErrNotFound",
			err:       NotFound("collection", 42),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "ValidationFailed wraps ErrValidation",
			err:       ValidationFailed("title is required"),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "Conflict wraps ErrConflict",
			err:       Conflict("Username taken. Please pick another."),
			target:    ErrConflict,
			wantMatch: true,
		},
		{
			name:      "NotFound does NOT match ErrForbidden",
			err:       NotFound("journal", 7),
			target:    ErrForbidden,
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errors.Is(tt.err, tt.target)
			if got != tt.wantMatch {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.wantMatch)
			}
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want int
	}{
		{"unauthenticated is 401", Unauthenticated(), http.StatusUnauthorized},
		{"forbidden is 403", Forbidden("Incorrect User ID"), http.StatusForbidden},
		{"validation is 400", ValidationFailed("text is required"), http.StatusBadRequest},
		{"bad request is 400", BadRequest("Invalid username/password"), http.StatusBadRequest},
		{"not found is 404", NotFound("user", 1000), http.StatusNotFound},
		{"conflict is 409", Conflict("duplicate follower edge"), http.StatusConflict},
		{
			// Registration answers 400 for a taken username even though
			// the cause is a uniqueness violation.
			name: "explicit status wins over the sentinel default",
			err:  &AppError{Err: ErrConflict, Message: "Username taken. Please pick another.", Status: http.StatusBadRequest},
			want: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.HTTPStatus(); got != tt.want {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name        string
		err         *AppError
		wantMessage string
	}{
		{
			name:        "NotFound message includes resource and id",
			err:         NotFound("User", 1000),
			wantMessage: "User 1000 not found",
		},
		{
			name:        "ValidationFailed falls back to the first message",
			err:         ValidationFailed("title is required", "text is required"),
			wantMessage: "title is required",
		},
		{
			name:        "Forbidden carries the family-specific text",
			err:         Forbidden("Cannot View Other User's Journals"),
			wantMessage: "Cannot View Other User's Journals",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMessage {
				t.Errorf("Error() = %q, want %q", got, tt.wantMessage)
			}
		})
	}
}

func TestValidationFailedKeepsEveryMessage(t *testing.T) {
	err := ValidationFailed("title is required", "text is required")

	if len(err.Messages) != 2 {
		t.Fatalf("Messages has %d entries, want 2", len(err.Messages))
	}
	if err.Messages[1] != "text is required" {
		t.Errorf("Messages[1] = %q, want %q", err.Messages[1], "text is required")
	}
}
