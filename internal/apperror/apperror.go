// Package apperror defines the application's error taxonomy.
//
// Services and repositories raise these typed errors; a single boundary in
// the handler package translates them to HTTP status codes and the
// {error:{message,status}} envelope. Nothing below the handler layer knows
// about HTTP.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors. Callers check these with errors.Is; the handler boundary
// maps each one to a status code.
var (
	ErrUnauthenticated = errors.New("unauthenticated") // 401: missing or invalid credential
	ErrForbidden       = errors.New("forbidden")       // 403: authenticated but not the declared owner
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict") // uniqueness violation
)

// AppError pairs a sentinel with a human-readable message.
//
// Messages (plural) is set only for validation failures, which report every
// failing field at once rather than just the first. Status overrides the
// sentinel's default HTTP status for the few routes that diverge (duplicate
// username at registration responds 400, not 409).
type AppError struct {
	Err      error
	Message  string
	Messages []string
	Status   int
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if len(e.Messages) > 0 {
		return e.Messages[0]
	}
	return e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the status this error maps to at the boundary.
func (e *AppError) HTTPStatus() int {
	if e.Status != 0 {
		return e.Status
	}
	switch {
	case errors.Is(e.Err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(e.Err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(e.Err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(e.Err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(e.Err, ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// Unauthenticated is returned for a missing or unverifiable credential.
// Malformed and expired tokens deliberately collapse into the same message.
func Unauthenticated() *AppError {
	return &AppError{
		Err:     ErrUnauthenticated,
		Message: "Unauthorized",
	}
}

// Forbidden returns an AppError indicating the caller is not the declared
// owner of the resource. Message text varies per resource family.
func Forbidden(message string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: message,
	}
}

// ValidationFailed reports one or more schema violations. All failing fields
// are listed, not just the first.
func ValidationFailed(messages ...string) *AppError {
	return &AppError{
		Err:      ErrValidation,
		Messages: messages,
	}
}

// BadRequest is a single-message 400 for failures that are not field-level
// schema violations (e.g. a wrong password at login).
func BadRequest(message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
	}
}

func NotFound(resource string, id any) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s %v not found", resource, id),
	}
}

// Conflict reports a uniqueness violation surfaced by the storage engine.
func Conflict(message string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: message,
	}
}
