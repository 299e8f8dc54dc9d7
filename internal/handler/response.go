// Package handler implements the HTTP layer: request decoding, schema
// validation, the ownership guard, and response serialization. Everything
// below this package speaks models and apperror values; everything HTTP
// lives here.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/reads-stash/server/internal/apperror"
)

// errorBody is the payload inside every error envelope. Message is a string
// for single failures or a []string listing every validation failure.
type errorBody struct {
	Message any `json:"message"`
	Status  int `json:"status"`
}

// errorEnvelope is the uniform error shape: {"error":{"message":...,"status":...}}.
type errorEnvelope struct {
	Error errorBody `json:"error"`
}

// msgResponse is the body of a successful delete: {"msg":"Deleted ..."}.
type msgResponse struct {
	Msg string `json:"msg"`
}

// writeJSON sends a JSON response. Headers must be set before WriteHeader,
// and WriteHeader before the body.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already gone; logging is all that's left.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// WriteError is the single boundary where the error taxonomy becomes HTTP.
// Services and repositories return apperror values; errors.As walks the wrap
// chain to find them. Anything untyped is a 500 with a generic message — the
// raw error text stays out of responses.
//
// Exported because the auth middleware writes its 401 through the same
// envelope.
func WriteError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := appErr.HTTPStatus()

		var message any = appErr.Message
		if len(appErr.Messages) > 0 {
			message = appErr.Messages
		}

		writeJSON(w, status, errorEnvelope{Error: errorBody{Message: message, Status: status}})
		return
	}

	slog.Error("unhandled error reached the HTTP boundary", slog.String("error", err.Error()))
	writeJSON(w, http.StatusInternalServerError, errorEnvelope{
		Error: errorBody{Message: "Internal Server Error", Status: http.StatusInternalServerError},
	})
}

// decodeBody decodes a JSON request body into dst. A body that isn't valid
// JSON for the target shape is a 400, not a 500.
func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.BadRequest("Invalid JSON body")
	}
	return nil
}
