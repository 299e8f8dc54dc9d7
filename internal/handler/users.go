package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/reads-stash/server/internal/auth"
	"github.com/reads-stash/server/internal/service"
)

// UserHandler serves account profiles. Reads are open to any authenticated
// user; updates and deletes run the ownership guard first.
type UserHandler struct {
	users  *service.UserService
	logger *slog.Logger
}

func NewUserHandler(users *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// HandleList returns every account's public profile.
//
// GET /api/users
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// HandleGet returns one profile. Any authenticated user may view any
// profile — the guard applies to writes, not reads.
//
// GET /api/users/{userId}
func (h *UserHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "userId", "User")
	if err != nil {
		WriteError(w, err)
		return
	}

	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// updateUserRequest uses pointers so an omitted field is distinguishable
// from an explicit zero — PATCH only touches what the body carries.
type updateUserRequest struct {
	FirstName  *string `json:"fname"`
	LastName   *string `json:"lname"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Exp        *int64  `json:"exp" validate:"omitempty,gte=0"`
	TotalBooks *int64  `json:"totalBooks" validate:"omitempty,gte=0"`
	TotalPages *int64  `json:"totalPages" validate:"omitempty,gte=0"`
}

// HandleUpdate rewrites profile fields. Ownership guard before anything
// else: a mismatched or malformed owner id answers 403 before the request
// body is even read.
//
// PATCH /api/users/{userId}
func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	p, err := requirePrincipal(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	if err := auth.AuthorizeOwnerID(p, r.PathValue("userId"), auth.FamilyUsers); err != nil {
		WriteError(w, err)
		return
	}

	var req updateUserRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if err := checkRequest(req); err != nil {
		WriteError(w, err)
		return
	}

	user, err := h.users.Get(r.Context(), p.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Exp != nil {
		user.Exp = *req.Exp
	}
	if req.TotalBooks != nil {
		user.TotalBooks = *req.TotalBooks
	}
	if req.TotalPages != nil {
		user.TotalPages = *req.TotalPages
	}

	updated, err := h.users.Update(r.Context(), user)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// HandleDelete removes the account and everything it owns.
//
// DELETE /api/users/{userId} → 200 {"msg":"Deleted user <id>"}
func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	p, err := requirePrincipal(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	if err := auth.AuthorizeOwnerID(p, r.PathValue("userId"), auth.FamilyUsers); err != nil {
		WriteError(w, err)
		return
	}

	if err := h.users.Delete(r.Context(), p.ID); err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, msgResponse{Msg: fmt.Sprintf("Deleted user %d", p.ID)})
}
