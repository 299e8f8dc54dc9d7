package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/reads-stash/server/internal/auth"
	"github.com/reads-stash/server/internal/model"
	"github.com/reads-stash/server/internal/service"
)

// CollectionHandler serves a user's collections. Every route declares the
// owner in the path, and the guard compares that declaration against the
// token before any storage access — an unauthorized caller gets 403 even for
// resources that don't exist.
type CollectionHandler struct {
	collections *service.CollectionService
	logger      *slog.Logger
}

func NewCollectionHandler(collections *service.CollectionService, logger *slog.Logger) *CollectionHandler {
	return &CollectionHandler{collections: collections, logger: logger}
}

// guard runs the principal lookup and ownership check shared by every route
// in this family.
func (h *CollectionHandler) guard(r *http.Request) (auth.Principal, error) {
	p, err := requirePrincipal(r)
	if err != nil {
		return auth.Principal{}, err
	}
	if err := auth.AuthorizeOwnerID(p, r.PathValue("userId"), auth.FamilyCollections); err != nil {
		return auth.Principal{}, err
	}
	return p, nil
}

// GET /api/users/{userId}/collections
func (h *CollectionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	p, err := h.guard(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	collections, err := h.collections.List(r.Context(), p.ID)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, collections)
}

// GET /api/users/{userId}/collections/{collectionId}
func (h *CollectionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.guard(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	id, err := pathID(r, "collectionId", "Collection")
	if err != nil {
		WriteError(w, err)
		return
	}

	c, err := h.collections.Get(r.Context(), p.ID, id)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

type collectionRequest struct {
	Name string `json:"name" validate:"required"`
}

// POST /api/users/{userId}/collections
func (h *CollectionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	p, err := h.guard(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req collectionRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if err := checkRequest(req); err != nil {
		WriteError(w, err)
		return
	}

	// Owner comes from the verified principal, never from the body.
	c, err := h.collections.Create(r.Context(), &model.Collection{Name: req.Name, UserID: p.ID})
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// PATCH /api/users/{userId}/collections/{collectionId}
func (h *CollectionHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	p, err := h.guard(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	id, err := pathID(r, "collectionId", "Collection")
	if err != nil {
		WriteError(w, err)
		return
	}

	var req collectionRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if err := checkRequest(req); err != nil {
		WriteError(w, err)
		return
	}

	c, err := h.collections.Update(r.Context(), &model.Collection{ID: id, Name: req.Name, UserID: p.ID})
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// DELETE /api/users/{userId}/collections/{collectionId}
// → 200 {"msg":"Deleted user collection <id>"}
func (h *CollectionHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	p, err := h.guard(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	id, err := pathID(r, "collectionId", "Collection")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.collections.Delete(r.Context(), p.ID, id); err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, msgResponse{Msg: fmt.Sprintf("Deleted user collection %d", id)})
}
