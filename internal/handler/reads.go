package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/reads-stash/server/internal/auth"
	"github.com/reads-stash/server/internal/model"
	"github.com/reads-stash/server/internal/service"
)

// ReadHandler serves three related surfaces: the shared book catalogue under
// /api/reads, each user's stashed reads under /api/users/{userId}/reads, and
// the filing of reads into the principal's collections under
// /api/reads/{readId}/collections.
type ReadHandler struct {
	reads  *service.ReadService
	logger *slog.Logger
}

func NewReadHandler(reads *service.ReadService, logger *slog.Logger) *ReadHandler {
	return &ReadHandler{reads: reads, logger: logger}
}

func (h *ReadHandler) guard(r *http.Request) (auth.Principal, error) {
	p, err := requirePrincipal(r)
	if err != nil {
		return auth.Principal{}, err
	}
	if err := auth.AuthorizeOwnerID(p, r.PathValue("userId"), auth.FamilyReads); err != nil {
		return auth.Principal{}, err
	}
	return p, nil
}

type createReadRequest struct {
	Title       string  `json:"title" validate:"required"`
	ISBN        string  `json:"isbn" validate:"required"`
	Description string  `json:"description"`
	AvgRating   float64 `json:"avgRating" validate:"omitempty,gte=0,lte=5"`
	PrintType   string  `json:"printType"`
	Publisher   string  `json:"publisher"`
}

// POST /api/reads — adds a book to the shared catalogue. Catalogue rows are
// unowned, so authentication is the only requirement.
func (h *ReadHandler) HandleCreateRead(w http.ResponseWriter, r *http.Request) {
	var req createReadRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if err := checkRequest(req); err != nil {
		WriteError(w, err)
		return
	}

	read := &model.Read{
		Title:       req.Title,
		ISBN:        req.ISBN,
		Description: req.Description,
		AvgRating:   req.AvgRating,
		PrintType:   req.PrintType,
		Publisher:   req.Publisher,
	}
	created, err := h.reads.CreateRead(r.Context(), read)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// GET /api/reads/{readId}
func (h *ReadHandler) HandleGetRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "readId", "Read")
	if err != nil {
		WriteError(w, err)
		return
	}

	read, err := h.reads.GetRead(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, read)
}

// GET /api/users/{userId}/reads
func (h *ReadHandler) HandleListUserReads(w http.ResponseWriter, r *http.Request) {
	p, err := h.guard(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	reads, err := h.reads.ListUserReads(r.Context(), p.ID)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reads)
}

// GET /api/users/{userId}/reads/{readId}
func (h *ReadHandler) HandleGetUserRead(w http.ResponseWriter, r *http.Request) {
	p, err := h.guard(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	readID, err := pathID(r, "readId", "Read")
	if err != nil {
		WriteError(w, err)
		return
	}

	ur, err := h.reads.GetUserRead(r.Context(), p.ID, readID)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ur)
}

type stashRequest struct {
	ReadID     int64      `json:"readId" validate:"required"`
	Rating     *int64     `json:"rating" validate:"omitempty,gte=1,lte=5"`
	ReviewText *string    `json:"reviewText"`
	ReviewDate *time.Time `json:"reviewDate"`
}

// POST /api/users/{userId}/reads — stash a catalogue read, optionally with
// an initial rating and review.
func (h *ReadHandler) HandleStash(w http.ResponseWriter, r *http.Request) {
	p, err := h.guard(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req stashRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if err := checkRequest(req); err != nil {
		WriteError(w, err)
		return
	}

	ur := &model.UserRead{
		UserID:     p.ID,
		ReadID:     req.ReadID,
		Rating:     req.Rating,
		ReviewText: req.ReviewText,
		ReviewDate: req.ReviewDate,
	}
	stashed, err := h.reads.Stash(r.Context(), ur)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, stashed)
}

type reviewRequest struct {
	Rating     *int64     `json:"rating" validate:"omitempty,gte=1,lte=5"`
	ReviewText *string    `json:"reviewText"`
	ReviewDate *time.Time `json:"reviewDate"`
}

// PATCH /api/users/{userId}/reads/{readId} — update the rating/review on a
// stashed read. Fields omitted from the body keep their stored values.
func (h *ReadHandler) HandleUpdateUserRead(w http.ResponseWriter, r *http.Request) {
	p, err := h.guard(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	readID, err := pathID(r, "readId", "Read")
	if err != nil {
		WriteError(w, err)
		return
	}

	var req reviewRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if err := checkRequest(req); err != nil {
		WriteError(w, err)
		return
	}

	current, err := h.reads.GetUserRead(r.Context(), p.ID, readID)
	if err != nil {
		WriteError(w, err)
		return
	}

	if req.Rating != nil {
		current.Rating = req.Rating
	}
	if req.ReviewText != nil {
		current.ReviewText = req.ReviewText
	}
	if req.ReviewDate != nil {
		current.ReviewDate = req.ReviewDate
	}

	updated, err := h.reads.UpdateUserRead(r.Context(), current)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DELETE /api/users/{userId}/reads/{readId}
// → 200 {"msg":"Deleted user read <id>"}
func (h *ReadHandler) HandleDeleteUserRead(w http.ResponseWriter, r *http.Request) {
	p, err := h.guard(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	readID, err := pathID(r, "readId", "Read")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.reads.DeleteUserRead(r.Context(), p.ID, readID); err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, msgResponse{Msg: fmt.Sprintf("Deleted user read %d", readID)})
}

// GET /api/reads/{readId}/collections — the principal's collections
// containing this read. The owner is implicit: there is no declared owner in
// the path, so the principal scopes the query directly.
func (h *ReadHandler) HandleListReadCollections(w http.ResponseWriter, r *http.Request) {
	p, err := requirePrincipal(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	readID, err := pathID(r, "readId", "Read")
	if err != nil {
		WriteError(w, err)
		return
	}

	filings, err := h.reads.ListReadCollections(r.Context(), p.ID, readID)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, filings)
}

type fileReadRequest struct {
	CollectionID int64 `json:"collectionId" validate:"required"`
}

// POST /api/reads/{readId}/collections — file a read into one of the
// principal's collections. A collection the principal doesn't own reads as
// missing.
func (h *ReadHandler) HandleFileIntoCollection(w http.ResponseWriter, r *http.Request) {
	p, err := requirePrincipal(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	readID, err := pathID(r, "readId", "Read")
	if err != nil {
		WriteError(w, err)
		return
	}

	var req fileReadRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if err := checkRequest(req); err != nil {
		WriteError(w, err)
		return
	}

	rc, err := h.reads.FileIntoCollection(r.Context(), p.ID, readID, req.CollectionID)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rc)
}

// DELETE /api/reads/{readId}/collections/{collectionId}
// → 200 {"msg":"Deleted read <readId> from collection <collectionId>"}
func (h *ReadHandler) HandleRemoveFromCollection(w http.ResponseWriter, r *http.Request) {
	p, err := requirePrincipal(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	readID, err := pathID(r, "readId", "Read")
	if err != nil {
		WriteError(w, err)
		return
	}
	collectionID, err := pathID(r, "collectionId", "Collection")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.reads.RemoveFromCollection(r.Context(), p.ID, readID, collectionID); err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, msgResponse{
		Msg: fmt.Sprintf("Deleted read %d from collection %d", readID, collectionID),
	})
}
