package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/reads-stash/server/internal/auth"
	"github.com/reads-stash/server/internal/model"
	"github.com/reads-stash/server/internal/service"
)

// RecommendationHandler serves book tips between users. The guard still
// compares the declared owner to the principal, but within the family the
// visible set is the participant union — sender or receiver.
type RecommendationHandler struct {
	recommendations *service.RecommendationService
	logger          *slog.Logger
}

func NewRecommendationHandler(recommendations *service.RecommendationService, logger *slog.Logger) *RecommendationHandler {
	return &RecommendationHandler{recommendations: recommendations, logger: logger}
}

func (h *RecommendationHandler) guard(r *http.Request) (auth.Principal, error) {
	p, err := requirePrincipal(r)
	if err != nil {
		return auth.Principal{}, err
	}
	if err := auth.AuthorizeOwnerID(p, r.PathValue("userId"), auth.FamilyRecommendations); err != nil {
		return auth.Principal{}, err
	}
	return p, nil
}

// GET /api/users/{userId}/recommendations
func (h *RecommendationHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	p, err := h.guard(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	recs, err := h.recommendations.List(r.Context(), p.ID)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

// GET /api/users/{userId}/recommendations/{recommendationId}
func (h *RecommendationHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.guard(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	id, err := pathID(r, "recommendationId", "Recommendation")
	if err != nil {
		WriteError(w, err)
		return
	}

	rec, err := h.recommendations.Get(r.Context(), p.ID, id)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

type recommendationRequest struct {
	Recommendation string `json:"recommendation" validate:"required"`
	ReceiverID     int64  `json:"receiverId" validate:"required"`
}

// POST /api/users/{userId}/recommendations — the sender is always the
// principal; a body claiming a different sender has nowhere to claim it.
func (h *RecommendationHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	p, err := h.guard(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req recommendationRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if err := checkRequest(req); err != nil {
		WriteError(w, err)
		return
	}

	rec := &model.Recommendation{
		Recommendation: req.Recommendation,
		SenderID:       p.ID,
		ReceiverID:     req.ReceiverID,
	}
	created, err := h.recommendations.Create(r.Context(), rec)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// DELETE /api/users/{userId}/recommendations/{recommendationId}
// → 200 {"msg":"Deleted recommendation <id>"}
func (h *RecommendationHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	p, err := h.guard(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	id, err := pathID(r, "recommendationId", "Recommendation")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.recommendations.Delete(r.Context(), p.ID, id); err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, msgResponse{Msg: fmt.Sprintf("Deleted recommendation %d", id)})
}
