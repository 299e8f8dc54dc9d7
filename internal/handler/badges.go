package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/reads-stash/server/internal/auth"
	"github.com/reads-stash/server/internal/model"
	"github.com/reads-stash/server/internal/service"
)

// BadgeHandler serves the global badge catalogue and per-user awards.
type BadgeHandler struct {
	badges *service.BadgeService
	logger *slog.Logger
}

func NewBadgeHandler(badges *service.BadgeService, logger *slog.Logger) *BadgeHandler {
	return &BadgeHandler{badges: badges, logger: logger}
}

func (h *BadgeHandler) guard(r *http.Request) (auth.Principal, error) {
	p, err := requirePrincipal(r)
	if err != nil {
		return auth.Principal{}, err
	}
	if err := auth.AuthorizeOwnerID(p, r.PathValue("userId"), auth.FamilyBadges); err != nil {
		return auth.Principal{}, err
	}
	return p, nil
}

// GET /api/badges — the catalogue is global, no guard beyond authentication.
func (h *BadgeHandler) HandleListCatalogue(w http.ResponseWriter, r *http.Request) {
	badges, err := h.badges.ListCatalogue(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, badges)
}

type badgeRequest struct {
	Name      string `json:"name" validate:"required"`
	Thumbnail string `json:"thumbnail"`
}

// POST /api/badges
func (h *BadgeHandler) HandleCreateBadge(w http.ResponseWriter, r *http.Request) {
	var req badgeRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if err := checkRequest(req); err != nil {
		WriteError(w, err)
		return
	}

	b, err := h.badges.CreateBadge(r.Context(), &model.Badge{Name: req.Name, Thumbnail: req.Thumbnail})
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

// GET /api/users/{userId}/badges
func (h *BadgeHandler) HandleListUserBadges(w http.ResponseWriter, r *http.Request) {
	p, err := h.guard(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	badges, err := h.badges.ListUserBadges(r.Context(), p.ID)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, badges)
}

// GET /api/users/{userId}/badges/{badgeId}
func (h *BadgeHandler) HandleGetUserBadge(w http.ResponseWriter, r *http.Request) {
	p, err := h.guard(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	badgeID, err := pathID(r, "badgeId", "Badge")
	if err != nil {
		WriteError(w, err)
		return
	}

	ub, err := h.badges.GetUserBadge(r.Context(), p.ID, badgeID)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ub)
}

type awardRequest struct {
	BadgeID int64 `json:"badgeId" validate:"required"`
}

// POST /api/users/{userId}/badges
func (h *BadgeHandler) HandleAward(w http.ResponseWriter, r *http.Request) {
	p, err := h.guard(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req awardRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if err := checkRequest(req); err != nil {
		WriteError(w, err)
		return
	}

	ub, err := h.badges.Award(r.Context(), &model.UserBadge{UserID: p.ID, BadgeID: req.BadgeID})
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ub)
}

// DELETE /api/users/{userId}/badges/{badgeId}
// → 200 {"msg":"Deleted user's badge <id>"}
func (h *BadgeHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	p, err := h.guard(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	badgeID, err := pathID(r, "badgeId", "Badge")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.badges.Remove(r.Context(), p.ID, badgeID); err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, msgResponse{Msg: fmt.Sprintf("Deleted user's badge %d", badgeID)})
}
