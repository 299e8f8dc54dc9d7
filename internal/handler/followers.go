package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/reads-stash/server/internal/auth"
	"github.com/reads-stash/server/internal/service"
)

// FollowerHandler serves both directions of the follower edge. The inbound
// routes (who follows me) declare the owner by username — edges are keyed by
// username pairs, so the path carries the username and the guard compares it
// against the token's username. The outbound routes (whom I follow) declare
// the owner by numeric id like the other families.
type FollowerHandler struct {
	followers *service.FollowerService
	logger    *slog.Logger
}

func NewFollowerHandler(followers *service.FollowerService, logger *slog.Logger) *FollowerHandler {
	return &FollowerHandler{followers: followers, logger: logger}
}

// guardUsername authorizes the inbound-direction routes. The path parameter
// is registered as userId (chi requires one name per path position) but
// carries a username here.
func (h *FollowerHandler) guardUsername(r *http.Request) (auth.Principal, error) {
	p, err := requirePrincipal(r)
	if err != nil {
		return auth.Principal{}, err
	}
	if err := auth.AuthorizeOwnerUsername(p, r.PathValue("userId"), auth.FamilyFollowers); err != nil {
		return auth.Principal{}, err
	}
	return p, nil
}

func (h *FollowerHandler) guardID(r *http.Request) (auth.Principal, error) {
	p, err := requirePrincipal(r)
	if err != nil {
		return auth.Principal{}, err
	}
	if err := auth.AuthorizeOwnerID(p, r.PathValue("userId"), auth.FamilyFollowed); err != nil {
		return auth.Principal{}, err
	}
	return p, nil
}

// GET /api/users/{username}/followers
func (h *FollowerHandler) HandleListFollowers(w http.ResponseWriter, r *http.Request) {
	p, err := h.guardUsername(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	followers, err := h.followers.ListFollowers(r.Context(), p.Username)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, followers)
}

// GET /api/users/{username}/followers/{followerUsername} — lookup by the
// composite pair; follower edges have no surrogate id.
func (h *FollowerHandler) HandleGetFollower(w http.ResponseWriter, r *http.Request) {
	p, err := h.guardUsername(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	f, err := h.followers.GetFollower(r.Context(), p.Username, r.PathValue("followerUsername"))
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

// DELETE /api/users/{username}/followers/{followerUsername}
// → 200 {"msg":"Deleted follower <username>"}
func (h *FollowerHandler) HandleDeleteFollower(w http.ResponseWriter, r *http.Request) {
	p, err := h.guardUsername(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	follower := r.PathValue("followerUsername")
	if err := h.followers.RemoveFollower(r.Context(), p.Username, follower); err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, msgResponse{Msg: fmt.Sprintf("Deleted follower %s", follower)})
}

// GET /api/users/{userId}/followed
func (h *FollowerHandler) HandleListFollowed(w http.ResponseWriter, r *http.Request) {
	p, err := h.guardID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	followed, err := h.followers.ListFollowed(r.Context(), p.Username)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, followed)
}

type followRequest struct {
	FollowedID int64 `json:"followedId" validate:"required"`
}

// POST /api/users/{userId}/followed
func (h *FollowerHandler) HandleFollow(w http.ResponseWriter, r *http.Request) {
	p, err := h.guardID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req followRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if err := checkRequest(req); err != nil {
		WriteError(w, err)
		return
	}

	followed, err := h.followers.Follow(r.Context(), req.FollowedID, p.Username)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, followed)
}

// DELETE /api/users/{userId}/followed/{followedId}
// → 200 {"msg":"Deleted followed user <id>"}
func (h *FollowerHandler) HandleUnfollow(w http.ResponseWriter, r *http.Request) {
	p, err := h.guardID(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	followedID, err := pathID(r, "followedId", "Followed user")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.followers.Unfollow(r.Context(), followedID, p.Username); err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, msgResponse{Msg: fmt.Sprintf("Deleted followed user %d", followedID)})
}
