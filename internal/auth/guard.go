package auth

import (
	"strconv"

	"github.com/reads-stash/server/internal/apperror"
)

// Family names a resource family for the ownership guard's message table.
// Each family answers 403 with its own wording; the text lives in one table
// instead of being re-derived in every handler.
type Family string

const (
	FamilyUsers           Family = "users"
	FamilyCollections     Family = "collections"
	FamilyJournals        Family = "journals"
	FamilyRecommendations Family = "recommendations"
	FamilyFollowers       Family = "followers"
	FamilyFollowed        Family = "followed"
	FamilyBadges          Family = "badges"
	FamilyReads           Family = "reads"
)

// forbiddenText is the per-family 403 message. Semantics are identical
// everywhere — the caller is not the declared owner — only the wording
// differs, and clients match on the exact text.
var forbiddenText = map[Family]string{
	FamilyUsers:           "Incorrect User ID",
	FamilyCollections:     "Incorrect User ID",
	FamilyJournals:        "Cannot View Other User's Journals",
	FamilyRecommendations: "Cannot View Other User's Recommendations",
	FamilyFollowers:       "Cannot View Other User's Followers",
	FamilyFollowed:        "Cannot View Other User's Followed Users",
	FamilyBadges:          "Cannot View Other User's Badges",
	FamilyReads:           "Cannot View Other User's Reads",
}

// AuthorizeOwnerID is the ownership guard for routes that declare the owner
// by numeric user id. The declared owner arrives as the raw path/body string
// and is compared against the principal's id by strict value equality.
//
// A non-numeric declared id ("bad_type") can never equal the rendered
// principal id, so it falls out as a mismatch — 403, not 400. A
// syntactically invalid id gets the same answer as someone else's id, so the
// response never reveals whether an id is even well-formed.
func AuthorizeOwnerID(p Principal, declaredID string, family Family) error {
	if declaredID != strconv.FormatInt(p.ID, 10) {
		return apperror.Forbidden(forbiddenText[family])
	}
	return nil
}

// AuthorizeOwnerUsername is the ownership guard for routes that declare the
// owner by username (the follower routes).
func AuthorizeOwnerUsername(p Principal, declaredUsername string, family Family) error {
	if declaredUsername != p.Username {
		return apperror.Forbidden(forbiddenText[family])
	}
	return nil
}
