// Package repository declares the per-entity-family data access interfaces.
//
// Every accessor that touches a user-scoped resource takes the owner id (or
// username) explicitly and scopes its SQL to that owner. Handlers run the
// ownership guard BEFORE calling any of these, so an unauthorized caller
// never reaches an existence check; a caller who passes the guard but
// references a missing row gets apperror.ErrNotFound.
//
// Accessors are free functions on the repository value — no loaded-instance
// update()/delete() methods holding hidden state.
package repository

import (
	"context"

	"github.com/reads-stash/server/internal/model"
)

// UserRepository manages account rows.
type UserRepository interface {
	// Create inserts a new user. A duplicate username surfaces as
	// apperror.ErrConflict (the UNIQUE constraint is the concurrency-safety
	// mechanism — no check-then-insert).
	Create(ctx context.Context, user *model.User) error
	GetAll(ctx context.Context) ([]model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	// GetByUsernameForLogin additionally selects the password hash.
	GetByUsernameForLogin(ctx context.Context, username string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id int64) error
}

// CollectionRepository manages a user's collections. All lookups are scoped
// to the owning user id.
type CollectionRepository interface {
	CreateCollection(ctx context.Context, c *model.Collection) error
	ListCollections(ctx context.Context, userID int64) ([]model.Collection, error)
	GetCollection(ctx context.Context, userID, id int64) (*model.Collection, error)
	UpdateCollection(ctx context.Context, c *model.Collection) error
	DeleteCollection(ctx context.Context, userID, id int64) error
}

// JournalRepository manages a user's journal entries.
type JournalRepository interface {
	CreateJournal(ctx context.Context, j *model.Journal) error
	ListJournals(ctx context.Context, userID int64) ([]model.Journal, error)
	GetJournal(ctx context.Context, userID, id int64) (*model.Journal, error)
	UpdateJournal(ctx context.Context, j *model.Journal) error
	DeleteJournal(ctx context.Context, userID, id int64) error
}

// RecommendationRepository manages recommendations. Visibility is the union
// condition: a row belongs to a user's listing iff the user is sender OR
// receiver. There is no update operation.
type RecommendationRepository interface {
	CreateRecommendation(ctx context.Context, rec *model.Recommendation) error
	ListRecommendations(ctx context.Context, userID int64) ([]model.Recommendation, error)
	GetRecommendation(ctx context.Context, userID, id int64) (*model.Recommendation, error)
	DeleteRecommendation(ctx context.Context, userID, id int64) error
}

// FollowerRepository manages directed follower edges keyed by the
// (followed username, follower username) pair. Edges have no surrogate id
// and no update operation; a duplicate pair surfaces as ErrConflict.
type FollowerRepository interface {
	ListFollowers(ctx context.Context, username string) ([]model.Follower, error)
	GetFollower(ctx context.Context, username, followerUsername string) (*model.Follower, error)
	DeleteFollower(ctx context.Context, username, followerUsername string) error
	// Follow records followerUsername following followedUsername.
	Follow(ctx context.Context, followedUsername, followerUsername string) error
	ListFollowed(ctx context.Context, followerUsername string) ([]model.FollowedUser, error)
	Unfollow(ctx context.Context, followedUsername, followerUsername string) error
}

// BadgeRepository manages the global badge catalogue and per-user awards.
type BadgeRepository interface {
	ListBadges(ctx context.Context) ([]model.Badge, error)
	CreateBadge(ctx context.Context, b *model.Badge) error
	ListUserBadges(ctx context.Context, userID int64) ([]model.UserBadge, error)
	GetUserBadge(ctx context.Context, userID, badgeID int64) (*model.UserBadge, error)
	// AwardBadge gives the badge to the user; a repeat award is ErrConflict.
	AwardBadge(ctx context.Context, ub *model.UserBadge) error
	RemoveUserBadge(ctx context.Context, userID, badgeID int64) error
}

// ReadRepository manages the shared read catalogue, per-user reads, and
// read-to-collection filings.
type ReadRepository interface {
	CreateRead(ctx context.Context, read *model.Read) error
	GetRead(ctx context.Context, id int64) (*model.Read, error)

	AddUserRead(ctx context.Context, ur *model.UserRead) error
	ListUserReads(ctx context.Context, userID int64) ([]model.UserRead, error)
	GetUserRead(ctx context.Context, userID, readID int64) (*model.UserRead, error)
	UpdateUserRead(ctx context.Context, ur *model.UserRead) error
	DeleteUserRead(ctx context.Context, userID, readID int64) error

	// ListReadCollections returns the given user's collections containing
	// the read.
	ListReadCollections(ctx context.Context, userID, readID int64) ([]model.ReadCollection, error)
	AddReadToCollection(ctx context.Context, readID, collectionID int64) (*model.ReadCollection, error)
	RemoveReadFromCollection(ctx context.Context, readID, collectionID int64) error
}
