package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/reads-stash/server/internal/apperror"
	"github.com/reads-stash/server/internal/model"
	"github.com/reads-stash/server/internal/repository"
)

// FollowerService handles both directions of the follower edge: who follows
// a user (followers) and whom a user follows (followed). Edges are keyed by
// the username pair, not a surrogate id.
type FollowerService struct {
	followers repository.FollowerRepository
	users     repository.UserRepository
	logger    *slog.Logger
}

func NewFollowerService(
	followers repository.FollowerRepository,
	users repository.UserRepository,
	logger *slog.Logger,
) *FollowerService {
	return &FollowerService{followers: followers, users: users, logger: logger}
}

func (s *FollowerService) ListFollowers(ctx context.Context, username string) ([]model.Follower, error) {
	followers, err := s.followers.ListFollowers(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("service/followers: listing followers of %q: %w", username, err)
	}
	return followers, nil
}

func (s *FollowerService) GetFollower(ctx context.Context, username, followerUsername string) (*model.Follower, error) {
	f, err := s.followers.GetFollower(ctx, username, followerUsername)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("service/followers: getting follower %q of %q: %w", followerUsername, username, err)
	}
	return f, nil
}

// RemoveFollower deletes an inbound edge: the caller stops followerUsername
// from following them.
func (s *FollowerService) RemoveFollower(ctx context.Context, username, followerUsername string) error {
	if err := s.followers.DeleteFollower(ctx, username, followerUsername); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return err
		}
		return fmt.Errorf("service/followers: removing follower %q of %q: %w", followerUsername, username, err)
	}
	return nil
}

func (s *FollowerService) ListFollowed(ctx context.Context, followerUsername string) ([]model.FollowedUser, error) {
	followed, err := s.followers.ListFollowed(ctx, followerUsername)
	if err != nil {
		return nil, fmt.Errorf("service/followers: listing followed users of %q: %w", followerUsername, err)
	}
	return followed, nil
}

// Follow records the caller following the account with id followedID. The
// edge table is keyed by usernames, so the target is resolved first — which
// also turns what would be a foreign-key failure into a NotFound. Following
// yourself is rejected, and a repeat follow surfaces as a Conflict from the
// unique pair constraint.
func (s *FollowerService) Follow(ctx context.Context, followedID int64, followerUsername string) (*model.FollowedUser, error) {
	target, err := s.users.GetByID(ctx, followedID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("service/followers: checking user %d: %w", followedID, err)
	}

	if target.Username == followerUsername {
		return nil, apperror.BadRequest("Cannot follow yourself")
	}

	if err := s.followers.Follow(ctx, target.Username, followerUsername); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("service/followers: following %q as %q: %w", target.Username, followerUsername, err)
	}

	s.logger.Info("user followed",
		slog.String("followed", target.Username),
		slog.String("follower", followerUsername),
	)

	return &model.FollowedUser{
		ID:         target.ID,
		Username:   target.Username,
		FirstName:  target.FirstName,
		LastName:   target.LastName,
		Email:      target.Email,
		Exp:        target.Exp,
		TotalBooks: target.TotalBooks,
		TotalPages: target.TotalPages,
	}, nil
}

// Unfollow removes the caller's outbound edge to the account with id
// followedID.
func (s *FollowerService) Unfollow(ctx context.Context, followedID int64, followerUsername string) error {
	target, err := s.users.GetByID(ctx, followedID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return err
		}
		return fmt.Errorf("service/followers: checking user %d: %w", followedID, err)
	}

	if err := s.followers.Unfollow(ctx, target.Username, followerUsername); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return err
		}
		return fmt.Errorf("service/followers: unfollowing %q as %q: %w", target.Username, followerUsername, err)
	}
	return nil
}
