package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/reads-stash/server/internal/apperror"
	"github.com/reads-stash/server/internal/model"
)

// fakeFollowerRepo keeps follower edges as a set of "followed/follower"
// pair keys.
type fakeFollowerRepo struct {
	edges map[string]bool
}

func newFakeFollowerRepo() *fakeFollowerRepo {
	return &fakeFollowerRepo{edges: make(map[string]bool)}
}

func pairKey(followed, follower string) string {
	return fmt.Sprintf("%s/%s", followed, follower)
}

func (f *fakeFollowerRepo) ListFollowers(ctx context.Context, username string) ([]model.Follower, error) {
	followers := []model.Follower{}
	for key := range f.edges {
		if followed, follower, ok := strings.Cut(key, "/"); ok && followed == username {
			followers = append(followers, model.Follower{Username: followed, FollowerUsername: follower})
		}
	}
	return followers, nil
}

func (f *fakeFollowerRepo) GetFollower(ctx context.Context, username, followerUsername string) (*model.Follower, error) {
	if !f.edges[pairKey(username, followerUsername)] {
		return nil, apperror.NotFound("Follower", followerUsername)
	}
	return &model.Follower{Username: username, FollowerUsername: followerUsername}, nil
}

func (f *fakeFollowerRepo) DeleteFollower(ctx context.Context, username, followerUsername string) error {
	key := pairKey(username, followerUsername)
	if !f.edges[key] {
		return apperror.NotFound("Follower", followerUsername)
	}
	delete(f.edges, key)
	return nil
}

func (f *fakeFollowerRepo) Follow(ctx context.Context, followedUsername, followerUsername string) error {
	key := pairKey(followedUsername, followerUsername)
	if f.edges[key] {
		return apperror.Conflict("Already following " + followedUsername)
	}
	f.edges[key] = true
	return nil
}

func (f *fakeFollowerRepo) ListFollowed(ctx context.Context, followerUsername string) ([]model.FollowedUser, error) {
	return []model.FollowedUser{}, nil
}

func (f *fakeFollowerRepo) Unfollow(ctx context.Context, followedUsername, followerUsername string) error {
	key := pairKey(followedUsername, followerUsername)
	if !f.edges[key] {
		return apperror.NotFound("Followed user", followedUsername)
	}
	delete(f.edges, key)
	return nil
}

func newTestFollowerService(t *testing.T, users *fakeUserRepo) (*FollowerService, *fakeFollowerRepo) {
	t.Helper()
	repo := newFakeFollowerRepo()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewFollowerService(repo, users, logger), repo
}

func TestFollow(t *testing.T) {
	users := newFakeUserRepo()
	alice := &model.User{Username: "alice", FirstName: "Ada"}
	users.Create(context.Background(), alice)
	s, repo := newTestFollowerService(t, users)

	followed, err := s.Follow(context.Background(), alice.ID, "bob")
	if err != nil {
		t.Fatalf("Follow() error = %v", err)
	}

	// The response is the followed user's profile, not the raw edge.
	if followed.Username != "alice" || followed.FirstName != "Ada" {
		t.Errorf("Follow() returned (%q, %q), want alice's profile", followed.Username, followed.FirstName)
	}
	if !repo.edges[pairKey("alice", "bob")] {
		t.Error("Follow() did not record the edge")
	}
}

func TestFollow_SelfIsRejected(t *testing.T) {
	users := newFakeUserRepo()
	alice := &model.User{Username: "alice"}
	users.Create(context.Background(), alice)
	s, _ := newTestFollowerService(t, users)

	_, err := s.Follow(context.Background(), alice.ID, "alice")
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Follow() self error = %v, want ErrValidation", err)
	}
}

func TestFollow_UnknownTargetIsNotFound(t *testing.T) {
	users := newFakeUserRepo()
	s, _ := newTestFollowerService(t, users)

	_, err := s.Follow(context.Background(), 404, "bob")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Follow() unknown target error = %v, want ErrNotFound", err)
	}
}

func TestFollow_RepeatIsConflict(t *testing.T) {
	users := newFakeUserRepo()
	alice := &model.User{Username: "alice"}
	users.Create(context.Background(), alice)
	s, _ := newTestFollowerService(t, users)

	if _, err := s.Follow(context.Background(), alice.ID, "bob"); err != nil {
		t.Fatalf("Follow() error = %v", err)
	}
	if _, err := s.Follow(context.Background(), alice.ID, "bob"); !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("second Follow() error = %v, want ErrConflict", err)
	}
}

func TestUnfollow(t *testing.T) {
	users := newFakeUserRepo()
	alice := &model.User{Username: "alice"}
	users.Create(context.Background(), alice)
	s, repo := newTestFollowerService(t, users)

	if _, err := s.Follow(context.Background(), alice.ID, "bob"); err != nil {
		t.Fatalf("Follow() error = %v", err)
	}
	if err := s.Unfollow(context.Background(), alice.ID, "bob"); err != nil {
		t.Fatalf("Unfollow() error = %v", err)
	}
	if repo.edges[pairKey("alice", "bob")] {
		t.Error("Unfollow() left the edge in place")
	}

	if err := s.Unfollow(context.Background(), alice.ID, "bob"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("second Unfollow() error = %v, want ErrNotFound", err)
	}
}
