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

// UserService handles account reads and profile updates.
type UserService struct {
	users  repository.UserRepository
	logger *slog.Logger
}

func NewUserService(users repository.UserRepository, logger *slog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// List returns every account's public profile.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/users: listing users: %w", err)
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("service/users: getting user %d: %w", id, err)
	}
	return user, nil
}

// Update rewrites the profile fields of an existing account. Username and id
// are immutable; the handler never passes them from the request body.
func (s *UserService) Update(ctx context.Context, user *model.User) (*model.User, error) {
	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrNotFound) || errors.Is(err, apperror.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("service/users: updating user %d: %w", user.ID, err)
	}

	updated, err := s.users.GetByID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("service/users: reading back user %d: %w", user.ID, err)
	}
	return updated, nil
}

// Delete removes the account. Owned rows go with it via ON DELETE CASCADE.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return err
		}
		return fmt.Errorf("service/users: deleting user %d: %w", id, err)
	}

	s.logger.Info("user deleted", slog.Int64("userID", id))
	return nil
}
