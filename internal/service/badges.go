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

// BadgeService handles the global badge catalogue and per-user awards.
type BadgeService struct {
	badges repository.BadgeRepository
	logger *slog.Logger
}

func NewBadgeService(badges repository.BadgeRepository, logger *slog.Logger) *BadgeService {
	return &BadgeService{badges: badges, logger: logger}
}

// ListCatalogue returns every badge defined in the system.
func (s *BadgeService) ListCatalogue(ctx context.Context) ([]model.Badge, error) {
	badges, err := s.badges.ListBadges(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/badges: listing catalogue: %w", err)
	}
	return badges, nil
}

func (s *BadgeService) CreateBadge(ctx context.Context, b *model.Badge) (*model.Badge, error) {
	if err := s.badges.CreateBadge(ctx, b); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("service/badges: creating badge %q: %w", b.Name, err)
	}

	s.logger.Info("badge created", slog.Int64("badgeID", b.ID), slog.String("name", b.Name))
	return b, nil
}

func (s *BadgeService) ListUserBadges(ctx context.Context, userID int64) ([]model.UserBadge, error) {
	badges, err := s.badges.ListUserBadges(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service/badges: listing for user %d: %w", userID, err)
	}
	return badges, nil
}

func (s *BadgeService) GetUserBadge(ctx context.Context, userID, badgeID int64) (*model.UserBadge, error) {
	ub, err := s.badges.GetUserBadge(ctx, userID, badgeID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("service/badges: getting badge %d for user %d: %w", badgeID, userID, err)
	}
	return ub, nil
}

// Award gives a catalogue badge to the user. A repeat award is a Conflict.
func (s *BadgeService) Award(ctx context.Context, ub *model.UserBadge) (*model.UserBadge, error) {
	if err := s.badges.AwardBadge(ctx, ub); err != nil {
		if errors.Is(err, apperror.ErrNotFound) || errors.Is(err, apperror.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("service/badges: awarding badge %d to user %d: %w", ub.BadgeID, ub.UserID, err)
	}

	s.logger.Info("badge awarded",
		slog.Int64("badgeID", ub.BadgeID),
		slog.Int64("userID", ub.UserID),
	)
	return ub, nil
}

func (s *BadgeService) Remove(ctx context.Context, userID, badgeID int64) error {
	if err := s.badges.RemoveUserBadge(ctx, userID, badgeID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return err
		}
		return fmt.Errorf("service/badges: removing badge %d from user %d: %w", badgeID, userID, err)
	}
	return nil
}
