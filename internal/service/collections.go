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

// CollectionService handles a user's collections. Every operation is scoped
// to the owner id the handler verified against the token.
type CollectionService struct {
	collections repository.CollectionRepository
	logger      *slog.Logger
}

func NewCollectionService(collections repository.CollectionRepository, logger *slog.Logger) *CollectionService {
	return &CollectionService{collections: collections, logger: logger}
}

func (s *CollectionService) List(ctx context.Context, userID int64) ([]model.Collection, error) {
	collections, err := s.collections.ListCollections(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service/collections: listing for user %d: %w", userID, err)
	}
	return collections, nil
}

func (s *CollectionService) Get(ctx context.Context, userID, id int64) (*model.Collection, error) {
	c, err := s.collections.GetCollection(ctx, userID, id)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("service/collections: getting %d: %w", id, err)
	}
	return c, nil
}

func (s *CollectionService) Create(ctx context.Context, c *model.Collection) (*model.Collection, error) {
	if err := s.collections.CreateCollection(ctx, c); err != nil {
		return nil, fmt.Errorf("service/collections: creating for user %d: %w", c.UserID, err)
	}

	s.logger.Info("collection created",
		slog.Int64("collectionID", c.ID),
		slog.Int64("userID", c.UserID),
	)
	return c, nil
}

func (s *CollectionService) Update(ctx context.Context, c *model.Collection) (*model.Collection, error) {
	if err := s.collections.UpdateCollection(ctx, c); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("service/collections: updating %d: %w", c.ID, err)
	}
	return c, nil
}

func (s *CollectionService) Delete(ctx context.Context, userID, id int64) error {
	if err := s.collections.DeleteCollection(ctx, userID, id); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return err
		}
		return fmt.Errorf("service/collections: deleting %d: %w", id, err)
	}
	return nil
}
