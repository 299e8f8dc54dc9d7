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

// ReadService handles the shared read catalogue, each user's stashed reads,
// and the filing of reads into collections.
type ReadService struct {
	reads       repository.ReadRepository
	collections repository.CollectionRepository
	logger      *slog.Logger
}

func NewReadService(
	reads repository.ReadRepository,
	collections repository.CollectionRepository,
	logger *slog.Logger,
) *ReadService {
	return &ReadService{reads: reads, collections: collections, logger: logger}
}

// CreateRead adds a book to the shared catalogue. A duplicate ISBN is a
// Conflict — the catalogue holds one row per book regardless of who adds it.
func (s *ReadService) CreateRead(ctx context.Context, read *model.Read) (*model.Read, error) {
	if err := s.reads.CreateRead(ctx, read); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("service/reads: creating read %q: %w", read.Title, err)
	}

	s.logger.Info("read added to catalogue",
		slog.Int64("readID", read.ID),
		slog.String("isbn", read.ISBN),
	)
	return read, nil
}

func (s *ReadService) GetRead(ctx context.Context, id int64) (*model.Read, error) {
	read, err := s.reads.GetRead(ctx, id)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("service/reads: getting read %d: %w", id, err)
	}
	return read, nil
}

// Stash links a catalogue read to the user, optionally with an initial
// rating and review. The read must exist; stashing it twice is a Conflict.
func (s *ReadService) Stash(ctx context.Context, ur *model.UserRead) (*model.UserRead, error) {
	if _, err := s.reads.GetRead(ctx, ur.ReadID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("service/reads: checking read %d: %w", ur.ReadID, err)
	}

	if err := s.reads.AddUserRead(ctx, ur); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("service/reads: stashing read %d for user %d: %w", ur.ReadID, ur.UserID, err)
	}

	s.logger.Info("read stashed",
		slog.Int64("readID", ur.ReadID),
		slog.Int64("userID", ur.UserID),
	)
	return ur, nil
}

func (s *ReadService) ListUserReads(ctx context.Context, userID int64) ([]model.UserRead, error) {
	reads, err := s.reads.ListUserReads(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service/reads: listing for user %d: %w", userID, err)
	}
	return reads, nil
}

func (s *ReadService) GetUserRead(ctx context.Context, userID, readID int64) (*model.UserRead, error) {
	ur, err := s.reads.GetUserRead(ctx, userID, readID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("service/reads: getting read %d for user %d: %w", readID, userID, err)
	}
	return ur, nil
}

// UpdateUserRead rewrites the rating and review, then reads the joined row
// back so the response carries the catalogue fields.
func (s *ReadService) UpdateUserRead(ctx context.Context, ur *model.UserRead) (*model.UserRead, error) {
	if err := s.reads.UpdateUserRead(ctx, ur); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("service/reads: updating read %d for user %d: %w", ur.ReadID, ur.UserID, err)
	}

	updated, err := s.reads.GetUserRead(ctx, ur.UserID, ur.ReadID)
	if err != nil {
		return nil, fmt.Errorf("service/reads: reading back read %d for user %d: %w", ur.ReadID, ur.UserID, err)
	}
	return updated, nil
}

func (s *ReadService) DeleteUserRead(ctx context.Context, userID, readID int64) error {
	if err := s.reads.DeleteUserRead(ctx, userID, readID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return err
		}
		return fmt.Errorf("service/reads: deleting read %d for user %d: %w", readID, userID, err)
	}
	return nil
}

// ListReadCollections returns the principal's collections containing the
// read. Other users' filings of the same catalogue row stay invisible.
func (s *ReadService) ListReadCollections(ctx context.Context, userID, readID int64) ([]model.ReadCollection, error) {
	filings, err := s.reads.ListReadCollections(ctx, userID, readID)
	if err != nil {
		return nil, fmt.Errorf("service/reads: listing collections for read %d: %w", readID, err)
	}
	return filings, nil
}

// FileIntoCollection files a read into one of the principal's collections.
// The collection lookup is scoped to the caller, so filing into another
// user's collection is a NotFound before the insert is ever attempted.
func (s *ReadService) FileIntoCollection(ctx context.Context, userID, readID, collectionID int64) (*model.ReadCollection, error) {
	if _, err := s.collections.GetCollection(ctx, userID, collectionID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("service/reads: checking collection %d: %w", collectionID, err)
	}
	if _, err := s.reads.GetRead(ctx, readID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("service/reads: checking read %d: %w", readID, err)
	}

	rc, err := s.reads.AddReadToCollection(ctx, readID, collectionID)
	if err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("service/reads: filing read %d into collection %d: %w", readID, collectionID, err)
	}
	return rc, nil
}

// RemoveFromCollection unfiles a read from one of the principal's
// collections. The ownership check mirrors FileIntoCollection.
func (s *ReadService) RemoveFromCollection(ctx context.Context, userID, readID, collectionID int64) error {
	if _, err := s.collections.GetCollection(ctx, userID, collectionID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return err
		}
		return fmt.Errorf("service/reads: checking collection %d: %w", collectionID, err)
	}

	if err := s.reads.RemoveReadFromCollection(ctx, readID, collectionID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return err
		}
		return fmt.Errorf("service/reads: removing read %d from collection %d: %w", readID, collectionID, err)
	}
	return nil
}
