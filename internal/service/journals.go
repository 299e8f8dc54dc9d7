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

// JournalService handles a user's journal entries.
type JournalService struct {
	journals repository.JournalRepository
	logger   *slog.Logger
}

func NewJournalService(journals repository.JournalRepository, logger *slog.Logger) *JournalService {
	return &JournalService{journals: journals, logger: logger}
}

func (s *JournalService) List(ctx context.Context, userID int64) ([]model.Journal, error) {
	journals, err := s.journals.ListJournals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service/journals: listing for user %d: %w", userID, err)
	}
	return journals, nil
}

func (s *JournalService) Get(ctx context.Context, userID, id int64) (*model.Journal, error) {
	j, err := s.journals.GetJournal(ctx, userID, id)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("service/journals: getting %d: %w", id, err)
	}
	return j, nil
}

func (s *JournalService) Create(ctx context.Context, j *model.Journal) (*model.Journal, error) {
	if err := s.journals.CreateJournal(ctx, j); err != nil {
		return nil, fmt.Errorf("service/journals: creating for user %d: %w", j.UserID, err)
	}

	s.logger.Info("journal created",
		slog.Int64("journalID", j.ID),
		slog.Int64("userID", j.UserID),
	)
	return j, nil
}

func (s *JournalService) Update(ctx context.Context, j *model.Journal) (*model.Journal, error) {
	if err := s.journals.UpdateJournal(ctx, j); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("service/journals: updating %d: %w", j.ID, err)
	}
	return j, nil
}

func (s *JournalService) Delete(ctx context.Context, userID, id int64) error {
	if err := s.journals.DeleteJournal(ctx, userID, id); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return err
		}
		return fmt.Errorf("service/journals: deleting %d: %w", id, err)
	}
	return nil
}
