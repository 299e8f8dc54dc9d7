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

// RecommendationService handles recommendations between users. Visibility is
// the participant union: the repository only surfaces rows where the caller
// is sender or receiver.
type RecommendationService struct {
	recommendations repository.RecommendationRepository
	users           repository.UserRepository
	logger          *slog.Logger
}

func NewRecommendationService(
	recommendations repository.RecommendationRepository,
	users repository.UserRepository,
	logger *slog.Logger,
) *RecommendationService {
	return &RecommendationService{
		recommendations: recommendations,
		users:           users,
		logger:          logger,
	}
}

func (s *RecommendationService) List(ctx context.Context, userID int64) ([]model.Recommendation, error) {
	recs, err := s.recommendations.ListRecommendations(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service/recommendations: listing for user %d: %w", userID, err)
	}
	return recs, nil
}

func (s *RecommendationService) Get(ctx context.Context, userID, id int64) (*model.Recommendation, error) {
	rec, err := s.recommendations.GetRecommendation(ctx, userID, id)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("service/recommendations: getting %d: %w", id, err)
	}
	return rec, nil
}

// Create sends a recommendation. The sender id is always the verified
// principal; the receiver must be an existing account.
func (s *RecommendationService) Create(ctx context.Context, rec *model.Recommendation) (*model.Recommendation, error) {
	if _, err := s.users.GetByID(ctx, rec.ReceiverID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("service/recommendations: checking receiver %d: %w", rec.ReceiverID, err)
	}

	if err := s.recommendations.CreateRecommendation(ctx, rec); err != nil {
		return nil, fmt.Errorf("service/recommendations: creating from user %d: %w", rec.SenderID, err)
	}

	s.logger.Info("recommendation sent",
		slog.Int64("recommendationID", rec.ID),
		slog.Int64("senderID", rec.SenderID),
		slog.Int64("receiverID", rec.ReceiverID),
	)
	return rec, nil
}

// Delete removes a recommendation; either participant may do so.
func (s *RecommendationService) Delete(ctx context.Context, userID, id int64) error {
	if err := s.recommendations.DeleteRecommendation(ctx, userID, id); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return err
		}
		return fmt.Errorf("service/recommendations: deleting %d: %w", id, err)
	}
	return nil
}
