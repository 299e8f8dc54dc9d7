package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/reads-stash/server/internal/apperror"
	"github.com/reads-stash/server/internal/model"
	"github.com/reads-stash/server/internal/repository"
)

var _ repository.RecommendationRepository = (*DB)(nil)

// CreateRecommendation inserts a recommendation. The sender id on the
// struct is always the guard-verified principal.
func (db *DB) CreateRecommendation(ctx context.Context, rec *model.Recommendation) error {
	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO recommendations (recommendation, sender_id, receiver_id) VALUES (?, ?, ?)`,
		rec.Recommendation, rec.SenderID, rec.ReceiverID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating recommendation from user %d: %w", rec.SenderID, err)
	}

	rec.ID, err = lastInsertID(res)
	if err != nil {
		return fmt.Errorf("sqlite: creating recommendation from user %d: %w", rec.SenderID, err)
	}

	return nil
}

// ListRecommendations returns the union: rows where the user is sender OR
// receiver, in insertion order. A recommendation between two other users is
// never visible here.
func (db *DB) ListRecommendations(ctx context.Context, userID int64) ([]model.Recommendation, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, recommendation, sender_id, receiver_id
		 FROM recommendations
		 WHERE sender_id = ? OR receiver_id = ?
		 ORDER BY id`,
		userID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing recommendations for user %d: %w", userID, err)
	}
	defer rows.Close()

	recs := []model.Recommendation{}
	for rows.Next() {
		var rec model.Recommendation
		if err := rows.Scan(&rec.ID, &rec.Recommendation, &rec.SenderID, &rec.ReceiverID); err != nil {
			return nil, fmt.Errorf("sqlite: scanning recommendation row: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating recommendations: %w", err)
	}

	return recs, nil
}

// GetRecommendation returns one recommendation, visible iff the user is a
// participant.
func (db *DB) GetRecommendation(ctx context.Context, userID, id int64) (*model.Recommendation, error) {
	var rec model.Recommendation
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, recommendation, sender_id, receiver_id
		 FROM recommendations
		 WHERE id = ? AND (sender_id = ? OR receiver_id = ?)`,
		id, userID, userID,
	).Scan(&rec.ID, &rec.Recommendation, &rec.SenderID, &rec.ReceiverID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("Recommendation", id)
		}
		return nil, fmt.Errorf("sqlite: getting recommendation %d: %w", id, err)
	}
	return &rec, nil
}

// DeleteRecommendation removes a recommendation; either participant may do
// so. Membership is immutable, so there is no update counterpart.
func (db *DB) DeleteRecommendation(ctx context.Context, userID, id int64) error {
	res, err := db.conn.ExecContext(ctx,
		`DELETE FROM recommendations WHERE id = ? AND (sender_id = ? OR receiver_id = ?)`,
		id, userID, userID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting recommendation %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("Recommendation", id)
	}

	return nil
}
