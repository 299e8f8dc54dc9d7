package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/reads-stash/server/internal/apperror"
	"github.com/reads-stash/server/internal/model"
	"github.com/reads-stash/server/internal/repository"
)

var _ repository.JournalRepository = (*DB)(nil)

// CreateJournal inserts a journal entry for its owner. A zero Date defaults
// to now.
func (db *DB) CreateJournal(ctx context.Context, j *model.Journal) error {
	if j.Date.IsZero() {
		j.Date = time.Now().UTC()
	}

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO journals (title, text, date, user_id) VALUES (?, ?, ?, ?)`,
		j.Title, j.Text, j.Date, j.UserID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating journal for user %d: %w", j.UserID, err)
	}

	j.ID, err = lastInsertID(res)
	if err != nil {
		return fmt.Errorf("sqlite: creating journal for user %d: %w", j.UserID, err)
	}

	return nil
}

// ListJournals returns the owner's journal entries in insertion order.
func (db *DB) ListJournals(ctx context.Context, userID int64) ([]model.Journal, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, title, text, date, user_id FROM journals WHERE user_id = ? ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing journals for user %d: %w", userID, err)
	}
	defer rows.Close()

	journals := []model.Journal{}
	for rows.Next() {
		var j model.Journal
		if err := rows.Scan(&j.ID, &j.Title, &j.Text, &j.Date, &j.UserID); err != nil {
			return nil, fmt.Errorf("sqlite: scanning journal row: %w", err)
		}
		journals = append(journals, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating journals: %w", err)
	}

	return journals, nil
}

func (db *DB) GetJournal(ctx context.Context, userID, id int64) (*model.Journal, error) {
	var j model.Journal
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, title, text, date, user_id FROM journals WHERE id = ? AND user_id = ?`,
		id, userID,
	).Scan(&j.ID, &j.Title, &j.Text, &j.Date, &j.UserID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("Journal", id)
		}
		return nil, fmt.Errorf("sqlite: getting journal %d: %w", id, err)
	}
	return &j, nil
}

// UpdateJournal rewrites title, text, and date. Owner and id are immutable.
func (db *DB) UpdateJournal(ctx context.Context, j *model.Journal) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE journals SET title = ?, text = ?, date = ? WHERE id = ? AND user_id = ?`,
		j.Title, j.Text, j.Date, j.ID, j.UserID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating journal %d: %w", j.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("Journal", j.ID)
	}

	return nil
}

func (db *DB) DeleteJournal(ctx context.Context, userID, id int64) error {
	res, err := db.conn.ExecContext(ctx,
		`DELETE FROM journals WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting journal %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("Journal", id)
	}

	return nil
}
