package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/reads-stash/server/internal/apperror"
	"github.com/reads-stash/server/internal/model"
	"github.com/reads-stash/server/internal/repository"
)

var _ repository.CollectionRepository = (*DB)(nil)

// CreateCollection inserts a collection for its owner. The owner id on the
// struct comes from the ownership guard, never from the request body.
func (db *DB) CreateCollection(ctx context.Context, c *model.Collection) error {
	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO collections (name, user_id) VALUES (?, ?)`,
		c.Name, c.UserID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating collection for user %d: %w", c.UserID, err)
	}

	c.ID, err = lastInsertID(res)
	if err != nil {
		return fmt.Errorf("sqlite: creating collection for user %d: %w", c.UserID, err)
	}

	return nil
}

// ListCollections returns the owner's collections in insertion order. The
// WHERE clause is the data-layer half of the ownership contract: even if a
// handler bug let a foreign owner id through, the query can only ever see
// rows belonging to userID.
func (db *DB) ListCollections(ctx context.Context, userID int64) ([]model.Collection, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, user_id FROM collections WHERE user_id = ? ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing collections for user %d: %w", userID, err)
	}
	defer rows.Close()

	collections := []model.Collection{}
	for rows.Next() {
		var c model.Collection
		if err := rows.Scan(&c.ID, &c.Name, &c.UserID); err != nil {
			return nil, fmt.Errorf("sqlite: scanning collection row: %w", err)
		}
		collections = append(collections, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating collections: %w", err)
	}

	return collections, nil
}

// GetCollection returns one collection scoped to its owner. A row owned by
// someone else is indistinguishable from a missing row — both are NotFound.
func (db *DB) GetCollection(ctx context.Context, userID, id int64) (*model.Collection, error) {
	var c model.Collection
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, name, user_id FROM collections WHERE id = ? AND user_id = ?`,
		id, userID,
	).Scan(&c.ID, &c.Name, &c.UserID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("Collection", id)
		}
		return nil, fmt.Errorf("sqlite: getting collection %d: %w", id, err)
	}
	return &c, nil
}

// UpdateCollection renames a collection. Only the name is mutable; the
// owner is immutable after creation.
func (db *DB) UpdateCollection(ctx context.Context, c *model.Collection) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE collections SET name = ? WHERE id = ? AND user_id = ?`,
		c.Name, c.ID, c.UserID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating collection %d: %w", c.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("Collection", c.ID)
	}

	return nil
}

// DeleteCollection removes a collection and, via cascade, its read filings.
func (db *DB) DeleteCollection(ctx context.Context, userID, id int64) error {
	res, err := db.conn.ExecContext(ctx,
		`DELETE FROM collections WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting collection %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("Collection", id)
	}

	return nil
}
