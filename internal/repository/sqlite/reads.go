package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/reads-stash/server/internal/apperror"
	"github.com/reads-stash/server/internal/model"
	"github.com/reads-stash/server/internal/repository"
)

var _ repository.ReadRepository = (*DB)(nil)

// CreateRead adds a book to the shared catalogue. ISBN is unique — the same
// book stashed by two users is still one catalogue row.
func (db *DB) CreateRead(ctx context.Context, read *model.Read) error {
	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO reads (title, isbn, description, avg_rating, print_type, publisher)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		read.Title, read.ISBN, read.Description, read.AvgRating, read.PrintType, read.Publisher,
	)
	if err != nil {
		if isUnique(err) {
			return apperror.Conflict(fmt.Sprintf("Read with ISBN %s already exists", read.ISBN))
		}
		return fmt.Errorf("sqlite: creating read %q: %w", read.Title, err)
	}

	read.ID, err = lastInsertID(res)
	if err != nil {
		return fmt.Errorf("sqlite: creating read %q: %w", read.Title, err)
	}

	return nil
}

func (db *DB) GetRead(ctx context.Context, id int64) (*model.Read, error) {
	var r model.Read
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, title, isbn, description, avg_rating, print_type, publisher
		 FROM reads WHERE id = ?`,
		id,
	).Scan(&r.ID, &r.Title, &r.ISBN, &r.Description, &r.AvgRating, &r.PrintType, &r.Publisher)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("Read", id)
		}
		return nil, fmt.Errorf("sqlite: getting read %d: %w", id, err)
	}
	return &r, nil
}

const userReadQuery = `
	SELECT ur.id, ur.user_id, ur.read_id, ur.rating, ur.review_text, ur.review_date,
	       r.title, r.isbn, r.description, r.avg_rating, r.print_type, r.publisher
	FROM users_reads ur
	JOIN reads r ON r.id = ur.read_id`

// AddUserRead stashes a catalogue read for a user. The UNIQUE (user, read)
// pair means stashing the same book twice is a Conflict. The catalogue
// fields are read back so the caller gets the complete joined row.
func (db *DB) AddUserRead(ctx context.Context, ur *model.UserRead) error {
	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO users_reads (rating, review_text, review_date, user_id, read_id)
		 VALUES (?, ?, ?, ?, ?)`,
		ur.Rating, ur.ReviewText, ur.ReviewDate, ur.UserID, ur.ReadID,
	)
	if err != nil {
		if isUnique(err) {
			return apperror.Conflict(fmt.Sprintf("Read %d already stashed", ur.ReadID))
		}
		return fmt.Errorf("sqlite: stashing read %d for user %d: %w", ur.ReadID, ur.UserID, err)
	}

	ur.ID, err = lastInsertID(res)
	if err != nil {
		return fmt.Errorf("sqlite: stashing read %d for user %d: %w", ur.ReadID, ur.UserID, err)
	}

	err = db.conn.QueryRowContext(ctx,
		`SELECT title, isbn, description, avg_rating, print_type, publisher FROM reads WHERE id = ?`,
		ur.ReadID,
	).Scan(&ur.Title, &ur.ISBN, &ur.Description, &ur.AvgRating, &ur.PrintType, &ur.Publisher)
	if err != nil {
		return fmt.Errorf("sqlite: reading catalogue row %d: %w", ur.ReadID, err)
	}

	return nil
}

// ListUserReads returns the user's stashed reads joined with the catalogue,
// in stash order.
func (db *DB) ListUserReads(ctx context.Context, userID int64) ([]model.UserRead, error) {
	rows, err := db.conn.QueryContext(ctx,
		userReadQuery+` WHERE ur.user_id = ? ORDER BY ur.id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing reads for user %d: %w", userID, err)
	}
	defer rows.Close()

	reads := []model.UserRead{}
	for rows.Next() {
		var ur model.UserRead
		if err := scanUserRead(rows, &ur); err != nil {
			return nil, fmt.Errorf("sqlite: scanning user read row: %w", err)
		}
		reads = append(reads, ur)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating user reads: %w", err)
	}

	return reads, nil
}

func (db *DB) GetUserRead(ctx context.Context, userID, readID int64) (*model.UserRead, error) {
	var ur model.UserRead
	err := scanUserRead(db.conn.QueryRowContext(ctx,
		userReadQuery+` WHERE ur.user_id = ? AND ur.read_id = ?`,
		userID, readID,
	), &ur)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("Read", readID)
		}
		return nil, fmt.Errorf("sqlite: getting read %d for user %d: %w", readID, userID, err)
	}
	return &ur, nil
}

// UpdateUserRead rewrites the user's rating and review for a stashed read.
// The user/read pair is immutable.
func (db *DB) UpdateUserRead(ctx context.Context, ur *model.UserRead) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE users_reads SET rating = ?, review_text = ?, review_date = ?
		 WHERE user_id = ? AND read_id = ?`,
		ur.Rating, ur.ReviewText, ur.ReviewDate, ur.UserID, ur.ReadID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating read %d for user %d: %w", ur.ReadID, ur.UserID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("Read", ur.ReadID)
	}

	return nil
}

func (db *DB) DeleteUserRead(ctx context.Context, userID, readID int64) error {
	res, err := db.conn.ExecContext(ctx,
		`DELETE FROM users_reads WHERE user_id = ? AND read_id = ?`,
		userID, readID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting read %d for user %d: %w", readID, userID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("Read", readID)
	}

	return nil
}

// ListReadCollections returns the given user's collections containing the
// read. The join through collections scopes the result to that user — other
// users' filings of the same read are invisible.
func (db *DB) ListReadCollections(ctx context.Context, userID, readID int64) ([]model.ReadCollection, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT rc.id, rc.read_id, rc.collection_id, c.name
		 FROM reads_collections rc
		 JOIN collections c ON c.id = rc.collection_id
		 WHERE rc.read_id = ? AND c.user_id = ?
		 ORDER BY rc.id`,
		readID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing collections for read %d: %w", readID, err)
	}
	defer rows.Close()

	filings := []model.ReadCollection{}
	for rows.Next() {
		var rc model.ReadCollection
		if err := rows.Scan(&rc.ID, &rc.ReadID, &rc.CollectionID, &rc.CollectionName); err != nil {
			return nil, fmt.Errorf("sqlite: scanning read collection row: %w", err)
		}
		filings = append(filings, rc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating read collections: %w", err)
	}

	return filings, nil
}

// AddReadToCollection files a read into a collection. The caller has already
// verified the collection belongs to the principal.
func (db *DB) AddReadToCollection(ctx context.Context, readID, collectionID int64) (*model.ReadCollection, error) {
	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO reads_collections (read_id, collection_id) VALUES (?, ?)`,
		readID, collectionID,
	)
	if err != nil {
		if isUnique(err) {
			return nil, apperror.Conflict(fmt.Sprintf("Read %d already in collection %d", readID, collectionID))
		}
		return nil, fmt.Errorf("sqlite: filing read %d into collection %d: %w", readID, collectionID, err)
	}

	rc := &model.ReadCollection{ReadID: readID, CollectionID: collectionID}
	rc.ID, err = lastInsertID(res)
	if err != nil {
		return nil, fmt.Errorf("sqlite: filing read %d into collection %d: %w", readID, collectionID, err)
	}

	err = db.conn.QueryRowContext(ctx,
		`SELECT name FROM collections WHERE id = ?`, collectionID,
	).Scan(&rc.CollectionName)
	if err != nil {
		return nil, fmt.Errorf("sqlite: reading collection %d: %w", collectionID, err)
	}

	return rc, nil
}

func (db *DB) RemoveReadFromCollection(ctx context.Context, readID, collectionID int64) error {
	res, err := db.conn.ExecContext(ctx,
		`DELETE FROM reads_collections WHERE read_id = ? AND collection_id = ?`,
		readID, collectionID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: removing read %d from collection %d: %w", readID, collectionID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("Read", readID)
	}

	return nil
}

// scanUserRead handles the NULLable rating/review columns via sql.Null
// types and converts them to the model's pointer fields.
func scanUserRead(s scanner, ur *model.UserRead) error {
	var (
		rating     sql.NullInt64
		reviewText sql.NullString
		reviewDate sql.NullTime
	)

	err := s.Scan(
		&ur.ID, &ur.UserID, &ur.ReadID, &rating, &reviewText, &reviewDate,
		&ur.Title, &ur.ISBN, &ur.Description, &ur.AvgRating, &ur.PrintType, &ur.Publisher,
	)
	if err != nil {
		return err
	}

	if rating.Valid {
		ur.Rating = &rating.Int64
	}
	if reviewText.Valid {
		ur.ReviewText = &reviewText.String
	}
	if reviewDate.Valid {
		ur.ReviewDate = &reviewDate.Time
	}

	return nil
}
