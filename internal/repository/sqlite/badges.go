package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/reads-stash/server/internal/apperror"
	"github.com/reads-stash/server/internal/model"
	"github.com/reads-stash/server/internal/repository"
)

var _ repository.BadgeRepository = (*DB)(nil)

// ListBadges returns the global badge catalogue.
func (db *DB) ListBadges(ctx context.Context) ([]model.Badge, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, thumbnail FROM badges ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing badges: %w", err)
	}
	defer rows.Close()

	badges := []model.Badge{}
	for rows.Next() {
		var b model.Badge
		if err := rows.Scan(&b.ID, &b.Name, &b.Thumbnail); err != nil {
			return nil, fmt.Errorf("sqlite: scanning badge row: %w", err)
		}
		badges = append(badges, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating badges: %w", err)
	}

	return badges, nil
}

// CreateBadge adds a badge to the catalogue. Badge names are unique.
func (db *DB) CreateBadge(ctx context.Context, b *model.Badge) error {
	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO badges (name, thumbnail) VALUES (?, ?)`,
		b.Name, b.Thumbnail,
	)
	if err != nil {
		if isUnique(err) {
			return apperror.Conflict(fmt.Sprintf("Badge %q already exists", b.Name))
		}
		return fmt.Errorf("sqlite: creating badge %q: %w", b.Name, err)
	}

	b.ID, err = lastInsertID(res)
	if err != nil {
		return fmt.Errorf("sqlite: creating badge %q: %w", b.Name, err)
	}

	return nil
}

const userBadgeQuery = `
	SELECT ub.id, ub.user_id, ub.badge_id, b.name, b.thumbnail
	FROM users_badges ub
	JOIN badges b ON b.id = ub.badge_id`

// ListUserBadges returns the badges awarded to the user, joined with the
// catalogue fields, in award order.
func (db *DB) ListUserBadges(ctx context.Context, userID int64) ([]model.UserBadge, error) {
	rows, err := db.conn.QueryContext(ctx,
		userBadgeQuery+` WHERE ub.user_id = ? ORDER BY ub.id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing badges for user %d: %w", userID, err)
	}
	defer rows.Close()

	badges := []model.UserBadge{}
	for rows.Next() {
		var ub model.UserBadge
		if err := rows.Scan(&ub.ID, &ub.UserID, &ub.BadgeID, &ub.Name, &ub.Thumbnail); err != nil {
			return nil, fmt.Errorf("sqlite: scanning user badge row: %w", err)
		}
		badges = append(badges, ub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating user badges: %w", err)
	}

	return badges, nil
}

func (db *DB) GetUserBadge(ctx context.Context, userID, badgeID int64) (*model.UserBadge, error) {
	var ub model.UserBadge
	err := db.conn.QueryRowContext(ctx,
		userBadgeQuery+` WHERE ub.user_id = ? AND ub.badge_id = ?`,
		userID, badgeID,
	).Scan(&ub.ID, &ub.UserID, &ub.BadgeID, &ub.Name, &ub.Thumbnail)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("Badge", badgeID)
		}
		return nil, fmt.Errorf("sqlite: getting badge %d for user %d: %w", badgeID, userID, err)
	}
	return &ub, nil
}

// AwardBadge gives the badge to the user. The UNIQUE (user, badge) pair
// makes a repeat award a Conflict. The joined catalogue fields are read
// back so the caller gets the complete row.
func (db *DB) AwardBadge(ctx context.Context, ub *model.UserBadge) error {
	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO users_badges (user_id, badge_id) VALUES (?, ?)`,
		ub.UserID, ub.BadgeID,
	)
	if err != nil {
		if isUnique(err) {
			return apperror.Conflict(fmt.Sprintf("Badge %d already awarded", ub.BadgeID))
		}
		return fmt.Errorf("sqlite: awarding badge %d to user %d: %w", ub.BadgeID, ub.UserID, err)
	}

	ub.ID, err = lastInsertID(res)
	if err != nil {
		return fmt.Errorf("sqlite: awarding badge %d to user %d: %w", ub.BadgeID, ub.UserID, err)
	}

	err = db.conn.QueryRowContext(ctx,
		`SELECT name, thumbnail FROM badges WHERE id = ?`, ub.BadgeID,
	).Scan(&ub.Name, &ub.Thumbnail)
	if err != nil {
		return fmt.Errorf("sqlite: reading badge %d: %w", ub.BadgeID, err)
	}

	return nil
}

func (db *DB) RemoveUserBadge(ctx context.Context, userID, badgeID int64) error {
	res, err := db.conn.ExecContext(ctx,
		`DELETE FROM users_badges WHERE user_id = ? AND badge_id = ?`,
		userID, badgeID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: removing badge %d from user %d: %w", badgeID, userID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("Badge", badgeID)
	}

	return nil
}
