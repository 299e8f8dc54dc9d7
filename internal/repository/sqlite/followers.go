package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/reads-stash/server/internal/apperror"
	"github.com/reads-stash/server/internal/model"
	"github.com/reads-stash/server/internal/repository"
)

var _ repository.FollowerRepository = (*DB)(nil)

// followerColumns joins the edge with the follower's public profile. The
// edge itself is just the username pair; everything shown to the client
// about a follower comes from their users row.
const followerQuery = `
	SELECT uf.user_username, uf.follower_username,
	       u.fname, u.lname, u.email, u.exp, u.total_books, u.total_pages
	FROM users_followers uf
	JOIN users u ON u.username = uf.follower_username`

// ListFollowers returns everyone following the given username, each joined
// with their public profile, in insertion order.
func (db *DB) ListFollowers(ctx context.Context, username string) ([]model.Follower, error) {
	rows, err := db.conn.QueryContext(ctx,
		followerQuery+` WHERE uf.user_username = ? ORDER BY uf.rowid`,
		username,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing followers of %q: %w", username, err)
	}
	defer rows.Close()

	followers := []model.Follower{}
	for rows.Next() {
		var f model.Follower
		if err := rows.Scan(
			&f.Username, &f.FollowerUsername,
			&f.FirstName, &f.LastName, &f.Email,
			&f.Exp, &f.TotalBooks, &f.TotalPages,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning follower row: %w", err)
		}
		followers = append(followers, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating followers: %w", err)
	}

	return followers, nil
}

// GetFollower returns one edge by its composite (followed, follower) pair —
// follower edges have no surrogate id to look up by.
func (db *DB) GetFollower(ctx context.Context, username, followerUsername string) (*model.Follower, error) {
	var f model.Follower
	err := db.conn.QueryRowContext(ctx,
		followerQuery+` WHERE uf.user_username = ? AND uf.follower_username = ?`,
		username, followerUsername,
	).Scan(
		&f.Username, &f.FollowerUsername,
		&f.FirstName, &f.LastName, &f.Email,
		&f.Exp, &f.TotalBooks, &f.TotalPages,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("Follower", followerUsername)
		}
		return nil, fmt.Errorf("sqlite: getting follower %q of %q: %w", followerUsername, username, err)
	}
	return &f, nil
}

// DeleteFollower removes a follower edge by its pair.
func (db *DB) DeleteFollower(ctx context.Context, username, followerUsername string) error {
	res, err := db.conn.ExecContext(ctx,
		`DELETE FROM users_followers WHERE user_username = ? AND follower_username = ?`,
		username, followerUsername,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting follower %q of %q: %w", followerUsername, username, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("Follower", followerUsername)
	}

	return nil
}

// Follow records followerUsername following followedUsername. The UNIQUE
// constraint on the pair makes a repeat follow a Conflict rather than a
// duplicate row.
func (db *DB) Follow(ctx context.Context, followedUsername, followerUsername string) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO users_followers (user_username, follower_username) VALUES (?, ?)`,
		followedUsername, followerUsername,
	)
	if err != nil {
		if isUnique(err) {
			return apperror.Conflict(fmt.Sprintf("Already following %s", followedUsername))
		}
		return fmt.Errorf("sqlite: following %q as %q: %w", followedUsername, followerUsername, err)
	}
	return nil
}

// ListFollowed returns the users the given username follows, joined with
// the followed user's public profile.
func (db *DB) ListFollowed(ctx context.Context, followerUsername string) ([]model.FollowedUser, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT u.id, u.username, u.fname, u.lname, u.email, u.exp, u.total_books, u.total_pages
		 FROM users_followers uf
		 JOIN users u ON u.username = uf.user_username
		 WHERE uf.follower_username = ?
		 ORDER BY uf.rowid`,
		followerUsername,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing followed users of %q: %w", followerUsername, err)
	}
	defer rows.Close()

	followed := []model.FollowedUser{}
	for rows.Next() {
		var f model.FollowedUser
		if err := rows.Scan(
			&f.ID, &f.Username, &f.FirstName, &f.LastName, &f.Email,
			&f.Exp, &f.TotalBooks, &f.TotalPages,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning followed row: %w", err)
		}
		followed = append(followed, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating followed users: %w", err)
	}

	return followed, nil
}

// Unfollow removes the outbound edge.
func (db *DB) Unfollow(ctx context.Context, followedUsername, followerUsername string) error {
	res, err := db.conn.ExecContext(ctx,
		`DELETE FROM users_followers WHERE user_username = ? AND follower_username = ?`,
		followedUsername, followerUsername,
	)
	if err != nil {
		return fmt.Errorf("sqlite: unfollowing %q as %q: %w", followedUsername, followerUsername, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("Followed user", followedUsername)
	}

	return nil
}
