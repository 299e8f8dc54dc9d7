package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/reads-stash/server/internal/apperror"
	"github.com/reads-stash/server/internal/model"
	"github.com/reads-stash/server/internal/repository"
)

// Compile-time check that *DB implements repository.UserRepository.
var _ repository.UserRepository = (*DB)(nil)

// publicColumns is the profile projection — everything except the password
// hash. Only GetByUsernameForLogin selects the hash.
const publicColumns = "id, username, fname, lname, email, exp, total_books, total_pages"

// Create inserts a new user. The id is assigned by the database and written
// back onto the struct.
//
// Registration relies on the UNIQUE constraint on username as its
// concurrency-safety mechanism: two simultaneous registrations with the
// same name race at the INSERT, and exactly one of them receives the
// constraint violation — no check-then-insert window.
func (db *DB) Create(ctx context.Context, user *model.User) error {
	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (username, fname, lname, email, password)
		 VALUES (?, ?, ?, ?, ?)`,
		user.Username,
		user.FirstName,
		user.LastName,
		user.Email,
		user.PasswordHash,
	)
	if err != nil {
		if isUnique(err) {
			return apperror.Conflict("Username taken. Please pick another.")
		}
		return fmt.Errorf("sqlite: creating user %q: %w", user.Username, err)
	}

	user.ID, err = lastInsertID(res)
	if err != nil {
		return fmt.Errorf("sqlite: creating user %q: %w", user.Username, err)
	}

	return nil
}

// GetAll returns every user's public profile.
func (db *DB) GetAll(ctx context.Context) ([]model.User, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+publicColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := scanUser(rows, &u); err != nil {
			return nil, fmt.Errorf("sqlite: scanning user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating users: %w", err)
	}

	return users, nil
}

// GetByID returns one user's public profile.
func (db *DB) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	err := scanUser(db.conn.QueryRowContext(ctx,
		`SELECT `+publicColumns+` FROM users WHERE id = ?`, id), &u)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("User", id)
		}
		return nil, fmt.Errorf("sqlite: getting user %d: %w", id, err)
	}
	return &u, nil
}

// GetByUsernameForLogin returns a user's profile plus the password hash, for
// the login flow only.
func (db *DB) GetByUsernameForLogin(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := db.conn.QueryRowContext(ctx,
		`SELECT `+publicColumns+`, password FROM users WHERE username = ?`,
		username,
	).Scan(
		&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Email,
		&u.Exp, &u.TotalBooks, &u.TotalPages, &u.PasswordHash,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("User", username)
		}
		return nil, fmt.Errorf("sqlite: getting user %q for login: %w", username, err)
	}
	return &u, nil
}

// Update rewrites the mutable profile fields. Username changes hit the same
// UNIQUE constraint as registration. The id and password are never updated
// here — password changes would be a separate, re-authenticated flow.
func (db *DB) Update(ctx context.Context, user *model.User) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE users
		 SET username = ?, fname = ?, lname = ?, email = ?,
		     exp = ?, total_books = ?, total_pages = ?
		 WHERE id = ?`,
		user.Username,
		user.FirstName,
		user.LastName,
		user.Email,
		user.Exp,
		user.TotalBooks,
		user.TotalPages,
		user.ID,
	)
	if err != nil {
		if isUnique(err) {
			return apperror.Conflict("Username taken. Please pick another.")
		}
		return fmt.Errorf("sqlite: updating user %d: %w", user.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("User", user.ID)
	}

	return nil
}

// Delete removes the account. Owned rows (collections, journals, badges,
// reads, follower edges, recommendations) go with it via ON DELETE CASCADE.
func (db *DB) Delete(ctx context.Context, id int64) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting user %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("User", id)
	}

	return nil
}

// scanner covers both *sql.Row and *sql.Rows so the public-profile scan is
// written once.
type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner, u *model.User) error {
	return s.Scan(
		&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Email,
		&u.Exp, &u.TotalBooks, &u.TotalPages,
	)
}
