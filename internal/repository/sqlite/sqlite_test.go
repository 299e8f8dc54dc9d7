package sqlite

import (
	"context"
	"testing"

	"github.com/reads-stash/server/internal/model"
)

// newTestDB returns a DB backed by a throwaway in-memory SQLite database.
// Each test gets its own; Close is registered as cleanup.
func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestUser inserts a user and fails the test on error. The hash is a
// placeholder — repository tests never verify passwords.
func createTestUser(t *testing.T, db *DB, username string) *model.User {
	t.Helper()

	user := &model.User{
		Username:     username,
		FirstName:    "Test",
		LastName:     "User",
		Email:        username + "@example.com",
		PasswordHash: "$2a$12$notarealhash",
	}
	if err := db.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user %q: %v", username, err)
	}
	return user
}

// createTestCollection inserts a collection for the given owner.
func createTestCollection(t *testing.T, db *DB, userID int64, name string) *model.Collection {
	t.Helper()

	c := &model.Collection{Name: name, UserID: userID}
	if err := db.CreateCollection(context.Background(), c); err != nil {
		t.Fatalf("failed to create test collection %q: %v", name, err)
	}
	return c
}

// createTestRead inserts a catalogue read.
func createTestRead(t *testing.T, db *DB, title, isbn string) *model.Read {
	t.Helper()

	r := &model.Read{Title: title, ISBN: isbn, Publisher: "Test Press"}
	if err := db.CreateRead(context.Background(), r); err != nil {
		t.Fatalf("failed to create test read %q: %v", title, err)
	}
	return r
}
