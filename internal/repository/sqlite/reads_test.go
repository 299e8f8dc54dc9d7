package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/reads-stash/server/internal/apperror"
	"github.com/reads-stash/server/internal/model"
)

func TestCreateRead_DuplicateISBNIsConflict(t *testing.T) {
	db := newTestDB(t)
	createTestRead(t, db, "Dune", "9780441172719")

	dup := &model.Read{Title: "Dune (reissue)", ISBN: "9780441172719"}
	if err := db.CreateRead(context.Background(), dup); !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("CreateRead() duplicate ISBN = %v, want ErrConflict", err)
	}
}

func TestAddUserRead(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice")
	read := createTestRead(t, db, "Dune", "9780441172719")

	ur := &model.UserRead{UserID: alice.ID, ReadID: read.ID}
	if err := db.AddUserRead(context.Background(), ur); err != nil {
		t.Fatalf("AddUserRead() error = %v", err)
	}

	if ur.ID == 0 {
		t.Error("AddUserRead() did not set the id")
	}
	// Catalogue fields come back on the joined row.
	if ur.Title != "Dune" {
		t.Errorf("Title = %q, want %q", ur.Title, "Dune")
	}
	// No rating or review yet — stashing alone leaves them unset.
	if ur.Rating != nil || ur.ReviewText != nil || ur.ReviewDate != nil {
		t.Error("AddUserRead() set rating/review fields that were not provided")
	}

	// Stashing the same book twice is a conflict.
	again := &model.UserRead{UserID: alice.ID, ReadID: read.ID}
	if err := db.AddUserRead(context.Background(), again); !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("second AddUserRead() = %v, want ErrConflict", err)
	}
}

func TestUpdateUserRead_SetsRatingAndReview(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice")
	read := createTestRead(t, db, "Dune", "9780441172719")

	ur := &model.UserRead{UserID: alice.ID, ReadID: read.ID}
	if err := db.AddUserRead(context.Background(), ur); err != nil {
		t.Fatalf("AddUserRead() error = %v", err)
	}

	rating := int64(5)
	review := "A masterpiece."
	when := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	ur.Rating = &rating
	ur.ReviewText = &review
	ur.ReviewDate = &when
	if err := db.UpdateUserRead(context.Background(), ur); err != nil {
		t.Fatalf("UpdateUserRead() error = %v", err)
	}

	found, err := db.GetUserRead(context.Background(), alice.ID, read.ID)
	if err != nil {
		t.Fatalf("GetUserRead() error = %v", err)
	}
	if found.Rating == nil || *found.Rating != 5 {
		t.Errorf("Rating = %v, want 5", found.Rating)
	}
	if found.ReviewText == nil || *found.ReviewText != "A masterpiece." {
		t.Errorf("ReviewText = %v, want %q", found.ReviewText, "A masterpiece.")
	}
	if found.ReviewDate == nil || !found.ReviewDate.Equal(when) {
		t.Errorf("ReviewDate = %v, want %v", found.ReviewDate, when)
	}
}

func TestListUserReads_ScopedToUser(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	dune := createTestRead(t, db, "Dune", "9780441172719")
	hyperion := createTestRead(t, db, "Hyperion", "9780553283686")

	for _, ur := range []*model.UserRead{
		{UserID: alice.ID, ReadID: dune.ID},
		{UserID: alice.ID, ReadID: hyperion.ID},
		{UserID: bob.ID, ReadID: dune.ID},
	} {
		if err := db.AddUserRead(context.Background(), ur); err != nil {
			t.Fatalf("AddUserRead() error = %v", err)
		}
	}

	got, err := db.ListUserReads(context.Background(), alice.ID)
	if err != nil {
		t.Fatalf("ListUserReads() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListUserReads() returned %d rows, want 2", len(got))
	}
	if got[0].Title != "Dune" || got[1].Title != "Hyperion" {
		t.Errorf("ListUserReads() titles = [%q, %q], want stash order", got[0].Title, got[1].Title)
	}
}

func TestDeleteUserRead_LeavesCatalogue(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice")
	read := createTestRead(t, db, "Dune", "9780441172719")

	ur := &model.UserRead{UserID: alice.ID, ReadID: read.ID}
	if err := db.AddUserRead(context.Background(), ur); err != nil {
		t.Fatalf("AddUserRead() error = %v", err)
	}

	if err := db.DeleteUserRead(context.Background(), alice.ID, read.ID); err != nil {
		t.Fatalf("DeleteUserRead() error = %v", err)
	}
	if _, err := db.GetUserRead(context.Background(), alice.ID, read.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetUserRead() after delete = %v, want ErrNotFound", err)
	}

	// Un-stashing never touches the shared catalogue row.
	if _, err := db.GetRead(context.Background(), read.ID); err != nil {
		t.Errorf("GetRead() after un-stash = %v, want catalogue row intact", err)
	}
}

func TestReadCollections_ScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	read := createTestRead(t, db, "Dune", "9780441172719")
	alices := createTestCollection(t, db, alice.ID, "Sci-Fi")
	bobs := createTestCollection(t, db, bob.ID, "Desert Books")

	if _, err := db.AddReadToCollection(context.Background(), read.ID, alices.ID); err != nil {
		t.Fatalf("AddReadToCollection() error = %v", err)
	}
	if _, err := db.AddReadToCollection(context.Background(), read.ID, bobs.ID); err != nil {
		t.Fatalf("AddReadToCollection() error = %v", err)
	}

	// alice only sees the filing into her own collection, even though the
	// same catalogue read sits in bob's too.
	filings, err := db.ListReadCollections(context.Background(), alice.ID, read.ID)
	if err != nil {
		t.Fatalf("ListReadCollections() error = %v", err)
	}
	if len(filings) != 1 {
		t.Fatalf("ListReadCollections() returned %d rows, want 1", len(filings))
	}
	if filings[0].CollectionName != "Sci-Fi" {
		t.Errorf("CollectionName = %q, want %q", filings[0].CollectionName, "Sci-Fi")
	}
}

func TestAddReadToCollection_DuplicateIsConflict(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice")
	read := createTestRead(t, db, "Dune", "9780441172719")
	c := createTestCollection(t, db, alice.ID, "Sci-Fi")

	rc, err := db.AddReadToCollection(context.Background(), read.ID, c.ID)
	if err != nil {
		t.Fatalf("AddReadToCollection() error = %v", err)
	}
	if rc.CollectionName != "Sci-Fi" {
		t.Errorf("CollectionName = %q, want %q", rc.CollectionName, "Sci-Fi")
	}

	if _, err := db.AddReadToCollection(context.Background(), read.ID, c.ID); !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("second AddReadToCollection() = %v, want ErrConflict", err)
	}

	if err := db.RemoveReadFromCollection(context.Background(), read.ID, c.ID); err != nil {
		t.Fatalf("RemoveReadFromCollection() error = %v", err)
	}
	if err := db.RemoveReadFromCollection(context.Background(), read.ID, c.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("second RemoveReadFromCollection() = %v, want ErrNotFound", err)
	}
}
