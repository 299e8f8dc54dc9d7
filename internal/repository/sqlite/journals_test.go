package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/reads-stash/server/internal/apperror"
	"github.com/reads-stash/server/internal/model"
)

func TestJournalRoundTrip(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice")

	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	j := &model.Journal{
		Title:  "Finished Dune",
		Text:   "The spice must flow.",
		Date:   date,
		UserID: alice.ID,
	}

	if err := db.CreateJournal(context.Background(), j); err != nil {
		t.Fatalf("CreateJournal() error = %v", err)
	}
	if j.ID == 0 {
		t.Fatal("CreateJournal() did not set the id")
	}

	found, err := db.GetJournal(context.Background(), alice.ID, j.ID)
	if err != nil {
		t.Fatalf("GetJournal() error = %v", err)
	}
	if found.Title != "Finished Dune" {
		t.Errorf("Title = %q, want %q", found.Title, "Finished Dune")
	}
	if !found.Date.Equal(date) {
		t.Errorf("Date = %v, want %v", found.Date, date)
	}
}

func TestCreateJournal_DefaultsDate(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice")

	j := &model.Journal{Title: "Undated", Text: "no date given", UserID: alice.ID}
	if err := db.CreateJournal(context.Background(), j); err != nil {
		t.Fatalf("CreateJournal() error = %v", err)
	}

	if j.Date.IsZero() {
		t.Error("CreateJournal() left the date zero; want defaulted to now")
	}
}

func TestUpdateJournal(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice")

	j := &model.Journal{Title: "Draft", Text: "first thoughts", UserID: alice.ID}
	if err := db.CreateJournal(context.Background(), j); err != nil {
		t.Fatalf("CreateJournal() error = %v", err)
	}

	j.Title = "Final"
	j.Text = "considered thoughts"
	if err := db.UpdateJournal(context.Background(), j); err != nil {
		t.Fatalf("UpdateJournal() error = %v", err)
	}

	found, err := db.GetJournal(context.Background(), alice.ID, j.ID)
	if err != nil {
		t.Fatalf("GetJournal() after update: %v", err)
	}
	if found.Title != "Final" || found.Text != "considered thoughts" {
		t.Errorf("after update got (%q, %q), want (%q, %q)", found.Title, found.Text, "Final", "considered thoughts")
	}
}

func TestDeleteJournal_ThenNotFound(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice")

	j := &model.Journal{Title: "Gone", Text: "soon", UserID: alice.ID}
	if err := db.CreateJournal(context.Background(), j); err != nil {
		t.Fatalf("CreateJournal() error = %v", err)
	}

	if err := db.DeleteJournal(context.Background(), alice.ID, j.ID); err != nil {
		t.Fatalf("DeleteJournal() error = %v", err)
	}
	if _, err := db.GetJournal(context.Background(), alice.ID, j.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetJournal() after delete = %v, want ErrNotFound", err)
	}
}
