package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/reads-stash/server/internal/apperror"
	"github.com/reads-stash/server/internal/model"
)

func createTestRecommendation(t *testing.T, db *DB, text string, senderID, receiverID int64) *model.Recommendation {
	t.Helper()

	rec := &model.Recommendation{Recommendation: text, SenderID: senderID, ReceiverID: receiverID}
	if err := db.CreateRecommendation(context.Background(), rec); err != nil {
		t.Fatalf("failed to create test recommendation: %v", err)
	}
	return rec
}

// TestListRecommendations_Union verifies the visibility rule: a user sees
// rows where they are sender OR receiver, and nothing between other users.
func TestListRecommendations_Union(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	sent := createTestRecommendation(t, db, "Try Dune", alice.ID, bob.ID)
	received := createTestRecommendation(t, db, "Try Hyperion", carol.ID, alice.ID)
	createTestRecommendation(t, db, "Try Foundation", bob.ID, carol.ID) // not alice's

	got, err := db.ListRecommendations(context.Background(), alice.ID)
	if err != nil {
		t.Fatalf("ListRecommendations() error = %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("ListRecommendations() returned %d rows, want 2", len(got))
	}
	if got[0].ID != sent.ID || got[1].ID != received.ID {
		t.Errorf("ListRecommendations() ids = [%d, %d], want [%d, %d]",
			got[0].ID, got[1].ID, sent.ID, received.ID)
	}
}

func TestGetRecommendation_NonParticipantIsNotFound(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	rec := createTestRecommendation(t, db, "Try Foundation", bob.ID, carol.ID)

	_, err := db.GetRecommendation(context.Background(), alice.ID, rec.ID)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetRecommendation() error = %v, want ErrNotFound", err)
	}
}

func TestDeleteRecommendation_EitherParticipant(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	// The receiver may delete, not just the sender.
	rec := createTestRecommendation(t, db, "Try Dune", alice.ID, bob.ID)
	if err := db.DeleteRecommendation(context.Background(), bob.ID, rec.ID); err != nil {
		t.Fatalf("DeleteRecommendation() as receiver: %v", err)
	}

	if _, err := db.GetRecommendation(context.Background(), alice.ID, rec.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetRecommendation() after delete = %v, want ErrNotFound", err)
	}
}
