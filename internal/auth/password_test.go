package auth

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHashAndVerify(t *testing.T) {
	p := NewPasswordService(bcrypt.MinCost)

	hash, err := p.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("Hash() returned the plaintext")
	}

	if err := p.Verify(hash, "correct horse battery staple"); err != nil {
		t.Errorf("Verify() with correct password: %v", err)
	}
	if err := p.Verify(hash, "wrong password"); err == nil {
		t.Error("Verify() accepted the wrong password")
	}
}

func TestPasswordHash_Salted(t *testing.T) {
	p := NewPasswordService(bcrypt.MinCost)

	h1, err := p.Hash("same password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	h2, err := p.Hash("same password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	// Per-hash salts mean equal inputs produce distinct hashes.
	if h1 == h2 {
		t.Error("two hashes of the same password are identical")
	}
}

func TestPasswordHash_RejectsOverlongInput(t *testing.T) {
	p := NewPasswordService(bcrypt.MinCost)

	if _, err := p.Hash(strings.Repeat("a", 73)); err == nil {
		t.Error("Hash() accepted a password longer than 72 bytes")
	}
}

func TestNewPasswordService_CostFallback(t *testing.T) {
	// A cost below bcrypt's minimum falls back to the production default
	// instead of weakening the hash.
	p := NewPasswordService(0)
	if p.cost != DefaultCost {
		t.Errorf("cost = %d, want %d", p.cost, DefaultCost)
	}

	p = NewPasswordService(bcrypt.MinCost)
	if p.cost != bcrypt.MinCost {
		t.Errorf("cost = %d, want %d", p.cost, bcrypt.MinCost)
	}
}
