package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret-at-least-16-chars!!"

func newTestTokenService(t *testing.T, ttl time.Duration) *TokenService {
	t.Helper()
	ts, err := NewTokenService(testSecret, ttl)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return ts
}

func TestNewTokenService_RejectsShortSecret(t *testing.T) {
	if _, err := NewTokenService("short", time.Hour); err == nil {
		t.Error("NewTokenService() accepted a short secret")
	}
	if _, err := NewTokenService(testSecret, 0); err == nil {
		t.Error("NewTokenService() accepted a zero TTL")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	ts := newTestTokenService(t, time.Hour)

	token, err := ts.Generate(Principal{ID: 42, Username: "booklover"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	p, err := ts.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if p.ID != 42 || p.Username != "booklover" {
		t.Errorf("Validate() = %+v, want ID 42, Username booklover", p)
	}
}

func TestValidate_ExpiredToken(t *testing.T) {
	// A 1ns TTL expires immediately; jwt's default leeway is zero.
	ts := newTestTokenService(t, time.Nanosecond)

	token, err := ts.Generate(Principal{ID: 1, Username: "x"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, err := ts.Validate(token); err == nil {
		t.Error("Validate() accepted an expired token")
	}
}

func TestValidate_TamperedToken(t *testing.T) {
	ts := newTestTokenService(t, time.Hour)

	token, err := ts.Generate(Principal{ID: 1, Username: "x"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	// Flip a character in the signature section.
	tampered := token[:len(token)-2] + "xx"
	if _, err := ts.Validate(tampered); err == nil {
		t.Error("Validate() accepted a tampered token")
	}
}

func TestValidate_WrongSecret(t *testing.T) {
	ts := newTestTokenService(t, time.Hour)
	other, err := NewTokenService("a-completely-different-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	token, err := other.Generate(Principal{ID: 1, Username: "x"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if _, err := ts.Validate(token); err == nil {
		t.Error("Validate() accepted a token signed with another secret")
	}
}

func TestValidate_WrongIssuer(t *testing.T) {
	ts := newTestTokenService(t, time.Hour)

	// Sign with the right secret but a foreign issuer claim.
	c := claims{
		UserID:   1,
		Username: "x",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "some-other-app",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("signing foreign token: %v", err)
	}

	if _, err := ts.Validate(foreign); err == nil {
		t.Error("Validate() accepted a token from another issuer")
	}
}

func TestValidate_MissingExpiry(t *testing.T) {
	ts := newTestTokenService(t, time.Hour)

	c := claims{
		UserID:   1,
		Username: "x",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   issuer,
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	eternal, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}

	if _, err := ts.Validate(eternal); err == nil {
		t.Error("Validate() accepted a token without an expiry claim")
	}
}
