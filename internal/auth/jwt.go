// Package auth provides JWT token generation/validation, password hashing,
// the principal-resolver middleware, and the ownership guard.
//
// AUTHENTICATION FLOW OVERVIEW:
// 1. POST /api/auth/register or /api/auth/login returns a signed JWT
// 2. The SPA sends it back on every call: Authorization: Bearer <jwt>
// 3. RequireAuth validates the signature and stores the Principal in the
//    request context
// 4. Each user-scoped handler compares the declared owner from the route
//    against the Principal via the ownership guard before touching the DB
//
// WHY JWT?
// JWT is stateless — the server keeps no session table. Everything needed
// (user id, username, expiry) is inside the signed token, and the signature
// ensures nobody can tamper with it without the secret key.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "reads-stash"

// Principal is the authenticated caller, decoded from a verified token.
//
// It carries exactly the identity that was valid at token-issue time; it is
// NOT re-checked against the users table on each request, so a deleted
// user's previously issued token stays usable until it expires. Keeping the
// TTL short bounds that window.
type Principal struct {
	ID       int64
	Username string
}

// TokenService signs and verifies bearer tokens for Principals.
//
// It holds the HMAC secret key used to sign and verify. The same secret must
// be used for both operations — keep it safe, rotate it periodically in
// production.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService with the given secret and token
// lifetime. The secret should be at least 32 bytes of random data in
// production, e.g. JWT_SECRET=$(openssl rand -hex 32).
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	if ttl <= 0 {
		return nil, errors.New("auth: token TTL must be positive")
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}, nil
}

// claims is the JWT payload: the principal's user id and username plus the
// standard registered fields. The user id doubles as the "sub" claim.
type claims struct {
	UserID   int64  `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Generate creates and signs a token for the given principal.
//
// Signing algorithm: HS256 (HMAC-SHA256) — symmetric, fast, and fine for a
// single-server deployment.
func (s *TokenService) Generate(p Principal) (string, error) {
	now := time.Now()

	c := claims{
		UserID:   p.ID,
		Username: p.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", p.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a token string and returns the Principal it
// encodes.
//
// VALIDATION CHECKS (performed by the jwt library):
//   - Signature is valid (wasn't tampered with)
//   - Token is not expired
//   - Issuer matches (prevents tokens minted by other apps)
//   - Algorithm is HS256 (prevents algorithm confusion attacks)
//
// Callers must not distinguish failure causes: malformed, expired, and
// wrong-signature tokens all collapse into the same rejection, so an
// attacker learns nothing about WHY a token was refused.
func (s *TokenService) Validate(tokenStr string) (Principal, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Principal{}, fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return Principal{}, fmt.Errorf("auth: invalid token claims")
	}
	if c.UserID == 0 || c.Username == "" {
		return Principal{}, fmt.Errorf("auth: token has no principal")
	}

	return Principal{ID: c.UserID, Username: c.Username}, nil
}
