// Package service holds the business logic layer. Each service sits between
// the HTTP handlers and the repositories:
//
//	handler (HTTP) → service (rules) → repository (DB)
//
// Services never touch http.Request or ResponseWriter; they speak models and
// apperror values, which keeps them testable with mock repositories.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/reads-stash/server/internal/apperror"
	"github.com/reads-stash/server/internal/auth"
	"github.com/reads-stash/server/internal/model"
	"github.com/reads-stash/server/internal/repository"
)

// AuthService handles registration and login.
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// AuthResult bundles the stored user with the issued JWT so the handler can
// respond in one step.
type AuthResult struct {
	User  *model.User
	Token string
}

// Register creates an account and issues a token for it. The UNIQUE
// constraint on username is the only duplicate check — no read-then-insert
// race. A duplicate at registration responds 400 rather than the storage
// layer's usual 409, matching the public API.
func (s *AuthService) Register(ctx context.Context, user *model.User, password string) (*AuthResult, error) {
	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("service/auth: hashing password: %w", err)
	}
	user.PasswordHash = hash

	if err := s.users.Create(ctx, user); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && errors.Is(err, apperror.ErrConflict) {
			appErr.Status = http.StatusBadRequest
			return nil, appErr
		}
		return nil, fmt.Errorf("service/auth: creating user %q: %w", user.Username, err)
	}

	s.logger.Info("user registered",
		slog.Int64("userID", user.ID),
		slog.String("username", user.Username),
	)

	token, err := s.tokens.Generate(auth.Principal{ID: user.ID, Username: user.Username})
	if err != nil {
		return nil, fmt.Errorf("service/auth: generating token for user %d: %w", user.ID, err)
	}

	return &AuthResult{User: user, Token: token}, nil
}

// Login verifies the password and issues a token. An unknown username is a
// NotFound; a wrong password for an existing account is a 400. The split
// leaks username existence, but it is the API's published behaviour and the
// frontend relies on the distinction.
func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	user, err := s.users.GetByUsernameForLogin(ctx, username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("service/auth: looking up user %q: %w", username, err)
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		return nil, apperror.BadRequest("Invalid username/password")
	}

	s.logger.Info("user logged in",
		slog.Int64("userID", user.ID),
		slog.String("username", user.Username),
	)

	token, err := s.tokens.Generate(auth.Principal{ID: user.ID, Username: user.Username})
	if err != nil {
		return nil, fmt.Errorf("service/auth: generating token for user %d: %w", user.ID, err)
	}

	return &AuthResult{User: user, Token: token}, nil
}
