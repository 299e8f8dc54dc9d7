package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/reads-stash/server/internal/apperror"
	"github.com/reads-stash/server/internal/auth"
	"github.com/reads-stash/server/internal/model"
)

// fakeUserRepo is an in-memory implementation of repository.UserRepository.
// A hand-written fake (not a mock framework) keeps the tests dependency-free
// and readable.
type fakeUserRepo struct {
	byUsername map[string]*model.User
	nextID     int64
	createErr  error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byUsername: make(map[string]*model.User), nextID: 1}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byUsername[user.Username]; ok {
		return apperror.Conflict("Username taken. Please pick another.")
	}
	user.ID = f.nextID
	f.nextID++
	copied := *user
	f.byUsername[user.Username] = &copied
	return nil
}

func (f *fakeUserRepo) GetAll(ctx context.Context) ([]model.User, error) {
	users := []model.User{}
	for _, u := range f.byUsername {
		users = append(users, *u)
	}
	return users, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	for _, u := range f.byUsername {
		if u.ID == id {
			copied := *u
			copied.PasswordHash = ""
			return &copied, nil
		}
	}
	return nil, apperror.NotFound("User", id)
}

func (f *fakeUserRepo) GetByUsernameForLogin(ctx context.Context, username string) (*model.User, error) {
	u, ok := f.byUsername[username]
	if !ok {
		return nil, apperror.NotFound("User", username)
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *model.User) error {
	for _, u := range f.byUsername {
		if u.ID == user.ID {
			u.FirstName = user.FirstName
			u.LastName = user.LastName
			u.Email = user.Email
			u.Exp = user.Exp
			u.TotalBooks = user.TotalBooks
			u.TotalPages = user.TotalPages
			return nil
		}
	}
	return apperror.NotFound("User", user.ID)
}

func (f *fakeUserRepo) Delete(ctx context.Context, id int64) error {
	for name, u := range f.byUsername {
		if u.ID == id {
			delete(f.byUsername, name)
			return nil
		}
	}
	return apperror.NotFound("User", id)
}

// newTestAuthService wires an AuthService with fake storage and fast crypto.
func newTestAuthService(t *testing.T, repo *fakeUserRepo) *AuthService {
	t.Helper()

	tokens, err := auth.NewTokenService("test-secret-at-least-16-chars!!", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	// Cost 4 is bcrypt minimum, which keeps the tests fast.
	passwords := auth.NewPasswordService(4)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewAuthService(repo, tokens, passwords, logger)
}

func TestRegister(t *testing.T) {
	repo := newFakeUserRepo()
	s := newTestAuthService(t, repo)

	result, err := s.Register(context.Background(), &model.User{Username: "newuser"}, "hunter22")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if result.User.ID == 0 {
		t.Error("Register() did not assign a user id")
	}
	if result.Token == "" {
		t.Error("Register() did not issue a token")
	}

	// The stored hash must verify against the original password and must not
	// be the password itself.
	stored := repo.byUsername["newuser"]
	if stored.PasswordHash == "hunter22" {
		t.Fatal("Register() stored the plaintext password")
	}
	passwords := auth.NewPasswordService(4)
	if err := passwords.Verify(stored.PasswordHash, "hunter22"); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
}

func TestRegister_DuplicateUsernameIs400(t *testing.T) {
	repo := newFakeUserRepo()
	s := newTestAuthService(t, repo)

	if _, err := s.Register(context.Background(), &model.User{Username: "taken"}, "pw1"); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	_, err := s.Register(context.Background(), &model.User{Username: "taken"}, "pw2")
	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("Register() duplicate error = %v, want ErrConflict", err)
	}

	// Registration is the one place a uniqueness conflict answers 400.
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("error is not an *AppError: %v", err)
	}
	if appErr.HTTPStatus() != http.StatusBadRequest {
		t.Errorf("HTTPStatus() = %d, want %d", appErr.HTTPStatus(), http.StatusBadRequest)
	}
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	s := newTestAuthService(t, repo)

	if _, err := s.Register(context.Background(), &model.User{Username: "reader"}, "correct horse"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	result, err := s.Login(context.Background(), "reader", "correct horse")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if result.Token == "" {
		t.Error("Login() did not issue a token")
	}
	if result.User.Username != "reader" {
		t.Errorf("Username = %q, want %q", result.User.Username, "reader")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	s := newTestAuthService(t, repo)

	if _, err := s.Register(context.Background(), &model.User{Username: "reader"}, "right"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, err := s.Login(context.Background(), "reader", "wrong")
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("Login() wrong password error = %v, want ErrValidation", err)
	}
	if err.Error() != "Invalid username/password" {
		t.Errorf("Login() message = %q, want %q", err.Error(), "Invalid username/password")
	}
}

// An unknown username responds 404, distinct from a wrong password. The
// frontend relies on the distinction.
func TestLogin_UnknownUserIsNotFound(t *testing.T) {
	repo := newFakeUserRepo()
	s := newTestAuthService(t, repo)

	_, err := s.Login(context.Background(), "ghost", "whatever")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Login() unknown user error = %v, want ErrNotFound", err)
	}
}
