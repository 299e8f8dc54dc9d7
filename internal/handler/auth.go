package handler

import (
	"log/slog"
	"net/http"

	"github.com/reads-stash/server/internal/model"
	"github.com/reads-stash/server/internal/service"
)

// AuthHandler serves the two public routes: registration and login.
type AuthHandler struct {
	auth   *service.AuthService
	logger *slog.Logger
}

func NewAuthHandler(auth *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

type registerRequest struct {
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"fname"`
	LastName  string `json:"lname"`
	Email     string `json:"email" validate:"omitempty,email"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// HandleRegister creates an account.
//
// POST /api/auth/register → 201 {"token":"..."}
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if err := checkRequest(req); err != nil {
		WriteError(w, err)
		return
	}

	user := &model.User{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}

	result, err := h.auth.Register(r.Context(), user, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, tokenResponse{Token: result.Token})
}

// HandleLogin verifies credentials and issues a token.
//
// POST /api/auth/login → 200 {"message":"Successfully logged in!","token":"..."}
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if err := checkRequest(req); err != nil {
		WriteError(w, err)
		return
	}

	result, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Message: "Successfully logged in!",
		Token:   result.Token,
	})
}
