package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/voltgrid/chargefinder/internal/domain"
	"github.com/voltgrid/chargefinder/internal/service"
)

// AuthHandler handles authentication HTTP requests.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// HandleRegister processes a registration request.
//
//	@Summary      Register a new user
//	@Description  Creates a user account and returns a bearer token for it.
//	@Tags         auth
//	@Accept       json
//	@Produce      json
//	@Param        credentials  body      CredentialsRequest  true  "Email and password"
//	@Success      201          {object}  TokenResponse
//	@Failure      400          {object}  MessageResponse  "Validation failure or duplicate email"
//	@Failure      500          {object}  MessageResponse
//	@Router       /auth/register [post]
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := readJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := h.auth.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		var verrs domain.ValidationErrors
		switch {
		case errors.As(err, &verrs):
			writeJSON(w, http.StatusBadRequest, map[string]any{"errors": verrs})
		case errors.Is(err, domain.ErrDuplicateEmail):
			writeMessage(w, http.StatusBadRequest, "User already exists")
		default:
			slog.Error("register user", "error", err)
			writeMessage(w, http.StatusInternalServerError, "Server error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, TokenResponse{Token: token})
}

// HandleLogin processes a login request. Unknown email and wrong
// password produce the same generic message.
//
//	@Summary      Log in
//	@Description  Verifies credentials and returns a bearer token.
//	@Tags         auth
//	@Accept       json
//	@Produce      json
//	@Param        credentials  body      CredentialsRequest  true  "Email and password"
//	@Success      200          {object}  TokenResponse
//	@Failure      400          {object}  MessageResponse  "Validation failure or invalid credentials"
//	@Failure      500          {object}  MessageResponse
//	@Router       /auth/login [post]
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := readJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		var verrs domain.ValidationErrors
		switch {
		case errors.As(err, &verrs):
			writeJSON(w, http.StatusBadRequest, map[string]any{"errors": verrs})
		case errors.Is(err, domain.ErrInvalidCredentials):
			writeMessage(w, http.StatusBadRequest, "Invalid credentials")
		default:
			slog.Error("login user", "error", err)
			writeMessage(w, http.StatusInternalServerError, "Server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{Token: token})
}
