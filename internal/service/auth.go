package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/voltgrid/chargefinder/internal/domain"
)

// AuthService handles user registration, login, and token validation.
type AuthService struct {
	users  domain.UserRepository
	hasher domain.PasswordHasher
	tokens *TokenService
}

// NewAuthService creates a new AuthService.
func NewAuthService(users domain.UserRepository, hasher domain.PasswordHasher, tokens *TokenService) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens}
}

type registerInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// NormalizeEmail canonicalizes an email for uniqueness comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new user account and returns a bearer token for it.
// The password is hashed by the user store's write path immediately before
// persistence. A duplicate normalized email yields domain.ErrDuplicateEmail.
func (s *AuthService) Register(ctx context.Context, email, password string) (string, error) {
	if err := validateStruct(registerInput{Email: email, Password: password}); err != nil {
		return "", err
	}

	user := &domain.User{
		Email:    NormalizeEmail(email),
		Password: password,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return "", domain.ErrDuplicateEmail
		}
		return "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// Login verifies credentials and returns a bearer token. Unknown email and
// wrong password both yield domain.ErrInvalidCredentials so account
// existence is not revealed. No password length check applies on login.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if err := validateStruct(loginInput{Email: email, Password: password}); err != nil {
		return "", err
	}

	user, err := s.users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("get user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// ValidateToken verifies a bearer token and returns the user id it
// encodes. Failures match domain.ErrUnauthorized and keep their typed
// reason (malformed, bad signature, expired); the HTTP boundary
// collapses them into one generic 401.
func (s *AuthService) ValidateToken(tokenString string) (string, error) {
	userID, err := s.tokens.Verify(tokenString)
	if err != nil {
		return "", errors.Join(domain.ErrUnauthorized, err)
	}
	return userID, nil
}
