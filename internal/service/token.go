package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenLifetime is the fixed validity window of an issued token.
const TokenLifetime = 24 * time.Hour

// Token verification failures. Callers that sit on the HTTP boundary must
// collapse all three into one generic unauthorized response so the reason
// is not leaked to the client.
var (
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenSignature = errors.New("token signature invalid")
	ErrTokenExpired   = errors.New("token expired")
)

// TokenService mints and verifies signed, time-limited bearer tokens
// encoding a user identity. Tokens are HMAC-SHA256 signed with a single
// process-wide secret; they are integrity-protected, not encrypted.
// Rotating the secret invalidates all previously issued tokens.
type TokenService struct {
	secret   []byte
	lifetime time.Duration
	parser   *jwt.Parser
}

// NewTokenService creates a token service signing with the given secret.
func NewTokenService(secret string) *TokenService {
	return NewTokenServiceWithLifetime(secret, TokenLifetime)
}

// NewTokenServiceWithLifetime is like NewTokenService with a custom
// validity window. Used by tests to exercise expiry.
func NewTokenServiceWithLifetime(secret string, lifetime time.Duration) *TokenService {
	// Strict decoding rejects non-zero base64 padding bits; without it a
	// bit flip in the final signature character can decode to the same
	// bytes and slip past the integrity check.
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithStrictDecoding(),
	)
	return &TokenService{secret: []byte(secret), lifetime: lifetime, parser: parser}
}

// Issue mints a token for the given user id, valid for the full window
// from now.
func (s *TokenService) Issue(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(s.lifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token string, returning the user id it
// encodes. Failures are reported as ErrTokenMalformed, ErrTokenSignature,
// or ErrTokenExpired.
func (s *TokenService) Verify(tokenString string) (string, error) {
	token, err := s.parser.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", ErrTokenSignature
		default:
			return "", ErrTokenMalformed
		}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrTokenMalformed
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", ErrTokenMalformed
	}

	return sub, nil
}
