package service

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher implements domain.PasswordHasher with bcrypt. The cost
// factor keeps hashing expensive enough to resist offline brute force;
// bcrypt salts every call, so hashing the same plaintext twice yields two
// different stored forms, and comparison is constant-time.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a hasher with the given bcrypt cost.
func NewBcryptHasher(cost int) *BcryptHasher {
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (h *BcryptHasher) Verify(plaintext, storedForm string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedForm), []byte(plaintext)) == nil
}
