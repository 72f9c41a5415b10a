package domain

import (
	"context"
	"time"
)

// User represents a registered account. Password carries the transient
// plaintext between the request and the store's write path; it is never
// persisted. The store hashes it immediately before the insert and clears
// it, so an already-hashed value is never hashed again.
type User struct {
	ID           string
	Email        string
	Password     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PasswordHasher one-way transforms a plaintext password into a storable
// form and verifies candidates against it. Hash is salted: two calls on
// the same plaintext produce different stored forms.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, storedForm string) bool
}

// UserRepository defines persistence operations for users. Emails are
// stored normalized; Create returns ErrDuplicateEmail when the normalized
// email is already taken.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
