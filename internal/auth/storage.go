package auth

import (
	"context"

	"github.com/google/uuid"
)

// UserStorage is the credential-store surface the Service needs. The
// implementation owns the email uniqueness constraint; CreateUser returns
// ErrEmailAlreadyExists when it is violated.
type UserStorage interface {
	// GetCredentialsByEmail returns the authentication projection for email,
	// or ErrUserNotFound.
	GetCredentialsByEmail(ctx context.Context, email string) (*Credentials, error)

	// GetProfileByID returns the profile projection for id, or ErrUserNotFound.
	GetProfileByID(ctx context.Context, id uuid.UUID) (*Profile, error)

	// CreateUser inserts a new user record. A duplicate email yields
	// ErrEmailAlreadyExists.
	CreateUser(ctx context.Context, user *User) error
}
