package auth

import "errors"

var (
	// ErrUserNotFound indicates no user record exists for the given key.
	// Storage implementations return it from lookups.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists indicates a registration conflict on the unique email.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidCredentials is returned for both unknown email and wrong
	// password so responses cannot be used for account enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthorized indicates an absent, invalid, or expired session.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrOrphanSession indicates a live session referencing a user that no
	// longer exists. A data-integrity anomaly, not an authentication failure.
	ErrOrphanSession = errors.New("session references a missing user")

	// ErrInvalidHash indicates a stored password hash that cannot be parsed.
	ErrInvalidHash = errors.New("invalid password hash")

	// ErrEmptyPassword is returned when attempting to hash an empty password.
	ErrEmptyPassword = errors.New("password cannot be empty")
)
