package auth

import (
	"time"

	"github.com/google/uuid"
)

// User is the durable identity record. The password hash never leaves the
// service; JSON marshalling excludes it.
type User struct {
	ID           uuid.UUID `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Credentials is the read-only projection used for authentication checks.
type Credentials struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
}

// Profile is the read-only projection returned to an authenticated caller.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}
