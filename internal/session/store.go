package session

import (
	"context"
	"time"
)

// Store is the key-value surface the Manager needs from a session backend.
// Implementations must enforce TTL expiry natively and keep per-key
// operations atomic; Delete is idempotent.
type Store interface {
	// Set stores token -> userID with the given TTL.
	Set(ctx context.Context, token, userID string, ttl time.Duration) error

	// Get returns the user id bound to token, ErrNotFound if the key is
	// absent or expired, or ErrStoreUnavailable on infrastructure failure.
	// It must not extend the TTL.
	Get(ctx context.Context, token string) (string, error)

	// Delete removes the token mapping. Deleting an absent key is not an error.
	Delete(ctx context.Context, token string) error
}
