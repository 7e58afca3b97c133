// Package session owns the token <-> user id relationship and its TTL.
// Tokens are opaque bearer secrets; the Manager is the sole writer of the
// underlying store.
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Manager creates, resolves, rotates, and invalidates session tokens against
// a Store. It holds no in-process state; all operations are safe for
// concurrent use.
type Manager struct {
	store Store
}

// NewManager creates a session manager backed by the given store.
func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Create generates a fresh token bound to userID with the given TTL and
// returns it. The token carries 256 bits of entropy.
func (m *Manager) Create(ctx context.Context, userID uuid.UUID, ttl time.Duration) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}

	if err := m.store.Set(ctx, token, userID.String(), ttl); err != nil {
		return "", err
	}

	return token, nil
}

// Resolve returns the user id bound to token. It is read-only: the TTL is
// not extended. Absent or expired tokens yield ErrNotFound; store failures
// yield ErrStoreUnavailable.
func (m *Manager) Resolve(ctx context.Context, token string) (uuid.UUID, error) {
	if token == "" {
		return uuid.Nil, ErrNotFound
	}

	value, err := m.store.Get(ctx, token)
	if err != nil {
		return uuid.Nil, err
	}

	userID, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("session: corrupt user id for token: %w", err)
	}

	return userID, nil
}

// Rotate replaces oldToken with a fresh token bound to userID under a fresh
// TTL. The old token is deleted first: a request racing inside the
// delete/create window observes ErrNotFound rather than two live tokens.
// The chosen order fails closed.
func (m *Manager) Rotate(ctx context.Context, oldToken string, userID uuid.UUID, ttl time.Duration) (string, error) {
	if oldToken == "" {
		return "", ErrNotFound
	}

	if err := m.store.Delete(ctx, oldToken); err != nil {
		return "", err
	}

	return m.Create(ctx, userID, ttl)
}

// Invalidate deletes the token mapping unconditionally. Invalidating an
// unknown token is not an error.
func (m *Manager) Invalidate(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return m.store.Delete(ctx, token)
}

// generateToken returns a cryptographically random, URL-safe opaque token.
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
