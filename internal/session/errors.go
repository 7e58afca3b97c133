package session

import "errors"

var (
	// ErrNotFound indicates the token is unknown or its entry has expired.
	ErrNotFound = errors.New("session: not found")

	// ErrStoreUnavailable indicates a transient store failure (connectivity,
	// pool exhaustion, timeout). Never returned for a missing key: conflating
	// "don't know" with "doesn't exist" would let an outage masquerade as an
	// authentication failure.
	ErrStoreUnavailable = errors.New("session: store unavailable")

	// ErrTokenGeneration indicates the random token source failed.
	ErrTokenGeneration = errors.New("session: token generation failed")

	// ErrEmptyToken indicates an operation was called with an empty token.
	ErrEmptyToken = errors.New("session: empty token")
)
