// Package auth orchestrates registration, login, logout, and profile
// retrieval. Identity records live in a relational store, session tokens in
// an expiring key-value store; both are injected at construction.
package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authsvc/internal/session"
	"github.com/dmitrymomot/authsvc/pkg/logger"
)

// DefaultSessionTTL matches the original deployment's ten-minute cookie
// lifespan. Every profile fetch rotates the token and restarts the window.
const DefaultSessionTTL = 10 * time.Minute

// SessionManager is the token-lifecycle surface the Service needs.
type SessionManager interface {
	Create(ctx context.Context, userID uuid.UUID, ttl time.Duration) (string, error)
	Resolve(ctx context.Context, token string) (uuid.UUID, error)
	Rotate(ctx context.Context, oldToken string, userID uuid.UUID, ttl time.Duration) (string, error)
	Invalidate(ctx context.Context, token string) error
}

// Service implements the authentication protocol. All state lives in the
// injected stores; the Service itself is safe for concurrent use.
type Service struct {
	storage    UserStorage
	sessions   SessionManager
	hasher     PasswordHasher
	log        *slog.Logger
	sessionTTL time.Duration
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithSessionTTL overrides the default session TTL.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.sessionTTL = ttl
		}
	}
}

// WithHasher sets a custom password hasher.
func WithHasher(h PasswordHasher) Option {
	return func(s *Service) {
		if h != nil {
			s.hasher = h
		}
	}
}

// NewService creates the auth service with the given collaborators.
func NewService(storage UserStorage, sessions SessionManager, opts ...Option) *Service {
	s := &Service{
		storage:    storage,
		sessions:   sessions,
		hasher:     NewArgon2idHasher(),
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		sessionTTL: DefaultSessionTTL,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// SessionTTL reports the TTL applied to created and rotated sessions.
func (s *Service) SessionTTL() time.Duration {
	return s.sessionTTL
}

// Register creates a new user. A taken email yields ErrEmailAlreadyExists.
// The lookup-then-insert sequence is racy by itself; the storage's unique
// constraint is the source of truth and its violation maps to the same
// conflict error.
func (s *Service) Register(ctx context.Context, email, password, firstName, lastName string) (*User, error) {
	email = strings.TrimSpace(email)

	if _, err := s.storage.GetCredentialsByEmail(ctx, email); err == nil {
		return nil, ErrEmailAlreadyExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		ID:           uuid.New(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}

	if err := s.storage.CreateUser(ctx, user); err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			// Lost the race against a concurrent registration.
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.log.InfoContext(ctx, "user registered",
		logger.UserID(user.ID.String()),
		logger.Component("auth"),
	)

	return user, nil
}

// Login verifies the credentials and returns a fresh session token. Unknown
// email and wrong password yield the identical ErrInvalidCredentials; store
// failures are surfaced as-is, never downgraded.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)

	creds, err := s.storage.GetCredentialsByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to fetch credentials: %w", err)
	}

	ok, err := s.hasher.Verify(password, creds.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return "", ErrInvalidCredentials
	}

	token, err := s.sessions.Create(ctx, creds.ID, s.sessionTTL)
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	s.log.InfoContext(ctx, "user logged in",
		logger.UserID(creds.ID.String()),
		logger.Component("auth"),
	)

	return token, nil
}

// Logout invalidates the session token. An empty token is treated as already
// logged out; invalidating an unknown token is not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if err := s.sessions.Invalidate(ctx, token); err != nil {
		return fmt.Errorf("failed to invalidate session: %w", err)
	}

	return nil
}

// Profile resolves the token, loads the caller's profile, and rotates the
// token (sliding-window re-authentication: a leaked token is good for at
// most one use-interval). Returns the profile together with the replacement
// token the caller must propagate.
func (s *Service) Profile(ctx context.Context, token string) (*Profile, string, error) {
	userID, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, "", ErrUnauthorized
		}
		return nil, "", fmt.Errorf("failed to resolve session: %w", err)
	}

	profile, err := s.storage.GetProfileByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			s.log.ErrorContext(ctx, "live session references a deleted user",
				logger.UserID(userID.String()),
				logger.Component("auth"),
			)
			return nil, "", fmt.Errorf("%w: %s", ErrOrphanSession, userID)
		}
		return nil, "", fmt.Errorf("failed to fetch profile: %w", err)
	}

	newToken, err := s.sessions.Rotate(ctx, token, userID, s.sessionTTL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to rotate session: %w", err)
	}

	return profile, newToken, nil
}
