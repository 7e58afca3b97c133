// Package postgres implements the auth.UserStorage interface on top of a
// pgx connection pool. The users table's unique email constraint is the
// authoritative guard against duplicate registrations.
package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/authsvc/internal/auth"
	"github.com/dmitrymomot/authsvc/pkg/pg"
)

// UserRepository provides user persistence backed by PostgreSQL.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a repository using the given connection pool.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) GetCredentialsByEmail(ctx context.Context, email string) (*auth.Credentials, error) {
	const query = `
		SELECT id, email, password_hash
		FROM users
		WHERE email = $1`

	var creds auth.Credentials
	err := r.pool.QueryRow(ctx, query, email).Scan(&creds.ID, &creds.Email, &creds.PasswordHash)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch credentials by email: %w", err)
	}

	return &creds, nil
}

func (r *UserRepository) GetProfileByID(ctx context.Context, id uuid.UUID) (*auth.Profile, error) {
	const query = `
		SELECT id, email, first_name, last_name
		FROM users
		WHERE id = $1`

	var profile auth.Profile
	err := r.pool.QueryRow(ctx, query, id).Scan(&profile.ID, &profile.Email, &profile.FirstName, &profile.LastName)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch profile by id: %w", err)
	}

	return &profile, nil
}

func (r *UserRepository) CreateUser(ctx context.Context, user *auth.User) error {
	const query = `
		INSERT INTO users (id, first_name, last_name, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		user.ID, user.FirstName, user.LastName, user.Email, user.PasswordHash, user.CreatedAt)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return auth.ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}
