package auth_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/authsvc/internal/auth"
)

// MockUserStorage is a mock implementation of auth.UserStorage.
type MockUserStorage struct {
	mock.Mock
}

func (m *MockUserStorage) GetCredentialsByEmail(ctx context.Context, email string) (*auth.Credentials, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Credentials), args.Error(1)
}

func (m *MockUserStorage) GetProfileByID(ctx context.Context, id uuid.UUID) (*auth.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Profile), args.Error(1)
}

func (m *MockUserStorage) CreateUser(ctx context.Context, user *auth.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockSessionManager is a mock implementation of auth.SessionManager.
type MockSessionManager struct {
	mock.Mock
}

func (m *MockSessionManager) Create(ctx context.Context, userID uuid.UUID, ttl time.Duration) (string, error) {
	args := m.Called(ctx, userID, ttl)
	return args.String(0), args.Error(1)
}

func (m *MockSessionManager) Resolve(ctx context.Context, token string) (uuid.UUID, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockSessionManager) Rotate(ctx context.Context, oldToken string, userID uuid.UUID, ttl time.Duration) (string, error) {
	args := m.Called(ctx, oldToken, userID, ttl)
	return args.String(0), args.Error(1)
}

func (m *MockSessionManager) Invalidate(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}
