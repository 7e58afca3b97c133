package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authsvc/internal/auth"
	"github.com/dmitrymomot/authsvc/internal/session"
)

func TestService_Register(t *testing.T) {
	t.Parallel()

	t.Run("creates user with hashed password", func(t *testing.T) {
		t.Parallel()

		storage := &MockUserStorage{}
		sessions := &MockSessionManager{}
		svc := auth.NewService(storage, sessions)
		hasher := auth.NewArgon2idHasher()

		storage.On("GetCredentialsByEmail", mock.Anything, "a@x.com").Return(nil, auth.ErrUserNotFound)
		storage.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *auth.User) bool {
			if u.Email != "a@x.com" || u.FirstName != "Ada" || u.LastName != "Lovelace" {
				return false
			}
			if u.ID == uuid.Nil || u.PasswordHash == "pw" {
				return false
			}
			ok, err := hasher.Verify("pw", u.PasswordHash)
			return err == nil && ok
		})).Return(nil)

		user, err := svc.Register(context.Background(), "a@x.com", "pw", "Ada", "Lovelace")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "a@x.com", user.Email)
		storage.AssertExpectations(t)
	})

	t.Run("existing email yields conflict", func(t *testing.T) {
		t.Parallel()

		storage := &MockUserStorage{}
		svc := auth.NewService(storage, &MockSessionManager{})

		storage.On("GetCredentialsByEmail", mock.Anything, "taken@x.com").Return(&auth.Credentials{
			ID:    uuid.New(),
			Email: "taken@x.com",
		}, nil)

		_, err := svc.Register(context.Background(), "taken@x.com", "pw", "A", "B")
		assert.ErrorIs(t, err, auth.ErrEmailAlreadyExists)
		storage.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("unique constraint violation on insert maps to conflict", func(t *testing.T) {
		t.Parallel()

		storage := &MockUserStorage{}
		svc := auth.NewService(storage, &MockSessionManager{})

		// Concurrent registration wins between our lookup and insert; the
		// storage constraint is the source of truth.
		storage.On("GetCredentialsByEmail", mock.Anything, "race@x.com").Return(nil, auth.ErrUserNotFound)
		storage.On("CreateUser", mock.Anything, mock.Anything).Return(auth.ErrEmailAlreadyExists)

		_, err := svc.Register(context.Background(), "race@x.com", "pw", "A", "B")
		assert.ErrorIs(t, err, auth.ErrEmailAlreadyExists)
	})

	t.Run("storage failure is not downgraded", func(t *testing.T) {
		t.Parallel()

		storage := &MockUserStorage{}
		svc := auth.NewService(storage, &MockSessionManager{})

		storage.On("GetCredentialsByEmail", mock.Anything, mock.Anything).Return(nil, assert.AnError)

		_, err := svc.Register(context.Background(), "a@x.com", "pw", "A", "B")
		require.Error(t, err)
		assert.NotErrorIs(t, err, auth.ErrEmailAlreadyExists)
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestService_Login(t *testing.T) {
	t.Parallel()

	hasher := auth.NewArgon2idHasher()
	hash, err := hasher.Hash("pw")
	require.NoError(t, err)

	t.Run("valid credentials yield a session token", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		storage := &MockUserStorage{}
		sessions := &MockSessionManager{}
		svc := auth.NewService(storage, sessions, auth.WithSessionTTL(10*time.Minute))

		storage.On("GetCredentialsByEmail", mock.Anything, "a@x.com").Return(&auth.Credentials{
			ID:           userID,
			Email:        "a@x.com",
			PasswordHash: hash,
		}, nil)
		sessions.On("Create", mock.Anything, userID, 10*time.Minute).Return("tok-1", nil)

		token, err := svc.Login(context.Background(), "a@x.com", "pw")
		require.NoError(t, err)
		assert.Equal(t, "tok-1", token)
		sessions.AssertExpectations(t)
	})

	t.Run("wrong password and unknown email yield the same error", func(t *testing.T) {
		t.Parallel()

		storage := &MockUserStorage{}
		sessions := &MockSessionManager{}
		svc := auth.NewService(storage, sessions)

		storage.On("GetCredentialsByEmail", mock.Anything, "a@x.com").Return(&auth.Credentials{
			ID:           uuid.New(),
			Email:        "a@x.com",
			PasswordHash: hash,
		}, nil)
		storage.On("GetCredentialsByEmail", mock.Anything, "nouser@x.com").Return(nil, auth.ErrUserNotFound)

		_, errWrongPassword := svc.Login(context.Background(), "a@x.com", "wrong")
		_, errUnknownEmail := svc.Login(context.Background(), "nouser@x.com", "pw")

		assert.ErrorIs(t, errWrongPassword, auth.ErrInvalidCredentials)
		assert.ErrorIs(t, errUnknownEmail, auth.ErrInvalidCredentials)
		assert.Equal(t, errWrongPassword.Error(), errUnknownEmail.Error())
		sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("storage failure is not an authentication failure", func(t *testing.T) {
		t.Parallel()

		storage := &MockUserStorage{}
		svc := auth.NewService(storage, &MockSessionManager{})

		storage.On("GetCredentialsByEmail", mock.Anything, mock.Anything).Return(nil, assert.AnError)

		_, err := svc.Login(context.Background(), "a@x.com", "pw")
		require.Error(t, err)
		assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("session store outage surfaces distinctly", func(t *testing.T) {
		t.Parallel()

		storage := &MockUserStorage{}
		sessions := &MockSessionManager{}
		svc := auth.NewService(storage, sessions)

		storage.On("GetCredentialsByEmail", mock.Anything, "a@x.com").Return(&auth.Credentials{
			ID:           uuid.New(),
			Email:        "a@x.com",
			PasswordHash: hash,
		}, nil)
		sessions.On("Create", mock.Anything, mock.Anything, mock.Anything).Return("", session.ErrStoreUnavailable)

		_, err := svc.Login(context.Background(), "a@x.com", "pw")
		require.Error(t, err)
		assert.ErrorIs(t, err, session.ErrStoreUnavailable)
		assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}

func TestService_Logout(t *testing.T) {
	t.Parallel()

	t.Run("invalidates the token", func(t *testing.T) {
		t.Parallel()

		sessions := &MockSessionManager{}
		svc := auth.NewService(&MockUserStorage{}, sessions)

		sessions.On("Invalidate", mock.Anything, "tok-1").Return(nil)

		require.NoError(t, svc.Logout(context.Background(), "tok-1"))
		sessions.AssertExpectations(t)
	})

	t.Run("empty token is already logged out", func(t *testing.T) {
		t.Parallel()

		sessions := &MockSessionManager{}
		svc := auth.NewService(&MockUserStorage{}, sessions)

		require.NoError(t, svc.Logout(context.Background(), ""))
		sessions.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
	})
}

func TestService_Profile(t *testing.T) {
	t.Parallel()

	t.Run("returns profile and rotated token", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		storage := &MockUserStorage{}
		sessions := &MockSessionManager{}
		svc := auth.NewService(storage, sessions, auth.WithSessionTTL(10*time.Minute))

		sessions.On("Resolve", mock.Anything, "tok-old").Return(userID, nil)
		storage.On("GetProfileByID", mock.Anything, userID).Return(&auth.Profile{
			ID:        userID,
			Email:     "a@x.com",
			FirstName: "Ada",
			LastName:  "Lovelace",
		}, nil)
		sessions.On("Rotate", mock.Anything, "tok-old", userID, 10*time.Minute).Return("tok-new", nil)

		profile, newToken, err := svc.Profile(context.Background(), "tok-old")
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", profile.Email)
		assert.Equal(t, "tok-new", newToken)
		sessions.AssertExpectations(t)
	})

	t.Run("unknown session is unauthorized", func(t *testing.T) {
		t.Parallel()

		sessions := &MockSessionManager{}
		svc := auth.NewService(&MockUserStorage{}, sessions)

		sessions.On("Resolve", mock.Anything, "tok-x").Return(uuid.Nil, session.ErrNotFound)

		_, _, err := svc.Profile(context.Background(), "tok-x")
		assert.ErrorIs(t, err, auth.ErrUnauthorized)
	})

	t.Run("store outage is not unauthorized", func(t *testing.T) {
		t.Parallel()

		sessions := &MockSessionManager{}
		svc := auth.NewService(&MockUserStorage{}, sessions)

		sessions.On("Resolve", mock.Anything, "tok-x").Return(uuid.Nil, session.ErrStoreUnavailable)

		_, _, err := svc.Profile(context.Background(), "tok-x")
		require.Error(t, err)
		assert.ErrorIs(t, err, session.ErrStoreUnavailable)
		assert.NotErrorIs(t, err, auth.ErrUnauthorized)
	})

	t.Run("session for deleted user is an integrity anomaly", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		storage := &MockUserStorage{}
		sessions := &MockSessionManager{}
		svc := auth.NewService(storage, sessions)

		sessions.On("Resolve", mock.Anything, "tok-x").Return(userID, nil)
		storage.On("GetProfileByID", mock.Anything, userID).Return(nil, auth.ErrUserNotFound)

		_, _, err := svc.Profile(context.Background(), "tok-x")
		require.Error(t, err)
		assert.ErrorIs(t, err, auth.ErrOrphanSession)
		assert.NotErrorIs(t, err, auth.ErrUnauthorized)
		sessions.AssertNotCalled(t, "Rotate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rotation failure surfaces", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		storage := &MockUserStorage{}
		sessions := &MockSessionManager{}
		svc := auth.NewService(storage, sessions)

		sessions.On("Resolve", mock.Anything, "tok-x").Return(userID, nil)
		storage.On("GetProfileByID", mock.Anything, userID).Return(&auth.Profile{ID: userID}, nil)
		sessions.On("Rotate", mock.Anything, "tok-x", userID, mock.Anything).Return("", session.ErrStoreUnavailable)

		_, _, err := svc.Profile(context.Background(), "tok-x")
		assert.ErrorIs(t, err, session.ErrStoreUnavailable)
	})
}

func TestService_EndToEndWithRealSessionManager(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	storage := &MockUserStorage{}
	sessions := session.NewManager(session.NewMemoryStore(0))
	svc := auth.NewService(storage, sessions)
	hasher := auth.NewArgon2idHasher()

	hash, err := hasher.Hash("pw")
	require.NoError(t, err)
	userID := uuid.New()

	storage.On("GetCredentialsByEmail", mock.Anything, "a@x.com").Return(&auth.Credentials{
		ID:           userID,
		Email:        "a@x.com",
		PasswordHash: hash,
	}, nil)
	storage.On("GetProfileByID", mock.Anything, userID).Return(&auth.Profile{
		ID:        userID,
		Email:     "a@x.com",
		FirstName: "A",
		LastName:  "B",
	}, nil)

	t1, err := svc.Login(ctx, "a@x.com", "pw")
	require.NoError(t, err)

	profile, t2, err := svc.Profile(ctx, t1)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", profile.Email)
	require.NotEqual(t, t1, t2)

	// The rotated-out token is dead.
	_, _, err = svc.Profile(ctx, t1)
	assert.ErrorIs(t, err, auth.ErrUnauthorized)

	// The replacement token works.
	_, t3, err := svc.Profile(ctx, t2)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, t3))

	_, _, err = svc.Profile(ctx, t3)
	assert.ErrorIs(t, err, auth.ErrUnauthorized)
}
