package auth_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authsvc/internal/auth"
)

func TestArgon2idHasher_HashAndVerify(t *testing.T) {
	t.Parallel()

	hasher := auth.NewArgon2idHasher()

	hash, err := hasher.Hash("correct horse battery staple")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$"), "hash should be PHC-encoded argon2id")

	ok, err := hasher.Verify("correct horse battery staple", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = hasher.Verify("correct horse battery stapl", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArgon2idHasher_FreshSaltPerHash(t *testing.T) {
	t.Parallel()

	hasher := auth.NewArgon2idHasher()
	password := "s3cret-password"

	hash1, err := hasher.Hash(password)
	require.NoError(t, err)
	hash2, err := hasher.Hash(password)
	require.NoError(t, err)

	// Fresh salt per call: the encoded strings differ...
	require.NotEqual(t, hash1, hash2)

	// ...yet both verify against the original password.
	ok, err := hasher.Verify(password, hash1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = hasher.Verify(password, hash2)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestArgon2idHasher_EmptyPassword(t *testing.T) {
	t.Parallel()

	hasher := auth.NewArgon2idHasher()

	_, err := hasher.Hash("")
	assert.ErrorIs(t, err, auth.ErrEmptyPassword)
}

func TestArgon2idHasher_MalformedHash(t *testing.T) {
	t.Parallel()

	hasher := auth.NewArgon2idHasher()

	cases := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"not a hash", "plaintext"},
		{"wrong algorithm", "$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA"},
		{"bad salt encoding", "$argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA"},
		{"missing params", "$argon2id$v=19$$c2FsdA$aGFzaA"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ok, err := hasher.Verify("whatever", tc.hash)
			require.Error(t, err)
			assert.ErrorIs(t, err, auth.ErrInvalidHash)
			assert.False(t, ok)
		})
	}
}
