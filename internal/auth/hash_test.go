package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	t.Parallel()

	encoded, err := HashPassword([]byte("secret"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$"), "encoded form: %s", encoded)
	assert.NotContains(t, encoded, "secret")

	ok, err := VerifyPassword(encoded, []byte("secret"))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyPassword_Mismatch(t *testing.T) {
	t.Parallel()

	encoded, err := HashPassword([]byte("secret"))
	require.NoError(t, err)

	ok, err := VerifyPassword(encoded, []byte("not-secret"))
	require.NoError(t, err, "a mismatch is not an error")
	assert.False(t, ok)
}

func TestHashPassword_SaltUniqueness(t *testing.T) {
	t.Parallel()

	first, err := HashPassword([]byte("same password"))
	require.NoError(t, err)
	second, err := HashPassword([]byte("same password"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "two hashes of one password must differ")

	for _, encoded := range []string{first, second} {
		ok, err := VerifyPassword(encoded, []byte("same password"))
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestHashPassword_EmptyPassword(t *testing.T) {
	t.Parallel()

	encoded, err := HashPassword(nil)
	require.NoError(t, err, "empty passwords are valid input")

	ok, err := VerifyPassword(encoded, []byte{})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(encoded, []byte("anything"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPassword_TooLong(t *testing.T) {
	t.Parallel()

	_, err := HashPassword(make([]byte, maxPasswordLen+1))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		encoded string
	}{
		{"empty", ""},
		{"not a hash", "bcrypt-output"},
		{"wrong algorithm", "$argon2i$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA"},
		{"wrong version", "$argon2id$v=18$m=65536,t=1,p=4$c2FsdA$aGFzaA"},
		{"missing sections", "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA"},
		{"bad parameters", "$argon2id$v=19$m=what$c2FsdA$aGFzaA"},
		{"zero time cost", "$argon2id$v=19$m=65536,t=0,p=4$c2FsdA$aGFzaA"},
		{"zero parallelism", "$argon2id$v=19$m=65536,t=1,p=0$c2FsdA$aGFzaA"},
		{"memory below parallelism floor", "$argon2id$v=19$m=16,t=1,p=4$c2FsdA$aGFzaA"},
		{"absurd memory cost", "$argon2id$v=19$m=4294967295,t=1,p=4$c2FsdA$aGFzaA"},
		{"bad salt encoding", "$argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA"},
		{"bad hash encoding", "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$!!!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := VerifyPassword(tt.encoded, []byte("secret"))
			assert.ErrorIs(t, err, ErrMalformedHash)
		})
	}
}
