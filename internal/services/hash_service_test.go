package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash(t *testing.T) {
	hasher := NewPasswordHasher()

	t.Run("produces PHC-formatted hash", func(t *testing.T) {
		hash, err := hasher.Hash("password123")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(hash, "$argon2id$"))
		assert.Contains(t, hash, "m=32768,t=2,p=8")
	})

	t.Run("same password produces different hashes", func(t *testing.T) {
		hash1, err := hasher.Hash("samepassword")
		require.NoError(t, err)
		hash2, err := hasher.Hash("samepassword")
		require.NoError(t, err)
		assert.NotEqual(t, hash1, hash2)
	})

	t.Run("rejects empty password", func(t *testing.T) {
		_, err := hasher.Hash("")
		assert.Error(t, err)
	})
}

func TestVerify(t *testing.T) {
	hasher := NewPasswordHasher()

	t.Run("correct password verifies", func(t *testing.T) {
		hash, err := hasher.Hash("correctpassword")
		require.NoError(t, err)
		assert.True(t, hasher.Verify("correctpassword", hash))
	})

	t.Run("wrong password fails", func(t *testing.T) {
		hash, err := hasher.Hash("correctpassword")
		require.NoError(t, err)
		assert.False(t, hasher.Verify("wrongpassword", hash))
	})

	t.Run("malformed stored hash fails without panic", func(t *testing.T) {
		for _, stored := range []string{
			"",
			"not-a-valid-hash",
			"$argon2i$v=19$m=32768,t=2,p=8$c2FsdA$aGFzaA",
			"$argon2id$vXX$m=32768,t=2,p=8$c2FsdA$aGFzaA",
			"$argon2id$v=19$broken$c2FsdA$aGFzaA",
			"$argon2id$v=19$m=32768,t=2,p=8$!!!$aGFzaA",
			"$argon2id$v=19$m=32768,t=2,p=8$c2FsdA$!!!",
			"$argon2id$v=19$m=32768,t=2,p=999$c2FsdA$aGFzaA",
		} {
			assert.False(t, hasher.Verify("password", stored), "stored=%q", stored)
		}
	})
}
