package services

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenService(t *testing.T) {
	t.Run("accepts HMAC algorithms", func(t *testing.T) {
		for _, alg := range []string{"HS256", "HS384", "HS512"} {
			svc, err := NewTokenService("secret", alg)
			require.NoError(t, err, alg)
			assert.NotNil(t, svc)
		}
	})

	t.Run("rejects non-HMAC algorithms", func(t *testing.T) {
		for _, alg := range []string{"RS256", "ES256", "none", "bogus"} {
			_, err := NewTokenService("secret", alg)
			assert.Error(t, err, alg)
		}
	})
}

func TestIssueAndVerify(t *testing.T) {
	svc, err := NewTokenService("test-secret", "HS256")
	require.NoError(t, err)

	t.Run("round trip returns subject and timestamps", func(t *testing.T) {
		issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		svc.now = func() time.Time { return issued }

		token, err := svc.Issue("user@example.com", 30*time.Minute)
		require.NoError(t, err)

		claims, err := svc.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "user@example.com", claims.Subject)
		assert.Equal(t, issued, claims.IssuedAt)
		assert.Equal(t, issued.Add(30*time.Minute), claims.ExpiresAt)
	})

	t.Run("expired token", func(t *testing.T) {
		issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		svc.now = func() time.Time { return issued }
		token, err := svc.Issue("user@example.com", time.Minute)
		require.NoError(t, err)

		svc.now = func() time.Time { return issued.Add(2 * time.Minute) }
		_, err = svc.Verify(token)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("wrong secret", func(t *testing.T) {
		svc.now = time.Now
		token, err := svc.Issue("user@example.com", time.Minute)
		require.NoError(t, err)

		other, err := NewTokenService("different-secret", "HS256")
		require.NoError(t, err)
		_, err = other.Verify(token)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("tampered payload", func(t *testing.T) {
		svc.now = time.Now
		token, err := svc.Issue("user@example.com", time.Minute)
		require.NoError(t, err)

		parts := strings.Split(token, ".")
		require.Len(t, parts, 3)
		parts[1] = "eyJzdWIiOiJhdHRhY2tlckBleGFtcGxlLmNvbSJ9"
		_, err = svc.Verify(strings.Join(parts, "."))
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.Verify("not.a.token")
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("token without expiry is rejected", func(t *testing.T) {
		raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject: "user@example.com",
		})
		signed, err := raw.SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = svc.Verify(signed)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})
}
