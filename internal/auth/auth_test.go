package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestNewTokenService(t *testing.T) {
	t.Run("rejects short secrets", func(t *testing.T) {
		_, err := NewTokenService("too-short", time.Hour)
		assert.Error(t, err)
	})

	t.Run("accepts a 32 character secret", func(t *testing.T) {
		_, err := NewTokenService(testSecret, time.Hour)
		assert.NoError(t, err)
	})
}

func TestTokenRoundTrip(t *testing.T) {
	service, err := NewTokenService(testSecret, time.Hour)
	require.NoError(t, err)

	token, err := service.Generate(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := service.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestTokenVerifyFailures(t *testing.T) {
	service, err := NewTokenService(testSecret, time.Hour)
	require.NoError(t, err)

	t.Run("garbage token", func(t *testing.T) {
		_, err := service.Verify("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token signed with a different secret", func(t *testing.T) {
		other, err := NewTokenService(strings.Repeat("x", 32), time.Hour)
		require.NoError(t, err)
		token, err := other.Generate(42)
		require.NoError(t, err)

		_, err = service.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		expired, err := NewTokenService(testSecret, -time.Hour)
		require.NoError(t, err)
		token, err := expired.Generate(42)
		require.NoError(t, err)

		_, err = service.Verify(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("pw12345")
	require.NoError(t, err)
	assert.NotEqual(t, "pw12345", hash)

	assert.True(t, CheckPassword(hash, "pw12345"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword("not-a-hash", "pw12345"))
}
