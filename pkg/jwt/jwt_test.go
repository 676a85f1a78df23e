package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_RoundTrip(t *testing.T) {
	svc := NewService("secret", "bowl-bot", time.Hour)

	token, err := svc.GenerateToken("lane-terminal-4", "4", RoleScorer, 0)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "lane-terminal-4", claims.Subject)
	assert.Equal(t, "4", claims.Lane)
	assert.Equal(t, "bowl-bot", claims.Issuer)
	assert.True(t, Role(claims.Role).CanScore())
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestService_Rejects(t *testing.T) {
	svc := NewService("secret", "bowl-bot", time.Hour)

	t.Run("wrong secret", func(t *testing.T) {
		token, err := NewService("other", "bowl-bot", time.Hour).GenerateToken("x", "", RoleViewer, 0)
		require.NoError(t, err)
		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("expired", func(t *testing.T) {
		past := NewService("secret", "bowl-bot", time.Hour).(*service)
		past.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, err := past.GenerateToken("x", "", RoleViewer, time.Minute)
		require.NoError(t, err)
		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		token, err := NewService("secret", "someone-else", time.Hour).GenerateToken("x", "", RoleViewer, 0)
		require.NoError(t, err)
		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unknown role cannot be issued", func(t *testing.T) {
		_, err := svc.GenerateToken("x", "", Role("owner"), 0)
		assert.ErrorIs(t, err, ErrUnknownRole)
	})
}

func TestRole(t *testing.T) {
	assert.False(t, RoleViewer.CanScore())
	assert.True(t, RoleScorer.CanScore())
	assert.True(t, RoleAdmin.CanScore())
	assert.False(t, Role("").Valid())
}
