package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	a := NewJWTAuthenticator("s3cret", "kisansetu", "kisansetu", time.Hour)

	tok, err := a.GenerateToken("sess_123")
	require.NoError(t, err)

	parsed, err := a.ValidateToken(tok)
	require.NoError(t, err)

	id, err := SessionIDFromToken(parsed)
	require.NoError(t, err)
	assert.Equal(t, "sess_123", id)
}

func TestValidateTokenRejects(t *testing.T) {
	a := NewJWTAuthenticator("s3cret", "kisansetu", "kisansetu", time.Hour)
	tok, err := a.GenerateToken("sess_123")
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTAuthenticator("other", "kisansetu", "kisansetu", time.Hour)
		_, err := other.ValidateToken(tok)
		assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
	})

	t.Run("wrong audience", func(t *testing.T) {
		other := NewJWTAuthenticator("s3cret", "admin", "kisansetu", time.Hour)
		_, err := other.ValidateToken(tok)
		assert.ErrorIs(t, err, jwt.ErrTokenInvalidAudience)
	})

	t.Run("expired", func(t *testing.T) {
		later := NewJWTAuthenticator("s3cret", "kisansetu", "kisansetu", time.Hour)
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := later.ValidateToken(tok)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := a.ValidateToken("not-a-token")
		assert.Error(t, err)
	})
}

func TestSessionIDFromToken(t *testing.T) {
	_, err := SessionIDFromToken(nil)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = SessionIDFromToken(&jwt.Token{Valid: true, Claims: jwt.MapClaims{}})
	assert.ErrorIs(t, err, ErrInvalidToken)
}
