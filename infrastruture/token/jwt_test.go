package token

import (
	"crypto/rand"
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSecret(t *testing.T) string {
	t.Helper()
	bytes := make([]byte, 32)
	_, err := rand.Read(bytes)
	require.NoError(t, err)
	return base64.URLEncoding.EncodeToString(bytes)
}

func TestJwtService(t *testing.T) {
	secretKey := newSecret(t)
	issuer := "testIssuer"

	svc, err := NewJwtService(secretKey, issuer)
	require.NoError(t, err)

	t.Run("Generate and Decode valid token", func(t *testing.T) {
		claims := map[string]interface{}{
			"session_id": "3d6f0a7e-6c1f-4b43-9a57-8d6c2b0f6a11",
		}

		token, err := svc.Generate(claims, 5*time.Minute)
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		decoded, err := svc.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, claims["session_id"], decoded["session_id"])
		assert.Equal(t, issuer, decoded["iss"])
	})

	t.Run("Decode invalid token", func(t *testing.T) {
		_, err := svc.Decode("invalidTokenString")
		assert.Error(t, err)
	})

	t.Run("Decode expired token", func(t *testing.T) {
		token, err := svc.Generate(map[string]interface{}{"session_id": "x"}, -time.Minute)
		require.NoError(t, err)

		_, err = svc.Decode(token)
		assert.Error(t, err)
	})

	t.Run("Issuer cannot be overridden by claims", func(t *testing.T) {
		token, err := svc.Generate(map[string]interface{}{"iss": "someone-else"}, time.Minute)
		require.NoError(t, err)

		decoded, err := svc.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, issuer, decoded["iss"])
	})

	t.Run("Reject token from another issuer", func(t *testing.T) {
		other, err := NewJwtService(secretKey, "otherIssuer")
		require.NoError(t, err)
		token, err := other.Generate(map[string]interface{}{}, time.Minute)
		require.NoError(t, err)

		_, err = svc.Decode(token)
		assert.ErrorIs(t, err, ErrInvalidIssuer)
	})

	t.Run("Reject token signed with another secret", func(t *testing.T) {
		other, err := NewJwtService(newSecret(t), issuer)
		require.NoError(t, err)
		token, err := other.Generate(map[string]interface{}{}, time.Minute)
		require.NoError(t, err)

		_, err = svc.Decode(token)
		assert.Error(t, err)
	})

	t.Run("Empty secret", func(t *testing.T) {
		_, err := NewJwtService("", issuer)
		assert.ErrorIs(t, err, ErrEmptySecret)
	})
}
