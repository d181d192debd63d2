package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-signing-secret"

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	return NewAuthService(testSecret, "admin", hash, time.Hour)
}

func TestAuthenticate(t *testing.T) {
	auth := newTestAuthService(t)

	t.Run("valid credentials issue a verifiable token", func(t *testing.T) {
		token, claims, err := auth.Authenticate("admin", "correct horse")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "admin", claims.Username)
		assert.Equal(t, "admin", claims.Role)

		parsed := auth.Verify(token)
		require.NotNil(t, parsed)
		assert.Equal(t, "admin", parsed.Username)
		assert.Equal(t, "admin", parsed.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := auth.Authenticate("admin", "wrongpass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("wrong username", func(t *testing.T) {
		_, _, err := auth.Authenticate("root", "correct horse")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("missing password hash", func(t *testing.T) {
		unconfigured := NewAuthService(testSecret, "admin", "", time.Hour)
		_, _, err := unconfigured.Authenticate("admin", "correct horse")
		assert.ErrorIs(t, err, ErrNotConfigured)
	})
}

func TestVerify(t *testing.T) {
	auth := newTestAuthService(t)

	t.Run("garbage token", func(t *testing.T) {
		assert.Nil(t, auth.Verify("not-a-jwt"))
		assert.Nil(t, auth.Verify(""))
	})

	t.Run("token signed with a different secret", func(t *testing.T) {
		other := NewAuthService("some-other-secret", "admin", auth.adminHash, time.Hour)
		token, _, err := other.Authenticate("admin", "correct horse")
		require.NoError(t, err)
		assert.Nil(t, auth.Verify(token))
	})

	t.Run("expired token", func(t *testing.T) {
		shortLived := NewAuthService(testSecret, "admin", auth.adminHash, time.Millisecond)
		token, _, err := shortLived.Authenticate("admin", "correct horse")
		require.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
		assert.Nil(t, shortLived.Verify(token))
	})
}

func TestAuthorize(t *testing.T) {
	auth := newTestAuthService(t)
	token, _, err := auth.Authenticate("admin", "correct horse")
	require.NoError(t, err)

	request := func(header string) *http.Request {
		r, _ := http.NewRequest(http.MethodPost, "/api/posts", nil)
		if header != "" {
			r.Header.Set("Authorization", header)
		}
		return r
	}

	t.Run("valid bearer token", func(t *testing.T) {
		assert.NoError(t, auth.Authorize(request("Bearer "+token)))
	})

	t.Run("missing header", func(t *testing.T) {
		assert.ErrorIs(t, auth.Authorize(request("")), ErrMissingToken)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		assert.ErrorIs(t, auth.Authorize(request("Basic "+token)), ErrMissingToken)
	})

	t.Run("forged token", func(t *testing.T) {
		assert.ErrorIs(t, auth.Authorize(request("Bearer abc.def.ghi")), ErrInvalidToken)
	})
}
