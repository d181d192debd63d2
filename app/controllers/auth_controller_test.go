package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"inkpress/app/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestAuthController(t *testing.T) (*AuthController, *services.AuthService) {
	t.Helper()
	hash, err := services.HashPassword("hunter2hunter2")
	require.NoError(t, err)
	auth := services.NewAuthService("controller-test-secret", "admin", hash, time.Hour)
	return NewAuthController(auth), auth
}

func postLogin(controller *AuthController, payload string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(payload))
	w := httptest.NewRecorder()
	controller.Login(w, req)
	return w
}

func TestAuthControllerLogin(t *testing.T) {
	controller, auth := setupTestAuthController(t)

	t.Run("successful login returns a working token", func(t *testing.T) {
		w := postLogin(controller, `{"username": "admin", "password": "hunter2hunter2"}`)
		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Message string `json:"message"`
			Token   string `json:"token"`
			User    struct {
				Username string `json:"username"`
				Role     string `json:"role"`
			} `json:"user"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Login successful", resp.Message)
		assert.Equal(t, "admin", resp.User.Username)
		assert.Equal(t, "admin", resp.User.Role)

		claims := auth.Verify(resp.Token)
		require.NotNil(t, claims)
		assert.Equal(t, "admin", claims.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := postLogin(controller, `{"username": "admin", "password": "wrongpass"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid credentials")
	})

	t.Run("wrong username is indistinguishable from wrong password", func(t *testing.T) {
		w := postLogin(controller, `{"username": "root", "password": "hunter2hunter2"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid credentials")
	})

	t.Run("missing fields", func(t *testing.T) {
		w := postLogin(controller, `{"username": "admin"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		w := postLogin(controller, `{oops`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unconfigured password hash is a server error", func(t *testing.T) {
		unconfigured := NewAuthController(services.NewAuthService("s", "admin", "", time.Hour))
		w := postLogin(unconfigured, `{"username": "admin", "password": "anything"}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "Server configuration error")
	})
}
