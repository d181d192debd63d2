package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"inkpress/app/models"
	"inkpress/app/services"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPassword = "integration-pass"

func setupTestServer(t *testing.T) http.Handler {
	t.Helper()

	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	hash, err := services.HashPassword(testPassword)
	require.NoError(t, err)
	auth := services.NewAuthService("routes-test-secret", "admin", hash, time.Hour)

	return SetupRoutes(db, auth)
}

func doJSON(t *testing.T, handler http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, handler http.Handler) string {
	t.Helper()
	w := doJSON(t, handler, http.MethodPost, "/api/auth/login", "",
		`{"username": "admin", "password": "`+testPassword+`"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestAPIFlow(t *testing.T) {
	handler := setupTestServer(t)
	token := login(t, handler)

	t.Run("mutations without a token are rejected before the store", func(t *testing.T) {
		w := doJSON(t, handler, http.MethodPost, "/api/posts", "",
			`{"title": "Sneaky", "content": "content"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		w = doJSON(t, handler, http.MethodGet, "/api/posts?search=Sneaky", "", "")
		var page models.PostPage
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
		assert.Zero(t, page.Total)
	})

	var created models.Post

	t.Run("create", func(t *testing.T) {
		w := doJSON(t, handler, http.MethodPost, "/api/posts", token,
			`{"title": "Hello, World!", "content": "First content", "published": true}`)
		require.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			Post models.Post `json:"post"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		created = resp.Post
		assert.Equal(t, "hello-world", created.Slug)
	})

	t.Run("duplicate title gets a suffixed slug", func(t *testing.T) {
		w := doJSON(t, handler, http.MethodPost, "/api/posts", token,
			`{"title": "Hello, World!", "content": "Second content"}`)
		require.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			Post models.Post `json:"post"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "hello-world-1", resp.Post.Slug)
	})

	t.Run("read by slug and by id", func(t *testing.T) {
		w := doJSON(t, handler, http.MethodGet, "/api/posts/hello-world", "", "")
		assert.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, handler, http.MethodGet, "/api/posts/"+created.ID, "", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("update with explicit unpublish", func(t *testing.T) {
		w := doJSON(t, handler, http.MethodPut, "/api/posts/"+created.ID, token,
			`{"published": false}`)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Post models.Post `json:"post"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Post.Published)
		assert.Equal(t, "Hello, World!", resp.Post.Title)
	})

	t.Run("published list excludes drafts", func(t *testing.T) {
		w := doJSON(t, handler, http.MethodGet, "/api/posts?published=true", "", "")
		require.Equal(t, http.StatusOK, w.Code)

		var page models.PostPage
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
		assert.Zero(t, page.Total)
	})

	t.Run("delete", func(t *testing.T) {
		w := doJSON(t, handler, http.MethodDelete, "/api/posts/"+created.ID, token, "")
		assert.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, handler, http.MethodGet, "/api/posts/"+created.ID, "", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		w := doJSON(t, handler, http.MethodPut, "/api/posts", token, `{}`)
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
		assert.Contains(t, w.Body.String(), "Method Not Allowed")
	})

	t.Run("preflight", func(t *testing.T) {
		w := doJSON(t, handler, http.MethodOptions, "/api/posts", "", "")
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("login with wrong credentials", func(t *testing.T) {
		w := doJSON(t, handler, http.MethodPost, "/api/auth/login", "",
			`{"username": "admin", "password": "wrongpass"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
