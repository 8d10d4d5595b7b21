package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/serroba/linkpreview/internal/auth"
	"github.com/serroba/linkpreview/internal/handlers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type emptyResponse struct{}

func newGuardedServer(t *testing.T, sessions auth.SessionProvider) *httptest.Server {
	t.Helper()

	router := chi.NewMux()
	api := humachi.New(router, huma.DefaultConfig("test", "0.0.1"))
	api.UseMiddleware(handlers.SessionGuard(api, sessions))

	ok := func(context.Context, *struct{}) (*emptyResponse, error) {
		return &emptyResponse{}, nil
	}

	huma.Get(api, "/api/admin/links", ok)
	huma.Post(api, "/api/admin/login", func(context.Context, *struct{}) (*emptyResponse, error) {
		return &emptyResponse{}, nil
	})
	huma.Get(api, "/health", ok)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return server
}

func TestSessionGuard(t *testing.T) {
	sessions := auth.NewSharedSecretProvider("hunter2", "signing-secret")

	t.Run("rejects admin calls without a cookie", func(t *testing.T) {
		server := newGuardedServer(t, sessions)

		resp, err := http.Get(server.URL + "/api/admin/links")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("rejects admin calls with a tampered cookie", func(t *testing.T) {
		server := newGuardedServer(t, sessions)

		req, err := http.NewRequest(http.MethodGet, server.URL+"/api/admin/links", nil)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "forged"})

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("passes admin calls with a valid cookie", func(t *testing.T) {
		server := newGuardedServer(t, sessions)

		token, err := sessions.Issue("hunter2")
		require.NoError(t, err)

		req, err := http.NewRequest(http.MethodGet, server.URL+"/api/admin/links", nil)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("login is reachable without a cookie", func(t *testing.T) {
		server := newGuardedServer(t, sessions)

		resp, err := http.Post(server.URL+"/api/admin/login", "application/json", strings.NewReader("{}"))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("non-admin paths are not guarded", func(t *testing.T) {
		server := newGuardedServer(t, sessions)

		resp, err := http.Get(server.URL + "/health")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}
