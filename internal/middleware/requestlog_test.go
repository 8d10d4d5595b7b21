package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/serroba/linkpreview/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLogger(t *testing.T) {
	t.Run("logs method, path, and status", func(t *testing.T) {
		core, logs := observer.New(zap.InfoLevel)
		logger := zap.New(core)

		handler := middleware.RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/p/desk", nil))

		assert.Equal(t, http.StatusTeapot, rec.Code)

		entries := logs.All()
		require.Len(t, entries, 1)
		assert.Equal(t, "request", entries[0].Message)

		fields := entries[0].ContextMap()
		assert.Equal(t, "GET", fields["method"])
		assert.Equal(t, "/p/desk", fields["path"])
		assert.Equal(t, int64(http.StatusTeapot), fields["status"])
	})

	t.Run("does not interfere with the response body", func(t *testing.T) {
		handler := middleware.RequestLogger(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("hello"))
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "hello", rec.Body.String())
	})
}
