package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gatehouse/internal/ratelimit"
)

type failingLimitStore struct{}

func (failingLimitStore) Allow(context.Context, string, int, time.Duration) (*ratelimit.Result, error) {
	return nil, errors.New("redis: connection refused")
}

func TestRateLimit(t *testing.T) {
	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("refuses with 429 once the window is spent", func(t *testing.T) {
		mw := RateLimit(ratelimit.NewInMemoryStore(), 2, time.Minute, slog.New(slog.DiscardHandler))
		wrapped := mw(okHandler)

		var rec *httptest.ResponseRecorder
		for i := 0; i < 3; i++ {
			rec = httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/applications", nil)
			req.RemoteAddr = "203.0.113.7:51000"
			wrapped.ServeHTTP(rec, req)
		}

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
		assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	})

	t.Run("separates clients by forwarded address", func(t *testing.T) {
		mw := RateLimit(ratelimit.NewInMemoryStore(), 1, time.Minute, slog.New(slog.DiscardHandler))
		wrapped := mw(okHandler)

		first := httptest.NewRequest(http.MethodPost, "/applications", nil)
		first.Header.Set("X-Forwarded-For", "198.51.100.1, 10.0.0.2")
		rec := httptest.NewRecorder()
		wrapped.ServeHTTP(rec, first)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		second := httptest.NewRequest(http.MethodPost, "/applications", nil)
		second.Header.Set("X-Forwarded-For", "198.51.100.2")
		rec = httptest.NewRecorder()
		wrapped.ServeHTTP(rec, second)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("fails open when the limiter backend is down", func(t *testing.T) {
		mw := RateLimit(failingLimitStore{}, 1, time.Minute, slog.New(slog.DiscardHandler))
		wrapped := mw(okHandler)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/applications", nil)
		wrapped.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}
