package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gatehouse/internal/application/handler"
	"gatehouse/internal/application/models"
	"gatehouse/internal/identity"
	"gatehouse/pkg/domain"
	"gatehouse/pkg/requestcontext"
	"gatehouse/pkg/testutil"
)

// identityEcho captures the identity the middleware chain delivered.
type identityEcho struct {
	seen domain.Identity
}

func (e *identityEcho) Submit(ctx context.Context, sub models.Submission) (*models.Application, error) {
	e.seen = requestcontext.Identity(ctx)
	return models.NewApplication(domain.NewApplicationID(), sub, e.seen, requestcontext.Now(ctx)), nil
}

func (e *identityEcho) ListPending(ctx context.Context) ([]models.Application, error) {
	e.seen = requestcontext.Identity(ctx)
	return []models.Application{}, nil
}

func (e *identityEcho) Decide(ctx context.Context, id domain.ApplicationID, outcome models.Status, reason string) (*models.Application, error) {
	return nil, errors.New("not exercised")
}

func (e *identityEcho) ListArchived(ctx context.Context) ([]models.Application, error) {
	return []models.Application{}, nil
}

func newTestRouter(t *testing.T, echo *identityEcho, checks map[string]HealthCheck) (http.Handler, *identity.TokenService) {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	tokens := identity.NewTokenService("test-signing-key", "gatehouse", "gatehouse")
	appHandler := handler.New(echo, logger)
	return NewRouter(appHandler, tokens, logger, checks).Handler(), tokens
}

func TestRouter_Health(t *testing.T) {
	t.Run("healthy dependencies report ok", func(t *testing.T) {
		router, _ := newTestRouter(t, &identityEcho{}, map[string]HealthCheck{
			"store": func(context.Context) error { return nil },
		})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var resp healthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "ok", resp.Status)
		assert.Equal(t, "ok", resp.Checks["store"])
	})

	t.Run("a failing dependency degrades to 503", func(t *testing.T) {
		router, _ := newTestRouter(t, &identityEcho{}, map[string]HealthCheck{
			"redis": func(context.Context) error { return errors.New("connection refused") },
		})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "degraded")
	})
}

func TestRouter_Metrics(t *testing.T) {
	router, _ := newTestRouter(t, &identityEcho{}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestRouter_AuthenticationChain(t *testing.T) {
	t.Run("a minted session token delivers the identity to the handler", func(t *testing.T) {
		echo := &identityEcho{}
		router, tokens := newTestRouter(t, echo, nil)

		token, err := tokens.MintSessionToken(testutil.Applicant("200000000000000001"), time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/applications", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "200000000000000001", echo.seen.ProviderID)
	})

	t.Run("a forged token is rejected before the handler", func(t *testing.T) {
		echo := &identityEcho{}
		router, _ := newTestRouter(t, echo, nil)

		forger := identity.NewTokenService("other-key", "gatehouse", "gatehouse")
		token, err := forger.MintSessionToken(testutil.Applicant("200000000000000001"), time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/applications", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.True(t, echo.seen.IsZero())
	})

	t.Run("no token reaches the handler as anonymous", func(t *testing.T) {
		echo := &identityEcho{seen: testutil.Applicant("sentinel")}
		router, _ := newTestRouter(t, echo, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/applications", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, echo.seen.IsZero())
	})
}
