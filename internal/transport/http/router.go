// Package httptransport assembles the public HTTP surface: middleware chain,
// application routes, health, and metrics.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gatehouse/internal/application/handler"
	"gatehouse/internal/platform/middleware"
	"gatehouse/pkg/platform/httputil"
)

// HealthCheck probes one dependency. A nil error means healthy.
type HealthCheck func(ctx context.Context) error

type Router struct {
	logger      *slog.Logger
	validator   middleware.TokenValidator
	app         *handler.Handler
	checks      map[string]HealthCheck
	submitLimit func(http.Handler) http.Handler
}

func NewRouter(app *handler.Handler, validator middleware.TokenValidator, logger *slog.Logger, checks map[string]HealthCheck) *Router {
	return &Router{
		logger:    logger,
		validator: validator,
		app:       app,
		checks:    checks,
	}
}

// WithSubmitLimit throttles the submission route. Listing and review routes
// stay unlimited; they are already gated by the reviewer role.
func (rt *Router) WithSubmitLimit(mw func(http.Handler) http.Handler) *Router {
	rt.submitLimit = mw
	return rt
}

// Handler builds the chi router. Every application route runs behind the same
// chain: request id first, then the pinned request clock, then authentication.
func (rt *Router) Handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", rt.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequestID)
		r.Use(middleware.RequestTime)
		r.Use(middleware.Authenticate(rt.validator, rt.logger))
		if rt.submitLimit != nil {
			rt.app.Register(r, rt.submitLimit)
		} else {
			rt.app.Register(r)
		}
	})

	return r
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// handleHealth reports overall liveness plus a line per registered dependency.
// A failing dependency degrades the response to 503 so orchestrators can act.
func (rt *Router) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := healthResponse{Status: "ok"}
	status := http.StatusOK
	if len(rt.checks) > 0 {
		resp.Checks = make(map[string]string, len(rt.checks))
		for name, check := range rt.checks {
			if err := check(ctx); err != nil {
				resp.Checks[name] = err.Error()
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}
	}

	httputil.WriteJSON(w, status, resp)
}
