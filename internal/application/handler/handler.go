// Package handler exposes the application lifecycle over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"gatehouse/internal/application/models"
	"gatehouse/pkg/domain"
	dErrors "gatehouse/pkg/domain-errors"
	"gatehouse/pkg/platform/httputil"
	"gatehouse/pkg/requestcontext"
)

// Service defines the lifecycle operations the handler fronts.
type Service interface {
	Submit(ctx context.Context, sub models.Submission) (*models.Application, error)
	ListPending(ctx context.Context) ([]models.Application, error)
	Decide(ctx context.Context, id domain.ApplicationID, outcome models.Status, reason string) (*models.Application, error)
	ListArchived(ctx context.Context) ([]models.Application, error)
}

type Handler struct {
	logger  *slog.Logger
	service Service
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

// Register mounts the application routes. Authentication and request-scoped
// context run in the router's shared middleware chain, not here; submitMW
// applies to the submission route only.
func (h *Handler) Register(r chi.Router, submitMW ...func(http.Handler) http.Handler) {
	r.With(submitMW...).Post("/applications", h.handleSubmit)
	r.Get("/applications", h.handleListPending)
	r.Get("/applications/archive", h.handleListArchived)
	r.Patch("/applications/{id}", h.handleDecide)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	// Identity comes before form validation: an anonymous caller gets a 401,
	// not a critique of their form.
	if requestcontext.Identity(ctx).IsZero() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "sign in before submitting an application"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[SubmitRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	app, err := h.service.Submit(ctx, req.Submission())
	if err != nil {
		h.logError(ctx, "submission rejected", requestID, err)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "application submitted",
		"request_id", requestID,
		"application_id", app.ID,
	)
	httputil.WriteJSON(w, http.StatusCreated, app)
}

func (h *Handler) handleListPending(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	apps, err := h.service.ListPending(ctx)
	if err != nil {
		h.logError(ctx, "failed to list pending applications", requestcontext.RequestID(ctx), err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newListResponse(apps))
}

func (h *Handler) handleListArchived(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	apps, err := h.service.ListArchived(ctx)
	if err != nil {
		h.logError(ctx, "failed to list archived applications", requestcontext.RequestID(ctx), err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newListResponse(apps))
}

func (h *Handler) handleDecide(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	id, err := domain.ParseApplicationID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid application id"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[DecideRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	app, err := h.service.Decide(ctx, id, req.Outcome(), req.Reason)
	if err != nil {
		h.logError(ctx, "decision rejected", requestID, err)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "application decided",
		"request_id", requestID,
		"application_id", app.ID,
		"status", app.Status,
	)
	httputil.WriteJSON(w, http.StatusOK, app)
}

// logError keeps denial noise at warn and reserves error for failures on our
// side of the boundary.
func (h *Handler) logError(ctx context.Context, msg, requestID string, err error) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg, "request_id", requestID, "error", err)
		return
	}
	h.logger.WarnContext(ctx, msg, "request_id", requestID, "error", err)
}
