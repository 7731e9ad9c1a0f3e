// Package httputil centralizes JSON response writing and request decoding so
// every handler speaks the same envelope.
package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	dErrors "gatehouse/pkg/domain-errors"
)

// Validatable is implemented by request types that validate and parse
// themselves after decoding.
type Validatable interface {
	Validate() error
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorEnvelope struct {
	Error       string                   `json:"error"`
	Description string                   `json:"error_description,omitempty"`
	Fields      []dErrors.FieldViolation `json:"fields,omitempty"`
}

// WriteError translates a domain error into the JSON error envelope.
// Internal errors deliberately omit the description so storage details never
// leak to clients; everything else includes it. Validation errors additionally
// carry the complete field violation list.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	envelope := errorEnvelope{Error: string(code)}

	var de *dErrors.Error
	if code != dErrors.CodeInternal && errors.As(err, &de) {
		envelope.Description = de.Message
		envelope.Fields = de.Fields
	}

	WriteJSON(w, dErrors.ToHTTPStatus(code), envelope)
}

// DecodeAndPrepare decodes the request body into T and runs its Validate
// method, writing the error response itself on failure. Returns ok=false when
// the handler should stop.
func DecodeAndPrepare[T any, PT interface {
	Validatable
	*T
}](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (*T, bool) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "failed to decode request body",
			"request_id", requestID,
			"error", err,
		)
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid JSON body"))
		return nil, false
	}
	if err := PT(&req).Validate(); err != nil {
		WriteError(w, err)
		return nil, false
	}
	return &req, true
}
