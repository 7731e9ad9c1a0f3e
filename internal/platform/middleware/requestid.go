package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"gatehouse/pkg/requestcontext"
)

// RequestID assigns each request a correlation id, honoring one supplied by
// an upstream proxy. The id threads through logs and audit events.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
