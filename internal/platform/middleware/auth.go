package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"gatehouse/pkg/domain"
	"gatehouse/pkg/requestcontext"
)

// TokenValidator turns a bearer token into the actor's provider identity.
type TokenValidator interface {
	ValidateToken(tokenString string) (domain.Identity, error)
}

// Authenticate resolves the caller's identity from the Authorization header
// and stores it in the request context.
//
// A missing header is not rejected here: the request proceeds with a zero
// identity and the access policy reports Unauthenticated for operations that
// need an actor. A header that is present but invalid fails immediately with
// 401 so callers with expired tokens get a precise signal.
func Authenticate(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			const bearerPrefix = "Bearer "
			token, ok := strings.CutPrefix(authHeader, bearerPrefix)
			if !ok {
				unauthorized(w)
				return
			}

			ident, err := validator.ValidateToken(token)
			if err != nil {
				ctx := r.Context()
				logger.WarnContext(ctx, "rejected invalid token",
					"request_id", requestcontext.RequestID(ctx),
					"error", err,
				)
				unauthorized(w)
				return
			}

			ctx := requestcontext.WithIdentity(r.Context(), ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"Invalid or expired token"}`))
}
