// Package middleware holds the HTTP middleware the API router composes:
// bearer-token authentication and request body limits.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ketchupdev/ketchup/internal/application/auth"
)

// MaxBodyBytes caps request bodies. Forms here are a handful of short
// fields; anything near the cap is garbage.
const MaxBodyBytes = 64 * 1024

// TokenValidator checks a presented bearer token and returns the session
// owner's user id.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (string, error)
}

// Authenticate resolves the caller's identity from the Authorization
// header and stores it in the request context. Requests without a valid
// token pass through unauthenticated; the action layer rejects them with
// its own login-required failure, so gating lives in one place.
func Authenticate(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := validator.ValidateToken(r.Context(), token)
			if err != nil {
				slog.WarnContext(r.Context(), "token validation failed", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), userID)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

// LimitBody rejects oversized request bodies before handlers read them.
func LimitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
		}
		next.ServeHTTP(w, r)
	})
}
