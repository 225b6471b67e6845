// ABOUTME: Bearer-token authentication middleware
// ABOUTME: Resolves the caller identity and stores it in the request context

package middleware

import (
	"context"
	"net/http"
	"strings"

	"readwell-api/core/interfaces"
)

// userIDContextKey is the context key for the authenticated user ID
type userIDContextKey struct{}

// Authentication creates a middleware that verifies the Authorization bearer
// token and stores the resolved user ID in the request context. Requests with
// a missing or invalid token are rejected with 401 before reaching handlers.
func Authentication(verifier interfaces.TokenVerifier, logger interfaces.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token := strings.TrimPrefix(header, "Bearer ")
			if header == "" || token == header {
				unauthorized(w, "missing bearer token")
				return
			}

			userID, err := verifier.Verify(token)
			if err != nil {
				if logger != nil {
					logger.Debug("Token verification failed", map[string]interface{}{
						"path":  r.URL.Path,
						"error": err.Error(),
					})
				}
				unauthorized(w, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), userIDContextKey{}, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID retrieves the authenticated user ID from the context.
func UserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDContextKey{}).(string)
	return userID, ok && userID != ""
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"` + message + `"}`))
}
