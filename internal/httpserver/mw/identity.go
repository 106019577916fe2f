package mw

import (
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/healthvibe/internal/httpserver/respond"
	"github.com/MrSnakeDoc/healthvibe/internal/identity"
	"github.com/MrSnakeDoc/healthvibe/internal/logger"
)

// Identity verifies an optional "Authorization: Bearer <jwt>" header. Requests
// without the header continue anonymously; invalid tokens get 401. A nil
// verifier disables the check and every request is anonymous.
func Identity(v *identity.Verifier, log logger.Logger) func(http.Handler) http.Handler {
	if v == nil {
		return passthrough
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if h == "" {
				next.ServeHTTP(w, r)
				return
			}
			token, ok := strings.CutPrefix(h, "Bearer ")
			if !ok {
				respond.Error(w, http.StatusUnauthorized, respond.CodeUnauthorized, "expected a bearer token")
				return
			}
			u, err := v.Verify(strings.TrimSpace(token))
			if err != nil {
				log.Debug("rejected bearer token", logger.Error(err))
				respond.Error(w, http.StatusUnauthorized, respond.CodeUnauthorized, "invalid token")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		})
	}
}

// RequireUser rejects anonymous requests.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := User(r.Context()); !ok {
			respond.Error(w, http.StatusUnauthorized, respond.CodeUnauthorized, "sign in required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
