package mw

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows browser clients from origins. Credentials are only allowed when
// explicitly enabled, and never together with the "*" origin.
func CORS(origins []string, allowCredentials bool) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	for _, o := range origins {
		if o == "*" {
			allowCredentials = false
		}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", ClientHeader},
		ExposedHeaders:   []string{ClientHeader, "Retry-After", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: allowCredentials,
		MaxAge:           300,
	})
}
