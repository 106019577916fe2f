package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/healthvibe/internal/httpserver/deps"
	"github.com/MrSnakeDoc/healthvibe/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/healthvibe/internal/httpserver/mw"
)

func init() { Register("generate", registerGenerate) }

// generateLimiterEntries bounds the bucket map of the generate limiter.
const generateLimiterEntries = 10_000

func registerGenerate(r chi.Router, d deps.Deps) {
	// Keyed on the caller address: the client ID is chosen by the caller and
	// would hand out a fresh bucket on every rotation.
	limit := mw.RateLimit(mw.RateLimitConfig{
		Burst:        d.GenerateBurst,
		RefillPerMin: d.GenerateRefillMin,
		MaxEntries:   generateLimiterEntries,
		TrustProxy:   d.TrustProxy,
	})

	api(r, d, func(r chi.Router) {
		r.With(limit).Post("/api/generate", handlers.Generate(d))
		r.Get("/api/generate", handlers.GenerationSession(d))
		r.Post("/api/assistant", handlers.Assistant(d))
	})
}
