package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/healthvibe/internal/httpserver/deps"
	"github.com/MrSnakeDoc/healthvibe/internal/httpserver/handlers"
)

func init() { Register("catalog", registerCatalog) }

func registerCatalog(r chi.Router, d deps.Deps) {
	api(r, d, func(r chi.Router) {
		r.Get("/api/categories", handlers.Categories(d))
		r.Get("/api/categories/{id}", handlers.Category(d))
		r.Get("/api/categories/{id}/remedies", handlers.CategoryRemedies(d))

		r.Get("/api/remedies", handlers.SearchRemedies(d))
		r.Get("/api/remedies/export", handlers.ExportRemedies(d))
		r.Get("/api/remedies/{id}", handlers.Remedy(d))
		r.Post("/api/remedies/{id}/rating", handlers.RateRemedy(d))
	})
}
