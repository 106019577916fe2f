package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/healthvibe/internal/httpserver/deps"
	"github.com/MrSnakeDoc/healthvibe/internal/httpserver/handlers"
)

func init() { Register("bookmarks", registerBookmarks) }

func registerBookmarks(r chi.Router, d deps.Deps) {
	api(r, d, func(r chi.Router) {
		r.Get("/api/bookmarks", handlers.Bookmarks(d))
		r.Get("/api/bookmarks/{id}", handlers.BookmarkStatus(d))
		r.Post("/api/bookmarks/{id}/toggle", handlers.ToggleBookmark(d))
	})
}
