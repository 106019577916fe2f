package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/healthvibe/internal/domain"
	"github.com/MrSnakeDoc/healthvibe/internal/httpserver/deps"
	"github.com/MrSnakeDoc/healthvibe/internal/httpserver/mw"
	"github.com/MrSnakeDoc/healthvibe/internal/httpserver/respond"
	"github.com/MrSnakeDoc/healthvibe/internal/logger"
)

type bookmarkStatus struct {
	ID         string `json:"id"`
	Bookmarked bool   `json:"isBookmarked"`
}

type bookmarkList struct {
	Count     int             `json:"count"`
	Bookmarks []domain.Remedy `json:"bookmarks"`
}

// Bookmarks lists the client's bookmarked remedies. Identifiers that resolve
// neither in the catalog nor in the generation session are left out.
func Bookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all := d.Bookmarks.All(r.Context(), mw.ClientID(r.Context()))
		respond.JSON(w, http.StatusOK, bookmarkList{Count: len(all), Bookmarks: all})
	}
}

func BookmarkStatus(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		respond.JSON(w, http.StatusOK, bookmarkStatus{
			ID:         id,
			Bookmarked: d.Bookmarks.IsBookmarked(r.Context(), mw.ClientID(r.Context()), id),
		})
	}
}

// ToggleBookmark flips the bookmark on id. Any identifier is accepted, resolved
// or not. The response carries the stored state, which is unchanged when the
// store failed. Only a persisted addition is logged in the activity feed.
func ToggleBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		scope := mw.ClientID(ctx)
		id := chi.URLParam(r, "id")

		now, applied := d.Bookmarks.Toggle(ctx, scope, id)
		if now && applied {
			d.Activity.RecordBookmark(ctx, scope, id, remedyName(d, scope, id))
		}
		d.Logger.Debug("bookmark toggled",
			logger.String("remedy_id", id),
			logger.Bool("bookmarked", now),
			logger.Bool("applied", applied))

		respond.JSON(w, http.StatusOK, bookmarkStatus{ID: id, Bookmarked: now})
	}
}

// remedyName looks id up in the catalog, then in the client's generation
// session. Empty when unknown.
func remedyName(d deps.Deps, scope, id string) string {
	if rem, ok := d.Catalog.RemedyByID(id); ok {
		return rem.Name
	}
	if g, ok := d.Sessions.Lookup(scope, id); ok {
		return g.Name
	}
	return ""
}
