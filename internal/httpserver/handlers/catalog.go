package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/healthvibe/internal/domain"
	"github.com/MrSnakeDoc/healthvibe/internal/export"
	"github.com/MrSnakeDoc/healthvibe/internal/httpserver/deps"
	"github.com/MrSnakeDoc/healthvibe/internal/httpserver/mw"
	"github.com/MrSnakeDoc/healthvibe/internal/httpserver/respond"
	"github.com/MrSnakeDoc/healthvibe/internal/logger"
)

// categoryView carries the stored count next to the count computed from the
// loaded remedies. The two may differ.
type categoryView struct {
	domain.Category
	LiveCount int `json:"liveCount"`
}

type remedyView struct {
	domain.Remedy
	Bookmarked bool `json:"isBookmarked"`
	UserRating int  `json:"userRating,omitempty"`
}

type searchResponse struct {
	Query   string          `json:"query,omitempty"`
	Count   int             `json:"count"`
	Results []domain.Remedy `json:"results"`
}

func Categories(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cats := d.Catalog.Categories()
		out := make([]categoryView, 0, len(cats))
		for _, c := range cats {
			out = append(out, categoryView{Category: c, LiveCount: d.Catalog.LiveCount(c.ID)})
		}
		respond.JSON(w, http.StatusOK, out)
	}
}

func Category(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		c, ok := d.Catalog.CategoryByID(id)
		if !ok {
			respond.NotFound(w, "category not found")
			return
		}
		respond.JSON(w, http.StatusOK, categoryView{Category: c, LiveCount: d.Catalog.LiveCount(c.ID)})
	}
}

// CategoryRemedies lists the remedies of a category. An unknown category yields
// an empty list, as remedies may reference categories that are not defined.
func CategoryRemedies(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusOK, d.Catalog.RemediesByCategory(chi.URLParam(r, "id")))
	}
}

// SearchRemedies filters the catalog by ?q=, ?category= and ?difficulty=. The
// query is only trimmed, then matched as a plain substring. A non-empty query
// is logged in the client's activity.
func SearchRemedies(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := r.URL.Query()
		query := strings.TrimSpace(params.Get("q"))
		filters := domain.Filters{
			Category:   params.Get("category"),
			Difficulty: params.Get("difficulty"),
		}

		results := d.Catalog.Search(query, filters)
		if query != "" {
			d.Activity.RecordSearch(r.Context(), mw.ClientID(r.Context()), query)
		}

		respond.JSON(w, http.StatusOK, searchResponse{
			Query:   query,
			Count:   len(results),
			Results: results,
		})
	}
}

func Remedy(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		scope := mw.ClientID(ctx)

		rem, ok := d.Catalog.RemedyByID(chi.URLParam(r, "id"))
		if !ok {
			respond.NotFound(w, "remedy not found")
			return
		}
		respond.JSON(w, http.StatusOK, remedyView{
			Remedy:     rem,
			Bookmarked: d.Bookmarks.IsBookmarked(ctx, scope, rem.ID),
			UserRating: d.Activity.RatingFor(ctx, scope, rem.ID),
		})
	}
}

// ExportRemedies streams the whole catalog as CSV (default) or XLSX.
func ExportRemedies(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.Query().Get("format")
		format, err := export.ParseFormat(raw)
		if err != nil {
			respond.BadRequest(w, respond.CodeInvalidRequest, err.Error())
			return
		}

		w.Header().Set("Content-Type", format.ContentType())
		w.Header().Set("Content-Disposition", `attachment; filename="`+format.Filename()+`"`)
		if err := export.Write(w, format, d.Catalog.Remedies()); err != nil {
			// Headers are gone by now, the client sees a truncated file.
			d.Logger.Error("catalog export failed",
				logger.String("format", raw),
				logger.Error(err))
		}
	}
}
