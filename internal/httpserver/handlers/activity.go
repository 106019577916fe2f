package handlers

import (
	"net/http"
	"strconv"

	"github.com/MrSnakeDoc/healthvibe/internal/domain"
	"github.com/MrSnakeDoc/healthvibe/internal/httpserver/deps"
	"github.com/MrSnakeDoc/healthvibe/internal/httpserver/mw"
	"github.com/MrSnakeDoc/healthvibe/internal/httpserver/respond"
)

// Activity returns the client's activity feed, most recent first. ?limit=
// caps the number of entries.
func Activity(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		scope := mw.ClientID(ctx)

		var entries []domain.ActivityEntry
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				respond.BadRequest(w, respond.CodeInvalidRequest, "limit must be a positive integer")
				return
			}
			entries = d.Activity.Recent(ctx, scope, n)
		} else {
			entries = d.Activity.Entries(ctx, scope)
		}
		if entries == nil {
			entries = []domain.ActivityEntry{}
		}
		respond.JSON(w, http.StatusOK, entries)
	}
}
