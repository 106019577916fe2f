package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/healthvibe/internal/httpserver/deps"
	"github.com/MrSnakeDoc/healthvibe/internal/httpserver/mw"
	"github.com/MrSnakeDoc/healthvibe/internal/httpserver/respond"
	"github.com/MrSnakeDoc/healthvibe/internal/logger"
)

// ForgetClient drops everything stored for the client: bookmarks, activity,
// ratings, settings and the generation session. The client cookie is expired.
func ForgetClient(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope := mw.ClientID(r.Context())

		d.Sessions.Forget(scope)
		if err := d.Store.Clear(r.Context(), scope); err != nil {
			d.Logger.Error("client data not cleared", logger.String("scope", scope), logger.Error(err))
			respond.Error(w, http.StatusServiceUnavailable, respond.CodeUnavailable, "stored data could not be cleared")
			return
		}

		d.Logger.Info("client forgotten", logger.String("scope", scope))
		mw.ExpireClientCookie(w)
		w.WriteHeader(http.StatusNoContent)
	}
}
