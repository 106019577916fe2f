package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/healthvibe/internal/httpserver/deps"
	"github.com/MrSnakeDoc/healthvibe/internal/httpserver/respond"
	"github.com/MrSnakeDoc/healthvibe/internal/logger"
)

type readyzResponse struct {
	Ready bool   `json:"ready"`
	Store string `json:"store"`
}

// Readyz reports ready once the catalog is loaded and the store answers a ping.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.Catalog == nil || d.Catalog.Len() == 0 {
			respond.Error(w, http.StatusServiceUnavailable, respond.CodeUnavailable, "catalog not loaded")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := d.Store.Ping(ctx); err != nil {
			d.Logger.Warn("readiness check failed",
				logger.String("store", d.StoreBackend),
				logger.Error(err))
			respond.Error(w, http.StatusServiceUnavailable, respond.CodeUnavailable, "store unavailable")
			return
		}

		respond.JSON(w, http.StatusOK, readyzResponse{Ready: true, Store: d.StoreBackend})
	}
}
