package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/healthvibe/internal/httpserver/deps"
	"github.com/MrSnakeDoc/healthvibe/internal/httpserver/respond"
)

type componentStatus struct {
	OK     bool   `json:"ok"`
	Mode   string `json:"mode,omitempty"`
	Count  *int   `json:"count,omitempty"`
	Impact string `json:"impact,omitempty"`
	Error  string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		remedies := 0
		if d.Catalog != nil {
			remedies = d.Catalog.Len()
		}
		sessions := 0
		if d.Sessions != nil {
			sessions = d.Sessions.Len()
		}

		components := map[string]componentStatus{
			"catalog": {
				OK:    remedies > 0,
				Mode:  d.CatalogSource,
				Count: &remedies,
			},
			"store": checkStore(r.Context(), d),
			"sessions": {
				OK:    true,
				Count: &sessions,
			},
			"identity": optional(d.Identity != nil, "jwt", "anonymous-only"),
			"avatars":  optional(d.Avatars != nil, "enabled", "profile-images-disabled"),
		}

		respond.JSON(w, http.StatusOK, infraResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

func optional(enabled bool, mode, impact string) componentStatus {
	if enabled {
		return componentStatus{OK: true, Mode: mode}
	}
	return componentStatus{OK: true, Mode: "disabled", Impact: impact}
}

func determineMode(components map[string]componentStatus) string {
	if c := components["catalog"]; !c.OK {
		return "critical" // nothing to serve
	}
	if s := components["store"]; !s.OK {
		return "degraded" // client state falls back to defaults
	}
	return "operational"
}

func checkStore(parent context.Context, d deps.Deps) componentStatus {
	if d.Store == nil {
		return componentStatus{
			OK:     false,
			Mode:   d.StoreBackend,
			Impact: "client-state-not-persisted",
			Error:  "store not initialized",
		}
	}

	ctx, cancel := context.WithTimeout(parent, 2*time.Second)
	defer cancel()

	if err := d.Store.Ping(ctx); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   d.StoreBackend,
			Impact: "client-state-not-persisted",
			Error:  err.Error(),
		}
	}
	return componentStatus{OK: true, Mode: d.StoreBackend}
}
