package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/healthvibe/internal/httpserver/deps"
	"github.com/MrSnakeDoc/healthvibe/internal/httpserver/mw"
)

// api registers fn's routes in a group carrying the /api middlewares: host
// filter, client scope and identity. Routes keep their full /api/... path.
func api(r chi.Router, d deps.Deps, fn func(r chi.Router)) {
	r.Group(func(r chi.Router) {
		r.Use(
			mw.EnforceHost(d.AllowedHosts, d.Logger),
			mw.ClientScope(d.SecureCookie, d.Logger),
			mw.Identity(d.Identity, d.Logger),
		)
		fn(r)
	})
}
