package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/healthvibe/internal/httpserver/deps"
	"github.com/MrSnakeDoc/healthvibe/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/healthvibe/internal/httpserver/mw"
)

func init() { Register("profile", registerProfile) }

func registerProfile(r chi.Router, d deps.Deps) {
	api(r, d, func(r chi.Router) {
		r.Get("/api/activity", handlers.Activity(d))
		r.Get("/api/profile", handlers.Profile(d))

		r.Get("/api/settings", handlers.GetSettings(d))
		r.Put("/api/settings", handlers.PutSettings(d))
		r.Post("/api/settings/toggle", handlers.ToggleSetting(d))

		r.Delete("/api/client", handlers.ForgetClient(d))

		avatars := r.With(mw.RequireUser)
		if d.Avatars == nil {
			avatars.Put("/api/profile/avatar", handlers.AvatarsDisabled)
			avatars.Delete("/api/profile/avatar", handlers.AvatarsDisabled)
			return
		}
		avatars.Put("/api/profile/avatar", handlers.UploadAvatar(d))
		avatars.Delete("/api/profile/avatar", handlers.DeleteAvatar(d))
	})

	if d.AvatarDir != "" {
		files := http.StripPrefix("/avatars/", handlers.NoListing(http.FileServer(http.Dir(d.AvatarDir))))
		r.With(mw.EnforceHost(d.AllowedHosts, d.Logger)).Get("/avatars/*", files.ServeHTTP)
	}
}
