package handlers

import (
	"net/http"
	"time"

	"github.com/MrSnakeDoc/healthvibe/internal/activity"
	"github.com/MrSnakeDoc/healthvibe/internal/domain"
	"github.com/MrSnakeDoc/healthvibe/internal/httpserver/deps"
	"github.com/MrSnakeDoc/healthvibe/internal/httpserver/mw"
	"github.com/MrSnakeDoc/healthvibe/internal/httpserver/respond"
)

// profileRecentActivity is how many activity entries the profile shows.
const profileRecentActivity = 5

type profileResponse struct {
	DisplayName    string                 `json:"displayName"`
	Email          string                 `json:"email,omitempty"`
	Authenticated  bool                   `json:"authenticated"`
	AvatarURL      string                 `json:"avatarUrl,omitempty"`
	MemberSince    *time.Time             `json:"memberSince,omitempty"`
	Stats          domain.Stats           `json:"stats"`
	RecentActivity []domain.ActivityEntry `json:"recentActivity"`
}

// Profile summarizes the caller: identity, statistics and latest activity.
// Anonymous clients get the same summary under the name "User".
func Profile(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		scope := mw.ClientID(ctx)
		user, authenticated := mw.User(ctx)

		resp := profileResponse{
			DisplayName:   user.DisplayName(),
			Email:         user.Email,
			Authenticated: authenticated,
			AvatarURL:     user.AvatarURL,
			Stats: d.Activity.Stats(ctx, scope, activity.StatsInput{
				Bookmarks:  d.Bookmarks.Count(ctx, scope),
				SignedUpAt: user.CreatedAt,
			}),
			RecentActivity: d.Activity.Recent(ctx, scope, profileRecentActivity),
		}
		if !user.CreatedAt.IsZero() {
			since := user.CreatedAt
			resp.MemberSince = &since
		}
		if authenticated && d.Avatars != nil {
			if a, ok := d.Avatars.Current(ctx, user.ID); ok {
				resp.AvatarURL = a.URL
			}
		}
		if resp.RecentActivity == nil {
			resp.RecentActivity = []domain.ActivityEntry{}
		}

		respond.JSON(w, http.StatusOK, resp)
	}
}
