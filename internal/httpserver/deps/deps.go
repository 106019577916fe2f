package deps

import (
	"time"

	"github.com/MrSnakeDoc/healthvibe/internal/activity"
	"github.com/MrSnakeDoc/healthvibe/internal/avatar"
	"github.com/MrSnakeDoc/healthvibe/internal/bookmarks"
	"github.com/MrSnakeDoc/healthvibe/internal/catalog"
	"github.com/MrSnakeDoc/healthvibe/internal/generator"
	"github.com/MrSnakeDoc/healthvibe/internal/identity"
	"github.com/MrSnakeDoc/healthvibe/internal/logger"
	"github.com/MrSnakeDoc/healthvibe/internal/session"
	"github.com/MrSnakeDoc/healthvibe/internal/settings"
	"github.com/MrSnakeDoc/healthvibe/internal/store"
	"github.com/MrSnakeDoc/healthvibe/internal/version"
)

type Deps struct {
	Logger       logger.Logger
	StartTime    time.Time
	Build        version.Info
	TimeNow      func() time.Time // for testing, defaults to time.Now
	AllowedHosts []string         // Host headers allowed to access /api
	AllowedCIDRS []string         // IPs allowed to access infra/readyz endpoints
	TrustProxy   bool             // true if running behind a trusted reverse proxy

	CatalogSource string // embedded | file | postgres, reported by /infra
	Catalog       *catalog.Catalog

	StoreBackend string   // memory | redis | sqlite | postgres, reported by /infra
	Store        store.KV // per-client persistence

	Bookmarks *bookmarks.Ledger
	Activity  *activity.Recorder
	Settings  *settings.Store
	Sessions  *session.Manager
	Responder generator.Responder

	Identity *identity.Verifier // nil => every request is anonymous
	Avatars  *avatar.Service    // nil => profile images disabled
	// AvatarDir is served under /avatars/ when the local backend is used.
	AvatarDir string

	GenerateBurst     int
	GenerateRefillMin int

	CORSAllowedOrigins   []string
	CORSAllowCredentials bool
	SecureCookie         bool // sets Secure on the client cookie
}
