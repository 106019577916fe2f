package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/MrSnakeDoc/healthvibe/internal/activity"
	"github.com/MrSnakeDoc/healthvibe/internal/avatar"
	"github.com/MrSnakeDoc/healthvibe/internal/bookmarks"
	"github.com/MrSnakeDoc/healthvibe/internal/catalog"
	"github.com/MrSnakeDoc/healthvibe/internal/config"
	"github.com/MrSnakeDoc/healthvibe/internal/generator"
	"github.com/MrSnakeDoc/healthvibe/internal/httpserver"
	"github.com/MrSnakeDoc/healthvibe/internal/httpserver/deps"
	"github.com/MrSnakeDoc/healthvibe/internal/identity"
	"github.com/MrSnakeDoc/healthvibe/internal/logger"
	"github.com/MrSnakeDoc/healthvibe/internal/redis"
	"github.com/MrSnakeDoc/healthvibe/internal/scheduler"
	"github.com/MrSnakeDoc/healthvibe/internal/session"
	"github.com/MrSnakeDoc/healthvibe/internal/settings"
	"github.com/MrSnakeDoc/healthvibe/internal/store"
	"github.com/MrSnakeDoc/healthvibe/internal/store/memory"
	"github.com/MrSnakeDoc/healthvibe/internal/store/postgres"
	redisstore "github.com/MrSnakeDoc/healthvibe/internal/store/redis"
	"github.com/MrSnakeDoc/healthvibe/internal/store/sqlite"
	"github.com/MrSnakeDoc/healthvibe/internal/utils"
	"github.com/MrSnakeDoc/healthvibe/internal/version"
)

type closer struct {
	name string
	c    io.Closer
}

type App struct {
	cfg     *config.Config
	logger  logger.Logger
	server  *httpserver.Server
	sweeper *scheduler.SessionSweeper
	closers []closer // closed in reverse order on shutdown
}

// New wires every component from cfg. Connections opened before a failure are
// closed before returning the error.
func New(ctx context.Context, cfg *config.Config, loggerClient logger.Logger) (_ *App, err error) {
	a := &App{cfg: cfg, logger: loggerClient}
	defer func() {
		if err != nil {
			a.closeAll()
		}
	}()

	db, err := OpenDatabase(cfg, loggerClient)
	if err != nil {
		return nil, err
	}
	if db != nil {
		a.addCloser("postgres", postgres.NewKV(db))
	}

	cat, err := LoadCatalog(ctx, cfg, db, loggerClient)
	if err != nil {
		return nil, err
	}

	kv, err := a.openStore(ctx, db)
	if err != nil {
		return nil, err
	}

	sessions := session.NewManager(generator.New(cfg.GeneratorSeed), cfg.GenerateDelay, loggerClient)
	a.sweeper = scheduler.NewSessionSweeper(sessions, loggerClient, cfg.SessionSweepInterval, cfg.SessionIdleTTL)

	var verifier *identity.Verifier
	if cfg.JWTSecret != "" {
		verifier = identity.NewVerifier(cfg.JWTSecret)
	} else {
		loggerClient.Info("no JWT secret configured, every request is anonymous")
	}

	avatars, avatarDir, err := a.openAvatars(ctx, kv)
	if err != nil {
		return nil, err
	}
	if avatars != nil && verifier == nil {
		loggerClient.Warn("profile images need an authenticated user, uploads will be rejected until a JWT secret is set")
	}

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:               loggerClient,
		StartTime:            time.Now(),
		Build:                version.Get(),
		TimeNow:              time.Now,
		AllowedHosts:         cfg.AllowedHosts,
		AllowedCIDRS:         cfg.AllowedCIDRS,
		TrustProxy:           cfg.TrustProxy,
		CatalogSource:        cfg.CatalogSource,
		Catalog:              cat,
		StoreBackend:         cfg.StoreBackend,
		Store:                kv,
		Bookmarks:            bookmarks.NewLedger(kv, bookmarks.Chain(cat, sessions), loggerClient),
		Activity:             activity.NewRecorder(kv, loggerClient),
		Settings:             settings.NewStore(kv, loggerClient),
		Sessions:             sessions,
		Responder:            generator.Responder{},
		Identity:             verifier,
		Avatars:              avatars,
		AvatarDir:            avatarDir,
		GenerateBurst:        cfg.GenerateBurst,
		GenerateRefillMin:    cfg.GenerateRefillMin,
		CORSAllowedOrigins:   cfg.CORSAllowedOrigins,
		CORSAllowCredentials: cfg.CORSAllowCredentials,
		SecureCookie:         cfg.SecureCookie,
	}

	a.server = httpserver.New(cfg, loggerClient, d)
	return a, nil
}

// OpenDatabase connects to Postgres when the catalog or the store uses it, and
// migrates the schema. It returns nil otherwise.
func OpenDatabase(cfg *config.Config, log logger.Logger) (*gorm.DB, error) {
	if cfg.CatalogSource != config.CatalogPostgres && cfg.StoreBackend != config.StorePostgres {
		return nil, nil
	}
	log.Info("connecting to postgres")
	db, err := postgres.Connect(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if err := postgres.AutoMigrateAndIndexes(db); err != nil {
		utils.MustClose(postgres.NewKV(db), "postgres", log)
		return nil, fmt.Errorf("failed to migrate postgres schema: %w", err)
	}
	return db, nil
}

// LoadCatalog builds the catalog from the configured source. With the postgres
// source the tables are seeded from the built-in data when empty and
// SeedCatalog is set.
func LoadCatalog(ctx context.Context, cfg *config.Config, db *gorm.DB, log logger.Logger) (*catalog.Catalog, error) {
	switch cfg.CatalogSource {
	case config.CatalogFile:
		log.Info("loading catalog from file", logger.String("file", cfg.CatalogFile))
		return catalog.FromFile(cfg.CatalogFile, log)

	case config.CatalogPostgres:
		if db == nil {
			return nil, errors.New("postgres catalog selected without a database")
		}
		if cfg.SeedCatalog {
			builtin, err := catalog.Builtin()
			if err != nil {
				return nil, err
			}
			cats, rems := builtin.Snapshot()
			seeded, err := postgres.SeedCatalog(ctx, db, cats, rems)
			if err != nil {
				return nil, fmt.Errorf("failed to seed catalog: %w", err)
			}
			if seeded {
				log.Info("seeded postgres catalog", logger.Int("remedies", len(rems)))
			}
		}
		cats, rems, err := postgres.LoadCatalog(ctx, db)
		if err != nil {
			return nil, err
		}
		c, err := catalog.New(cats, rems)
		if err != nil {
			return nil, fmt.Errorf("invalid catalog in postgres: %w", err)
		}
		log.Info("catalog loaded from postgres", logger.Int("remedies", c.Len()))
		return c, nil

	default:
		return catalog.FromFile("", log)
	}
}

func (a *App) openStore(ctx context.Context, db *gorm.DB) (store.KV, error) {
	cfg := a.cfg
	switch cfg.StoreBackend {
	case config.StoreRedis:
		a.logger.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.Connect(ctx, redis.OptionsFromConfig(cfg), a.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		kv := redisstore.NewStore(client)
		a.addCloser("redis", kv)
		a.logger.Info("Redis initialized successfully")
		return kv, nil

	case config.StoreSQLite:
		kv, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		a.addCloser("sqlite", kv)
		a.logger.Info("sqlite store opened", logger.String("path", cfg.SQLitePath))
		return kv, nil

	case config.StorePostgres:
		// closed with the database
		return postgres.NewKV(db), nil

	default:
		a.logger.Info("using in-memory store, client state is lost on restart")
		return memory.New(), nil
	}
}

// openAvatars returns the avatar service and, for the local backend, the
// directory to serve images from.
func (a *App) openAvatars(ctx context.Context, kv store.KV) (*avatar.Service, string, error) {
	cfg := a.cfg
	switch cfg.AvatarBackend {
	case config.AvatarLocal:
		objects, err := avatar.NewLocalStore(cfg.AvatarDir, cfg.AvatarPublicBaseURL)
		if err != nil {
			return nil, "", err
		}
		return avatar.NewService(objects, kv, a.logger), objects.Dir(), nil

	case config.AvatarGCS:
		client, err := avatar.NewGCSClient(ctx, cfg.GCSCredentialsFile)
		if err != nil {
			return nil, "", err
		}
		objects := avatar.NewGCSStore(client, cfg.AvatarBucket, cfg.AvatarPublicBaseURL)
		a.addCloser("gcs", objects)
		a.logger.Info("profile images stored in GCS", logger.String("bucket", cfg.AvatarBucket))
		return avatar.NewService(objects, kv, a.logger), "", nil

	default:
		a.logger.Info("profile images disabled")
		return nil, "", nil
	}
}

func (a *App) addCloser(name string, c io.Closer) {
	a.closers = append(a.closers, closer{name: name, c: c})
}

func (a *App) closeAll() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		utils.MustClose(a.closers[i].c, a.closers[i].name, a.logger)
	}
	a.closers = nil
}

// Run serves until SIGINT/SIGTERM or a server error, then shuts down.
func (a *App) Run(ctx context.Context) error {
	a.logger.Infof("🚀 Starting HealthVibe v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Info(version.Get().String())

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.sweeper.Start(ctx)
	a.logger.Info("session sweeper started",
		logger.Duration("interval", a.cfg.SessionSweepInterval),
		logger.Duration("idle_ttl", a.cfg.SessionIdleTTL))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := a.server.Start(); err != nil {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("⏳ Shutting down gracefully...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		if err := a.server.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("failed to stop server: %w", err)
		}
		return nil
	})

	err := g.Wait()

	a.sweeper.Stop()
	a.closeAll()

	if err != nil {
		return err
	}
	a.logger.Info("✅ HealthVibe stopped cleanly")
	return nil
}
