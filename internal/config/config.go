package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Catalog sources.
const (
	CatalogEmbedded = "embedded"
	CatalogFile     = "file"
	CatalogPostgres = "postgres"
)

// Store backends for per-client state.
const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

// Avatar backends.
const (
	AvatarNone  = "none"
	AvatarLocal = "local"
	AvatarGCS   = "gcs"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request budget, must exceed GenerateDelay

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	CatalogSource string // embedded | file | postgres
	CatalogFile   string // YAML file when CatalogSource=file
	SeedCatalog   bool   // seed postgres catalog tables from the embedded data when empty

	StoreBackend string // memory | redis | sqlite | postgres
	SQLitePath   string
	DatabaseURL  string // required when catalog or store uses postgres

	// Generation
	GenerateDelay        time.Duration // artificial processing delay before results (default 2s)
	GeneratorSeed        uint64        // 0 => seeded from entropy
	SessionIdleTTL       time.Duration // idle generation sessions are evicted after this
	SessionSweepInterval time.Duration

	// Rate limit on /api/generate
	GenerateBurst     int
	GenerateRefillMin int

	// Identity
	JWTSecret string // empty => identity disabled, every request is anonymous

	// Profile images
	AvatarBackend       string
	AvatarDir           string
	AvatarBucket        string
	AvatarPublicBaseURL string
	GCSCredentialsFile  string

	// CORS
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool
	SecureCookie         bool // Secure flag on the client cookie (enable behind HTTPS)

	// Redis
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	AllowedHosts []string // optional, restrict /api to specific Host headers
	AllowedCIDRS []string // optional, restrict /infra and /readyz to specific IPs
	TrustProxy   bool     // true => trust X-Forwarded-For headers
}

// Load reads the configuration from the environment. A .env file in the working
// directory is loaded first when present. Invalid required values panic.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		ListenPort:      getenv("HEALTHVIBE_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("HEALTHVIBE_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("HEALTHVIBE_REQUEST_TIMEOUT", 15*time.Second),

		LogLevel:  getenv("HEALTHVIBE_LOG_LEVEL", "info"),
		PrettyLog: mustBool("HEALTHVIBE_PRETTY_LOG", true),

		CatalogSource: oneOf("HEALTHVIBE_CATALOG_SOURCE", CatalogEmbedded, CatalogEmbedded, CatalogFile, CatalogPostgres),
		CatalogFile:   getenv("HEALTHVIBE_CATALOG_FILE", ""),
		SeedCatalog:   mustBool("HEALTHVIBE_SEED_CATALOG", true),

		StoreBackend: oneOf("HEALTHVIBE_STORE_BACKEND", StoreMemory, StoreMemory, StoreRedis, StoreSQLite, StorePostgres),
		SQLitePath:   getenv("HEALTHVIBE_SQLITE_PATH", "healthvibe.db"),
		DatabaseURL:  getenv("HEALTHVIBE_DATABASE_URL", ""),

		GenerateDelay:        mustDuration("HEALTHVIBE_GENERATE_DELAY", 2*time.Second),
		GeneratorSeed:        getenvUint64("HEALTHVIBE_GENERATOR_SEED", 0),
		SessionIdleTTL:       mustDuration("HEALTHVIBE_SESSION_IDLE_TTL", 30*time.Minute),
		SessionSweepInterval: mustDuration("HEALTHVIBE_SESSION_SWEEP_INTERVAL", 5*time.Minute),

		GenerateBurst:     getenvInt("HEALTHVIBE_GENERATE_BURST", 5),
		GenerateRefillMin: getenvInt("HEALTHVIBE_GENERATE_PER_MIN", 20),

		JWTSecret: getenv("HEALTHVIBE_JWT_SECRET", ""),

		AvatarBackend:       oneOf("HEALTHVIBE_AVATAR_BACKEND", AvatarLocal, AvatarNone, AvatarLocal, AvatarGCS),
		AvatarDir:           getenv("HEALTHVIBE_AVATAR_DIR", "profile-images"),
		AvatarBucket:        getenv("HEALTHVIBE_AVATAR_BUCKET", "profile-images"),
		AvatarPublicBaseURL: getenv("HEALTHVIBE_AVATAR_PUBLIC_BASE_URL", ""),
		GCSCredentialsFile:  getenv("HEALTHVIBE_GCS_CREDENTIALS_FILE", ""),

		CORSAllowedOrigins:   splitAndTrim(getenv("HEALTHVIBE_CORS_ALLOWED_ORIGINS", "*")),
		CORSAllowCredentials: mustBool("HEALTHVIBE_CORS_ALLOW_CREDENTIALS", false),
		SecureCookie:         mustBool("HEALTHVIBE_SECURE_COOKIE", false),

		AllowedHosts: splitAndTrim(getenv("HEALTHVIBE_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("HEALTHVIBE_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("HEALTHVIBE_TRUST_PROXY", false),
	}

	if cfg.CatalogSource == CatalogFile && cfg.CatalogFile == "" {
		cfg.CatalogFile = requireEnv("HEALTHVIBE_CATALOG_FILE")
	}
	if cfg.CatalogSource == CatalogPostgres || cfg.StoreBackend == StorePostgres {
		cfg.DatabaseURL = requireEnv("HEALTHVIBE_DATABASE_URL")
	}
	if cfg.StoreBackend == StoreRedis {
		loadRedis(cfg)
	}
	if cfg.RequestTimeout <= cfg.GenerateDelay {
		panic(fmt.Sprintf("❌ FATAL: HEALTHVIBE_REQUEST_TIMEOUT (%v) must exceed HEALTHVIBE_GENERATE_DELAY (%v)",
			cfg.RequestTimeout, cfg.GenerateDelay))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		if cfg.DatabaseURL != "" {
			cfgCopy.DatabaseURL = "***REDACTED***"
		}
		if cfg.JWTSecret != "" {
			cfgCopy.JWTSecret = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

func loadRedis(cfg *Config) {
	cfg.RedisAddr = requireEnv("HEALTHVIBE_REDIS_ADDR")
	cfg.RedisUser = getenv("HEALTHVIBE_REDIS_USERNAME", "default")
	cfg.RedisPasswordRequired = mustBool("HEALTHVIBE_REDIS_PASSWORD_REQUIRED", true)
	cfg.RedisPassword = getenv("HEALTHVIBE_REDIS_PASSWORD", "")
	cfg.RedisDB = getenvInt("HEALTHVIBE_REDIS_DB", 0)
	cfg.RedisDT = mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second)
	cfg.RedisRT = mustDuration("REDIS_READ_TIMEOUT", 3*time.Second)
	cfg.RedisWT = mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second)
	cfg.RedisMaxWait = mustDuration("REDIS_MAX_WAIT", 10*time.Second)
	cfg.RedisPingTimeout = mustDuration("REDIS_PING_TIMEOUT", 5*time.Second)
	cfg.RedisPoolSize = getenvInt("REDIS_POOL_SIZE", 10)
	cfg.RedisConnectTimeout = mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second)
	cfg.RedisRetryInterval = mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second)
	cfg.RedisWarnThreshold = getenvInt("REDIS_WARN_THRESHOLD", 3)

	if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: HEALTHVIBE_REDIS_PASSWORD is required when HEALTHVIBE_REDIS_PASSWORD_REQUIRED=true")
	}
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

// oneOf returns the value of key lower-cased, or def when unset. Values outside
// allowed panic.
func oneOf(key, def string, allowed ...string) string {
	v := strings.ToLower(strings.TrimSpace(getenv(key, def)))
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	panic(fmt.Sprintf("❌ FATAL: Invalid value for %s: %q (allowed: %s)", key, v, strings.Join(allowed, ", ")))
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getenvUint64(key string, def uint64) uint64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseUint(v, 10, 64); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
