package mw

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/MrSnakeDoc/healthvibe/internal/httpserver/respond"
	"github.com/MrSnakeDoc/healthvibe/internal/utils"
)

// RateLimitConfig configures a token bucket per key.
type RateLimitConfig struct {
	Burst         int
	RefillPerMin  int
	MaxEntries    int
	SweepInterval time.Duration
	IdleTTL       time.Duration
	TrustProxy    bool

	// KeyFunc picks the bucket of a request. Defaults to the client IP.
	KeyFunc func(r *http.Request) string
}

func (c RateLimitConfig) withDefaults() RateLimitConfig {
	if c.SweepInterval <= 0 {
		c.SweepInterval = time.Minute
	}
	if c.IdleTTL <= 0 {
		c.IdleTTL = 15 * time.Minute
	}
	c.Burst = max(c.Burst, 1)
	c.RefillPerMin = max(c.RefillPerMin, 1)
	if c.KeyFunc == nil {
		trust := c.TrustProxy
		c.KeyFunc = func(r *http.Request) string { return utils.ClientIP(r, trust) }
	}
	return c
}

type tokenBucket struct {
	mu       sync.Mutex
	tokens   float64
	filledAt time.Time
	usedAt   time.Time
}

// take refills the bucket up to capacity and spends one token when available.
// It returns the whole tokens left and, on refusal, the seconds until the next one.
func (b *tokenBucket) take(now time.Time, capacity, perSec float64) (bool, int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if dt := now.Sub(b.filledAt).Seconds(); dt > 0 {
		b.tokens = math.Min(capacity, b.tokens+dt*perSec)
		b.filledAt = now
	}
	if b.tokens < 1 {
		wait := int(math.Ceil((1 - b.tokens) / perSec))
		return false, 0, max(wait, 1)
	}
	b.tokens--
	b.usedAt = now
	return true, int(b.tokens), 0
}

type buckets struct {
	cfg      RateLimitConfig
	capacity float64
	perSec   float64

	mu      sync.Mutex
	byKey   map[string]*tokenBucket
	sweptAt time.Time
}

func newBuckets(cfg RateLimitConfig) *buckets {
	return &buckets{
		cfg:      cfg,
		capacity: float64(cfg.Burst),
		perSec:   float64(cfg.RefillPerMin) / 60,
		byKey:    make(map[string]*tokenBucket),
		sweptAt:  time.Now(),
	}
}

// get returns the bucket of key, creating a full one. Idle buckets are dropped
// every SweepInterval, or early once MaxEntries is reached.
func (bs *buckets) get(key string, now time.Time) *tokenBucket {
	bs.mu.Lock()
	defer bs.mu.Unlock()

	full := bs.cfg.MaxEntries > 0 && len(bs.byKey) >= bs.cfg.MaxEntries
	if full || now.Sub(bs.sweptAt) >= bs.cfg.SweepInterval {
		for k, b := range bs.byKey {
			if now.Sub(b.usedAt) > bs.cfg.IdleTTL {
				delete(bs.byKey, k)
			}
		}
		bs.sweptAt = now
	}

	b, ok := bs.byKey[key]
	if !ok {
		b = &tokenBucket{tokens: bs.capacity, filledAt: now, usedAt: now}
		bs.byKey[key] = b
	}
	return b
}

// RateLimit answers 429 once a key has spent its burst, refilling at
// RefillPerMin tokens per minute.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	cfg = cfg.withDefaults()
	bs := newBuckets(cfg)
	limit := strconv.Itoa(cfg.Burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			now := time.Now()
			ok, left, retry := bs.get(cfg.KeyFunc(r), now).take(now, bs.capacity, bs.perSec)

			h := w.Header()
			h.Set("X-RateLimit-Limit", limit)
			h.Set("X-RateLimit-Remaining", strconv.Itoa(left))
			if !ok {
				h.Set("Retry-After", strconv.Itoa(retry))
				respond.Error(w, http.StatusTooManyRequests, respond.CodeRateLimited, "too many requests, retry later")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
