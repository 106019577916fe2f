// Package bookmarks keeps the per-client set of bookmarked remedy IDs.
//
// The ledger never fails its callers: when the store is missing or erroring,
// reads come back empty and toggles change nothing. A toggle never writes over
// a set it could not read.
package bookmarks

import (
	"context"
	"slices"
	"sync"

	"github.com/MrSnakeDoc/healthvibe/internal/domain"
	"github.com/MrSnakeDoc/healthvibe/internal/logger"
	"github.com/MrSnakeDoc/healthvibe/internal/store"
)

// Resolver turns a bookmarked ID back into a remedy.
type Resolver interface {
	Resolve(ctx context.Context, scope, id string) (domain.Remedy, bool)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(ctx context.Context, scope, id string) (domain.Remedy, bool)

func (f ResolverFunc) Resolve(ctx context.Context, scope, id string) (domain.Remedy, bool) {
	return f(ctx, scope, id)
}

// Chain tries each resolver in order.
func Chain(rs ...Resolver) Resolver {
	return ResolverFunc(func(ctx context.Context, scope, id string) (domain.Remedy, bool) {
		for _, r := range rs {
			if r == nil {
				continue
			}
			if rem, ok := r.Resolve(ctx, scope, id); ok {
				return rem, true
			}
		}
		return domain.Remedy{}, false
	})
}

type Ledger struct {
	kv       store.KV
	resolver Resolver
	log      logger.Logger

	// serializes read-modify-write toggles
	mu sync.Mutex
}

func NewLedger(kv store.KV, resolver Resolver, log logger.Logger) *Ledger {
	return &Ledger{kv: kv, resolver: resolver, log: log}
}

// Toggle flips the bookmark state of id and returns the state held by the
// store afterwards. applied is false when the flip was not persisted: a failed
// read leaves the set untouched and reports false, a failed write reports the
// previous state.
func (l *Ledger) Toggle(ctx context.Context, scope, id string) (bookmarked, applied bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ids, err := l.load(ctx, scope)
	if err != nil {
		l.log.Warn("bookmark toggle skipped, set unreadable",
			logger.String("scope", scope),
			logger.String("remedy_id", id),
			logger.Error(err))
		return false, false
	}

	was := false
	if i := slices.Index(ids, id); i >= 0 {
		ids = slices.Delete(ids, i, i+1)
		was = true
	} else {
		ids = append(ids, id)
	}

	if err := store.SetJSON(ctx, l.kv, scope, store.KeyBookmarks, ids); err != nil {
		l.log.Warn("bookmark write dropped",
			logger.String("scope", scope),
			logger.String("remedy_id", id),
			logger.Error(err))
		return was, false
	}
	return !was, true
}

func (l *Ledger) IsBookmarked(ctx context.Context, scope, id string) bool {
	return slices.Contains(l.read(ctx, scope), id)
}

// IDs returns the bookmarked IDs in insertion order.
func (l *Ledger) IDs(ctx context.Context, scope string) []string {
	return l.read(ctx, scope)
}

func (l *Ledger) Count(ctx context.Context, scope string) int {
	return len(l.read(ctx, scope))
}

// All resolves every bookmarked ID. IDs that no longer resolve are skipped.
func (l *Ledger) All(ctx context.Context, scope string) []domain.Remedy {
	ids := l.read(ctx, scope)
	out := make([]domain.Remedy, 0, len(ids))
	if l.resolver == nil {
		return out
	}
	for _, id := range ids {
		if r, ok := l.resolver.Resolve(ctx, scope, id); ok {
			out = append(out, r)
		}
	}
	return out
}

// Clear forgets every bookmark of scope.
func (l *Ledger) Clear(ctx context.Context, scope string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.kv == nil {
		return
	}
	if err := l.kv.Delete(ctx, scope, store.KeyBookmarks); err != nil {
		l.log.Warn("bookmark clear dropped", logger.String("scope", scope), logger.Error(err))
	}
}

func (l *Ledger) load(ctx context.Context, scope string) ([]string, error) {
	var ids []string
	if _, err := store.GetJSON(ctx, l.kv, scope, store.KeyBookmarks, &ids); err != nil {
		return nil, err
	}
	// stored data may carry duplicates from older writers
	return dedupe(ids), nil
}

// read is load for callers that only look: errors degrade to an empty set.
func (l *Ledger) read(ctx context.Context, scope string) []string {
	ids, err := l.load(ctx, scope)
	if err != nil {
		l.log.Warn("bookmark read failed", logger.String("scope", scope), logger.Error(err))
		return []string{}
	}
	return ids
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
