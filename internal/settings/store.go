// Package settings persists the per-client settings record.
package settings

import (
	"context"
	"sync"

	"github.com/MrSnakeDoc/healthvibe/internal/domain"
	"github.com/MrSnakeDoc/healthvibe/internal/logger"
	"github.com/MrSnakeDoc/healthvibe/internal/store"
)

type Store struct {
	kv  store.KV
	log logger.Logger
	mu  sync.Mutex
}

func NewStore(kv store.KV, log logger.Logger) *Store {
	return &Store{kv: kv, log: log}
}

// Get returns the stored record, or the defaults when nothing is stored or the
// store is unavailable.
func (s *Store) Get(ctx context.Context, scope string) domain.Settings {
	v, err := s.load(ctx, scope)
	if err != nil {
		s.log.Warn("settings read failed", logger.String("scope", scope), logger.Error(err))
	}
	return v
}

// Save replaces the whole record.
func (s *Store) Save(ctx context.Context, scope string, v domain.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.save(ctx, scope, v)
}

// Toggle flips one setting and returns the stored record. When the record
// cannot be read nothing is written and the defaults are returned; when the
// write fails the record as it was is returned.
func (s *Store) Toggle(ctx context.Context, scope string, key domain.SettingKey) (domain.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.load(ctx, scope)
	if err != nil {
		s.log.Warn("settings toggle skipped, record unreadable",
			logger.String("scope", scope),
			logger.String("key", key.String()),
			logger.Error(err))
		return v, nil
	}
	before := v
	if _, err := v.Toggle(key); err != nil {
		return before, err
	}
	if !s.save(ctx, scope, v) {
		return before, nil
	}
	return v, nil
}

// load returns the defaults alongside any read error.
func (s *Store) load(ctx context.Context, scope string) (domain.Settings, error) {
	v := domain.DefaultSettings()
	if _, err := store.GetJSON(ctx, s.kv, scope, store.KeySettings, &v); err != nil {
		return domain.DefaultSettings(), err
	}
	return v, nil
}

func (s *Store) save(ctx context.Context, scope string, v domain.Settings) bool {
	if err := store.SetJSON(ctx, s.kv, scope, store.KeySettings, v); err != nil {
		s.log.Warn("settings write dropped", logger.String("scope", scope), logger.Error(err))
		return false
	}
	return true
}
