// Package store defines the persistence port for per-client state.
//
// Values are JSON documents addressed by (scope, key). A scope is one client.
// Writes are whole-value, last write wins.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Keys used by the services persisting through the port.
const (
	KeyBookmarks     = "bookmarkedRemedies"
	KeyActivity      = "userActivity"
	KeyAISearches    = "aiSearches"
	KeyRatings       = "remedyRatings"
	KeyRatingHistory = "userRatings"
	KeySettings      = "userSettings"
	KeyFirstSeen     = "firstSeen"
	KeyAvatar        = "avatarUrl"
)

// ErrUnavailable is returned by the JSON helpers when no backend is configured.
var ErrUnavailable = errors.New("store unavailable")

// KV is a scoped string key-value store.
type KV interface {
	// Get returns the value under (scope, key). ok is false when nothing is stored.
	Get(ctx context.Context, scope, key string) (value string, ok bool, err error)
	Set(ctx context.Context, scope, key, value string) error
	Delete(ctx context.Context, scope, key string) error
	// Clear removes every key of a scope.
	Clear(ctx context.Context, scope string) error
	Ping(ctx context.Context) error
	Close() error
}

// GetJSON decodes the value under (scope, key) into dst. It reports false when
// nothing is stored.
func GetJSON(ctx context.Context, kv KV, scope, key string, dst any) (bool, error) {
	if kv == nil {
		return false, ErrUnavailable
	}
	raw, ok, err := kv.Get(ctx, scope, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

// SetJSON encodes v and stores it under (scope, key).
func SetJSON(ctx context.Context, kv KV, scope, key string, v any) error {
	if kv == nil {
		return ErrUnavailable
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return kv.Set(ctx, scope, key, string(data))
}
