package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Store implements store.KV on Redis. Values never expire: client state is kept
// until the client clears it.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

func (s *Store) Get(ctx context.Context, scope, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, ValueKey(scope, key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return v, true, nil
}

func (s *Store) Set(ctx context.Context, scope, key, value string) error {
	if err := s.client.Set(ctx, ValueKey(scope, key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, scope, key string) error {
	if err := s.client.Del(ctx, ValueKey(scope, key)).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Clear removes every key of a scope. Keys are collected with SCAN and deleted
// in one pipeline.
func (s *Store) Clear(ctx context.Context, scope string) error {
	var keys []string
	iter := s.client.Scan(ctx, 0, ScopePattern(scope), 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan client keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}

	pipe := s.client.Pipeline()
	for _, k := range keys {
		pipe.Del(ctx, k)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to clear client: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.client.Close()
}
