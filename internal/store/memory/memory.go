package memory

import (
	"context"
	"sync"
)

// Store keeps values in process memory. It is the default backend and the test fake.
type Store struct {
	mu     sync.RWMutex
	scopes map[string]map[string]string
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{scopes: make(map[string]map[string]string)}
}

func (s *Store) Get(_ context.Context, scope, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.scopes[scope][key]
	return v, ok, nil
}

func (s *Store) Set(_ context.Context, scope, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.scopes[scope]
	if !ok {
		m = make(map[string]string)
		s.scopes[scope] = m
	}
	m[key] = value
	return nil
}

func (s *Store) Delete(_ context.Context, scope, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.scopes[scope], key)
	return nil
}

func (s *Store) Clear(_ context.Context, scope string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.scopes, scope)
	return nil
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() error { return nil }

// Len returns the number of scopes holding at least one key.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.scopes)
}
