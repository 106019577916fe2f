// Package storetest provides store.KV doubles for tests.
package storetest

import (
	"context"
	"errors"
	"sync"

	"github.com/MrSnakeDoc/healthvibe/internal/store"
)

var ErrInjected = errors.New("injected store failure")

// Flaky wraps a KV and fails a chosen number of upcoming reads or writes.
type Flaky struct {
	store.KV

	mu       sync.Mutex
	failGets int
	failSets int
	setsSeen int
}

func NewFlaky(kv store.KV) *Flaky {
	return &Flaky{KV: kv}
}

// FailGets makes the next n Get calls return ErrInjected.
func (f *Flaky) FailGets(n int) {
	f.mu.Lock()
	f.failGets = n
	f.mu.Unlock()
}

// FailSets makes the next n Set calls return ErrInjected.
func (f *Flaky) FailSets(n int) {
	f.mu.Lock()
	f.failSets = n
	f.mu.Unlock()
}

// Sets reports how many Set calls reached the wrapped store.
func (f *Flaky) Sets() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.setsSeen
}

func (f *Flaky) Get(ctx context.Context, scope, key string) (string, bool, error) {
	f.mu.Lock()
	fail := f.failGets > 0
	if fail {
		f.failGets--
	}
	f.mu.Unlock()
	if fail {
		return "", false, ErrInjected
	}
	return f.KV.Get(ctx, scope, key)
}

func (f *Flaky) Set(ctx context.Context, scope, key, value string) error {
	f.mu.Lock()
	fail := f.failSets > 0
	if fail {
		f.failSets--
	} else {
		f.setsSeen++
	}
	f.mu.Unlock()
	if fail {
		return ErrInjected
	}
	return f.KV.Set(ctx, scope, key, value)
}
