package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/healthvibe/internal/store"
)

var _ store.KV = (*Store)(nil)

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, ok, err := s.Get(ctx, "client-a", store.KeyBookmarks)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "client-a", store.KeyBookmarks, `["peppermint-tea"]`))
	v, ok, err := s.Get(ctx, "client-a", store.KeyBookmarks)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `["peppermint-tea"]`, v)

	// scopes are isolated
	_, ok, _ = s.Get(ctx, "client-b", store.KeyBookmarks)
	assert.False(t, ok)

	require.NoError(t, s.Delete(ctx, "client-a", store.KeyBookmarks))
	_, ok, _ = s.Get(ctx, "client-a", store.KeyBookmarks)
	assert.False(t, ok)
}

func TestStoreClear(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.Set(ctx, "a", "k1", "1"))
	require.NoError(t, s.Set(ctx, "a", "k2", "2"))
	require.NoError(t, s.Set(ctx, "b", "k1", "3"))

	require.NoError(t, s.Clear(ctx, "a"))
	assert.Equal(t, 1, s.Len())
	v, ok, _ := s.Get(ctx, "b", "k1")
	assert.True(t, ok)
	assert.Equal(t, "3", v)
}

func TestStoreJSONHelpers(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, store.SetJSON(ctx, s, "a", store.KeyAISearches, 3))
	var n int
	ok, err := store.GetJSON(ctx, s, "a", store.KeyAISearches, &n)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	_, err = store.GetJSON(ctx, nil, "a", store.KeyAISearches, &n)
	assert.ErrorIs(t, err, store.ErrUnavailable)
}

func TestStoreConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = s.Set(ctx, "a", "k", "v")
		}()
		go func() {
			defer wg.Done()
			_, _, _ = s.Get(ctx, "a", "k")
		}()
	}
	wg.Wait()
}
