package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/MrSnakeDoc/healthvibe/internal/domain"
	"github.com/MrSnakeDoc/healthvibe/internal/generator"
	"github.com/MrSnakeDoc/healthvibe/internal/logger"
)

type countingGen struct {
	calls atomic.Int64
}

func (g *countingGen) Generate(q string) []domain.GeneratedRemedy {
	n := g.calls.Add(1)
	out := make([]domain.GeneratedRemedy, 3)
	for i := range out {
		out[i] = domain.GeneratedRemedy{
			Remedy:      domain.Remedy{ID: fmt.Sprintf("ai-%d-%d", n, i), Name: q},
			SearchQuery: q,
			Generated:   true,
		}
	}
	return out
}

func TestSubmitGeneratesAndRecords(t *testing.T) {
	defer goleak.VerifyNone(t)

	m := NewManager(generator.New(5), time.Millisecond, logger.NewNop())
	out, err := m.Submit(context.Background(), "c1", "sore throat")
	require.NoError(t, err)
	assert.True(t, out.Fresh)
	require.Len(t, out.Results, 3)

	assert.Equal(t, []string{"sore throat"}, m.Recent("c1"))
	assert.Len(t, m.Results("c1"), 3)

	got, ok := m.Lookup("c1", out.Results[1].ID)
	assert.True(t, ok)
	assert.Equal(t, out.Results[1].Name, got.Name)

	_, ok = m.Lookup("c2", out.Results[1].ID)
	assert.False(t, ok, "sessions are per client")
}

func TestRepeatedQueryIsNotRegenerated(t *testing.T) {
	defer goleak.VerifyNone(t)

	gen := &countingGen{}
	m := NewManager(gen, 0, logger.NewNop())
	ctx := context.Background()

	_, err := m.Submit(ctx, "c1", "Sleep")
	require.NoError(t, err)
	out, err := m.Submit(ctx, "c1", "sleep")
	require.NoError(t, err)

	assert.False(t, out.Fresh)
	assert.Len(t, out.Results, 3)
	assert.EqualValues(t, 1, gen.calls.Load())
}

func TestResultsNewestFirstAndRecentCapped(t *testing.T) {
	defer goleak.VerifyNone(t)

	m := NewManager(&countingGen{}, 0, logger.NewNop())
	ctx := context.Background()
	queries := []string{"q1", "q2", "q3", "q4", "q5", "q6"}
	for _, q := range queries {
		_, err := m.Submit(ctx, "c1", q)
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"q6", "q5", "q4", "q3", "q2"}, m.Recent("c1"))
	res := m.Results("c1")
	require.Len(t, res, 18)
	assert.Equal(t, "q6", res[0].SearchQuery)
	assert.Equal(t, "q1", res[17].SearchQuery)
}

func TestNewerSubmissionSupersedesOlder(t *testing.T) {
	defer goleak.VerifyNone(t)

	gen := &countingGen{}
	m := NewManager(gen, 200*time.Millisecond, logger.NewNop())
	ctx := context.Background()

	var wg sync.WaitGroup
	var firstErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, firstErr = m.Submit(ctx, "c1", "first")
	}()

	// let the first submission start waiting
	time.Sleep(20 * time.Millisecond)
	out, err := m.Submit(ctx, "c1", "second")
	wg.Wait()

	require.NoError(t, err)
	assert.True(t, errors.Is(firstErr, ErrSuperseded), "got %v", firstErr)
	assert.Equal(t, "second", out.Results[0].SearchQuery)
	assert.Equal(t, []string{"second"}, m.Recent("c1"))
	for _, r := range m.Results("c1") {
		assert.Equal(t, "second", r.SearchQuery, "superseded results must not be applied")
	}
	assert.EqualValues(t, 1, gen.calls.Load())
}

func TestOtherClientsDoNotInterfere(t *testing.T) {
	defer goleak.VerifyNone(t)

	m := NewManager(&countingGen{}, 30*time.Millisecond, logger.NewNop())
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = m.Submit(ctx, fmt.Sprintf("c%d", i), "query")
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "client %d", i)
	}
	assert.Equal(t, 4, m.Len())
}

func TestCancelledContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	m := NewManager(&countingGen{}, time.Second, logger.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Submit(ctx, "c1", "query")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, m.Results("c1"))
}

func TestEvictAndForget(t *testing.T) {
	defer goleak.VerifyNone(t)

	m := NewManager(&countingGen{}, 0, logger.NewNop())
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	ctx := context.Background()

	out, err := m.Submit(ctx, "old", "query")
	require.NoError(t, err)
	now = now.Add(time.Hour)
	_, err = m.Submit(ctx, "fresh", "query")
	require.NoError(t, err)

	assert.Equal(t, 1, m.Evict(30*time.Minute))
	_, ok := m.Lookup("old", out.Results[0].ID)
	assert.False(t, ok, "evicted session loses its generated remedies")
	assert.Equal(t, 1, m.Len())

	m.Forget("fresh")
	assert.Zero(t, m.Len())
	m.Forget("missing")
}

func TestForgetSupersedesInFlight(t *testing.T) {
	defer goleak.VerifyNone(t)

	m := NewManager(&countingGen{}, 200*time.Millisecond, logger.NewNop())
	done := make(chan error, 1)
	go func() {
		_, err := m.Submit(context.Background(), "c1", "query")
		done <- err
	}()
	time.Sleep(20 * time.Millisecond)
	m.Forget("c1")

	assert.ErrorIs(t, <-done, ErrSuperseded)
	assert.Zero(t, m.Len())
}
