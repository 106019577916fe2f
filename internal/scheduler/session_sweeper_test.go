package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/MrSnakeDoc/healthvibe/internal/logger"
)

type fakeEvicter struct {
	calls atomic.Int64
	idle  atomic.Int64
}

func (f *fakeEvicter) Evict(idle time.Duration) int {
	f.calls.Add(1)
	f.idle.Store(int64(idle))
	return 1
}

func TestSessionSweeper_Sweep(t *testing.T) {
	ev := &fakeEvicter{}
	s := NewSessionSweeper(ev, logger.NewNop(), time.Hour, 30*time.Minute)

	if got := s.Sweep(); got != 1 {
		t.Errorf("Sweep() = %d, want 1", got)
	}
	if got := time.Duration(ev.idle.Load()); got != 30*time.Minute {
		t.Errorf("Evict called with %v, want 30m", got)
	}
}

func TestSessionSweeper_Loop(t *testing.T) {
	defer goleak.VerifyNone(t)

	ev := &fakeEvicter{}
	s := NewSessionSweeper(ev, logger.NewNop(), 5*time.Millisecond, time.Minute)
	s.Start(context.Background())

	deadline := time.Now().Add(2 * time.Second)
	for ev.calls.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	s.Stop()
	s.Stop()

	if ev.calls.Load() < 2 {
		t.Errorf("expected at least 2 sweeps, got %d", ev.calls.Load())
	}
}

func TestSessionSweeper_StopsOnContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	s := NewSessionSweeper(&fakeEvicter{}, logger.NewNop(), time.Hour, time.Minute)
	s.Start(ctx)
	cancel()
	s.Stop()
}
