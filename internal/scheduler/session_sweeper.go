// Package scheduler runs the periodic background jobs of the server.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/healthvibe/internal/logger"
)

// Evicter drops sessions idle for longer than the given duration and reports
// how many were removed.
type Evicter interface {
	Evict(idle time.Duration) int
}

// SessionSweeper periodically evicts idle generation sessions.
type SessionSweeper struct {
	sessions Evicter
	logger   logger.Logger
	interval time.Duration
	idleTTL  time.Duration

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

func NewSessionSweeper(sessions Evicter, log logger.Logger, interval, idleTTL time.Duration) *SessionSweeper {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &SessionSweeper{
		sessions: sessions,
		logger:   log,
		interval: interval,
		idleTTL:  idleTTL,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start launches the sweep loop. It returns immediately.
func (s *SessionSweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	go func() {
		defer close(s.doneCh)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.Sweep()
			case <-s.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop ends the loop and waits for it to exit. Safe to call more than once,
// but only after Start.
func (s *SessionSweeper) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
	<-s.doneCh
}

// Sweep runs one eviction pass.
func (s *SessionSweeper) Sweep() int {
	n := s.sessions.Evict(s.idleTTL)
	if n > 0 {
		s.logger.Info("evicted idle generation sessions",
			logger.Int("evicted", n),
			logger.Duration("idle_ttl", s.idleTTL))
	} else {
		s.logger.Debug("no idle generation sessions")
	}
	return n
}
