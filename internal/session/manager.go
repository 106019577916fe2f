// Package session holds the per-client generation sessions: generated remedies
// and recent searches. Sessions live in memory only and are evicted when idle.
package session

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/MrSnakeDoc/healthvibe/internal/domain"
	"github.com/MrSnakeDoc/healthvibe/internal/logger"
)

// MaxRecentSearches bounds the recent search list of a session.
const MaxRecentSearches = 5

// ErrSuperseded is returned to a submission overtaken by a newer one from the
// same client. Its results are discarded.
var ErrSuperseded = errors.New("submission superseded by a newer query")

// Generator produces the remedies for one query.
type Generator interface {
	Generate(query string) []domain.GeneratedRemedy
}

// Outcome is the result of a submission. Fresh is false when the query was
// already answered in this session and nothing was generated.
type Outcome struct {
	Results []domain.GeneratedRemedy
	Fresh   bool
}

type session struct {
	results  []domain.GeneratedRemedy
	recent   []string
	seq      uint64
	cancel   context.CancelFunc // in-flight submission, nil when idle
	lastUsed time.Time
}

type Manager struct {
	gen   Generator
	delay time.Duration
	now   func() time.Time
	log   logger.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

// NewManager returns a manager waiting delay before each generation.
func NewManager(gen Generator, delay time.Duration, log logger.Logger) *Manager {
	return &Manager{
		gen:      gen,
		delay:    delay,
		now:      time.Now,
		log:      log,
		sessions: make(map[string]*session),
	}
}

// Submit generates remedies for query in scope's session.
//
// A newer Submit from the same scope cancels this one; the older call then
// returns ErrSuperseded and never touches the session. Cancelling ctx aborts the
// wait and returns ctx.Err().
func (m *Manager) Submit(ctx context.Context, scope, query string) (Outcome, error) {
	m.mu.Lock()
	s := m.getLocked(scope)
	s.lastUsed = m.now()
	if hasQuery(s.results, query) {
		out := Outcome{Results: slices.Clone(s.results)}
		m.mu.Unlock()
		return out, nil
	}

	if s.cancel != nil {
		s.cancel()
	}
	s.seq++
	seq := s.seq
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	m.mu.Unlock()
	defer cancel()

	log := m.log.With(logger.String("scope", scope), logger.Uint64("seq", seq))

	timer := time.NewTimer(m.delay)
	select {
	case <-runCtx.Done():
		timer.Stop()
		return Outcome{}, m.abort(s, seq, ctx, log)
	case <-timer.C:
	}

	results := m.gen.Generate(query)

	m.mu.Lock()
	defer m.mu.Unlock()
	if s.seq != seq {
		log.Debug("generation superseded after completion")
		return Outcome{}, ErrSuperseded
	}
	s.cancel = nil
	s.results = append(slices.Clone(results), s.results...)
	s.recent = pushRecent(s.recent, query)
	s.lastUsed = m.now()
	log.Debug("generation applied", logger.Int("results", len(results)))
	return Outcome{Results: slices.Clone(results), Fresh: true}, nil
}

func (m *Manager) abort(s *session, seq uint64, parent context.Context, log logger.Logger) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.seq != seq {
		log.Debug("generation superseded while waiting")
		return ErrSuperseded
	}
	s.cancel = nil
	return parent.Err()
}

// Results returns the generated remedies of scope, newest first.
func (m *Manager) Results(scope string) []domain.GeneratedRemedy {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[scope]
	if !ok {
		return []domain.GeneratedRemedy{}
	}
	return slices.Clone(s.results)
}

// Recent returns up to MaxRecentSearches queries, newest first.
func (m *Manager) Recent(scope string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[scope]
	if !ok {
		return []string{}
	}
	return slices.Clone(s.recent)
}

// Lookup finds a generated remedy by ID in scope's session.
func (m *Manager) Lookup(scope, id string) (domain.GeneratedRemedy, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[scope]
	if !ok {
		return domain.GeneratedRemedy{}, false
	}
	for _, r := range s.results {
		if r.ID == id {
			return r, true
		}
	}
	return domain.GeneratedRemedy{}, false
}

// Resolve resolves bookmarks pointing at generated remedies of scope.
func (m *Manager) Resolve(_ context.Context, scope, id string) (domain.Remedy, bool) {
	g, ok := m.Lookup(scope, id)
	return g.Remedy, ok
}

// Forget cancels any in-flight submission of scope and drops its session.
func (m *Manager) Forget(scope string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[scope]
	if !ok {
		return
	}
	if s.cancel != nil {
		s.cancel()
	}
	// invalidate whatever is in flight
	s.seq++
	delete(m.sessions, scope)
}

// Evict drops sessions unused for longer than idle. Sessions with a submission
// in flight are kept. It returns the number of sessions removed.
func (m *Manager) Evict(idle time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := m.now().Add(-idle)
	n := 0
	for scope, s := range m.sessions {
		if s.cancel == nil && s.lastUsed.Before(cutoff) {
			delete(m.sessions, scope)
			n++
		}
	}
	return n
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *Manager) getLocked(scope string) *session {
	s, ok := m.sessions[scope]
	if !ok {
		s = &session{results: []domain.GeneratedRemedy{}, recent: []string{}}
		m.sessions[scope] = s
	}
	return s
}

func hasQuery(results []domain.GeneratedRemedy, query string) bool {
	for _, r := range results {
		if strings.EqualFold(r.SearchQuery, query) {
			return true
		}
	}
	return false
}

func pushRecent(recent []string, query string) []string {
	out := make([]string, 0, MaxRecentSearches)
	out = append(out, query)
	for _, q := range recent {
		if len(out) == MaxRecentSearches {
			break
		}
		if !strings.EqualFold(q, query) {
			out = append(out, q)
		}
	}
	return out
}
