// Package activity records the per-client activity feed, ratings and counters,
// and derives profile statistics from them.
//
// Like the bookmark ledger, the recorder degrades instead of failing: store
// errors are logged at warn level and reads fall back to empty values. An
// update whose read failed is dropped rather than written over stored data.
package activity

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/MrSnakeDoc/healthvibe/internal/domain"
	"github.com/MrSnakeDoc/healthvibe/internal/logger"
	"github.com/MrSnakeDoc/healthvibe/internal/store"
)

var ErrInvalidRating = errors.New("rating must be between 1 and 5")

type Recorder struct {
	kv  store.KV
	log logger.Logger
	now func() time.Time

	// serializes read-modify-write cycles
	mu sync.Mutex
}

func NewRecorder(kv store.KV, log logger.Logger) *Recorder {
	return &Recorder{kv: kv, log: log, now: time.Now}
}

// Append puts e at the front of the feed. A zero timestamp is set to now.
func (r *Recorder) Append(ctx context.Context, scope string, e domain.ActivityEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appendLocked(ctx, scope, e)
}

func (r *Recorder) appendLocked(ctx context.Context, scope string, e domain.ActivityEntry) {
	if e.Timestamp.IsZero() {
		e.Timestamp = r.now().UTC()
	}
	entries, err := r.entries(ctx, scope)
	if err != nil {
		r.warn("append skipped", scope, store.KeyActivity, err)
		return
	}
	r.write(ctx, scope, store.KeyActivity, domain.PrependActivity(entries, e))
}

// Entries returns the feed, most recent first.
func (r *Recorder) Entries(ctx context.Context, scope string) []domain.ActivityEntry {
	entries, err := r.entries(ctx, scope)
	if err != nil {
		r.warn("read failed", scope, store.KeyActivity, err)
	}
	return entries
}

// Recent returns at most n entries of the feed.
func (r *Recorder) Recent(ctx context.Context, scope string, n int) []domain.ActivityEntry {
	entries := r.Entries(ctx, scope)
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// RecordSearch logs a catalog search unless the latest entry is the same search.
func (r *Recorder) RecordSearch(ctx context.Context, scope, query string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.entries(ctx, scope)
	if err != nil {
		r.warn("append skipped", scope, store.KeyActivity, err)
		return
	}
	if len(entries) > 0 {
		if last := entries[0]; last.Kind == domain.ActivitySearch && last.Query == query {
			return
		}
	}
	r.appendLocked(ctx, scope, domain.ActivityEntry{
		Kind:        domain.ActivitySearch,
		Description: fmt.Sprintf(`Searched for "%s"`, query),
		Query:       query,
	})
}

// RecordAISearch bumps the AI search counter and logs the search.
func (r *Recorder) RecordAISearch(ctx context.Context, scope, query string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.incrementLocked(ctx, scope)
	r.appendLocked(ctx, scope, domain.ActivityEntry{
		Kind:        domain.ActivityAISearch,
		Description: fmt.Sprintf(`Searched for "%s" remedies`, query),
		Query:       query,
	})
}

// RecordBookmark logs a bookmark being added. Removals are not logged.
func (r *Recorder) RecordBookmark(ctx context.Context, scope, remedyID, name string) {
	if name == "" {
		name = "remedy"
	}
	r.Append(ctx, scope, domain.ActivityEntry{
		Kind:        domain.ActivityBookmark,
		Description: fmt.Sprintf(`Bookmarked "%s"`, name),
		RemedyID:    remedyID,
	})
}

// Rate stores rating as the client's latest rating of remedyID, appends it to
// the rating history and logs it.
func (r *Recorder) Rate(ctx context.Context, scope, remedyID, name string, rating int) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()

	if latest, err := r.latestRatings(ctx, scope); err != nil {
		r.warn("rating skipped", scope, store.KeyRatings, err)
	} else {
		latest[remedyID] = rating
		r.write(ctx, scope, store.KeyRatings, latest)
	}

	if history, err := r.history(ctx, scope); err != nil {
		r.warn("rating skipped", scope, store.KeyRatingHistory, err)
	} else {
		history = append(history, domain.RatingRecord{RemedyID: remedyID, Rating: rating, Timestamp: now})
		r.write(ctx, scope, store.KeyRatingHistory, history)
	}

	r.appendLocked(ctx, scope, domain.ActivityEntry{
		Kind:        domain.ActivityRating,
		Description: fmt.Sprintf(`Rated "%s" %d stars`, name, rating),
		Timestamp:   now,
		RemedyID:    remedyID,
		Rating:      rating,
	})
	return nil
}

// RatingFor returns the client's latest rating of remedyID, 0 when unrated.
func (r *Recorder) RatingFor(ctx context.Context, scope, remedyID string) int {
	latest, err := r.latestRatings(ctx, scope)
	if err != nil {
		r.warn("read failed", scope, store.KeyRatings, err)
	}
	return latest[remedyID]
}

// IncrementAISearch bumps the AI search counter and returns the new value. When
// the counter cannot be read it is left alone and 0 is returned.
func (r *Recorder) IncrementAISearch(ctx context.Context, scope string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.incrementLocked(ctx, scope)
}

func (r *Recorder) incrementLocked(ctx context.Context, scope string) int {
	n, err := r.aiSearches(ctx, scope)
	if err != nil {
		r.warn("increment skipped", scope, store.KeyAISearches, err)
		return 0
	}
	n++
	r.write(ctx, scope, store.KeyAISearches, n)
	return n
}

// Touch returns when the client was first seen, recording now on first call.
func (r *Recorder) Touch(ctx context.Context, scope string) time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()

	var first time.Time
	ok, err := store.GetJSON(ctx, r.kv, scope, store.KeyFirstSeen, &first)
	if err != nil {
		r.warn("read failed", scope, store.KeyFirstSeen, err)
		return r.now().UTC()
	}
	if ok && !first.IsZero() {
		return first
	}
	first = r.now().UTC()
	r.write(ctx, scope, store.KeyFirstSeen, first)
	return first
}

// StatsInput carries the figures owned by other components.
type StatsInput struct {
	Bookmarks int
	// SignedUpAt is the identity creation time. Zero means anonymous, in which
	// case the first-seen time is used.
	SignedUpAt time.Time
}

// Stats recomputes the profile statistics on every call.
func (r *Recorder) Stats(ctx context.Context, scope string, in StatsInput) domain.Stats {
	since := in.SignedUpAt
	if since.IsZero() {
		since = r.Touch(ctx, scope)
	}
	ai, err := r.aiSearches(ctx, scope)
	if err != nil {
		r.warn("read failed", scope, store.KeyAISearches, err)
	}
	history, err := r.history(ctx, scope)
	if err != nil {
		r.warn("read failed", scope, store.KeyRatingHistory, err)
	}
	return domain.Stats{
		Bookmarks:     in.Bookmarks,
		AISearches:    ai,
		DaysActive:    daysActive(since, r.now()),
		AverageRating: averageRating(history),
	}
}

func daysActive(since, now time.Time) int {
	days := int(now.Sub(since) / (24 * time.Hour))
	return max(days, 1)
}

// averageRating rounds to one decimal. No ratings averages to 0.
func averageRating(history []domain.RatingRecord) float64 {
	if len(history) == 0 {
		return 0
	}
	sum := 0
	for _, h := range history {
		sum += h.Rating
	}
	avg := float64(sum) / float64(len(history))
	return math.Round(avg*10) / 10
}

// The getters below return an empty value alongside any read error. Callers
// that write back must check the error first.

func (r *Recorder) entries(ctx context.Context, scope string) ([]domain.ActivityEntry, error) {
	entries := []domain.ActivityEntry{}
	if _, err := store.GetJSON(ctx, r.kv, scope, store.KeyActivity, &entries); err != nil {
		return []domain.ActivityEntry{}, err
	}
	if entries == nil {
		entries = []domain.ActivityEntry{}
	}
	return entries, nil
}

func (r *Recorder) latestRatings(ctx context.Context, scope string) (map[string]int, error) {
	latest := map[string]int{}
	if _, err := store.GetJSON(ctx, r.kv, scope, store.KeyRatings, &latest); err != nil {
		return map[string]int{}, err
	}
	if latest == nil {
		latest = map[string]int{}
	}
	return latest, nil
}

func (r *Recorder) history(ctx context.Context, scope string) ([]domain.RatingRecord, error) {
	var history []domain.RatingRecord
	if _, err := store.GetJSON(ctx, r.kv, scope, store.KeyRatingHistory, &history); err != nil {
		return nil, err
	}
	return history, nil
}

func (r *Recorder) aiSearches(ctx context.Context, scope string) (int, error) {
	var n int
	if _, err := store.GetJSON(ctx, r.kv, scope, store.KeyAISearches, &n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *Recorder) write(ctx context.Context, scope, key string, v any) {
	if err := store.SetJSON(ctx, r.kv, scope, key, v); err != nil {
		r.warn("write failed", scope, key, err)
	}
}

func (r *Recorder) warn(op, scope, key string, err error) {
	r.log.Warn("activity "+op,
		logger.String("scope", scope),
		logger.String("key", key),
		logger.Error(err))
}
