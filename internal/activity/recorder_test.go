package activity

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/healthvibe/internal/domain"
	"github.com/MrSnakeDoc/healthvibe/internal/logger"
	"github.com/MrSnakeDoc/healthvibe/internal/store/memory"
	"github.com/MrSnakeDoc/healthvibe/internal/store/storetest"
)

func newTestRecorder(now *time.Time) *Recorder {
	r := NewRecorder(memory.New(), logger.NewNop())
	r.now = func() time.Time { return *now }
	return r
}

func TestAppendCapsAndOrders(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	r := newTestRecorder(&now)

	for i := 0; i < 25; i++ {
		now = now.Add(time.Minute)
		r.Append(ctx, "c1", domain.ActivityEntry{Kind: domain.ActivitySearch})
	}
	entries := r.Entries(ctx, "c1")
	require.Len(t, entries, domain.MaxActivityEntries)
	assert.True(t, entries[0].Timestamp.Equal(now))
	assert.Len(t, r.Recent(ctx, "c1", 5), 5)
}

func TestRateWritesLatestHistoryAndActivity(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	r := newTestRecorder(&now)

	require.NoError(t, r.Rate(ctx, "c1", "peppermint-tea", "Peppermint Tea for Digestion", 4))
	require.NoError(t, r.Rate(ctx, "c1", "peppermint-tea", "Peppermint Tea for Digestion", 5))
	require.NoError(t, r.Rate(ctx, "c1", "chicken-soup", "Immune-Boosting Chicken Soup", 3))

	assert.Equal(t, 5, r.RatingFor(ctx, "c1", "peppermint-tea"))
	assert.Equal(t, 0, r.RatingFor(ctx, "c1", "unrated"))

	entries := r.Entries(ctx, "c1")
	require.Len(t, entries, 3)
	assert.Equal(t, `Rated "Immune-Boosting Chicken Soup" 3 stars`, entries[0].Description)
	assert.Equal(t, domain.ActivityRating, entries[0].Kind)
	assert.Equal(t, 3, entries[0].Rating)

	// history keeps all three ratings: (4+5+3)/3 = 4.0
	assert.Equal(t, 4.0, r.Stats(ctx, "c1", StatsInput{}).AverageRating)
}

func TestRateRejectsOutOfRange(t *testing.T) {
	r := NewRecorder(memory.New(), logger.NewNop())
	for _, v := range []int{0, 6, -1} {
		assert.ErrorIs(t, r.Rate(context.Background(), "c1", "x", "X", v), ErrInvalidRating)
	}
}

func TestRecordSearchSkipsImmediateRepeat(t *testing.T) {
	ctx := context.Background()
	r := NewRecorder(memory.New(), logger.NewNop())

	r.RecordSearch(ctx, "c1", "ginger")
	r.RecordSearch(ctx, "c1", "ginger")
	r.RecordSearch(ctx, "c1", "mint")
	r.RecordSearch(ctx, "c1", "ginger")

	entries := r.Entries(ctx, "c1")
	require.Len(t, entries, 3)
	assert.Equal(t, `Searched for "ginger"`, entries[0].Description)
	assert.Equal(t, "ginger", entries[0].Query)
}

func TestRecordAISearchAndBookmark(t *testing.T) {
	ctx := context.Background()
	r := NewRecorder(memory.New(), logger.NewNop())

	r.RecordAISearch(ctx, "c1", "sore throat")
	r.RecordBookmark(ctx, "c1", "ai-1-0-x", "")

	entries := r.Entries(ctx, "c1")
	require.Len(t, entries, 2)
	assert.Equal(t, `Bookmarked "remedy"`, entries[0].Description)
	assert.Equal(t, `Searched for "sore throat" remedies`, entries[1].Description)
	assert.Equal(t, domain.ActivityAISearch, entries[1].Kind)
	assert.Equal(t, 2, r.IncrementAISearch(ctx, "c1"))
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	r := newTestRecorder(&now)

	fresh := r.Stats(ctx, "c1", StatsInput{Bookmarks: 2})
	assert.Equal(t, domain.Stats{Bookmarks: 2, DaysActive: 1}, fresh, "days active is at least 1")

	now = now.Add(3*24*time.Hour + time.Hour)
	assert.Equal(t, 3, r.Stats(ctx, "c1", StatsInput{}).DaysActive, "first seen is kept")

	signup := now.Add(-10*24*time.Hour - time.Minute)
	assert.Equal(t, 10, r.Stats(ctx, "c1", StatsInput{SignedUpAt: signup}).DaysActive)
}

func TestAverageRatingRounding(t *testing.T) {
	tests := []struct {
		ratings []int
		want    float64
	}{
		{nil, 0},
		{[]int{5}, 5},
		{[]int{4, 5}, 4.5},
		{[]int{4, 4, 5}, 4.3},
		{[]int{1, 2, 2}, 1.7},
	}
	for _, tt := range tests {
		var h []domain.RatingRecord
		for _, v := range tt.ratings {
			h = append(h, domain.RatingRecord{Rating: v})
		}
		assert.Equal(t, tt.want, averageRating(h), "%v", tt.ratings)
	}
}

func TestNilStoreDegrades(t *testing.T) {
	ctx := context.Background()
	r := NewRecorder(nil, logger.NewNop())

	r.RecordAISearch(ctx, "c1", "q")
	assert.Empty(t, r.Entries(ctx, "c1"))
	assert.NoError(t, r.Rate(ctx, "c1", "x", "X", 3))
	st := r.Stats(ctx, "c1", StatsInput{})
	assert.Equal(t, 1, st.DaysActive)
	assert.Zero(t, st.AISearches)
}

func TestFailedReadsNeverOverwriteStoredData(t *testing.T) {
	ctx := context.Background()
	kv := storetest.NewFlaky(memory.New())
	r := NewRecorder(kv, logger.NewNop())

	for i := 0; i < 5; i++ {
		r.RecordAISearch(ctx, "c1", "query "+strconv.Itoa(i))
	}
	require.NoError(t, r.Rate(ctx, "c1", "a", "A", 4))
	require.NoError(t, r.Rate(ctx, "c1", "b", "B", 2))
	require.Len(t, r.Entries(ctx, "c1"), 7)

	// counter unreadable: the search is still logged, the counter is kept
	kv.FailGets(1)
	r.RecordAISearch(ctx, "c1", "sleep")
	assert.Len(t, r.Entries(ctx, "c1"), 8)
	assert.Equal(t, 5, r.Stats(ctx, "c1", StatsInput{}).AISearches)

	// latest ratings unreadable: history and feed still move, the map is kept
	kv.FailGets(1)
	require.NoError(t, r.Rate(ctx, "c1", "c", "C", 5))
	assert.Equal(t, 4, r.RatingFor(ctx, "c1", "a"))
	assert.Equal(t, 2, r.RatingFor(ctx, "c1", "b"))
	assert.Equal(t, 0, r.RatingFor(ctx, "c1", "c"))
	assert.Equal(t, 3.7, r.Stats(ctx, "c1", StatsInput{}).AverageRating)
	assert.Len(t, r.Entries(ctx, "c1"), 9)

	// feed unreadable: nothing is appended
	kv.FailGets(1)
	r.RecordSearch(ctx, "c1", "ginger")
	assert.Len(t, r.Entries(ctx, "c1"), 9)
}

func TestTouchKeepsFirstSeenWhenReadFails(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	first := now
	kv := storetest.NewFlaky(memory.New())
	r := NewRecorder(kv, logger.NewNop())
	r.now = func() time.Time { return now }

	require.True(t, r.Touch(ctx, "c1").Equal(first))

	now = now.Add(48 * time.Hour)
	kv.FailGets(1)
	assert.True(t, r.Touch(ctx, "c1").Equal(now))
	assert.True(t, r.Touch(ctx, "c1").Equal(first), "first seen is not rewritten")
}
