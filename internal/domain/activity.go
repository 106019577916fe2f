package domain

import "time"

// ActivityKind classifies an activity entry.
type ActivityKind string

const (
	ActivityBookmark ActivityKind = "bookmark"
	ActivityRating   ActivityKind = "rating"
	ActivitySearch   ActivityKind = "search"
	ActivityAISearch ActivityKind = "ai_search"
)

// MaxActivityEntries bounds the activity log. Older entries are dropped.
const MaxActivityEntries = 20

// ActivityEntry is one line of a client's recent activity feed.
type ActivityEntry struct {
	Kind        ActivityKind `json:"type"`
	Description string       `json:"description"`
	Timestamp   time.Time    `json:"timestamp"`
	RemedyID    string       `json:"remedyId,omitempty"`
	Rating      int          `json:"rating,omitempty"`
	Query       string       `json:"query,omitempty"`
}

// PrependActivity puts e at the front of entries and drops anything past the cap.
func PrependActivity(entries []ActivityEntry, e ActivityEntry) []ActivityEntry {
	out := make([]ActivityEntry, 0, min(len(entries)+1, MaxActivityEntries))
	out = append(out, e)
	for _, old := range entries {
		if len(out) == MaxActivityEntries {
			break
		}
		out = append(out, old)
	}
	return out
}

// RatingRecord is one rating given by a client. The history keeps every rating,
// including repeated ratings of the same remedy.
type RatingRecord struct {
	RemedyID  string    `json:"remedyId"`
	Rating    int       `json:"rating"`
	Timestamp time.Time `json:"timestamp"`
}

// Stats are the aggregates shown on a profile.
type Stats struct {
	Bookmarks     int     `json:"bookmarks"`
	AISearches    int     `json:"aiSearches"`
	DaysActive    int     `json:"daysActive"`
	AverageRating float64 `json:"averageRating"`
}
