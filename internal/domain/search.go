package domain

import "strings"

// FilterAll disables a filter when used as its value.
const FilterAll = "all"

// Filters narrows a catalog search. Empty values and FilterAll match everything.
type Filters struct {
	Category   string
	Difficulty string
}

func (f Filters) categoryActive() bool {
	return f.Category != "" && f.Category != FilterAll
}

func (f Filters) difficultyActive() bool {
	return f.Difficulty != "" && f.Difficulty != FilterAll
}

// Search returns the remedies matching query and filters, in input order.
//
// A remedy matches when every active condition holds:
//   - query: case-insensitive substring of the name, the description or any ingredient
//   - category: exact match
//   - difficulty: exact match
//
// With an empty query and no active filter the input is returned unchanged.
func Search(remedies []Remedy, query string, f Filters) []Remedy {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" && !f.categoryActive() && !f.difficultyActive() {
		return remedies
	}

	out := make([]Remedy, 0, len(remedies))
	for _, r := range remedies {
		if f.categoryActive() && r.Category != f.Category {
			continue
		}
		if f.difficultyActive() && string(r.Difficulty) != f.Difficulty {
			continue
		}
		if q != "" && !MatchesQuery(r, q) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// MatchesQuery reports whether the lower-cased query q is a substring of the
// remedy's name, description or one of its ingredients.
func MatchesQuery(r Remedy, q string) bool {
	if strings.Contains(strings.ToLower(r.Name), q) {
		return true
	}
	if strings.Contains(strings.ToLower(r.Description), q) {
		return true
	}
	for _, ing := range r.Ingredients {
		if strings.Contains(strings.ToLower(ing), q) {
			return true
		}
	}
	return false
}
