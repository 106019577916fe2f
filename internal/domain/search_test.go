package domain

import (
	"strings"
	"testing"
)

func sampleRemedies() []Remedy {
	return []Remedy{
		{
			ID: "ginger-tea-cold", Name: "Ginger Honey Tea",
			Description: "A warming tea to soothe sore throat.",
			Ingredients: []string{"Fresh ginger root (1 inch)", "Honey (2 tbsp)"},
			Category:    "respiratory", Difficulty: DifficultyEasy, Effectiveness: 4,
		},
		{
			ID: "peppermint-tea", Name: "Peppermint Tea for Digestion",
			Description: "Natural digestive aid.",
			Ingredients: []string{"Fresh peppermint leaves (1 handful)"},
			Category:    "digestive", Difficulty: DifficultyEasy, Effectiveness: 4,
		},
		{
			ID: "chicken-soup", Name: "Immune-Boosting Chicken Soup",
			Description: "Nutritious soup.",
			Ingredients: []string{"Chicken broth (4 cups)"},
			Category:    "cold-flu", Difficulty: DifficultyMedium, Effectiveness: 5,
		},
		{
			ID: "ginger-turmeric-tea", Name: "Ginger Turmeric Anti-Inflammatory Tea",
			Description: "Powerful anti-inflammatory tea.",
			Ingredients: []string{"Fresh ginger (1 inch)", "Turmeric powder (1 tsp)"},
			Category:    "headaches", Difficulty: DifficultyEasy, Effectiveness: 4,
		},
	}
}

func ids(rs []Remedy) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}

func TestSearch(t *testing.T) {
	catalog := sampleRemedies()

	tests := []struct {
		name    string
		query   string
		filters Filters
		want    []string
	}{
		{
			name:    "empty query and all filters returns catalog",
			filters: Filters{Category: FilterAll, Difficulty: FilterAll},
			want:    []string{"ginger-tea-cold", "peppermint-tea", "chicken-soup", "ginger-turmeric-tea"},
		},
		{
			name:  "substring match is not tokenized",
			query: "gin",
			want:  []string{"ginger-tea-cold", "ginger-turmeric-tea"},
		},
		{
			name:  "case insensitive",
			query: "GINGER",
			want:  []string{"ginger-tea-cold", "ginger-turmeric-tea"},
		},
		{
			name:  "matches ingredient only",
			query: "broth",
			want:  []string{"chicken-soup"},
		},
		{
			name:    "category filter",
			filters: Filters{Category: "digestive"},
			want:    []string{"peppermint-tea"},
		},
		{
			name:    "difficulty filter is exact",
			filters: Filters{Difficulty: "Medium"},
			want:    []string{"chicken-soup"},
		},
		{
			name:    "difficulty filter with different case does not match",
			filters: Filters{Difficulty: "medium"},
			want:    []string{},
		},
		{
			name:    "query combined with category",
			query:   "ginger",
			filters: Filters{Category: "headaches"},
			want:    []string{"ginger-turmeric-tea"},
		},
		{
			name:  "no match",
			query: "lavender",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Search(catalog, tt.query, tt.filters))
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("Search(%q, %+v) = %v, want %v", tt.query, tt.filters, got, tt.want)
			}
		})
	}
}

func TestSearchResultsContainQuery(t *testing.T) {
	catalog := sampleRemedies()
	for _, q := range []string{"tea", "ginger", "soup", "inch", "a"} {
		for _, r := range Search(catalog, q, Filters{}) {
			if !MatchesQuery(r, strings.ToLower(q)) {
				t.Errorf("Search(%q) returned %s which does not contain the query", q, r.ID)
			}
		}
	}
}

func TestRemedyValidate(t *testing.T) {
	tests := []struct {
		name    string
		remedy  Remedy
		wantErr bool
	}{
		{"valid", Remedy{ID: "x", Difficulty: DifficultyEasy, Effectiveness: 3}, false},
		{"empty id", Remedy{Difficulty: DifficultyEasy, Effectiveness: 3}, true},
		{"bad difficulty", Remedy{ID: "x", Difficulty: "Hard", Effectiveness: 3}, true},
		{"effectiveness too high", Remedy{ID: "x", Difficulty: DifficultyEasy, Effectiveness: 6}, true},
		{"effectiveness zero", Remedy{ID: "x", Difficulty: DifficultyEasy}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.remedy.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
