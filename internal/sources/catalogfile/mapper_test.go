package catalogfile

import (
	"testing"

	"github.com/MrSnakeDoc/healthvibe/internal/domain"
)

func TestMapperMapRemedies(t *testing.T) {
	f := File{
		Remedies: []RemedyProps{
			{
				ID:            "breathing-technique",
				Name:          "4-7-8 Breathing Technique",
				Instructions:  []string{"Inhale through nose for 4 counts"},
				Category:      "stress",
				Difficulty:    "Easy",
				Effectiveness: 5,
			},
		},
	}

	remedies, err := NewMapper().MapRemedies(f)
	if err != nil {
		t.Fatalf("MapRemedies() error = %v", err)
	}
	if len(remedies) != 1 {
		t.Fatalf("MapRemedies() returned %d remedies, want 1", len(remedies))
	}

	r := remedies[0]
	if r.Difficulty != domain.DifficultyEasy {
		t.Errorf("Difficulty = %v, want Easy", r.Difficulty)
	}
	if r.Ingredients == nil || len(r.Ingredients) != 0 {
		t.Errorf("Ingredients = %#v, want empty non-nil slice", r.Ingredients)
	}
	if r.Precautions == nil {
		t.Error("Precautions should be non-nil")
	}
}

func TestMapperMapRemediesInvalid(t *testing.T) {
	tests := []struct {
		name string
		file File
	}{
		{"empty", File{}},
		{"bad difficulty", File{Remedies: []RemedyProps{{ID: "x", Difficulty: "Hard", Effectiveness: 3}}}},
		{"bad effectiveness", File{Remedies: []RemedyProps{{ID: "x", Difficulty: "Easy", Effectiveness: 9}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewMapper().MapRemedies(tt.file); err == nil {
				t.Error("MapRemedies() should fail")
			}
		})
	}
}

func TestMapperMapCategoriesKeepsStoredCount(t *testing.T) {
	f, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	cats, err := NewMapper().MapCategories(f)
	if err != nil {
		t.Fatalf("MapCategories() error = %v", err)
	}

	want := map[string]int{
		"respiratory": 8, "digestive": 6, "skin": 7, "reproductive": 5,
		"headaches": 9, "cold-flu": 10, "sleep": 6, "stress": 8,
	}
	for _, c := range cats {
		if c.RemedyCount != want[c.ID] {
			t.Errorf("category %s RemedyCount = %d, want %d", c.ID, c.RemedyCount, want[c.ID])
		}
	}
}
