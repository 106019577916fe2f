package domain

import "fmt"

// Difficulty is the preparation effort tier of a remedy.
type Difficulty string

const (
	DifficultyEasy     Difficulty = "Easy"
	DifficultyMedium   Difficulty = "Medium"
	DifficultyAdvanced Difficulty = "Advanced"
)

// Valid reports whether d is one of the known tiers.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyAdvanced:
		return true
	}
	return false
}

// Remedy is a catalog entry. Remedies are defined once at startup and never mutated.
type Remedy struct {
	// ─────────────────────────────
	// Identity
	// ─────────────────────────────

	// ID is unique across the catalog. Example: ginger-tea-cold
	ID string `json:"id"`

	Name        string `json:"name"`
	Description string `json:"description"`

	// Category references Category.ID. The reference is not enforced.
	Category string `json:"category"`

	// ─────────────────────────────
	// Preparation
	// ─────────────────────────────

	Ingredients     []string `json:"ingredients"`
	Instructions    []string `json:"instructions"`
	PreparationTime string   `json:"preparationTime"`
	ReliefTime      string   `json:"reliefTime"`
	Precautions     []string `json:"precautions"`

	Difficulty Difficulty `json:"difficulty"`

	// Effectiveness is a 1-5 star score.
	Effectiveness int `json:"effectiveness"`
}

// Validate checks the invariants a catalog remedy must hold.
func (r Remedy) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("remedy has empty id")
	}
	if !r.Difficulty.Valid() {
		return fmt.Errorf("remedy %s: unknown difficulty %q", r.ID, r.Difficulty)
	}
	if r.Effectiveness < 1 || r.Effectiveness > 5 {
		return fmt.Errorf("remedy %s: effectiveness %d out of range 1-5", r.ID, r.Effectiveness)
	}
	return nil
}

// Category groups remedies by health concern.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`

	// RemedyCount is the stored count shipped with the data. It is not recomputed
	// from the remedy set and can disagree with it.
	RemedyCount int `json:"remedyCount"`
}

// GeneratedRemedy is an ephemeral template-generated remedy. It lives only in a
// client's generation session.
type GeneratedRemedy struct {
	Remedy

	Benefits    []string `json:"benefits"`
	SearchQuery string   `json:"searchQuery"`
	Generated   bool     `json:"isAIGenerated"`
	Image       string   `json:"image"`
}
