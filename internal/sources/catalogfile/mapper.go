package catalogfile

import (
	"fmt"

	"github.com/MrSnakeDoc/healthvibe/internal/domain"
)

// Mapper converts catalog documents to domain entities.
type Mapper struct{}

// NewMapper creates a new mapper instance
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapCategories converts category entries, keeping document order.
func (m *Mapper) MapCategories(f File) ([]domain.Category, error) {
	out := make([]domain.Category, 0, len(f.Categories))
	for i, c := range f.Categories {
		if c.ID == "" {
			return nil, fmt.Errorf("category #%d has no id", i)
		}
		out = append(out, domain.Category{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			Icon:        c.Icon,
			Color:       c.Color,
			RemedyCount: c.RemedyCount,
		})
	}
	return out, nil
}

// MapRemedies converts remedy entries, keeping document order. Nil lists become
// empty lists so JSON output never carries null arrays.
func (m *Mapper) MapRemedies(f File) ([]domain.Remedy, error) {
	if len(f.Remedies) == 0 {
		return nil, fmt.Errorf("no remedies found in catalog")
	}

	out := make([]domain.Remedy, 0, len(f.Remedies))
	for _, r := range f.Remedies {
		remedy := domain.Remedy{
			ID:              r.ID,
			Name:            r.Name,
			Description:     r.Description,
			Category:        r.Category,
			Ingredients:     nonNil(r.Ingredients),
			Instructions:    nonNil(r.Instructions),
			PreparationTime: r.PreparationTime,
			ReliefTime:      r.ReliefTime,
			Precautions:     nonNil(r.Precautions),
			Difficulty:      domain.Difficulty(r.Difficulty),
			Effectiveness:   r.Effectiveness,
		}
		if err := remedy.Validate(); err != nil {
			return nil, err
		}
		out = append(out, remedy)
	}
	return out, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
