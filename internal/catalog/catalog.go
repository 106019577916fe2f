package catalog

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/healthvibe/internal/domain"
)

// Catalog is the read-only set of categories and remedies. It is built once and
// never mutated, so reads need no locking.
type Catalog struct {
	categories []domain.Category
	remedies   []domain.Remedy

	categoryByID map[string]int // ID -> index in categories
	remedyByID   map[string]int // ID -> index in remedies
	liveCounts   map[string]int // category ID -> remedies actually tagged with it
}

// New builds a catalog, keeping the given definition order.
func New(categories []domain.Category, remedies []domain.Remedy) (*Catalog, error) {
	c := &Catalog{
		categories:   append([]domain.Category(nil), categories...),
		remedies:     append([]domain.Remedy(nil), remedies...),
		categoryByID: make(map[string]int, len(categories)),
		remedyByID:   make(map[string]int, len(remedies)),
		liveCounts:   make(map[string]int, len(categories)),
	}

	for i, cat := range c.categories {
		if _, dup := c.categoryByID[cat.ID]; dup {
			return nil, fmt.Errorf("duplicate category id %q", cat.ID)
		}
		c.categoryByID[cat.ID] = i
	}

	for i, r := range c.remedies {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.remedyByID[r.ID]; dup {
			return nil, fmt.Errorf("duplicate remedy id %q", r.ID)
		}
		c.remedyByID[r.ID] = i
		c.liveCounts[r.Category]++
	}

	return c, nil
}

// RemediesByCategory returns the remedies tagged with categoryID in definition
// order. Unknown categories yield an empty slice.
func (c *Catalog) RemediesByCategory(categoryID string) []domain.Remedy {
	out := make([]domain.Remedy, 0, c.liveCounts[categoryID])
	for _, r := range c.remedies {
		if r.Category == categoryID {
			out = append(out, r)
		}
	}
	return out
}

// RemedyByID looks up a remedy. A missing remedy is reported with ok=false.
func (c *Catalog) RemedyByID(id string) (domain.Remedy, bool) {
	i, ok := c.remedyByID[id]
	if !ok {
		return domain.Remedy{}, false
	}
	return c.remedies[i], true
}

// Resolve lets the catalog resolve bookmarks. The scope is ignored.
func (c *Catalog) Resolve(_ context.Context, _, id string) (domain.Remedy, bool) {
	return c.RemedyByID(id)
}

// Remedies returns every remedy in definition order. The slice is a copy.
func (c *Catalog) Remedies() []domain.Remedy {
	return append([]domain.Remedy(nil), c.remedies...)
}

// Categories returns every category in definition order. The slice is a copy.
func (c *Catalog) Categories() []domain.Category {
	return append([]domain.Category(nil), c.categories...)
}

// CategoryByID looks up a category.
func (c *Catalog) CategoryByID(id string) (domain.Category, bool) {
	i, ok := c.categoryByID[id]
	if !ok {
		return domain.Category{}, false
	}
	return c.categories[i], true
}

// LiveCount is the number of remedies actually tagged with categoryID. It can
// differ from the category's stored RemedyCount.
func (c *Catalog) LiveCount(categoryID string) int {
	return c.liveCounts[categoryID]
}

// Len returns the number of remedies.
func (c *Catalog) Len() int {
	return len(c.remedies)
}

// Search runs the catalog query over every remedy.
func (c *Catalog) Search(query string, f domain.Filters) []domain.Remedy {
	return domain.Search(c.Remedies(), query, f)
}
