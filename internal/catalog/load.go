package catalog

import (
	"fmt"

	"github.com/MrSnakeDoc/healthvibe/internal/domain"
	"github.com/MrSnakeDoc/healthvibe/internal/logger"
	"github.com/MrSnakeDoc/healthvibe/internal/sources/catalogfile"
)

// FromFile builds a catalog from a YAML document. An empty path selects the
// built-in catalog.
func FromFile(path string, log logger.Logger) (*Catalog, error) {
	f, err := catalogfile.NewLoader(path).Load()
	if err != nil {
		return nil, err
	}

	mapper := catalogfile.NewMapper()
	categories, err := mapper.MapCategories(f)
	if err != nil {
		return nil, fmt.Errorf("failed to map categories: %w", err)
	}
	remedies, err := mapper.MapRemedies(f)
	if err != nil {
		return nil, fmt.Errorf("failed to map remedies: %w", err)
	}

	c, err := New(categories, remedies)
	if err != nil {
		return nil, err
	}
	c.logDrift(log)
	return c, nil
}

// Builtin returns the embedded catalog.
func Builtin() (*Catalog, error) {
	return FromFile("", logger.NewNop())
}

// logDrift reports remedies pointing at unknown categories and categories whose
// stored count disagrees with the live count. Neither is corrected.
func (c *Catalog) logDrift(log logger.Logger) {
	for _, r := range c.remedies {
		if _, ok := c.categoryByID[r.Category]; !ok {
			log.Warn("remedy references unknown category",
				logger.String("remedy_id", r.ID),
				logger.String("category", r.Category))
		}
	}
	for _, cat := range c.categories {
		if live := c.liveCounts[cat.ID]; live != cat.RemedyCount {
			log.Debug("category count differs from catalog",
				logger.String("category", cat.ID),
				logger.Int("stored", cat.RemedyCount),
				logger.Int("live", live))
		}
	}
	log.Info("catalog loaded",
		logger.Int("categories", len(c.categories)),
		logger.Int("remedies", len(c.remedies)))
}

// Snapshot returns the definition-ordered contents, used for seeding and export.
func (c *Catalog) Snapshot() ([]domain.Category, []domain.Remedy) {
	return c.Categories(), c.Remedies()
}
