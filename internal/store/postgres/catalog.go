package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/MrSnakeDoc/healthvibe/internal/domain"
)

// LoadCatalog reads both catalog tables ordered by name.
func LoadCatalog(ctx context.Context, db *gorm.DB) ([]domain.Category, []domain.Remedy, error) {
	var catRows []CategoryRow
	if err := db.WithContext(ctx).Order("name asc").Find(&catRows).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load categories: %w", err)
	}
	var remRows []RemedyRow
	if err := db.WithContext(ctx).Order("name asc").Find(&remRows).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load remedies: %w", err)
	}

	categories := make([]domain.Category, 0, len(catRows))
	for _, r := range catRows {
		categories = append(categories, r.toDomain())
	}
	remedies := make([]domain.Remedy, 0, len(remRows))
	for _, r := range remRows {
		remedies = append(remedies, r.toDomain())
	}
	return categories, remedies, nil
}

// SeedCatalog inserts the given catalog when the remedies table is empty.
// Existing rows are never overwritten. It reports whether anything was seeded.
func SeedCatalog(ctx context.Context, db *gorm.DB, categories []domain.Category, remedies []domain.Remedy) (bool, error) {
	var n int64
	if err := db.WithContext(ctx).Model(&RemedyRow{}).Count(&n).Error; err != nil {
		return false, fmt.Errorf("failed to count remedies: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	catRows := make([]CategoryRow, 0, len(categories))
	for _, c := range categories {
		catRows = append(catRows, categoryRow(c))
	}
	remRows := make([]RemedyRow, 0, len(remedies))
	for _, r := range remedies {
		remRows = append(remRows, remedyRow(r))
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(catRows) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&catRows).Error; err != nil {
				return err
			}
		}
		if len(remRows) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&remRows).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to seed catalog: %w", err)
	}
	return true, nil
}
