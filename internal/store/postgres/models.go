package postgres

import (
	"time"

	"github.com/lib/pq"

	"github.com/MrSnakeDoc/healthvibe/internal/domain"
)

// ClientEntry is one (scope, key) value of the KV table.
type ClientEntry struct {
	Scope     string    `gorm:"primaryKey;type:text"`
	Key       string    `gorm:"primaryKey;type:text"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (ClientEntry) TableName() string { return "client_entries" }

type CategoryRow struct {
	ID          string `gorm:"primaryKey;type:text"`
	Name        string `gorm:"type:text;not null"`
	Description string `gorm:"type:text;not null;default:''"`
	Icon        string `gorm:"type:text;not null;default:''"`
	Color       string `gorm:"type:text;not null;default:''"`
	RemedyCount int    `gorm:"not null;default:0"`
	CreatedAt   time.Time
}

func (CategoryRow) TableName() string { return "categories" }

type RemedyRow struct {
	ID              string         `gorm:"primaryKey;type:text"`
	Name            string         `gorm:"type:text;not null"`
	Description     string         `gorm:"type:text;not null;default:''"`
	Category        string         `gorm:"type:text;not null"`
	Ingredients     pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	Instructions    pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	PreparationTime string         `gorm:"type:text;not null;default:''"`
	ReliefTime      string         `gorm:"type:text;not null;default:''"`
	Precautions     pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	Difficulty      string         `gorm:"type:text;not null"`
	Effectiveness   int            `gorm:"not null"`
	CreatedAt       time.Time
}

func (RemedyRow) TableName() string { return "remedies" }

func categoryRow(c domain.Category) CategoryRow {
	return CategoryRow{ID: c.ID, Name: c.Name, Description: c.Description, Icon: c.Icon, Color: c.Color, RemedyCount: c.RemedyCount}
}

func (r CategoryRow) toDomain() domain.Category {
	return domain.Category{ID: r.ID, Name: r.Name, Description: r.Description, Icon: r.Icon, Color: r.Color, RemedyCount: r.RemedyCount}
}

func remedyRow(r domain.Remedy) RemedyRow {
	return RemedyRow{
		ID:              r.ID,
		Name:            r.Name,
		Description:     r.Description,
		Category:        r.Category,
		Ingredients:     pq.StringArray(r.Ingredients),
		Instructions:    pq.StringArray(r.Instructions),
		PreparationTime: r.PreparationTime,
		ReliefTime:      r.ReliefTime,
		Precautions:     pq.StringArray(r.Precautions),
		Difficulty:      string(r.Difficulty),
		Effectiveness:   r.Effectiveness,
	}
}

func (r RemedyRow) toDomain() domain.Remedy {
	return domain.Remedy{
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
}

func nonNil(a pq.StringArray) []string {
	if a == nil {
		return []string{}
	}
	return []string(a)
}
