// Package postgres holds the gorm-backed persistence: the per-client KV table
// and the catalog tables.
package postgres

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func Connect(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}
	return gdb, nil
}

func AutoMigrateAndIndexes(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&ClientEntry{},
		&CategoryRow{},
		&RemedyRow{},
	); err != nil {
		return err
	}

	stmts := []string{
		`create index if not exists idx_remedies_category on remedies(category);`,
		`create index if not exists idx_remedies_ingredients on remedies using gin (ingredients);`,
		`create index if not exists idx_client_entries_updated on client_entries(updated_at desc);`,
	}
	for _, s := range stmts {
		if err := gdb.Exec(s).Error; err != nil {
			return fmt.Errorf("index exec failed: %w (sql=%s)", err, s)
		}
	}
	return nil
}
