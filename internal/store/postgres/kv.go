package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KV implements store.KV on the client_entries table.
type KV struct {
	db *gorm.DB
}

func NewKV(db *gorm.DB) *KV {
	return &KV{db: db}
}

func (s *KV) Get(ctx context.Context, scope, key string) (string, bool, error) {
	var e ClientEntry
	err := s.db.WithContext(ctx).
		Where("scope = ? AND key = ?", scope, key).
		Take(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return e.Value, true, nil
}

func (s *KV) Set(ctx context.Context, scope, key, value string) error {
	e := ClientEntry{Scope: scope, Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "scope"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

func (s *KV) Delete(ctx context.Context, scope, key string) error {
	err := s.db.WithContext(ctx).
		Where("scope = ? AND key = ?", scope, key).
		Delete(&ClientEntry{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *KV) Clear(ctx context.Context, scope string) error {
	if err := s.db.WithContext(ctx).Where("scope = ?", scope).Delete(&ClientEntry{}).Error; err != nil {
		return fmt.Errorf("failed to clear client: %w", err)
	}
	return nil
}

func (s *KV) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *KV) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
