package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/yungbote/techverse/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&types.Item{},
	); err != nil {
		return err
	}
	return EnsureItemIndexes(db)
}

// EnsureItemIndexes adds the composite index used by the newest-first listing.
func EnsureItemIndexes(db *gorm.DB) error {
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_items_created_at_id
		ON items (created_at DESC, id DESC);
	`).Error; err != nil {
		return fmt.Errorf("create idx_items_created_at_id: %w", err)
	}
	return nil
}

func (s *Service) AutoMigrateAll() error {
	s.log.Info("Running migrations...")
	if err := AutoMigrateAll(s.db); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
