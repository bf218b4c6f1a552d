package testutil

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	types "github.com/yungbote/techverse/internal/domain"
)

// SeedItem inserts an item with an explicit creation time.
func SeedItem(tb testing.TB, ctx context.Context, tx *gorm.DB, text string, createdAt time.Time) *types.Item {
	tb.Helper()
	it := &types.Item{
		Text:      text,
		CreatedAt: createdAt.UTC(),
	}
	if err := tx.WithContext(ctx).Create(it).Error; err != nil {
		tb.Fatalf("seed item: %v", err)
	}
	return it
}
