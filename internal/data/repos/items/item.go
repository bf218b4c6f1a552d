package items

import (
	"context"

	"gorm.io/gorm"

	types "github.com/yungbote/techverse/internal/domain"
	"github.com/yungbote/techverse/internal/platform/logger"
)

type ItemRepo interface {
	Create(ctx context.Context, tx *gorm.DB, items []*types.Item) ([]*types.Item, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []int64) ([]*types.Item, error)
	ListNewestFirst(ctx context.Context, tx *gorm.DB) ([]*types.Item, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, id int64) (int64, error)
}

type itemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewItemRepo(db *gorm.DB, baseLog *logger.Logger) ItemRepo {
	repoLog := baseLog.With("repo", "ItemRepo")
	return &itemRepo{db: db, log: repoLog}
}

func (r *itemRepo) Create(ctx context.Context, tx *gorm.DB, items []*types.Item) ([]*types.Item, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(items) == 0 {
		return []*types.Item{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&items).Error; err != nil {
		return nil, err
	}

	return items, nil
}

func (r *itemRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []int64) ([]*types.Item, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Item

	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

// ListNewestFirst returns every item ordered by creation time, newest first.
// Rows sharing a timestamp fall back to the higher id first.
func (r *itemRepo) ListNewestFirst(ctx context.Context, tx *gorm.DB) ([]*types.Item, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	results := []*types.Item{}
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (r *itemRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var n int64
	if err := transaction.WithContext(ctx).
		Model(&types.Item{}).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// DeleteByID removes one item and reports how many rows were affected, so the
// caller can tell a missing id apart from a successful delete.
func (r *itemRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id int64) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Item{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
