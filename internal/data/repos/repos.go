package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/techverse/internal/data/repos/items"
	"github.com/yungbote/techverse/internal/platform/logger"
)

type ItemRepo = items.ItemRepo

func NewItemRepo(db *gorm.DB, baseLog *logger.Logger) ItemRepo {
	return items.NewItemRepo(db, baseLog)
}
