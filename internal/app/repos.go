package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/techverse/internal/data/repos"
	"github.com/yungbote/techverse/internal/platform/logger"
)

type Repos struct {
	Item repos.ItemRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Item: repos.NewItemRepo(db, log),
	}
}
