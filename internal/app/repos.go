package app

import (
	"gorm.io/gorm"

	"github.com/flashflow/flashflow-backend/internal/platform/logger"
	"github.com/flashflow/flashflow-backend/internal/repos"
)

type Repos struct {
	Variants repos.VariantRepo
	Videos   repos.VideoRepo
	Accounts repos.AccountRepo
	Groups   repos.IterationGroupRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Variants: repos.NewVariantRepo(db, log),
		Videos:   repos.NewVideoRepo(db, log),
		Accounts: repos.NewAccountRepo(db, log),
		Groups:   repos.NewIterationGroupRepo(db, log),
	}
}
