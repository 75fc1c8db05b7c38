package app

import (
	"github.com/flashflow/flashflow-backend/internal/http/handlers"
	"github.com/flashflow/flashflow-backend/internal/platform/logger"
)

type Handlers struct {
	Variant *handlers.VariantHandler
	Account *handlers.AccountHandler
}

func wireHandlers(log *logger.Logger, serviceset Services, reposet Repos) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Variant: handlers.NewVariantHandler(serviceset.Lineage, serviceset.Promotion, serviceset.Scaling),
		Account: handlers.NewAccountHandler(reposet.Accounts),
	}
}
