package app

import (
	"github.com/gin-gonic/gin"

	"github.com/flashflow/flashflow-backend/internal/platform/logger"
	"github.com/flashflow/flashflow-backend/internal/server"
)

const serviceName = "flashflow-backend"

func wireRouter(log *logger.Logger, cfg Config, handlerset Handlers) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		Log:            log,
		ServiceName:    serviceName,
		CORSOrigins:    cfg.CORSOrigins,
		VariantHandler: handlerset.Variant,
		AccountHandler: handlerset.Account,
	})
}
