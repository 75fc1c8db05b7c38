package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/flashflow/flashflow-backend/internal/http/handlers"
	"github.com/flashflow/flashflow-backend/internal/middleware"
	"github.com/flashflow/flashflow-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	ServiceName    string
	CORSOrigins    []string
	VariantHandler *handlers.VariantHandler
	AccountHandler *handlers.AccountHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	if cfg.Log != nil {
		router.Use(middleware.RequestLogger(cfg.Log))
	}
	router.Use(otelgin.Middleware(cfg.ServiceName))

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", middleware.RequestIDHeader},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		api.GET("/accounts", cfg.AccountHandler.ListAccounts)
		api.GET("/winners", cfg.VariantHandler.ListWinners)

		variants := api.Group("/variants")
		{
			variants.GET("/:id", cfg.VariantHandler.GetVariant)
			variants.GET("/:id/lineage", cfg.VariantHandler.GetLineage)
			variants.POST("/:id/promote", cfg.VariantHandler.PromoteVariant)
			variants.POST("/:id/scale", cfg.VariantHandler.ScaleVariant)
		}
	}

	return router
}
