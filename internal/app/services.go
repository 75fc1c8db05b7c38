package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/flashflow/flashflow-backend/internal/platform/logger"
	"github.com/flashflow/flashflow-backend/internal/platform/openai"
	"github.com/flashflow/flashflow-backend/internal/services"
)

type Services struct {
	Lineage   services.LineageService
	Promotion services.PromotionService
	Scaling   services.ScalingService
	Briefs    services.BriefSynthesizer
}

func wireServices(db *gorm.DB, log *logger.Logger, reposet Repos) (Services, error) {
	log.Info("Wiring services...")

	aiClient, err := openai.NewClient(log)
	if err != nil {
		return Services{}, fmt.Errorf("init openai client: %w", err)
	}

	briefs := services.NewOpenAIBriefSynthesizer(log, aiClient)
	lineage := services.NewLineageService(db, log, reposet.Variants, reposet.Videos)
	promotion := services.NewPromotionService(db, log, reposet.Variants)
	scaling := services.NewScalingService(
		db, log,
		reposet.Variants, reposet.Videos, reposet.Accounts, reposet.Groups,
		lineage, briefs,
	)

	return Services{
		Lineage:   lineage,
		Promotion: promotion,
		Scaling:   scaling,
		Briefs:    briefs,
	}, nil
}
