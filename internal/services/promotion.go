package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/flashflow/flashflow-backend/internal/domain/funnel"
	"github.com/flashflow/flashflow-backend/internal/platform/logger"
	"github.com/flashflow/flashflow-backend/internal/repos"
	"github.com/flashflow/flashflow-backend/internal/types"
)

type PromotionService interface {
	// Promote transitions a variant into winner state. A variant that is
	// already a winner fails with already_winner so callers can suppress
	// duplicate promotion side effects. Promotion never demotes siblings or
	// a prior winner elsewhere in the lineage, and never locks the variant.
	Promote(ctx context.Context, variantID uuid.UUID, note string) (*types.Variant, error)
}

type promotionService struct {
	db  *gorm.DB
	log *logger.Logger

	variants repos.VariantRepo
}

func NewPromotionService(db *gorm.DB, baseLog *logger.Logger, variants repos.VariantRepo) PromotionService {
	return &promotionService{
		db:       db,
		log:      baseLog.With("service", "PromotionService"),
		variants: variants,
	}
}

func (s *promotionService) Promote(ctx context.Context, variantID uuid.UUID, note string) (*types.Variant, error) {
	const op = "PromotionService.Promote"

	// One conditional UPDATE carries the whole precondition: of two
	// concurrent callers exactly one updates a row, the other sees zero
	// rows affected.
	rows, err := s.variants.PromoteToWinner(ctx, nil, variantID, note)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		existing, getErr := s.variants.GetByID(ctx, nil, variantID)
		if getErr != nil {
			return nil, getErr
		}
		if existing.Status == types.VariantStatusWinner {
			return nil, funnel.NewError(funnel.CodeAlreadyWinner, op,
				"variant "+variantID.String()+" is already a winner", nil)
		}
		// Row exists, is not a winner, yet the update matched nothing.
		s.log.Error("promotion update matched no rows for a live non-winner", "variant_id", variantID)
		return nil, funnel.NewError(funnel.CodeDataIntegrity, op,
			"promotion update matched no rows for variant "+variantID.String(), nil)
	}

	updated, err := s.variants.GetByID(ctx, nil, variantID)
	if err != nil {
		return nil, err
	}
	s.log.Info("variant promoted to winner", "variant_id", variantID, "note_appended", note != "")
	return updated, nil
}
