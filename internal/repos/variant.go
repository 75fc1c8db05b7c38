package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/flashflow/flashflow-backend/internal/platform/logger"
	"github.com/flashflow/flashflow-backend/internal/types"
)

type VariantRepo interface {
	Create(ctx context.Context, tx *gorm.DB, variants []*types.Variant) ([]*types.Variant, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Variant, error)
	GetChildren(ctx context.Context, tx *gorm.DB, parentID uuid.UUID) ([]*types.Variant, error)
	ListWinners(ctx context.Context, tx *gorm.DB, limit int) ([]*types.Variant, error)

	// PromoteToWinner performs the conditional promotion update in one
	// statement: status/is_winner flip plus note append, guarded by
	// status <> 'winner'. Returns the number of rows updated so callers can
	// distinguish a won race from a lost one.
	PromoteToWinner(ctx context.Context, tx *gorm.DB, id uuid.UUID, note string) (int64, error)
}

type variantRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVariantRepo(db *gorm.DB, baseLog *logger.Logger) VariantRepo {
	return &variantRepo{db: db, log: baseLog.With("repo", "VariantRepo")}
}

func (r *variantRepo) Create(ctx context.Context, tx *gorm.DB, variants []*types.Variant) ([]*types.Variant, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(variants) == 0 {
		return []*types.Variant{}, nil
	}
	for _, v := range variants {
		if v.ID == uuid.Nil {
			v.ID = uuid.New()
		}
	}

	if err := transaction.WithContext(ctx).Create(&variants).Error; err != nil {
		return nil, classify("VariantRepo.Create", err)
	}
	return variants, nil
}

func (r *variantRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Variant, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Variant
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, classify("VariantRepo.GetByID", err)
	}
	return &result, nil
}

func (r *variantRepo) GetChildren(ctx context.Context, tx *gorm.DB, parentID uuid.UUID) ([]*types.Variant, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	// Siblings created in one transaction share created_at; id is the
	// tie-break so repeated reads stay stable.
	var results []*types.Variant
	if err := transaction.WithContext(ctx).
		Where("parent_variant_id = ?", parentID).
		Order("created_at ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, classify("VariantRepo.GetChildren", err)
	}
	return results, nil
}

func (r *variantRepo) ListWinners(ctx context.Context, tx *gorm.DB, limit int) ([]*types.Variant, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	q := transaction.WithContext(ctx).
		Where("is_winner = ?", true).
		Order("updated_at DESC, id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var results []*types.Variant
	if err := q.Find(&results).Error; err != nil {
		return nil, classify("VariantRepo.ListWinners", err)
	}
	return results, nil
}

func (r *variantRepo) PromoteToWinner(ctx context.Context, tx *gorm.DB, id uuid.UUID, note string) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	updates := map[string]any{
		"status":    types.VariantStatusWinner,
		"is_winner": true,
	}
	if note != "" {
		// `||` concatenation works on both postgres and sqlite.
		updates["change_note"] = gorm.Expr(
			"CASE WHEN change_note = '' THEN ? ELSE change_note || ' | ' || ? END",
			note, note,
		)
	}

	res := transaction.WithContext(ctx).
		Model(&types.Variant{}).
		Where("id = ? AND status <> ?", id, types.VariantStatusWinner).
		Updates(updates)
	if res.Error != nil {
		return 0, classify("VariantRepo.PromoteToWinner", res.Error)
	}
	return res.RowsAffected, nil
}
