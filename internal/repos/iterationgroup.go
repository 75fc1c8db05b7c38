package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/flashflow/flashflow-backend/internal/platform/logger"
	"github.com/flashflow/flashflow-backend/internal/types"
)

type IterationGroupRepo interface {
	Create(ctx context.Context, tx *gorm.DB, group *types.IterationGroup) (*types.IterationGroup, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.IterationGroup, error)
}

type iterationGroupRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIterationGroupRepo(db *gorm.DB, baseLog *logger.Logger) IterationGroupRepo {
	return &iterationGroupRepo{db: db, log: baseLog.With("repo", "IterationGroupRepo")}
}

func (r *iterationGroupRepo) Create(ctx context.Context, tx *gorm.DB, group *types.IterationGroup) (*types.IterationGroup, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if group.ID == uuid.Nil {
		group.ID = uuid.New()
	}

	if err := transaction.WithContext(ctx).Create(group).Error; err != nil {
		return nil, classify("IterationGroupRepo.Create", err)
	}
	return group, nil
}

func (r *iterationGroupRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.IterationGroup, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.IterationGroup
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, classify("IterationGroupRepo.GetByID", err)
	}
	return &result, nil
}
