package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/flashflow/flashflow-backend/internal/platform/logger"
	"github.com/flashflow/flashflow-backend/internal/types"
)

type VideoRepo interface {
	Create(ctx context.Context, tx *gorm.DB, videos []*types.Video) ([]*types.Video, error)
	GetByVariantIDs(ctx context.Context, tx *gorm.DB, variantIDs []uuid.UUID) ([]*types.Video, error)
}

type videoRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVideoRepo(db *gorm.DB, baseLog *logger.Logger) VideoRepo {
	return &videoRepo{db: db, log: baseLog.With("repo", "VideoRepo")}
}

func (r *videoRepo) Create(ctx context.Context, tx *gorm.DB, videos []*types.Video) ([]*types.Video, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(videos) == 0 {
		return []*types.Video{}, nil
	}
	for _, v := range videos {
		if v.ID == uuid.Nil {
			v.ID = uuid.New()
		}
	}

	if err := transaction.WithContext(ctx).Create(&videos).Error; err != nil {
		return nil, classify("VideoRepo.Create", err)
	}
	return videos, nil
}

func (r *videoRepo) GetByVariantIDs(ctx context.Context, tx *gorm.DB, variantIDs []uuid.UUID) ([]*types.Video, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Video
	if len(variantIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("variant_id IN ?", variantIDs).
		Order("created_at ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, classify("VideoRepo.GetByVariantIDs", err)
	}
	return results, nil
}
