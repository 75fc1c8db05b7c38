package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/flashflow/flashflow-backend/internal/domain/funnel"
	"github.com/flashflow/flashflow-backend/internal/platform/logger"
	"github.com/flashflow/flashflow-backend/internal/repos"
	"github.com/flashflow/flashflow-backend/internal/types"
)

// maxLineageDepth bounds the parent walk. Trees are shallow in practice
// (root -> a few iteration layers); anything deeper means corrupted data.
const maxLineageDepth = 512

// LineageResult is the full read model for one variant: the node itself, its
// root and parent, its direct children, and the videos attached to the node
// and each child.
type LineageResult struct {
	Target          *types.Variant               `json:"target_variant"`
	Root            *types.Variant               `json:"root_variant"`
	Parent          *types.Variant               `json:"parent_variant,omitempty"`
	Children        []*types.Variant             `json:"child_variants"`
	VideosByVariant map[uuid.UUID][]*types.Video `json:"videos_by_variant"`
}

type LineageService interface {
	GetLineage(ctx context.Context, tx *gorm.DB, variantID uuid.UUID) (*LineageResult, error)
	GetVariant(ctx context.Context, tx *gorm.DB, variantID uuid.UUID) (*types.Variant, error)
	ListWinners(ctx context.Context, tx *gorm.DB, limit int) ([]*types.Variant, error)

	// ResolveRoot walks parent pointers up from v until it reaches a variant
	// with no parent. A cycle or an over-deep chain fails with a
	// data_integrity error instead of looping.
	ResolveRoot(ctx context.Context, tx *gorm.DB, v *types.Variant) (*types.Variant, error)
}

type lineageService struct {
	db  *gorm.DB
	log *logger.Logger

	variants repos.VariantRepo
	videos   repos.VideoRepo
}

func NewLineageService(db *gorm.DB, baseLog *logger.Logger, variants repos.VariantRepo, videos repos.VideoRepo) LineageService {
	return &lineageService{
		db:       db,
		log:      baseLog.With("service", "LineageService"),
		variants: variants,
		videos:   videos,
	}
}

func (s *lineageService) GetVariant(ctx context.Context, tx *gorm.DB, variantID uuid.UUID) (*types.Variant, error) {
	return s.variants.GetByID(ctx, tx, variantID)
}

func (s *lineageService) ListWinners(ctx context.Context, tx *gorm.DB, limit int) ([]*types.Variant, error) {
	return s.variants.ListWinners(ctx, tx, limit)
}

func (s *lineageService) ResolveRoot(ctx context.Context, tx *gorm.DB, v *types.Variant) (*types.Variant, error) {
	const op = "LineageService.ResolveRoot"
	if v == nil {
		return nil, funnel.NewError(funnel.CodeValidation, op, "variant required", nil)
	}

	current := v
	visited := map[uuid.UUID]bool{current.ID: true}
	for depth := 0; current.ParentVariantID != nil; depth++ {
		if depth >= maxLineageDepth {
			s.log.Error("variant lineage exceeds depth bound", "variant_id", v.ID, "depth", depth)
			return nil, funnel.NewError(funnel.CodeDataIntegrity, op,
				fmt.Sprintf("lineage of variant %s exceeds depth %d", v.ID, maxLineageDepth), nil)
		}
		parentID := *current.ParentVariantID
		if visited[parentID] {
			s.log.Error("cycle detected in variant lineage", "variant_id", v.ID, "cycle_at", parentID)
			return nil, funnel.NewError(funnel.CodeDataIntegrity, op,
				fmt.Sprintf("cycle detected in lineage of variant %s at %s", v.ID, parentID), nil)
		}
		parent, err := s.variants.GetByID(ctx, tx, parentID)
		if err != nil {
			if funnel.IsCode(err, funnel.CodeNotFound) {
				s.log.Error("dangling parent pointer in variant lineage", "variant_id", current.ID, "parent_id", parentID)
				return nil, funnel.NewError(funnel.CodeDataIntegrity, op,
					fmt.Sprintf("variant %s references missing parent %s", current.ID, parentID), err)
			}
			return nil, err
		}
		visited[parentID] = true
		current = parent
	}
	return current, nil
}

func (s *lineageService) GetLineage(ctx context.Context, tx *gorm.DB, variantID uuid.UUID) (*LineageResult, error) {
	target, err := s.variants.GetByID(ctx, tx, variantID)
	if err != nil {
		return nil, err
	}

	root, err := s.ResolveRoot(ctx, tx, target)
	if err != nil {
		return nil, err
	}

	var parent *types.Variant
	if target.ParentVariantID != nil {
		if *target.ParentVariantID == root.ID {
			parent = root
		} else if parent, err = s.variants.GetByID(ctx, tx, *target.ParentVariantID); err != nil {
			return nil, err
		}
	}

	children, err := s.variants.GetChildren(ctx, tx, target.ID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(children)+1)
	ids = append(ids, target.ID)
	for _, c := range children {
		ids = append(ids, c.ID)
	}
	videos, err := s.videos.GetByVariantIDs(ctx, tx, ids)
	if err != nil {
		return nil, err
	}

	byVariant := make(map[uuid.UUID][]*types.Video, len(ids))
	for _, id := range ids {
		byVariant[id] = []*types.Video{}
	}
	for _, v := range videos {
		byVariant[v.VariantID] = append(byVariant[v.VariantID], v)
	}

	return &LineageResult{
		Target:          target,
		Root:            root,
		Parent:          parent,
		Children:        children,
		VideosByVariant: byVariant,
	}, nil
}
