package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/flashflow/flashflow-backend/internal/domain/funnel"
	"github.com/flashflow/flashflow-backend/internal/platform/logger"
	"github.com/flashflow/flashflow-backend/internal/repos"
	"github.com/flashflow/flashflow-backend/internal/types"
)

// ScaleParams carries one fan-out request.
type ScaleParams struct {
	WinnerVariantID uuid.UUID
	ChangeTypes     []string
	CountPerType    int
	AccountIDs      []uuid.UUID
	GoogleDriveURL  string
}

// ScaleResult is everything one successful scaling call created.
type ScaleResult struct {
	ChildVariants  []*types.Variant      `json:"child_variants"`
	CreatedVideos  []*types.Video        `json:"created_videos"`
	IterationGroup *types.IterationGroup `json:"iteration_group"`
	ScalingPlan    types.ScalingPlan     `json:"scaling_plan"`
}

type ScalingService interface {
	// Scale fans a promoted winner out into |change_types| x count_per_type
	// child variants and, when accounts are given, one video task per
	// (child, account) pair. All rows are written in a single transaction;
	// a failed call leaves no partial state and is safe to retry (a retry
	// starts a fresh iteration group).
	Scale(ctx context.Context, params ScaleParams) (*ScaleResult, error)
}

type scalingService struct {
	db  *gorm.DB
	log *logger.Logger

	variants repos.VariantRepo
	videos   repos.VideoRepo
	accounts repos.AccountRepo
	groups   repos.IterationGroupRepo

	lineage LineageService
	briefs  BriefSynthesizer
}

func NewScalingService(
	db *gorm.DB,
	baseLog *logger.Logger,
	variants repos.VariantRepo,
	videos repos.VideoRepo,
	accounts repos.AccountRepo,
	groups repos.IterationGroupRepo,
	lineage LineageService,
	briefs BriefSynthesizer,
) ScalingService {
	return &scalingService{
		db:       db,
		log:      baseLog.With("service", "ScalingService"),
		variants: variants,
		videos:   videos,
		accounts: accounts,
		groups:   groups,
		lineage:  lineage,
		briefs:   briefs,
	}
}

func (s *scalingService) Scale(ctx context.Context, params ScaleParams) (*ScaleResult, error) {
	const op = "ScalingService.Scale"

	changeTypes, err := funnel.ParseChangeTypes(params.ChangeTypes)
	if err != nil {
		return nil, err
	}
	if params.CountPerType < 1 || params.CountPerType > funnel.MaxCountPerType {
		return nil, funnel.NewError(funnel.CodeInvalidCount, op,
			fmt.Sprintf("count_per_type must be between 1 and %d, got %d", funnel.MaxCountPerType, params.CountPerType), nil)
	}

	winner, err := s.variants.GetByID(ctx, nil, params.WinnerVariantID)
	if err != nil {
		return nil, err
	}
	if err := s.checkWinnerEligible(ctx, nil, winner); err != nil {
		return nil, err
	}

	accountIDs, err := s.resolveAccounts(ctx, params.AccountIDs)
	if err != nil {
		return nil, err
	}

	// Brief synthesis talks to an external model; keep it outside the write
	// transaction so the lock window does not depend on its latency.
	brief, err := s.briefs.Synthesize(ctx, winner, changeTypes)
	if err != nil {
		return nil, funnel.Wrap(funnel.CodeBriefSynthesisFailed, op, err)
	}
	scalingPlan := types.ScalingPlan{EditorBrief: brief}
	planDoc, err := json.Marshal(scalingPlan)
	if err != nil {
		return nil, funnel.Wrap(funnel.CodeInternal, op, err)
	}

	plan, err := funnel.BuildFanOutPlan(winner.ID, changeTypes, params.CountPerType, accountIDs)
	if err != nil {
		return nil, err
	}

	result := &ScaleResult{ScalingPlan: scalingPlan}
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Re-validate the winner inside the transaction so a concurrent
		// demotion cannot race with an in-flight scaling call.
		fresh, err := s.variants.GetByID(ctx, tx, winner.ID)
		if err != nil {
			return err
		}
		if err := s.checkWinnerEligible(ctx, tx, fresh); err != nil {
			return err
		}

		group, err := s.groups.Create(ctx, tx, &types.IterationGroup{
			ID:            plan.GroupID,
			RootVariantID: winner.ID,
			ScalingPlan:   datatypes.JSON(planDoc),
		})
		if err != nil {
			return err
		}
		result.IterationGroup = group

		children := make([]*types.Variant, 0, len(plan.Children))
		for _, spec := range plan.Children {
			parentID := winner.ID
			groupID := group.ID
			changeType := string(spec.ChangeType)
			children = append(children, &types.Variant{
				ID:               spec.ID,
				ParentVariantID:  &parentID,
				IterationGroupID: &groupID,
				Title:            childTitle(spec.ChangeNote, winner.Title),
				Hook:             winner.Hook,
				Script:           winner.Script,
				Status:           types.VariantStatusDraft,
				ChangeType:       &changeType,
				ChangeNote:       spec.ChangeNote,
			})
		}
		if result.ChildVariants, err = s.variants.Create(ctx, tx, children); err != nil {
			return err
		}

		videos := make([]*types.Video, 0, len(plan.Videos))
		for _, spec := range plan.Videos {
			videos = append(videos, &types.Video{
				VariantID: spec.VariantID,
				AccountID: spec.AccountID,
				Status:    types.VideoStatusPending,
				DriveURL:  params.GoogleDriveURL,
			})
		}
		if result.CreatedVideos, err = s.videos.Create(ctx, tx, videos); err != nil {
			return err
		}
		return nil
	})
	if txErr != nil {
		if funnel.CodeOf(txErr) != "" {
			return nil, txErr
		}
		return nil, funnel.Wrap(funnel.CodeTransactionFailed, op, txErr)
	}

	s.log.Info("winner scaled",
		"winner_variant_id", winner.ID,
		"iteration_group_id", result.IterationGroup.ID,
		"children", len(result.ChildVariants),
		"videos", len(result.CreatedVideos),
	)
	return result, nil
}

// checkWinnerEligible enforces the scaling precondition: the variant itself
// or its resolved root must be a promoted winner.
func (s *scalingService) checkWinnerEligible(ctx context.Context, tx *gorm.DB, v *types.Variant) error {
	const op = "ScalingService.checkWinnerEligible"
	if v.IsWinner {
		return nil
	}
	root, err := s.lineage.ResolveRoot(ctx, tx, v)
	if err != nil {
		return err
	}
	if root.IsWinner {
		return nil
	}
	return funnel.NewError(funnel.CodeNotAWinner, op,
		fmt.Sprintf("variant %s is not a winner and neither is its root %s", v.ID, root.ID), nil)
}

// resolveAccounts checks every requested account exists. Duplicate ids are
// collapsed so a double-listed account does not double-materialize videos.
func (s *scalingService) resolveAccounts(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	const op = "ScalingService.resolveAccounts"
	if len(ids) == 0 {
		return nil, nil
	}

	unique := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			return nil, funnel.NewError(funnel.CodeUnknownAccount, op, "empty account id", nil)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}

	found, err := s.accounts.GetByIDs(ctx, nil, unique)
	if err != nil {
		return nil, err
	}
	if len(found) != len(unique) {
		have := make(map[uuid.UUID]bool, len(found))
		for _, a := range found {
			have[a.ID] = true
		}
		missing := make([]string, 0, len(unique)-len(found))
		for _, id := range unique {
			if !have[id] {
				missing = append(missing, id.String())
			}
		}
		return nil, funnel.NewError(funnel.CodeUnknownAccount, op,
			"unknown account(s): "+strings.Join(missing, ", "), nil)
	}
	return unique, nil
}

func childTitle(changeNote, winnerTitle string) string {
	if strings.TrimSpace(winnerTitle) == "" {
		return changeNote
	}
	return fmt.Sprintf("[%s] %s", changeNote, winnerTitle)
}
