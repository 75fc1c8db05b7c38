package funnel

import (
	"fmt"

	"github.com/google/uuid"
)

// MaxCountPerType bounds the per-change-type fan-out of one scaling call.
const MaxCountPerType = 20

// ChildSpec describes one child variant to be created by a scaling call.
type ChildSpec struct {
	ID         uuid.UUID
	ChangeType ChangeType
	Sequence   int // 1-based position within its change type
	ChangeNote string
}

// VideoSpec describes one delivery task: a (child variant, account) pair.
type VideoSpec struct {
	VariantID uuid.UUID
	AccountID uuid.UUID
}

// FanOutPlan is the full combinatorial output of one scaling call, computed
// before anything is written. Children are ordered by the change-type order
// given by the caller, then by sequence; videos follow child order, then the
// account order given by the caller.
type FanOutPlan struct {
	GroupID  uuid.UUID
	ParentID uuid.UUID
	Children []ChildSpec
	Videos   []VideoSpec
}

// BuildFanOutPlan generates the deterministic (child, account) cross product
// for a scaling call. It performs no I/O; callers persist the result in a
// single transaction.
func BuildFanOutPlan(parentID uuid.UUID, changeTypes []ChangeType, countPerType int, accountIDs []uuid.UUID) (FanOutPlan, error) {
	const op = "funnel.BuildFanOutPlan"
	if parentID == uuid.Nil {
		return FanOutPlan{}, NewError(CodeValidation, op, "parent variant id required", nil)
	}
	if len(changeTypes) == 0 {
		return FanOutPlan{}, NewError(CodeInvalidChangeTypes, op, "at least one change type required", nil)
	}
	seen := make(map[ChangeType]bool, len(changeTypes))
	for _, t := range changeTypes {
		if !t.Valid() {
			return FanOutPlan{}, NewError(CodeInvalidChangeTypes, op, fmt.Sprintf("unknown change type %q", t), nil)
		}
		if seen[t] {
			return FanOutPlan{}, NewError(CodeInvalidChangeTypes, op, fmt.Sprintf("duplicate change type %q", t), nil)
		}
		seen[t] = true
	}
	if countPerType < 1 || countPerType > MaxCountPerType {
		return FanOutPlan{}, NewError(CodeInvalidCount, op,
			fmt.Sprintf("count_per_type must be between 1 and %d, got %d", MaxCountPerType, countPerType), nil)
	}

	plan := FanOutPlan{
		GroupID:  uuid.New(),
		ParentID: parentID,
		Children: make([]ChildSpec, 0, len(changeTypes)*countPerType),
	}
	for _, t := range changeTypes {
		for seq := 1; seq <= countPerType; seq++ {
			plan.Children = append(plan.Children, ChildSpec{
				ID:         uuid.New(),
				ChangeType: t,
				Sequence:   seq,
				ChangeNote: fmt.Sprintf("%s variant %d of %d", t.Label(), seq, countPerType),
			})
		}
	}
	if len(accountIDs) > 0 {
		plan.Videos = make([]VideoSpec, 0, len(plan.Children)*len(accountIDs))
		for _, child := range plan.Children {
			for _, acct := range accountIDs {
				plan.Videos = append(plan.Videos, VideoSpec{VariantID: child.ID, AccountID: acct})
			}
		}
	}
	return plan, nil
}
