package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/flashflow/flashflow-backend/internal/domain/funnel"
	"github.com/flashflow/flashflow-backend/internal/types"
)

func TestGetLineage_FullReadModel(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	root := env.mustCreateVariant(t, &types.Variant{Title: "root", Status: types.VariantStatusTesting})
	mid := env.mustCreateVariant(t, &types.Variant{
		Title:           "mid",
		ParentVariantID: &root.ID,
		Status:          types.VariantStatusWinner,
		IsWinner:        true,
		ChangeType:      strPtr(string(funnel.ChangeHook)),
	})
	c1 := env.mustCreateVariant(t, &types.Variant{Title: "child one", ParentVariantID: &mid.ID, Status: types.VariantStatusDraft})
	c2 := env.mustCreateVariant(t, &types.Variant{Title: "child two", ParentVariantID: &mid.ID, Status: types.VariantStatusDraft})

	acct := env.mustCreateAccount(t, "main")
	if _, err := env.videos.Create(ctx, nil, []*types.Video{
		{VariantID: c1.ID, AccountID: acct.ID, Status: types.VideoStatusPending},
		{VariantID: mid.ID, AccountID: acct.ID, Status: types.VideoStatusPosted},
	}); err != nil {
		t.Fatalf("seed videos: %v", err)
	}

	res, err := env.lineage.GetLineage(ctx, nil, mid.ID)
	if err != nil {
		t.Fatalf("GetLineage: %v", err)
	}

	if res.Target.ID != mid.ID {
		t.Fatalf("target: got %s, want %s", res.Target.ID, mid.ID)
	}
	if res.Root.ID != root.ID {
		t.Fatalf("root: got %s, want %s", res.Root.ID, root.ID)
	}
	if res.Parent == nil || res.Parent.ID != root.ID {
		t.Fatalf("parent: got %+v, want %s", res.Parent, root.ID)
	}
	if len(res.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(res.Children))
	}
	gotChildren := map[uuid.UUID]bool{res.Children[0].ID: true, res.Children[1].ID: true}
	if !gotChildren[c1.ID] || !gotChildren[c2.ID] {
		t.Fatalf("children mismatch: %v", gotChildren)
	}

	if got := len(res.VideosByVariant[mid.ID]); got != 1 {
		t.Fatalf("target videos: got %d, want 1", got)
	}
	if got := len(res.VideosByVariant[c1.ID]); got != 1 {
		t.Fatalf("child one videos: got %d, want 1", got)
	}
	// A child without videos still gets an entry so consumers never see nil.
	if videos, ok := res.VideosByVariant[c2.ID]; !ok || videos == nil || len(videos) != 0 {
		t.Fatalf("child two videos: got %v (present=%t)", videos, ok)
	}
}

func TestGetLineage_LeafTarget(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	root := env.mustCreateVariant(t, &types.Variant{Title: "R"})
	c1 := env.mustCreateVariant(t, &types.Variant{
		Title:           "C1",
		ParentVariantID: &root.ID,
		ChangeType:      strPtr(string(funnel.ChangeHook)),
	})
	c2 := env.mustCreateVariant(t, &types.Variant{
		Title:           "C2",
		ParentVariantID: &root.ID,
		ChangeType:      strPtr(string(funnel.ChangeCTA)),
	})

	res, err := env.lineage.GetLineage(ctx, nil, c1.ID)
	if err != nil {
		t.Fatalf("GetLineage: %v", err)
	}
	if res.Root.ID != root.ID || res.Parent == nil || res.Parent.ID != root.ID {
		t.Fatalf("root/parent: got root=%v parent=%v", res.Root, res.Parent)
	}
	if len(res.Children) != 0 {
		t.Fatalf("leaf should have no children, got %d", len(res.Children))
	}
	// The videos map covers the target and its children only.
	if _, ok := res.VideosByVariant[c1.ID]; !ok {
		t.Fatalf("videos map missing target entry")
	}
	if _, ok := res.VideosByVariant[c2.ID]; ok {
		t.Fatalf("videos map must not include siblings")
	}
	if _, ok := res.VideosByVariant[root.ID]; ok {
		t.Fatalf("videos map must not include the parent")
	}
}

func TestGetLineage_RootTarget(t *testing.T) {
	env := newTestEnv(t)
	root := env.mustCreateVariant(t, &types.Variant{Title: "solo root", Status: types.VariantStatusDraft})

	res, err := env.lineage.GetLineage(context.Background(), nil, root.ID)
	if err != nil {
		t.Fatalf("GetLineage: %v", err)
	}
	if res.Root.ID != root.ID || res.Target.ID != root.ID {
		t.Fatalf("root target should be its own root")
	}
	if res.Parent != nil {
		t.Fatalf("root should have no parent, got %s", res.Parent.ID)
	}
	if len(res.Children) != 0 {
		t.Fatalf("expected no children, got %d", len(res.Children))
	}
}

func TestGetLineage_NotFound(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.lineage.GetLineage(context.Background(), nil, uuid.New())
	if !funnel.IsCode(err, funnel.CodeNotFound) {
		t.Fatalf("expected %s, got %v", funnel.CodeNotFound, err)
	}
}

func TestGetLineage_IsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	root := env.mustCreateVariant(t, &types.Variant{Title: "root"})
	env.mustCreateVariant(t, &types.Variant{Title: "a", ParentVariantID: &root.ID})
	env.mustCreateVariant(t, &types.Variant{Title: "b", ParentVariantID: &root.ID})

	first, err := env.lineage.GetLineage(ctx, nil, root.ID)
	if err != nil {
		t.Fatalf("first read: %v", err)
	}
	second, err := env.lineage.GetLineage(ctx, nil, root.ID)
	if err != nil {
		t.Fatalf("second read: %v", err)
	}
	if len(first.Children) != len(second.Children) {
		t.Fatalf("child counts differ: %d vs %d", len(first.Children), len(second.Children))
	}
	for i := range first.Children {
		if first.Children[i].ID != second.Children[i].ID {
			t.Fatalf("child order changed between reads at %d", i)
		}
	}
}

func TestResolveRoot_CycleFailsWithDataIntegrity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.mustCreateVariant(t, &types.Variant{Title: "a"})
	b := env.mustCreateVariant(t, &types.Variant{Title: "b", ParentVariantID: &a.ID})
	// Corrupt the tree: point a back at b.
	if err := env.db.Model(&types.Variant{}).Where("id = ?", a.ID).Update("parent_variant_id", b.ID).Error; err != nil {
		t.Fatalf("corrupt tree: %v", err)
	}

	_, err := env.lineage.GetLineage(ctx, nil, b.ID)
	if !funnel.IsCode(err, funnel.CodeDataIntegrity) {
		t.Fatalf("expected %s, got %v", funnel.CodeDataIntegrity, err)
	}
}

func TestResolveRoot_DanglingParentFailsWithDataIntegrity(t *testing.T) {
	env := newTestEnv(t)
	missing := uuid.New()
	child := env.mustCreateVariant(t, &types.Variant{Title: "orphan", ParentVariantID: &missing})

	_, err := env.lineage.ResolveRoot(context.Background(), nil, child)
	if !funnel.IsCode(err, funnel.CodeDataIntegrity) {
		t.Fatalf("expected %s, got %v", funnel.CodeDataIntegrity, err)
	}
}

func TestListWinners_FiltersAndLimits(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.mustCreateVariant(t, &types.Variant{Title: "loser", Status: types.VariantStatusTesting})
	for i := 0; i < 3; i++ {
		env.mustCreateVariant(t, &types.Variant{Title: "w", Status: types.VariantStatusWinner, IsWinner: true})
	}

	all, err := env.lineage.ListWinners(ctx, nil, 0)
	if err != nil {
		t.Fatalf("ListWinners: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 winners, got %d", len(all))
	}
	for _, w := range all {
		if !w.IsWinner {
			t.Fatalf("non-winner %s in winner list", w.ID)
		}
	}

	limited, err := env.lineage.ListWinners(ctx, nil, 2)
	if err != nil {
		t.Fatalf("ListWinners limited: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("expected 2 winners with limit, got %d", len(limited))
	}
}
