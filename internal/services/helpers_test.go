package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/flashflow/flashflow-backend/internal/domain/funnel"
	"github.com/flashflow/flashflow-backend/internal/platform/logger"
	"github.com/flashflow/flashflow-backend/internal/repos"
	"github.com/flashflow/flashflow-backend/internal/types"
)

// testEnv wires real repos and services over an in-memory sqlite database so
// service tests exercise actual SQL, transactions included.
type testEnv struct {
	db  *gorm.DB
	log *logger.Logger

	variants repos.VariantRepo
	videos   repos.VideoRepo
	accounts repos.AccountRepo
	groups   repos.IterationGroupRepo

	lineage   LineageService
	promotion PromotionService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	// A unique shared-cache DSN keeps each test isolated while letting every
	// connection in the pool see the same in-memory database.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	// sqlite locks whole-database on write; a single connection avoids
	// spurious SQLITE_BUSY under the concurrency tests.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := gdb.AutoMigrate(&types.Account{}, &types.Variant{}, &types.IterationGroup{}, &types.Video{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	log := &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
	env := &testEnv{
		db:       gdb,
		log:      log,
		variants: repos.NewVariantRepo(gdb, log),
		videos:   repos.NewVideoRepo(gdb, log),
		accounts: repos.NewAccountRepo(gdb, log),
		groups:   repos.NewIterationGroupRepo(gdb, log),
	}
	env.lineage = NewLineageService(gdb, log, env.variants, env.videos)
	env.promotion = NewPromotionService(gdb, log, env.variants)
	return env
}

// scaling builds a ScalingService over the env with the given synthesizer and
// video repo, letting tests inject failures at either seam.
func (e *testEnv) scaling(briefs BriefSynthesizer, videos repos.VideoRepo) ScalingService {
	if videos == nil {
		videos = e.videos
	}
	return NewScalingService(e.db, e.log, e.variants, videos, e.accounts, e.groups, e.lineage, briefs)
}

func (e *testEnv) mustCreateVariant(t *testing.T, v *types.Variant) *types.Variant {
	t.Helper()
	created, err := e.variants.Create(context.Background(), nil, []*types.Variant{v})
	if err != nil {
		t.Fatalf("seed variant: %v", err)
	}
	return created[0]
}

func (e *testEnv) mustCreateAccount(t *testing.T, name string) *types.Account {
	t.Helper()
	acct := &types.Account{ID: uuid.New(), Name: name, Platform: "tiktok"}
	if err := e.db.Create(acct).Error; err != nil {
		t.Fatalf("seed account: %v", err)
	}
	return acct
}

func (e *testEnv) countRows(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	if err := e.db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return n
}

type stubBriefSynthesizer struct {
	brief types.EditorBrief
	err   error
	calls int
}

func (s *stubBriefSynthesizer) Synthesize(ctx context.Context, winner *types.Variant, changeTypes []funnel.ChangeType) (types.EditorBrief, error) {
	s.calls++
	if s.err != nil {
		return types.EditorBrief{}, s.err
	}
	return s.brief, nil
}

// failingVideoRepo forces the last write of the scaling transaction to fail
// so rollback behavior can be observed.
type failingVideoRepo struct {
	repos.VideoRepo
	err error
}

func (r *failingVideoRepo) Create(ctx context.Context, tx *gorm.DB, videos []*types.Video) ([]*types.Video, error) {
	return nil, r.err
}

func testBrief() types.EditorBrief {
	return types.EditorBrief{
		BRoll:         []string{"unboxing close-up", "hands-on product demo"},
		OnScreenStyle: "bold white sans, top third",
		Pacing:        "cut every 1.5s",
		Dos:           []string{"lead with the hook"},
		Donts:         []string{"no watermark"},
	}
}

func strPtr(s string) *string { return &s }
