package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/flashflow/flashflow-backend/internal/platform/envutil"
	"github.com/flashflow/flashflow-backend/internal/platform/logger"
	"github.com/flashflow/flashflow-backend/internal/types"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	host := envutil.String("POSTGRES_HOST", "localhost")
	port := envutil.String("POSTGRES_PORT", "5432")
	user := envutil.String("POSTGRES_USER", "postgres")
	password := envutil.String("POSTGRES_PASSWORD", "")
	name := envutil.String("POSTGRES_NAME", "flashflow")
	sslmode := envutil.String("POSTGRES_SSLMODE", "disable")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", user, password, host, port, name, sslmode)

	serviceLog.Info("Connecting to Postgres...", "host", host, "db", name)
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		serviceLog.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	return &PostgresService{db: gdb, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	if err := s.db.AutoMigrate(
		&types.Account{},
		&types.Variant{},
		&types.IterationGroup{},
		&types.Video{},
	); err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}

	s.log.Info("Configuring foreign key relationships for postgres tables...")
	constraints := []struct {
		name string
		stmt string
	}{
		{
			name: "fk_variants_parent_variant_id",
			stmt: `ALTER TABLE "variants"
				ADD CONSTRAINT "fk_variants_parent_variant_id"
				FOREIGN KEY ("parent_variant_id") REFERENCES "variants"("id")`,
		},
		{
			name: "fk_variants_iteration_group_id",
			stmt: `ALTER TABLE "variants"
				ADD CONSTRAINT "fk_variants_iteration_group_id"
				FOREIGN KEY ("iteration_group_id") REFERENCES "iteration_groups"("id")`,
		},
		{
			name: "fk_videos_variant_id",
			stmt: `ALTER TABLE "videos"
				ADD CONSTRAINT "fk_videos_variant_id"
				FOREIGN KEY ("variant_id") REFERENCES "variants"("id")`,
		},
		{
			name: "fk_videos_account_id",
			stmt: `ALTER TABLE "videos"
				ADD CONSTRAINT "fk_videos_account_id"
				FOREIGN KEY ("account_id") REFERENCES "accounts"("id")`,
		},
		{
			name: "fk_iteration_groups_root_variant_id",
			stmt: `ALTER TABLE "iteration_groups"
				ADD CONSTRAINT "fk_iteration_groups_root_variant_id"
				FOREIGN KEY ("root_variant_id") REFERENCES "variants"("id")`,
		},
	}
	for _, c := range constraints {
		var exists bool
		if err := s.db.Raw(
			`SELECT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = ?)`, c.name,
		).Scan(&exists).Error; err != nil {
			return fmt.Errorf("check constraint %s: %w", c.name, err)
		}
		if exists {
			continue
		}
		if err := s.db.Exec(c.stmt).Error; err != nil {
			return fmt.Errorf("add constraint %s: %w", c.name, err)
		}
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
