package app

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/flashflow/flashflow-backend/internal/platform/logger"
)

func testLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("FLASHFLOW_CONFIG", "")
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("LOG_MODE", "")
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg, err := LoadConfig(testLogger())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("http addr: got %q", cfg.HTTPAddr)
	}
	if cfg.Environment != "development" {
		t.Fatalf("environment: got %q", cfg.Environment)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "http://localhost:3000" {
		t.Fatalf("cors origins: got %v", cfg.CORSOrigins)
	}
}

func TestLoadConfig_YAMLOverlayAndEnvWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := "http_addr: \":9090\"\nenvironment: staging\ncors_origins:\n  - https://app.example.com\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("FLASHFLOW_CONFIG", path)
	t.Setenv("HTTP_ADDR", ":7070")
	t.Setenv("LOG_MODE", "")
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg, err := LoadConfig(testLogger())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.HTTPAddr != ":7070" {
		t.Fatalf("env must win over file: got %q", cfg.HTTPAddr)
	}
	if cfg.Environment != "staging" {
		t.Fatalf("file overlay lost: got %q", cfg.Environment)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "https://app.example.com" {
		t.Fatalf("cors origins: got %v", cfg.CORSOrigins)
	}
}

func TestLoadConfig_CORSOriginsFromEnv(t *testing.T) {
	t.Setenv("FLASHFLOW_CONFIG", "")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com ,")

	cfg, err := LoadConfig(testLogger())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	want := []string{"https://a.example.com", "https://b.example.com"}
	if len(cfg.CORSOrigins) != len(want) {
		t.Fatalf("cors origins: got %v", cfg.CORSOrigins)
	}
	for i := range want {
		if cfg.CORSOrigins[i] != want[i] {
			t.Fatalf("cors origin %d: got %q, want %q", i, cfg.CORSOrigins[i], want[i])
		}
	}
}

func TestLoadConfig_MissingFileFails(t *testing.T) {
	t.Setenv("FLASHFLOW_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))
	if _, err := LoadConfig(testLogger()); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
