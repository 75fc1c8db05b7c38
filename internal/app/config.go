package app

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/flashflow/flashflow-backend/internal/platform/envutil"
	"github.com/flashflow/flashflow-backend/internal/platform/logger"
)

type Config struct {
	HTTPAddr    string   `yaml:"http_addr"`
	LogMode     string   `yaml:"log_mode"`
	Environment string   `yaml:"environment"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// LoadConfig reads configuration from the environment, with an optional YAML
// overlay file pointed at by FLASHFLOW_CONFIG. Environment variables win.
func LoadConfig(log *logger.Logger) (Config, error) {
	cfg := Config{
		HTTPAddr:    ":8080",
		LogMode:     "development",
		Environment: "development",
		CORSOrigins: []string{"http://localhost:3000"},
	}

	if path := envutil.String("FLASHFLOW_CONFIG", ""); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %s: %w", path, err)
		}
		log.Info("config file loaded", "path", path)
	}

	cfg.HTTPAddr = envutil.String("HTTP_ADDR", cfg.HTTPAddr)
	cfg.LogMode = envutil.String("LOG_MODE", cfg.LogMode)
	cfg.Environment = envutil.String("ENVIRONMENT", cfg.Environment)
	if origins := envutil.String("CORS_ORIGINS", ""); origins != "" {
		parts := strings.Split(origins, ",")
		cfg.CORSOrigins = cfg.CORSOrigins[:0]
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, p)
			}
		}
	}
	return cfg, nil
}
