package test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"

	"github.com/sandevgo/tgsearch/internal/config"
	"github.com/sandevgo/tgsearch/pkg/log"
)

// GetSearchConfig loads the runtime .env and returns the search config,
// skipping the test when no usable credentials or session file exist.
func GetSearchConfig(t *testing.T) *config.SearchConfig {
	t.Helper()

	envFile := filepath.Join(config.GetRuntimePath(), ".env")
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			t.Fatalf("failed to load %s: %v", envFile, err)
		}
	}

	cfg, err := config.NewSearchConfig()
	if err != nil {
		t.Skipf("Telegram credentials not configured: %v", err)
	}
	if _, err := os.Stat(cfg.SessionFile); err != nil {
		t.Skipf("Session file not found at %s: %v", cfg.SessionFile, err)
	}
	return cfg
}

func Context(t *testing.T) context.Context {
	t.Helper()

	ctx, flushLog := log.NewContextWithLogger(context.Background(), true)
	t.Cleanup(flushLog)
	return ctx
}
