package config_test

import (
	"testing"
	"time"

	"go-settlement/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("GENERATION_CONCURRENCY", "not-a-number")

	cfg := config.Load()

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, config.StoreDriverPostgres, cfg.StoreDriver)
	assert.Equal(t, 8, cfg.GenerationConcurrency)
	assert.Equal(t, 3*time.Second, cfg.OutboxPollInterval)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("GENERATION_CONCURRENCY", "2")
	t.Setenv("AUTO_GENERATE_COMPANY_IDS", " a , ,b")
	t.Setenv("OUTBOX_POLL_INTERVAL", "500ms")

	cfg := config.Load()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, config.StoreDriverMemory, cfg.StoreDriver)
	assert.Equal(t, 2, cfg.GenerationConcurrency)
	assert.Equal(t, []string{"a", "b"}, cfg.AutoGenerateCompanyIDs)
	assert.Equal(t, 500*time.Millisecond, cfg.OutboxPollInterval)
}
