package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "3000", cfg.Port)
		assert.Equal(t, "development", cfg.Env)
		assert.Equal(t, "./data/employees.db", cfg.DBPath)
		assert.Equal(t, 50, cfg.PageSize)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "*", cfg.CORSOrigins)
		assert.Equal(t, 8, cfg.JobQueueSize)
		assert.Equal(t, 2*time.Second, cfg.ListWaitTimeout)
		assert.False(t, cfg.IsProduction())
	})

	t.Run("Environment overrides", func(t *testing.T) {
		t.Setenv("PORT", "8080")
		t.Setenv("ENV", "production")
		t.Setenv("DB_PATH", "/var/lib/employees/db.sqlite")
		t.Setenv("PAGE_SIZE", "20")
		t.Setenv("JOB_QUEUE_SIZE", "2")
		t.Setenv("LIST_WAIT_TIMEOUT", "750ms")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.Port)
		assert.True(t, cfg.IsProduction())
		assert.Equal(t, "/var/lib/employees/db.sqlite", cfg.DBPath)
		assert.Equal(t, 20, cfg.PageSize)
		assert.Equal(t, 2, cfg.JobQueueSize)
		assert.Equal(t, 750*time.Millisecond, cfg.ListWaitTimeout)
	})

	t.Run("Malformed number", func(t *testing.T) {
		t.Setenv("PAGE_SIZE", "fifty")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("Page size must be positive", func(t *testing.T) {
		t.Setenv("PAGE_SIZE", "0")

		_, err := Load()
		assert.ErrorContains(t, err, "PAGE_SIZE")
	})

	t.Run("List wait timeout must be positive", func(t *testing.T) {
		t.Setenv("LIST_WAIT_TIMEOUT", "0s")

		_, err := Load()
		assert.ErrorContains(t, err, "LIST_WAIT_TIMEOUT")
	})
}
