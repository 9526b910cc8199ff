package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SiphoYawe/Laurel-sub000/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := config.Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "file:laurel.db", cfg.DBPath)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, 20, cfg.SessionSize)
	assert.Equal(t, 10, cfg.DefaultNewPerDay)
	assert.Equal(t, 100, cfg.DefaultReviewsPerDay)
	assert.Equal(t, 3, cfg.RollupHourUTC)
	assert.Equal(t, 2, cfg.RollupWorkerCount)
	assert.Equal(t, 64, cfg.RollupQueueSize)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ADDR", ":9999")
	t.Setenv("SESSION_SIZE", "5")
	t.Setenv("ROLLUP_HOUR_UTC", "6")

	cfg := config.Load()

	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, 5, cfg.SessionSize)
	assert.Equal(t, 6, cfg.RollupHourUTC)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("SESSION_SIZE", "not-a-number")

	cfg := config.Load()

	assert.Equal(t, 20, cfg.SessionSize)
}
