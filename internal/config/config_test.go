package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveTo_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	living := 275_000.0
	cfg := DefaultConfig()
	cfg.General.PlanPath = "/tmp/plan.yaml"
	cfg.Solver.Iterations = 30
	cfg.Cache.Backend = CacheRedis
	cfg.Cache.RedisAddr = "redis:6379"
	cfg.Costs.RetirementLivingMonthly = &living

	require.NoError(t, SaveTo(path, cfg))

	got, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/plan.yaml", got.General.PlanPath)
	assert.Equal(t, 30, got.Solver.Iterations)
	assert.Equal(t, CacheRedis, got.Cache.Backend)
	require.NotNil(t, got.Costs.RetirementLivingMonthly)
	assert.Equal(t, living, *got.Costs.RetirementLivingMonthly)

	tables, err := Tables(got)
	require.NoError(t, err)
	assert.Equal(t, living, tables.RetirementLivingMonthly)
}

func TestGetRedisAddr_EnvWins(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "localhost:6379", GetRedisAddr(cfg))

	cfg.Cache.RedisAddr = "cfg:6379"
	assert.Equal(t, "cfg:6379", GetRedisAddr(cfg))

	t.Setenv("LIFEPLAN_REDIS_ADDR", "env:6379")
	assert.Equal(t, "env:6379", GetRedisAddr(cfg))
}

func TestConfigDir_HonorsXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_CACHE_HOME", dir)

	assert.Equal(t, filepath.Join(dir, "lifeplan", "config.toml"), ConfigPath())
	assert.Equal(t, filepath.Join(dir, "lifeplan", "solver.db"), CachePath(DefaultConfig()))
}
