package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := loadWith(t, map[string]string{"STORE_DRIVER": "memory"})
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, "on_finish", cfg.Brew.ConsumptionPolicy)
	assert.InDelta(t, 1.5, cfg.Brew.ReorderTargetFactor, 1e-9)
	assert.Equal(t, 5*time.Second, cfg.DB.QueryTimeout)
	assert.True(t, cfg.DB.Migrate)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := loadWith(t, map[string]string{
		"STORE_DRIVER":               "POSTGRES",
		"BREW_CONSUMPTION_POLICY":    "on_start",
		"BREW_REORDER_TARGET_FACTOR": "2",
		"DB_QUERY_TIMEOUT_SECONDS":   "9",
		"DB_MIGRATE":                 "false",
		"HTTP_PORT":                  "9090",
	})
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "on_start", cfg.Brew.ConsumptionPolicy)
	assert.InDelta(t, 2.0, cfg.Brew.ReorderTargetFactor, 1e-9)
	assert.Equal(t, 9*time.Second, cfg.DB.QueryTimeout)
	assert.False(t, cfg.DB.Migrate)
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestLoad_InvalidStoreDriver(t *testing.T) {
	_, err := loadWith(t, map[string]string{"STORE_DRIVER": "sqlite"})
	assert.Error(t, err)
}

func TestLoad_InvalidReorderFactor(t *testing.T) {
	_, err := loadWith(t, map[string]string{"STORE_DRIVER": "memory", "BREW_REORDER_TARGET_FACTOR": "0.5"})
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "brew", Password: "p@ss:word", DBName: "brewery", SSLMode: "disable"}
	assert.Equal(t, "postgres://brew:p%40ss%3Aword@db:5432/brewery?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}

func loadWith(t *testing.T, env map[string]string) (*Config, error) {
	t.Helper()
	chdir(t, t.TempDir())
	for k, v := range env {
		t.Setenv(k, v)
	}
	return Load()
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
