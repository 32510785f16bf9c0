package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 500*time.Millisecond, cfg.Sync.MarketplaceDelay)
	assert.Equal(t, time.Second, cfg.Sync.SearchDelay)
	assert.Equal(t, 200, cfg.Sync.MinStars)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, time.Hour, cfg.GitHub.CacheTTL)
	assert.Equal(t, "agent-augments", cfg.GitHub.UserAgent)
	assert.Empty(t, cfg.GitHub.Token)
	assert.Empty(t, cfg.Server.TriggerSecret)
}

func TestLoadFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("AUGMENTS_DATA_DIR", dir)
	t.Setenv("GITHUB_TOKEN", "ghp_test")
	t.Setenv("SYNC_SECRET", "trigger-secret")
	t.Setenv("PORT", "9090")
	t.Setenv("AUGMENTS_MIN_STARS", "50")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.BaseDir)
	assert.Equal(t, "ghp_test", cfg.GitHub.Token)
	assert.Equal(t, "trigger-secret", cfg.Server.TriggerSecret)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 50, cfg.Sync.MinStars)
}

func TestLoadIgnoresBadMinStars(t *testing.T) {
	t.Setenv("AUGMENTS_DATA_DIR", t.TempDir())
	t.Setenv("AUGMENTS_MIN_STARS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 200, cfg.Sync.MinStars)

	t.Setenv("AUGMENTS_MIN_STARS", "-5")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, 200, cfg.Sync.MinStars)
}

func TestLoadCreatesBaseDir(t *testing.T) {
	base := filepath.Join(t.TempDir(), "nested", "data")
	t.Setenv("AUGMENTS_DATA_DIR", base)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, base, cfg.BaseDir)
	assert.DirExists(t, base)
}

func TestGetPaths(t *testing.T) {
	cfg := &Config{BaseDir: "/data/augments"}
	paths := GetPaths(cfg)

	assert.Equal(t, filepath.Join("/data/augments", "augments.db"), paths.Database)
	assert.Equal(t, filepath.Join("/data/augments", "logs"), paths.Logs)
}
