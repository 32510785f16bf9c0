// Package config handles application configuration management.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration. The sync pipeline only
// sees this struct; nothing below the CLI/server layer reads the
// environment directly.
type Config struct {
	// Base directory for all agent-augments data.
	BaseDir string

	GitHub GitHubConfig
	Sync   SyncConfig
	Server ServerConfig
}

// GitHubConfig holds GitHub API settings.
type GitHubConfig struct {
	// Token is the optional bearer token. Unauthenticated mode works
	// but is subject to a far lower rate ceiling.
	Token string

	// RateLimit is requests per minute; 0 picks a default based on
	// whether a token is configured.
	RateLimit int

	// CacheTTL is how long API responses are cached.
	CacheTTL time.Duration

	// UserAgent identifies this service in outbound requests.
	UserAgent string
}

// SyncConfig holds pipeline throttle and threshold settings.
type SyncConfig struct {
	// MarketplaceDelay is the pause between marketplace syncs.
	MarketplaceDelay time.Duration

	// SearchDelay is the pause between framework search queries.
	SearchDelay time.Duration

	// InsertDelay is the pause after each framework insert attempt.
	InsertDelay time.Duration

	// MinStars is the star threshold for discovered frameworks.
	MinStars int
}

// ServerConfig holds HTTP trigger layer settings.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// TriggerSecret guards the sync trigger endpoints. Requests must
	// carry it as a bearer token. Empty means triggers are disabled.
	TriggerSecret string
}

// Load reads configuration from environment variables on top of the
// defaults.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if dir := os.Getenv("AUGMENTS_DATA_DIR"); dir != "" {
		cfg.BaseDir = dir
	}

	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		cfg.GitHub.Token = token
	}

	if secret := os.Getenv("SYNC_SECRET"); secret != "" {
		cfg.Server.TriggerSecret = secret
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Addr = ":" + port
	}

	if stars := os.Getenv("AUGMENTS_MIN_STARS"); stars != "" {
		if n, err := strconv.Atoi(stars); err == nil && n >= 0 {
			cfg.Sync.MinStars = n
		}
	}

	if err := ensureDirectories(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ensureDirectories creates required directories if they don't exist.
func ensureDirectories(cfg *Config) error {
	return os.MkdirAll(cfg.BaseDir, 0755)
}
