package config

import "time"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BaseDir: DefaultBaseDir(),

		GitHub: GitHubConfig{
			RateLimit: 0, // pick based on auth
			CacheTTL:  time.Hour,
			UserAgent: "agent-augments",
		},

		Sync: SyncConfig{
			MarketplaceDelay: 500 * time.Millisecond,
			SearchDelay:      time.Second,
			InsertDelay:      500 * time.Millisecond,
			MinStars:         200,
		},

		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}
