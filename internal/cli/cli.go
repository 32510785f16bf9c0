// Package cli provides the command-line interface for agent-augments.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mhofwell/agent-augments/internal/catalog"
	"github.com/mhofwell/agent-augments/internal/config"
	"github.com/mhofwell/agent-augments/internal/db"
	"github.com/mhofwell/agent-augments/internal/source"
	"github.com/mhofwell/agent-augments/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "augments",
	Short: "Plugin and framework catalog sync service",
	Long: `agent-augments catalog sync service

Keeps the plugin/framework catalog in sync with GitHub: fetches
marketplace manifests, discovers framework repositories, and maintains
the derived plugin-framework links.`,
	SilenceUsage: true,
	Version:      version.Info(),
}

func init() {
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
}

// Execute runs the CLI.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// openService loads configuration and wires the database, source
// client, and sync service. The caller must Close the returned DB.
func openService() (*catalog.Service, *db.DB, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	paths := config.GetPaths(cfg)
	database, err := db.New(db.DefaultConfig(paths.Database))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("initialize database: %w", err)
	}

	client := source.NewClient(source.Config{
		Token:     cfg.GitHub.Token,
		RateLimit: cfg.GitHub.RateLimit,
		CacheTTL:  cfg.GitHub.CacheTTL,
		UserAgent: cfg.GitHub.UserAgent,
	})

	svc := catalog.NewService(database, client, cfg.Sync)
	return svc, database, cfg, nil
}
