package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync all active marketplaces",
	Long: `Fetch every active marketplace's manifest, reconcile its plugins
into the catalog, and recompute plugin-framework links.

Examples:
  augments sync`,
	Args: cobra.NoArgs,
	RunE: runSyncCmd,
}

func runSyncCmd(cmd *cobra.Command, args []string) error {
	svc, database, _, err := openService()
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	summary, err := svc.SyncAll(cmd.Context())
	if err != nil {
		return fmt.Errorf("sync: %w", err)
	}

	fmt.Printf("Synced %d/%d marketplaces in %s\n",
		summary.SuccessfulSyncs, summary.TotalMarketplaces, summary.Duration.Round(time.Millisecond))
	fmt.Printf("Total plugins: %d, links created: %d\n",
		summary.TotalPlugins, summary.LinksCreated)

	for _, r := range summary.Results {
		if r.Success {
			fmt.Printf("  ok   %-40s %d plugins\n", r.Marketplace, r.PluginsAdded)
		} else {
			fmt.Printf("  fail %-40s %s\n", r.Marketplace, r.Err.Message)
		}
	}

	return nil
}
