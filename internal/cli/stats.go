package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalog statistics",
	Args:  cobra.NoArgs,
	RunE:  runStatsCmd,
}

func runStatsCmd(cmd *cobra.Command, args []string) error {
	_, database, _, err := openService()
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	stats, err := database.GetStats()
	if err != nil {
		return fmt.Errorf("stats: %w", err)
	}

	fmt.Printf("Marketplaces: %d (%d active)\n", stats.TotalMarketplaces, stats.ActiveMarketplaces)
	fmt.Printf("Plugins:      %d\n", stats.TotalPlugins)
	fmt.Printf("Frameworks:   %d\n", stats.TotalFrameworks)
	fmt.Printf("Links:        %d\n", stats.TotalLinks)
	fmt.Printf("Installs:     %d\n", stats.TotalInstalls)

	return nil
}
