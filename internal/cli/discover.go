package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Discover new framework repositories on GitHub",
	Long: `Run the fixed framework search queries against GitHub, filter by the
star threshold, and insert any repositories not already cataloged.

Examples:
  augments discover
  AUGMENTS_MIN_STARS=500 augments discover`,
	Args: cobra.NoArgs,
	RunE: runDiscoverCmd,
}

func runDiscoverCmd(cmd *cobra.Command, args []string) error {
	svc, database, _, err := openService()
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	result, err := svc.Discover(cmd.Context())
	if err != nil {
		return fmt.Errorf("discover: %w", err)
	}

	fmt.Printf("Discovered %d candidates: %d added, %d skipped\n",
		result.Discovered, result.Added, result.Skipped)
	for _, e := range result.Errors {
		fmt.Printf("  error: %s\n", e)
	}

	return nil
}
