package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Recompute plugin-framework links",
	Long: `Recompute the derived plugin-framework link table from the current
plugin and framework sets. Normally this runs automatically at the end
of a marketplace sync.`,
	Args: cobra.NoArgs,
	RunE: runLinkCmd,
}

func runLinkCmd(cmd *cobra.Command, args []string) error {
	svc, database, _, err := openService()
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	created, err := svc.LinkPluginsToFrameworks(cmd.Context())
	if err != nil {
		return fmt.Errorf("link: %w", err)
	}

	fmt.Printf("Created %d plugin-framework links\n", created)
	return nil
}
