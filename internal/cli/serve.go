package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mhofwell/agent-augments/internal/log"
	"github.com/mhofwell/agent-augments/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP trigger server",
	Long: `Serve the sync trigger endpoints over HTTP.

POST /api/sync and POST /api/sync/frameworks require the SYNC_SECRET
bearer token; GET /health and GET /api/stats are open.

Examples:
  SYNC_SECRET=s3cret augments serve
  PORT=9090 SYNC_SECRET=s3cret augments serve`,
	Args: cobra.NoArgs,
	RunE: runServeCmd,
}

func runServeCmd(cmd *cobra.Command, args []string) error {
	svc, database, cfg, err := openService()
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	if cfg.Server.TriggerSecret == "" {
		log.Errorf("SYNC_SECRET not configured, trigger endpoints will refuse requests")
	}
	if cfg.GitHub.Token == "" {
		log.Printf("Warning: GITHUB_TOKEN not configured, using unauthenticated requests")
	}

	api := server.New(svc, database, cfg.Server)
	srv := api.HTTPServer()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-quit:
	}

	log.Printf("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
