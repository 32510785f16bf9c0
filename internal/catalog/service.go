// Package catalog implements the catalog synchronization pipeline:
// marketplace manifest sync, framework discovery, and the derived
// plugin-framework link relation.
package catalog

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/mhofwell/agent-augments/internal/config"
	"github.com/mhofwell/agent-augments/internal/db"
	"github.com/mhofwell/agent-augments/internal/log"
	"github.com/mhofwell/agent-augments/internal/source"
)

// ErrSyncInProgress is returned when a trigger arrives while another
// run holds the run-level lock. Overlapping runs would race on
// marketplace rows and double-run the link-table replace.
var ErrSyncInProgress = errors.New("sync already in progress")

// Source is the read-only upstream the pipeline consumes. The GitHub
// client implements it; tests substitute a fake.
type Source interface {
	FetchManifest(ctx context.Context, owner, repo string) (*source.Manifest, error)
	FetchRepoStats(ctx context.Context, owner, repo string) (*source.RepoStats, error)
	SearchRepositories(ctx context.Context, query string) ([]source.Repo, error)
	FetchReadme(ctx context.Context, owner, repo string) (string, error)
}

// Service orchestrates sync runs. All entity mutations happen through
// the privileged database handle; runs are strictly sequential and
// guarded by a single-flight lock.
type Service struct {
	db  *db.DB
	src Source
	cfg config.SyncConfig

	runMu sync.Mutex
}

// NewService creates a sync service.
func NewService(database *db.DB, src Source, cfg config.SyncConfig) *Service {
	return &Service{
		db:  database,
		src: src,
		cfg: cfg,
	}
}

// Summary aggregates one full marketplace sync run.
type Summary struct {
	TotalMarketplaces int           `json:"totalMarketplaces"`
	SuccessfulSyncs   int           `json:"successfulSyncs"`
	FailedSyncs       int           `json:"failedSyncs"`
	TotalPlugins      int64         `json:"totalPlugins"`
	LinksCreated      int           `json:"linksCreated"`
	Results           []SyncResult  `json:"results"`
	Duration          time.Duration `json:"-"`
	DurationMs        int64         `json:"durationMs"`
}

// SyncAll syncs every active marketplace in strict sequence, then
// recomputes plugin-framework links regardless of how many individual
// syncs failed. A failure to enumerate the marketplaces aborts the
// run with a zero-filled summary.
func (s *Service) SyncAll(ctx context.Context) (*Summary, error) {
	if !s.runMu.TryLock() {
		return nil, ErrSyncInProgress
	}
	defer s.runMu.Unlock()

	start := time.Now()
	log.Printf("[Sync] Starting full sync...")

	marketplaces, err := s.db.ListActiveMarketplaces()
	if err != nil {
		log.Errorf("[Sync] Failed to fetch marketplaces: %v", err)
		return finishSummary(&Summary{Results: []SyncResult{}}, start), err
	}

	log.Printf("[Sync] Found %d active marketplaces", len(marketplaces))

	summary := &Summary{
		TotalMarketplaces: len(marketplaces),
		Results:           make([]SyncResult, 0, len(marketplaces)),
	}

	for i := range marketplaces {
		result := s.SyncMarketplace(ctx, &marketplaces[i])
		summary.Results = append(summary.Results, result)

		if result.Success {
			summary.SuccessfulSyncs++
		} else {
			summary.FailedSyncs++
		}

		// Self-imposed throttle against the upstream rate limit.
		if err := sleepCtx(ctx, s.cfg.MarketplaceDelay); err != nil {
			return finishSummary(summary, start), err
		}
	}

	if total, err := s.db.CountPlugins(); err == nil {
		summary.TotalPlugins = total
	}

	log.Printf("[Sync] Complete. %d/%d successful, %d total plugins",
		summary.SuccessfulSyncs, summary.TotalMarketplaces, summary.TotalPlugins)

	links, err := s.LinkPluginsToFrameworks(ctx)
	if err != nil {
		log.Errorf("[Sync] Linking failed: %v", err)
	}
	summary.LinksCreated = links

	return finishSummary(summary, start), nil
}

// Discover runs framework discovery under the same run-level lock as
// SyncAll: both mutate the frameworks relation the linker reads.
func (s *Service) Discover(ctx context.Context) (*FrameworkSyncResult, error) {
	if !s.runMu.TryLock() {
		return nil, ErrSyncInProgress
	}
	defer s.runMu.Unlock()

	return s.discoverFrameworks(ctx)
}

func finishSummary(summary *Summary, start time.Time) *Summary {
	summary.Duration = time.Since(start)
	summary.DurationMs = summary.Duration.Milliseconds()
	return summary
}

// sleepCtx pauses for d or until the context is done.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
