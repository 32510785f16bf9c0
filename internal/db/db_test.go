package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mhofwell/agent-augments/internal/models"
)

// testDB creates a temporary test database.
func testDB(t *testing.T) *DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := New(DefaultConfig(dbPath))
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Failed to close test database: %v", err)
		}
	})

	return db
}

func TestNew(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "augments.db")

	db, err := New(DefaultConfig(dbPath))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			t.Logf("Failed to close database: %v", err)
		}
	}()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
	if db.Path() != dbPath {
		t.Errorf("Path() = %v, want %v", db.Path(), dbPath)
	}
}

func TestNewSeedsMarketplaces(t *testing.T) {
	db := testDB(t)

	marketplaces, err := db.ListActiveMarketplaces()
	if err != nil {
		t.Fatalf("ListActiveMarketplaces() error = %v", err)
	}
	if len(marketplaces) != len(models.SeedMarketplaces) {
		t.Fatalf("got %d marketplaces, want %d", len(marketplaces), len(models.SeedMarketplaces))
	}

	for _, m := range marketplaces {
		if m.ID == "" {
			t.Errorf("marketplace %s has no ID", m.FullName())
		}
		if !m.IsActive {
			t.Errorf("seed marketplace %s not active", m.FullName())
		}
	}
}

func TestSeedingIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db1, err := New(DefaultConfig(dbPath))
	if err != nil {
		t.Fatalf("first New() error = %v", err)
	}
	if err := db1.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Reopening the same file must not duplicate the seed rows.
	db2, err := New(DefaultConfig(dbPath))
	if err != nil {
		t.Fatalf("second New() error = %v", err)
	}
	defer func() { _ = db2.Close() }()

	marketplaces, err := db2.ListMarketplaces()
	if err != nil {
		t.Fatalf("ListMarketplaces() error = %v", err)
	}
	if len(marketplaces) != len(models.SeedMarketplaces) {
		t.Errorf("got %d marketplaces after reopen, want %d", len(marketplaces), len(models.SeedMarketplaces))
	}
}

func TestGetStats(t *testing.T) {
	db := testDB(t)

	stats, err := db.GetStats()
	if err != nil {
		t.Fatalf("GetStats() error = %v", err)
	}

	if stats.TotalMarketplaces != int64(len(models.SeedMarketplaces)) {
		t.Errorf("TotalMarketplaces = %d", stats.TotalMarketplaces)
	}
	if stats.ActiveMarketplaces != stats.TotalMarketplaces {
		t.Errorf("ActiveMarketplaces = %d, want %d", stats.ActiveMarketplaces, stats.TotalMarketplaces)
	}
	if stats.TotalPlugins != 0 || stats.TotalFrameworks != 0 || stats.TotalLinks != 0 || stats.TotalInstalls != 0 {
		t.Errorf("expected zero counts on fresh db: %+v", stats)
	}
	if stats.LastUpdated.IsZero() {
		t.Error("LastUpdated not set")
	}
}
