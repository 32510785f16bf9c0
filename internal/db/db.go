// Package db provides a GORM-based database layer for agent-augments.
// It uses the pure-Go SQLite driver.
package db

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mhofwell/agent-augments/internal/models"
)

// DB wraps the GORM database connection with catalog operations.
type DB struct {
	*gorm.DB
	path string
}

// Config holds database configuration options.
type Config struct {
	Path        string
	Debug       bool
	MaxIdleConn int
	MaxOpenConn int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(path string) Config {
	return Config{
		Path:        path,
		Debug:       false,
		MaxIdleConn: 1,
		MaxOpenConn: 1,
	}
}

// New creates a new database connection and runs migrations.
func New(cfg Config) (*DB, error) {
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	logLevel := logger.Silent
	if cfg.Debug {
		logLevel = logger.Info
	}

	// DELETE journal mode: WAL has visibility issues with the pure-Go
	// SQLite driver.
	dsn := fmt.Sprintf("%s?_pragma=journal_mode(DELETE)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)", cfg.Path)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logLevel),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConn)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConn)
	sqlDB.SetConnMaxLifetime(time.Hour)

	wrapped := &DB{DB: db, path: cfg.Path}

	if err := wrapped.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	if err := wrapped.seedMarketplaces(); err != nil {
		return nil, fmt.Errorf("seed marketplaces: %w", err)
	}

	return wrapped, nil
}

// migrate runs GORM auto-migrations for all models.
func (db *DB) migrate() error {
	return db.AutoMigrate(
		&models.Marketplace{},
		&models.Plugin{},
		&models.Framework{},
		&models.PluginFramework{},
		&models.InstallEvent{},
	)
}

// seedMarketplaces registers the seed marketplaces if not present.
func (db *DB) seedMarketplaces() error {
	for _, seed := range models.SeedMarketplaces {
		m := models.Marketplace{
			GithubOwner: seed.Owner,
			GithubRepo:  seed.Repo,
			Name:        seed.Name,
			IsActive:    true,
		}
		result := db.Where("github_owner = ? AND github_repo = ?", seed.Owner, seed.Repo).
			FirstOrCreate(&m)
		if result.Error != nil {
			return result.Error
		}
	}
	return nil
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// Close closes the database connection.
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Transaction executes a function within a database transaction.
// The callback receives a *DB wrapper that uses the transaction.
func (d *DB) Transaction(fc func(tx *DB) error) error {
	return d.DB.Transaction(func(tx *gorm.DB) error {
		return fc(&DB{DB: tx, path: d.path})
	})
}

// GetStats returns aggregate statistics about the catalog.
func (db *DB) GetStats() (*models.CatalogStats, error) {
	var stats models.CatalogStats

	if err := db.Model(&models.Marketplace{}).Count(&stats.TotalMarketplaces).Error; err != nil {
		return nil, fmt.Errorf("count marketplaces: %w", err)
	}
	if err := db.Model(&models.Marketplace{}).Where("is_active = ?", true).
		Count(&stats.ActiveMarketplaces).Error; err != nil {
		return nil, fmt.Errorf("count active marketplaces: %w", err)
	}
	if err := db.Model(&models.Plugin{}).Count(&stats.TotalPlugins).Error; err != nil {
		return nil, fmt.Errorf("count plugins: %w", err)
	}
	if err := db.Model(&models.Framework{}).Count(&stats.TotalFrameworks).Error; err != nil {
		return nil, fmt.Errorf("count frameworks: %w", err)
	}
	if err := db.Model(&models.PluginFramework{}).Count(&stats.TotalLinks).Error; err != nil {
		return nil, fmt.Errorf("count links: %w", err)
	}
	if err := db.Model(&models.InstallEvent{}).Count(&stats.TotalInstalls).Error; err != nil {
		return nil, fmt.Errorf("count installs: %w", err)
	}

	stats.LastUpdated = time.Now()

	return &stats, nil
}
