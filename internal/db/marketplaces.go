package db

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mhofwell/agent-augments/internal/models"
)

// RegisterMarketplace creates a marketplace if the (owner, repo) pair
// is not already registered. Returns the stored row either way.
func (db *DB) RegisterMarketplace(owner, repo, name string) (*models.Marketplace, error) {
	m := models.Marketplace{
		GithubOwner: owner,
		GithubRepo:  repo,
		Name:        name,
		IsActive:    true,
	}
	err := db.Where("github_owner = ? AND github_repo = ?", owner, repo).
		FirstOrCreate(&m).Error
	if err != nil {
		return nil, fmt.Errorf("register marketplace %s/%s: %w", owner, repo, err)
	}
	return &m, nil
}

// GetMarketplace retrieves a marketplace by ID.
func (db *DB) GetMarketplace(id string) (*models.Marketplace, error) {
	var m models.Marketplace
	err := db.First(&m, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

// GetMarketplaceByRepo retrieves a marketplace by its (owner, repo) key.
func (db *DB) GetMarketplaceByRepo(owner, repo string) (*models.Marketplace, error) {
	var m models.Marketplace
	err := db.First(&m, "github_owner = ? AND github_repo = ?", owner, repo).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

// ListActiveMarketplaces returns all active marketplaces.
func (db *DB) ListActiveMarketplaces() ([]models.Marketplace, error) {
	var marketplaces []models.Marketplace
	err := db.Where("is_active = ?", true).
		Order("created_at ASC").
		Find(&marketplaces).Error
	return marketplaces, err
}

// ListMarketplaces returns all marketplaces, active or not.
func (db *DB) ListMarketplaces() ([]models.Marketplace, error) {
	var marketplaces []models.Marketplace
	err := db.Order("created_at ASC").Find(&marketplaces).Error
	return marketplaces, err
}

// RecordSyncError stores the sync error message on a marketplace row.
func (db *DB) RecordSyncError(id, message string) error {
	return db.Model(&models.Marketplace{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"sync_error": message,
			"updated_at": time.Now(),
		}).Error
}

// DeactivateMarketplace flips the active flag off. Idempotent.
func (db *DB) DeactivateMarketplace(id string) error {
	return db.Model(&models.Marketplace{}).Where("id = ?", id).
		Update("is_active", false).Error
}

// MarkMarketplaceSynced updates metadata from a successful manifest
// fetch, clears any previous error, and stamps the sync time.
func (db *DB) MarkMarketplaceSynced(m *models.Marketplace) error {
	now := time.Now()
	m.LastSyncedAt = &now
	m.SyncError = ""
	return db.Model(&models.Marketplace{}).Where("id = ?", m.ID).
		Updates(map[string]interface{}{
			"name":           m.Name,
			"description":    m.Description,
			"owner_name":     m.OwnerName,
			"owner_email":    m.OwnerEmail,
			"owner_url":      m.OwnerURL,
			"last_synced_at": now,
			"sync_error":     "",
			"updated_at":     now,
		}).Error
}

// UpdateMarketplacePluginCount sets the cached plugin count.
func (db *DB) UpdateMarketplacePluginCount(id string, count int) error {
	return db.Model(&models.Marketplace{}).Where("id = ?", id).
		Update("plugin_count", count).Error
}
