package db

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mhofwell/agent-augments/internal/models"
)

// UpsertPlugins batch-upserts plugins keyed on (marketplace_id, name).
// Every mutable field is overwritten; installs and created_at are
// preserved on conflict.
func (db *DB) UpsertPlugins(plugins []models.Plugin) error {
	if len(plugins) == 0 {
		return nil
	}
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "marketplace_id"}, {Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"description", "version", "source", "category", "homepage",
			"author_name", "author_email", "author_url",
			"plugin_type",
			"has_skills", "has_agents", "has_commands", "has_hooks", "has_mcp_servers",
			"tags",
			"updated_at",
			// NOT updated: installs
		}),
	}).Create(&plugins).Error
}

// GetPlugin retrieves a plugin by ID.
func (db *DB) GetPlugin(id string) (*models.Plugin, error) {
	var p models.Plugin
	err := db.First(&p, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// GetPluginByName retrieves a plugin by its natural key.
func (db *DB) GetPluginByName(marketplaceID, name string) (*models.Plugin, error) {
	var p models.Plugin
	err := db.First(&p, "marketplace_id = ? AND name = ?", marketplaceID, name).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// ListPlugins returns all plugins.
func (db *DB) ListPlugins() ([]models.Plugin, error) {
	var plugins []models.Plugin
	err := db.Order("name ASC").Find(&plugins).Error
	return plugins, err
}

// ListPluginsByMarketplace returns the plugins of one marketplace.
func (db *DB) ListPluginsByMarketplace(marketplaceID string) ([]models.Plugin, error) {
	var plugins []models.Plugin
	err := db.Where("marketplace_id = ?", marketplaceID).
		Order("name ASC").
		Find(&plugins).Error
	return plugins, err
}

// CountPlugins returns the total plugin count across all marketplaces.
func (db *DB) CountPlugins() (int64, error) {
	var count int64
	err := db.Model(&models.Plugin{}).Count(&count).Error
	return count, err
}

// RecordInstallEvent stores an install event and increments the
// plugin's install counter. This is the only write path for installs;
// sync never touches the counter.
func (db *DB) RecordInstallEvent(pluginID, commandType string) error {
	return db.Transaction(func(tx *DB) error {
		event := models.InstallEvent{
			PluginID:    pluginID,
			CommandType: commandType,
		}
		if err := tx.Create(&event).Error; err != nil {
			return fmt.Errorf("create install event: %w", err)
		}
		return tx.Model(&models.Plugin{}).Where("id = ?", pluginID).
			Update("installs", gorm.Expr("installs + 1")).Error
	})
}
