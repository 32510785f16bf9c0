package db

import (
	"fmt"

	"github.com/mhofwell/agent-augments/internal/models"
)

// ReplaceLinks deletes every plugin-framework link and inserts the
// given set as one batch, inside a single transaction so a crash can
// never leave the table half-replaced.
func (db *DB) ReplaceLinks(links []models.PluginFramework) error {
	return db.Transaction(func(tx *DB) error {
		if err := tx.Where("1 = 1").Delete(&models.PluginFramework{}).Error; err != nil {
			return fmt.Errorf("clear links: %w", err)
		}
		if len(links) == 0 {
			return nil
		}
		if err := tx.Create(&links).Error; err != nil {
			return fmt.Errorf("insert links: %w", err)
		}
		return nil
	})
}

// ListLinks returns all plugin-framework links.
func (db *DB) ListLinks() ([]models.PluginFramework, error) {
	var links []models.PluginFramework
	err := db.Find(&links).Error
	return links, err
}

// CountLinks returns the size of the link table.
func (db *DB) CountLinks() (int64, error) {
	var count int64
	err := db.Model(&models.PluginFramework{}).Count(&count).Error
	return count, err
}

// ListLinksByPlugin returns the framework links of one plugin.
func (db *DB) ListLinksByPlugin(pluginID string) ([]models.PluginFramework, error) {
	var links []models.PluginFramework
	err := db.Where("plugin_id = ?", pluginID).Find(&links).Error
	return links, err
}
