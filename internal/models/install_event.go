package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Install command types recorded by install events.
const (
	InstallCommandMarketplace = "marketplace"
	InstallCommandDirect      = "direct"
)

// InstallEvent records a user copying or running a plugin's install
// command. Events increment the plugin's install counter; sync never
// writes that counter.
type InstallEvent struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	PluginID string  `gorm:"size:36;index" json:"plugin_id"`
	Plugin   *Plugin `gorm:"foreignKey:PluginID" json:"-"`

	CommandType string `gorm:"size:50" json:"command_type"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (InstallEvent) TableName() string {
	return "install_events"
}

// BeforeCreate assigns a UUID if none is set.
func (e *InstallEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// CatalogStats provides aggregate statistics about the catalog.
type CatalogStats struct {
	TotalMarketplaces  int64     `json:"total_marketplaces"`
	ActiveMarketplaces int64     `json:"active_marketplaces"`
	TotalPlugins       int64     `json:"total_plugins"`
	TotalFrameworks    int64     `json:"total_frameworks"`
	TotalLinks         int64     `json:"total_links"`
	TotalInstalls      int64     `json:"total_installs"`
	LastUpdated        time.Time `json:"last_updated"`
}
