package models

import "time"

// PluginFramework associates a plugin with a framework mentioned in
// its name, description, or tags. The full set of links is derived:
// the relationship linker recomputes and replaces it on every
// marketplace sync cycle.
type PluginFramework struct {
	PluginID    string `gorm:"primaryKey;size:36" json:"plugin_id"`
	FrameworkID string `gorm:"primaryKey;size:36" json:"framework_id"`

	Plugin    *Plugin    `gorm:"foreignKey:PluginID" json:"-"`
	Framework *Framework `gorm:"foreignKey:FrameworkID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (PluginFramework) TableName() string {
	return "plugin_frameworks"
}
