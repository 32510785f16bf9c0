package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PluginType classifies what a plugin provides.
type PluginType string

const (
	PluginTypeSkill   PluginType = "skill"
	PluginTypeAgent   PluginType = "agent"
	PluginTypeCommand PluginType = "command"
	PluginTypeBundle  PluginType = "bundle"
	PluginTypeHook    PluginType = "hook"
	PluginTypeUnknown PluginType = "unknown"
)

// ValidPluginTypes returns all defined plugin types.
func ValidPluginTypes() []PluginType {
	return []PluginType{
		PluginTypeSkill,
		PluginTypeAgent,
		PluginTypeCommand,
		PluginTypeBundle,
		PluginTypeHook,
		PluginTypeUnknown,
	}
}

// Plugin is one entry within a marketplace's manifest.
// (MarketplaceID, Name) is the natural key: re-sync overwrites every
// mutable field except Installs, which is incremented externally and
// never touched by sync.
type Plugin struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	MarketplaceID string       `gorm:"size:36;index;uniqueIndex:idx_plugin_marketplace_name" json:"marketplace_id"`
	Marketplace   *Marketplace `gorm:"foreignKey:MarketplaceID" json:"-"`

	Name        string `gorm:"size:255;uniqueIndex:idx_plugin_marketplace_name" json:"name"`
	Description string `gorm:"size:1000" json:"description"`
	Version     string `gorm:"size:50" json:"version"`
	Source      string `gorm:"size:500" json:"source"`
	Category    string `gorm:"size:100" json:"category"`
	Homepage    string `gorm:"size:500" json:"homepage"`

	AuthorName  string `gorm:"size:255" json:"author_name"`
	AuthorEmail string `gorm:"size:255" json:"author_email"`
	AuthorURL   string `gorm:"size:500" json:"author_url"`

	PluginType PluginType `gorm:"size:20;default:unknown;index" json:"plugin_type"`

	// Capability flags, derived independently of PluginType.
	HasSkills     bool `gorm:"default:false" json:"has_skills"`
	HasAgents     bool `gorm:"default:false" json:"has_agents"`
	HasCommands   bool `gorm:"default:false" json:"has_commands"`
	HasHooks      bool `gorm:"default:false" json:"has_hooks"`
	HasMCPServers bool `gorm:"default:false" json:"has_mcp_servers"`

	Tags Strings `gorm:"type:text" json:"tags"`

	// Installs is incremented by install events, never by sync.
	Installs int `gorm:"default:0" json:"installs"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Plugin) TableName() string {
	return "plugins"
}

// BeforeCreate assigns a UUID if none is set.
func (p *Plugin) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
