// Package models defines the core data structures for agent-augments.
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Marketplace is a GitHub repository registered as a source of plugin
// manifests. Rows are created out-of-band (manual registration or seed
// list) and mutated only by the marketplace syncer.
type Marketplace struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	// (GithubOwner, GithubRepo) uniquely identifies a marketplace.
	GithubOwner string `gorm:"size:100;uniqueIndex:idx_marketplace_repo" json:"github_owner"`
	GithubRepo  string `gorm:"size:100;uniqueIndex:idx_marketplace_repo" json:"github_repo"`

	Name        string `gorm:"size:255" json:"name"`
	Description string `gorm:"size:1000" json:"description"`

	// Owner contact metadata from the manifest.
	OwnerName  string `gorm:"size:255" json:"owner_name"`
	OwnerEmail string `gorm:"size:255" json:"owner_email"`
	OwnerURL   string `gorm:"size:500" json:"owner_url"`

	// Sync state. A confirmed-absent manifest (404) flips IsActive
	// false; marketplaces are never deleted by sync.
	IsActive     bool       `gorm:"default:true;index" json:"is_active"`
	LastSyncedAt *time.Time `json:"last_synced_at"`
	SyncError    string     `gorm:"size:1000" json:"sync_error"`
	PluginCount  int        `gorm:"default:0" json:"plugin_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Plugins []Plugin `gorm:"foreignKey:MarketplaceID" json:"-"`
}

// TableName specifies the table name for GORM.
func (Marketplace) TableName() string {
	return "marketplaces"
}

// FullName returns the owner/repo identifier.
func (m *Marketplace) FullName() string {
	return fmt.Sprintf("%s/%s", m.GithubOwner, m.GithubRepo)
}

// RepoURL returns the GitHub URL of the marketplace repository.
func (m *Marketplace) RepoURL() string {
	return fmt.Sprintf("https://github.com/%s/%s", m.GithubOwner, m.GithubRepo)
}

// BeforeCreate assigns a UUID if none is set.
func (m *Marketplace) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// SeedMarketplace is a known plugin source registered at first startup.
type SeedMarketplace struct {
	Owner string
	Repo  string
	Name  string
}

// SeedMarketplaces are the marketplaces registered when the database is
// first created. Further registrations happen out-of-band.
var SeedMarketplaces = []SeedMarketplace{
	{Owner: "anthropics", Repo: "claude-code", Name: "Claude Code Official"},
	{Owner: "wshobson", Repo: "agents", Name: "Agents Collection"},
	{Owner: "davila7", Repo: "claude-code-templates", Name: "Claude Code Templates"},
}
