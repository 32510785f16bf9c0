package catalog

import (
	"context"
	"errors"

	"github.com/mhofwell/agent-augments/internal/log"
	"github.com/mhofwell/agent-augments/internal/models"
	"github.com/mhofwell/agent-augments/internal/source"
)

// SyncResult is the outcome of syncing one marketplace.
// PluginsAdded is the manifest batch size: inserts and updates are not
// distinguished.
type SyncResult struct {
	Marketplace    string     `json:"marketplace"`
	Success        bool       `json:"success"`
	PluginsAdded   int        `json:"pluginsAdded"`
	PluginsUpdated int        `json:"pluginsUpdated"`
	Err            *SyncError `json:"error,omitempty"`
}

// SyncMarketplace fetches a marketplace's manifest and reconciles its
// plugins into the catalog. A failure is recorded on the marketplace
// row and reported in the result; it never aborts the enclosing run.
func (s *Service) SyncMarketplace(ctx context.Context, m *models.Marketplace) SyncResult {
	result := SyncResult{Marketplace: m.FullName()}

	log.Printf("[Sync] Starting sync for %s", result.Marketplace)

	manifest, err := s.src.FetchManifest(ctx, m.GithubOwner, m.GithubRepo)
	if err != nil {
		result.Err = newSyncError(classifySourceError(err), err)

		if dbErr := s.db.RecordSyncError(m.ID, err.Error()); dbErr != nil {
			log.Errorf("[Sync] Failed to record error for %s: %v", result.Marketplace, dbErr)
		}

		// A confirmed-absent manifest deactivates the marketplace;
		// transient failures leave the active flag untouched.
		if source.IsNotFound(err) {
			if dbErr := s.db.DeactivateMarketplace(m.ID); dbErr != nil {
				log.Errorf("[Sync] Failed to deactivate %s: %v", result.Marketplace, dbErr)
			}
		}

		log.Printf("[Sync] Error for %s: %v", result.Marketplace, err)
		return result
	}

	if manifest.Plugins == nil {
		verr := errors.New("no plugins array found in marketplace.json")
		result.Err = newSyncError(ErrKindValidation, verr)

		if dbErr := s.db.RecordSyncError(m.ID, verr.Error()); dbErr != nil {
			log.Errorf("[Sync] Failed to record error for %s: %v", result.Marketplace, dbErr)
		}

		log.Printf("[Sync] No plugins for %s", result.Marketplace)
		return result
	}

	// Refresh display metadata, falling back to prior values where the
	// manifest omits a field.
	if manifest.Name != "" {
		m.Name = manifest.Name
	}
	if manifest.Metadata != nil && manifest.Metadata.Description != "" {
		m.Description = manifest.Metadata.Description
	}
	if manifest.Owner != nil {
		if manifest.Owner.Name != "" {
			m.OwnerName = manifest.Owner.Name
		}
		if manifest.Owner.Email != "" {
			m.OwnerEmail = manifest.Owner.Email
		}
		if manifest.Owner.URL != "" {
			m.OwnerURL = manifest.Owner.URL
		}
	}
	if err := s.db.MarkMarketplaceSynced(m); err != nil {
		result.Err = newSyncError(ErrKindPersistence, err)
		log.Errorf("[Sync] Failed to update metadata for %s: %v", result.Marketplace, err)
		return result
	}

	entries := manifest.DecodePlugins()
	plugins := make([]models.Plugin, 0, len(entries))
	for _, entry := range entries {
		plugins = append(plugins, buildPlugin(m.ID, entry))
	}

	if err := s.db.UpsertPlugins(plugins); err != nil {
		result.Err = newSyncError(ErrKindPersistence, err)

		if dbErr := s.db.RecordSyncError(m.ID, err.Error()); dbErr != nil {
			log.Errorf("[Sync] Failed to record error for %s: %v", result.Marketplace, dbErr)
		}

		log.Printf("[Sync] Upsert error for %s: %v", result.Marketplace, err)
		return result
	}

	if err := s.db.UpdateMarketplacePluginCount(m.ID, len(plugins)); err != nil {
		log.Errorf("[Sync] Failed to update plugin count for %s: %v", result.Marketplace, err)
	}

	result.Success = true
	result.PluginsAdded = len(plugins)
	log.Printf("[Sync] Success for %s: %d plugins", result.Marketplace, len(plugins))

	return result
}

// buildPlugin maps a raw manifest entry onto a plugin row. Every
// mutable field comes from the manifest: an omitted field overwrites
// with its zero value rather than preserving the previous one.
func buildPlugin(marketplaceID string, entry source.ManifestPlugin) models.Plugin {
	caps := DetectCapabilities(entry)

	p := models.Plugin{
		MarketplaceID: marketplaceID,
		Name:          entry.Name,
		Description:   entry.Description,
		Version:       entry.Version,
		Source:        string(entry.Source),
		Category:      entry.Category,
		Homepage:      entry.Homepage,
		PluginType:    ClassifyPlugin(entry),
		HasSkills:     caps.HasSkills,
		HasAgents:     caps.HasAgents,
		HasCommands:   caps.HasCommands,
		HasHooks:      caps.HasHooks,
		HasMCPServers: caps.HasMCPServers,
		Tags:          models.Strings(entry.Tags),
	}

	if entry.Author != nil {
		p.AuthorName = entry.Author.Name
		p.AuthorEmail = entry.Author.Email
		p.AuthorURL = entry.Author.URL
	}

	return p
}
