package catalog

import (
	"strings"

	"github.com/mhofwell/agent-augments/internal/models"
	"github.com/mhofwell/agent-augments/internal/source"
)

// ClassifyPlugin determines a plugin's type from its raw manifest
// entry. It is total: unmatched entries resolve to unknown, never an
// error. Checks run in priority order and the first match wins.
func ClassifyPlugin(p source.ManifestPlugin) models.PluginType {
	// Structural: populated component arrays, in this exact order.
	if len(p.Skills) > 0 {
		return models.PluginTypeSkill
	}
	if len(p.Agents) > 0 {
		return models.PluginTypeAgent
	}
	if len(p.Commands) > 0 {
		return models.PluginTypeCommand
	}
	if len(p.Hooks) > 0 {
		return models.PluginTypeHook
	}

	// Keywords in name and description.
	combined := strings.ToLower(p.Name + " " + p.Description)
	switch {
	case strings.Contains(combined, "skill"):
		return models.PluginTypeSkill
	case strings.Contains(combined, "agent"):
		return models.PluginTypeAgent
	case strings.Contains(combined, "command"), strings.Contains(combined, "slash"):
		return models.PluginTypeCommand
	case strings.Contains(combined, "hook"):
		return models.PluginTypeHook
	case strings.Contains(combined, "bundle"),
		strings.Contains(combined, "kit"),
		strings.Contains(combined, "toolkit"),
		strings.Contains(combined, "suite"):
		return models.PluginTypeBundle
	}

	// Category field, singular or plural.
	switch strings.ToLower(p.Category) {
	case "skill", "skills":
		return models.PluginTypeSkill
	case "agent", "agents":
		return models.PluginTypeAgent
	case "command", "commands":
		return models.PluginTypeCommand
	}

	return models.PluginTypeUnknown
}

// Capabilities are the orthogonal component flags of one plugin entry.
type Capabilities struct {
	HasSkills     bool
	HasAgents     bool
	HasCommands   bool
	HasHooks      bool
	HasMCPServers bool
}

// DetectCapabilities computes capability flags independently of the
// classified type: each array flag is true iff the raw array is
// non-empty, and the MCP flag follows the raw field's truthiness.
func DetectCapabilities(p source.ManifestPlugin) Capabilities {
	return Capabilities{
		HasSkills:     len(p.Skills) > 0,
		HasAgents:     len(p.Agents) > 0,
		HasCommands:   len(p.Commands) > 0,
		HasHooks:      len(p.Hooks) > 0,
		HasMCPServers: source.Truthy(p.MCPServers),
	}
}
