package catalog

import (
	"encoding/json"
	"testing"

	"github.com/mhofwell/agent-augments/internal/models"
	"github.com/mhofwell/agent-augments/internal/source"
)

func rawItems(n int) source.RawList {
	items := make(source.RawList, n)
	for i := range items {
		items[i] = json.RawMessage(`"x"`)
	}
	return items
}

func TestClassifyPluginStructural(t *testing.T) {
	tests := []struct {
		name string
		p    source.ManifestPlugin
		want models.PluginType
	}{
		{"skills win", source.ManifestPlugin{Skills: rawItems(1), Agents: rawItems(3)}, models.PluginTypeSkill},
		{"agents before commands", source.ManifestPlugin{Agents: rawItems(1), Commands: rawItems(5)}, models.PluginTypeAgent},
		{"commands before hooks", source.ManifestPlugin{Commands: rawItems(1), Hooks: rawItems(2)}, models.PluginTypeCommand},
		{"hooks alone", source.ManifestPlugin{Hooks: rawItems(1)}, models.PluginTypeHook},
		{"structure beats keywords", source.ManifestPlugin{Name: "my agent", Skills: rawItems(1)}, models.PluginTypeSkill},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyPlugin(tt.p); got != tt.want {
				t.Errorf("ClassifyPlugin() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassifyPluginKeywords(t *testing.T) {
	tests := []struct {
		name string
		p    source.ManifestPlugin
		want models.PluginType
	}{
		{"skill keyword", source.ManifestPlugin{Name: "PDF Skill"}, models.PluginTypeSkill},
		{"agent keyword in description", source.ManifestPlugin{Name: "reviewer", Description: "an agent for review"}, models.PluginTypeAgent},
		{"slash keyword", source.ManifestPlugin{Description: "adds slash shortcuts"}, models.PluginTypeCommand},
		{"hook keyword", source.ManifestPlugin{Name: "pre-commit hook"}, models.PluginTypeHook},
		{"toolkit keyword", source.ManifestPlugin{Name: "dev toolkit"}, models.PluginTypeBundle},
		{"suite keyword", source.ManifestPlugin{Description: "a full suite"}, models.PluginTypeBundle},
		{"skill beats agent", source.ManifestPlugin{Name: "skill agent"}, models.PluginTypeSkill},
		{"case insensitive", source.ManifestPlugin{Name: "SKILL Pack"}, models.PluginTypeSkill},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyPlugin(tt.p); got != tt.want {
				t.Errorf("ClassifyPlugin() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassifyPluginCategory(t *testing.T) {
	tests := []struct {
		category string
		want     models.PluginType
	}{
		{"skill", models.PluginTypeSkill},
		{"skills", models.PluginTypeSkill},
		{"Agent", models.PluginTypeAgent},
		{"agents", models.PluginTypeAgent},
		{"command", models.PluginTypeCommand},
		{"commands", models.PluginTypeCommand},
		{"productivity", models.PluginTypeUnknown},
	}

	for _, tt := range tests {
		p := source.ManifestPlugin{Name: "thing", Category: tt.category}
		if got := ClassifyPlugin(p); got != tt.want {
			t.Errorf("ClassifyPlugin(category=%q) = %v, want %v", tt.category, got, tt.want)
		}
	}
}

func TestClassifyPluginUnknown(t *testing.T) {
	p := source.ManifestPlugin{Name: "mystery", Description: "does things"}
	if got := ClassifyPlugin(p); got != models.PluginTypeUnknown {
		t.Errorf("ClassifyPlugin() = %v, want unknown", got)
	}
}

func TestDetectCapabilities(t *testing.T) {
	p := source.ManifestPlugin{
		Skills:     rawItems(2),
		Hooks:      rawItems(1),
		MCPServers: json.RawMessage(`{"fs": {}}`),
	}

	caps := DetectCapabilities(p)
	if !caps.HasSkills || caps.HasAgents || caps.HasCommands || !caps.HasHooks {
		t.Errorf("unexpected flags: %+v", caps)
	}
	if !caps.HasMCPServers {
		t.Error("expected HasMCPServers")
	}
}

func TestDetectCapabilitiesMCPTruthiness(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"", false},
		{"null", false},
		{"false", false},
		{"{}", true},
		{"[]", true},
	}

	for _, tt := range tests {
		p := source.ManifestPlugin{MCPServers: json.RawMessage(tt.raw)}
		if got := DetectCapabilities(p).HasMCPServers; got != tt.want {
			t.Errorf("HasMCPServers(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
