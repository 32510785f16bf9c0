package source

import (
	"bytes"
	"encoding/json"
)

// ManifestPath is where marketplace repositories publish their
// manifest.
const ManifestPath = ".claude-plugin/marketplace.json"

// Manifest is the marketplace.json document a marketplace repository
// publishes describing its plugins.
type Manifest struct {
	Name     string            `json:"name"`
	Owner    *ManifestContact  `json:"owner"`
	Metadata *ManifestMetadata `json:"metadata"`

	// Plugins is nil when the document has no usable plugins array;
	// callers treat that as a validation failure.
	Plugins RawList `json:"plugins"`
}

// ManifestContact holds owner or author contact fields.
type ManifestContact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	URL   string `json:"url"`
}

// ManifestMetadata holds optional manifest-level metadata.
type ManifestMetadata struct {
	Description string `json:"description"`
	Version     string `json:"version"`
}

// ManifestPlugin is one raw plugin entry from a manifest.
type ManifestPlugin struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Version     string           `json:"version"`
	Source      PluginSource     `json:"source"`
	Category    string           `json:"category"`
	Author      *ManifestContact `json:"author"`
	Tags        []string         `json:"tags"`
	Homepage    string           `json:"homepage"`

	// Component indicators. Non-array values decode as absent.
	Skills     RawList         `json:"skills"`
	Agents     RawList         `json:"agents"`
	Commands   RawList         `json:"commands"`
	Hooks      RawList         `json:"hooks"`
	MCPServers json.RawMessage `json:"mcpServers"`
}

// DecodePlugins decodes the manifest's raw plugin entries. Entries
// that fail to decode are dropped rather than failing the whole
// manifest.
func (m *Manifest) DecodePlugins() []ManifestPlugin {
	plugins := make([]ManifestPlugin, 0, len(m.Plugins))
	for _, raw := range m.Plugins {
		var p ManifestPlugin
		if err := json.Unmarshal(raw, &p); err != nil {
			continue
		}
		plugins = append(plugins, p)
	}
	return plugins
}

// PluginSource accepts both the string form ("owner/repo") and the
// object form ({"url": ...}) seen in published manifests.
type PluginSource string

// UnmarshalJSON implements json.Unmarshaler.
func (s *PluginSource) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		*s = PluginSource(str)
		return nil
	}

	var obj struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(b, &obj); err == nil {
		*s = PluginSource(obj.URL)
		return nil
	}

	// Unrecognized shape: treat as absent.
	*s = ""
	return nil
}

// RawList is a JSON array of arbitrary items. A value of any other
// JSON type decodes to nil instead of erroring, so a malformed field
// reads as absent.
type RawList []json.RawMessage

// UnmarshalJSON implements json.Unmarshaler.
func (l *RawList) UnmarshalJSON(b []byte) error {
	var items []json.RawMessage
	if err := json.Unmarshal(b, &items); err != nil {
		*l = nil
		return nil
	}
	*l = items
	return nil
}

// Truthy reports whether a raw JSON value would be truthy: absent,
// null, false, 0, and "" are falsy; everything else (including empty
// objects and arrays) is truthy.
func Truthy(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	switch {
	case len(trimmed) == 0:
		return false
	case bytes.Equal(trimmed, []byte("null")):
		return false
	case bytes.Equal(trimmed, []byte("false")):
		return false
	case bytes.Equal(trimmed, []byte("0")):
		return false
	case bytes.Equal(trimmed, []byte(`""`)):
		return false
	}
	return true
}
