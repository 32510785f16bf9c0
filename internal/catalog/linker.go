package catalog

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/mhofwell/agent-augments/internal/log"
	"github.com/mhofwell/agent-augments/internal/models"
)

// minPatternLength drops patterns too short to match meaningfully.
const minPatternLength = 3

var frameworkSuffixRe = regexp.MustCompile(`(?i)\s*(method|framework|system|kit|mode)$`)

// LinkPluginsToFrameworks recomputes the derived plugin-framework
// relation by matching framework name patterns against plugin text,
// then replaces the whole link table in one transaction. A run that
// computes zero candidate links leaves the existing table untouched.
// Returns the number of links created.
func (s *Service) LinkPluginsToFrameworks(ctx context.Context) (int, error) {
	log.Printf("[Sync] Linking plugins to frameworks...")

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	frameworks, err := s.db.ListActiveFrameworks()
	if err != nil {
		return 0, fmt.Errorf("fetch frameworks: %w", err)
	}

	plugins, err := s.db.ListPlugins()
	if err != nil {
		return 0, fmt.Errorf("fetch plugins: %w", err)
	}

	type frameworkPatterns struct {
		id       string
		patterns []string
	}
	patterns := make([]frameworkPatterns, 0, len(frameworks))
	for _, fw := range frameworks {
		patterns = append(patterns, frameworkPatterns{
			id:       fw.ID,
			patterns: buildFrameworkPatterns(fw.Name, fw.Slug),
		})
	}

	var links []models.PluginFramework
	for _, plugin := range plugins {
		parts := append([]string{plugin.Name, plugin.Description}, plugin.Tags...)
		searchText := strings.ToLower(strings.Join(parts, " "))

		for _, fw := range patterns {
			for _, pattern := range fw.patterns {
				if strings.Contains(searchText, pattern) {
					links = append(links, models.PluginFramework{
						PluginID:    plugin.ID,
						FrameworkID: fw.id,
					})
					break
				}
			}
		}
	}

	if len(links) == 0 {
		// A zero-match run never replaces the table; existing links
		// survive until a run produces at least one match.
		log.Printf("[Sync] No plugin-framework matches found")
		return 0, nil
	}

	if err := s.db.ReplaceLinks(links); err != nil {
		return 0, fmt.Errorf("replace links: %w", err)
	}

	log.Printf("[Sync] Created %d plugin-framework links", len(links))
	return len(links), nil
}

// buildFrameworkPatterns derives the lowercase text patterns used to
// recognize a framework in plugin text: the exact name, the slug, a
// re-slugified name, and the name with a trailing method/framework/
// system/kit/mode stripped. Patterns shorter than three characters are
// discarded.
func buildFrameworkPatterns(name, slug string) []string {
	seen := make(map[string]bool)
	var patterns []string

	add := func(p string) {
		p = strings.TrimSpace(p)
		if len(p) >= minPatternLength && !seen[p] {
			seen[p] = true
			patterns = append(patterns, p)
		}
	}

	add(strings.ToLower(name))
	add(strings.ToLower(slug))
	add(models.Slugify(name))
	add(strings.ToLower(frameworkSuffixRe.ReplaceAllString(name, "")))

	return patterns
}
