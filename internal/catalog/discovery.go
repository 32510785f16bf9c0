package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mhofwell/agent-augments/internal/log"
	"github.com/mhofwell/agent-augments/internal/models"
	"github.com/mhofwell/agent-augments/internal/source"
)

// SearchQueries find candidate framework repositories. Discovery runs
// each query once, first page only.
var SearchQueries = []string{
	"claude code framework",
	"claude code methodology",
	"CLAUDE.md framework",
}

// frameworkPalette is cycled by insertion order when assigning colors
// to discovered frameworks.
var frameworkPalette = []string{
	"#3b82f6", // blue
	"#8b5cf6", // violet
	"#10b981", // emerald
	"#f59e0b", // amber
	"#ec4899", // pink
	"#06b6d4", // cyan
	"#84cc16", // lime
	"#f97316", // orange
}

// maxSlugSuffix bounds slug collision resolution.
const maxSlugSuffix = 100

// FrameworkSyncResult is the outcome of one discovery run.
type FrameworkSyncResult struct {
	Success    bool     `json:"success"`
	Discovered int      `json:"discovered"`
	Added      int      `json:"added"`
	Skipped    int      `json:"skipped"`
	Errors     []string `json:"errors"`
}

// discoverFrameworks crawls the fixed search queries for candidate
// framework repositories and inserts the ones not already cataloged.
// Discovery is pure addition: it never updates or deactivates existing
// rows.
func (s *Service) discoverFrameworks(ctx context.Context) (*FrameworkSyncResult, error) {
	result := &FrameworkSyncResult{Errors: []string{}}

	log.Printf("[FrameworkSync] Starting framework discovery...")
	log.Printf("[FrameworkSync] Minimum stars threshold: %d", s.cfg.MinStars)

	existing, err := s.db.ListFrameworks()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("fetch existing frameworks: %v", err))
		return result, err
	}

	existingURLs := make(map[string]bool, len(existing))
	existingSlugs := make(map[string]bool, len(existing))
	for _, f := range existing {
		if f.GithubURL != "" {
			existingURLs[strings.ToLower(f.GithubURL)] = true
		}
		existingSlugs[f.Slug] = true
	}

	repos, err := s.searchFrameworkRepos(ctx)
	if err != nil {
		return result, err
	}
	result.Discovered = len(repos)

	log.Printf("[FrameworkSync] Found %d repos with %d+ stars", len(repos), s.cfg.MinStars)

	maxOrder, err := s.db.MaxFrameworkSortOrder()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("fetch max sort order: %v", err))
		return result, err
	}
	sortOrder := maxOrder + 1

	for _, repo := range repos {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		repoURL := strings.ToLower(repo.HTMLURL)
		if existingURLs[repoURL] {
			log.Printf("[FrameworkSync] Skipping %s (already exists)", repo.FullName)
			result.Skipped++
			continue
		}

		slug := uniqueSlug(repo.Name, existingSlugs)

		install := s.installCommandFor(ctx, repo)

		description := repo.Description
		if description == "" {
			description = fmt.Sprintf("Claude Code framework with %d stars", repo.Stars)
		}

		homepage := repo.Homepage
		if homepage == "" {
			homepage = repo.HTMLURL
		}

		framework := models.Framework{
			Slug:           slug,
			Name:           repo.Name,
			Description:    description,
			InstallCommand: install.Command,
			InstallTool:    install.Tool,
			GithubURL:      repo.HTMLURL,
			Homepage:       homepage,
			Color:          frameworkPalette[sortOrder%len(frameworkPalette)],
			IsActive:       true,
			SortOrder:      sortOrder,
			Stars:          repo.Stars,
		}

		if err := s.db.CreateFramework(&framework); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("insert %s: %v", repo.FullName, err))
			log.Errorf("[FrameworkSync] Error inserting %s: %v", repo.FullName, err)
		} else {
			result.Added++
			existingSlugs[slug] = true
			existingURLs[repoURL] = true
			sortOrder++
			log.Printf("[FrameworkSync] Added %s (%d stars)", repo.FullName, repo.Stars)
		}

		if err := sleepCtx(ctx, s.cfg.InsertDelay); err != nil {
			return result, err
		}
	}

	result.Success = len(result.Errors) == 0
	log.Printf("[FrameworkSync] Complete. Added: %d, Skipped: %d", result.Added, result.Skipped)

	return result, nil
}

// searchFrameworkRepos runs every search query, deduplicates results
// by repository full name, filters by the star threshold, and returns
// candidates sorted by stars descending. A failed query is logged and
// skipped.
func (s *Service) searchFrameworkRepos(ctx context.Context) ([]source.Repo, error) {
	byFullName := make(map[string]source.Repo)

	for _, query := range SearchQueries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		repos, err := s.src.SearchRepositories(ctx, query)
		if err != nil {
			log.Errorf("[FrameworkSync] Search failed for %q: %v", query, err)
			continue
		}

		for _, repo := range repos {
			if repo.Stars >= s.cfg.MinStars {
				byFullName[repo.FullName] = repo
			}
		}

		if err := sleepCtx(ctx, s.cfg.SearchDelay); err != nil {
			return nil, err
		}
	}

	candidates := make([]source.Repo, 0, len(byFullName))
	for _, repo := range byFullName {
		candidates = append(candidates, repo)
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Stars > candidates[j].Stars
	})

	return candidates, nil
}

// installCommandFor fetches the candidate's README and extracts an
// install command, falling back to a plain git clone. README absence
// is tolerated.
func (s *Service) installCommandFor(ctx context.Context, repo source.Repo) InstallCommand {
	fallback := InstallCommand{
		Command: fmt.Sprintf("git clone %s.git", repo.HTMLURL),
		Tool:    "bash",
	}

	readme, err := s.src.FetchReadme(ctx, repo.OwnerLogin, repo.Name)
	if err != nil || readme == "" {
		return fallback
	}

	if cmd, ok := ExtractInstallCommand(readme); ok {
		return cmd
	}
	return fallback
}

// uniqueSlug slugifies a repository name and resolves collisions
// against known slugs by appending an incrementing numeric suffix.
func uniqueSlug(name string, known map[string]bool) string {
	base := models.Slugify(name)
	slug := base
	for suffix := 1; known[slug] && suffix <= maxSlugSuffix; suffix++ {
		slug = fmt.Sprintf("%s-%d", base, suffix)
	}
	return slug
}
