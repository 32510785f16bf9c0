// Package source fetches raw documents from GitHub: marketplace
// manifests, repository metadata, search results, and README text.
// It carries no business logic; classification and reconciliation
// happen in the catalog package.
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/mhofwell/agent-augments/internal/log"
)

const (
	// DefaultCacheTTL is the default TTL for cached responses.
	DefaultCacheTTL = time.Hour

	// AuthenticatedRateLimit is requests per minute with token.
	AuthenticatedRateLimit = 20

	// UnauthenticatedRateLimit is requests per minute without token.
	UnauthenticatedRateLimit = 5

	// searchPageSize is the result page size for repository search.
	// Only the first page is consumed.
	searchPageSize = 30
)

// Config holds the explicit configuration for a Client. Nothing here
// is read from the environment.
type Config struct {
	Token     string
	RateLimit int // requests per minute; 0 picks a default based on auth
	CacheTTL  time.Duration
	UserAgent string
}

// RepoStats holds the subset of repository metadata the catalog cares
// about.
type RepoStats struct {
	Stars int
	Forks int
}

// Repo is one repository search result.
type Repo struct {
	FullName    string
	Name        string
	Description string
	HTMLURL     string
	Homepage    string
	Stars       int
	OwnerLogin  string
}

// Client wraps the GitHub API with rate limiting and response caching.
type Client struct {
	rest    *github.Client
	limiter *rate.Limiter
	cache   *responseCache
}

// NewClient creates a GitHub client from explicit configuration.
// Unauthenticated mode is supported but subject to a far lower rate
// ceiling.
func NewClient(cfg Config) *Client {
	httpClient := oauth2.NewClient(context.Background(), nil)
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	} else {
		log.Printf("source: no GitHub token configured, using unauthenticated requests")
	}

	rateLimit := cfg.RateLimit
	if rateLimit <= 0 {
		if cfg.Token != "" {
			rateLimit = AuthenticatedRateLimit
		} else {
			rateLimit = UnauthenticatedRateLimit
		}
	}

	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	rest := github.NewClient(httpClient)
	if cfg.UserAgent != "" {
		rest.UserAgent = cfg.UserAgent
	}

	return &Client{
		rest:    rest,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(rateLimit)), rateLimit),
		cache:   newResponseCache(ttl),
	}
}

// FetchManifest fetches and decodes a marketplace manifest. A missing
// manifest surfaces as a NotFoundError so callers can deactivate the
// marketplace instead of retrying.
func (c *Client) FetchManifest(ctx context.Context, owner, repo string) (*Manifest, error) {
	cacheKey := fmt.Sprintf("manifest:%s/%s", owner, repo)
	if cached, ok := c.cache.get(cacheKey); ok {
		return cached.(*Manifest), nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	fileContent, _, resp, err := c.rest.Repositories.GetContents(ctx, owner, repo, ManifestPath, nil)
	if err != nil {
		return nil, c.mapError(fmt.Sprintf("manifest for %s/%s", owner, repo), resp, err)
	}
	c.checkQuota(resp)

	content, err := fileContent.GetContent()
	if err != nil {
		return nil, &UpstreamError{Message: fmt.Sprintf("decode manifest content: %v", err)}
	}

	var manifest Manifest
	if err := json.Unmarshal([]byte(content), &manifest); err != nil {
		return nil, &UpstreamError{Message: fmt.Sprintf("parse manifest json: %v", err)}
	}

	c.cache.set(cacheKey, &manifest)
	return &manifest, nil
}

// FetchRepoStats fetches star and fork counts for a repository.
func (c *Client) FetchRepoStats(ctx context.Context, owner, repo string) (*RepoStats, error) {
	cacheKey := fmt.Sprintf("repo:%s/%s", owner, repo)
	if cached, ok := c.cache.get(cacheKey); ok {
		return cached.(*RepoStats), nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	repository, resp, err := c.rest.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return nil, c.mapError(fmt.Sprintf("repository %s/%s", owner, repo), resp, err)
	}
	c.checkQuota(resp)

	stats := &RepoStats{
		Stars: repository.GetStargazersCount(),
		Forks: repository.GetForksCount(),
	}

	c.cache.set(cacheKey, stats)
	return stats, nil
}

// SearchRepositories runs one repository search sorted by stars
// descending and returns the first page of results.
func (c *Client) SearchRepositories(ctx context.Context, query string) ([]Repo, error) {
	cacheKey := fmt.Sprintf("search:%s", query)
	if cached, ok := c.cache.get(cacheKey); ok {
		return cached.([]Repo), nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	opts := &github.SearchOptions{
		Sort:  "stars",
		Order: "desc",
		ListOptions: github.ListOptions{
			PerPage: searchPageSize,
		},
	}

	result, resp, err := c.rest.Search.Repositories(ctx, query, opts)
	if err != nil {
		return nil, c.mapError(fmt.Sprintf("search %q", query), resp, err)
	}
	c.checkQuota(resp)

	repos := make([]Repo, 0, len(result.Repositories))
	for _, r := range result.Repositories {
		repos = append(repos, Repo{
			FullName:    r.GetFullName(),
			Name:        r.GetName(),
			Description: r.GetDescription(),
			HTMLURL:     r.GetHTMLURL(),
			Homepage:    r.GetHomepage(),
			Stars:       r.GetStargazersCount(),
			OwnerLogin:  r.GetOwner().GetLogin(),
		})
	}

	c.cache.set(cacheKey, repos)
	return repos, nil
}

// FetchReadme fetches a repository's README as raw text.
func (c *Client) FetchReadme(ctx context.Context, owner, repo string) (string, error) {
	cacheKey := fmt.Sprintf("readme:%s/%s", owner, repo)
	if cached, ok := c.cache.get(cacheKey); ok {
		return cached.(string), nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	readme, resp, err := c.rest.Repositories.GetReadme(ctx, owner, repo, nil)
	if err != nil {
		return "", c.mapError(fmt.Sprintf("readme for %s/%s", owner, repo), resp, err)
	}
	c.checkQuota(resp)

	content, err := readme.GetContent()
	if err != nil {
		return "", &UpstreamError{Message: fmt.Sprintf("decode readme content: %v", err)}
	}

	c.cache.set(cacheKey, content)
	return content, nil
}

// ClearCache drops all cached responses.
func (c *Client) ClearCache() {
	c.cache.clear()
}

// mapError converts go-github errors into the source error taxonomy.
func (c *Client) mapError(resource string, resp *github.Response, err error) error {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return &RateLimitedError{Reset: rateErr.Rate.Reset.Time}
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		reset := time.Now()
		if abuseErr.RetryAfter != nil {
			reset = reset.Add(*abuseErr.RetryAfter)
		}
		return &RateLimitedError{Reset: reset}
	}

	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		if ghErr.Response.StatusCode == 404 {
			return &NotFoundError{Resource: resource}
		}
		return &UpstreamError{Status: ghErr.Response.StatusCode, Message: ghErr.Message}
	}

	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	return &UpstreamError{Status: status, Message: err.Error()}
}

// checkQuota logs a warning when the remaining quota runs low.
func (c *Client) checkQuota(resp *github.Response) {
	if resp != nil && resp.Rate.Limit > 0 && resp.Rate.Remaining < 10 {
		log.Printf("source: rate limit low: %d remaining, resets at %s",
			resp.Rate.Remaining, resp.Rate.Reset.Format(time.RFC3339))
	}
}
