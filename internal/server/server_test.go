package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhofwell/agent-augments/internal/catalog"
	"github.com/mhofwell/agent-augments/internal/config"
	"github.com/mhofwell/agent-augments/internal/db"
	"github.com/mhofwell/agent-augments/internal/models"
	"github.com/mhofwell/agent-augments/internal/source"
)

// stubSource serves canned manifests so trigger endpoints can run a
// real sync against a temp database.
type stubSource struct {
	manifests map[string]*source.Manifest
}

func (s *stubSource) FetchManifest(ctx context.Context, owner, repo string) (*source.Manifest, error) {
	if m, ok := s.manifests[owner+"/"+repo]; ok {
		return m, nil
	}
	return nil, &source.NotFoundError{Resource: "manifest"}
}

func (s *stubSource) FetchRepoStats(ctx context.Context, owner, repo string) (*source.RepoStats, error) {
	return &source.RepoStats{}, nil
}

func (s *stubSource) SearchRepositories(ctx context.Context, query string) ([]source.Repo, error) {
	return nil, nil
}

func (s *stubSource) FetchReadme(ctx context.Context, owner, repo string) (string, error) {
	return "", &source.NotFoundError{Resource: "readme"}
}

func testServer(t *testing.T, secret string) (*Server, *db.DB) {
	t.Helper()

	database, err := db.New(db.DefaultConfig(filepath.Join(t.TempDir(), "test.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	svc := catalog.NewService(database, &stubSource{}, config.SyncConfig{MinStars: 200})
	return New(svc, database, config.ServerConfig{Addr: ":0", TriggerSecret: secret}), database
}

func TestHealth(t *testing.T) {
	srv, _ := testServer(t, "s3cret")

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestStats(t *testing.T) {
	srv, _ := testServer(t, "s3cret")

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest("GET", "/api/stats", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var stats models.CatalogStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, int64(len(models.SeedMarketplaces)), stats.TotalMarketplaces)
}

func TestTriggerSyncAuth(t *testing.T) {
	srv, _ := testServer(t, "s3cret")

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"wrong secret", "Bearer wrong", http.StatusUnauthorized},
		{"bare secret", "s3cret", http.StatusOK},
		{"bearer secret", "Bearer s3cret", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/sync", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			srv.Router().ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestTriggerSyncNoSecretConfigured(t *testing.T) {
	srv, _ := testServer(t, "")

	req := httptest.NewRequest("POST", "/api/sync", nil)
	req.Header.Set("Authorization", "Bearer anything")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestTriggerSyncReturnsSummary(t *testing.T) {
	srv, _ := testServer(t, "s3cret")

	req := httptest.NewRequest("POST", "/api/sync", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool            `json:"success"`
		Summary catalog.Summary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, len(models.SeedMarketplaces), body.Summary.TotalMarketplaces)
	// The stub 404s every manifest, so every sync fails.
	assert.Equal(t, len(models.SeedMarketplaces), body.Summary.FailedSyncs)
}

func TestTriggerDiscovery(t *testing.T) {
	srv, _ := testServer(t, "s3cret")

	req := httptest.NewRequest("POST", "/api/sync/frameworks", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result catalog.FrameworkSyncResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, 0, result.Discovered)
}

func TestRecordInstall(t *testing.T) {
	srv, database := testServer(t, "s3cret")

	m, err := database.GetMarketplaceByRepo("anthropics", "claude-code")
	require.NoError(t, err)
	require.NoError(t, database.UpsertPlugins([]models.Plugin{
		{MarketplaceID: m.ID, Name: "reviewer"},
	}))
	p, err := database.GetPluginByName(m.ID, "reviewer")
	require.NoError(t, err)

	body, _ := json.Marshal(map[string]string{"plugin_id": p.ID})
	req := httptest.NewRequest("POST", "/api/installs", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	updated, err := database.GetPlugin(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Installs)
}

func TestRecordInstallValidation(t *testing.T) {
	srv, _ := testServer(t, "s3cret")

	tests := []struct {
		name string
		body string
		want int
	}{
		{"malformed json", "{", http.StatusBadRequest},
		{"missing plugin_id", "{}", http.StatusBadRequest},
		{"unknown plugin", `{"plugin_id":"nope"}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/installs", bytes.NewReader([]byte(tt.body)))
			rec := httptest.NewRecorder()
			srv.Router().ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
