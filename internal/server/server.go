// Package server exposes the privileged sync trigger endpoints over
// HTTP. Everything else about the web application (UI, auth, end-user
// CRUD) lives elsewhere; this layer only triggers and reports sync
// runs.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mhofwell/agent-augments/internal/catalog"
	"github.com/mhofwell/agent-augments/internal/config"
	"github.com/mhofwell/agent-augments/internal/db"
)

// Server holds the HTTP trigger layer dependencies.
type Server struct {
	svc *catalog.Service
	db  *db.DB
	cfg config.ServerConfig
}

// New creates an API server around a sync service.
func New(svc *catalog.Service, database *db.DB, cfg config.ServerConfig) *Server {
	return &Server{svc: svc, db: database, cfg: cfg}
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/stats", s.Stats)
		r.Post("/installs", s.RecordInstall)

		r.Group(func(r chi.Router) {
			r.Use(s.requireTriggerSecret)
			r.Post("/sync", s.TriggerSync)
			r.Post("/sync/frameworks", s.TriggerDiscovery)
		})
	})

	return r
}

// HTTPServer wraps the router in an http.Server with sane timeouts.
// Sync runs can be slow, so the write timeout is generous.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}
}

// requireTriggerSecret guards the trigger endpoints with the shared
// secret, either as a Bearer token or a direct match.
func (s *Server) requireTriggerSecret(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.TriggerSecret == "" {
			writeError(w, http.StatusInternalServerError, "sync secret not configured")
			return
		}

		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token != s.cfg.TriggerSecret {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// TriggerSync handles POST /api/sync.
func (s *Server) TriggerSync(w http.ResponseWriter, r *http.Request) {
	summary, err := s.svc.SyncAll(r.Context())
	if err != nil {
		if errors.Is(err, catalog.ErrSyncInProgress) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error":   "sync failed: " + err.Error(),
			"summary": summary,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"summary": summary,
	})
}

// TriggerDiscovery handles POST /api/sync/frameworks.
func (s *Server) TriggerDiscovery(w http.ResponseWriter, r *http.Request) {
	result, err := s.svc.Discover(r.Context())
	if err != nil {
		if errors.Is(err, catalog.ErrSyncInProgress) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error":  "framework sync failed: " + err.Error(),
			"result": result,
		})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Stats handles GET /api/stats.
func (s *Server) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.db.GetStats()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// installRequest is the request body for recording an install event.
type installRequest struct {
	PluginID    string `json:"plugin_id"`
	CommandType string `json:"command_type"`
}

// RecordInstall handles POST /api/installs. This is the external
// incrementer of the plugin install counter; sync never touches it.
func (s *Server) RecordInstall(w http.ResponseWriter, r *http.Request) {
	var req installRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.PluginID == "" {
		writeError(w, http.StatusBadRequest, "plugin_id is required")
		return
	}
	if req.CommandType == "" {
		req.CommandType = "direct"
	}

	plugin, err := s.db.GetPlugin(req.PluginID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if plugin == nil {
		writeError(w, http.StatusNotFound, "plugin not found")
		return
	}

	if err := s.db.RecordInstallEvent(req.PluginID, req.CommandType); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
