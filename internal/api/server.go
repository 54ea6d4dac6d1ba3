// Package api exposes the resolver, the genome registry, and the run log
// over HTTP, so workflow tooling can request invocations remotely.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/zx0223winner/peppro/internal/config"
	"github.com/zx0223winner/peppro/internal/database"
	"github.com/zx0223winner/peppro/internal/registry"
	"github.com/zx0223winner/peppro/internal/service"
)

// Server represents the HTTP API server
type Server struct {
	router         *mux.Router
	server         *http.Server
	resolveService *service.ResolveService
	runService     *service.RunService
	db             *database.DB
}

// Config holds server configuration
type Config struct {
	Host       string
	Port       int
	EnableCORS bool
	Runner     *config.Config
	Registry   *registry.Registry
}

// NewServer creates a new API server instance
func NewServer(cfg *Config) (*Server, error) {
	db, err := database.Initialize(cfg.Runner.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Server{
		router:         mux.NewRouter(),
		resolveService: service.NewResolveService(cfg.Runner, cfg.Registry, db),
		runService:     service.NewRunService(db),
		db:             db,
	}

	s.setupRoutes()

	if cfg.EnableCORS {
		s.router.Use(corsMiddleware)
	}
	s.router.Use(loggingMiddleware)
	s.router.Use(jsonMiddleware)

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api/v1").Subrouter()

	// Resolution endpoint
	api.HandleFunc("/resolve", s.handleResolve).Methods("POST")

	// Registry endpoints
	api.HandleFunc("/genomes", s.handleListGenomes).Methods("GET")
	api.HandleFunc("/genomes/{genome}", s.handleGetGenome).Methods("GET")

	// Run log endpoints
	api.HandleFunc("/runs", s.handleListRuns).Methods("GET")
	api.HandleFunc("/runs/{id:[0-9]+}", s.handleGetRun).Methods("GET")
	api.HandleFunc("/stats", s.handleGetStats).Methods("GET")

	// Health check
	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	// Root endpoint
	s.router.HandleFunc("/", s.handleRoot).Methods("GET")
}

// Handler returns the configured router, for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	log.Printf("Starting API server on %s", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down API server...")

	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}

	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Middleware functions

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.RequestURI, time.Since(start))
	})
}

func jsonMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// Helper functions

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]interface{}{
		"error":   true,
		"message": message,
		"status":  status,
	})
}

// handleRoot returns API information
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	info := map[string]interface{}{
		"name":        "peppro-runner API",
		"description": "Pipeline invocation resolution for PRO-seq samples",
		"endpoints": []string{
			"POST /api/v1/resolve",
			"GET /api/v1/genomes",
			"GET /api/v1/genomes/{genome}",
			"GET /api/v1/runs",
			"GET /api/v1/runs/{id}",
			"GET /api/v1/stats",
			"GET /api/v1/health",
		},
	}
	s.writeJSON(w, http.StatusOK, info)
}
