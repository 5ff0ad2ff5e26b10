// Package server provides the HTTP API for nasari.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hyperjump/nasari/internal/config"
	"github.com/hyperjump/nasari/internal/models"
	"go.uber.org/zap"
)

// Lookup answers the queries served by the API.
type Lookup interface {
	Vector(key string) (*models.VectorResult, error)
	Similarity(key1, key2 string) (*models.SimilarityResult, error)
	Stats() models.Stats
}

// Server is the HTTP server for the nasari API.
type Server struct {
	lookup  Lookup
	config  *config.Config
	logger  *zap.Logger
	version string
	server  *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(lookup Lookup, cfg *config.Config, logger *zap.Logger, version string) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		lookup:  lookup,
		config:  cfg,
		logger:  logger,
		version: version,
	}
}

// Handler returns the router with all routes and middleware installed.
func (s *Server) Handler() http.Handler {
	timeout := 30 * time.Second
	if s.config != nil && s.config.Server.TimeoutSeconds > 0 {
		timeout = time.Duration(s.config.Server.TimeoutSeconds) * time.Second
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(accessLog(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))
	r.Use(middleware.Compress(5))

	r.Get("/nasari/vector", s.handleVector)
	r.Get("/nasari/cosine", s.handleCosine)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/health", s.handleHealth)
	return r
}

// Start starts the HTTP server and blocks until it stops.
// It returns nil after a graceful Stop.
func (s *Server) Start() error {
	addr := s.config.Server.Addr()
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
