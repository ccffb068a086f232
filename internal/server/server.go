// Package server provides the HTTP API for Rirekisho: keyword search over
// indexed CVs plus applicant and inbox management.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hyperjump/rirekisho/internal/config"
	"github.com/hyperjump/rirekisho/internal/indexer"
	"github.com/hyperjump/rirekisho/internal/search"
	"github.com/hyperjump/rirekisho/internal/storage"
	"github.com/hyperjump/rirekisho/internal/watcher"
)

// Server is the HTTP server for the Rirekisho API.
type Server struct {
	engine  *search.Engine
	indexer *indexer.Indexer
	storage storage.Storage
	config  *config.ServerConfig
	logger  *zap.Logger
	server  *http.Server

	watch       *watcher.Watcher
	fullConfig  *config.Config
	configPath  string
	fullConfigM sync.Mutex
}

// Option configures optional server features.
type Option func(*Server)

// WithWatch enables the inbox management endpoints. cfg and configPath are
// used to persist inbox changes back to the config file; configPath may be
// empty to skip persistence.
func WithWatch(w *watcher.Watcher, cfg *config.Config, configPath string) Option {
	return func(s *Server) {
		s.watch = w
		s.fullConfig = cfg
		s.configPath = configPath
	}
}

// NewServer creates a server with the given dependencies.
func NewServer(
	engine *search.Engine,
	idx *indexer.Indexer,
	st storage.Storage,
	cfg *config.ServerConfig,
	logger *zap.Logger,
	opts ...Option,
) *Server {
	s := &Server{
		engine:  engine,
		indexer: idx,
		storage: st,
		config:  cfg,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the chi router with all API routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/search", s.handleSearch)
	r.Post("/api/v1/applicants", s.handleIndexApplicant)
	r.Get("/api/v1/applicants", s.handleListApplicants)
	r.Get("/api/v1/applicants/{id}", s.handleGetApplicant)
	r.Delete("/api/v1/applicants/{id}", s.handleDeleteApplicant)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/api/v1/inboxes", s.handleInboxList)
	r.Post("/api/v1/inboxes", s.handleInboxAdd)
	r.Delete("/api/v1/inboxes", s.handleInboxRemove)
	r.Get("/health", s.handleHealth)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
