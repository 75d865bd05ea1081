// Package server exposes the comparison engine as a JSON HTTP API.
//
// Routes:
//
//	GET  /health
//	GET  /api/chart               full report for the query inputs (cached)
//	GET  /api/scorecard           scorecard and comparison text
//	GET  /api/equipment/{system}  one system's inventory with stages
//	GET  /api/hybrid/options      selectable items per hybrid stage
//	POST /api/hybrid/compose      resolve a hybrid selection
//	GET  /metrics                 prometheus metrics
//
// The dataset is shared read-only by every request.
package server

import (
	"io"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/desalboard/desalboard/internal/engine"
	"github.com/desalboard/desalboard/internal/engine/cache"
	"github.com/desalboard/desalboard/internal/equipment"
)

// Options configures a Server.
type Options struct {
	// Defaults are the inputs used for query parameters that are absent.
	Defaults engine.ChartInputs
	// CacheTTLSeconds is the chart cache lifetime; 0 disables caching.
	CacheTTLSeconds int
	// CacheMaxEntries bounds the chart cache; 0 uses cache.DefaultMaxEntries.
	CacheMaxEntries int
	// AccessLog receives Apache-style access lines; nil discards them.
	AccessLog io.Writer
	Logger    zerolog.Logger
}

// Server serves the comparison API over one loaded dataset.
type Server struct {
	ds       *equipment.Dataset
	defaults engine.ChartInputs
	cache    *cache.MemoryStore
	metrics  *Metrics
	log      zerolog.Logger
	handler  http.Handler
}

// New builds a server and its routes.
func New(ds *equipment.Dataset, opts Options) (*Server, error) {
	store, err := cache.NewMemoryStore(opts.CacheTTLSeconds, opts.CacheMaxEntries)
	if err != nil {
		return nil, err
	}
	accessLog := opts.AccessLog
	if accessLog == nil {
		accessLog = io.Discard
	}

	s := &Server{
		ds:       ds,
		defaults: opts.Defaults,
		cache:    store,
		metrics:  NewMetrics(),
		log:      opts.Logger.With().Str("component", "server").Logger(),
	}

	r := mux.NewRouter()
	r.Use(s.metrics.middleware)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/chart", s.handleChart).Methods(http.MethodGet)
	r.HandleFunc("/api/scorecard", s.handleScorecard).Methods(http.MethodGet)
	r.HandleFunc("/api/equipment/{system}", s.handleEquipment).Methods(http.MethodGet)
	r.HandleFunc("/api/hybrid/options", s.handleHybridOptions).Methods(http.MethodGet)
	r.HandleFunc("/api/hybrid/compose", s.handleHybridCompose).Methods(http.MethodPost)
	r.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)

	s.handler = handlers.RecoveryHandler()(handlers.LoggingHandler(accessLog, s.requestID(r)))
	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// SweepCache drops expired chart responses and returns how many were removed.
func (s *Server) SweepCache() int {
	if !s.cache.IsEnabled() {
		return 0
	}
	n := s.cache.CleanupExpired()
	s.metrics.cacheEntries.Set(float64(s.cache.Count()))
	return n
}
