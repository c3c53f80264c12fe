package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"synack/internal/archive"
	"synack/internal/observability"
)

// Server exposes the decoder over HTTP: a decode endpoint, the archive
// (when configured), health, and metrics.
type Server struct {
	httpServer *http.Server
	router     *mux.Router
	logger     *slog.Logger
	metrics    *observability.Metrics

	// store is nil when archiving is disabled; the archive endpoints
	// then answer 404.
	store *archive.Store
}

// New assembles the router and middleware chain.
func New(addr string, store *archive.Store, metrics *observability.Metrics, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		router:  mux.NewRouter(),
		logger:  logger.With("component", "server"),
		metrics: metrics,
		store:   store,
	}

	s.router.Use(s.requestID, s.logging)

	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	v1 := s.router.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/decode", s.instrument("decode", s.handleDecode)).Methods(http.MethodPost)
	v1.HandleFunc("/reports", s.instrument("reports", s.handleListReports)).Methods(http.MethodGet)
	v1.HandleFunc("/reports/{id}", s.instrument("report", s.handleGetReport)).Methods(http.MethodGet)

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Router exposes the handler tree, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start serves until Shutdown or a listener error.
func (s *Server) Start() error {
	s.logger.Info("http server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server shutting down")
	return s.httpServer.Shutdown(ctx)
}
