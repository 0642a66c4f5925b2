// Package devserver is a local, in-memory stand-in for the managed ML
// platform. It serves the same HTTP protocol the rest client speaks,
// runs "training jobs" that fit a small regressor on the uploaded
// CSVs, and serves invocations from the resulting artifact — so the
// whole pipeline can run end to end without cloud credentials.
package devserver

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/haskel/mlpipe/internal/config"
	"github.com/haskel/mlpipe/internal/devserver/middleware"
	"github.com/haskel/mlpipe/internal/platform"
)

type Server struct {
	httpServer *http.Server
	handler    http.Handler
	cfg        config.DevServerConfig
	logger     *slog.Logger
	trainDelay time.Duration

	mu        sync.RWMutex
	jobs      map[string]*job
	endpoints map[string]*endpoint
}

type job struct {
	platform.TrainingJob
	spec platform.TrainingSpec
	logs []string
}

type endpoint struct {
	platform.Endpoint
	artifact *Artifact
}

func New(cfg config.DevServerConfig, logger *slog.Logger) *Server {
	s := &Server{
		cfg:        cfg,
		logger:     logger,
		trainDelay: time.Duration(cfg.TrainDelayMS) * time.Millisecond,
		jobs:       make(map[string]*job),
		endpoints:  make(map[string]*endpoint),
	}

	s.handler = middleware.Chain(
		s.setupRoutes(),
		middleware.Recovery(logger),
		middleware.Logging(logger),
		middleware.Auth(cfg.Token, "/health"),
	)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler exposes the routed handler so tests can mount the emulator
// on an httptest server.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) Start() error {
	s.logger.Info("devserver starting", "addr", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("devserver failed: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("devserver shutting down")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /v1/training-jobs", s.handleSubmitJob)
	mux.HandleFunc("GET /v1/training-jobs/{name}", s.handleGetJob)
	mux.HandleFunc("GET /v1/training-jobs/{name}/logs", s.handleJobLogs)

	mux.HandleFunc("POST /v1/endpoints", s.handleCreateEndpoint)
	mux.HandleFunc("GET /v1/endpoints/{name}", s.handleGetEndpoint)
	mux.HandleFunc("DELETE /v1/endpoints/{name}", s.handleDeleteEndpoint)
	mux.HandleFunc("POST /v1/endpoints/{name}/invocations", s.handleInvoke)

	return mux
}
