package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/wonny/pulseboard/backend/internal/api/handlers"
	"github.com/wonny/pulseboard/backend/pkg/config"
	"github.com/wonny/pulseboard/backend/pkg/logger"
)

// maxHeaderBytes caps request headers; bodies are capped per route by API_MAX_BODY_BYTES.
const maxHeaderBytes = 64 << 10

// Server is the analysis API: router, middleware and http.Server limits
// all come from one config.
// ⭐ SSOT: API 서버 설정은 이 파일에서만
type Server struct {
	httpServer *http.Server
	logger     *logger.Logger
	config     *config.Config
}

// New composes the router and wraps it in an http.Server. metrics may be nil.
func New(cfg *config.Config, analysis *handlers.AnalysisHandler, metrics *Metrics, log *logger.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           NewRouter(cfg, analysis, metrics, log),
			ReadHeaderTimeout: cfg.API.ReadTimeout,
			ReadTimeout:       cfg.API.ReadTimeout,
			WriteTimeout:      cfg.API.WriteTimeout,
			IdleTimeout:       cfg.API.IdleTimeout,
			MaxHeaderBytes:    maxHeaderBytes,
		},
		logger: log,
		config: cfg,
	}
}

// Handler returns the composed router with middleware.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run serves until ctx is cancelled, then drains in-flight requests for at
// most API_SHUTDOWN_TIMEOUT.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}

	s.logger.WithFields(map[string]interface{}{
		"addr":          ln.Addr().String(),
		"env":           s.config.Env,
		"max_body":      s.config.API.MaxBodyBytes,
		"write_timeout": s.config.API.WriteTimeout.String(),
	}).Info("Starting API server")

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.API.ShutdownTimeout)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
