// Package server exposes the generators over HTTP using gin.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	_ "github.com/lehigh-university-libraries/zotero-xml/format/dublincore"
	_ "github.com/lehigh-university-libraries/zotero-xml/format/mods"
	"github.com/lehigh-university-libraries/zotero-xml/internal/config"
)

// ServiceName identifies the server in traces.
const ServiceName = "zotero-xml"

// Server wraps http.Server with a gin engine and graceful shutdown.
type Server struct {
	engine     *gin.Engine
	httpServer *http.Server
	config     config.ServerConfig
	logger     *slog.Logger
}

// New builds a server with every route registered. Metrics are registered
// on reg; pass prometheus.NewRegistry() in tests.
func New(cfg config.ServerConfig, logger *slog.Logger, reg *prometheus.Registry) *Server {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	// Forwarding headers count only from configured proxies.
	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Error("invalid trusted proxies, trusting none", "error", err)
		_ = engine.SetTrustedProxies(nil)
	}
	setupRouter(engine, routerConfig{
		logger:       logger,
		metrics:      newMetrics(reg),
		registry:     reg,
		maxBodyBytes: cfg.MaxBodyBytes,
		rateLimit:    cfg.RateLimit,
		rateBurst:    cfg.RateBurst,
	})

	return &Server{
		engine: engine,
		httpServer: &http.Server{
			Addr:         cfg.Addr(),
			Handler:      engine,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		config: cfg,
		logger: logger,
	}
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start serves in the background. The returned channel receives a listen
// error, if any, and is closed when the server stops.
func (s *Server) Start() <-chan error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("starting HTTP server",
			slog.String("addr", s.httpServer.Addr),
			slog.Int64("max_body_bytes", s.config.MaxBodyBytes),
		)

		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server error: %w", err)
		}

		close(errCh)
	}()

	return errCh
}

// Shutdown waits for in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}

	s.logger.Info("HTTP server stopped")
	return nil
}
