package rest

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/clearcomply/contract-compliance-backend/internal/infrastructure/config"
	"github.com/clearcomply/contract-compliance-backend/internal/metrics"
)

// Server is the HTTP front for the compliance engine.
type Server struct {
	config     *config.Config
	logger     *zap.Logger
	httpServer *http.Server
}

// NewServer assembles the mux, middleware chain and http.Server.
func NewServer(cfg *config.Config, logger *zap.Logger, handler *Handler, m *metrics.Metrics, gatherer prometheus.Gatherer) *Server {
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	chained := Chain(mux,
		RequestIDMiddleware(),
		LoggingMiddleware(logger),
		MetricsMiddleware(m),
		RecoveryMiddleware(logger),
		RateLimitMiddleware(cfg.Server.RateLimit.RequestsPerSecond, cfg.Server.RateLimit.Burst),
	)

	return &Server{
		config: cfg,
		logger: logger,
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:      chained,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}
}

// Run starts the server and blocks until SIGINT/SIGTERM, then shuts down
// gracefully within the configured timeout.
func (s *Server) Run() error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		s.logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
