package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sii-nl/buscador/internal/core/search"
	"github.com/sii-nl/buscador/internal/shell/api"
	"github.com/sii-nl/buscador/internal/shell/dataset"
	"github.com/sii-nl/buscador/internal/shell/messages"
	"github.com/sii-nl/buscador/internal/shell/metrics"
)

// =============================================================================
// Exit Codes
// =============================================================================

const (
	ExitSuccess         = 0
	ExitConfigError     = 1
	ExitDatasetError    = 2
	ExitLogError        = 3
	ExitHTTPServerError = 4
)

// =============================================================================
// Server
// =============================================================================

// Server represents the search application server.
type Server struct {
	config     *Config
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer loads the dataset and builds the HTTP server.
func NewServer(ctx context.Context, cfg *Config, logger *slog.Logger) (*Server, error) {
	format, err := dataset.ParseFormat(cfg.Dataset.Format)
	if err != nil {
		return nil, &ServerError{Op: "NewServer", Err: err, ExitCode: ExitConfigError}
	}

	table, err := dataset.Load(ctx, cfg.Dataset.Path, dataset.Options{
		Format: format,
		Sheet:  cfg.Dataset.Sheet,
	})
	if err != nil {
		return nil, &ServerError{Op: "NewServer", Err: err, ExitCode: ExitDatasetError}
	}
	logger.Info("dataset loaded",
		"path", cfg.Dataset.Path,
		"records", table.Len(),
	)

	msgs, err := messages.Load(cfg.Messages.File, cfg.Messages.Locale)
	if err != nil {
		return nil, &ServerError{Op: "NewServer", Err: err, ExitCode: ExitConfigError}
	}

	mode, err := api.ParseResponseMode(cfg.Response.Mode)
	if err != nil {
		return nil, &ServerError{Op: "NewServer", Err: err, ExitCode: ExitConfigError}
	}

	var m *metrics.Metrics
	metricsPath := ""
	if cfg.Metrics.Enabled {
		m = metrics.New()
		m.SetDatasetRecords(table.Len())
		metricsPath = cfg.Metrics.Path
	}

	handler := api.SetupAPI(api.APIConfig{
		Search: api.HandlerConfig{
			Service:         search.NewService(table, search.Options{MaxPageSize: cfg.Search.MaxPageSize}),
			Messages:        msgs,
			Mode:            mode,
			DefaultPageSize: cfg.Search.DefaultPageSize,
		},
		Metrics:     m,
		MetricsPath: metricsPath,
		Version:     Version,
		Logger:      logger,
	})

	httpServer := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return &Server{
		config:     cfg,
		httpServer: httpServer,
		logger:     logger,
	}, nil
}

// Handler returns the server's root handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start starts the server and blocks until shutdown.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return &ServerError{Op: "Start", Err: err, ExitCode: ExitHTTPServerError}
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until a shutdown signal arrives, ctx is cancelled
// or the server fails.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server",
			"address", ln.Addr().String())
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case sig := <-sigCh:
		s.logger.Info("received shutdown signal", "signal", sig)
	case err := <-errCh:
		return &ServerError{
			Op:       "Start",
			Err:      err,
			ExitCode: ExitHTTPServerError,
		}
	case <-ctx.Done():
		s.logger.Info("context cancelled")
	}

	return s.Shutdown(context.Background())
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("initiating graceful shutdown")

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
	}

	s.logger.Info("shutdown complete")
	return nil
}

// =============================================================================
// Server Error
// =============================================================================

// ServerError represents an error during server operation.
type ServerError struct {
	Op       string
	Err      error
	ExitCode int
}

func (e *ServerError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *ServerError) Unwrap() error {
	return e.Err
}
