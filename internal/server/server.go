// Package server exposes the measurement engine and the map provider
// over HTTP. The JSON field names are part of a frozen wire contract
// with the browser frontend, so they stay in Polish even though the
// code is not.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Veraticus/gable/internal/common"
	"github.com/Veraticus/gable/internal/geoportal"
	"github.com/Veraticus/gable/internal/roof"
)

// MapFetcher is the imagery source the map endpoint serves from.
type MapFetcher interface {
	FetchMap(ctx context.Context, req geoportal.MapRequest) (*geoportal.MapImage, error)
	DemoMap(width, height int) *geoportal.MapImage
}

// Config holds the HTTP server settings.
type Config struct {
	Host            string
	Port            int
	ShutdownTimeout time.Duration
}

// DefaultConfig returns the default server settings.
func DefaultConfig() Config {
	return Config{
		Host:            "0.0.0.0",
		Port:            5000,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", common.ErrInvalidConfig, c.Port)
	}
	return nil
}

// Server routes measurement and map requests.
type Server struct {
	analyzer *roof.Analyzer
	maps     MapFetcher
	config   Config
}

// New creates a server around the given engine and map source.
func New(analyzer *roof.Analyzer, maps MapFetcher, config Config) *Server {
	return &Server{
		analyzer: analyzer,
		maps:     maps,
		config:   config,
	}
}

// Router assembles the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/calculate", s.handleCalculate)
		r.Post("/get_map", s.handleGetMap)
		r.Get("/health", s.handleHealth)
	})

	return r
}

// Start runs the server until the context is canceled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port)),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		// get_map can stitch dozens of remote tiles before writing.
		WriteTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	slog.Info("Server listening", "addr", srv.Addr)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down cleanly: %w", err)
		}
		slog.Info("Server stopped")
		return nil
	}
}
