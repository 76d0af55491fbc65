// Package server runs the HTTP backend with graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

// Config for the HTTP server.
type Config struct {
	Host string
	Port int
}

// Runner manages the HTTP server lifecycle.
type Runner struct {
	config  Config
	handler http.Handler
	logger  *slog.Logger
}

// NewRunner creates a new runner.
func NewRunner(cfg Config, handler http.Handler, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		config:  cfg,
		handler: handler,
		logger:  logger,
	}
}

// Run serves HTTP until the context is canceled, then shuts down gracefully.
func (r *Runner) Run(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", r.config.Host, r.config.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: r.handler,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		r.logger.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		r.logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
