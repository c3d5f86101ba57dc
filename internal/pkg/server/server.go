package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/carpool/internal/pkg/logger"
)

const defaultShutdownTimeout = 10 * time.Second

type hook struct {
	name string
	fn   func(context.Context) error
}

// GracefulServer runs an echo server and tears the process down in a fixed
// order once its context ends
type GracefulServer struct {
	echo    *echo.Echo
	addr    string
	timeout time.Duration
	hooks   []hook
}

// NewGracefulServer creates a new server with graceful shutdown
func NewGracefulServer(e *echo.Echo, addr string, shutdownTimeout time.Duration) *GracefulServer {
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}
	return &GracefulServer{
		echo:    e,
		addr:    addr,
		timeout: shutdownTimeout,
	}
}

// OnShutdown registers a cleanup step. Steps run in registration order after
// the HTTP server stopped; a failing step does not stop the ones after it.
func (s *GracefulServer) OnShutdown(name string, fn func(context.Context) error) {
	s.hooks = append(s.hooks, hook{name: name, fn: fn})
}

// Run serves until ctx is done or the listener fails, then shuts down
func (s *GracefulServer) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", logger.String("address", s.addr))
		if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown requested")
	case err, ok := <-errCh:
		if ok {
			serveErr = fmt.Errorf("http server: %w", err)
			logger.Error("HTTP server failed", logger.Err(err))
		}
	}

	if err := s.Shutdown(); err != nil && serveErr == nil {
		serveErr = err
	}
	return serveErr
}

// Shutdown stops the HTTP server then runs the registered cleanup steps
func (s *GracefulServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	var shutdownErr error
	if err := s.echo.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", logger.Err(err))
		shutdownErr = fmt.Errorf("http shutdown: %w", err)
	}

	for _, h := range s.hooks {
		logger.Info("Shutting down component", logger.String("component", h.name))
		if err := h.fn(ctx); err != nil {
			logger.Error("Error during component shutdown",
				logger.String("component", h.name),
				logger.Err(err))
		}
	}

	logger.Info("Server shutdown completed")
	return shutdownErr
}
