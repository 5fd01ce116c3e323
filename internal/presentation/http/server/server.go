// Package server runs the HTTP listener for the site API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/AtRiskMedia/sitecraft-go/internal/application/container"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/sitecraft-go/internal/presentation/http/routes"
	"github.com/AtRiskMedia/sitecraft-go/pkg/config"
)

// Server owns an http.Server and its shutdown budget.
type Server struct {
	httpServer   *http.Server
	logger       *logging.ChanneledLogger
	drainTimeout time.Duration
}

// New wires the routes for appContainer behind the configured timeouts.
func New(port string, appContainer *container.Container) *Server {
	return NewWithHandler(":"+port, routes.SetupRoutes(appContainer), appContainer.Logger)
}

// NewWithHandler serves handler on addr.
func NewWithHandler(addr string, handler http.Handler, logger *logging.ChanneledLogger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadTimeout:       config.ServerReadTimeout,
			ReadHeaderTimeout: config.ServerReadTimeout,
			WriteTimeout:      config.ServerWriteTimeout,
			IdleTimeout:       config.ServerIdleTimeout,
		},
		logger:       logger,
		drainTimeout: config.ShutdownTimeout,
	}
}

// Run listens on the configured address until ctx is done, then drains
// in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run over an existing listener. It returns nil after a clean
// shutdown.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	serveErr := make(chan error, 1)
	go func() {
		s.logger.System().Info("Listening", "address", ln.Addr().String())
		serveErr <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Shutdown().Info("Draining HTTP connections", "timeout", s.drainTimeout)
	drainCtx, cancel := context.WithTimeout(context.Background(), s.drainTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(drainCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	<-serveErr
	return nil
}
