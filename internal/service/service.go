package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/replicate/request-inspector/internal/config"
	"github.com/replicate/request-inspector/internal/server"
)

var ErrNotInitialized = errors.New("service not initialized - call Initialize() first")

// Service is the root lifecycle owner for the request inspector
type Service struct {
	cfg     config.Config
	console io.Writer

	// Lifecycle state
	started         chan struct{}
	stopped         chan struct{}
	shutdown        chan struct{}
	shutdownStarted atomic.Bool

	httpServer *http.Server
	listener   net.Listener

	logger *zap.Logger
}

// New creates a new Service. Inspected requests are printed to console unless
// cfg.Quiet is set.
func New(cfg config.Config, console io.Writer, baseLogger *zap.Logger) *Service {
	return &Service{
		cfg:      cfg,
		console:  console,
		started:  make(chan struct{}),
		stopped:  make(chan struct{}),
		shutdown: make(chan struct{}),
		logger:   baseLogger.Named("service"),
	}
}

// Initialize sets up the service components (idempotent)
func (s *Service) Initialize(ctx context.Context) error {
	if s.httpServer != nil {
		return nil
	}
	if err := s.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log := s.logger.Sugar()
	log.Info("initializing HTTP server")

	var console *server.Console
	if !s.cfg.Quiet {
		console = server.NewConsole(s.console, s.logger)
	}
	h := server.NewHandler(s.cfg.MaxBodyBytes, console, s.logger)

	s.httpServer = &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           server.NewHTTPHandler(h),
		ReadTimeout:       s.cfg.ReadTimeout,
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		IdleTimeout:       s.cfg.IdleTimeout,
		BaseContext:       func(l net.Listener) context.Context { return ctx },
	}
	return nil
}

// Run binds the listener, serves, and blocks until shutdown
func (s *Service) Run(ctx context.Context) error {
	log := s.logger.Sugar()

	select {
	case <-s.started:
		log.Errorw("service already started")
		return nil
	default:
	}

	if s.httpServer == nil {
		return ErrNotInitialized
	}

	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	s.listener = ln

	log.Infow("starting service",
		"addr", ln.Addr().String(),
		"max_body_bytes", s.cfg.MaxBodyBytes,
		"quiet", s.cfg.Quiet,
	)

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		log.Info("starting HTTP server")
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		select {
		case <-s.shutdown:
			log.Info("initiating graceful shutdown")
		case <-egCtx.Done():
			log.Info("context canceled, shutting down")
			if s.shutdownStarted.CompareAndSwap(false, true) {
				close(s.shutdown)
			}
		}

		// ctx may already be done, the grace period needs a fresh deadline
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Errorw("graceful shutdown failed, closing HTTP server", "error", err)
			return s.httpServer.Close()
		}
		return nil
	})

	close(s.started)

	err = eg.Wait()

	s.stop()

	if err == nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// Shutdown initiates graceful shutdown of the service (non-blocking)
func (s *Service) Shutdown() {
	log := s.logger.Sugar()
	log.Info("shutdown requested")

	// Use atomic CAS to ensure only one shutdown
	if !s.shutdownStarted.CompareAndSwap(false, true) {
		log.Debug("already shutting down")
		return
	}

	close(s.shutdown)
}

// stop performs final cleanup after shutdown
func (s *Service) stop() {
	log := s.logger.Sugar()
	log.Info("stopping service")

	select {
	case <-s.stopped:
		log.Debug("service already stopped")
	default:
		close(s.stopped)
	}
}

// Addr returns the bound listener address, or nil before Run has bound it
func (s *Service) Addr() net.Addr {
	if !s.IsStarted() {
		return nil
	}
	return s.listener.Addr()
}

// Started is closed once the listener is bound
func (s *Service) Started() <-chan struct{} {
	return s.started
}

// IsStarted returns true if the service has been started
func (s *Service) IsStarted() bool {
	select {
	case <-s.started:
		return true
	default:
		return false
	}
}

// IsStopped returns true if the service has been stopped
func (s *Service) IsStopped() bool {
	select {
	case <-s.stopped:
		return true
	default:
		return false
	}
}

// IsRunning returns true if the service is running (started but not stopped)
func (s *Service) IsRunning() bool {
	return s.IsStarted() && !s.IsStopped()
}
