package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/randalmurphal/scope/internal/auth"
)

// Server is the scope API server.
type Server struct {
	addr    string
	mux     *http.ServeMux
	handler http.Handler
	logger  *slog.Logger

	store  Store
	tokens *auth.TokenService

	corsOrigin      string
	adminEndpoints  bool
	shutdownTimeout time.Duration
}

// Config holds server configuration.
type Config struct {
	Addr   string
	Logger *slog.Logger

	// Store and Tokens are required.
	Store  Store
	Tokens *auth.TokenService

	// CORSOrigin is sent as Access-Control-Allow-Origin (default "*").
	CORSOrigin string

	// AdminEndpoints registers the unauthenticated schema endpoints.
	AdminEndpoints bool

	// ShutdownTimeout bounds request draining on shutdown (default 5s).
	ShutdownTimeout time.Duration
}

// New creates a new API server.
func New(cfg *Config) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("api: nil config")
	}
	if cfg.Store == nil {
		return nil, errors.New("api: store is required")
	}
	if cfg.Tokens == nil {
		return nil, errors.New("api: token service is required")
	}

	// Ensure logger is never nil
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	origin := cfg.CORSOrigin
	if origin == "" {
		origin = "*"
	}
	shutdownTimeout := cfg.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 5 * time.Second
	}

	s := &Server{
		addr:            cfg.Addr,
		mux:             http.NewServeMux(),
		logger:          logger,
		store:           cfg.Store,
		tokens:          cfg.Tokens,
		corsOrigin:      origin,
		adminEndpoints:  cfg.AdminEndpoints,
		shutdownTimeout: shutdownTimeout,
	}

	s.registerRoutes()
	s.handler = s.requestLogger(s.recoverer(s.cors(s.mux)))
	return s, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// StartContext listens on the configured address and serves until ctx is
// cancelled, then drains in-flight requests. It returns once the server has
// fully stopped.
func (s *Server) StartContext(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	server := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("starting API server", "addr", ln.Addr().String())
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down API server", "timeout", s.shutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
