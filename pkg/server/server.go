package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/NVIDIA/implindex/pkg/implementors"
	"github.com/NVIDIA/implindex/pkg/index"
	"github.com/NVIDIA/implindex/pkg/logging"
)

const (
	name           = "implindexd"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Option configures a Server.
type Option func(*Server)

// WithName sets the server name reported on the root route.
func WithName(name string) Option {
	return func(s *Server) {
		s.config.Name = name
	}
}

// WithVersion sets the version reported on the root route and snapshots.
func WithVersion(version string) Option {
	return func(s *Server) {
		s.config.Version = version
	}
}

// WithHandler adds handlers. Paths taken by built-in routes are ignored.
func WithHandler(handlers map[string]http.HandlerFunc) Option {
	return func(s *Server) {
		if s.config.Handlers == nil {
			s.config.Handlers = make(map[string]http.HandlerFunc, len(handlers))
		}
		for path, h := range handlers {
			s.config.Handlers[path] = h
		}
	}
}

// WithConfig replaces the whole configuration.
func WithConfig(cfg *Config) Option {
	return func(s *Server) {
		if cfg != nil {
			s.config = cfg
		}
	}
}

// WithBoard sets the board producers publish to. Defaults to implementors.Global.
func WithBoard(board *implementors.Board) Option {
	return func(s *Server) {
		s.board = board
	}
}

// WithIndex sets the index the server attaches and serves.
func WithIndex(x *index.Index) Option {
	return func(s *Server) {
		s.index = x
	}
}

// Server exposes an index over HTTP. Until Start attaches the index to the
// board, fragments published by producers stay buffered on the board.
type Server struct {
	config      *Config
	httpServer  *http.Server
	rateLimiter *rate.Limiter
	board       *implementors.Board
	index       *index.Index
	mu          sync.RWMutex
	ready       bool
}

// New creates a server. Without options it serves implementors.Global().
func New(opts ...Option) *Server {
	s := &Server{
		config: parseConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.board == nil {
		s.board = implementors.Global()
	}
	if s.index == nil {
		s.index = index.New(index.WithVersion(s.config.Version))
	}
	if s.config.Handlers == nil {
		s.config.Handlers = make(map[string]http.HandlerFunc)
	}
	if _, ok := s.config.Handlers["/"]; !ok {
		s.config.Handlers["/"] = s.handleDefault
	}

	s.rateLimiter = rate.NewLimiter(s.config.RateLimit, s.config.RateLimitBurst)

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.config.Address, s.config.Port),
		Handler:           s.setupRoutes(),
		ReadTimeout:       s.config.ReadTimeout,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,
		ErrorLog:          logging.NewLogLogger(slog.LevelWarn, false),
	}

	return s
}

// Handler returns the root handler, for embedding and tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) setReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

// Start attaches the index to every trait on the board, which delivers
// whatever producers buffered so far, then serves until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	if err := s.attach(); err != nil {
		return err
	}

	slog.Info("server listening",
		"address", s.httpServer.Addr,
		"traits", len(s.index.Traits()))

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	case err := <-errChan:
		s.setReady(false)
		return err
	}
}

// attach makes the index the consumer for every trait on the board and
// marks the server ready.
func (s *Server) attach() error {
	if err := s.index.AttachAll(s.board); err != nil {
		return fmt.Errorf("failed to attach index: %w", err)
	}
	s.setReady(true)
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.setReady(false)

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	slog.Info("shutting down server", "timeout", s.config.ShutdownTimeout)
	return s.httpServer.Shutdown(shutdownCtx)
}

// Run starts a server with graceful shutdown on SIGINT and SIGTERM.
func Run(opts ...Option) error {
	if err := RunWithContext(context.Background(), opts...); err != nil {
		slog.Error("error running server", "error", err)
		return err
	}
	return nil
}

// RunWithContext is Run with a caller supplied parent context.
func RunWithContext(ctx context.Context, opts ...Option) error {
	server := New(opts...)
	cfg := server.config

	slog.Info("starting server",
		"name", cfg.Name,
		"version", cfg.Version,
		"commit", commit,
		"date", date)

	slog.Debug("server config",
		"address", server.httpServer.Addr,
		"rateLimit", cfg.RateLimit,
		"rateLimitBurst", cfg.RateLimitBurst,
		"cacheMaxAge", cfg.CacheMaxAge,
		"readTimeout", cfg.ReadTimeout,
		"writeTimeout", cfg.WriteTimeout,
		"idleTimeout", cfg.IdleTimeout,
		"shutdownTimeout", cfg.ShutdownTimeout,
		"mode", os.Getenv(implementors.EnvMode),
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Start(gctx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
