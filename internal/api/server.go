package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/nerrad567/knx-ga-studio/internal/infrastructure/config"
	"github.com/nerrad567/knx-ga-studio/internal/infrastructure/logging"
	"github.com/nerrad567/knx-ga-studio/internal/session"
	"github.com/nerrad567/knx-ga-studio/internal/studio"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight requests
// to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// defaultCacheSize is used when Deps.CacheSize is not positive.
const defaultCacheSize = 32

// HealthChecker is implemented by every dependency that reports health.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Deps holds the dependencies required by the API server.
type Deps struct {
	Config  config.APIConfig
	Logger  *logging.Logger
	Studio  *studio.Service
	Store   session.Store
	Version string

	// SessionTTL is the lifetime of new sessions; zero means no expiry.
	SessionTTL time.Duration

	// CacheSize bounds the resolved batch cache.
	CacheSize int

	// Checks are reported by /api/health under their map key.
	Checks map[string]HealthChecker

	// UIDir serves the editor from disk instead of the embedded copy.
	UIDir string
}

// Server is the HTTP server of the studio.
//
// It is created with New, started with Start and stopped with Close.
type Server struct {
	cfg        config.APIConfig
	logger     *logging.Logger
	studio     *studio.Service
	store      session.Store
	batches    *lru.Cache[string, *studio.Batch]
	checks     map[string]HealthChecker
	sessionTTL time.Duration
	maxUpload  int64
	version    string
	uiDir      string

	server   *http.Server
	listener net.Listener
}

// New creates a new API server with the given dependencies.
//
// The server is not started until Start() is called.
//
// Parameters:
//   - deps: Required dependencies (logger, studio service, session store)
//
// Returns:
//   - *Server: Configured server ready to start
//   - error: If required dependencies are missing
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Studio == nil {
		return nil, fmt.Errorf("studio service is required")
	}
	if deps.Store == nil {
		return nil, fmt.Errorf("session store is required")
	}

	if deps.Config.Auth.Enabled && deps.Config.Auth.Secret == "" {
		return nil, fmt.Errorf("auth secret is required when auth is enabled")
	}

	size := deps.CacheSize
	if size <= 0 {
		size = defaultCacheSize
	}
	batches, err := lru.New[string, *studio.Batch](size)
	if err != nil {
		return nil, fmt.Errorf("creating batch cache: %w", err)
	}

	maxUpload := deps.Config.MaxUploadBytes()
	if maxUpload <= 0 {
		maxUpload = defaultMaxUpload
	}

	return &Server{
		cfg:        deps.Config,
		logger:     deps.Logger,
		studio:     deps.Studio,
		store:      deps.Store,
		batches:    batches,
		checks:     deps.Checks,
		sessionTTL: deps.SessionTTL,
		maxUpload:  maxUpload,
		version:    deps.Version,
		uiDir:      deps.UIDir,
	}, nil
}

// Start binds the listener and serves requests in the background.
// Binding errors (port in use, bad host) are returned immediately.
func (s *Server) Start(_ context.Context) error {
	addr := net.JoinHostPort(s.cfg.Host, fmt.Sprint(s.cfg.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	s.listener = ln

	s.server = &http.Server{
		Handler:           s.buildRouter(),
		ReadTimeout:       s.cfg.ReadTimeout(),
		ReadHeaderTimeout: s.cfg.ReadTimeout(),
		WriteTimeout:      s.cfg.WriteTimeout(),
		IdleTimeout:       s.cfg.IdleTimeout(),
	}

	s.logger.Info("API server listening", "address", ln.Addr().String())
	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	return nil
}

// Addr returns the bound address, or "" before Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Close gracefully shuts down the API server.
//
// It waits up to 10 seconds for in-flight requests to complete,
// then forcefully closes remaining connections.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("API server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}

// HealthCheck verifies the API server is running.
func (s *Server) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("api health check: %w", ctx.Err())
	default:
	}

	if s.server == nil {
		return fmt.Errorf("api server not started")
	}
	return nil
}
