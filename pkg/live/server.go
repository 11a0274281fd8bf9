package live

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/minivue/pkg/metrics"
	"github.com/vango-dev/minivue/pkg/runtime"
	"github.com/vango-dev/minivue/pkg/vdom"
)

// Resolver returns the root component and props for an app name. It
// returns an error for unknown names.
type Resolver func(name string) (*runtime.Component, vdom.Props, error)

// Config configures a Server.
type Config struct {
	// Logger receives server and session logs. Default: slog.Default().
	Logger *slog.Logger

	// Collector records session, event and scheduler metrics. Optional.
	Collector *metrics.Collector

	// Gatherer is served at MetricsPath. Optional.
	Gatherer prometheus.Gatherer

	// MetricsPath is the metrics route (default: "/metrics").
	MetricsPath string

	// QueueSize is the task buffer of each session loop.
	QueueSize int

	// MaxMessageSize limits client frames in bytes.
	MaxMessageSize int64

	// ReadTimeout closes idle connections. Clients keep the session alive
	// with ping frames. Zero disables it.
	ReadTimeout time.Duration

	// WriteTimeout bounds each frame write.
	WriteTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration

	// CheckOrigin validates the Origin header of upgrade requests.
	// Default: same-origin only.
	CheckOrigin func(r *http.Request) bool
}

// DefaultConfig returns the default server configuration.
func DefaultConfig() *Config {
	return &Config{
		Logger:          slog.Default(),
		MetricsPath:     "/metrics",
		QueueSize:       256,
		MaxMessageSize:  64 * 1024,
		ReadTimeout:     60 * time.Second,
		WriteTimeout:    10 * time.Second,
		ShutdownTimeout: 5 * time.Second,
	}
}

// Option configures a Server.
type Option func(*Config)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		if l != nil {
			c.Logger = l
		}
	}
}

// WithMetrics records metrics in collector and serves gatherer.
func WithMetrics(collector *metrics.Collector, gatherer prometheus.Gatherer) Option {
	return func(c *Config) {
		c.Collector = collector
		c.Gatherer = gatherer
	}
}

// WithMetricsPath sets the metrics route.
func WithMetricsPath(path string) Option {
	return func(c *Config) {
		c.MetricsPath = path
	}
}

// WithQueueSize sets the per-session task buffer.
func WithQueueSize(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.QueueSize = n
		}
	}
}

// WithReadTimeout sets the idle read timeout.
func WithReadTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.ReadTimeout = d
	}
}

// WithCheckOrigin sets the upgrade origin check.
func WithCheckOrigin(fn func(r *http.Request) bool) Option {
	return func(c *Config) {
		c.CheckOrigin = fn
	}
}

// Server accepts live sessions.
type Server struct {
	resolve  Resolver
	config   *Config
	logger   *slog.Logger
	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions map[string]*Session
	wg       sync.WaitGroup
}

// New creates a server resolving app names with resolve.
func New(resolve Resolver, opts ...Option) *Server {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(config)
	}
	return &Server{
		resolve: resolve,
		config:  config,
		logger:  config.Logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     config.CheckOrigin,
		},
		sessions: make(map[string]*Session),
	}
}

// Handler returns the HTTP routes:
//
//	GET /healthz      liveness and session count
//	GET /ws/{app}     live session for app
//	GET /metrics      Prometheus metrics, when a gatherer is set
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/ws/{app}", s.handleSession)
	if s.config.Gatherer != nil && s.config.MetricsPath != "" {
		r.Handle(s.config.MetricsPath, promhttp.HandlerFor(s.config.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// Sessions returns the IDs of connected sessions, sorted.
func (s *Server) Sessions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully and closes every session.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("live server starting", "address", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	s.Close()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("shutdown error", "error", err)
		return err
	}
	s.logger.Info("server shutdown complete")
	return nil
}

// Close ends every session and waits for them to finish.
func (s *Server) Close() {
	s.mu.Lock()
	for _, sess := range s.sessions {
		sess.Close()
	}
	s.mu.Unlock()
	s.wg.Wait()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	n := len(s.sessions)
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"status": "ok", "sessions": n})
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "app")
	comp, props, err := s.resolve(name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	sess := newSession(context.Background(), uuid.NewString(), name, conn, comp, props, s.config)
	s.register(sess)
	defer s.unregister(sess)

	sess.logger.Info("session opened")
	if err := sess.serve(); err != nil {
		sess.logger.Warn("session ended", "error", err)
		return
	}
	sess.logger.Info("session closed")
}

func (s *Server) register(sess *Session) {
	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.wg.Add(1)
	s.mu.Unlock()
	if s.config.Collector != nil {
		s.config.Collector.SessionOpened()
	}
}

func (s *Server) unregister(sess *Session) {
	s.mu.Lock()
	delete(s.sessions, sess.id)
	s.mu.Unlock()
	if s.config.Collector != nil {
		s.config.Collector.SessionClosed()
	}
	s.wg.Done()
}
