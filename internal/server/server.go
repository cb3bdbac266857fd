package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/roach88/dq/internal/config"
	"github.com/roach88/dq/internal/metrics"
	"github.com/roach88/dq/internal/store"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Options configures a Server.
type Options struct {
	// AllowOrigin is sent as Access-Control-Allow-Origin. Defaults to "*".
	AllowOrigin string

	// Logger receives access and error logs. Defaults to slog.Default().
	Logger *slog.Logger

	// Metrics records request counts and serves /metrics. Optional.
	Metrics *metrics.Metrics

	// IDs generates request IDs. Defaults to UUIDv7Generator.
	IDs IDGenerator
}

// Server is the HTTP adapter over a guarded store.
type Server struct {
	guard       *store.Guard
	logger      *slog.Logger
	metrics     *metrics.Metrics
	allowOrigin string
	engine      *gin.Engine
}

// New creates a Server for guard. The guard must be the only path to its store.
func New(guard *store.Guard, opts Options) *Server {
	s := &Server{
		guard:       guard,
		logger:      opts.Logger,
		metrics:     opts.Metrics,
		allowOrigin: opts.AllowOrigin,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.allowOrigin == "" {
		s.allowOrigin = config.DefaultAllowOrigin
	}
	ids := opts.IDs
	if ids == nil {
		ids = UUIDv7Generator{}
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(
		requestID(ids),
		cors(s.allowOrigin),
		s.accessLog(),
		gin.CustomRecovery(s.recovered),
	)

	r.GET("/users", s.getUsers)
	r.GET("/questions", s.getAll)
	r.GET("/questions/:user/:week", s.getQuestions)
	r.POST("/questions/:user/:week", s.setQuestions)
	r.OPTIONS("/questions/:user/:week", preflight)
	r.GET("/healthz", s.healthz)
	if s.metrics != nil {
		r.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}

	s.engine = r
	return s
}

// Handler returns the server's http.Handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe listens on addr and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully, giving in-flight requests a few seconds to finish.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: readHeaderTimeout,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("http server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// accessLog writes one structured line per request and feeds request metrics.
func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()

		if s.metrics != nil {
			s.metrics.ObserveRequest(c.Request.Method, route, status)
		}
		s.logger.Debug("request",
			"request_id", requestIDFrom(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"route", route,
			"status", status,
			"duration", time.Since(start),
		)
	}
}

// recovered renders a 500 after a handler panic. A panic under the write
// guard has already poisoned it; later requests get 503.
func (s *Server) recovered(c *gin.Context, recovered any) {
	s.abortWithError(c, http.StatusInternalServerError, CodeInternal, fmt.Errorf("panic: %v", recovered))
}
