// Package server serves level cards over HTTP.
//
// Routes:
//
//	GET /healthz                          liveness and version
//	GET /api/users/{username}/card.svg    the card (?theme=, ?langs=, ?bar=false)
//	GET /api/users/{username}/card.png    the card as PNG, if rsvg-convert is installed
//	GET /api/users/{username}/stats       the card data as JSON
//	GET /metrics                          Prometheus metrics
//
// Cards are cached through the pipeline runner, so a README that embeds a
// card triggers at most one GitHub fetch per cache lifetime.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/gitlevel/pkg/pipeline"
)

// Options configures request handling.
type Options struct {
	// GitHubToken authenticates upstream requests.
	GitHubToken string

	// Theme and TopLanguages are used when a request doesn't set them.
	Theme        string
	TopLanguages int

	// CacheMaxAge is sent in Cache-Control. Zero means 30 minutes.
	CacheMaxAge time.Duration

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server renders cards on demand.
type Server struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	metrics *Metrics
	opts    Options
}

// New creates a server. A nil metrics disables /metrics.
func New(runner *pipeline.Runner, logger *log.Logger, metrics *Metrics, opts Options) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if opts.CacheMaxAge == 0 {
		opts.CacheMaxAge = 30 * time.Minute
	}
	return &Server{runner: runner, logger: logger, metrics: metrics, opts: opts}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/users/{username}", func(r chi.Router) {
		r.Get("/card.svg", s.handleCard(pipeline.FormatSVG))
		r.Get("/card.png", s.handleCard(pipeline.FormatPNG))
		r.Get("/stats", s.handleStats)
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       s.opts.ReadTimeout,
		WriteTimeout:      s.opts.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("card server listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// requestID tags each request with an X-Request-ID, reusing the caller's.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

type requestIDKey struct{}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// observe logs every request and records it in the metrics.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		if s.metrics != nil {
			s.metrics.observeRequest(route, status, time.Since(start))
		}
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", time.Since(start),
			"request_id", requestIDFrom(r.Context()))
	})
}
