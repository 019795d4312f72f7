package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/claude/liftrecap/internal/models"
	"github.com/claude/liftrecap/internal/report"
)

// Options configures request handling.
type Options struct {
	// APIKey guards the upload endpoints. Empty disables auth.
	APIKey         string
	DefaultUnits   models.Units
	MaxUploadBytes int64
	// RateLimit caps upload requests per second across all clients. Zero disables it.
	RateLimit float64
	RateBurst int
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	reports        *report.Service
	log            *slog.Logger
	apiKey         string
	defaultUnits   models.Units
	maxUploadBytes int64
	limiter        *rate.Limiter
	metrics        *Metrics
	router         chi.Router
}

// New creates a new Server with all routes configured.
func New(reports *report.Service, opts Options, log *slog.Logger) *Server {
	if opts.DefaultUnits == "" {
		opts.DefaultUnits = models.DefaultUnits
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 32 << 20
	}
	s := &Server{
		reports:        reports,
		log:            log,
		apiKey:         opts.APIKey,
		defaultUnits:   opts.DefaultUnits,
		maxUploadBytes: opts.MaxUploadBytes,
		limiter:        newLimiter(opts.RateLimit, opts.RateBurst),
		metrics:        NewMetrics(),
		router:         chi.NewRouter(),
	}
	s.routes()
	return s
}

func newLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestID)
	s.router.Use(RequestLogging(s.log))
	s.router.Use(s.metrics.Middleware)
	s.router.Use(middleware.Recoverer)
	s.router.Use(CORS)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	// Upload endpoints (API key required when configured)
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(RateLimit(s.limiter, s.log))
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/recap", s.handleRecap)
		r.Post("/years", s.handleYears)
	})
}
