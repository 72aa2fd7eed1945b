// Package web provides the HTTP server and handlers for the profile form.
package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/JonMunkholm/profiles/internal/config"
	"github.com/JonMunkholm/profiles/internal/core"
	"github.com/JonMunkholm/profiles/internal/metrics"
	webmw "github.com/JonMunkholm/profiles/internal/web/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// contentSecurityPolicy allows the HTMX bundle from unpkg and images served
// by this process.
const contentSecurityPolicy = "default-src 'self'; script-src 'self' https://unpkg.com; " +
	"style-src 'self' 'unsafe-inline'; img-src 'self' data:; font-src 'self'; form-action 'self'"

// Server is the HTTP server for the profile form.
type Server struct {
	cfg      *config.Config
	sessions *core.SessionManager
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
	limiter  *webmw.RateLimiter
	uploads  *core.UploadLimiter

	router *chi.Mux
	server *http.Server
}

// NewServer creates a Server. gatherer backs /metrics; nil selects the
// default registry.
func NewServer(cfg *config.Config, sessions *core.SessionManager, m *metrics.Metrics, gatherer prometheus.Gatherer) *Server {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	s := &Server{
		cfg:      cfg,
		sessions: sessions,
		metrics:  m,
		gatherer: gatherer,
		uploads:  core.NewUploadLimiter(cfg.Upload.MaxConcurrent, cfg.Upload.MaxWait),
		router:   chi.NewRouter(),
	}
	if cfg.Rate.Enabled {
		s.limiter = webmw.NewRateLimiter(cfg.Rate.RequestsPerMinute, cfg.Rate.Burst)
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(webmw.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(webmw.Logger("/healthz", "/metrics"))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))
	s.router.Use(s.securityHeaders)
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Probes
	s.router.Get("/healthz", s.handleHealth)
	s.router.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	s.router.Group(func(r chi.Router) {
		if s.limiter != nil {
			r.Use(s.limiter.Middleware(s.rejectRateLimited))
		}

		// Form mount: a missing session is created
		r.With(s.openSession).Get("/", s.handleFormPage)

		// Reads: without a session they render empty state
		r.Group(func(r chi.Router) {
			r.Use(s.attachSession)

			r.Get("/profiles", s.handleProfiles)
			r.Get("/images/{handle}", s.handleImage)

			r.Route("/api", func(r chi.Router) {
				r.Get("/records", s.handleListRecords)
				r.Get("/countries", s.handleListCountries)
			})
		})

		// Form events: the session must exist
		r.Group(func(r chi.Router) {
			r.Use(s.requireSession)

			r.With(s.limitUploads).Post("/form/validate", s.handleValidateField)
			r.With(s.limitUploads).Post("/form/submit", s.handleSubmit)
			r.Post("/form/cancel", s.handleCancelEdit)

			r.Post("/records/{id}/edit", s.handleEditRecord)
			r.Post("/records/{id}/delete", s.handleDeleteRecord)

			r.Post("/table/next", s.handleNextPage)
			r.Post("/table/prev", s.handlePrevPage)

			r.Post("/profiles", s.handleViewProfiles)
		})
	})
}

// Start begins listening for HTTP requests. It returns http.ErrServerClosed
// after Shutdown.
func (s *Server) Start() error {
	slog.Info("server listening", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server and waits for in-flight picture
// uploads.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	if err := s.uploads.WaitForDrain(ctx); err != nil {
		slog.Warn("uploads still active at shutdown", "active", s.uploads.Active())
		return err
	}
	return nil
}

// RunMaintenance runs the rate limiter's visitor cleanup until ctx is
// cancelled. It returns at once when rate limiting is disabled.
func (s *Server) RunMaintenance(ctx context.Context) {
	if s.limiter == nil {
		return
	}
	s.limiter.StartCleanup(ctx, time.Minute)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// securityHeaders adds security headers to all responses.
func (s *Server) securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		if s.cfg.Security.EnableCSP {
			w.Header().Set("Content-Security-Policy", contentSecurityPolicy)
		}
		next.ServeHTTP(w, r)
	})
}

// limitUploads holds an upload slot while a multipart body is handled.
func (s *Server) limitUploads(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			next.ServeHTTP(w, r)
			return
		}
		if err := s.uploads.Acquire(r.Context()); err != nil {
			s.fail(w, r, err)
			return
		}
		defer s.uploads.Release()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) rejectRateLimited(w http.ResponseWriter, r *http.Request, err error) {
	s.respondError(w, r, err, http.StatusTooManyRequests)
}

// writeJSON encodes v as JSON with status.
// Logs encoding errors since headers are already sent.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
