package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cybermatters/themis/pkg/service/evidence"
	"github.com/cybermatters/themis/pkg/usecase"
	"github.com/cybermatters/themis/pkg/utils/logging"
)

type Server struct {
	router   *chi.Mux
	uc       *usecase.UseCases
	evidence evidence.Service
}

type Options func(*Server)

// WithEvidence enables the evidence upload and download endpoints
func WithEvidence(svc evidence.Service) Options {
	return func(s *Server) {
		s.evidence = svc
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", registerHandler(uc))
			r.Post("/login", loginHandler(uc))
		})

		// Public framework catalog
		r.Get("/frameworks", frameworksHandler(uc))

		// Tenant-scoped routes require a valid session whose tenant matches
		// the hash in the URL
		r.Route("/t/{tenantHash}", func(r chi.Router) {
			r.Use(authMiddleware(uc))
			r.Use(tenantMiddleware(uc))

			r.Get("/dashboard", dashboardHandler(uc))
			r.Get("/frameworks", tenantFrameworksHandler(uc))
			r.Post("/frameworks/{frameworkID}/subscribe", subscribeHandler(uc))

			r.Get("/risks", listRisksHandler(uc))
			r.Post("/risks", createRiskHandler(uc))
			r.Post("/risks/assess", assessRiskHandler(uc))
			r.Get("/risks/{riskID}", getRiskHandler(uc))
			r.Get("/assessment-logs", assessmentLogsHandler(uc))

			if s.evidence != nil {
				r.Put("/risks/{riskID}/evidence/{name}", uploadEvidenceHandler(uc, s.evidence))
				r.Get("/risks/{riskID}/evidence/{name}", downloadEvidenceHandler(uc, s.evidence))
			}
		})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
