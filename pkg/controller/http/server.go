package http

import (
	"context"
	"encoding/json"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hashtags-tool/hashdash/frontend"
	"github.com/hashtags-tool/hashdash/pkg/domain/interfaces"
	"github.com/hashtags-tool/hashdash/pkg/utils/apperr"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Server represents the HTTP server
type Server struct {
	*http.Server
	router      chi.Router
	dashboardUC interfaces.Dashboard
	templates   *template.Template
	baseURL     string
}

// Option configures Server
type Option func(*Server)

// WithBaseURL sets the public URL used in share links. When empty it is
// derived from the request headers.
func WithBaseURL(baseURL string) Option {
	return func(s *Server) {
		s.baseURL = baseURL
	}
}

// NewServer creates a new HTTP server
func NewServer(ctx context.Context, addr string, dashboardUC interfaces.Dashboard, opts ...Option) (*Server, error) {
	if dashboardUC == nil {
		return nil, goerr.New("dashboard use case is required")
	}

	templates, err := frontend.Templates()
	if err != nil {
		return nil, err
	}
	assets, err := frontend.GetHTTPFS()
	if err != nil {
		return nil, err
	}

	router := chi.NewRouter()
	server := &Server{
		Server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
		router:      router,
		dashboardUC: dashboardUC,
		templates:   templates,
	}
	for _, opt := range opts {
		opt(server)
	}

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	router.Get("/health", handleHealth)

	router.Get("/", server.handleIndex)
	router.Get("/search", server.handleSearch)
	router.Get("/hashtags/search/{tag}", server.handleOpenDashboard)

	router.Route("/dashboard/{session}", func(r chi.Router) {
		r.Get("/", server.handleShowDashboard)
		r.Get("/time", server.handleSelectView)
		r.Get("/charts/{chart}", server.handleChart)
	})

	router.Handle("/static/*", http.StripPrefix("/static", NewStaticHandler(assets)))

	return server, nil
}

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "hashdash",
	}); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode health response", "error", err)
	}
}

// writeError maps err to an HTTP status and writes a plain text response.
// Server side failures are logged through apperr.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.StatusCode(err)
	if status >= http.StatusInternalServerError {
		apperr.Handle(r.Context(), err)
	} else {
		ctxlog.From(r.Context()).Debug("request rejected", "status", status, "error", err)
	}
	http.Error(w, http.StatusText(status), status)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		apperr.Handle(r.Context(), goerr.Wrap(err, "failed to render page", goerr.V("template", name)))
	}
}
