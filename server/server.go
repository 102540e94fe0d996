// Package server serves the lookup page, CSV exports and a small JSON API.
package server

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"investor-lookup/services"
	"investor-lookup/utils"
)

//go:embed templates/*
var embeddedFiles embed.FS

// RepositorySource hands out the in-memory repository.
type RepositorySource interface {
	Repository(ctx context.Context) (*services.Repository, error)
}

// Server is the HTTP front end.
type Server struct {
	router    *chi.Mux
	source    RepositorySource
	templates *template.Template
	logger    *utils.Logger
}

// New creates a Server reading from source.
func New(source RepositorySource, logger *utils.Logger) (*Server, error) {
	funcMap := template.FuncMap{
		"sgd": services.FormatSGD,
		"idr": services.FormatIDR,
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("server: parse templates: %w", err)
	}

	s := &Server{
		router:    chi.NewRouter(),
		source:    source,
		templates: templates,
		logger:    logger,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleIndex)

	s.router.Get("/export/profile.csv", s.handleProfileCSV)
	s.router.Get("/export/investors.csv", s.handleInvestorsCSV)

	s.router.Get("/api/lookup", s.handleAPILookup)
	s.router.Get("/api/snapshot", s.handleAPISnapshot)

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	s.router.Handle("/metrics", promhttp.Handler())
}

// lookupService fetches the repository, answering 500 itself on failure.
func (s *Server) lookupService(w http.ResponseWriter, r *http.Request) (*services.LookupService, bool) {
	repo, err := s.source.Repository(r.Context())
	if err != nil {
		s.logger.Error("[server] Repository unavailable: %v", err)
		http.Error(w, "data is not available", http.StatusInternalServerError)
		return nil, false
	}
	return services.NewLookupService(repo, s.logger), true
}

func (s *Server) renderTemplate(w http.ResponseWriter, name string, data interface{}) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Error("[server] Template error: %v", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("[server] Encode response: %v", err)
	}
}

func writeCSV(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	_, _ = w.Write(data)
}
