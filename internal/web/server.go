// Package web serves the portfolio over HTTP.
package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Zolinad/dsportfolio/internal/portfolio"
)

// Server routes page, API, health and metrics requests to the shared App.
type Server struct {
	router *mux.Router
	server *http.Server
	app    *portfolio.App
	tmpl   *template.Template
	log    *zap.SugaredLogger
}

// NewServer parses the templates and registers routes.
func NewServer(app *portfolio.App, log *zap.SugaredLogger) (*Server, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	s := &Server{router: mux.NewRouter(), app: app, tmpl: tmpl, log: log}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.Use(s.recoverMiddleware)
	s.router.Use(s.loggingMiddleware)

	s.router.HandleFunc("/", s.index).Methods("GET")
	s.router.HandleFunc("/pages/{slug}", s.page).Methods("GET")
	s.router.HandleFunc("/api/pages", s.listPages).Methods("GET")
	s.router.HandleFunc("/api/pages/{slug}", s.pageJSON).Methods("GET")
	s.router.HandleFunc("/healthz", s.healthCheck).Methods("GET")
	s.router.Handle("/metrics", promhttp.Handler())
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Start listens on addr until Stop is called.
func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.log.Infow("http server listening", "addr", addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop drains in-flight requests.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
