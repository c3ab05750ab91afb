// ABOUTME: HTTP API server exposing the catalog, sample entry, and exports.
// ABOUTME: Routes are served by chi with request logging middleware.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/harperreed/healthlens/internal/catalog"
	"github.com/harperreed/healthlens/internal/export"
	"github.com/harperreed/healthlens/internal/models"
	"github.com/harperreed/healthlens/internal/storage"
)

// Options configures the HTTP server.
type Options struct {
	Repo        storage.Repository
	Exporter    *export.Exporter
	Preferences models.UnitPreferences
	Location    *time.Location
	Logger      *slog.Logger
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	repo     storage.Repository
	exporter *export.Exporter
	catalog  *catalog.Catalog
	prefs    models.UnitPreferences
	location *time.Location
	log      *slog.Logger
	router   chi.Router
}

// New creates a new Server with all routes configured.
func New(opts Options) *Server {
	s := &Server{
		repo:     opts.Repo,
		exporter: opts.Exporter,
		catalog:  opts.Exporter.Catalog(),
		prefs:    opts.Preferences,
		location: opts.Location,
		log:      opts.Logger,
		router:   chi.NewRouter(),
	}
	if s.location == nil {
		s.location = time.Local
	}
	if s.log == nil {
		s.log = slog.New(slog.DiscardHandler)
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Get("/healthz", s.handleHealthz)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/catalog", s.handleCatalog)
		r.Get("/export", s.handleExport)
		r.Get("/exports", s.handleExportHistory)
		r.Get("/samples", s.handleListSamples)
		r.Post("/samples", s.handleCreateSample)
	})
}
