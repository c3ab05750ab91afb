// ABOUTME: MCP server setup for the healthlens sample store and exporter.
// ABOUTME: Wraps MCP server with storage Repository and export pipeline access.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/harperreed/healthlens/internal/catalog"
	"github.com/harperreed/healthlens/internal/export"
	"github.com/harperreed/healthlens/internal/models"
	"github.com/harperreed/healthlens/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Options configures the MCP server.
type Options struct {
	Repo        storage.Repository
	Exporter    *export.Exporter
	Preferences models.UnitPreferences
	OutputDir   string
	Location    *time.Location
	Version     string
	Logger      *slog.Logger
}

// Server wraps the MCP server with storage access.
type Server struct {
	mcpServer *mcp.Server
	repo      storage.Repository
	exporter  *export.Exporter
	catalog   *catalog.Catalog
	prefs     models.UnitPreferences
	outputDir string
	location  *time.Location
	logger    *slog.Logger
}

// NewServer creates a new MCP server with the given storage.
func NewServer(opts Options) (*Server, error) {
	if opts.Repo == nil {
		return nil, errors.New("mcp server requires a repository")
	}
	if opts.Exporter == nil {
		return nil, errors.New("mcp server requires an exporter")
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "healthlens",
			Version: opts.Version,
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		repo:      opts.Repo,
		exporter:  opts.Exporter,
		catalog:   opts.Exporter.Catalog(),
		prefs:     opts.Preferences,
		outputDir: opts.OutputDir,
		location:  opts.Location,
		logger:    opts.Logger.With("component", "mcp"),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
