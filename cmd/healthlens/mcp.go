// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server exposing export and sample tools.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/harperreed/healthlens/internal/mcp"
	"github.com/harperreed/healthlens/internal/usage"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout. Logs go to stderr.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "healthlens": {
        "command": "healthlens",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  export_health_data  Export metrics to CSV or XLSX
  list_metrics        List exportable metrics with sample counts
  add_sample          Record a health sample
  list_samples        List recent samples

AVAILABLE RESOURCES:

  healthlens://catalog    Metric catalog and groups
  healthlens://summary    Sample counts and recent exports`,
	RunE: func(cmd *cobra.Command, args []string) error {
		exporter, err := newExporter(usage.NewTracker(repo, logger))
		if err != nil {
			return err
		}
		loc, err := cfg.Location()
		if err != nil {
			return err
		}

		server, err := mcp.NewServer(mcp.Options{
			Repo:        repo,
			Exporter:    exporter,
			Preferences: cfg.UnitPreferences(cat),
			OutputDir:   cfg.GetOutputDir(),
			Location:    loc,
			Version:     version,
			Logger:      logger,
		})
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
