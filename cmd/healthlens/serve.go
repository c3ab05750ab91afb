// ABOUTME: CLI command for starting the HTTP API.
// ABOUTME: Serves the catalog, samples, and exports until interrupted.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/healthlens/internal/server"
	"github.com/harperreed/healthlens/internal/usage"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API.

ENDPOINTS:

  GET  /healthz
  GET  /api/v1/catalog
  GET  /api/v1/samples?metric=bodyMass&limit=20
  POST /api/v1/samples
  GET  /api/v1/export?metrics=bodyMass,height&format=xlsx&from=2024-01-01
  GET  /api/v1/exports?limit=20

EXAMPLES:

  healthlens serve
  healthlens serve --addr :9000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		exporter, err := newExporter(usage.NewTracker(repo, logger))
		if err != nil {
			return err
		}
		loc, err := cfg.Location()
		if err != nil {
			return err
		}

		addr := cfg.GetHTTPAddr()
		if serveAddr != "" {
			addr = serveAddr
		}

		srv := &http.Server{
			Addr: addr,
			Handler: server.New(server.Options{
				Repo:        repo,
				Exporter:    exporter,
				Preferences: cfg.UnitPreferences(cat),
				Location:    loc,
				Logger:      logger,
			}),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			logger.Info("http server starting", "addr", addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		color.Green("✓ Listening on http://%s", addr)

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default 127.0.0.1:8417)")
	rootCmd.AddCommand(serveCmd)
}
