// ABOUTME: Root Cobra command for healthlens CLI.
// ABOUTME: Loads config, builds the logger, and manages storage lifecycle via PersistentPre/PostRunE.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/harperreed/healthlens/internal/catalog"
	"github.com/harperreed/healthlens/internal/config"
	"github.com/harperreed/healthlens/internal/storage"
	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	cfg    *config.Config
	repo   storage.Repository
	logger *slog.Logger
	cat    = catalog.Default()

	configPath  string
	backendFlag string
	dataDirFlag string
	verbose     bool
	logFormat   string
)

// commands that never touch storage
var storageFree = map[string]bool{
	"help":       true,
	"version":    true,
	"completion": true,
}

var rootCmd = &cobra.Command{
	Use:   "healthlens",
	Short: "Health metrics store and spreadsheet exporter",
	Long: `Healthlens records health samples and exports them as CSV or XLSX.

QUICK START:

  $ healthlens add bodyMass 82.5              # Log your weight in kg
  $ healthlens add Weight 181 --unit lb       # Display names work too
  $ healthlens list                           # See recent samples
  $ healthlens catalog                        # Every exportable metric
  $ healthlens export bodyMass height         # Write height-weight.csv
  $ healthlens export --group Heart -f xlsx   # One workbook per group

UNITS:

  Each metric exports in its preferred unit. Override preferences in
  ~/.config/healthlens/config.yaml:

    units:
      bodyMass: lb
      height: in

  Use --fallback-only to ignore preferences and pick the first compatible
  unit from the built-in fallback list.

SERVERS:

  $ healthlens serve      # HTTP API on 127.0.0.1:8417
  $ healthlens mcp        # Model Context Protocol server on stdio

DATA STORAGE:

  Samples are stored in SQLite at ~/.local/share/healthlens/healthlens.db.
  Set backend: badger to use BadgerDB instead.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if storageFree[cmd.Name()] {
			return nil
		}

		var err error
		if configPath != "" {
			cfg, err = config.LoadFrom(configPath)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if backendFlag != "" {
			cfg.Backend = backendFlag
		}
		if dataDirFlag != "" {
			cfg.DataDir = dataDirFlag
		}
		if err := cfg.Validate(cat); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		logger, err = newLogger(os.Stderr, logFormat, verbose)
		if err != nil {
			return err
		}

		repo, err = cfg.OpenStorage(logger)
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		logger.Debug("storage opened", "backend", cfg.GetBackend(), "data_dir", cfg.GetDataDir())
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if repo != nil {
			err := repo.Close()
			repo = nil
			return err
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "healthlens %s\n", version)
	},
}

// newLogger builds the process logger. Logs go to w so stdout stays free
// for command output and the MCP stdio transport.
func newLogger(w io.Writer, format string, debug bool) (*slog.Logger, error) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format: %s (use text or json)", format)
	}
}

// Execute runs the root command. Storage is closed even when a command
// fails, since cobra skips PersistentPostRunE on error.
func Execute() error {
	err := rootCmd.Execute()
	if repo != nil {
		_ = repo.Close()
		repo = nil
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/healthlens/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "storage backend: sqlite or badger")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text or json")
	rootCmd.AddCommand(versionCmd)
}
