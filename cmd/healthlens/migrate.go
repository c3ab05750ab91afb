// ABOUTME: CLI command for copying data between storage backends.
// ABOUTME: Moves samples, export history, and usage settings from the active backend to another.
package main

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/harperreed/healthlens/internal/config"
	"github.com/harperreed/healthlens/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateTo    string
	migrateDest  string
	migrateForce bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy data to another storage backend",
	Long: `Copy every sample, export record, and usage setting from the active
backend into another one.

The destination must be empty unless --force is given. The source is left
untouched; switch backends afterwards by setting backend in config.yaml.

EXAMPLES:

  healthlens migrate --to badger
  healthlens --backend badger migrate --to sqlite
  healthlens migrate --to sqlite --dest /mnt/backup/healthlens`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dest := cfg.GetDataDir()
		if migrateDest != "" {
			dest = config.ExpandPath(migrateDest)
		}
		if migrateTo == cfg.GetBackend() && dest == cfg.GetDataDir() {
			return fmt.Errorf("source and destination are the same %s store", migrateTo)
		}

		if migrateTo == config.BackendBadger && !migrateForce {
			used, err := storage.IsDirNonEmpty(filepath.Join(dest, "badger"))
			if err != nil {
				return err
			}
			if used {
				return fmt.Errorf("destination %s already exists (use --force to merge)", filepath.Join(dest, "badger"))
			}
		}

		dst, err := config.OpenBackend(migrateTo, dest, logger)
		if err != nil {
			return fmt.Errorf("failed to open destination: %w", err)
		}
		defer func() { _ = dst.Close() }()

		if !migrateForce {
			empty, err := isEmpty(dst)
			if err != nil {
				return err
			}
			if !empty {
				return fmt.Errorf("destination %s store in %s already has data (use --force to merge)", migrateTo, dest)
			}
		}

		summary, err := storage.MigrateData(repo, dst)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		color.Green("✓ Migrated %s → %s", cfg.GetBackend(), migrateTo)
		fmt.Printf("  %d samples, %d exports, %d settings\n", summary.Samples, summary.Exports, summary.Settings)

		return nil
	},
}

func isEmpty(r storage.Repository) (bool, error) {
	counts, err := r.CountSamples()
	if err != nil {
		return false, fmt.Errorf("failed to inspect destination: %w", err)
	}
	if len(counts) > 0 {
		return false, nil
	}
	exports, err := r.ListExports(1)
	if err != nil {
		return false, fmt.Errorf("failed to inspect destination: %w", err)
	}
	return len(exports) == 0, nil
}

func init() {
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "destination backend: sqlite or badger")
	migrateCmd.Flags().StringVar(&migrateDest, "dest", "", "destination data directory (default: the configured data dir)")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "copy even if the destination has data")
	_ = migrateCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(migrateCmd)
}
