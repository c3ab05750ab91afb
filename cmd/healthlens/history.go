// ABOUTME: CLI command for showing recent exports.
// ABOUTME: Reads the export history kept by the usage tracker.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/healthlens/internal/usage"
	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent exports",
	Long: `Show recent exports, most recent first, followed by usage totals.

EXAMPLES:

  healthlens history
  healthlens history -n 5`,
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := repo.ListExports(historyLimit)
		if err != nil {
			return fmt.Errorf("failed to list exports: %w", err)
		}

		if len(records) == 0 {
			fmt.Println("No exports yet.")
			return nil
		}

		loc, err := cfg.Location()
		if err != nil {
			return err
		}

		faint := color.New(color.Faint)
		for _, r := range records {
			skipped := ""
			if r.Skipped > 0 {
				skipped = color.YellowString(" %d skipped", r.Skipped)
			}
			fmt.Printf("%s %s %s %s%s\n",
				faint.Sprint(r.CreatedAt.In(loc).Format("2006-01-02 15:04")),
				padRight(string(r.Format), 4),
				padRight(fmt.Sprintf("%d rows", r.Rows), 12),
				truncate(cat.Describe(r.Metrics), 60),
				skipped)
		}

		stats, err := usage.NewTracker(repo, logger).Stats()
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Printf("%d exports, %d categories exported\n", stats.TimesExported, stats.CategoriesExported)

		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "max number of results")
	rootCmd.AddCommand(historyCmd)
}
