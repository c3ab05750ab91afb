// ABOUTME: CLI command for listing health samples.
// ABOUTME: Supports filtering by metric and limiting results.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/healthlens/internal/models"
	"github.com/spf13/cobra"
)

var (
	listMetric string
	listLimit  int
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List health samples",
	Long: `List recent health samples, most recent first.

OUTPUT FORMAT:

  Each line shows: ID  TIMESTAMP  METRIC  VALUE  UNIT  (NOTES)

  The ID is an 8-character prefix you can use with the delete command.

EXAMPLES:

  healthlens list                      # Show last 20 samples
  healthlens list --metric Weight      # Show only weight entries
  healthlens list -m heartRate -n 50   # Show last 50 heart rate samples`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var metric *models.MetricID
		if listMetric != "" {
			m, ok := cat.Find(listMetric)
			if !ok {
				return fmt.Errorf("unknown metric: %s", listMetric)
			}
			metric = &m.ID
		}

		samples, err := repo.ListRecent(metric, listLimit)
		if err != nil {
			return fmt.Errorf("failed to list samples: %w", err)
		}

		if len(samples) == 0 {
			fmt.Println("No samples found.")
			return nil
		}

		loc, err := cfg.Location()
		if err != nil {
			return err
		}

		faint := color.New(color.Faint)
		for _, s := range samples {
			notes := ""
			if s.Notes != nil && *s.Notes != "" {
				notes = faint.Sprintf(" (%s)", truncate(*s.Notes, 30))
			}
			fmt.Printf("%s %s %s %.2f %s%s\n",
				faint.Sprint(shortID(s.ID)),
				faint.Sprint(s.RecordedAt.In(loc).Format("2006-01-02 15:04")),
				padRight(truncate(cat.Label(s.MetricID), 28), 28),
				s.Value,
				s.Unit,
				notes)
		}

		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&listMetric, "metric", "m", "", "filter by metric id or name")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "max number of results")
	rootCmd.AddCommand(listCmd)
}
