// ABOUTME: CLI command for adding health samples.
// ABOUTME: Resolves the metric from the catalog and defaults to its canonical unit.
package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/harperreed/healthlens/internal/catalog"
	"github.com/harperreed/healthlens/internal/export"
	"github.com/spf13/cobra"
)

var (
	addUnit   string
	addAt     string
	addSource string
	addNotes  string
)

var addCmd = &cobra.Command{
	Use:     "add <metric> <value>",
	Aliases: []string{"a"},
	Short:   "Add a health sample",
	Long: `Add a health sample. The metric may be its id (bodyMass) or display
name (Weight). Values are recorded in the metric's canonical unit unless
--unit is given.

Examples:
  healthlens add bodyMass 82.5
  healthlens add Weight 181 --unit lb
  healthlens add heartRate 61 --at "2024-12-14 07:00"
  healthlens add stepCount 9000 --source watch --notes "long walk"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid value: %s", args[1])
		}

		s, err := cat.NewSample(args[0], value, addUnit)
		if errors.Is(err, catalog.ErrUnknownMetric) {
			return fmt.Errorf("%w\nRun 'healthlens catalog' to see every metric", err)
		}
		if err != nil {
			return err
		}

		if addAt != "" {
			loc, err := cfg.Location()
			if err != nil {
				return err
			}
			t, err := export.ParseTime(addAt, loc)
			if err != nil {
				return fmt.Errorf("invalid timestamp: %w", err)
			}
			s.WithRecordedAt(t)
		}
		if addSource != "" {
			s.WithSource(addSource)
		}
		if addNotes != "" {
			s.WithNotes(addNotes)
		}

		if err := repo.CreateSample(s); err != nil {
			return fmt.Errorf("failed to create sample: %w", err)
		}

		color.Green("✓ Added %s", cat.Label(s.MetricID))
		fmt.Printf("  %s %.2f %s\n",
			color.New(color.Faint).Sprint(shortID(s.ID)),
			s.Value, s.Unit)

		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addUnit, "unit", "u", "", "unit symbol (default: the metric's canonical unit)")
	addCmd.Flags().StringVar(&addAt, "at", "", "timestamp (YYYY-MM-DD HH:MM)")
	addCmd.Flags().StringVar(&addSource, "source", "", "device or app that produced the value")
	addCmd.Flags().StringVar(&addNotes, "notes", "", "notes for the sample")
	rootCmd.AddCommand(addCmd)
}
