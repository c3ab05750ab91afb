// ABOUTME: CLI command for browsing the metric catalog.
// ABOUTME: Lists metrics by group with canonical units and stored sample counts.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/healthlens/internal/catalog"
	"github.com/spf13/cobra"
)

var catalogGroup string

var catalogCmd = &cobra.Command{
	Use:     "catalog",
	Aliases: []string{"metrics"},
	Short:   "List exportable metrics",
	Long: `List every exportable metric grouped by category, with its id, display
name, canonical unit, and the number of stored samples.

EXAMPLES:

  healthlens catalog                  # Every group
  healthlens catalog --group Heart    # One group
  healthlens catalog -g vital-signs   # Group slugs work too`,
	RunE: func(cmd *cobra.Command, args []string) error {
		counts, err := repo.CountSamples()
		if err != nil {
			return fmt.Errorf("failed to count samples: %w", err)
		}

		groups := cat.Groups()
		if catalogGroup != "" {
			g, ok := cat.Group(catalogGroup)
			if !ok {
				return fmt.Errorf("unknown group: %s", catalogGroup)
			}
			groups = []catalog.Group{g}
		}

		bold := color.New(color.Bold)
		faint := color.New(color.Faint)
		for i, g := range groups {
			if i > 0 {
				fmt.Println()
			}
			bold.Println(g.Name)
			for _, id := range g.Metrics {
				m, _ := cat.Lookup(id)
				count := ""
				if n := counts[id]; n > 0 {
					count = fmt.Sprintf("%d samples", n)
				}
				fmt.Printf("  %s %s %s %s\n",
					padRight(string(m.ID), 34),
					padRight(m.Name, 34),
					faint.Sprint(padRight(m.Unit, 14)),
					count)
			}
		}

		return nil
	},
}

func init() {
	catalogCmd.Flags().StringVarP(&catalogGroup, "group", "g", "", "only show this group")
	rootCmd.AddCommand(catalogCmd)
}
