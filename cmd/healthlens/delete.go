// ABOUTME: CLI command for deleting health samples.
// ABOUTME: Supports deletion by full ID or ID prefix.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a health sample",
	Long: `Delete a health sample by its ID or ID prefix.

You can use either the full UUID or just the first few characters (prefix).
The ID prefix is shown in the first column of 'healthlens list' output.

EXAMPLES:

  healthlens delete abc12345                # Delete by 8-char prefix
  healthlens rm abc1                        # Short prefix (if unique)

CAUTION:

  This permanently deletes the sample. There is no undo.
  If the prefix matches multiple samples, an error is returned.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		idOrPrefix := args[0]

		// Look the sample up first so we can show what was deleted
		s, err := repo.GetSample(idOrPrefix)
		if err != nil {
			return fmt.Errorf("sample not found: %s: %w", idOrPrefix, err)
		}

		if err := repo.DeleteSample(s.ID.String()); err != nil {
			return fmt.Errorf("failed to delete sample: %w", err)
		}

		color.Yellow("✗ Deleted %s", cat.Label(s.MetricID))
		fmt.Printf("  %s %.2f %s\n",
			color.New(color.Faint).Sprint(shortID(s.ID)),
			s.Value, s.Unit)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
