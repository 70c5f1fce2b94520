// ABOUTME: Stats command for per-class summaries
// ABOUTME: Prints counts, mean, extremes, and streaks as a table or JSON
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/tally/internal/render"
)

var statsJSONOutput bool

var statsCmd = &cobra.Command{
	Use:     "stats",
	Aliases: []string{"st"},
	Short:   "Summarise each class",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}

		stats := s.data.Stats()
		if statsJSONOutput {
			data, err := json.MarshalIndent(stats, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal JSON: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout(), render.Stats(stats, s.cfg.TableWidth))
		return nil
	},
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSONOutput, "json", false, "Output as JSON")
	rootCmd.AddCommand(statsCmd)
}
