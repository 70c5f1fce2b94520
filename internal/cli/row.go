// ABOUTME: Row commands for starting and removing timestamped rows
// ABOUTME: New rows are blank in every class; --at backdates them
package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	"github.com/spf13/cobra"

	"github.com/harper/tally/internal/grid"
)

var (
	newRowAt      string
	removeRowSkip bool
)

var newRowCmd = &cobra.Command{
	Use:     "new",
	Aliases: []string{"n"},
	Short:   "Add a blank row to every class",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		at := time.Now()
		if newRowAt != "" {
			parsed, err := dateparse.ParseLocal(newRowAt)
			if err != nil {
				return fmt.Errorf("invalid --at date: %w", err)
			}
			at = parsed
		}

		s, err := openSession()
		if err != nil {
			return err
		}

		if err := s.data.NewBlankRow(at); err != nil {
			if errors.Is(err, grid.ErrNoClasses) {
				return fmt.Errorf("%w: add one with: tally new-class <name>", err)
			}
			return err
		}

		if err := s.commit(cmd, "new", at.Format(time.RFC3339)); err != nil {
			return err
		}

		return s.print(cmd)
	},
}

var removeRowCmd = &cobra.Command{
	Use:     "remove-row <row>",
	Aliases: []string{"rr"},
	Short:   "Delete a row from every class",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}

		y, err := s.rowIndex(args[0])
		if err != nil {
			return err
		}
		at, _ := s.data.RowTime(y)

		prompt := fmt.Sprintf("This will delete row %d (%s) from every class.", y, at.Local().Format(s.cfg.DateFormat))
		if !confirm(cmd, prompt, "yes", removeRowSkip) {
			return nil
		}

		if err := s.data.RemoveRow(y); err != nil {
			return err
		}
		if err := s.commit(cmd, "remove-row", fmt.Sprintf("row %d (%s)", y, at.Format(time.RFC3339))); err != nil {
			return err
		}

		return s.print(cmd)
	},
}

func init() {
	newRowCmd.Flags().StringVar(&newRowAt, "at", "", "Row timestamp (ISO or common date formats) instead of now")
	removeRowCmd.Flags().BoolVarP(&removeRowSkip, "yes", "y", false, "Skip confirmation")
	rootCmd.AddCommand(newRowCmd)
	rootCmd.AddCommand(removeRowCmd)
}
