// ABOUTME: Set command for recording a score
// ABOUTME: Addresses cells by class index or name and row index or "last"
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/tally/internal/grid"
)

var setCmd = &cobra.Command{
	Use:     "set <class> <row> <value>",
	Aliases: []string{"s"},
	Short:   "Set the value of one cell",
	Long: `Set the value of one cell.

<class> is a column index or class name, <row> is a row index or "last",
and <value> is 0-254. Use 255, "-", or "blank" to clear the cell.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := parseValue(args[2])
		if err != nil {
			return err
		}

		s, err := openSession()
		if err != nil {
			return err
		}

		x, err := s.classIndex(args[0])
		if err != nil {
			return err
		}
		y, err := s.rowIndex(args[1])
		if err != nil {
			return err
		}

		if err := s.data.Set(x, y, value); err != nil {
			return fmt.Errorf("failed to set cell (%d, %d): %w", x, y, err)
		}

		detail := fmt.Sprintf("%s[%d] = %d", s.data.Classes[x].Name, y, value)
		if value == grid.Blank {
			detail = fmt.Sprintf("%s[%d] cleared", s.data.Classes[x].Name, y)
		}
		if err := s.commit(cmd, "set", detail); err != nil {
			return err
		}

		return s.print(cmd)
	},
}

func init() {
	rootCmd.AddCommand(setCmd)
}
