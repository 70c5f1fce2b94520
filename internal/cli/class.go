// ABOUTME: Class commands for adding, renaming, and removing columns
// ABOUTME: New classes start blank in every existing row
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var removeClassSkip bool

var newClassCmd = &cobra.Command{
	Use:     "new-class <name>",
	Aliases: []string{"nc"},
	Short:   "Add a class (column)",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}

		c, err := s.data.NewBlankClass(args[0])
		if err != nil {
			return err
		}
		if err := s.commit(cmd, "new-class", c.Name); err != nil {
			return err
		}

		return s.print(cmd)
	},
}

var renameCmd = &cobra.Command{
	Use:     "rename <from> <into>",
	Aliases: []string{"r"},
	Short:   "Rename every class called <from>",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}

		n, err := s.data.Rename(args[0], args[1])
		if err != nil {
			return err
		}
		if n == 0 {
			warn(cmd, "No class named %q", args[0])
		} else if err := s.commit(cmd, "rename", fmt.Sprintf("%s -> %s", args[0], args[1])); err != nil {
			return err
		}

		return s.print(cmd)
	},
}

var removeClassCmd = &cobra.Command{
	Use:     "remove-class <class>",
	Aliases: []string{"rc"},
	Short:   "Delete a class and all its values",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}

		x, err := s.classIndex(args[0])
		if err != nil {
			return err
		}

		prompt := fmt.Sprintf("This will delete class %q and all of its values.", s.data.Classes[x].Name)
		if !confirm(cmd, prompt, "yes", removeClassSkip) {
			return nil
		}

		removed, err := s.data.RemoveClass(x)
		if err != nil {
			return err
		}
		if err := s.commit(cmd, "remove-class", removed.Name); err != nil {
			return err
		}

		return s.print(cmd)
	},
}

func init() {
	removeClassCmd.Flags().BoolVarP(&removeClassSkip, "yes", "y", false, "Skip confirmation")
	rootCmd.AddCommand(newClassCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(removeClassCmd)
}
