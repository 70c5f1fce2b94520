// ABOUTME: Display command for printing the grid
// ABOUTME: Supports date windows and re-rendering when the file changes
package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/araddon/dateparse"
	"github.com/spf13/cobra"

	"github.com/harper/tally/internal/render"
)

var (
	displaySince string
	displayUntil string
	displayWatch bool
)

var displayCmd = &cobra.Command{
	Use:     "display",
	Aliases: []string{"d", "disp", "show"},
	Short:   "Print the grid as a table",
	Args:    cobra.NoArgs,
	RunE:    runDisplay,
}

func runDisplay(cmd *cobra.Command, args []string) error {
	opts, err := displayWindow()
	if err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}

	view := s.renderOptions()
	view.Since, view.Until = opts.Since, opts.Until
	if err := s.printWith(cmd, view); err != nil {
		return err
	}

	if !displayWatch {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return s.store.Watch(ctx, func() {
		d, err := s.store.Load()
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to reload grid: %v\n", err)
			return
		}
		s.data = d
		fmt.Fprintf(cmd.OutOrStdout(), "\n-- %s --\n", time.Now().Format("15:04:05"))
		if err := s.printWith(cmd, view); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
		}
	})
}

func displayWindow() (render.Options, error) {
	var opts render.Options
	if displaySince != "" {
		since, err := dateparse.ParseLocal(displaySince)
		if err != nil {
			return opts, fmt.Errorf("invalid --since date: %w", err)
		}
		opts.Since = &since
	}
	if displayUntil != "" {
		until, err := dateparse.ParseLocal(displayUntil)
		if err != nil {
			return opts, fmt.Errorf("invalid --until date: %w", err)
		}
		until = endOfDay(until)
		opts.Until = &until
	}
	return opts, nil
}

// endOfDay widens a bare date to its last instant so --until includes that day.
// Times with a clock component are returned unchanged.
func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	if !t.Equal(midnight) {
		return t
	}
	return midnight.AddDate(0, 0, 1).Add(-time.Nanosecond)
}

func init() {
	displayCmd.Flags().StringVar(&displaySince, "since", "", "Only rows at or after this date")
	displayCmd.Flags().StringVar(&displayUntil, "until", "", "Only rows at or before this date (a bare date includes that whole day)")
	displayCmd.Flags().BoolVarP(&displayWatch, "watch", "w", false, "Re-print whenever the data file changes")
	rootCmd.AddCommand(displayCmd)
}
