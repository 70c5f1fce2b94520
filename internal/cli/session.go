// ABOUTME: Per-invocation state shared by commands
// ABOUTME: Loads config and grid, then saves, journals, syncs, and prints after changes
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/tally/internal/charm"
	"github.com/harper/tally/internal/commit"
	"github.com/harper/tally/internal/config"
	"github.com/harper/tally/internal/grid"
	"github.com/harper/tally/internal/logging"
	"github.com/harper/tally/internal/render"
	"github.com/harper/tally/internal/store"
)

type session struct {
	cfg   *config.Config
	ws    *config.Workspace
	store *store.File
	data  *grid.Data
}

func openSession() (*session, error) {
	cfg, err := config.Load(config.ConfigPath())
	if err != nil {
		return nil, err
	}

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}

	ws, err := config.Resolve(dataFile, cwd, cfg)
	if err != nil {
		return nil, err
	}
	logging.Debug("resolved workspace", "file", ws.DataFile, "project", ws.ProjectRoot)

	st := store.NewFile(ws.DataFile)
	d, err := st.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load grid: %w", err)
	}

	return &session{cfg: cfg, ws: ws, store: st, data: d}, nil
}

// commit persists the grid and records the change.
func (s *session) commit(cmd *cobra.Command, action, detail string) error {
	r := s.recorder(cmd)
	return r.Commit(s.data, action, detail)
}

func (s *session) recorder(cmd *cobra.Command) *commit.Recorder {
	return &commit.Recorder{
		Store:     s.store,
		Workspace: s.ws,
		Config:    s.cfg,
		Warn: func(msg string, err error) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s: %v\n", msg, err)
		},
	}
}

func (s *session) push() (*charm.PushMeta, error) {
	return commit.Upload(s.cfg, s.data)
}

func (s *session) renderOptions() render.Options {
	return render.Options{
		Verbose:    verbose || s.cfg.Verbose,
		Threshold:  s.cfg.HighlightThreshold,
		MaxWidth:   s.cfg.TableWidth,
		DateFormat: s.cfg.DateFormat,
	}
}

func (s *session) print(cmd *cobra.Command) error {
	return s.printWith(cmd, s.renderOptions())
}

func (s *session) printWith(cmd *cobra.Command, opts render.Options) error {
	out, err := render.Grid(s.data, opts)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

// classIndex accepts a column index or a class name.
func (s *session) classIndex(arg string) (int, error) {
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 0 || n >= len(s.data.Classes) {
			return 0, fmt.Errorf("class %d does not exist (%d classes)", n, len(s.data.Classes))
		}
		return n, nil
	}
	if x := s.data.Find(arg); x >= 0 {
		return x, nil
	}
	return 0, fmt.Errorf("no class named %q", arg)
}

// rowIndex accepts a row index or "last".
func (s *session) rowIndex(arg string) (int, error) {
	rows := s.data.Rows()
	if arg == "last" {
		if rows == 0 {
			return 0, fmt.Errorf("grid has no rows yet; add one with: tally new")
		}
		return rows - 1, nil
	}
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid row %q: use an index or 'last'", arg)
	}
	if n < 0 || n >= rows {
		return 0, fmt.Errorf("row %d does not exist (%d rows)", n, rows)
	}
	return n, nil
}

// parseValue accepts 0-255, or "-", "blank", "clear" for an unset cell.
func parseValue(arg string) (byte, error) {
	switch strings.ToLower(arg) {
	case "-", "blank", "clear":
		return grid.Blank, nil
	}
	v, err := strconv.ParseUint(arg, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q: must be 0-255", arg)
	}
	return byte(v), nil
}

// confirm asks the user to type word. It returns true without asking when skip is set.
func confirm(cmd *cobra.Command, prompt, word string, skip bool) bool {
	if skip {
		return true
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\nType '%s' to confirm: ", prompt, word)

	reader := bufio.NewReader(cmd.InOrStdin())
	answer, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false
	}
	if strings.TrimSpace(answer) != word {
		fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
		return false
	}
	return true
}

func success(cmd *cobra.Command, format string, args ...any) {
	color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), format+"\n", args...)
}

func warn(cmd *cobra.Command, format string, args ...any) {
	color.New(color.FgYellow).Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
}
