// ABOUTME: Persists grid changes for every entry point
// ABOUTME: Saves the file, appends the project journal, and auto-pushes to Charm
package commit

import (
	"fmt"
	"os"

	"github.com/harper/tally/internal/charm"
	"github.com/harper/tally/internal/config"
	"github.com/harper/tally/internal/grid"
	"github.com/harper/tally/internal/logging"
	"github.com/harper/tally/internal/store"
)

// Recorder applies the side effects of a mutation.
// Only a failed save is an error; journal and sync failures go to Warn.
type Recorder struct {
	Store     *store.File
	Workspace *config.Workspace
	Config    *config.Config

	// Push uploads the grid when auto_sync is on. Defaults to PushCharm.
	Push func(cfg *config.Config, d *grid.Data) error

	// Warn receives non-fatal failures. Defaults to the diagnostic logger.
	Warn func(msg string, err error)
}

// Commit saves d, then journals and pushes it.
func (r *Recorder) Commit(d *grid.Data, action, detail string) error {
	if err := r.Store.Save(d); err != nil {
		return fmt.Errorf("failed to save grid: %w", err)
	}

	if r.Workspace != nil {
		if dir := r.Workspace.JournalDir(); dir != "" {
			rec := logging.NewRecord(action, detail)
			if err := logging.WriteJournal(dir, r.Workspace.Project.JournalFormat, rec); err != nil {
				r.warn("failed to write journal", err)
			}
		}
	}

	if r.Config != nil && r.Config.AutoSync {
		push := r.Push
		if push == nil {
			push = PushCharm
		}
		if err := push(r.Config, d); err != nil {
			r.warn("auto-sync failed", err)
		}
	}
	return nil
}

func (r *Recorder) warn(msg string, err error) {
	if r.Warn != nil {
		r.Warn(msg, err)
		return
	}
	logging.Warn(msg, "err", err)
}

// PushCharm uploads d to the Charm host in cfg.
func PushCharm(cfg *config.Config, d *grid.Data) error {
	_, err := Upload(cfg, d)
	return err
}

// Upload pushes d to Charm and returns the push metadata.
func Upload(cfg *config.Config, d *grid.Data) (*charm.PushMeta, error) {
	c, err := charm.NewClient(charm.Config{Host: cfg.CharmHost, AutoSync: cfg.AutoSync})
	if err != nil {
		return nil, err
	}
	return c.PushGrid(d, Hostname())
}

// Hostname returns the machine name, or "unknown".
func Hostname() string {
	h, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return h
}
