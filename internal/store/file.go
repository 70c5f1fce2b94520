// ABOUTME: TOML file persistence for the grid
// ABOUTME: Loads, saves atomically, and streams the human-readable data file
package store

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"github.com/harper/tally/internal/grid"
	"github.com/harper/tally/internal/logging"
)

// File is a grid stored in a single TOML document.
type File struct {
	path string
}

// NewFile returns a store for path. Nothing is read until Load.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the data file location.
func (f *File) Path() string {
	return f.path
}

// Load reads the grid. A missing file yields an empty grid.
func (f *File) Load() (*grid.Data, error) {
	r, err := os.Open(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Debug("data file missing, starting empty", "path", f.path)
			return &grid.Data{}, nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", f.path, err)
	}
	defer r.Close()

	d, err := Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", f.path, err)
	}

	logging.Debug("loaded grid", "path", f.path, "classes", len(d.Classes), "rows", d.Rows())
	if err := d.Validate(); err != nil {
		logging.Warn("grid rows are not aligned", "path", f.path, "err", err)
	}
	return d, nil
}

// Save writes the grid through a temp file renamed over the target.
func (f *File) Save(d *grid.Data) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0755); err != nil { //nolint:gosec // Standard directory permissions for user data
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, d); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if info, err := os.Stat(f.path); err == nil {
		if err := tmp.Chmod(info.Mode().Perm()); err != nil {
			_ = tmp.Close()
			return fmt.Errorf("failed to set mode on %s: %w", tmp.Name(), err)
		}
	}

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", f.path, err)
	}

	logging.Debug("saved grid", "path", f.path, "bytes", buf.Len())
	return nil
}

// Encode writes d as TOML.
func Encode(w io.Writer, d *grid.Data) error {
	enc := toml.NewEncoder(w)
	enc.Indent = "  "
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("failed to encode grid: %w", err)
	}
	return nil
}

// Decode reads a TOML grid and gives ids to classes that lack one.
func Decode(r io.Reader) (*grid.Data, error) {
	var d grid.Data
	if _, err := toml.NewDecoder(r).Decode(&d); err != nil {
		return nil, err
	}

	for i := range d.Classes {
		if d.Classes[i].ID == "" {
			d.Classes[i].ID = uuid.New().String()
		}
	}
	return &d, nil
}
