// ABOUTME: Global config.toml loading and data file resolution
// ABOUTME: Applies defaults, env overrides, and project-local settings
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds user-wide settings from config.toml.
type Config struct {
	DataFile           string `toml:"data_file" json:"data_file"`
	HighlightThreshold uint8  `toml:"highlight_threshold" json:"highlight_threshold"`
	TableWidth         int    `toml:"table_width" json:"table_width"`
	DateFormat         string `toml:"date_format" json:"date_format"`
	Verbose            bool   `toml:"verbose" json:"verbose"`
	CharmHost          string `toml:"charm_host" json:"charm_host"`
	AutoSync           bool   `toml:"auto_sync" json:"auto_sync"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		HighlightThreshold: 95,
		TableWidth:         80,
		DateFormat:         "2006-01-02",
	}
}

// Load reads the config file at path over the defaults.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if cfg.DateFormat == "" {
		cfg.DateFormat = Default().DateFormat
	}
	if cfg.TableWidth < 0 {
		cfg.TableWidth = 0
	}
	return cfg, nil
}

// Workspace is where the grid for the current invocation lives.
type Workspace struct {
	DataFile    string
	ProjectRoot string
	Project     *ProjectConfig
}

// JournalDir returns the absolute journal directory, or "" when journaling is off.
func (w *Workspace) JournalDir() string {
	if w.Project == nil || !w.Project.Journal {
		return ""
	}
	if filepath.IsAbs(w.Project.JournalDir) {
		return w.Project.JournalDir
	}
	return filepath.Join(w.ProjectRoot, w.Project.JournalDir)
}

// Resolve picks the data file in order: explicit flag, TALLY_DATA_FILE,
// a .tally project above cwd, config data_file, then the XDG default.
func Resolve(flagFile, cwd string, cfg *Config) (*Workspace, error) {
	ws := &Workspace{}

	root, err := FindProjectRoot(cwd)
	if err != nil {
		return nil, fmt.Errorf("failed to search for %s: %w", ProjectFile, err)
	}
	if root != "" {
		project, err := LoadProjectConfig(filepath.Join(root, ProjectFile))
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", ProjectFile, err)
		}
		ws.ProjectRoot = root
		ws.Project = project
	}

	switch {
	case flagFile != "":
		ws.DataFile = flagFile
	case os.Getenv("TALLY_DATA_FILE") != "":
		ws.DataFile = os.Getenv("TALLY_DATA_FILE")
	case ws.Project != nil && ws.Project.DataFile != "":
		ws.DataFile = ws.Project.DataFile
		if !filepath.IsAbs(ws.DataFile) {
			ws.DataFile = filepath.Join(root, ws.DataFile)
		}
	case cfg != nil && cfg.DataFile != "":
		ws.DataFile = expandHome(cfg.DataFile)
	default:
		ws.DataFile = DefaultDataFile()
	}

	return ws, nil
}

func expandHome(path string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(os.Getenv("HOME"), path[2:])
	}
	return path
}
