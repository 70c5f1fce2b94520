// ABOUTME: Project .tally file detection and config loading
// ABOUTME: Walks directory tree to find a project-local grid
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ProjectFile marks a directory that keeps its own grid.
const ProjectFile = ".tally"

type ProjectConfig struct {
	DataFile      string `toml:"data_file" json:"data_file"`
	Journal       bool   `toml:"journal" json:"journal"`
	JournalDir    string `toml:"journal_dir" json:"journal_dir"`
	JournalFormat string `toml:"journal_format" json:"journal_format"`
}

// FindProjectRoot walks up from dir looking for a .tally file
// Returns empty string if not found
func FindProjectRoot(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	current := absDir
	for {
		if info, err := os.Stat(filepath.Join(current, ProjectFile)); err == nil && !info.IsDir() {
			return current, nil
		}

		parent := filepath.Dir(current)

		// Stop at filesystem root or home directory
		if parent == current || current == homeDir {
			return "", nil
		}

		current = parent
	}
}

// LoadProjectConfig loads .tally config from path
func LoadProjectConfig(path string) (*ProjectConfig, error) {
	cfg := ProjectConfig{
		DataFile:      "tally.toml",
		JournalDir:    "journal",
		JournalFormat: "markdown",
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
