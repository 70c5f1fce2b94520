// ABOUTME: Tests for project .tally file detection
// ABOUTME: Validates directory walking and config parsing
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindProjectRoot(t *testing.T) {
	tmpDir := t.TempDir()

	projectRoot := filepath.Join(tmpDir, "project")
	subDir := filepath.Join(projectRoot, "src", "deep", "nested")
	_ = os.MkdirAll(subDir, 0755) //nolint:gosec // Test directory permissions

	tallyFile := filepath.Join(projectRoot, ProjectFile)
	_ = os.WriteFile(tallyFile, []byte("journal = true\n"), 0644) //nolint:gosec // Test file permissions

	t.Run("finds project root from nested directory", func(t *testing.T) {
		root, err := FindProjectRoot(subDir)
		if err != nil {
			t.Fatalf("FindProjectRoot failed: %v", err)
		}
		if root != projectRoot {
			t.Errorf("got %s, want %s", root, projectRoot)
		}
	})

	t.Run("returns empty when no .tally found", func(t *testing.T) {
		otherDir := filepath.Join(tmpDir, "other")
		_ = os.MkdirAll(otherDir, 0755) //nolint:gosec // Test directory permissions

		root, err := FindProjectRoot(otherDir)
		if err != nil {
			t.Fatalf("FindProjectRoot failed: %v", err)
		}
		if root != "" {
			t.Errorf("got %s, want empty string", root)
		}
	})
}

func TestLoadProjectConfig(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("reads all fields", func(t *testing.T) {
		configContent := `
data_file = "habits.toml"
journal = true
journal_dir = "notes"
journal_format = "json"
`
		configPath := filepath.Join(tmpDir, ProjectFile)
		_ = os.WriteFile(configPath, []byte(configContent), 0644) //nolint:gosec // Test file permissions

		cfg, err := LoadProjectConfig(configPath)
		if err != nil {
			t.Fatalf("LoadProjectConfig failed: %v", err)
		}

		if cfg.DataFile != "habits.toml" {
			t.Errorf("got DataFile %s, want habits.toml", cfg.DataFile)
		}
		if !cfg.Journal {
			t.Error("expected Journal to be true")
		}
		if cfg.JournalDir != "notes" {
			t.Errorf("got JournalDir %s, want notes", cfg.JournalDir)
		}
		if cfg.JournalFormat != "json" {
			t.Errorf("got JournalFormat %s, want json", cfg.JournalFormat)
		}
	})

	t.Run("empty file keeps defaults", func(t *testing.T) {
		configPath := filepath.Join(tmpDir, "empty.tally")
		_ = os.WriteFile(configPath, nil, 0644) //nolint:gosec // Test file permissions

		cfg, err := LoadProjectConfig(configPath)
		if err != nil {
			t.Fatalf("LoadProjectConfig failed: %v", err)
		}
		if cfg.DataFile != "tally.toml" || cfg.JournalDir != "journal" || cfg.JournalFormat != "markdown" {
			t.Errorf("unexpected defaults: %+v", cfg)
		}
	})
}
