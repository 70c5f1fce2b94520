// ABOUTME: Tests for global config loading and data file resolution
// ABOUTME: Covers defaults, overrides, and precedence between sources
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("missing file returns defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(tmpDir, "nope.toml"))
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := filepath.Join(tmpDir, "config.toml")
		content := `
data_file = "/srv/tally.toml"
highlight_threshold = 80
table_width = 0
verbose = true
auto_sync = true
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "/srv/tally.toml", cfg.DataFile)
		assert.Equal(t, uint8(80), cfg.HighlightThreshold)
		assert.Equal(t, 0, cfg.TableWidth)
		assert.Equal(t, "2006-01-02", cfg.DateFormat)
		assert.True(t, cfg.Verbose)
		assert.True(t, cfg.AutoSync)
	})

	t.Run("invalid file is an error", func(t *testing.T) {
		path := filepath.Join(tmpDir, "bad.toml")
		require.NoError(t, os.WriteFile(path, []byte("highlight_threshold = 300\n"), 0o600))

		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestResolve(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	t.Setenv("XDG_DATA_HOME", filepath.Join(tmpDir, "data"))
	t.Setenv("TALLY_DATA_FILE", "")

	plain := filepath.Join(tmpDir, "plain")
	require.NoError(t, os.MkdirAll(plain, 0o755))

	project := filepath.Join(tmpDir, "work", "habits")
	nested := filepath.Join(project, "sub")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(project, ProjectFile), []byte("journal = true\n"), 0o600))

	t.Run("falls back to XDG default", func(t *testing.T) {
		ws, err := Resolve("", plain, Default())
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(tmpDir, "data", "tally", "tally.toml"), ws.DataFile)
		assert.Empty(t, ws.JournalDir())
	})

	t.Run("config data_file expands home", func(t *testing.T) {
		cfg := Default()
		cfg.DataFile = "~/grid.toml"
		ws, err := Resolve("", plain, cfg)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(tmpDir, "grid.toml"), ws.DataFile)
	})

	t.Run("project file wins over config", func(t *testing.T) {
		cfg := Default()
		cfg.DataFile = "/elsewhere.toml"
		ws, err := Resolve("", nested, cfg)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(project, "tally.toml"), ws.DataFile)
		assert.Equal(t, filepath.Join(project, "journal"), ws.JournalDir())
	})

	t.Run("env wins over project", func(t *testing.T) {
		t.Setenv("TALLY_DATA_FILE", "/env.toml")
		ws, err := Resolve("", nested, Default())
		require.NoError(t, err)
		assert.Equal(t, "/env.toml", ws.DataFile)
	})

	t.Run("flag wins over everything", func(t *testing.T) {
		t.Setenv("TALLY_DATA_FILE", "/env.toml")
		ws, err := Resolve("/flag.toml", nested, Default())
		require.NoError(t, err)
		assert.Equal(t, "/flag.toml", ws.DataFile)
	})
}
