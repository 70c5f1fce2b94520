// ABOUTME: Tests for MCP tool and resource handlers
// ABOUTME: Calls handlers directly against a temp data file
package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harper/tally/internal/config"
	"github.com/harper/tally/internal/grid"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return NewServer(&config.Workspace{DataFile: filepath.Join(t.TempDir(), "tally.toml")}, nil)
}

func TestMutationsAreJournaled(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	ws := &config.Workspace{
		DataFile:    filepath.Join(root, "tally.toml"),
		ProjectRoot: root,
		Project:     &config.ProjectConfig{Journal: true, JournalDir: "journal", JournalFormat: "json"},
	}
	s := NewServer(ws, nil)

	_, _, err := s.handleNewClass(ctx, nil, NewClassInput{Name: "stretch"})
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Join(root, "journal"))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	content, err := os.ReadFile(filepath.Join(root, "journal", entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(content), `"action":"new-class"`)
	assert.Contains(t, string(content), `"detail":"stretch"`)
}

func TestToolFlow(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t)

	_, classOut, err := s.handleNewClass(ctx, nil, NewClassInput{Name: "run"})
	require.NoError(t, err)
	assert.Equal(t, 0, classOut.Index)
	assert.NotEmpty(t, classOut.ID)

	_, _, err = s.handleNewClass(ctx, nil, NewClassInput{Name: "read"})
	require.NoError(t, err)

	at := time.Date(2026, 10, 16, 7, 0, 0, 0, time.UTC)
	_, rowOut, err := s.handleNewRow(ctx, nil, NewRowInput{At: at.Format(time.RFC3339)})
	require.NoError(t, err)
	assert.Equal(t, 0, rowOut.Row)

	result, setOut, err := s.handleSetValue(ctx, nil, SetValueInput{Class: "read", Value: 96})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 0, setOut.Row)

	d, err := s.store.Load()
	require.NoError(t, err)
	v, err := d.Get(1, 0)
	require.NoError(t, err)
	assert.Equal(t, byte(96), v)

	_, showOut, err := s.handleShowGrid(ctx, nil, ShowGridInput{Verbose: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"run", "read"}, showOut.Classes)
	assert.Equal(t, 1, showOut.Rows)
	assert.Contains(t, showOut.Table, "96")
	assert.Contains(t, showOut.Table, "[!]")

	_, renameOut, err := s.handleRenameClass(ctx, nil, RenameClassInput{From: "run", Into: "jog"})
	require.NoError(t, err)
	assert.Equal(t, 1, renameOut.Renamed)
}

func TestSetValueErrors(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t)

	_, _, err := s.handleNewClass(ctx, nil, NewClassInput{Name: "run"})
	require.NoError(t, err)

	_, _, err = s.handleSetValue(ctx, nil, SetValueInput{Class: "run", Value: 300})
	assert.ErrorContains(t, err, "out of range")

	_, _, err = s.handleSetValue(ctx, nil, SetValueInput{Class: "swim", Value: 1})
	assert.ErrorContains(t, err, "no class")

	_, _, err = s.handleSetValue(ctx, nil, SetValueInput{Class: "run", Value: 1})
	assert.ErrorContains(t, err, "does not exist")
}

func TestNewRowWithoutClasses(t *testing.T) {
	s := newTestServer(t)
	_, _, err := s.handleNewRow(context.Background(), nil, NewRowInput{})
	assert.ErrorIs(t, err, grid.ErrNoClasses)
}

func TestGridResource(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t)

	_, _, err := s.handleNewClass(ctx, nil, NewClassInput{Name: "water"})
	require.NoError(t, err)

	result, err := s.handleGrid(ctx, nil)
	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, gridURI, result.Contents[0].URI)

	var d grid.Data
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &d))
	require.Len(t, d.Classes, 1)
	assert.Equal(t, "water", d.Classes[0].Name)

	stats, err := s.handleStats(ctx, nil)
	require.NoError(t, err)
	assert.Contains(t, stats.Contents[0].Text, `"name": "water"`)
}
