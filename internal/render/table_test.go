// ABOUTME: Tests for table rendering
// ABOUTME: Checks labels, blank markers, row windows, and width limits
package render

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harper/tally/internal/grid"
)

var day = time.Date(2026, 10, 1, 12, 0, 0, 0, time.Local)

func sample(t *testing.T) *grid.Data {
	t.Helper()
	d := &grid.Data{}
	for _, n := range []string{"run", "read"} {
		_, err := d.NewBlankClass(n)
		require.NoError(t, err)
	}
	require.NoError(t, d.NewBlankRow(day))
	require.NoError(t, d.NewBlankRow(day.AddDate(0, 0, 1)))
	require.NoError(t, d.Set(0, 0, 97))
	require.NoError(t, d.Set(1, 1, 12))
	return d
}

func TestGridIndices(t *testing.T) {
	out, err := Grid(sample(t), Options{Threshold: 95})
	require.NoError(t, err)

	assert.Contains(t, out, BlankCell)
	assert.Contains(t, out, "97")
	assert.Contains(t, out, "12")
	assert.NotContains(t, out, "run")
	assert.NotContains(t, out, "2026-10-01")

	lines := strings.Split(out, "\n")
	require.Greater(t, len(lines), 4)
	assert.Equal(t, 2, strings.Count(out, BlankCell))
}

func TestGridVerbose(t *testing.T) {
	out, err := Grid(sample(t), Options{Verbose: true, DateFormat: "2006-01-02"})
	require.NoError(t, err)

	assert.Contains(t, out, "run")
	assert.Contains(t, out, "read")
	assert.Contains(t, out, "2026-10-01")
	assert.Contains(t, out, "2026-10-02")
}

func TestGridWindow(t *testing.T) {
	since := day.Add(time.Hour)
	out, err := Grid(sample(t), Options{Verbose: true, Since: &since})
	require.NoError(t, err)

	assert.NotContains(t, out, "2026-10-01")
	assert.Contains(t, out, "2026-10-02")

	until := day
	out, err = Grid(sample(t), Options{Verbose: true, Until: &until})
	require.NoError(t, err)
	assert.Contains(t, out, "2026-10-01")
	assert.NotContains(t, out, "2026-10-02")
}

func TestGridEmpty(t *testing.T) {
	out, err := Grid(&grid.Data{}, Options{})
	require.NoError(t, err)
	assert.Equal(t, EmptyHint, out)
}

func TestGridRagged(t *testing.T) {
	d := sample(t)
	d.Classes[1].Entries = d.Classes[1].Entries[:1]

	_, err := Grid(d, Options{})
	assert.ErrorIs(t, err, grid.ErrRagged)
}

func TestGridMaxWidth(t *testing.T) {
	d := &grid.Data{}
	for i := 0; i < 12; i++ {
		_, err := d.NewBlankClass("a-rather-long-class-name")
		require.NoError(t, err)
	}
	require.NoError(t, d.NewBlankRow(day))

	wide, err := Grid(d, Options{Verbose: true})
	require.NoError(t, err)
	assert.Greater(t, widest(wide), 80)

	narrow, err := Grid(d, Options{Verbose: true, MaxWidth: 80})
	require.NoError(t, err)
	for _, line := range strings.Split(narrow, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 80)
	}
}

func TestStats(t *testing.T) {
	d := sample(t)
	out := Stats(d.Stats(), 0)

	assert.Contains(t, out, "streak")
	assert.Contains(t, out, "run")
	assert.Contains(t, out, "97.0")
	assert.Contains(t, out, "12.0")

	assert.Equal(t, EmptyHint, Stats(nil, 0))
}

func TestFormatValue(t *testing.T) {
	assert.Contains(t, formatValue(grid.Blank, 95), BlankCell)
	assert.Contains(t, formatValue(95, 95), "95")
	assert.Equal(t, "94", formatValue(94, 95))
	assert.Equal(t, "200", formatValue(200, 0))
}
