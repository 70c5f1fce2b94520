// ABOUTME: Text table rendering of the grid
// ABOUTME: Rows are timestamps, columns are classes, blanks flagged in red
package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/harper/tally/internal/grid"
)

// BlankCell is shown for unset values.
const BlankCell = "[!]"

// EmptyHint is printed instead of a table when there are no classes.
const EmptyHint = "No classes yet. Add one with: tally new-class <name>"

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	blankStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	highStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

// Options controls how the grid is printed.
type Options struct {
	// Verbose labels columns with class names and rows with dates
	// instead of indices.
	Verbose    bool
	Threshold  byte
	MaxWidth   int
	DateFormat string
	Since      *time.Time
	Until      *time.Time
}

// Grid renders d as a table.
func Grid(d *grid.Data, opts Options) (string, error) {
	if len(d.Classes) == 0 {
		return EmptyHint, nil
	}

	rows, err := d.Table()
	if err != nil {
		return "", fmt.Errorf("failed to arrange grid: %w", err)
	}

	headers := make([]string, 0, len(d.Classes)+1)
	headers = append(headers, "")
	for n, c := range d.Classes {
		if opts.Verbose {
			headers = append(headers, c.Name)
		} else {
			headers = append(headers, strconv.Itoa(n))
		}
	}

	dateFormat := opts.DateFormat
	if dateFormat == "" {
		dateFormat = "2006-01-02"
	}

	cells := make([][]string, 0, len(rows))
	for n, row := range rows {
		ts := d.Classes[0].Entries[n].Timestamp
		if !inWindow(ts, opts.Since, opts.Until) {
			continue
		}

		label := strconv.Itoa(n)
		if opts.Verbose {
			label = ts.Local().Format(dateFormat)
		}

		line := make([]string, 0, len(row)+1)
		line = append(line, label)
		for _, v := range row {
			line = append(line, formatValue(v, opts.Threshold))
		}
		cells = append(cells, line)
	}

	return fit(headers, cells, opts.MaxWidth), nil
}

// Stats renders per-class statistics.
func Stats(stats []grid.ClassStats, maxWidth int) string {
	if len(stats) == 0 {
		return EmptyHint
	}

	headers := []string{"class", "set", "blank", "mean", "min", "max", "streak"}
	cells := make([][]string, 0, len(stats))
	for _, s := range stats {
		mean, low, high := "-", "-", "-"
		if s.Set > 0 {
			mean = strconv.FormatFloat(s.Mean, 'f', 1, 64)
			low = strconv.Itoa(int(s.Min))
			high = strconv.Itoa(int(s.Max))
		}
		cells = append(cells, []string{
			s.Name,
			strconv.Itoa(s.Set),
			strconv.Itoa(s.Blank),
			mean,
			low,
			high,
			strconv.Itoa(s.Streak),
		})
	}
	return fit(headers, cells, maxWidth)
}

func formatValue(v, threshold byte) string {
	switch {
	case v == grid.Blank:
		return blankStyle.Render(BlankCell)
	case threshold > 0 && v >= threshold:
		return highStyle.Render(strconv.Itoa(int(v)))
	default:
		return strconv.Itoa(int(v))
	}
}

func inWindow(ts time.Time, since, until *time.Time) bool {
	if since != nil && ts.Before(*since) {
		return false
	}
	if until != nil && ts.After(*until) {
		return false
	}
	return true
}

// fit renders at natural width and shrinks to maxWidth only when needed.
func fit(headers []string, cells [][]string, maxWidth int) string {
	out := build(headers, cells).String()
	if maxWidth > 0 && widest(out) > maxWidth {
		out = build(headers, cells).Width(maxWidth).String()
	}
	return out
}

func build(headers []string, cells [][]string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func widest(s string) int {
	w := 0
	for _, line := range strings.Split(s, "\n") {
		if lw := lipgloss.Width(line); lw > w {
			w = lw
		}
	}
	return w
}
