// ABOUTME: Grid model of classes and timestamped byte entries
// ABOUTME: Provides row/class creation, cell updates, renames, and removal
package grid

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Blank marks an unset cell.
const Blank byte = 255

var (
	ErrOutOfRange = errors.New("index out of range")
	ErrNoClasses  = errors.New("no classes defined")
	ErrEmptyName  = errors.New("empty class name")
	ErrRagged     = errors.New("classes have mismatched rows")
)

// Entry is a single cell: when it was recorded and its value.
type Entry struct {
	Timestamp time.Time `toml:"at" json:"at"`
	Value     byte      `toml:"value" json:"value"`
}

// IsBlank reports whether the entry holds no value.
func (e Entry) IsBlank() bool {
	return e.Value == Blank
}

// Class is a named column of entries.
type Class struct {
	ID      string  `toml:"id" json:"id"`
	Name    string  `toml:"name" json:"name"`
	Entries []Entry `toml:"entry" json:"entries"`
}

// Data is the whole grid, one Class per column.
type Data struct {
	Classes []Class `toml:"class" json:"classes"`
}

// Rows returns the number of rows, taken from the first class.
func (d *Data) Rows() int {
	if len(d.Classes) == 0 {
		return 0
	}
	return len(d.Classes[0].Entries)
}

// RowTime returns the timestamp of row y.
func (d *Data) RowTime(y int) (time.Time, error) {
	if y < 0 || y >= d.Rows() {
		return time.Time{}, ErrOutOfRange
	}
	return d.Classes[0].Entries[y].Timestamp, nil
}

// NewBlankRow appends a blank entry at ts to every class and keeps each
// class ordered by timestamp.
func (d *Data) NewBlankRow(ts time.Time) error {
	if len(d.Classes) == 0 {
		return ErrNoClasses
	}

	for i := range d.Classes {
		c := &d.Classes[i]
		c.Entries = append(c.Entries, Entry{Timestamp: ts, Value: Blank})
		sortEntries(c.Entries)
	}
	return nil
}

// NewBlankClass appends a class with one blank entry per existing row.
func (d *Data) NewBlankClass(name string) (*Class, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	entries := make([]Entry, 0, d.Rows())
	if len(d.Classes) > 0 {
		for _, e := range d.Classes[0].Entries {
			entries = append(entries, Entry{Timestamp: e.Timestamp, Value: Blank})
		}
	}

	d.Classes = append(d.Classes, Class{
		ID:      uuid.New().String(),
		Name:    name,
		Entries: entries,
	})
	return &d.Classes[len(d.Classes)-1], nil
}

// Set stores value in class x, row y.
func (d *Data) Set(x, y int, value byte) error {
	if x < 0 || x >= len(d.Classes) {
		return ErrOutOfRange
	}
	entries := d.Classes[x].Entries
	if y < 0 || y >= len(entries) {
		return ErrOutOfRange
	}
	entries[y].Value = value
	return nil
}

// Get returns the value of class x, row y.
func (d *Data) Get(x, y int) (byte, error) {
	if x < 0 || x >= len(d.Classes) {
		return 0, ErrOutOfRange
	}
	entries := d.Classes[x].Entries
	if y < 0 || y >= len(entries) {
		return 0, ErrOutOfRange
	}
	return entries[y].Value, nil
}

// Rename renames every class called from and reports how many changed.
func (d *Data) Rename(from, into string) (int, error) {
	into = strings.TrimSpace(into)
	if into == "" {
		return 0, ErrEmptyName
	}

	renamed := 0
	for i := range d.Classes {
		if d.Classes[i].Name == from {
			d.Classes[i].Name = into
			renamed++
		}
	}
	return renamed, nil
}

// Find returns the index of the first class named name, or -1.
func (d *Data) Find(name string) int {
	return slices.IndexFunc(d.Classes, func(c Class) bool {
		return c.Name == name
	})
}

// RemoveClass deletes class x.
func (d *Data) RemoveClass(x int) (Class, error) {
	if x < 0 || x >= len(d.Classes) {
		return Class{}, ErrOutOfRange
	}
	removed := d.Classes[x]
	d.Classes = slices.Delete(d.Classes, x, x+1)
	return removed, nil
}

// RemoveRow deletes row y from every class. The grid is left untouched
// when any class is too short to hold row y.
func (d *Data) RemoveRow(y int) error {
	if y < 0 || y >= d.Rows() {
		return ErrOutOfRange
	}
	for _, c := range d.Classes {
		if y >= len(c.Entries) {
			return ErrRagged
		}
	}
	for i := range d.Classes {
		c := &d.Classes[i]
		c.Entries = slices.Delete(c.Entries, y, y+1)
	}
	return nil
}

// Validate checks that every class has the same rows at the same timestamps.
func (d *Data) Validate() error {
	if len(d.Classes) == 0 {
		return nil
	}

	first := d.Classes[0].Entries
	for _, c := range d.Classes[1:] {
		if len(c.Entries) != len(first) {
			return ErrRagged
		}
		for y, e := range c.Entries {
			if !e.Timestamp.Equal(first[y].Timestamp) {
				return ErrRagged
			}
		}
	}
	return nil
}

func sortEntries(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
}
