// ABOUTME: Snapshot exports of the grid
// ABOUTME: Writes JSON documents and one-row-per-timestamp CSV files
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/harper/tally/internal/grid"
)

// Formats lists the supported export formats.
var Formats = []string{"json", "csv", "sqlite"}

// JSON writes the grid as indented JSON.
func JSON(w io.Writer, d *grid.Data) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return nil
}

// CSV writes a header of class names, then one line per row.
// Blank cells are left empty.
func CSV(w io.Writer, d *grid.Data) error {
	rows, err := d.Table()
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)

	header := make([]string, 0, len(d.Classes)+1)
	header = append(header, "timestamp")
	for _, c := range d.Classes {
		header = append(header, c.Name)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for n, row := range rows {
		record := make([]string, 0, len(row)+1)
		record = append(record, d.Classes[0].Entries[n].Timestamp.Format(time.RFC3339))
		for _, v := range row {
			if v == grid.Blank {
				record = append(record, "")
				continue
			}
			record = append(record, strconv.Itoa(int(v)))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
