// ABOUTME: Grid reshaping for display
// ABOUTME: Flattens classes into a value matrix and transposes it into rows
package grid

// Organize returns one slice of values per class.
func (d *Data) Organize() [][]byte {
	out := make([][]byte, 0, len(d.Classes))
	for _, c := range d.Classes {
		values := make([]byte, len(c.Entries))
		for i, e := range c.Entries {
			values[i] = e.Value
		}
		out = append(out, values)
	}
	return out
}

// Table returns the grid row-major: one slice per row, one value per class.
func (d *Data) Table() ([][]byte, error) {
	return Transpose(d.Organize())
}

// Transpose swaps rows and columns of m. Every row of m must have the same length.
func Transpose[T any](m [][]T) ([][]T, error) {
	if len(m) == 0 {
		return [][]T{}, nil
	}

	width := len(m[0])
	for _, row := range m[1:] {
		if len(row) != width {
			return nil, ErrRagged
		}
	}

	out := make([][]T, width)
	for n := range out {
		col := make([]T, len(m))
		for i, row := range m {
			col[i] = row[n]
		}
		out[n] = col
	}
	return out, nil
}
