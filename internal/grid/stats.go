// ABOUTME: Per-class summary statistics
// ABOUTME: Counts, averages, extremes, and current streak of set cells
package grid

// ClassStats summarises one class, ignoring blank cells.
type ClassStats struct {
	Name   string  `json:"name"`
	Set    int     `json:"set"`
	Blank  int     `json:"blank"`
	Mean   float64 `json:"mean"`
	Min    byte    `json:"min"`
	Max    byte    `json:"max"`
	Streak int     `json:"streak"`
}

// Stats computes ClassStats for every class in order.
func (d *Data) Stats() []ClassStats {
	out := make([]ClassStats, 0, len(d.Classes))
	for _, c := range d.Classes {
		out = append(out, classStats(c))
	}
	return out
}

func classStats(c Class) ClassStats {
	s := ClassStats{Name: c.Name}

	var sum int
	for _, e := range c.Entries {
		if e.IsBlank() {
			s.Blank++
			continue
		}
		if s.Set == 0 || e.Value < s.Min {
			s.Min = e.Value
		}
		if e.Value > s.Max {
			s.Max = e.Value
		}
		sum += int(e.Value)
		s.Set++
	}
	if s.Set > 0 {
		s.Mean = float64(sum) / float64(s.Set)
	}

	// streak counts back from the latest row
	for i := len(c.Entries) - 1; i >= 0; i-- {
		if c.Entries[i].IsBlank() {
			break
		}
		s.Streak++
	}
	return s
}
