// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"math"
)

// Table is a country-by-year grid of scalar values.
// Rows are keyed by country code, columns by year. NaN encodes "no data".
type Table struct {
	codes  []string
	years  []int
	rowIdx map[string]int
	colIdx map[int]int
	names  map[string]string
	cells  [][]float64
}

// NewTable creates a table with every cell set to "no data".
// Duplicate codes or years keep their first position.
func NewTable(codes []string, years []int) *Table {
	t := &Table{
		rowIdx: make(map[string]int, len(codes)),
		colIdx: make(map[int]int, len(years)),
		names:  make(map[string]string),
	}
	for _, c := range codes {
		if _, ok := t.rowIdx[c]; ok {
			continue
		}
		t.rowIdx[c] = len(t.codes)
		t.codes = append(t.codes, c)
	}
	for _, y := range years {
		if _, ok := t.colIdx[y]; ok {
			continue
		}
		t.colIdx[y] = len(t.years)
		t.years = append(t.years, y)
	}
	t.cells = make([][]float64, len(t.codes))
	for i := range t.cells {
		row := make([]float64, len(t.years))
		for j := range row {
			row[j] = math.NaN()
		}
		t.cells[i] = row
	}
	return t
}

// Codes returns the row codes in table order.
func (t *Table) Codes() []string {
	out := make([]string, len(t.codes))
	copy(out, t.codes)
	return out
}

// Years returns the column years in table order.
func (t *Table) Years() []int {
	out := make([]int, len(t.years))
	copy(out, t.years)
	return out
}

// Has reports whether code is a row of the table.
func (t *Table) Has(code string) bool {
	_, ok := t.rowIdx[code]
	return ok
}

// HasYear reports whether year is a column of the table.
func (t *Table) HasYear(year int) bool {
	_, ok := t.colIdx[year]
	return ok
}

// Get returns the value at (code, year). ok is false when the cell is
// absent or holds "no data".
func (t *Table) Get(code string, year int) (float64, bool) {
	i, ok := t.rowIdx[code]
	if !ok {
		return math.NaN(), false
	}
	j, ok := t.colIdx[year]
	if !ok {
		return math.NaN(), false
	}
	v := t.cells[i][j]
	return v, !math.IsNaN(v)
}

// Set stores v at (code, year). Passing NaN marks the cell as "no data".
func (t *Table) Set(code string, year int, v float64) error {
	i, ok := t.rowIdx[code]
	if !ok {
		return fmt.Errorf("%w: row %s", ErrNoCell, code)
	}
	j, ok := t.colIdx[year]
	if !ok {
		return fmt.Errorf("%w: column %d", ErrNoCell, year)
	}
	t.cells[i][j] = v
	return nil
}

// Column returns a copy of the year column in row order.
func (t *Table) Column(year int) ([]float64, bool) {
	j, ok := t.colIdx[year]
	if !ok {
		return nil, false
	}
	col := make([]float64, len(t.codes))
	for i := range t.codes {
		col[i] = t.cells[i][j]
	}
	return col, true
}

// SetColumn overwrites the year column. vals must be in row order.
func (t *Table) SetColumn(year int, vals []float64) error {
	j, ok := t.colIdx[year]
	if !ok {
		return fmt.Errorf("%w: column %d", ErrNoCell, year)
	}
	if len(vals) != len(t.codes) {
		return fmt.Errorf("%w: column %d has %d rows, got %d values", ErrShape, year, len(t.codes), len(vals))
	}
	for i, v := range vals {
		t.cells[i][j] = v
	}
	return nil
}

// SetName attaches a display name to a row.
func (t *Table) SetName(code, name string) {
	if _, ok := t.rowIdx[code]; ok {
		t.names[code] = name
	}
}

// Name returns the display name attached to a row, if any.
func (t *Table) Name(code string) (string, bool) {
	n, ok := t.names[code]
	return n, ok
}

// Select returns a new table restricted to the rows whose code is in keep
// (original row order preserved) and to exactly the given years, in that
// order. Every requested year must be a column of t.
func (t *Table) Select(keep []string, years []int) (*Table, error) {
	set := make(map[string]struct{}, len(keep))
	for _, c := range keep {
		set[c] = struct{}{}
	}
	for _, y := range years {
		if _, ok := t.colIdx[y]; !ok {
			return nil, fmt.Errorf("%w: %d", ErrMissingYear, y)
		}
	}
	var codes []string
	for _, c := range t.codes {
		if _, ok := set[c]; ok {
			codes = append(codes, c)
		}
	}
	out := NewTable(codes, years)
	for _, c := range out.codes {
		i := t.rowIdx[c]
		oi := out.rowIdx[c]
		for oj, y := range out.years {
			out.cells[oi][oj] = t.cells[i][t.colIdx[y]]
		}
		if n, ok := t.names[c]; ok {
			out.names[c] = n
		}
	}
	return out, nil
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	out := NewTable(t.codes, t.years)
	for i := range t.cells {
		copy(out.cells[i], t.cells[i])
	}
	for k, v := range t.names {
		out.names[k] = v
	}
	return out
}
