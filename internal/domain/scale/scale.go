// Package scale normalizes year columns of a table to the unit interval.
package scale

import (
	"fmt"
	"math"

	model "github.com/okian/debtfx/internal/domain/model"
)

// MinMax returns a copy of t where each year column is independently
// remapped to (v-min)/(max-min) over its non-missing values. Missing cells
// stay missing. A column with no values fails with ErrEmptyColumn. A column
// whose values are all equal yields NaN, as the range is zero.
func MinMax(t *model.Table) (*model.Table, error) {
	out := t.Clone()
	for _, y := range out.Years() {
		col, _ := out.Column(y)
		lo, hi, ok := bounds(col)
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrEmptyColumn, y)
		}
		for i, v := range col {
			if math.IsNaN(v) {
				continue
			}
			col[i] = (v - lo) / (hi - lo)
		}
		if err := out.SetColumn(y, col); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// bounds returns the min and max of the non-NaN values.
func bounds(vals []float64) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		ok = true
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi, ok
}

// Midpoint overwrites (code, year) with the mean of the same row's values
// in year-1 and year+1. Both neighbours must hold a value.
func Midpoint(t *model.Table, code string, year int) error {
	if !t.Has(code) {
		return fmt.Errorf("%w: row %s", ErrMissingCell, code)
	}
	for _, y := range []int{year - 1, year, year + 1} {
		if !t.HasYear(y) {
			return fmt.Errorf("%w: %s %d", ErrMissingCell, code, y)
		}
	}
	before, okB := t.Get(code, year-1)
	after, okA := t.Get(code, year+1)
	if !okB || !okA {
		return fmt.Errorf("%w: %s has no value next to %d", ErrMissingCell, code, year)
	}
	return t.Set(code, year, (before+after)/2)
}
