// Package exchange turns long-format exchange-rate observations into a
// purchasing-power table keyed by country code and year.
package exchange

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	model "github.com/okian/debtfx/internal/domain/model"
)

// Column headers of the long-format source.
const (
	ColumnLocation = "LOCATION"
	ColumnTime     = "TIME"
	ColumnValue    = "Value"
)

// Observation is one (code, year, rate) row of the source. Rate is in
// local currency per USD; NaN marks an empty value cell.
type Observation struct {
	Code string
	Year int
	Rate float64
}

// NameResolver resolves a country code to its display name.
type NameResolver interface {
	Name(code string) (string, error)
}

// Observations reads the LOCATION, TIME and Value columns of sheet.
// Location codes are relabelled per the configured aliases.
func Observations(sheet model.Sheet, opts ...Option) ([]Observation, error) {
	o := newOptions(opts...)

	loc, year, val := -1, -1, -1
	for i, h := range sheet.Header {
		switch strings.TrimSpace(h) {
		case ColumnLocation:
			loc = i
		case ColumnTime:
			year = i
		case ColumnValue:
			val = i
		}
	}
	switch {
	case loc < 0:
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, ColumnLocation)
	case year < 0:
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, ColumnTime)
	case val < 0:
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, ColumnValue)
	}

	out := make([]Observation, 0, len(sheet.Rows))
	for i, row := range sheet.Rows {
		code := strings.TrimSpace(model.Cell(row, loc))
		if alias, ok := o.aliases[code]; ok {
			code = alias
		}
		if code == "" {
			return nil, fmt.Errorf("%w: row %d has no location", ErrMalformedRow, i+2)
		}
		y, err := strconv.Atoi(strings.TrimSpace(model.Cell(row, year)))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d time: %w", ErrMalformedRow, i+2, err)
		}
		rate := math.NaN()
		if raw := strings.TrimSpace(model.Cell(row, val)); raw != "" {
			rate, err = strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d value: %w", ErrMalformedRow, i+2, err)
			}
		}
		out = append(out, Observation{Code: code, Year: y, Rate: rate})
	}
	return out, nil
}

// Pivot builds the wide purchasing-power table.
//
// Every observed code is crossed with every observed year. Cells without an
// observation are "no data". The base currency keeps its raw rate; every
// other code stores the reciprocal, i.e. USD per unit of local currency.
// Each observed code must resolve through names before the table is
// restricted to the configured scope.
func Pivot(obs []Observation, names NameResolver, opts ...Option) (*model.Table, error) {
	o := newOptions(opts...)

	var codes []string
	seenCode := make(map[string]struct{})
	seenYear := make(map[int]struct{})
	var years []int
	first := make(map[string]map[int]float64)
	for _, ob := range obs {
		if _, ok := seenCode[ob.Code]; !ok {
			seenCode[ob.Code] = struct{}{}
			codes = append(codes, ob.Code)
			first[ob.Code] = make(map[int]float64)
		}
		if _, ok := seenYear[ob.Year]; !ok {
			seenYear[ob.Year] = struct{}{}
			years = append(years, ob.Year)
		}
		if _, ok := first[ob.Code][ob.Year]; !ok {
			first[ob.Code][ob.Year] = ob.Rate
		}
	}
	sort.Ints(years)

	wide := model.NewTable(codes, years)
	for _, code := range codes {
		for _, y := range years {
			rate, ok := first[code][y]
			if !ok {
				continue
			}
			if code != o.base {
				rate = 1 / rate
			}
			if err := wide.Set(code, y, rate); err != nil {
				return nil, err
			}
		}
	}

	for _, code := range codes {
		name, err := names.Name(code)
		if err != nil {
			return nil, fmt.Errorf("attach country name: %w", err)
		}
		wide.SetName(code, name)
	}

	out, err := wide.Select(o.scope.Economies, o.scope.Years())
	if err != nil {
		return nil, fmt.Errorf("restrict exchange rates: %w", err)
	}
	return out, nil
}
