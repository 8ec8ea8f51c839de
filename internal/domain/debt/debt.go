// Package debt re-indexes the wide government-debt table from country names
// to country codes.
package debt

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	model "github.com/okian/debtfx/internal/domain/model"
)

// LabelHeader is the source caption of the country-name column.
const LabelHeader = "Central Government Debt (Percent of GDP)"

// noData is the placeholder the source uses for missing cells.
const noData = "no data"

// CodeResolver resolves a country name to its code.
type CodeResolver interface {
	Code(name string) (string, error)
}

// Reindex converts sheet into a debt table keyed by code.
//
// Column 0 holds country names; every other header is a year label. Each
// row's name must resolve through codes, otherwise the whole table fails.
// Rows outside the scope are dropped and only the scope's years are kept.
func Reindex(sheet model.Sheet, codes CodeResolver, opts ...Option) (*model.Table, error) {
	o := newOptions(opts...)

	yearCols := make(map[int]int)
	var years []int
	for i, h := range sheet.Header {
		if i == 0 {
			continue
		}
		y, ok := parseYear(h)
		if !ok {
			continue
		}
		if _, dup := yearCols[y]; dup {
			continue
		}
		yearCols[y] = i
		years = append(years, y)
	}

	type row struct {
		code string
		src  []string
	}
	var rows []row
	var order []string
	for i, r := range sheet.Rows {
		name := strings.ToLower(strings.TrimSpace(model.Cell(r, 0)))
		code, err := codes.Code(name)
		if err != nil {
			return nil, fmt.Errorf("debt row %d: %w", i+2, err)
		}
		rows = append(rows, row{code: code, src: r})
		order = append(order, code)
	}

	wide := model.NewTable(order, years)
	filled := make(map[string]bool, len(rows))
	for i, r := range rows {
		if filled[r.code] {
			continue
		}
		filled[r.code] = true
		wide.SetName(r.code, strings.ToLower(strings.TrimSpace(model.Cell(r.src, 0))))
		for _, y := range years {
			v, err := parseValue(model.Cell(r.src, yearCols[y]))
			if err != nil {
				return nil, fmt.Errorf("%w: row %d year %d: %w", ErrMalformedRow, i+2, y, err)
			}
			if err := wide.Set(r.code, y, v); err != nil {
				return nil, err
			}
		}
	}

	out, err := wide.Select(o.scope.Economies, o.scope.Years())
	if err != nil {
		return nil, fmt.Errorf("restrict debt: %w", err)
	}
	return out, nil
}

// parseYear coerces a header label such as "1994" or "1994.0" to an int.
func parseYear(label string) (int, bool) {
	label = strings.TrimSpace(label)
	if y, err := strconv.Atoi(label); err == nil {
		return y, true
	}
	f, err := strconv.ParseFloat(label, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// parseValue maps an empty or "no data" cell to NaN.
func parseValue(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, noData) {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(raw, 64)
}
