// Package sample writes a synthetic, deterministic copy of the three input
// files so the pipeline can run without the original downloads.
package sample

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"

	"github.com/okian/debtfx/internal/domain/debt"
	model "github.com/okian/debtfx/internal/domain/model"
	"github.com/okian/debtfx/pkg/logger"
	"github.com/xuri/excelize/v2"
)

// Files names the three outputs.
type Files struct {
	CountryCodes  string
	ExchangeRates string
	Debt          string
}

// economy is one generated row: reference name, the spelling used in the
// debt workbook, and the starting values of its random walks.
type economy struct {
	code     string
	refName  string
	debtName string
	rate     float64
	debt     float64
}

// economies covers the G18 set plus one economy outside it. DEU and EA19
// carry names that only resolve through the overrides.
var economies = []economy{ //nolint:gochecknoglobals // fixture table
	{"USA", "United States of America", "United States of America", 1, 60},
	{"CHN", "China", " CHINA ", 8.3, 20},
	{"JPN", "Japan", "Japan", 102, 90},
	{"DEU", "Germany, Federal Republic of", "Germany", 1.6, 40},
	{"GBR", "United Kingdom", "United Kingdom", 0.65, 35},
	{"IND", "India", "india", 31, 50},
	{"FRA", "France", "France", 5.5, 45},
	{"ITA", "Italy", "Italy", 1600, 100},
	{"CAN", "Canada", "Canada", 1.37, 55},
	{"KOR", "Korea, Republic of", "Korea, Republic of", 800, 12},
	{"RUS", "Russian Federation", "Russian Federation", 2.2, 30},
	{"AUS", "Australia", "Australia", 1.36, 20},
	{"BRA", "Brazil", "Brazil", 0.84, 45},
	{"ESP", "Spain", "Spain", 133, 50},
	{"MEX", "Mexico", "Mexico", 3.4, 25},
	{"SAU", "Saudi Arabia", "Saudi Arabia", 3.75, 80},
	{"CHE", "Switzerland", "Switzerland", 1.37, 25},
	{"NZL", "New Zealand", "New Zealand", 1.68, 40},
}

// Exchange rows for the Euro aggregate use the source's own label.
const (
	euroLocation  = "EU27_2020"
	euroRefCode   = model.EA19
	euroRefName   = "Euro area (19 countries)"
	euroFirstYear = 1999
)

// The one debt cell written as "no data".
const (
	MissingDebtCode = model.IND
	MissingDebtYear = 1997
)

// Generate writes the three files, creating parent directories.
func Generate(ctx context.Context, files Files, opts ...Option) error {
	o := newOptions(opts...)
	rng := rand.New(rand.NewPCG(o.seed, o.seed^0x9e3779b97f4a7c15)) //nolint:gosec // deterministic fixtures

	years := make([]int, 0, o.last-o.first+1)
	for y := o.first; y <= o.last; y++ {
		years = append(years, y)
	}
	rates, debts := walk(rng, years)

	steps := []struct {
		name string
		path string
		fn   func(string) error
	}{
		{"country codes", files.CountryCodes, writeCodes},
		{"exchange rates", files.ExchangeRates, func(p string) error { return writeRates(p, years, rates) }},
		{"debt", files.Debt, func(p string) error { return writeDebt(p, years, debts) }},
	}
	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
			return fmt.Errorf("%w: %w", ErrWrite, err)
		}
		if err := s.fn(s.path); err != nil {
			return err
		}
		o.log.Info(ctx, "sample file written", logger.String("kind", s.name), logger.String("path", s.path))
	}
	return nil
}

// walk produces one multiplicative random walk per economy and series.
func walk(rng *rand.Rand, years []int) (rates, debts map[string][]float64) {
	rates = make(map[string][]float64, len(economies))
	debts = make(map[string][]float64, len(economies))
	for _, e := range economies {
		r, d := e.rate, e.debt
		rs := make([]float64, len(years))
		ds := make([]float64, len(years))
		for i := range years {
			if e.code != model.USA {
				r *= 1 + (rng.Float64()-0.45)*0.2
			}
			d = math.Max(1, d*(1+(rng.Float64()-0.45)*0.15))
			rs[i], ds[i] = r, math.Round(d*10)/10
		}
		rates[e.code], debts[e.code] = rs, ds
	}
	euro := make([]float64, len(years))
	r := 0.9
	for i := range years {
		r *= 1 + (rng.Float64()-0.5)*0.1
		euro[i] = r
	}
	rates[euroLocation] = euro
	return rates, debts
}

func writeCodes(path string) error {
	rows := [][]interface{}{{"Alpha-3 code", "English short name"}}
	for _, e := range economies {
		rows = append(rows, []interface{}{e.code, e.refName})
	}
	rows = append(rows, []interface{}{euroRefCode, euroRefName})
	return writeWorkbook(path, rows)
}

func writeDebt(path string, years []int, debts map[string][]float64) error {
	header := []interface{}{debt.LabelHeader}
	for _, y := range years {
		header = append(header, y)
	}
	rows := [][]interface{}{header}
	for _, e := range economies {
		row := []interface{}{e.debtName}
		for i, y := range years {
			if e.code == MissingDebtCode && y == MissingDebtYear {
				row = append(row, "no data")
				continue
			}
			row = append(row, debts[e.code][i])
		}
		rows = append(rows, row)
	}
	return writeWorkbook(path, rows)
}

func writeRates(path string, years []int, rates map[string][]float64) error {
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	w := csv.NewWriter(fh)
	_ = w.Write([]string{"LOCATION", "INDICATOR", "TIME", "Value"})
	codes := make([]string, 0, len(economies)+1)
	for _, e := range economies {
		codes = append(codes, e.code)
	}
	codes = append(codes, euroLocation)
	for _, c := range codes {
		for i, y := range years {
			if c == euroLocation && y < euroFirstYear {
				continue
			}
			_ = w.Write([]string{c, "EXCH", strconv.Itoa(y), strconv.FormatFloat(rates[c][i], 'f', 6, 64)})
		}
	}
	w.Flush()
	werr := w.Error()
	cerr := fh.Close()
	if werr != nil {
		return fmt.Errorf("%w: %w", ErrWrite, werr)
	}
	if cerr != nil {
		return fmt.Errorf("%w: %w", ErrWrite, cerr)
	}
	return nil
}

func writeWorkbook(path string, rows [][]interface{}) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(0)
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrWrite, err)
		}
		row := r
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%w: %w", ErrWrite, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}
