// Package frame steps through the observation years and builds the content
// of one animation frame per year.
package frame

import (
	"fmt"

	model "github.com/okian/debtfx/internal/domain/model"
)

// Marker is one economy drawn in a frame.
type Marker struct {
	Code string
	Style
	Point
}

// Frame is everything the renderer needs for one year.
type Frame struct {
	Year    int
	Markers []Marker
	// Paths holds the trajectories accumulated up to and including Year.
	Paths map[string]Path
	// Euro is nil before the adoption year or when no member had data.
	Euro    *EuroLine
	Skipped []string
}

// Summary condenses a frame for logs and listings.
type Summary struct {
	Year    int      `json:"year"`
	Drawn   int      `json:"drawn"`
	Skipped []string `json:"skipped,omitempty"`
	EuroMin *float64 `json:"euro_min,omitempty"`
	EuroMax *float64 `json:"euro_max,omitempty"`
}

// Summary returns the frame's summary.
func (f Frame) Summary() Summary {
	s := Summary{Year: f.Year, Drawn: len(f.Markers), Skipped: f.Skipped}
	if f.Euro != nil {
		lo, hi := f.Euro.Band.Min, f.Euro.Band.Max
		s.EuroMin, s.EuroMax = &lo, &hi
	}
	return s
}

// Builder walks the years in increasing order. Each call to Next consumes
// one year; there is no rewind.
type Builder struct {
	debt     *model.Table
	rate     *model.Table
	order    []string
	years    []int
	next     int
	adoption int
	tracker  *PathTracker
}

// NewBuilder prepares a builder over scaled debt (x) and scaled rate (y).
// order fixes the per-frame iteration order of economies; it decides which
// Euro member supplies the reference rate. Every ordered code must have a
// row in both tables; a missing row fails with ErrMissingRow.
func NewBuilder(debt, rate *model.Table, order []string, opts ...Option) (*Builder, error) {
	if debt == nil || rate == nil {
		return nil, ErrNilTable
	}
	o := newOptions(opts...)
	years := o.years
	if len(years) == 0 {
		years = rate.Years()
	}
	for i := 1; i < len(years); i++ {
		if years[i] <= years[i-1] {
			return nil, fmt.Errorf("%w: %d after %d", ErrYearOrder, years[i], years[i-1])
		}
	}
	for _, code := range order {
		switch {
		case !debt.Has(code):
			return nil, fmt.Errorf("%w: %s in debt table", ErrMissingRow, code)
		case !rate.Has(code):
			return nil, fmt.Errorf("%w: %s in rate table", ErrMissingRow, code)
		}
	}
	ord := make([]string, len(order))
	copy(ord, order)
	return &Builder{
		debt:     debt,
		rate:     rate,
		order:    ord,
		years:    years,
		adoption: o.adoption,
		tracker:  NewPathTracker(o.tracked...),
	}, nil
}

// Done reports whether every year has been consumed.
func (b *Builder) Done() bool { return b.next >= len(b.years) }

// Next builds the frame for the next year. ok is false once done.
func (b *Builder) Next() (f Frame, ok bool) {
	if b.Done() {
		return Frame{}, false
	}
	year := b.years[b.next]
	b.next++

	f = Frame{Year: year}
	band := newBand()
	var euroRate float64
	haveRate := false

	for _, code := range b.order {
		x, okX := b.debt.Get(code, year)
		y, okY := b.rate.Get(code, year)
		if !okX || !okY {
			f.Skipped = append(f.Skipped, code)
			continue
		}
		if EuroMember(code, year, b.adoption) {
			band.expand(x)
			euroRate = y
			haveRate = true
		}
		p := Point{X: x, Y: y}
		f.Markers = append(f.Markers, Marker{Code: code, Style: StyleFor(code), Point: p})
		b.tracker.Append(code, p)
	}

	f.Paths = b.tracker.Snapshot()
	if year >= b.adoption && haveRate {
		f.Euro = &EuroLine{Rate: euroRate, Band: band}
	}
	return f, true
}

// All drains the builder.
func (b *Builder) All() []Frame {
	var out []Frame
	for {
		f, ok := b.Next()
		if !ok {
			return out
		}
		out = append(out, f)
	}
}

// Tracker exposes the accumulated paths.
func (b *Builder) Tracker() *PathTracker { return b.tracker }

// Order returns codes in reference order, keeping only those present in
// rows. Repeated codes are kept once.
func Order(reference []string, rows *model.Table) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, c := range reference {
		if _, dup := seen[c]; dup || !rows.Has(c) {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
