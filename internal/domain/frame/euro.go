package frame

import (
	"math"

	model "github.com/okian/debtfx/internal/domain/model"
)

// EuroAdoptionYear is the last year before the 1999 currency union. Members
// count from this year on.
const EuroAdoptionYear = 1998

// EuroMember reports whether code belongs to the Euro-zone reference group
// in year, given the year membership starts.
func EuroMember(code string, year, adoption int) bool {
	switch code {
	case model.DEU, model.FRA, model.ESP, model.ITA:
		return year >= adoption
	default:
		return false
	}
}

// IsEuroMember applies EuroMember with EuroAdoptionYear.
func IsEuroMember(code string, year int) bool {
	return EuroMember(code, year, EuroAdoptionYear)
}

// Band is the horizontal extent of the Euro reference line.
type Band struct {
	Min float64
	Max float64
}

// newBand starts the band inverted so the first member sets both edges.
func newBand() Band { return Band{Min: 1, Max: 0} }

func (b *Band) expand(x float64) {
	b.Min = math.Min(x, b.Min)
	b.Max = math.Max(x, b.Max)
}

// EuroLine is the dashed reference drawn at the Euro rate across the band.
type EuroLine struct {
	Rate float64
	Band Band
}
