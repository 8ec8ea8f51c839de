package model

// Country codes with special handling in the pipeline.
const (
	USA  = "USA"
	CHN  = "CHN"
	JPN  = "JPN"
	BRA  = "BRA"
	GBR  = "GBR"
	DEU  = "DEU"
	FRA  = "FRA"
	ESP  = "ESP"
	ITA  = "ITA"
	IND  = "IND"
	EURO = "EURO"
	EA19 = "EA19"
)

// Default observation window.
const (
	FirstYear = 1994
	LastYear  = 2021
)

// G18 lists the economies selected for display. IND appears twice in the
// source list; selection is by set membership so the repeat is harmless.
var G18 = []string{ //nolint:gochecknoglobals // fixed economy list
	"USA", "CHN", "JPN", "DEU", "GBR", "IND",
	"FRA", "ITA", "CAN", "KOR", "RUS", "AUS",
	"BRA", "ESP", "MEX", "IND", "SAU", "CHE",
}

// Scope restricts a table to a set of economies and an inclusive year range.
type Scope struct {
	Economies []string
	First     int
	Last      int
}

// DefaultScope returns the G18 set over 1994-2021.
func DefaultScope() Scope {
	return Scope{Economies: G18, First: FirstYear, Last: LastYear}
}

// Years expands the inclusive range into a slice.
func (s Scope) Years() []int {
	if s.Last < s.First {
		return nil
	}
	out := make([]int, 0, s.Last-s.First+1)
	for y := s.First; y <= s.Last; y++ {
		out = append(out, y)
	}
	return out
}

// Contains reports whether code is one of the scope's economies.
func (s Scope) Contains(code string) bool {
	for _, c := range s.Economies {
		if c == code {
			return true
		}
	}
	return false
}

// Sheet is a rectangular block of cells read from a spreadsheet or CSV,
// split into its header row and the data rows below it.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Cell returns row[i] or "" when the row is shorter than i+1.
func Cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
