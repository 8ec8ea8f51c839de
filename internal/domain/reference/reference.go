// Package reference builds the two-way lookup between country codes and
// lowercase country names.
package reference

import (
	"fmt"
	"strings"

	model "github.com/okian/debtfx/internal/domain/model"
)

// Names forced onto specific codes after the table is loaded.
const (
	GermanyName  = "germany"
	EuroZoneName = "euro zone"
)

// minColumns is the number of leading columns the reference table must carry.
const minColumns = 2

// Override forces a code to map to a name.
type Override struct {
	Code string
	Name string
}

// DefaultOverrides are applied in order after load. EURO and EA19 both map
// to "euro zone"; the reverse entry keeps whichever code comes last in
// insertion order.
func DefaultOverrides() []Override {
	return []Override{
		{Code: model.DEU, Name: GermanyName},
		{Code: model.EURO, Name: EuroZoneName},
		{Code: model.EA19, Name: EuroZoneName},
	}
}

// Lookup maps codes to names and back. Code order follows the source table,
// with override-only codes appended.
type Lookup struct {
	order      []string
	codeToName map[string]string
	nameToCode map[string]string
}

// Build creates a Lookup from the first two columns of sheet (code, name).
// The header row is discarded. Overrides default to DefaultOverrides.
func Build(sheet model.Sheet, overrides ...Override) (*Lookup, error) {
	if len(sheet.Header) < minColumns {
		return nil, fmt.Errorf("%w: %s has %d", ErrTooFewColumns, sheet.Name, len(sheet.Header))
	}
	if len(overrides) == 0 {
		overrides = DefaultOverrides()
	}

	l := &Lookup{
		codeToName: make(map[string]string, len(sheet.Rows)),
		nameToCode: make(map[string]string, len(sheet.Rows)),
	}
	for i, row := range sheet.Rows {
		code := strings.TrimSpace(model.Cell(row, 0))
		name := strings.TrimSpace(model.Cell(row, 1))
		if code == "" || name == "" {
			return nil, fmt.Errorf("%w: %s row %d", ErrMalformedRow, sheet.Name, i+2)
		}
		l.put(code, strings.ToLower(name))
	}
	for _, o := range overrides {
		l.put(o.Code, o.Name)
	}
	for _, code := range l.order {
		l.nameToCode[l.codeToName[code]] = code
	}
	return l, nil
}

// put inserts or replaces a mapping; a replaced code keeps its position.
func (l *Lookup) put(code, name string) {
	if _, ok := l.codeToName[code]; !ok {
		l.order = append(l.order, code)
	}
	l.codeToName[code] = name
}

// Name returns the lowercase name for code.
func (l *Lookup) Name(code string) (string, error) {
	name, ok := l.codeToName[code]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCode, code)
	}
	return name, nil
}

// Code resolves a country name to its code. The name is lowercased and
// trimmed before lookup.
func (l *Lookup) Code(name string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	code, ok := l.nameToCode[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownName, key)
	}
	return code, nil
}

// Codes returns every known code in insertion order.
func (l *Lookup) Codes() []string {
	out := make([]string, len(l.order))
	copy(out, l.order)
	return out
}

// Len returns the number of known codes.
func (l *Lookup) Len() int { return len(l.order) }
