package scale

import "errors"

// Sentinel errors for normalization.
var (
	ErrEmptyColumn = errors.New("no values to bound the range")
	ErrMissingCell = errors.New("interpolation cell not present")
)
