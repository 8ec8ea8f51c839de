package frame

import "errors"

// Sentinel errors for frame building.
var (
	ErrNilTable   = errors.New("frame builder needs debt and rate tables")
	ErrYearOrder  = errors.New("frame years must increase")
	ErrMissingRow = errors.New("economy has no row")
)
