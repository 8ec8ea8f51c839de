package model

import "errors"

// Sentinel errors for table access.
var (
	ErrNoCell      = errors.New("no such cell")
	ErrShape       = errors.New("column shape mismatch")
	ErrMissingYear = errors.New("year column not present")
)
