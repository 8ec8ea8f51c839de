package source

import "errors"

// Sentinel errors for input files.
var (
	ErrOpen        = errors.New("open input failed")
	ErrEmpty       = errors.New("input has no rows")
	ErrMalformed   = errors.New("malformed input")
	ErrUnsupported = errors.New("unsupported input format")
)
