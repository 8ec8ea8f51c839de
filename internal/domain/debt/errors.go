package debt

import "errors"

// Sentinel errors for debt parsing.
var (
	ErrMalformedRow = errors.New("malformed debt row")
)
