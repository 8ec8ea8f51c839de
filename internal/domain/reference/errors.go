package reference

import "errors"

// Sentinel errors for reference lookups. These allow errors.Is from callers.
var (
	ErrTooFewColumns = errors.New("reference table needs code and name columns")
	ErrMalformedRow  = errors.New("malformed reference row")
	ErrUnknownCode   = errors.New("unknown country code")
	ErrUnknownName   = errors.New("unknown country name")
)
