package exchange

import "errors"

// Sentinel errors for exchange-rate parsing.
var (
	ErrMissingColumn = errors.New("exchange rate column missing")
	ErrMalformedRow  = errors.New("malformed exchange rate row")
)
