package sample

import (
	model "github.com/okian/debtfx/internal/domain/model"
	"github.com/okian/debtfx/pkg/logger"
)

// Option configures Generate.
type Option func(*options)

type options struct {
	seed  uint64
	first int
	last  int
	log   logger.Logger
}

// The generated range is wider than the default scope so the pipeline's
// year filter has work to do.
func newOptions(opts ...Option) *options {
	o := &options{seed: 1994, first: model.FirstYear - 4, last: model.LastYear + 1, log: logger.Nop()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithSeed fixes the random walk.
func WithSeed(seed uint64) Option {
	return func(o *options) { o.seed = seed }
}

// WithYears sets the inclusive range of generated years.
func WithYears(first, last int) Option {
	return func(o *options) {
		if first <= last {
			o.first, o.last = first, last
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}
