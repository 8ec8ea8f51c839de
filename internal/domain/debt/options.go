package debt

import (
	model "github.com/okian/debtfx/internal/domain/model"
)

// Option applies a configuration option to Reindex.
type Option func(*options)

type options struct {
	scope model.Scope
}

func newOptions(opts ...Option) *options {
	o := &options{scope: model.DefaultScope()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithScope restricts the output to the given economies and years.
func WithScope(s model.Scope) Option {
	return func(o *options) {
		if len(s.Economies) > 0 && s.Last >= s.First {
			o.scope = s
		}
	}
}
