package exchange

import (
	model "github.com/okian/debtfx/internal/domain/model"
)

// DefaultAliases relabels the EU aggregate onto the synthetic EURO code.
func DefaultAliases() map[string]string {
	return map[string]string{"EU27_2020": model.EURO}
}

// Option applies a configuration option to the transformer.
type Option func(*options)

type options struct {
	base    string
	scope   model.Scope
	aliases map[string]string
}

func newOptions(opts ...Option) *options {
	o := &options{
		base:    model.USA,
		scope:   model.DefaultScope(),
		aliases: DefaultAliases(),
	}
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

// WithBaseCurrency sets the code whose rate is passed through unchanged.
func WithBaseCurrency(code string) Option {
	return func(o *options) {
		if code != "" {
			o.base = code
		}
	}
}

// WithAliases replaces the location relabelling table.
func WithAliases(aliases map[string]string) Option {
	return func(o *options) {
		if aliases != nil {
			o.aliases = aliases
		}
	}
}
