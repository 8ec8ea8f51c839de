package frame

// Option applies a configuration option to the Builder.
type Option func(*options)

type options struct {
	years    []int
	adoption int
	tracked  []string
}

func newOptions(opts ...Option) *options {
	o := &options{
		adoption: EuroAdoptionYear,
		tracked:  Tracked(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithYears sets the frame years explicitly. They must be increasing.
func WithYears(years []int) Option {
	return func(o *options) {
		if len(years) > 0 {
			o.years = append([]int(nil), years...)
		}
	}
}

// WithEuroAdoptionYear moves the first year of Euro membership.
func WithEuroAdoptionYear(year int) Option {
	return func(o *options) {
		if year > 0 {
			o.adoption = year
		}
	}
}

// WithTracked replaces the set of codes whose paths are accumulated.
func WithTracked(codes ...string) Option {
	return func(o *options) {
		o.tracked = append([]string(nil), codes...)
	}
}
