package declutter

// Default solver settings.
const (
	defaultMaxIterations = 200
	defaultPadding       = 0.0
)

// Option applies a configuration option to Vertical.
type Option func(*options)

type options struct {
	maxIterations int
	padding       float64
	bounded       bool
	minY, maxY    float64
}

func newOptions(opts ...Option) *options {
	o := &options{
		maxIterations: defaultMaxIterations,
		padding:       defaultPadding,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithMaxIterations caps the number of relaxation passes.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxIterations = n
		}
	}
}

// WithPadding adds extra clearance on every push.
func WithPadding(p float64) Option {
	return func(o *options) {
		if p >= 0 {
			o.padding = p
		}
	}
}

// WithBounds keeps labels between minY and maxY.
func WithBounds(minY, maxY float64) Option {
	return func(o *options) {
		if maxY > minY {
			o.bounded = true
			o.minY = minY
			o.maxY = maxY
		}
	}
}
