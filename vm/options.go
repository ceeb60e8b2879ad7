package vm

// Numeric policy defaults (mirrors matrix.Option's single-source-of-truth
// convention: documented constants, an unexported config struct, With...
// constructors, and a defaultConfig/newConfig pair).
const (
	// DefaultAlignment is the element alignment New rounds every buffer's
	// col_stride up to. 1 means no padding — col_stride == nrows exactly —
	// which is always a valid specialization; callers targeting
	// SIMD-friendly strides can raise it with WithAlignment.
	DefaultAlignment = 1
)

type config struct {
	alignment int
}

func defaultConfig() config {
	return config{alignment: DefaultAlignment}
}

// Option configures secondary QVM policy that doesn't change which
// derivatives are computed (that's DiffLevel, a required argument to New).
type Option func(*config)

// WithAlignment sets the element alignment every buffer's col_stride is
// rounded up to. Panics if n < 1, since a zero or negative alignment
// can't produce a valid stride.
func WithAlignment(n int) Option {
	if n < 1 {
		panic("vm: WithAlignment: alignment must be >= 1")
	}

	return func(c *config) { c.alignment = n }
}

func newConfig(opts ...Option) config {
	c := defaultConfig()
	for _, opt := range opts {
		opt(&c)
	}

	return c
}

func alignUp(n, alignment int) int {
	if alignment <= 1 {
		return n
	}
	rem := n % alignment
	if rem == 0 {
		return n
	}

	return n + (alignment - rem)
}
