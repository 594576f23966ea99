package sparse

// DefaultGrowthFactor is the amortised growth factor used by CSC and Vector
// when their backing storage needs to expand. 1.675 is a compromise between
// geometric-growth amortisation and wasted capacity; any factor in
// [1.5, 2.0] keeps amortised insertion O(1).
const DefaultGrowthFactor = 1.675

// MinGrowthFactor and MaxGrowthFactor bound the values WithGrowthFactor will
// accept.
const (
	MinGrowthFactor = 1.5
	MaxGrowthFactor = 2.0
)

// config holds the tunables shared by CSC and Vector growth.
type config struct {
	growthFactor float64
}

func defaultConfig() config {
	return config{growthFactor: DefaultGrowthFactor}
}

// Option configures a CSC or Vector at construction time.
type Option func(*config)

// WithGrowthFactor overrides the amortised growth factor used when backing
// storage must expand. Values outside [MinGrowthFactor, MaxGrowthFactor] are
// clamped to the nearest bound.
func WithGrowthFactor(factor float64) Option {
	return func(c *config) {
		if factor < MinGrowthFactor {
			factor = MinGrowthFactor
		} else if factor > MaxGrowthFactor {
			factor = MaxGrowthFactor
		}
		c.growthFactor = factor
	}
}

func applyOptions(opts []Option) config {
	c := defaultConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// growTo computes the amortised target capacity for a backing array holding
// length live elements with free spare slots (so length+free is its current
// capacity): that capacity times factor, or minLen if that is larger.
func growTo(factor float64, length, free, minLen int) int {
	target := int(float64(length+free) * factor)
	if target < minLen {
		target = minLen
	}
	return target
}
