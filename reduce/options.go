package reduce

import (
	"io"

	"github.com/sirupsen/logrus"

	sparse "github.com/jrbaldwin/sparsereduce"
)

// config holds the tunables shared by Dense and Gather.
type config struct {
	logger       *logrus.Logger
	growthFactor float64
}

func defaultConfig() config {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return config{logger: log, growthFactor: sparse.DefaultGrowthFactor}
}

// Option configures a call to Dense or Gather.
type Option func(*config)

// WithLogger overrides the logrus.Logger a reduction reports through: one
// Debug entry on completion with the output's dimensions and non-zero
// count. No per-column progress is logged. The default logger discards
// output.
func WithLogger(log *logrus.Logger) Option {
	return func(c *config) { c.logger = log }
}

// WithGrowthFactor overrides the amortised growth factor used when the
// output CSC's backing storage must expand beyond its initial capacity.
func WithGrowthFactor(factor float64) Option {
	return func(c *config) { c.growthFactor = factor }
}

func applyOptions(opts []Option) config {
	c := defaultConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
