package comm

import (
	"io"

	"github.com/sirupsen/logrus"
)

// config holds Typed's tunables.
type config struct {
	logger *logrus.Logger
}

func defaultConfig() config {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return config{logger: log}
}

// Option configures a Typed at construction time.
type Option func(*config)

// WithLogger overrides the logrus.Logger a Typed reports communication
// failures through. The default logger discards output.
func WithLogger(log *logrus.Logger) Option {
	return func(c *config) { c.logger = log }
}

func applyOptions(opts []Option) config {
	c := defaultConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
