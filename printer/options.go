package printer

import (
	"go.uber.org/zap"
)

const (
	// DefaultMaxStringLength bounds the terminator search of an unsized
	// character pointer, in code units.
	DefaultMaxStringLength = 1 << 16

	// DefaultMaxElements bounds how many container elements are rendered.
	DefaultMaxElements = 1 << 12
)

type config struct {
	logger      *zap.Logger
	onDegrade   func(Degraded)
	maxString   uint32
	maxElements uint32
}

// Option configures a Printer.
type Option func(*config)

// WithLogger sets the logger degraded renders are reported to at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithDegradeHook registers fn to be called for every value that fell back
// to an address rendering. fn must be safe for concurrent use if the
// printer is.
func WithDegradeHook(fn func(Degraded)) Option {
	return func(c *config) {
		c.onDegrade = fn
	}
}

// WithMaxStringLength bounds the terminator search of unsized strings.
func WithMaxStringLength(n uint32) Option {
	return func(c *config) {
		if n > 0 {
			c.maxString = n
		}
	}
}

// WithMaxElements bounds how many container elements are rendered before
// the listing is cut short with "...".
func WithMaxElements(n uint32) Option {
	return func(c *config) {
		if n > 0 {
			c.maxElements = n
		}
	}
}
