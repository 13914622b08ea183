package printer

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the printer package's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the package logger used by printers created without
// WithLogger. This must be called before any printer is created and must
// not run concurrently with New; printers themselves are safe for
// concurrent use once built.
func SetLogger(l *zap.Logger) {
	logger = l
}
