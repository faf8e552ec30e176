package pipeline

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

// loggerPtr stores the package logger. Accessed atomically so that
// SetLogger can be called concurrently with rendering from any goroutine.
var loggerPtr atomic.Pointer[zerolog.Logger]

func init() {
	SetLogger(zerolog.Nop())
}

// SetLogger configures the logger used by runners created without [WithLogger].
// By default the pipeline produces no log output.
//
// Log levels used:
//   - [zerolog.DebugLevel]: per-stage application and skips.
//   - [zerolog.WarnLevel]: rejected chains and failed stages.
func SetLogger(l zerolog.Logger) {
	loggerPtr.Store(&l)
}

// Logger returns the current package logger.
func Logger() zerolog.Logger {
	return *loggerPtr.Load()
}
