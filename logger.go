package bytestats

import (
	"log/slog"
	"sync/atomic"
)

var (
	silent    = slog.New(slog.DiscardHandler)
	pkgLogger atomic.Pointer[slog.Logger]
)

func init() {
	pkgLogger.Store(silent)
}

// SetLogger replaces the logger that Analyzers fall back to when no
// WithLogger option was given. A nil logger restores the default, which
// discards everything. It may be called at any time from any goroutine.
//
// Records emitted by the package:
//   - debug: computed requests, cache hits and chunk splits
//   - warn: requests over the memory budget
//
// Wiring it to the process logger:
//
//	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
//	bytestats.SetLogger(slog.New(h))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	pkgLogger.Store(l)
}

// Logger returns the package fallback logger.
func Logger() *slog.Logger {
	return pkgLogger.Load()
}
