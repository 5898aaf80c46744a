package bytestats

import "log/slog"

// DefaultChunkSize is the number of bytes handed to one worker at a time.
const DefaultChunkSize = 4 << 20

// Option configures an Analyzer during creation.
//
// Example:
//
//	// Sequential, uncached (the default)
//	a := bytestats.NewAnalyzer()
//
//	// All cores, with a result cache for redraws
//	a := bytestats.NewAnalyzer(
//	    bytestats.WithWorkers(0),
//	    bytestats.WithCache(32, 512<<20),
//	)
//	defer a.Close()
type Option func(*analyzerOptions)

// analyzerOptions holds optional configuration for Analyzer creation.
type analyzerOptions struct {
	workers      int
	chunkSize    int
	cacheEntries int
	cacheBytes   int64
	memoryBudget int64
	logger       *slog.Logger
}

// defaultOptions returns the default analyzer options.
func defaultOptions() analyzerOptions {
	return analyzerOptions{
		workers:   1,
		chunkSize: DefaultChunkSize,
	}
}

// WithWorkers sets how many goroutines split large buffers. One (the
// default) computes on the calling goroutine; zero or negative uses
// GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *analyzerOptions) {
		o.workers = n
	}
}

// WithChunkSize sets the number of bytes per parallel work item.
// Non-positive values keep DefaultChunkSize.
func WithChunkSize(bytes int) Option {
	return func(o *analyzerOptions) {
		if bytes > 0 {
			o.chunkSize = bytes
		}
	}
}

// WithCache enables result caching for up to entries results whose sizes add
// up to at most maxBytes (0 = no byte bound). Repeated requests over
// identical content are then served from memory.
func WithCache(entries int, maxBytes int64) Option {
	return func(o *analyzerOptions) {
		o.cacheEntries = entries
		o.cacheBytes = maxBytes
	}
}

// WithMemoryBudget caps the size of a single result. Requests whose output
// would exceed it fail with ErrResourceExhausted instead of allocating.
// Zero (the default) disables the cap.
func WithMemoryBudget(bytes int64) Option {
	return func(o *analyzerOptions) {
		o.memoryBudget = bytes
	}
}

// WithLogger gives the analyzer its own logger instead of the package-wide
// one from SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(o *analyzerOptions) {
		o.logger = l
	}
}
