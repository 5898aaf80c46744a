package bytestats

import (
	"fmt"
	"hash/maphash"
	"log/slog"
	"slices"

	"github.com/binvis/bytestats/internal/cache"
	"github.com/binvis/bytestats/internal/parallel"
)

// Kind selects the data product an Analyzer computes.
type Kind uint8

const (
	// KindHistogram1D is the 256-bucket value histogram.
	KindHistogram1D Kind = iota + 1

	// KindHistogram2D is the consecutive pair histogram.
	KindHistogram2D

	// KindHistogram3D is the consecutive triple histogram.
	KindHistogram3D

	// KindEntropy is the windowed entropy curve.
	KindEntropy

	// KindCurve is the Gilbert curve over a grid.
	KindCurve

	kindCount
)

var kindNames = [kindCount]string{
	KindHistogram1D: "histogram1d",
	KindHistogram2D: "histogram2d",
	KindHistogram3D: "histogram3d",
	KindEntropy:     "entropy",
	KindCurve:       "curve",
}

// String returns the kind name accepted by ParseKind.
func (k Kind) String() string {
	if k == 0 || k >= kindCount {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// ParseKind looks up a kind by name.
func ParseKind(name string) (Kind, error) {
	for k := KindHistogram1D; k < kindCount; k++ {
		if kindNames[k] == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: kind %q", ErrInvalidArgument, name)
}

// Request describes one analysis.
type Request struct {
	Kind Kind

	// Dtype applies to the histogram kinds.
	Dtype Dtype

	// Overlap selects stride-1 triples for KindHistogram3D.
	Overlap bool

	// WindowSize applies to KindEntropy; zero means DefaultWindowSize.
	WindowSize int

	// Width and Height size the KindCurve grid.
	Width, Height int
}

// Result carries the data product of a Request. Only the field matching
// Kind is set. The caller owns every slice.
type Result struct {
	Kind        Kind
	Histogram1D Histogram1D
	Histogram2D Histogram2D
	Histogram3D Histogram3D
	Entropy     EntropyCurve
	Curve       CurvePath
}

// clone returns a Result that shares no memory with r.
func (r Result) clone() Result {
	r.Histogram2D = r.Histogram2D.Clone()
	r.Histogram3D = r.Histogram3D.Clone()
	r.Entropy = slices.Clone(r.Entropy)
	r.Curve = slices.Clone(r.Curve)
	return r
}

// resultKey identifies a cached result by buffer content and request.
type resultKey struct {
	length int
	digest uint64
	req    Request
}

// Analyzer is the single entry point for the statistics engine. It validates
// requests, dispatches them and optionally spreads large buffers over a
// worker pool and caches results.
//
// Analyzer is safe for concurrent use. The buffer passed to each call is
// only read, and only for the duration of the call.
type Analyzer struct {
	pool         *parallel.Pool
	chunkSize    int
	memoryBudget int64
	results      *cache.Cache[resultKey, Result]
	seed         maphash.Seed
	logger       *slog.Logger
}

// NewAnalyzer creates an Analyzer. Call Close when it was created with more
// than one worker.
func NewAnalyzer(opts ...Option) *Analyzer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	a := &Analyzer{
		chunkSize:    o.chunkSize,
		memoryBudget: o.memoryBudget,
		seed:         maphash.MakeSeed(),
		logger:       o.logger,
	}
	if o.workers != 1 {
		a.pool = parallel.NewPool(o.workers)
	}
	if o.cacheEntries > 0 {
		a.results = cache.New[resultKey, Result](o.cacheEntries, o.cacheBytes)
	}
	return a
}

// Close releases the worker pool. The Analyzer keeps working sequentially
// afterwards. Close is safe to call multiple times.
func (a *Analyzer) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}

// Workers returns the number of goroutines large buffers are split across.
func (a *Analyzer) Workers() int {
	if a.pool == nil || !a.pool.Open() {
		return 1
	}
	return a.pool.Size()
}

// CacheStats holds result cache counters.
type CacheStats = cache.Stats

// CacheStats reports result cache statistics; zero when caching is off.
func (a *Analyzer) CacheStats() CacheStats {
	if a.results == nil {
		return CacheStats{}
	}
	return a.results.Stats()
}

func (a *Analyzer) log() *slog.Logger {
	if a.logger != nil {
		return a.logger
	}
	return Logger()
}

// Analyze validates req and computes its data product over buf.
// Nothing is computed when an error is returned.
func (a *Analyzer) Analyze(buf []byte, req Request) (Result, error) {
	if req.Kind == KindEntropy && req.WindowSize == 0 {
		req.WindowSize = DefaultWindowSize
	}
	if err := a.validate(buf, req); err != nil {
		return Result{}, err
	}

	var key resultKey
	if a.results != nil {
		key = a.keyFor(buf, req)
		if r, ok := a.results.Get(key); ok {
			a.log().Debug("bytestats: cache hit", "kind", req.Kind, "bytes", len(buf))
			return r.clone(), nil
		}
	}

	a.log().Debug("bytestats: analyze",
		"kind", req.Kind,
		"dtype", req.Dtype,
		"bytes", len(buf),
		"workers", a.Workers())

	r, err := a.compute(buf, req)
	if err != nil {
		return Result{}, err
	}

	if a.results != nil {
		a.results.Set(key, r.clone(), outputBytes(req, len(buf)))
	}
	return r, nil
}

// Histogram1D computes the value histogram of buf.
func (a *Analyzer) Histogram1D(buf []byte, dt Dtype) (Histogram1D, error) {
	r, err := a.Analyze(buf, Request{Kind: KindHistogram1D, Dtype: dt})
	return r.Histogram1D, err
}

// Histogram2D computes the consecutive pair histogram of buf.
func (a *Analyzer) Histogram2D(buf []byte, dt Dtype) (Histogram2D, error) {
	r, err := a.Analyze(buf, Request{Kind: KindHistogram2D, Dtype: dt})
	return r.Histogram2D, err
}

// Histogram3D computes the triple histogram of buf.
func (a *Analyzer) Histogram3D(buf []byte, dt Dtype, overlap bool) (Histogram3D, error) {
	r, err := a.Analyze(buf, Request{Kind: KindHistogram3D, Dtype: dt, Overlap: overlap})
	return r.Histogram3D, err
}

// Entropy computes the windowed entropy curve of buf.
func (a *Analyzer) Entropy(buf []byte, windowSize int) (EntropyCurve, error) {
	if windowSize == 0 {
		return nil, fmt.Errorf("%w: window size 0", ErrInvalidArgument)
	}
	r, err := a.Analyze(buf, Request{Kind: KindEntropy, WindowSize: windowSize})
	return r.Entropy, err
}

// Curve generates the Gilbert curve over a width×height grid.
func (a *Analyzer) Curve(width, height int) (CurvePath, error) {
	r, err := a.Analyze(nil, Request{Kind: KindCurve, Width: width, Height: height})
	return r.Curve, err
}

func (a *Analyzer) validate(buf []byte, req Request) error {
	switch req.Kind {
	case KindHistogram1D, KindHistogram2D, KindHistogram3D:
		if err := checkDtype(req.Dtype); err != nil {
			return err
		}
	case KindEntropy:
		if req.WindowSize <= 0 {
			return fmt.Errorf("%w: window size %d", ErrInvalidArgument, req.WindowSize)
		}
	case KindCurve:
		if req.Width <= 0 || req.Height <= 0 {
			return fmt.Errorf("%w: grid %dx%d", ErrInvalidArgument, req.Width, req.Height)
		}
	default:
		return fmt.Errorf("%w: kind %s", ErrInvalidArgument, req.Kind)
	}

	if a.memoryBudget > 0 {
		if need := outputBytes(req, len(buf)); need > a.memoryBudget {
			a.log().Warn("bytestats: request over memory budget",
				"kind", req.Kind, "need", need, "budget", a.memoryBudget)
			return fmt.Errorf("%w: %s needs %d bytes, budget %d",
				ErrResourceExhausted, req.Kind, need, a.memoryBudget)
		}
	}
	return nil
}

func (a *Analyzer) keyFor(buf []byte, req Request) resultKey {
	key := resultKey{req: req}
	if req.Kind != KindCurve {
		key.length = len(buf)
		key.digest = maphash.Bytes(a.seed, buf)
	}
	return key
}

// outputBytes estimates the memory a request's result occupies.
func outputBytes(req Request, n int) int64 {
	switch req.Kind {
	case KindHistogram1D:
		return Bins * 8
	case KindHistogram2D:
		return Bins2D * 4
	case KindHistogram3D:
		return Bins3D * 4
	case KindEntropy:
		return int64(windowCount(n, req.WindowSize)) * 8
	case KindCurve:
		return int64(req.Width) * int64(req.Height) * 16
	}
	return 0
}

func (a *Analyzer) compute(buf []byte, req Request) (Result, error) {
	r := Result{Kind: req.Kind}
	var err error
	switch req.Kind {
	case KindHistogram1D:
		r.Histogram1D, err = a.valueHistogram(buf, req.Dtype)
	case KindHistogram2D:
		r.Histogram2D, err = a.pairHistogram(buf, req.Dtype)
	case KindHistogram3D:
		// One goroutine: a 64 MiB partial table per worker costs more than
		// the counting saves.
		r.Histogram3D, err = TripleHistogram(buf, req.Dtype, req.Overlap)
	case KindEntropy:
		r.Entropy, err = a.entropy(buf, req.WindowSize)
	case KindCurve:
		r.Curve, err = GenerateCurve(req.Width, req.Height)
	}
	return r, err
}

// chunkRanges splits n items of itemBytes each for the pool, or returns nil
// when the work fits one chunk or there is no pool.
func (a *Analyzer) chunkRanges(n, itemBytes, align, maxChunks int) []parallel.Range {
	if a.pool == nil || !a.pool.Open() || n*itemBytes <= a.chunkSize {
		return nil
	}
	size := a.chunkSize / itemBytes
	if maxChunks > 0 {
		size = max(size, (n+maxChunks-1)/maxChunks)
	}
	ranges := parallel.Split(n, size, align)
	if len(ranges) <= 1 {
		return nil
	}
	a.log().Debug("bytestats: split", "items", n, "chunks", len(ranges))
	return ranges
}

func (a *Analyzer) valueHistogram(buf []byte, dt Dtype) (Histogram1D, error) {
	w := dt.Width()
	ranges := a.chunkRanges(len(buf)/w, w, 1, 0)
	if ranges == nil {
		return ValueHistogram(buf, dt)
	}

	partial := make([]Histogram1D, len(ranges))
	parallel.ForEach(a.pool, ranges, func(i int, r parallel.Range) {
		countSingles(bucketize(buf[r.Lo*w:r.Hi*w], dt), &partial[i])
	})

	var h Histogram1D
	for i := range partial {
		h.add(&partial[i])
	}
	return h, nil
}

func (a *Analyzer) pairHistogram(buf []byte, dt Dtype) (Histogram2D, error) {
	w := dt.Width()
	pairs := pairCount(len(buf) / w)
	// Each chunk owns a 256 KiB partial table, so keep the count near the
	// worker count.
	ranges := a.chunkRanges(pairs, w, 1, 2*a.Workers())
	if ranges == nil {
		return PairHistogram(buf, dt)
	}
	if err := checkBinCapacity(pairs); err != nil {
		return nil, err
	}

	partial := make([]Histogram2D, len(ranges))
	parallel.ForEach(a.pool, ranges, func(i int, r parallel.Range) {
		s := bucketize(buf[r.Lo*w:(r.Hi+1)*w], dt)
		partial[i] = make(Histogram2D, Bins2D)
		countPairs(s, 0, len(s)-1, partial[i])
	})

	h := partial[0]
	for _, p := range partial[1:] {
		for j, c := range p {
			h[j] += c
		}
	}
	return h, nil
}

func (a *Analyzer) entropy(buf []byte, windowSize int) (EntropyCurve, error) {
	ranges := a.chunkRanges(len(buf), 1, windowSize, 0)
	if ranges == nil {
		return Entropy(buf, windowSize)
	}

	curve := make(EntropyCurve, windowCount(len(buf), windowSize))
	parallel.ForEach(a.pool, ranges, func(_ int, r parallel.Range) {
		first := r.Lo / windowSize
		last := windowCount(r.Hi, windowSize)
		entropyWindows(buf, windowSize, curve[first:last], first)
	})
	return curve, nil
}
