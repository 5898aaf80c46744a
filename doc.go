// Package bytestats computes statistics over raw byte buffers for binary
// file visualisation.
//
// # Overview
//
// Given a buffer of arbitrary bytes, bytestats produces:
//   - a 256-bucket value histogram (ValueHistogram)
//   - a 256×256 histogram of consecutive sample pairs (PairHistogram)
//   - a 256×256×256 histogram of consecutive sample triples (TripleHistogram)
//   - a windowed Shannon entropy curve (Entropy)
//   - a Gilbert space-filling curve over any W×H grid (GenerateCurve)
//
// Samples are read little-endian as one of the element types in Dtypes and
// reduced to an 8-bit bucket before counting.
//
// # Quick Start
//
//	import "github.com/binvis/bytestats"
//
//	data, _ := os.ReadFile("firmware.bin")
//
//	h, err := bytestats.ValueHistogram(data, bytestats.DtypeU8)
//	if err != nil {
//	    return err
//	}
//	curve, _ := bytestats.Entropy(data, bytestats.DefaultWindowSize)
//	lo, hi, mean := curve.Stats()
//
// # Analyzer
//
// The package functions are pure and single-threaded. Analyzer wraps them
// behind one entry point that validates requests, splits large buffers over
// a worker pool, caches results and enforces a memory budget:
//
//	a := bytestats.NewAnalyzer(
//	    bytestats.WithWorkers(0),
//	    bytestats.WithCache(32, 512<<20),
//	)
//	defer a.Close()
//
//	r, err := a.Analyze(data, bytestats.Request{
//	    Kind:  bytestats.KindHistogram2D,
//	    Dtype: bytestats.DtypeU16,
//	})
//
// Parallel results are identical to the sequential functions.
//
// # Views
//
// BuildOverview, PointCloud and DotPlot derive the data behind the classic
// binary visualisation views; the render subpackage turns them into images.
// HexRows formats the classic hex dump columns.
//
// # Floating point samples
//
// F32 and F64 samples are bucketed by their IEEE bit pattern through an
// order-preserving transform, so buckets grow with the value: negative
// numbers fall below 128, positive ones above. Zero of either sign lands in
// 128. NaN and ±Inf share NonFiniteBucket.
//
// # Errors
//
// Invalid input returns an error wrapping ErrInvalidArgument; requests that
// would not fit return ErrResourceExhausted. Nothing is computed when an
// error is returned.
//
// # Logging
//
// The package is silent by default. Pass a *slog.Logger to SetLogger to see
// debug output.
package bytestats
