package bytestats

import (
	"fmt"
	"math"
)

// Histogram dimensions.
const (
	// Bins is the number of buckets per axis.
	Bins = 256

	// Bins2D is the length of a flattened Histogram2D.
	Bins2D = Bins * Bins

	// Bins3D is the length of a flattened Histogram3D.
	Bins3D = Bins * Bins * Bins
)

// Histogram1D counts samples per bucket.
type Histogram1D [Bins]uint64

// Total returns the number of samples counted.
func (h *Histogram1D) Total() uint64 {
	var n uint64
	for _, c := range h {
		n += c
	}
	return n
}

// Normalized returns each bucket as a fraction of the total.
// An empty histogram normalizes to all zeros.
func (h *Histogram1D) Normalized() [Bins]float64 {
	var out [Bins]float64
	total := h.Total()
	if total == 0 {
		return out
	}
	inv := 1 / float64(total)
	for i, c := range h {
		out[i] = float64(c) * inv
	}
	return out
}

// add accumulates o into h.
func (h *Histogram1D) add(o *Histogram1D) {
	for i := range h {
		h[i] += o[i]
	}
}

// Histogram2D counts consecutive sample pairs. Pair (a, b) lives at a*256+b.
type Histogram2D []uint32

// At returns the count for pair (a, b).
func (h Histogram2D) At(a, b uint8) uint32 {
	return h[int(a)<<8|int(b)]
}

// Total returns the number of pairs counted.
func (h Histogram2D) Total() uint64 {
	return sumBins(h)
}

// Clone returns an independent copy.
func (h Histogram2D) Clone() Histogram2D {
	if h == nil {
		return nil
	}
	return append(Histogram2D(nil), h...)
}

// Histogram3D counts sample triples. Triple (a, b, c) lives at
// a*65536+b*256+c.
type Histogram3D []uint32

// At returns the count for triple (a, b, c).
func (h Histogram3D) At(a, b, c uint8) uint32 {
	return h[int(a)<<16|int(b)<<8|int(c)]
}

// Total returns the number of triples counted.
func (h Histogram3D) Total() uint64 {
	return sumBins(h)
}

// Clone returns an independent copy.
func (h Histogram3D) Clone() Histogram3D {
	if h == nil {
		return nil
	}
	return append(Histogram3D(nil), h...)
}

func sumBins(bins []uint32) uint64 {
	var n uint64
	for _, c := range bins {
		n += uint64(c)
	}
	return n
}

// ValueHistogram counts the buckets of every whole sample in buf.
// A buffer shorter than one sample yields an all-zero histogram.
func ValueHistogram(buf []byte, dt Dtype) (Histogram1D, error) {
	var h Histogram1D
	if err := checkDtype(dt); err != nil {
		return h, err
	}
	countSingles(bucketize(buf, dt), &h)
	return h, nil
}

// PairHistogram counts every overlapping pair of consecutive samples
// (s[i], s[i+1]).
func PairHistogram(buf []byte, dt Dtype) (Histogram2D, error) {
	if err := checkDtype(dt); err != nil {
		return nil, err
	}
	s := bucketize(buf, dt)
	if err := checkBinCapacity(pairCount(len(s))); err != nil {
		return nil, err
	}
	h := make(Histogram2D, Bins2D)
	countPairs(s, 0, pairCount(len(s)), h)
	return h, nil
}

// TripleHistogram counts sample triples. With overlap every position i starts a
// triple (stride 1); without it the samples are cut into disjoint blocks of
// three and a trailing partial block is dropped.
func TripleHistogram(buf []byte, dt Dtype, overlap bool) (Histogram3D, error) {
	if err := checkDtype(dt); err != nil {
		return nil, err
	}
	s := bucketize(buf, dt)
	n := tripleCount(len(s), overlap)
	if err := checkBinCapacity(n); err != nil {
		return nil, err
	}
	h := make(Histogram3D, Bins3D)
	countTriples(s, 0, n, overlap, h)
	return h, nil
}

// pairCount returns the number of overlapping pairs among n samples.
func pairCount(n int) int {
	return max(n-1, 0)
}

// tripleCount returns the number of triples among n samples.
func tripleCount(n int, overlap bool) int {
	if overlap {
		return max(n-2, 0)
	}
	return n / 3
}

// checkBinCapacity refuses tuple counts that could overflow a 32-bit bin.
func checkBinCapacity(tuples int) error {
	if uint64(tuples) > math.MaxUint32 {
		return fmt.Errorf("%w: %d tuples overflow 32-bit bins", ErrResourceExhausted, tuples)
	}
	return nil
}

func countSingles(s []uint8, h *Histogram1D) {
	for _, v := range s {
		h[v]++
	}
}

// countPairs counts pairs starting at sample indices [lo, hi).
func countPairs(s []uint8, lo, hi int, h Histogram2D) {
	if hi <= lo {
		return
	}
	prev := int(s[lo])
	for _, v := range s[lo+1 : hi+1] {
		cur := int(v)
		h[prev<<8|cur]++
		prev = cur
	}
}

// countTriples counts triples with ordinal [lo, hi). With overlap triple k
// starts at sample k, otherwise at sample 3k.
func countTriples(s []uint8, lo, hi int, overlap bool, h Histogram3D) {
	stride := 3
	if overlap {
		stride = 1
	}
	for k := lo; k < hi; k++ {
		i := k * stride
		h[int(s[i])<<16|int(s[i+1])<<8|int(s[i+2])]++
	}
}
