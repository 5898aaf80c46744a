package bytestats

import (
	"fmt"
	"math"
)

// DefaultWindowSize is the entropy window used when a Request leaves
// WindowSize at zero.
const DefaultWindowSize = 256

// MaxEntropy is the entropy of a window holding every byte value equally often.
const MaxEntropy = 8.0

// EntropyCurve holds one Shannon entropy value, in bits per byte, per window.
type EntropyCurve []float64

// Stats returns the minimum, maximum and mean of the curve.
// An empty curve reports zeros.
func (c EntropyCurve) Stats() (lo, hi, mean float64) {
	if len(c) == 0 {
		return 0, 0, 0
	}
	lo, hi = c[0], c[0]
	var sum float64
	for _, v := range c {
		lo = min(lo, v)
		hi = max(hi, v)
		sum += v
	}
	return lo, hi, sum / float64(len(c))
}

// Entropy partitions buf into consecutive windows of windowSize bytes and
// returns the entropy of each. The final window may be short. An empty
// buffer yields an empty curve.
func Entropy(buf []byte, windowSize int) (EntropyCurve, error) {
	if windowSize <= 0 {
		return nil, fmt.Errorf("%w: window size %d", ErrInvalidArgument, windowSize)
	}
	curve := make(EntropyCurve, windowCount(len(buf), windowSize))
	entropyWindows(buf, windowSize, curve, 0)
	return curve, nil
}

// ShannonEntropy returns the entropy of the byte distribution of buf.
func ShannonEntropy(buf []byte) float64 {
	var counts [Bins]int
	for _, b := range buf {
		counts[b]++
	}
	return entropyOf(&counts, len(buf))
}

// windowCount returns ceil(n / windowSize) without overflowing for window
// sizes near math.MaxInt.
func windowCount(n, windowSize int) int {
	if n <= 0 {
		return 0
	}
	return (n-1)/windowSize + 1
}

// entropyWindows fills out with the entropy of windows first, first+1, ...
// of buf.
func entropyWindows(buf []byte, windowSize int, out []float64, first int) {
	var counts [Bins]int
	for k := range out {
		lo := (first + k) * windowSize
		hi := min(lo+windowSize, len(buf))
		clear(counts[:])
		for _, b := range buf[lo:hi] {
			counts[b]++
		}
		out[k] = entropyOf(&counts, hi-lo)
	}
}

func entropyOf(counts *[Bins]int, n int) float64 {
	if n == 0 {
		return 0
	}
	inv := 1 / float64(n)
	var h float64
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) * inv
		h -= p * math.Log2(p)
	}
	// Rounding can push a uniform window a hair past the bound.
	return min(max(h, 0), MaxEntropy)
}
