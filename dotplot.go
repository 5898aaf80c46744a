package bytestats

import (
	"fmt"
	"math/rand/v2"
)

// DefaultMaxSamples is the number of byte pairs compared per block pair.
const DefaultMaxSamples = 10

// sampleRefresh is how many block pairs share one set of sample offsets.
const sampleRefresh = 100

// DotPlotOptions configures DotPlot.
type DotPlotOptions struct {
	// Size is the side of the output matrix. Required.
	Size int

	// Width limits the plot to the first Width bytes; zero uses the whole
	// buffer.
	Width int

	// MaxSamples caps the byte pairs sampled per block pair, on and off the
	// block diagonal each. Zero means DefaultMaxSamples.
	MaxSamples int

	// Rand drives block order and sample offsets. Required; a fixed seed
	// gives a reproducible plot.
	Rand *rand.Rand
}

// DotMatrix is a symmetric self-similarity matrix. Cell (x, y) counts the
// sampled byte pairs of block x and block y that were equal.
type DotMatrix struct {
	Size      int
	BlockSize int
	Cells     []uint32
}

// At returns cell (x, y).
func (m *DotMatrix) At(x, y int) uint32 {
	return m.Cells[y*m.Size+x]
}

// MaxOffDiagonal returns the largest cell not on the main diagonal.
func (m *DotMatrix) MaxOffDiagonal() uint32 {
	var hi uint32
	for y := 0; y < m.Size; y++ {
		for x := 0; x < m.Size; x++ {
			if x != y {
				hi = max(hi, m.Cells[y*m.Size+x])
			}
		}
	}
	return hi
}

type samplePair struct {
	a, b int
}

// DotPlot estimates how similar every block of buf is to every other block.
// The data is cut into Size blocks; for each block pair a random set of
// offsets is compared instead of every byte pair.
func DotPlot(buf []byte, opts DotPlotOptions) (*DotMatrix, error) {
	if opts.Size <= 0 || opts.Rand == nil || opts.Width < 0 || opts.MaxSamples < 0 {
		return nil, fmt.Errorf("%w: dot plot size %d width %d samples %d",
			ErrInvalidArgument, opts.Size, opts.Width, opts.MaxSamples)
	}
	samples := opts.MaxSamples
	if samples == 0 {
		samples = DefaultMaxSamples
	}

	n := len(buf)
	if opts.Width > 0 {
		n = min(n, opts.Width)
	}
	if n == 0 {
		return &DotMatrix{}, nil
	}

	bs := (n + opts.Size - 1) / opts.Size
	m := &DotMatrix{
		Size:      min(n/bs, opts.Size),
		BlockSize: bs,
	}
	m.Cells = make([]uint32, m.Size*m.Size)

	blocks := make([]samplePair, 0, m.Size*(m.Size+1)/2)
	for i := 0; i < m.Size; i++ {
		for j := i; j < m.Size; j++ {
			blocks = append(blocks, samplePair{i, j})
		}
	}
	opts.Rand.Shuffle(len(blocks), func(i, j int) {
		blocks[i], blocks[j] = blocks[j], blocks[i]
	})

	var offsets []samplePair
	for step, k := 0, len(blocks)-1; k >= 0; step, k = step+1, k-1 {
		if step%sampleRefresh == 0 {
			offsets = drawOffsets(opts.Rand, offsets[:0], bs, samples)
		}

		x, y := blocks[k].a, blocks[k].b
		xo, yo := x*bs, y*bs
		for _, o := range offsets {
			if buf[xo+o.a] == buf[yo+o.b] {
				m.Cells[y*m.Size+x]++
				m.Cells[x*m.Size+y]++
			}
		}
	}

	Logger().Debug("bytestats: dot plot",
		"bytes", n, "size", m.Size, "block", bs, "block_pairs", len(blocks))
	return m, nil
}

// drawOffsets appends up to limit diagonal offset pairs (a, a) and up to
// limit off-diagonal pairs (a, b) with a != b inside a block of bs bytes.
func drawOffsets(r *rand.Rand, dst []samplePair, bs, limit int) []samplePair {
	for range min(limit, bs) {
		a := r.IntN(bs)
		dst = append(dst, samplePair{a, a})
	}
	for off := min(limit, bs*bs-bs); off > 0; {
		a, b := r.IntN(bs), r.IntN(bs)
		if a == b {
			continue
		}
		dst = append(dst, samplePair{a, b})
		off--
	}
	return dst
}
