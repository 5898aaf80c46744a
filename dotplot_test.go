package bytestats

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 1))
}

func TestDotPlot_Deterministic(t *testing.T) {
	buf := randomBytes(21, 10_000)
	a, err := DotPlot(buf, DotPlotOptions{Size: 64, Rand: seeded(5)})
	if err != nil {
		t.Fatalf("DotPlot() error = %v", err)
	}
	b, err := DotPlot(buf, DotPlotOptions{Size: 64, Rand: seeded(5)})
	if err != nil {
		t.Fatalf("DotPlot() error = %v", err)
	}
	if !slices.Equal(a.Cells, b.Cells) {
		t.Error("same seed produced different matrices")
	}
}

func TestDotPlot_Symmetric(t *testing.T) {
	buf := randomBytes(22, 5000)
	for i := 0; i < 1000; i++ {
		buf[i] = 0 // a repeated run lights up its blocks
	}
	m, err := DotPlot(buf, DotPlotOptions{Size: 50, MaxSamples: 20, Rand: seeded(9)})
	if err != nil {
		t.Fatalf("DotPlot() error = %v", err)
	}
	if m.Size != 50 || m.BlockSize != 100 {
		t.Fatalf("Size=%d BlockSize=%d, want 50/100", m.Size, m.BlockSize)
	}
	for y := 0; y < m.Size; y++ {
		for x := 0; x < m.Size; x++ {
			if m.At(x, y) != m.At(y, x) {
				t.Fatalf("At(%d,%d)=%d != At(%d,%d)=%d", x, y, m.At(x, y), y, x, m.At(y, x))
			}
		}
	}
	// Diagonal samples (a, a) always match: 20 samples counted twice.
	for i := 0; i < m.Size; i++ {
		if m.At(i, i) < 40 {
			t.Errorf("diagonal At(%d,%d) = %d, want >= 40", i, i, m.At(i, i))
		}
	}
	// Zero blocks match each other on every sample.
	if got := m.At(0, 5); got != 40 {
		t.Errorf("At(0,5) over zero run = %d, want 40", got)
	}
	if m.MaxOffDiagonal() != 40 {
		t.Errorf("MaxOffDiagonal() = %d, want 40", m.MaxOffDiagonal())
	}
}

func TestDotPlot_ShortData(t *testing.T) {
	// Fewer bytes than cells: one byte per block. Diagonal cells count their
	// single sample twice.
	buf := []byte{1, 2, 1, 2}
	m, err := DotPlot(buf, DotPlotOptions{Size: 16, Rand: seeded(1)})
	if err != nil {
		t.Fatalf("DotPlot() error = %v", err)
	}
	if m.Size != 4 || m.BlockSize != 1 {
		t.Fatalf("Size=%d BlockSize=%d, want 4/1", m.Size, m.BlockSize)
	}
	want := []uint32{
		2, 0, 1, 0,
		0, 2, 0, 1,
		1, 0, 2, 0,
		0, 1, 0, 2,
	}
	if !slices.Equal(m.Cells, want) {
		t.Errorf("Cells = %v, want %v", m.Cells, want)
	}
}

func TestDotPlot_Width(t *testing.T) {
	buf := randomBytes(23, 1000)
	m, err := DotPlot(buf, DotPlotOptions{Size: 10, Width: 100, Rand: seeded(2)})
	if err != nil {
		t.Fatalf("DotPlot() error = %v", err)
	}
	if m.BlockSize != 10 {
		t.Errorf("BlockSize = %d, want 10 for 100 bytes", m.BlockSize)
	}
}

func TestDotPlot_Empty(t *testing.T) {
	m, err := DotPlot(nil, DotPlotOptions{Size: 8, Rand: seeded(3)})
	if err != nil {
		t.Fatalf("DotPlot(nil) error = %v", err)
	}
	if m.Size != 0 || len(m.Cells) != 0 {
		t.Errorf("empty DotPlot = %+v", m)
	}
}

func TestDotPlot_Invalid(t *testing.T) {
	tests := []struct {
		name string
		opts DotPlotOptions
	}{
		{"zero size", DotPlotOptions{Rand: seeded(1)}},
		{"nil rand", DotPlotOptions{Size: 4}},
		{"negative samples", DotPlotOptions{Size: 4, MaxSamples: -1, Rand: seeded(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DotPlot([]byte{1, 2, 3}, tt.opts); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("DotPlot() error = %v, want ErrInvalidArgument", err)
			}
		})
	}
}
