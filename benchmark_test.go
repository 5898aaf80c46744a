package bytestats

import (
	"math/rand/v2"
	"strconv"
	"testing"
)

func benchData(n int) []byte {
	r := rand.New(rand.NewPCG(1, 2))
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = byte(r.Uint32())
	}
	return buf
}

// BenchmarkValueHistogram benchmarks the 1D histogram for each dtype.
func BenchmarkValueHistogram(b *testing.B) {
	buf := benchData(1 << 20)
	for _, dt := range Dtypes() {
		b.Run(dt.String(), func(b *testing.B) {
			b.SetBytes(int64(len(buf)))
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := ValueHistogram(buf, dt); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkPairHistogram(b *testing.B) {
	buf := benchData(1 << 20)
	b.SetBytes(int64(len(buf)))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := PairHistogram(buf, DtypeU8); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkTripleHistogram(b *testing.B) {
	buf := benchData(1 << 20)
	for _, overlap := range []bool{false, true} {
		b.Run("overlap="+strconv.FormatBool(overlap), func(b *testing.B) {
			b.SetBytes(int64(len(buf)))
			for i := 0; i < b.N; i++ {
				if _, err := TripleHistogram(buf, DtypeU8, overlap); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkEntropy(b *testing.B) {
	buf := benchData(1 << 20)
	for _, w := range []int{64, 256, 4096} {
		b.Run(strconv.Itoa(w), func(b *testing.B) {
			b.SetBytes(int64(len(buf)))
			for i := 0; i < b.N; i++ {
				if _, err := Entropy(buf, w); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkGenerateCurve(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := GenerateCurve(256, 1024); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkAnalyzer_Workers compares inline analysis against the worker pool.
func BenchmarkAnalyzer_Workers(b *testing.B) {
	buf := benchData(8 << 20)
	reqs := []Request{
		{Kind: KindHistogram1D, Dtype: DtypeU16},
		{Kind: KindHistogram2D, Dtype: DtypeU8},
		{Kind: KindEntropy, WindowSize: 256},
	}
	for _, workers := range []int{1, 2, 4, 8} {
		a := NewAnalyzer(WithWorkers(workers), WithChunkSize(1<<20))
		for _, req := range reqs {
			b.Run(req.Kind.String()+"/workers="+strconv.Itoa(workers), func(b *testing.B) {
				b.SetBytes(int64(len(buf)))
				for i := 0; i < b.N; i++ {
					if _, err := a.Analyze(buf, req); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
		a.Close()
	}
}

func BenchmarkAnalyzer_CacheHit(b *testing.B) {
	buf := benchData(1 << 20)
	a := NewAnalyzer(WithCache(8, 0))
	defer a.Close()
	req := Request{Kind: KindHistogram2D, Dtype: DtypeU8}
	if _, err := a.Analyze(buf, req); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := a.Analyze(buf, req); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDotPlot(b *testing.B) {
	buf := benchData(1 << 20)
	opts := DotPlotOptions{Size: 256, Rand: rand.New(rand.NewPCG(3, 4))}
	for i := 0; i < b.N; i++ {
		if _, err := DotPlot(buf, opts); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBuildOverview(b *testing.B) {
	buf := benchData(1 << 20)
	opts := OverviewOptions{ByteClasses: true, Hilbert: true}
	for i := 0; i < b.N; i++ {
		if _, err := BuildOverview(buf, 64, 256, opts); err != nil {
			b.Fatal(err)
		}
	}
}
