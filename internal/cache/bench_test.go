package cache

import "testing"

type benchKey struct {
	length int
	digest uint64
}

func BenchmarkCache_GetHit(b *testing.B) {
	c := New[benchKey, []float64](128, 0)
	for i := range 100 {
		c.Set(benchKey{i, uint64(i) * 31}, make([]float64, 16), 128)
	}
	k := benchKey{50, 50 * 31}

	b.ReportAllocs()
	for b.Loop() {
		c.Get(k)
	}
}

// BenchmarkCache_SetEvictByCost keeps the cache at its cost bound so every
// Set evicts.
func BenchmarkCache_SetEvictByCost(b *testing.B) {
	c := New[benchKey, []float64](0, 64<<10)
	v := make([]float64, 1024)

	b.ReportAllocs()
	i := 0
	for b.Loop() {
		c.Set(benchKey{i, uint64(i)}, v, 8<<10)
		i++
	}
}
