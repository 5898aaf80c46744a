// Package cache provides the result cache behind bytestats.Analyzer.
//
// Cache[K, V] is a thread-safe LRU bounded both by entry count and by a total
// cost, so a handful of 64 MiB triple histograms cannot crowd out memory
// while many small entropy curves still fit.
//
//	c := cache.New[key, []float64](64, 256<<20)
//	c.Set(k, curve, int64(len(curve))*8)
//	curve, ok := c.Get(k)
//
// Cache must not be copied after creation (it contains a mutex).
package cache
