package parallel

// Range is a half-open interval [Lo, Hi) of item indices.
type Range struct {
	Lo, Hi int
}

// Len returns the number of items in the range.
func (r Range) Len() int {
	return r.Hi - r.Lo
}

// Split cuts n items into consecutive ranges of at most size items. Every
// range except the last starts and ends on a multiple of align, so callers
// can keep multi-item units (entropy windows, disjoint triples) whole.
// A non-positive size yields a single range.
func Split(n, size, align int) []Range {
	if n <= 0 {
		return nil
	}
	align = max(align, 1)
	if size <= 0 || size >= n {
		return []Range{{0, n}}
	}
	size = max(size/align*align, align)
	if size >= n {
		return []Range{{0, n}}
	}

	ranges := make([]Range, 0, (n-1)/size+1)
	for lo := 0; lo < n; lo += size {
		ranges = append(ranges, Range{lo, min(lo+size, n)})
	}
	return ranges
}

// ForEach runs fn for every range on the pool and waits. With a nil pool or
// a single range fn runs on the calling goroutine.
func ForEach(p *Pool, ranges []Range, fn func(i int, r Range)) {
	if p == nil || len(ranges) <= 1 {
		for i, r := range ranges {
			fn(i, r)
		}
		return
	}
	jobs := make([]func(), len(ranges))
	for i, r := range ranges {
		jobs[i] = func() { fn(i, r) }
	}
	p.Run(jobs)
}
