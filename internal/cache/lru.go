package cache

// link is an element of a recency ring. It carries its key so eviction can
// find the map entry.
type link[K comparable] struct {
	key          K
	newer, older *link[K]
}

// recency orders keys from most to least recently used. It is a circular
// list around a sentinel; the zero value is empty and ready to use.
// Not safe for concurrent use.
type recency[K comparable] struct {
	root link[K]
}

func (r *recency[K]) lazyInit() {
	if r.root.older == nil {
		r.root.older = &r.root
		r.root.newer = &r.root
	}
}

// insert records key as the most recent use.
func (r *recency[K]) insert(key K) *link[K] {
	r.lazyInit()
	l := &link[K]{key: key}
	r.attach(l)
	return l
}

// touch moves l to the most recent position.
func (r *recency[K]) touch(l *link[K]) {
	if r.root.older == l {
		return
	}
	r.detach(l)
	r.attach(l)
}

// detach removes l from the ring.
func (r *recency[K]) detach(l *link[K]) {
	l.newer.older = l.older
	l.older.newer = l.newer
	l.newer, l.older = nil, nil
}

// last returns the least recently used link, or nil if the ring is empty.
func (r *recency[K]) last() *link[K] {
	if r.root.newer == nil || r.root.newer == &r.root {
		return nil
	}
	return r.root.newer
}

// attach places l directly after the sentinel on the recent side.
func (r *recency[K]) attach(l *link[K]) {
	head := r.root.older
	l.older = head
	l.newer = &r.root
	head.newer = l
	r.root.older = l
}
