package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool runs batches of chunk jobs on a fixed set of goroutines.
//
// Every worker has its own queue and takes jobs from its neighbours once
// that queue runs dry, so a batch whose chunks finish unevenly still keeps
// all workers busy. Consecutive batches start on different queues.
//
// A Pool is safe for concurrent use. A job must not call Run on the pool
// that is executing it.
type Pool struct {
	queues []chan job
	quit   chan struct{}
	wg     sync.WaitGroup
	cursor atomic.Uint32

	// mu is held for reading while a batch is queued, so Close never
	// interleaves with dispatch.
	mu   sync.RWMutex
	open bool
}

// job is one unit of a batch.
type job struct {
	fn func()
	b  *batch
}

// batch tracks the jobs of a single Run call and the first panic among them.
type batch struct {
	pending sync.WaitGroup
	once    sync.Once
	failure any
}

func (b *batch) run(fn func()) {
	defer b.pending.Done()
	defer func() {
		if r := recover(); r != nil {
			b.once.Do(func() { b.failure = r })
		}
	}()
	fn()
}

// NewPool starts a pool of n workers. A non-positive n uses GOMAXPROCS.
func NewPool(n int) *Pool {
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	depth := max(4*n, 8)

	p := &Pool{
		queues: make([]chan job, n),
		quit:   make(chan struct{}),
	}
	for i := range p.queues {
		p.queues[i] = make(chan job, depth)
	}
	p.open = true

	p.wg.Add(n)
	for i := range n {
		go p.loop(i)
	}
	return p
}

func (p *Pool) loop(id int) {
	defer p.wg.Done()
	own := p.queues[id]

	for {
		select {
		case j := <-own:
			j.b.run(j.fn)
			continue
		case <-p.quit:
			p.flush(own)
			return
		default:
		}

		if j, ok := p.steal(id); ok {
			j.b.run(j.fn)
			continue
		}

		select {
		case j := <-own:
			j.b.run(j.fn)
		case <-p.quit:
			p.flush(own)
			return
		}
	}
}

// flush runs whatever is still queued on q.
func (p *Pool) flush(q chan job) {
	for {
		select {
		case j := <-q:
			j.b.run(j.fn)
		default:
			return
		}
	}
}

// steal scans the other queues, starting at the right-hand neighbour.
func (p *Pool) steal(id int) (job, bool) {
	n := len(p.queues)
	for k := 1; k < n; k++ {
		select {
		case j := <-p.queues[(id+k)%n]:
			return j, true
		default:
		}
	}
	return job{}, false
}

// Run executes every function and returns once all of them finished. On a
// closed pool the functions run on the calling goroutine. If a function
// panics, Run re-panics with the first recovered value after the rest of
// the batch has completed.
func (p *Pool) Run(fns []func()) {
	if len(fns) == 0 {
		return
	}

	b := &batch{}
	b.pending.Add(len(fns))

	p.mu.RLock()
	if p.open {
		n := len(p.queues)
		start := int(p.cursor.Add(1))
		for i, fn := range fns {
			p.queues[(start+i)%n] <- job{fn: fn, b: b}
		}
		p.mu.RUnlock()
	} else {
		p.mu.RUnlock()
		for _, fn := range fns {
			b.run(fn)
		}
	}

	b.pending.Wait()
	if b.failure != nil {
		panic(b.failure)
	}
}

// Close stops the workers once their queues are empty. It is idempotent.
func (p *Pool) Close() {
	p.mu.Lock()
	if !p.open {
		p.mu.Unlock()
		return
	}
	p.open = false
	close(p.quit)
	p.mu.Unlock()
	p.wg.Wait()
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return len(p.queues)
}

// Open reports whether the pool still dispatches to its workers.
func (p *Pool) Open() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.open
}
