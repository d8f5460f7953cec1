// Package pool provides the fixed worker pool the accelerated kernels
// parallelize on.
//
// A Pool owns a set of persistent worker goroutines with a shared
// lifetime: once created it is never resized or torn down, and every
// kernel invocation reuses the same workers. This matches the kernels'
// execution model, where each call queues chunks of work and blocks
// until all of them complete.
package pool

import "sync"

// Pool is a fixed-size worker pool.
type Pool struct {
	workers int
	tasks   chan func()
}

// New creates a pool with the given number of persistent workers.
// Counts below 1 are clamped to 1.
func New(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	p := &Pool{
		workers: workers,
		tasks:   make(chan func()),
	}
	for i := 0; i < workers; i++ {
		go p.run()
	}
	return p
}

func (p *Pool) run() {
	for task := range p.tasks {
		task()
	}
}

// Workers returns the number of worker goroutines.
func (p *Pool) Workers() int {
	if p == nil {
		return 1
	}
	return p.workers
}

// Do executes f(i) for every i in [0, n), splitting the range into
// contiguous chunks across the workers and blocking until all chunks
// complete. A nil pool, a single-worker pool, or n == 1 runs
// sequentially on the calling goroutine.
//
// Do must not be called from inside a task already running on the same
// pool; the kernels only ever parallelize one loop level.
func (p *Pool) Do(n int, f func(i int)) {
	if n <= 0 {
		return
	}
	if p == nil || p.workers == 1 || n == 1 {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	chunk := (n + p.workers - 1) / p.workers
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		s, e := start, end
		p.tasks <- func() {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}
	}
	wg.Wait()
}
