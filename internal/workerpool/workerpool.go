// Package workerpool runs row-range loops on a fixed set of goroutines.
//
// A Pool is created once and reused for every filter call, so no goroutines
// are spawned per image:
//
//	pool := workerpool.New(0) // GOMAXPROCS workers
//	defer pool.Close()
//
//	pool.ParallelFor(height, 8, func(start, end int) {
//	    filterRows(start, end)
//	})
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a persistent set of worker goroutines.
type Pool struct {
	numWorkers int
	workC      chan task
	closeOnce  sync.Once
	closed     atomic.Bool
}

type task struct {
	fn   func()
	done *sync.WaitGroup
}

// New starts a pool with numWorkers goroutines. numWorkers <= 0 selects
// GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		workC:      make(chan task, numWorkers*2),
	}

	for range numWorkers {
		go p.worker()
	}

	return p
}

func (p *Pool) worker() {
	for t := range p.workC {
		t.fn()
		t.done.Done()
	}
}

// NumWorkers returns the number of worker goroutines.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Closed reports whether Close has been called.
func (p *Pool) Closed() bool {
	return p.closed.Load()
}

// Close stops the workers after pending tasks finish. Safe to call more than
// once. A closed pool still accepts work and runs it on the caller.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// ParallelFor splits [0, n) into contiguous ranges of at least grain items
// and runs fn on each range. It blocks until all ranges are done.
func (p *Pool) ParallelFor(n, grain int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	if grain < 1 {
		grain = 1
	}

	workers := min(p.numWorkers, (n+grain-1)/grain)
	if workers <= 1 || p.closed.Load() {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup

	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)

		wg.Add(1)

		p.workC <- task{
			fn:   func() { fn(start, end) },
			done: &wg,
		}
	}

	wg.Wait()
}

// ParallelForAtomic hands out blocks of grain items in [0, n) from a shared
// counter until the range is exhausted. It has the same shape as ParallelFor.
// Suited to rows of uneven cost.
func (p *Pool) ParallelForAtomic(n, grain int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	if grain < 1 {
		grain = 1
	}

	blocks := (n + grain - 1) / grain

	workers := min(p.numWorkers, blocks)
	if workers <= 1 || p.closed.Load() {
		fn(0, n)
		return
	}

	var (
		next atomic.Int64
		wg   sync.WaitGroup
	)

	wg.Add(workers)

	for range workers {
		p.workC <- task{
			fn: func() {
				for {
					b := int(next.Add(1)) - 1
					if b >= blocks {
						return
					}

					fn(b*grain, min((b+1)*grain, n))
				}
			},
			done: &wg,
		}
	}

	wg.Wait()
}

// Serial runs fn over the whole range on the calling goroutine. It has the
// same shape as (*Pool).ParallelFor so callers can switch between the two.
func Serial(n, _ int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	fn(0, n)
}
