package parallel

import (
	"runtime"
	"sync"
)

// Pool runs submitted functions on a fixed set of worker goroutines. A
// single-worker pool runs everything inline on the submitting goroutine,
// so callers stay oblivious to the difference.
type Pool struct {
	wg   sync.WaitGroup
	work chan func()
	stop func()
}

// Start launches numWorkers workers. Zero or negative means one worker
// per CPU.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{stop: func() {}}
	if numWorkers == 1 {
		return p
	}

	p.work = make(chan func(), numWorkers)
	p.stop = sync.OnceFunc(func() { close(p.work) })
	for range numWorkers {
		p.wg.Go(func() {
			for f := range p.work {
				f()
			}
		})
	}
	return p
}

// Do schedules f. On a single-worker pool it runs before Do returns;
// otherwise Do blocks while every worker is busy.
func (p *Pool) Do(f func()) {
	if p.work == nil {
		f()
		return
	}
	p.work <- f
}

// Wait stops intake and blocks until every scheduled function has run.
// The pool cannot be reused afterwards.
func (p *Pool) Wait() {
	p.stop()
	p.wg.Wait()
}
