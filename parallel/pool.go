// Package parallel provides a small fixed-size worker pool used to parse a
// batch of sentences concurrently, one Driver per goroutine, sharing one
// read-only Rules/Weights/DepNN/Features collaborator set. This is the
// parallel-scaling boundary: the chart, scratch buffers and sentence-local
// state stay exclusive to each driver, while the heavier, read-only
// collaborators are shared across all of them.
//
// Grounded on gitrdm-gokando's internal/parallel.WorkerPool, simplified to
// a static worker count: that pool's dynamic up/down scaling and deadlock
// detection exist to manage unbounded miniKanren search trees, which has no
// analogue here — a parse batch is a known, finite list of jobs.
package parallel

import (
	"context"
	"fmt"
	"runtime"
	"sync"
)

// Pool runs a fixed number of worker goroutines draining a shared task
// queue until the queue is closed.
type Pool struct {
	workers   int
	tasks     chan func()
	wg        sync.WaitGroup
	startOnce sync.Once
}

// NewPool builds a Pool with workers goroutines. workers <= 0 defaults to
// runtime.NumCPU().
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Pool{workers: workers, tasks: make(chan func())}
}

func (p *Pool) start() {
	p.startOnce.Do(func() {
		p.wg.Add(p.workers)
		for i := 0; i < p.workers; i++ {
			go func() {
				defer p.wg.Done()
				for task := range p.tasks {
					task()
				}
			}()
		}
	})
}

// Job is one unit of batch work: Index indexes into the caller's input
// slice, and Run performs the parse and reports its own result via a
// caller-supplied closure (so Pool stays agnostic of driver.Result).
type Job struct {
	Index int
	Run   func()
}

// RunAll dispatches every job to the pool and blocks until all have
// completed or ctx is cancelled. Jobs already dispatched when ctx is
// cancelled still run to completion; RunAll simply stops enqueuing more.
func RunAll(ctx context.Context, p *Pool, jobs []Job) error {
	p.start()
	var wg sync.WaitGroup
	for i, job := range jobs {
		select {
		case <-ctx.Done():
			wg.Wait()
			return fmt.Errorf("parallel: cancelled after dispatching %d of %d jobs: %w", i, len(jobs), ctx.Err())
		default:
		}
		job := job
		wg.Add(1)
		p.tasks <- func() {
			defer wg.Done()
			job.Run()
		}
	}
	wg.Wait()
	return nil
}

// Close shuts the pool's workers down. A Pool is not usable after Close.
func (p *Pool) Close() {
	p.start()
	close(p.tasks)
	p.wg.Wait()
}
