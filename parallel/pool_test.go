package parallel

import (
	"context"
	"sync/atomic"
	"testing"
)

func TestRunAllRunsEveryJob(t *testing.T) {
	p := NewPool(4)
	defer p.Close()

	const n = 50
	var count int64
	jobs := make([]Job, n)
	for i := range jobs {
		jobs[i] = Job{Index: i, Run: func() { atomic.AddInt64(&count, 1) }}
	}
	if err := RunAll(context.Background(), p, jobs); err != nil {
		t.Fatalf("RunAll: %v", err)
	}
	if count != n {
		t.Fatalf("want %d jobs run, got %d", n, count)
	}
}

func TestRunAllStopsDispatchingAfterCancel(t *testing.T) {
	p := NewPool(1)
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var count int64
	jobs := make([]Job, 10)
	for i := range jobs {
		jobs[i] = Job{Index: i, Run: func() { atomic.AddInt64(&count, 1) }}
	}
	err := RunAll(ctx, p, jobs)
	if err == nil {
		t.Fatal("want error from a pre-cancelled context")
	}
}

func TestNewPoolDefaultsWorkerCount(t *testing.T) {
	p := NewPool(0)
	defer p.Close()
	if p.workers <= 0 {
		t.Fatalf("want positive default worker count, got %d", p.workers)
	}
}
