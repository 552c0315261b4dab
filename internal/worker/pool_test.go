package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

type countJob struct {
	counter *atomic.Int64
	fail    bool
}

type countResult struct {
	err error
}

func (r *countResult) GetError() error { return r.err }

func (j *countJob) Execute(ctx context.Context) Result {
	j.counter.Add(1)
	if j.fail {
		return &countResult{err: errors.New("job failed")}
	}
	return &countResult{}
}

func TestPool_RunsAllJobs(t *testing.T) {
	var counter atomic.Int64

	pool := NewPool(3)
	pool.Start()
	for i := 0; i < 20; i++ {
		pool.Submit(&countJob{counter: &counter})
	}

	results := pool.Wait()
	if len(results) != 20 {
		t.Fatalf("got %d results, want 20", len(results))
	}
	if counter.Load() != 20 {
		t.Errorf("executed %d jobs, want 20", counter.Load())
	}
}

func TestPool_ErrorsAreReturnedNotDropped(t *testing.T) {
	var counter atomic.Int64

	pool := NewPool(2)
	pool.Start()
	pool.Submit(&countJob{counter: &counter, fail: true})
	pool.Submit(&countJob{counter: &counter})

	results := pool.Wait()
	failures := 0
	for _, r := range results {
		if r.GetError() != nil {
			failures++
		}
	}
	if failures != 1 {
		t.Errorf("got %d failures, want 1", failures)
	}
}

func TestPool_ZeroWorkersClampsToOne(t *testing.T) {
	var counter atomic.Int64

	pool := NewPool(0)
	pool.Start()
	pool.Submit(&countJob{counter: &counter})

	if results := pool.Wait(); len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
}
