package utils

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerPoolRunsAllJobs(t *testing.T) {
	pool := NewWorkerPool(3)
	var done int64

	for i := 0; i < 20; i++ {
		pool.Submit(func() error {
			atomic.AddInt64(&done, 1)
			return nil
		})
	}

	if err := pool.Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if done != 20 {
		t.Errorf("jobs completed: got %d, want 20", done)
	}
}

func TestWorkerPoolBoundsConcurrency(t *testing.T) {
	pool := NewWorkerPool(2)
	var running, peak int64

	for i := 0; i < 10; i++ {
		pool.Submit(func() error {
			n := atomic.AddInt64(&running, 1)
			for {
				p := atomic.LoadInt64(&peak)
				if n <= p || atomic.CompareAndSwapInt64(&peak, p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt64(&running, -1)
			return nil
		})
	}
	_ = pool.Wait()

	if peak > 2 {
		t.Errorf("peak concurrency: got %d, want <= 2", peak)
	}
}

func TestWorkerPoolCollectsErrors(t *testing.T) {
	errA := errors.New("a failed")
	errB := errors.New("b failed")

	pool := NewWorkerPool(2)
	pool.Submit(func() error { return errA })
	pool.Submit(func() error { return nil })
	pool.Submit(func() error { return errB })

	err := pool.Wait()
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Errorf("expected both job errors, got %v", err)
	}
}

func TestNewWorkerPoolClampsSize(t *testing.T) {
	pool := NewWorkerPool(0)
	if pool.maxWorkers != 1 {
		t.Errorf("maxWorkers: got %d, want 1", pool.maxWorkers)
	}
}
