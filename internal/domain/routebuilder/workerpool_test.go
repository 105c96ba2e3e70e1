package routebuilder

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerPool_Submit_ReturnsResult(t *testing.T) {
	pool := NewWorkerPool(2)
	out := pool.Submit(func() Output {
		return Output{Warnings: []string{"done"}}
	})
	if len(out.Warnings) != 1 || out.Warnings[0] != "done" {
		t.Fatalf("got %+v, want one warning %q", out, "done")
	}
}

func TestWorkerPool_BoundsConcurrency(t *testing.T) {
	pool := NewWorkerPool(2)
	var inFlight, maxInFlight int32

	fns := make([]func() Output, 6)
	for i := range fns {
		fns[i] = func() Output {
			n := atomic.AddInt32(&inFlight, 1)
			for {
				max := atomic.LoadInt32(&maxInFlight)
				if n <= max || atomic.CompareAndSwapInt32(&maxInFlight, max, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			atomic.AddInt32(&inFlight, -1)
			return Output{}
		}
	}

	SubmitAll(pool, fns)

	if got := atomic.LoadInt32(&maxInFlight); got > 2 {
		t.Errorf("observed %d closures in flight at once, pool size was 2", got)
	}
}

func TestNewWorkerPool_NonPositiveSizeDefaultsToOne(t *testing.T) {
	pool := NewWorkerPool(0)
	if cap(pool.semaphore) != 1 {
		t.Errorf("got semaphore capacity %d, want 1", cap(pool.semaphore))
	}
}
