package renderer

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/df07/go-bvh-raytracer/pkg/core"
)

func TestWorkerPool_RendersEveryRowOnce(t *testing.T) {
	for _, workers := range []int{1, 3, 8} {
		pool := NewWorkerPool(workers, 1)
		if pool.NumWorkers() != workers {
			t.Fatalf("expected %d workers, got %d", workers, pool.NumWorkers())
		}

		counts := make([]int32, 37)
		err := pool.Run(context.Background(), 0, len(counts), func(task RowTask, _ core.Sampler) {
			atomic.AddInt32(&counts[task.Row], 1)
		})
		if err != nil {
			t.Fatalf("workers=%d: unexpected error: %v", workers, err)
		}
		for row, c := range counts {
			if c != 1 {
				t.Errorf("workers=%d: row %d rendered %d times", workers, row, c)
			}
		}
	}
}

func TestWorkerPool_DefaultsToCPUCount(t *testing.T) {
	if NewWorkerPool(0, 0).NumWorkers() < 1 {
		t.Error("expected at least one worker")
	}
}

func TestWorkerPool_SamplersDependOnRowNotWorker(t *testing.T) {
	first := func(workers int) map[int]float64 {
		var mu sync.Mutex
		values := make(map[int]float64)
		pool := NewWorkerPool(workers, 7)
		err := pool.Run(context.Background(), 2, 16, func(task RowTask, s core.Sampler) {
			v := s.Get1D()
			mu.Lock()
			values[task.Row] = v
			mu.Unlock()
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return values
	}

	a, b := first(1), first(4)
	for row, v := range a {
		if b[row] != v {
			t.Errorf("row %d: sampler differs between pool sizes (%g vs %g)", row, v, b[row])
		}
	}
	if a[0] == a[1] {
		t.Error("neighbouring rows should get different samplers")
	}
}

func TestWorkerPool_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pool := NewWorkerPool(2, 0)
	err := pool.Run(ctx, 0, 1000, func(RowTask, core.Sampler) {})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
