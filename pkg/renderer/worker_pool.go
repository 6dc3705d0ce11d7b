package renderer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-bvh-raytracer/pkg/core"
)

// RowTask is one scanline of one frame
type RowTask struct {
	Frame int
	Row   int
}

// RowFunc renders a single scanline with a sampler owned by the calling
// worker
type RowFunc func(task RowTask, sampler core.Sampler)

// WorkerPool distributes scanlines of a frame over a fixed number of
// goroutines. Rows are disjoint, so workers never share pixels.
type WorkerPool struct {
	numWorkers int
	seed       int64
}

// NewWorkerPool creates a pool with numWorkers goroutines, or one per CPU
// when numWorkers is not positive
func NewWorkerPool(numWorkers int, seed int64) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{numWorkers: numWorkers, seed: seed}
}

// NumWorkers returns the number of goroutines used per frame
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// Run renders rows [0, height) of frame and returns when all rows are done
// or ctx is cancelled
func (wp *WorkerPool) Run(ctx context.Context, frame, height int, render RowFunc) error {
	g, ctx := errgroup.WithContext(ctx)
	tasks := make(chan RowTask)

	g.Go(func() error {
		defer close(tasks)
		for row := 0; row < height; row++ {
			select {
			case tasks <- RowTask{Frame: frame, Row: row}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for i := 0; i < wp.numWorkers; i++ {
		g.Go(func() error {
			for task := range tasks {
				if err := ctx.Err(); err != nil {
					return err
				}
				render(task, wp.sampler(task))
			}
			return nil
		})
	}

	return g.Wait()
}

// sampler returns a deterministic sampler for a row so that the image does
// not depend on which worker picked the row up
func (wp *WorkerPool) sampler(task RowTask) core.Sampler {
	seed := wp.seed + int64(task.Frame)*1_000_003 + int64(task.Row)
	return core.NewSeededSampler(seed)
}
