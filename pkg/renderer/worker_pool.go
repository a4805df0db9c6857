package renderer

import (
	"context"
	"fmt"
	"image/color"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/df07/tinytracer/pkg/core"
)

// DefaultChunkSize is the number of pixels in one task
const DefaultChunkSize = 1200

// PixelCoord addresses a pixel with j counted from the bottom row
type PixelCoord struct {
	I, J int
}

// PixelResult is a finished pixel
type PixelResult struct {
	PixelCoord
	Color color.RGBA
}

// PixelTask is one unit of work for the pool
type PixelTask struct {
	TaskID int // Also selects the task's random stream
	Pixels []PixelCoord
}

// TaskFunc renders every pixel of a task using the task's own sampler
type TaskFunc func(ctx context.Context, task PixelTask, sampler core.Sampler) ([]PixelResult, error)

// NewPixelTasks partitions pixels into tasks of at most chunkSize pixels
func NewPixelTasks(pixels []PixelCoord, chunkSize int) []PixelTask {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	tasks := make([]PixelTask, 0, (len(pixels)+chunkSize-1)/chunkSize)
	for start := 0; start < len(pixels); start += chunkSize {
		end := min(start+chunkSize, len(pixels))
		tasks = append(tasks, PixelTask{
			TaskID: len(tasks),
			Pixels: pixels[start:end],
		})
	}
	return tasks
}

// WorkerPool runs pixel tasks in parallel. Each task gets a sampler seeded
// from baseSeed+TaskID, so output does not depend on scheduling.
type WorkerPool struct {
	numWorkers int
	baseSeed   int64
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(numWorkers int, baseSeed int64) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{numWorkers: numWorkers, baseSeed: baseSeed}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Run executes every task and hands each task's results to collect on the
// calling goroutine, in completion order. The first failing or panicking
// task cancels the rest and its error is returned.
func (wp *WorkerPool) Run(ctx context.Context, tasks []PixelTask, fn TaskFunc, collect func([]PixelResult)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)

	taskQueue := make(chan PixelTask)
	resultQueue := make(chan []PixelResult, wp.numWorkers)

	g.Go(func() error {
		defer close(taskQueue)
		for _, task := range tasks {
			select {
			case taskQueue <- task:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < wp.numWorkers; w++ {
		g.Go(func() error {
			return wp.runWorker(ctx, taskQueue, resultQueue, fn)
		})
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- g.Wait()
		close(resultQueue)
	}()

	for results := range resultQueue {
		if collect != nil {
			collect(results)
		}
	}

	return <-errChan
}

// runWorker is the main worker loop
func (wp *WorkerPool) runWorker(ctx context.Context, taskQueue <-chan PixelTask, resultQueue chan<- []PixelResult, fn TaskFunc) error {
	for task := range taskQueue {
		if err := ctx.Err(); err != nil {
			return err
		}
		sampler := core.NewSeededSampler(wp.baseSeed + int64(task.TaskID))

		results, err := runTask(ctx, task, sampler, fn)
		if err != nil {
			return err
		}

		select {
		case resultQueue <- results:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// runTask calls fn, turning a panic into an error
func runTask(ctx context.Context, task PixelTask, sampler core.Sampler, fn TaskFunc) (results []PixelResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task %d panicked: %v", task.TaskID, r)
		}
	}()

	results, err = fn(ctx, task, sampler)
	if err != nil {
		return nil, fmt.Errorf("task %d: %w", task.TaskID, err)
	}
	return results, nil
}
