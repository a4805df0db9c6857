package renderer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/df07/tinytracer/pkg/core"
	"github.com/df07/tinytracer/pkg/integrator"
	"github.com/df07/tinytracer/pkg/scene"
)

// Config contains rendering configuration
type Config struct {
	Width            int   // Image width
	Height           int   // Image height
	SamplesPerPixel  int   // Number of rays per pixel
	MaxDepth         int   // Maximum ray bounce depth
	NumWorkers       int   // Number of parallel workers (0 = use CPU count)
	ChunkSize        int   // Pixels per task (0 = DefaultChunkSize)
	Seed             int64 // Base seed for the per-task random streams
	ProgressInterval int   // Pixels between progress reports (0 = DefaultProgressInterval)
}

// Validate rejects configurations that cannot be rendered
func (c Config) Validate() error {
	var errs []error
	if c.Width < 1 || c.Height < 1 {
		errs = append(errs, fmt.Errorf("image size must be at least 1x1, got %dx%d", c.Width, c.Height))
	}
	if c.SamplesPerPixel < 1 {
		errs = append(errs, fmt.Errorf("samples per pixel must be at least 1, got %d", c.SamplesPerPixel))
	}
	if c.MaxDepth < 1 {
		errs = append(errs, fmt.Errorf("max depth must be at least 1, got %d", c.MaxDepth))
	}
	if c.NumWorkers < 0 || c.ChunkSize < 0 {
		errs = append(errs, errors.New("workers and chunk size must not be negative"))
	}
	return errors.Join(errs...)
}

// Raytracer renders a scene into an image using a worker pool
type Raytracer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	config     Config
	logger     core.Logger
	onProgress func(ProgressUpdate)
	now        func() time.Time
}

// NewRaytracer creates a new raytracer. A nil integrator selects path tracing
// and a nil logger discards output.
func NewRaytracer(s *scene.Scene, integ integrator.Integrator, config Config, logger core.Logger) *Raytracer {
	if integ == nil {
		integ = integrator.NewPathTracingIntegrator(integrator.PathTracingConfig{})
	}
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Raytracer{
		scene:      s,
		integrator: integ,
		config:     config,
		logger:     logger,
		now:        time.Now,
	}
}

// SetProgressCallback registers fn to receive progress reports. It is called
// from the goroutine running Render, never concurrently.
func (rt *Raytracer) SetProgressCallback(fn func(ProgressUpdate)) {
	rt.onProgress = fn
}

// Render freezes the scene, renders every pixel and assembles the image.
// Rows are stored top-down.
func (rt *Raytracer) Render(ctx context.Context) (*image.RGBA, RenderStats, error) {
	if err := rt.config.Validate(); err != nil {
		return nil, RenderStats{}, fmt.Errorf("invalid render config: %w", err)
	}
	if err := rt.scene.Freeze(); err != nil {
		return nil, RenderStats{}, fmt.Errorf("invalid scene: %w", err)
	}

	width, height := rt.config.Width, rt.config.Height
	totalPixels := width * height

	// Flat work list, top row first
	pixels := make([]PixelCoord, 0, totalPixels)
	for j := height - 1; j >= 0; j-- {
		for i := 0; i < width; i++ {
			pixels = append(pixels, PixelCoord{I: i, J: j})
		}
	}

	tasks := NewPixelTasks(pixels, rt.config.ChunkSize)
	pool := NewWorkerPool(rt.config.NumWorkers, rt.config.Seed)

	rt.logger.Printf("Starting render: %dx%d, %d samples per pixel\n", width, height, rt.config.SamplesPerPixel)
	rt.logger.Printf("Total pixels: %d (%d tasks on %d workers)\n", totalPixels, len(tasks), pool.GetNumWorkers())

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	progress := newProgressTracker(totalPixels, rt.config.ProgressInterval, rt.now)
	start := rt.now()

	renderTask := func(ctx context.Context, task PixelTask, sampler core.Sampler) ([]PixelResult, error) {
		results := make([]PixelResult, 0, len(task.Pixels))
		for _, p := range task.Pixels {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			c := RenderPixel(rt.scene.Camera, rt.scene, rt.integrator,
				p.I, p.J, width, height, rt.config.SamplesPerPixel, rt.config.MaxDepth, sampler)
			results = append(results, PixelResult{PixelCoord: p, Color: c})
		}
		return results, nil
	}

	collect := func(results []PixelResult) {
		for _, r := range results {
			img.SetRGBA(r.I, height-1-r.J, r.Color)
		}
		if update, ok := progress.add(len(results)); ok {
			logProgress(rt.logger, update)
			if rt.onProgress != nil {
				rt.onProgress(update)
			}
		}
	}

	err := pool.Run(ctx, tasks, renderTask, collect)
	rt.logger.Printf("\n")
	if err != nil {
		return nil, RenderStats{}, fmt.Errorf("render aborted: %w", err)
	}

	stats := RenderStats{
		TotalPixels:     totalPixels,
		TotalSamples:    totalPixels * rt.config.SamplesPerPixel,
		SamplesPerPixel: rt.config.SamplesPerPixel,
		NumWorkers:      pool.GetNumWorkers(),
		NumTasks:        len(tasks),
		Elapsed:         rt.now().Sub(start),
	}

	return img, stats, nil
}
