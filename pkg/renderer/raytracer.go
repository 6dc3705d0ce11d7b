package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"go.uber.org/zap"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/integrator"
	"github.com/df07/go-bvh-raytracer/pkg/scene"
)

// Config contains frame driver settings
type Config struct {
	Width        int
	Height       int
	AntiAliasing bool    // 4 jittered sub-pixel samples per pixel and frame
	Workers      int     // <= 0 uses one worker per CPU
	Seed         int64   // base seed for per-row samplers
	Gamma        float64 // output gamma, 1 disables correction
	StartTime    float64 // scene time of the first frame
	TimeStep     float64 // scene time advance per frame, 0 keeps the scene static
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:        640,
		Height:       400,
		AntiAliasing: false,
		Workers:      0,
		Seed:         42,
		Gamma:        2.2,
	}
}

// Raytracer drives the integrator over every pixel of the image and
// accumulates the results progressively
type Raytracer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	camera     *Camera
	config     Config
	pool       *WorkerPool
	accum      *Accumulator
	frame      int
	logger     *zap.Logger
}

// NewRaytracer creates a frame driver. A nil logger disables logging.
func NewRaytracer(s *scene.Scene, in integrator.Integrator, config Config, logger *zap.Logger) (*Raytracer, error) {
	if config.Width <= 0 || config.Height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", config.Width, config.Height)
	}
	if config.Gamma <= 0 {
		config.Gamma = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Raytracer{
		scene:      s,
		integrator: in,
		camera:     NewCamera(s.Camera, config.Width, config.Height),
		config:     config,
		pool:       NewWorkerPool(config.Workers, config.Seed),
		accum:      NewAccumulator(config.Width, config.Height),
		logger:     logger,
	}, nil
}

// Camera returns the camera built from the scene
func (rt *Raytracer) Camera() *Camera {
	return rt.camera
}

// Accumulator returns the accumulated image buffer
func (rt *Raytracer) Accumulator() *Accumulator {
	return rt.accum
}

// Frame returns the number of frames rendered so far
func (rt *Raytracer) Frame() int {
	return rt.frame
}

// RenderFrame renders one frame. The scene time is set before any worker
// starts, so tracing only ever reads the scene. An animated scene restarts
// the accumulation every frame; a static one keeps refining it.
func (rt *Raytracer) RenderFrame(ctx context.Context) (FrameStats, error) {
	t := rt.config.StartTime + float64(rt.frame)*rt.config.TimeStep
	if rt.frame == 0 || rt.config.TimeStep != 0 {
		rt.scene.SetTime(t)
	}
	if rt.config.TimeStep != 0 {
		rt.accum.Reset()
	}

	// The sample only counts once every row has been blended, so a
	// cancelled frame leaves Count unchanged and the next frame redoes it.
	n := rt.accum.Count() + 1
	start := time.Now()
	err := rt.pool.Run(ctx, rt.frame, rt.config.Height, func(task RowTask, sampler core.Sampler) {
		rt.renderRow(task.Row, n, sampler)
	})
	if err != nil {
		return FrameStats{}, fmt.Errorf("frame %d: %w", rt.frame, err)
	}
	rt.accum.advance()
	rt.frame++

	rays := rt.config.Width * rt.config.Height
	if rt.config.AntiAliasing {
		rays *= 4
	}
	stats := FrameStats{
		Frame:       n,
		Time:        t,
		Pixels:      rt.config.Width * rt.config.Height,
		PrimaryRays: rays,
		Duration:    time.Since(start),
		Luminance:   rt.accum.MeanLuminance(),
	}
	rt.logger.Debug("frame rendered",
		zap.Int("frame", rt.frame),
		zap.Int("sample", n),
		zap.Float64("time", t),
		zap.Duration("duration", stats.Duration),
		zap.Float64("luminance", stats.Luminance))
	return stats, nil
}

// Render renders frames frames and returns the final image
func (rt *Raytracer) Render(ctx context.Context, frames int) (*image.RGBA, RenderStats, error) {
	var total RenderStats
	for i := 0; i < frames; i++ {
		fs, err := rt.RenderFrame(ctx)
		if err != nil {
			return nil, total, err
		}
		total.Add(fs)
	}
	rt.logger.Info("render complete",
		zap.Int("frames", total.Frames),
		zap.Int("width", rt.config.Width),
		zap.Int("height", rt.config.Height),
		zap.Duration("duration", total.Duration),
		zap.Float64("mrays_per_sec", total.RaysPerSecond()/1e6))
	return rt.Image(), total, nil
}

// Image returns the accumulated image in 8-bit RGB
func (rt *Raytracer) Image() *image.RGBA {
	return rt.accum.Image(rt.config.Gamma)
}

// renderRow traces one scanline and folds it into the accumulator as
// sample n
func (rt *Raytracer) renderRow(y, n int, sampler core.Sampler) {
	for x := 0; x < rt.config.Width; x++ {
		var c core.Vec3
		if rt.config.AntiAliasing {
			c = rt.antiAliased(x, y, sampler)
		} else {
			c = rt.integrator.Trace(rt.camera.GetPrimaryRay(float64(x), float64(y)), sampler)
		}
		rt.accum.Blend(x, y, n, c)
	}
}

// antiAliased averages four samples placed on the diagonals of a square
// of random size around the pixel
func (rt *Raytracer) antiAliased(x, y int, sampler core.Sampler) core.Vec3 {
	r := sampler.Get1D() * 2 / 4
	offsets := [4][2]float64{{-r, r}, {-r, -r}, {r, r}, {r, -r}}

	var sum core.Vec3
	for _, o := range offsets {
		ray := rt.camera.GetPrimaryRay(float64(x)+o[0], float64(y)+o[1])
		sum = sum.Add(rt.integrator.Trace(ray, sampler))
	}
	return sum.Multiply(0.25)
}
