package cmd

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/urfave/cli"
	"go.uber.org/zap"

	"github.com/df07/go-bvh-raytracer/pkg/config"
	"github.com/df07/go-bvh-raytracer/pkg/integrator"
	"github.com/df07/go-bvh-raytracer/pkg/renderer"
)

// RenderScene renders the configured scene and writes it as a PNG
func RenderScene(ctx *cli.Context) error {
	logger, err := newLogger(ctx)
	if err != nil {
		return err
	}
	defer syncLogger(logger)

	c, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	runID := uuid.New().String()
	logger = logger.With(zap.String("run", runID))

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out, err := render(runCtx, c, runID, logger)
	if err != nil {
		logger.Error("render failed", zap.Error(err))
		return err
	}
	fmt.Fprintf(ctx.App.Writer, "wrote %s\n", out)
	return nil
}

// render runs a full render and returns the path of the written image
func render(ctx context.Context, c config.RenderConfig, runID string, logger *zap.Logger) (string, error) {
	policy, err := c.Policy()
	if err != nil {
		return "", err
	}
	s, err := buildScene(c, policy, logger)
	if err != nil {
		return "", err
	}
	ic, err := c.IntegratorConfig()
	if err != nil {
		return "", err
	}
	in, err := integrator.New(c.Integrator, s, ic)
	if err != nil {
		return "", err
	}

	rt, err := renderer.NewRaytracer(s, in, c.RendererConfig(), logger)
	if err != nil {
		return "", err
	}

	logger.Info("rendering",
		zap.String("scene", c.Scene),
		zap.String("integrator", c.Integrator),
		zap.String("split", policy.String()),
		zap.Int("primitives", s.PrimitiveCount()),
		zap.Int("width", c.Width),
		zap.Int("height", c.Height),
		zap.Int("frames", c.Frames))

	img, _, err := rt.Render(ctx, c.Frames)
	if err != nil {
		return "", err
	}

	out := c.Output
	if out == "" {
		out = filepath.Join("output", fmt.Sprintf("render_%s.png", runID[:8]))
	}
	if err := writePNG(out, img); err != nil {
		return "", err
	}
	return out, nil
}

// writePNG encodes img to path, creating parent directories as needed
func writePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return f.Close()
}
