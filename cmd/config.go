package cmd

import (
	"github.com/urfave/cli"

	"github.com/df07/go-bvh-raytracer/pkg/config"
)

// SceneFlags select and parameterize the scene
var SceneFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "config, c",
		Usage: "TOML render settings file",
	},
	cli.StringFlag{
		Name:  "scene, s",
		Usage: "builtin scene id (room, mirrors, triangles) or \"file\"",
	},
	cli.StringFlag{
		Name:  "scene-file",
		Usage: "YAML scene description, used with --scene file",
	},
	cli.StringFlag{
		Name:  "mesh",
		Usage: "triangle soup or PLY mesh for the triangles scene",
	},
	cli.StringFlag{
		Name:  "texture",
		Usage: "PNG or JPEG texture for the room back wall",
	},
	cli.StringFlag{
		Name:  "split",
		Usage: "BVH split policy: sah or midpoint",
	},
	cli.Float64Flag{
		Name:  "time",
		Usage: "scene time for animated scenes",
	},
	cli.Int64Flag{
		Name:  "seed",
		Usage: "random seed",
	},
}

// RenderFlags control the integrator and the frame driver
var RenderFlags = []cli.Flag{
	cli.IntFlag{
		Name:  "width",
		Usage: "image width",
	},
	cli.IntFlag{
		Name:  "height",
		Usage: "image height",
	},
	cli.IntFlag{
		Name:  "frames, f",
		Usage: "number of frames to accumulate",
	},
	cli.BoolFlag{
		Name:  "aa",
		Usage: "4 jittered samples per pixel and frame",
	},
	cli.StringFlag{
		Name:  "integrator, i",
		Usage: "whitted, path, albedo, normal or depth",
	},
	cli.IntFlag{
		Name:  "depth",
		Usage: "recursion depth limit",
	},
	cli.StringFlag{
		Name:  "hemisphere",
		Usage: "diffuse sampling for the path tracer: uniform or cosine",
	},
	cli.IntFlag{
		Name:  "workers, w",
		Usage: "render goroutines, 0 for one per CPU",
	},
	cli.Float64Flag{
		Name:  "time-step",
		Usage: "scene time advance per frame",
	},
	cli.StringFlag{
		Name:  "out, o",
		Usage: "output PNG file",
	},
}

// loadConfig reads --config when given and applies every flag the user
// set on top of it
func loadConfig(ctx *cli.Context) (config.RenderConfig, error) {
	c := config.DefaultConfig()
	if path := ctx.String("config"); path != "" {
		var err error
		if c, err = config.Load(path); err != nil {
			return config.RenderConfig{}, err
		}
	}

	strs := map[string]*string{
		"scene":      &c.Scene,
		"scene-file": &c.SceneFile,
		"mesh":       &c.Mesh,
		"texture":    &c.Texture,
		"split":      &c.SplitPolicy,
		"integrator": &c.Integrator,
		"hemisphere": &c.Hemisphere,
		"out":        &c.Output,
	}
	for name, dst := range strs {
		if ctx.IsSet(name) {
			*dst = ctx.String(name)
		}
	}

	ints := map[string]*int{
		"width":   &c.Width,
		"height":  &c.Height,
		"frames":  &c.Frames,
		"depth":   &c.DepthLimit,
		"workers": &c.Workers,
	}
	for name, dst := range ints {
		if ctx.IsSet(name) {
			*dst = ctx.Int(name)
		}
	}

	if ctx.IsSet("time") {
		c.Time = ctx.Float64("time")
	}
	if ctx.IsSet("time-step") {
		c.TimeStep = ctx.Float64("time-step")
	}
	if ctx.IsSet("seed") {
		c.Seed = ctx.Int64("seed")
	}
	if ctx.IsSet("aa") {
		c.AntiAliasing = ctx.Bool("aa")
	}

	return c, c.Validate()
}
