// Package config reads render settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/geometry"
	"github.com/df07/go-bvh-raytracer/pkg/integrator"
	"github.com/df07/go-bvh-raytracer/pkg/renderer"
)

// RenderConfig holds every setting of a render run
type RenderConfig struct {
	Width        int     `toml:"width"`
	Height       int     `toml:"height"`
	Frames       int     `toml:"frames"`
	AntiAliasing bool    `toml:"anti_aliasing"`
	Workers      int     `toml:"workers"`
	Gamma        float64 `toml:"gamma"`
	Seed         int64   `toml:"seed"`
	Time         float64 `toml:"time"`
	TimeStep     float64 `toml:"time_step"`

	Integrator  string  `toml:"integrator"`
	DepthLimit  int     `toml:"depth_limit"`
	IOR         float64 `toml:"ior"`
	Epsilon     float64 `toml:"epsilon"`
	Hemisphere  string  `toml:"hemisphere"`
	SamplesPer  int     `toml:"samples_per_trace"`
	SplitPolicy string  `toml:"split_policy"`

	Scene     string `toml:"scene"`      // builtin scene id or "file"
	SceneFile string `toml:"scene_file"` // YAML description, used with scene = "file"
	Mesh      string `toml:"mesh"`       // triangle soup or PLY for the triangles scene
	Texture   string `toml:"texture"`    // wall texture for the room scene
	Output    string `toml:"output"`
}

// DefaultConfig returns the settings used when no file is given
func DefaultConfig() RenderConfig {
	ic := integrator.DefaultConfig()
	rc := renderer.DefaultConfig()
	return RenderConfig{
		Width:        rc.Width,
		Height:       rc.Height,
		Frames:       16,
		AntiAliasing: rc.AntiAliasing,
		Workers:      rc.Workers,
		Gamma:        rc.Gamma,
		Seed:         rc.Seed,
		Integrator:   "whitted",
		DepthLimit:   ic.DepthLimit,
		IOR:          ic.IOR,
		Epsilon:      ic.Epsilon,
		Hemisphere:   ic.Hemisphere.String(),
		SamplesPer:   ic.SamplesPerTrace,
		SplitPolicy:  geometry.SplitSAH.String(),
		Scene:        "room",
	}
}

// Load reads path over the defaults. Keys the file sets but RenderConfig
// does not know are an error.
func Load(path string) (RenderConfig, error) {
	c := DefaultConfig()
	meta, err := toml.DecodeFile(path, &c)
	if err != nil {
		return RenderConfig{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		var err errUnknownConfig
		for _, key := range undecoded {
			err = append(err, key.String())
		}
		return RenderConfig{}, err
	}
	return c, nil
}

// errUnknownConfig lists keys present in the file but not in RenderConfig
type errUnknownConfig []string

func (e errUnknownConfig) Error() string {
	return "unknown config keys: [" + strings.Join(e, ", ") + "]"
}

// ValidationError describes one invalid setting
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Validate checks every setting and returns all problems joined together
func (c RenderConfig) Validate() error {
	var errs []error
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if c.Width <= 0 || c.Height <= 0 {
		add("width/height", "image size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.Frames <= 0 {
		add("frames", "must be positive, got %d", c.Frames)
	}
	if c.Gamma <= 0 {
		add("gamma", "must be positive, got %g", c.Gamma)
	}
	if c.DepthLimit < 0 {
		add("depth_limit", "must not be negative, got %d", c.DepthLimit)
	}
	if c.IOR < 1 {
		add("ior", "must be at least 1, got %g", c.IOR)
	}
	if c.Epsilon <= 0 {
		add("epsilon", "must be positive, got %g", c.Epsilon)
	}
	if !slices.Contains(integrator.Names, c.Integrator) {
		add("integrator", "unknown integrator %q (want one of %s)", c.Integrator, strings.Join(integrator.Names, ", "))
	}
	if _, err := integrator.ParseHemisphereSampling(c.Hemisphere); err != nil {
		add("hemisphere", "%v", err)
	}
	if _, err := geometry.ParseSplitPolicy(c.SplitPolicy); err != nil {
		add("split_policy", "%v", err)
	}
	if c.Scene == "" {
		add("scene", "must not be empty")
	}
	if c.Scene == "file" && c.SceneFile == "" {
		add("scene_file", "required when scene is \"file\"")
	}

	return errors.Join(errs...)
}

// IntegratorConfig converts the light transport settings
func (c RenderConfig) IntegratorConfig() (integrator.Config, error) {
	h, err := integrator.ParseHemisphereSampling(c.Hemisphere)
	if err != nil {
		return integrator.Config{}, err
	}
	ic := integrator.DefaultConfig()
	ic.DepthLimit = c.DepthLimit
	ic.IOR = c.IOR
	ic.Epsilon = c.Epsilon
	ic.Hemisphere = h
	ic.SamplesPerTrace = c.SamplesPer
	if c.Integrator == "path" {
		// A closed room gathers no light from outside
		ic.SkyColor = core.Vec3{}
	}
	return ic, nil
}

// RendererConfig converts the frame driver settings
func (c RenderConfig) RendererConfig() renderer.Config {
	return renderer.Config{
		Width:        c.Width,
		Height:       c.Height,
		AntiAliasing: c.AntiAliasing,
		Workers:      c.Workers,
		Seed:         c.Seed,
		Gamma:        c.Gamma,
		StartTime:    c.Time,
		TimeStep:     c.TimeStep,
	}
}

// Policy returns the parsed BVH split policy
func (c RenderConfig) Policy() (geometry.SplitPolicy, error) {
	return geometry.ParseSplitPolicy(c.SplitPolicy)
}
