package integrator

import (
	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/scene"
)

// DebugMode selects what DebugIntegrator visualizes
type DebugMode int

const (
	DebugAlbedo DebugMode = iota
	DebugNormal
	DebugDepth
)

// DebugIntegrator shows a single surface property of the first hit
type DebugIntegrator struct {
	scene  *scene.Scene
	mode   DebugMode
	config Config
}

// NewDebugIntegrator creates a visualizer for the given mode
func NewDebugIntegrator(s *scene.Scene, mode DebugMode, config Config) *DebugIntegrator {
	return &DebugIntegrator{scene: s, mode: mode, config: config}
}

// Trace returns the visualized property, or the sky color on a miss
func (d *DebugIntegrator) Trace(ray core.Ray, _ core.Sampler) core.Vec3 {
	h, ok := intersect(d.scene, &ray)
	if !ok {
		return d.config.SkyColor
	}
	switch d.mode {
	case DebugNormal:
		return h.N.Add(core.Splat(1)).Multiply(0.5)
	case DebugDepth:
		return core.Splat(0.1 * ray.T)
	default:
		return h.albedo
	}
}
