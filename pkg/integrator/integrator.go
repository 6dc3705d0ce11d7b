package integrator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/material"
	"github.com/df07/go-bvh-raytracer/pkg/scene"
)

// ErrUnknownIntegrator is returned by New for names it does not know
var ErrUnknownIntegrator = errors.New("unknown integrator")

// Integrator computes the radiance arriving along a ray. Implementations
// are safe for concurrent use as long as each goroutine has its own
// sampler and the scene is not being mutated.
type Integrator interface {
	Trace(ray core.Ray, sampler core.Sampler) core.Vec3
}

// HemisphereSampling selects how diffuse bounces pick a direction
type HemisphereSampling int

const (
	HemisphereUniform HemisphereSampling = iota
	HemisphereCosine
)

func (h HemisphereSampling) String() string {
	if h == HemisphereCosine {
		return "cosine"
	}
	return "uniform"
}

// ParseHemisphereSampling converts "uniform" or "cosine"
func ParseHemisphereSampling(name string) (HemisphereSampling, error) {
	switch strings.ToLower(name) {
	case "uniform":
		return HemisphereUniform, nil
	case "cosine":
		return HemisphereCosine, nil
	}
	return HemisphereUniform, fmt.Errorf("unknown hemisphere sampling %q", name)
}

// Config holds the light transport parameters shared by all integrators
type Config struct {
	DepthLimit      int       // recursion ceiling
	IOR             float64   // index of refraction of glass
	Epsilon         float64   // offset applied to secondary ray origins
	SkyColor        core.Vec3 // radiance of rays that escape the scene
	Hemisphere      HemisphereSampling
	SamplesPerTrace int // path tracer samples averaged per Trace call
}

// DefaultConfig returns the settings of the demo renderer
func DefaultConfig() Config {
	return Config{
		DepthLimit:      5,
		IOR:             material.DefaultIOR,
		Epsilon:         0.001,
		SkyColor:        WhittedSky,
		Hemisphere:      HemisphereUniform,
		SamplesPerTrace: 1,
	}
}

// Names lists the integrators New can construct
var Names = []string{"whitted", "path", "albedo", "normal", "depth"}

// New constructs an integrator by name
func New(name string, s *scene.Scene, cfg Config) (Integrator, error) {
	switch strings.ToLower(name) {
	case "whitted":
		return NewWhittedIntegrator(s, cfg), nil
	case "path":
		return NewPathTracingIntegrator(s, cfg), nil
	case "albedo":
		return NewDebugIntegrator(s, DebugAlbedo, cfg), nil
	case "normal":
		return NewDebugIntegrator(s, DebugNormal, cfg), nil
	case "depth":
		return NewDebugIntegrator(s, DebugDepth, cfg), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownIntegrator, name)
}

// traceStats collects per-call diagnostics
type traceStats struct {
	maxDepth int
}

func (st *traceStats) enter(depth int) {
	if st != nil && depth > st.maxDepth {
		st.maxDepth = depth
	}
}

// hit is the shading context of the nearest intersection along a ray
type hit struct {
	I        core.Vec3
	N        core.Vec3
	front    bool
	material material.Material
	albedo   core.Vec3
}

// intersect finds the nearest hit and resolves its surface. ok is false
// when the ray escapes.
func intersect(s *scene.Scene, ray *core.Ray) (hit, bool) {
	s.FindNearest(ray)
	if !ray.HasHit() {
		return hit{}, false
	}
	I := ray.IntersectionPoint()
	N, front := s.GetSurface(ray.ObjIdx, I, ray.Direction)
	return hit{
		I:        I,
		N:        N,
		front:    front,
		material: s.GetMaterial(ray.ObjIdx),
		albedo:   s.GetAlbedo(ray.ObjIdx, I),
	}, true
}

// spawn starts a secondary ray just off the surface along its direction
func (c Config) spawn(I, dir core.Vec3) core.Ray {
	return core.NewRay(I.Add(dir.Multiply(c.Epsilon)), dir)
}

// refract evaluates the dielectric boundary, swapping the indices when
// the ray leaves the glass
func (c Config) refract(d core.Vec3, h hit) material.Refraction {
	n1, n2 := 1.0, c.IOR
	if !h.front {
		n1, n2 = n2, n1
	}
	return material.Refract(d, h.N, n1, n2)
}
