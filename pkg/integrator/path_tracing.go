package integrator

import (
	"math"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/scene"
)

// PathTracingIntegrator implements unidirectional path tracing: one
// sampled direction per bounce, light only gathered when a path hits the
// emitter
type PathTracingIntegrator struct {
	scene  *scene.Scene
	config Config
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(s *scene.Scene, config Config) *PathTracingIntegrator {
	if config.SamplesPerTrace < 1 {
		config.SamplesPerTrace = 1
	}
	return &PathTracingIntegrator{scene: s, config: config}
}

// Trace averages SamplesPerTrace independent paths starting with ray
func (pt *PathTracingIntegrator) Trace(ray core.Ray, sampler core.Sampler) core.Vec3 {
	var sum core.Vec3
	for i := 0; i < pt.config.SamplesPerTrace; i++ {
		sum = sum.Add(pt.trace(ray, 0, sampler, nil))
	}
	return sum.Multiply(1 / float64(pt.config.SamplesPerTrace))
}

func (pt *PathTracingIntegrator) trace(ray core.Ray, depth int, sampler core.Sampler, stats *traceStats) core.Vec3 {
	stats.enter(depth)

	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth > pt.config.DepthLimit {
		return core.Vec3{}
	}

	h, ok := intersect(pt.scene, &ray)
	if !ok {
		return pt.config.SkyColor
	}
	if h.material.IsLight {
		return pt.scene.GetLightColor()
	}

	if h.material.IsGlass {
		r := pt.config.refract(ray.Direction, h)
		dir := r.Direction
		// Fresnel reflectance doubles as the probability of reflecting
		if r.TIR || sampler.Get1D() < r.Fr {
			dir = ray.Direction.Reflect(h.N)
		}
		return h.albedo.MultiplyVec(pt.trace(pt.config.spawn(h.I, dir), depth+1, sampler, stats))
	}

	if h.material.IsMirror && sampler.Get1D() < h.material.Reflectivity {
		dir := ray.Direction.Reflect(h.N)
		return h.albedo.MultiplyVec(pt.trace(pt.config.spawn(h.I, dir), depth+1, sampler, stats))
	}

	return pt.diffuse(h, depth, sampler, stats)
}

// diffuse estimates the reflected radiance of a Lambertian surface from
// one hemisphere sample
func (pt *PathTracingIntegrator) diffuse(h hit, depth int, sampler core.Sampler, stats *traceStats) core.Vec3 {
	if pt.config.Hemisphere == HemisphereCosine {
		// pdf = cos/pi cancels the BRDF and cosine terms
		dir := core.SampleCosineHemisphere(h.N, sampler.Get2D())
		Li := pt.trace(pt.config.spawn(h.I, dir), depth+1, sampler, stats)
		return h.albedo.MultiplyVec(Li)
	}

	dir := core.SampleUniformHemisphere(h.N, sampler.Get2D())
	Li := pt.trace(pt.config.spawn(h.I, dir), depth+1, sampler, stats)
	cos := math.Max(0, dir.Dot(h.N))
	brdf := h.albedo.Multiply(1 / math.Pi)
	return brdf.MultiplyVec(Li).Multiply(2 * math.Pi * cos)
}
