package integrator

import (
	"math"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/scene"
)

// WhittedSky is the color of rays that leave the scene
var WhittedSky = core.NewVec3(195.0/255.0, 251.0/255.0, 249.0/255.0)

// WhittedIntegrator splits every glass hit into a reflected and a
// refracted ray and lights diffuse surfaces with a hard-shadowed point
// light
type WhittedIntegrator struct {
	scene  *scene.Scene
	config Config
}

// NewWhittedIntegrator creates a Whitted-style ray tracer
func NewWhittedIntegrator(s *scene.Scene, config Config) *WhittedIntegrator {
	return &WhittedIntegrator{scene: s, config: config}
}

// Trace returns the radiance along ray. The sampler is unused; the
// result is deterministic.
func (w *WhittedIntegrator) Trace(ray core.Ray, _ core.Sampler) core.Vec3 {
	return w.trace(ray, 0, nil)
}

func (w *WhittedIntegrator) trace(ray core.Ray, depth int, stats *traceStats) core.Vec3 {
	stats.enter(depth)

	h, ok := intersect(w.scene, &ray)
	if !ok {
		return w.config.SkyColor
	}
	if h.material.IsLight {
		return w.scene.GetLightColor()
	}

	if depth > w.config.DepthLimit {
		return h.albedo.MultiplyVec(w.directIllumination(h.I, h.N))
	}

	tir := false
	if h.material.IsGlass {
		r := w.config.refract(ray.Direction, h)
		if !r.TIR {
			reflectDir := ray.Direction.Reflect(h.N)
			reflection := h.albedo.MultiplyVec(w.trace(w.config.spawn(h.I, reflectDir), depth+1, stats))
			refraction := h.albedo.MultiplyVec(w.trace(w.config.spawn(h.I, r.Direction), depth+1, stats))
			return reflection.Multiply(r.Fr).Add(refraction.Multiply(r.Ft))
		}
		tir = true
	}

	if h.material.IsMirror || tir {
		reflectDir := ray.Direction.Reflect(h.N)
		reflection := h.albedo.MultiplyVec(w.trace(w.config.spawn(h.I, reflectDir), depth+1, stats))
		k := h.material.Reflectivity
		direct := h.albedo.MultiplyVec(w.directIllumination(h.I, h.N))
		return reflection.Multiply(k).Add(direct.Multiply(1 - k))
	}

	return h.albedo.MultiplyVec(w.directIllumination(h.I, h.N))
}

// directIllumination is the light arriving at I from the scene's light
// position, with inverse square falloff and a hard shadow
func (w *WhittedIntegrator) directIllumination(I, N core.Vec3) core.Vec3 {
	lightPos := w.scene.GetLightPos()
	toLight := lightPos.Subtract(I)
	d := toLight.Length()
	if d <= w.config.Epsilon {
		return core.Vec3{}
	}
	L := toLight.Multiply(1 / d)

	shadow := core.NewRayWithDistance(I.Add(L.Multiply(w.config.Epsilon)), L, d-2*w.config.Epsilon)
	if w.scene.IsOccludedExcept(shadow, w.scene.LightIdx()) {
		return core.Vec3{}
	}

	cos := math.Max(0, L.Dot(N))
	return w.scene.GetLightColor().Multiply(cos / (d * d))
}
