package scene

import (
	"go.uber.org/zap"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/geometry"
	"github.com/df07/go-bvh-raytracer/pkg/material"
)

// lightOffset moves light sample points just below the emitter surface
var lightOffset = core.NewVec3(0, 0.01, 0)

// CameraConfig is the default view of a scene
type CameraConfig struct {
	Position core.Vec3
	Target   core.Vec3
	Up       core.Vec3
	VFov     float64 // vertical field of view in degrees
}

// Animation computes the transform of one object at a point in time
type Animation struct {
	ObjIdx    int
	Transform func(t float64) core.Mat4
}

// Scene owns the primitives, materials, textures and the BVH. Object ids
// are indices into Primitives.
//
// Bounded primitives live in the BVH. Infinite planes are kept beside it
// and tested linearly, which is cheap for the handful of room walls.
type Scene struct {
	Primitives []geometry.Primitive
	Materials  []material.Material
	Assets     *material.Assets
	Camera     CameraConfig

	lightIdx   int
	lightColor core.Vec3
	animations []Animation
	time       float64

	boundedIdx []int
	bounded    []geometry.Primitive
	unbounded  []int
	bvh        *geometry.BVH
	logger     *zap.Logger
}

// FindNearest records the closest hit over all primitives in ray
func (s *Scene) FindNearest(ray *core.Ray) {
	for _, idx := range s.unbounded {
		s.Primitives[idx].Intersect(ray)
	}
	s.bvh.FindNearest(ray)
}

// IsOccluded reports whether anything is hit closer than ray.T
func (s *Scene) IsOccluded(ray core.Ray) bool {
	return s.IsOccludedExcept(ray, core.NoHit)
}

// IsOccludedExcept reports whether anything other than primitive skip is
// hit closer than ray.T. Shadow rays toward the light pass the light's
// index so a light with volume does not shadow itself.
func (s *Scene) IsOccludedExcept(ray core.Ray, skip int) bool {
	limit := ray.T
	for _, idx := range s.unbounded {
		if idx == skip {
			continue
		}
		test := ray
		s.Primitives[idx].Intersect(&test)
		if test.T < limit {
			return true
		}
	}
	return s.bvh.IsOccludedExcept(ray, skip)
}

// valid reports whether objIdx names a primitive
func (s *Scene) valid(objIdx int) bool {
	return objIdx >= 0 && objIdx < len(s.Primitives)
}

// GetSurface returns the unit normal at I facing against the incoming
// direction wo, and whether the front (outer) side was hit
func (s *Scene) GetSurface(objIdx int, I, wo core.Vec3) (core.Vec3, bool) {
	if !s.valid(objIdx) {
		return core.Vec3{}, true
	}
	n := s.Primitives[objIdx].GetNormal(I)
	if n.Dot(wo) > 0 {
		return n.Negate(), false
	}
	return n, true
}

// GetNormal returns the normal at I flipped to face against wo. Unknown
// objects have a zero normal.
func (s *Scene) GetNormal(objIdx int, I, wo core.Vec3) core.Vec3 {
	n, _ := s.GetSurface(objIdx, I, wo)
	return n
}

// GetMaterial returns the material of an object, or the error material
// for NoHit and unknown ids
func (s *Scene) GetMaterial(objIdx int) material.Material {
	if !s.valid(objIdx) {
		return material.ErrorMaterial()
	}
	matIdx := s.Primitives[objIdx].MaterialIdx
	if matIdx < 0 || matIdx >= len(s.Materials) {
		return material.ErrorMaterial()
	}
	return s.Materials[matIdx]
}

// GetAlbedo returns the surface color of an object at I
func (s *Scene) GetAlbedo(objIdx int, I core.Vec3) core.Vec3 {
	return material.Resolve(s.GetMaterial(objIdx), I, s.Assets)
}

// LightIdx returns the object id of the area light, or core.NoHit
func (s *Scene) LightIdx() int {
	return s.lightIdx
}

// GetLightPos returns the point used for hard shadows: the middle of the
// light, nudged below its surface
func (s *Scene) GetLightPos() core.Vec3 {
	if !s.valid(s.lightIdx) {
		return core.Vec3{}
	}
	light := &s.Primitives[s.lightIdx]
	if light.Kind == geometry.KindQuad {
		c := light.Corners()
		return c[0].Add(c[2]).Multiply(0.5).Subtract(lightOffset)
	}
	return light.Position().Subtract(lightOffset)
}

// GetRandomPointOnLight returns a uniformly sampled point on a quad light
func (s *Scene) GetRandomPointOnLight(sampler core.Sampler) core.Vec3 {
	if !s.valid(s.lightIdx) || s.Primitives[s.lightIdx].Kind != geometry.KindQuad {
		return s.GetLightPos()
	}
	return s.Primitives[s.lightIdx].SamplePoint(sampler.Get2D()).Subtract(lightOffset)
}

// GetLightColor returns the emitted radiance of the light
func (s *Scene) GetLightColor() core.Vec3 {
	return s.lightColor
}

// SetTime moves animated objects to time t and rebuilds the BVH. It must
// not run concurrently with tracing.
func (s *Scene) SetTime(t float64) {
	s.time = t
	for _, a := range s.animations {
		s.Primitives[a.ObjIdx].SetTransform(a.Transform(t))
	}
	if len(s.animations) > 0 || s.bvh == nil {
		s.rebuild()
	}
}

// Time returns the time last passed to SetTime
func (s *Scene) Time() float64 {
	return s.time
}

// BVH returns the hierarchy over the bounded primitives
func (s *Scene) BVH() *geometry.BVH {
	return s.bvh
}

// PrimitiveCount returns the number of objects in the scene
func (s *Scene) PrimitiveCount() int {
	return len(s.Primitives)
}

// UnboundedCount returns the number of primitives tested outside the BVH
func (s *Scene) UnboundedCount() int {
	return len(s.unbounded)
}

// rebuild copies the current bounded primitives into the BVH's slice and
// rebuilds the hierarchy in place
func (s *Scene) rebuild() {
	for i, idx := range s.boundedIdx {
		s.bounded[i] = s.Primitives[idx]
	}
	s.bvh.Rebuild()
}

// partition splits primitives into BVH members and linearly tested ones
func (s *Scene) partition(policy geometry.SplitPolicy) {
	s.boundedIdx = s.boundedIdx[:0]
	s.unbounded = s.unbounded[:0]
	for i := range s.Primitives {
		if s.Primitives[i].IsBounded() {
			s.boundedIdx = append(s.boundedIdx, i)
		} else {
			s.unbounded = append(s.unbounded, i)
		}
	}
	s.bounded = make([]geometry.Primitive, len(s.boundedIdx))
	for i, idx := range s.boundedIdx {
		s.bounded[i] = s.Primitives[idx]
	}
	s.bvh = geometry.BuildBVH(s.bounded, policy, geometry.WithLogger(s.logger))
}
