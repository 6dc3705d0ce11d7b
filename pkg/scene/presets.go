package scene

import (
	"math/rand"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/material"
)

// NewMirrorScene builds two facing mirrors at x = -1 and x = 1 under a
// small light. Rays that bounce between them only stop at the depth limit.
func NewMirrorScene(opts ...Option) (*Scene, error) {
	b := NewBuilder(opts...)

	light := b.AddMaterial(material.NewLight())
	mirror := b.AddMaterial(material.NewMirror(core.Splat(1), 1))
	floor := b.AddMaterial(material.NewDiffuse(core.Splat(0.5)))

	lightIdx := b.AddQuad(light, 0.5, core.Translate(core.NewVec3(0, 2, 2)))
	b.AddPlane(mirror, core.NewVec3(1, 0, 0), 1)
	b.AddPlane(mirror, core.NewVec3(-1, 0, 0), 1)
	b.AddPlane(floor, core.NewVec3(0, 1, 0), 1)

	b.SetLight(lightIdx, core.Splat(4))
	return b.Build()
}

// TriangleSoup is a list of world-space triangles, three vertices each
type TriangleSoup [][3]core.Vec3

// NewTriangleScene lights a triangle soup from above and puts a floor
// below it
func NewTriangleScene(tris TriangleSoup, opts ...Option) (*Scene, error) {
	b := NewBuilder(opts...)

	light := b.AddMaterial(material.NewLight())
	surface := b.AddMaterial(material.NewDiffuse(core.NewVec3(0.8, 0.8, 0.75)))
	floor := b.AddMaterial(material.NewDiffuse(core.Splat(0.5)))

	bounds := core.EmptyAABB()
	for _, tri := range tris {
		b.AddTriangle(surface, tri[0], tri[1], tri[2])
		bounds = bounds.Grow(tri[0]).Grow(tri[1]).Grow(tri[2])
	}
	if bounds.IsEmpty() {
		bounds = core.NewAABB(core.Splat(-1), core.Splat(1))
	}

	top := bounds.Max.Y + 1
	size := bounds.Size()
	lightSize := 0.5 * (size.X + size.Z)
	if lightSize < 1 {
		lightSize = 1
	}
	center := bounds.Center()
	lightIdx := b.AddQuad(light, lightSize, core.Translate(core.NewVec3(center.X, top, center.Z)))
	b.AddPlane(floor, core.NewVec3(0, 1, 0), -(bounds.Min.Y - 0.01))

	b.SetLight(lightIdx, core.Splat(3))
	b.SetCamera(CameraConfig{
		Position: core.NewVec3(center.X, center.Y, bounds.Min.Z-2*size.Y-2),
		Target:   center,
		Up:       core.NewVec3(0, 1, 0),
		VFov:     60,
	})
	return b.Build()
}

// RandomTriangles generates n small triangles scattered through a cube of
// side 9 around the origin
func RandomTriangles(n int, seed int64) TriangleSoup {
	rng := rand.New(rand.NewSource(seed))
	vec := func() core.Vec3 {
		return core.NewVec3(rng.Float64(), rng.Float64(), rng.Float64())
	}
	tris := make(TriangleSoup, n)
	for i := range tris {
		r0, r1, r2 := vec(), vec(), vec()
		v0 := r0.Multiply(9).Subtract(core.Splat(5))
		tris[i] = [3]core.Vec3{v0, v0.Add(r1), v0.Add(r2)}
	}
	return tris
}
