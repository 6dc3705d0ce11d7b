package geometry

import (
	"math"

	"github.com/df07/go-bvh-raytracer/pkg/core"
)

// intersectCube runs the slab test in object space. A ray starting inside
// the cube hits the exit face.
func (p *Primitive) intersectCube(ray *core.Ray) {
	o := p.InvT.TransformPosition(ray.Origin)
	d := p.InvT.TransformVector(ray.Direction)
	recip := core.NewVec3(1/d.X, 1/d.Y, 1/d.Z)

	box := core.NewAABB(p.Box[0], p.Box[1])
	tmin, tmax := box.Slab(o, recip)
	if tmax < tmin {
		return
	}

	if tmin > 0 {
		if tmin < ray.T {
			ray.T, ray.ObjIdx = tmin, p.ObjIdx
		}
	} else if tmax > 0 {
		if tmax < ray.T {
			ray.T, ray.ObjIdx = tmax, p.ObjIdx
		}
	}
}

// cubeNormal picks the face nearest to I in object space and rotates its
// normal back to world space
func (p *Primitive) cubeNormal(I core.Vec3) core.Vec3 {
	objI := p.InvT.TransformPosition(I)

	distances := [6]float64{
		math.Abs(objI.X - p.Box[0].X), math.Abs(objI.X - p.Box[1].X),
		math.Abs(objI.Y - p.Box[0].Y), math.Abs(objI.Y - p.Box[1].Y),
		math.Abs(objI.Z - p.Box[0].Z), math.Abs(objI.Z - p.Box[1].Z),
	}
	faces := [6]core.Vec3{
		{X: -1}, {X: 1},
		{Y: -1}, {Y: 1},
		{Z: -1}, {Z: 1},
	}

	best := 0
	for i := 1; i < len(distances); i++ {
		if distances[i] < distances[best] {
			best = i
		}
	}
	return p.T.TransformVector(faces[best])
}

func (p *Primitive) cubeBounds() core.AABB {
	box := core.EmptyAABB()
	for i := 0; i < 8; i++ {
		corner := core.NewVec3(
			p.Box[i&1].X,
			p.Box[(i>>1)&1].Y,
			p.Box[(i>>2)&1].Z,
		)
		box = box.Grow(p.T.TransformPosition(corner))
	}
	return box
}
