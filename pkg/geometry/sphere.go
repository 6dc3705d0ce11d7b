package geometry

import (
	"math"

	"github.com/df07/go-bvh-raytracer/pkg/core"
)

// Center returns the sphere center
func (p *Primitive) Center() core.Vec3 {
	return p.T.Translation()
}

// Radius returns the sphere radius
func (p *Primitive) Radius() float64 {
	if p.InvR == 0 {
		return 0
	}
	return 1 / p.InvR
}

// intersectSphere solves |O + tD - C|^2 = r^2. When the origin is inside
// the sphere the near root is negative and the far root is taken.
func (p *Primitive) intersectSphere(ray *core.Ray) {
	oc := ray.Origin.Subtract(p.Center())
	b := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - p.R2
	d := b*b - c
	if d <= 0 {
		return
	}
	d = math.Sqrt(d)

	if t := -b - d; t > 0 && t < ray.T {
		ray.T, ray.ObjIdx = t, p.ObjIdx
		return
	}
	if t := d - b; t > 0 && t < ray.T {
		ray.T, ray.ObjIdx = t, p.ObjIdx
	}
}

func (p *Primitive) sphereNormal(I core.Vec3) core.Vec3 {
	return I.Subtract(p.Center()).Multiply(p.InvR)
}

func (p *Primitive) sphereBounds() core.AABB {
	r := core.Splat(p.Radius())
	c := p.Center()
	return core.NewAABB(c.Subtract(r), c.Add(r))
}
