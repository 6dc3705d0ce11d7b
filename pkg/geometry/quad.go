package geometry

import (
	"math"

	"github.com/df07/go-bvh-raytracer/pkg/core"
)

// intersectQuad solves for the object-space y=0 crossing and checks the
// crossing against the half extent
func (p *Primitive) intersectQuad(ray *core.Ray) {
	o := p.InvT.TransformPosition(ray.Origin)
	d := p.InvT.TransformVector(ray.Direction)

	// Ray is parallel to the quad
	if math.Abs(d.Y) < parallelEpsilon {
		return
	}

	t := o.Y / -d.Y
	if t <= 0 || t >= ray.T {
		return
	}

	I := o.Add(d.Multiply(t))
	s := p.HalfSize
	if I.X > -s && I.X < s && I.Z > -s && I.Z < s {
		ray.T, ray.ObjIdx = t, p.ObjIdx
	}
}

// quadNormal is the object-space -Y axis in world space
func (p *Primitive) quadNormal() core.Vec3 {
	return p.T.Column(1).Negate()
}

// Corners returns the four world-space corners of a quad
func (p *Primitive) Corners() [4]core.Vec3 {
	s := p.HalfSize
	return [4]core.Vec3{
		p.T.TransformPosition(core.NewVec3(-s, 0, -s)),
		p.T.TransformPosition(core.NewVec3(s, 0, -s)),
		p.T.TransformPosition(core.NewVec3(s, 0, s)),
		p.T.TransformPosition(core.NewVec3(-s, 0, s)),
	}
}

// SamplePoint maps a 2D sample to a point on the quad in world space
func (p *Primitive) SamplePoint(u core.Vec2) core.Vec3 {
	s := p.HalfSize
	local := core.NewVec3((2*u.X-1)*s, 0, (2*u.Y-1)*s)
	return p.T.TransformPosition(local)
}

func (p *Primitive) quadBounds() core.AABB {
	c := p.Corners()
	return core.NewAABBFromPoints(c[0], c[1], c[2], c[3])
}
