package geometry

import "github.com/df07/go-bvh-raytracer/pkg/core"

// intersectTriangle tests the ray against the triangle using the
// Möller-Trumbore algorithm
func (p *Primitive) intersectTriangle(ray *core.Ray) {
	const epsilon = 1e-8

	v0, v1, v2 := p.Vertices[0], p.Vertices[1], p.Vertices[2]

	// Calculate two edge vectors
	edge1 := v1.Subtract(v0)
	edge2 := v2.Subtract(v0)

	// Calculate determinant
	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// If determinant is near zero, ray lies in plane of triangle
	if a > -epsilon && a < epsilon {
		return
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(v0)
	u := f * s.Dot(h)

	// Check if intersection is outside triangle
	if u < 0.0 || u > 1.0 {
		return
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)

	// Check if intersection is outside triangle
	if v < 0.0 || u+v > 1.0 {
		return
	}

	t := f * edge2.Dot(q)
	if t > epsilon && t < ray.T {
		ray.T, ray.ObjIdx = t, p.ObjIdx
	}
}

// triangleNormal is the normalized cross product of the edges. A
// degenerate triangle has a zero normal.
func (p *Primitive) triangleNormal() core.Vec3 {
	edge1 := p.Vertices[1].Subtract(p.Vertices[0])
	edge2 := p.Vertices[2].Subtract(p.Vertices[0])
	return edge1.Cross(edge2).Normalize()
}
