package geometry

import (
	"math"

	"github.com/df07/go-bvh-raytracer/pkg/core"
)

// Axis alignment of a plane normal
type AxisAlignment int

const (
	NotAxisAligned AxisAlignment = iota
	XAxisAligned
	YAxisAligned
	ZAxisAligned
)

// parallelEpsilon rejects rays (nearly) parallel to a flat surface
const parallelEpsilon = 1e-8

func (p *Primitive) intersectPlane(ray *core.Ray) {
	denominator := ray.Direction.Dot(p.Normal)

	// Ray is parallel to the plane
	if math.Abs(denominator) < parallelEpsilon {
		return
	}

	t := -(ray.Origin.Dot(p.Normal) + p.Distance) / denominator
	if t > 0 && t < ray.T {
		ray.T, ray.ObjIdx = t, p.ObjIdx
	}
}

// planeBounds returns a thin slab for axis aligned planes and a very
// large box otherwise
func (p *Primitive) planeBounds() core.AABB {
	const largeValue = 1e6
	const epsilon = 0.001 // Small thickness to avoid zero-width bounding box

	point := p.Normal.Multiply(-p.Distance)

	switch getAxisAlignment(p.Normal) {
	case XAxisAligned:
		x := point.X
		return core.NewAABB(
			core.NewVec3(x-epsilon, -largeValue, -largeValue),
			core.NewVec3(x+epsilon, largeValue, largeValue),
		)
	case YAxisAligned:
		y := point.Y
		return core.NewAABB(
			core.NewVec3(-largeValue, y-epsilon, -largeValue),
			core.NewVec3(largeValue, y+epsilon, largeValue),
		)
	case ZAxisAligned:
		z := point.Z
		return core.NewAABB(
			core.NewVec3(-largeValue, -largeValue, z-epsilon),
			core.NewVec3(largeValue, largeValue, z+epsilon),
		)
	default:
		return core.NewAABB(
			core.NewVec3(-largeValue, -largeValue, -largeValue),
			core.NewVec3(largeValue, largeValue, largeValue),
		)
	}
}

// getAxisAlignment determines if a normal vector is aligned with a coordinate axis
func getAxisAlignment(normal core.Vec3) AxisAlignment {
	const tolerance = 1e-6

	absX := math.Abs(normal.X)
	absY := math.Abs(normal.Y)
	absZ := math.Abs(normal.Z)

	switch {
	case absX > 1-tolerance && absY < tolerance && absZ < tolerance:
		return XAxisAligned
	case absY > 1-tolerance && absX < tolerance && absZ < tolerance:
		return YAxisAligned
	case absZ > 1-tolerance && absX < tolerance && absY < tolerance:
		return ZAxisAligned
	}
	return NotAxisAligned
}
