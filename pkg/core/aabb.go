package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// EmptyAABB returns a box that contains nothing; growing it by any point
// yields that point
func EmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{
		Min: Vec3{inf, inf, inf},
		Max: Vec3{-inf, -inf, -inf},
	}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	box := EmptyAABB()
	for _, p := range points {
		box = box.Grow(p)
	}
	return box
}

// Grow returns the box extended to contain p
func (aabb AABB) Grow(p Vec3) AABB {
	return AABB{Min: aabb.Min.Min(p), Max: aabb.Max.Max(p)}
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	return AABB{Min: aabb.Min.Min(other.Min), Max: aabb.Max.Max(other.Max)}
}

// IsEmpty reports whether the box has never been grown
func (aabb AABB) IsEmpty() bool {
	return aabb.Min.X > aabb.Max.X || aabb.Min.Y > aabb.Max.Y || aabb.Min.Z > aabb.Max.Z
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// Area returns half the surface area of the box. It is only meaningful
// as a relative cost; an empty box has zero area.
func (aabb AABB) Area() float64 {
	if aabb.IsEmpty() {
		return 0
	}
	e := aabb.Size()
	return e.X*e.Y + e.Y*e.Z + e.Z*e.X
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent
func (aabb AABB) LongestAxis() int {
	size := aabb.Size()
	if size.X > size.Y && size.X > size.Z {
		return 0 // X axis
	}
	if size.Y > size.Z {
		return 1 // Y axis
	}
	return 2 // Z axis
}

// Contains reports whether other lies entirely inside this box
func (aabb AABB) Contains(other AABB) bool {
	return aabb.Min.X <= other.Min.X && aabb.Min.Y <= other.Min.Y && aabb.Min.Z <= other.Min.Z &&
		aabb.Max.X >= other.Max.X && aabb.Max.Y >= other.Max.Y && aabb.Max.Z >= other.Max.Z
}

// Slab returns the entry and exit distances of the line origin+t*dir
// through the box, given recip = 1/dir. The box is missed when
// tmax < tmin. Zero direction components rely on signed infinities in
// recip; a NaN slab bound (0*Inf) is ignored by the comparisons below.
func (aabb AABB) Slab(origin, recip Vec3) (tmin, tmax float64) {
	tmin, tmax = math.Inf(-1), math.Inf(1)
	for axis := 0; axis < 3; axis++ {
		o := origin.Component(axis)
		r := recip.Component(axis)
		t1 := (aabb.Min.Component(axis) - o) * r
		t2 := (aabb.Max.Component(axis) - o) * r
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	}
	return tmin, tmax
}

// IntersectRay returns the distance at which the ray enters the box, or
// MaxDistance when the box is missed or entered beyond ray.T.
func (aabb AABB) IntersectRay(ray *Ray) float64 {
	tmin, tmax := aabb.Slab(ray.Origin, ray.RecipDir)
	if tmax >= tmin && tmin < ray.T && tmax > 0 {
		return tmin
	}
	return MaxDistance
}
