package geometry

import (
	"errors"
	"fmt"
	"strings"

	"github.com/df07/go-bvh-raytracer/pkg/core"
)

// Kind selects which payload of a Primitive is meaningful
type Kind int

const (
	KindTriangle Kind = iota
	KindSphere
	KindPlane
	KindCube
	KindQuad
)

// ErrUnknownKind is returned when a shape name cannot be parsed
var ErrUnknownKind = errors.New("unknown primitive kind")

var kindNames = map[Kind]string{
	KindTriangle: "triangle",
	KindSphere:   "sphere",
	KindPlane:    "plane",
	KindCube:     "cube",
	KindQuad:     "quad",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind converts a shape name to its Kind
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if strings.EqualFold(n, name) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Primitive is a closed union of shapes. Only the payload fields that
// belong to Kind are used; the others stay zero.
type Primitive struct {
	ObjIdx      int
	MaterialIdx int
	Kind        Kind

	Vertices [3]core.Vec3 // triangle, world space

	R2   float64 // sphere radius squared
	InvR float64 // sphere inverse radius

	Normal   core.Vec3 // plane normal
	Distance float64   // plane distance: dot(P, Normal) + Distance = 0

	Box [2]core.Vec3 // cube min/max corners in object space

	HalfSize float64 // quad half extent in object space

	T    core.Mat4 // object to world
	InvT core.Mat4 // world to object, always the inverse of T
}

// NewTriangle creates a triangle from three world-space vertices
func NewTriangle(objIdx, materialIdx int, v0, v1, v2 core.Vec3) Primitive {
	return Primitive{
		ObjIdx:      objIdx,
		MaterialIdx: materialIdx,
		Kind:        KindTriangle,
		Vertices:    [3]core.Vec3{v0, v1, v2},
		T:           core.Identity(),
		InvT:        core.Identity(),
	}
}

// NewSphere creates a sphere. The center is stored as the translation of T.
func NewSphere(objIdx, materialIdx int, center core.Vec3, radius float64) Primitive {
	p := Primitive{
		ObjIdx:      objIdx,
		MaterialIdx: materialIdx,
		Kind:        KindSphere,
		R2:          radius * radius,
		InvR:        1 / radius,
	}
	p.SetTransform(core.Translate(center))
	return p
}

// NewPlane creates an infinite plane with dot(P, normal) + distance = 0
func NewPlane(objIdx, materialIdx int, normal core.Vec3, distance float64) Primitive {
	return Primitive{
		ObjIdx:      objIdx,
		MaterialIdx: materialIdx,
		Kind:        KindPlane,
		Normal:      normal.Normalize(),
		Distance:    distance,
		T:           core.Identity(),
		InvT:        core.Identity(),
	}
}

// NewCube creates an oriented box of the given size centered on pos in
// object space, placed in the world by transform
func NewCube(objIdx, materialIdx int, pos, size core.Vec3, transform core.Mat4) Primitive {
	half := size.Multiply(0.5)
	p := Primitive{
		ObjIdx:      objIdx,
		MaterialIdx: materialIdx,
		Kind:        KindCube,
		Box:         [2]core.Vec3{pos.Subtract(half), pos.Add(half)},
	}
	p.SetTransform(transform)
	return p
}

// NewQuad creates a square of edge length size in the object-space XZ
// plane, placed in the world by transform
func NewQuad(objIdx, materialIdx int, size float64, transform core.Mat4) Primitive {
	p := Primitive{
		ObjIdx:      objIdx,
		MaterialIdx: materialIdx,
		Kind:        KindQuad,
		HalfSize:    size * 0.5,
	}
	p.SetTransform(transform)
	return p
}

// SetTransform replaces T and recomputes its inverse.
// Transforms are rotation+translation only.
func (p *Primitive) SetTransform(t core.Mat4) {
	p.T = t
	p.InvT = t.FastInvertedTransformNoScale()
}

// Intersect records a hit in ray when this primitive is hit closer than
// ray.T and in front of the origin
func (p *Primitive) Intersect(ray *core.Ray) {
	if ray.Direction == (core.Vec3{}) {
		return
	}
	switch p.Kind {
	case KindTriangle:
		p.intersectTriangle(ray)
	case KindSphere:
		p.intersectSphere(ray)
	case KindPlane:
		p.intersectPlane(ray)
	case KindCube:
		p.intersectCube(ray)
	case KindQuad:
		p.intersectQuad(ray)
	}
}

// GetNormal returns the unit normal at point I on the surface
func (p *Primitive) GetNormal(I core.Vec3) core.Vec3 {
	switch p.Kind {
	case KindTriangle:
		return p.triangleNormal()
	case KindSphere:
		return p.sphereNormal(I)
	case KindPlane:
		return p.Normal
	case KindCube:
		return p.cubeNormal(I)
	case KindQuad:
		return p.quadNormal()
	}
	return core.Vec3{}
}

// Bounds returns the world-space bounding box
func (p *Primitive) Bounds() core.AABB {
	switch p.Kind {
	case KindTriangle:
		return core.NewAABBFromPoints(p.Vertices[0], p.Vertices[1], p.Vertices[2])
	case KindSphere:
		return p.sphereBounds()
	case KindPlane:
		return p.planeBounds()
	case KindCube:
		return p.cubeBounds()
	case KindQuad:
		return p.quadBounds()
	}
	return core.EmptyAABB()
}

// Position is the representative point used to partition primitives
// while building a BVH: the centroid for triangles, the point on the
// plane closest to the origin for planes, the world-space box center for
// cubes, and the transformed object origin for everything else.
func (p *Primitive) Position() core.Vec3 {
	switch p.Kind {
	case KindTriangle:
		return p.Vertices[0].Add(p.Vertices[1]).Add(p.Vertices[2]).Multiply(1.0 / 3.0)
	case KindPlane:
		return p.Normal.Multiply(-p.Distance)
	case KindCube:
		return p.T.TransformPosition(p.Box[0].Add(p.Box[1]).Multiply(0.5))
	}
	return p.T.Translation()
}

// IsBounded reports whether the primitive has a finite extent
func (p *Primitive) IsBounded() bool {
	return p.Kind != KindPlane
}
