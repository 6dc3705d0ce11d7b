package core

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Mat4 is a row-major 4x4 affine transform. The translation lives in
// elements 3, 7 and 11.
type Mat4 f64.Mat4

// Identity returns the identity transform
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate returns a translation by v
func Translate(v Vec3) Mat4 {
	m := Identity()
	m[3], m[7], m[11] = v.X, v.Y, v.Z
	return m
}

// RotateX returns a rotation of a radians around the X axis
func RotateX(a float64) Mat4 {
	s, c := math.Sincos(a)
	m := Identity()
	m[5], m[6] = c, -s
	m[9], m[10] = s, c
	return m
}

// RotateY returns a rotation of a radians around the Y axis
func RotateY(a float64) Mat4 {
	s, c := math.Sincos(a)
	m := Identity()
	m[0], m[2] = c, s
	m[8], m[10] = -s, c
	return m
}

// RotateZ returns a rotation of a radians around the Z axis
func RotateZ(a float64) Mat4 {
	s, c := math.Sincos(a)
	m := Identity()
	m[0], m[1] = c, -s
	m[4], m[5] = s, c
	return m
}

// Mul returns m*o, applying o first when transforming points
func (m Mat4) Mul(o Mat4) Mat4 {
	var r Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[i*4+k] * o[k*4+j]
			}
			r[i*4+j] = sum
		}
	}
	return r
}

// FastInvertedTransformNoScale inverts a rotation+translation transform
// by transposing the rotation and rotating the negated translation.
func (m Mat4) FastInvertedTransformNoScale() Mat4 {
	r := Identity()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i*4+j] = m[j*4+i]
		}
	}
	t := Vec3{m[3], m[7], m[11]}
	r[3] = -(r[0]*t.X + r[1]*t.Y + r[2]*t.Z)
	r[7] = -(r[4]*t.X + r[5]*t.Y + r[6]*t.Z)
	r[11] = -(r[8]*t.X + r[9]*t.Y + r[10]*t.Z)
	return r
}

// TransformPosition applies the full transform to a point
func (m Mat4) TransformPosition(p Vec3) Vec3 {
	return Vec3{
		X: m[0]*p.X + m[1]*p.Y + m[2]*p.Z + m[3],
		Y: m[4]*p.X + m[5]*p.Y + m[6]*p.Z + m[7],
		Z: m[8]*p.X + m[9]*p.Y + m[10]*p.Z + m[11],
	}
}

// TransformVector applies only the rotation part to a direction
func (m Mat4) TransformVector(v Vec3) Vec3 {
	return Vec3{
		X: m[0]*v.X + m[1]*v.Y + m[2]*v.Z,
		Y: m[4]*v.X + m[5]*v.Y + m[6]*v.Z,
		Z: m[8]*v.X + m[9]*v.Y + m[10]*v.Z,
	}
}

// Translation returns the translation part of the transform
func (m Mat4) Translation() Vec3 {
	return Vec3{m[3], m[7], m[11]}
}

// Column returns the first three rows of column i
func (m Mat4) Column(i int) Vec3 {
	return Vec3{m[i], m[4+i], m[8+i]}
}
