package core

// MaxDistance is the "nothing hit yet" value of Ray.T
const MaxDistance = 1e30

// NoHit is the object id of a ray that has not hit anything
const NoHit = -1

// Ray carries an origin, a unit direction and the nearest hit found so far.
// T only decreases while a ray is traced through a scene.
type Ray struct {
	Origin    Vec3
	Direction Vec3
	RecipDir  Vec3 // 1/Direction per component, signed infinity on zero components
	T         float64
	ObjIdx    int
}

// NewRay creates a ray with a normalized direction and no hit
func NewRay(origin, direction Vec3) Ray {
	return NewRayWithDistance(origin, direction, MaxDistance)
}

// NewRayWithDistance creates a ray whose hits are limited to distances below t
func NewRayWithDistance(origin, direction Vec3, t float64) Ray {
	d := direction.Normalize()
	return Ray{
		Origin:    origin,
		Direction: d,
		RecipDir:  Vec3{1 / d.X, 1 / d.Y, 1 / d.Z},
		T:         t,
		ObjIdx:    NoHit,
	}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// IntersectionPoint returns the point of the current nearest hit
func (r Ray) IntersectionPoint() Vec3 {
	return r.At(r.T)
}

// HasHit reports whether the ray has recorded a hit
func (r Ray) HasHit() bool {
	return r.ObjIdx != NoHit && r.T < MaxDistance
}
