package material

import (
	"math"

	"github.com/df07/go-bvh-raytracer/pkg/core"
)

// DefaultIOR is the index of refraction of glass
const DefaultIOR = 1.52

// Refraction describes a ray crossing a dielectric boundary
type Refraction struct {
	Fr, Ft    float64   // Fresnel reflectance and transmittance, Fr+Ft = 1
	Direction core.Vec3 // refracted direction, zero under total internal reflection
	TIR       bool      // total internal reflection
}

// Refract evaluates Snell's law and the Fresnel equations for a unit
// direction d hitting a surface with unit normal n facing against d,
// travelling from index n1 into index n2
func Refract(d, n core.Vec3, n1, n2 float64) Refraction {
	eta := n1 / n2
	cosI := math.Min(-d.Dot(n), 1.0)
	k := 1 - eta*eta*(1-cosI*cosI)
	if k < 0 {
		return Refraction{Fr: 1, Ft: 0, TIR: true}
	}

	cosT := math.Sqrt(k)
	fr := Fresnel(cosI, cosT, n1, n2)
	dir := d.Multiply(eta).Add(n.Multiply(eta*cosI - cosT))
	return Refraction{
		Fr:        fr,
		Ft:        1 - fr,
		Direction: dir.Normalize(),
	}
}

// Fresnel averages the s- and p-polarized reflectance
func Fresnel(cosI, cosT, n1, n2 float64) float64 {
	rs := (n1*cosI - n2*cosT) / (n1*cosI + n2*cosT)
	rp := (n1*cosT - n2*cosI) / (n1*cosT + n2*cosI)
	return (rs*rs + rp*rp) / 2
}
