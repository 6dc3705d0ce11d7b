package material

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/df07/go-bvh-raytracer/pkg/core"
)

func TestRefract_EnergyConserved(t *testing.T) {
	n := core.NewVec3(0, 1, 0)
	for _, angle := range []float64{0, 0.2, 0.6, 1.0, 1.4} {
		d := core.NewVec3(math.Sin(angle), -math.Cos(angle), 0)
		for _, iors := range [][2]float64{{1, DefaultIOR}, {DefaultIOR, 1}} {
			r := Refract(d, n, iors[0], iors[1])
			assert.InDelta(t, 1.0, r.Fr+r.Ft, 1e-12)
			assert.GreaterOrEqual(t, r.Fr, 0.0)
			assert.LessOrEqual(t, r.Fr, 1.0)
		}
	}
}

func TestRefract_NormalIncidence(t *testing.T) {
	d := core.NewVec3(0, -1, 0)
	r := Refract(d, core.NewVec3(0, 1, 0), 1, DefaultIOR)

	assert.False(t, r.TIR)
	assert.InDelta(t, 0, r.Direction.X, 1e-12)
	assert.InDelta(t, -1, r.Direction.Y, 1e-12)
	// At normal incidence both polarizations reflect ((n1-n2)/(n1+n2))^2
	r0 := (1 - DefaultIOR) / (1 + DefaultIOR)
	assert.InDelta(t, r0*r0, r.Fr, 1e-12)
	assert.InDelta(t, 0.0426, r.Fr, 1e-4)
}

func TestRefract_SnellsLaw(t *testing.T) {
	angle := 0.5
	d := core.NewVec3(math.Sin(angle), -math.Cos(angle), 0)
	r := Refract(d, core.NewVec3(0, 1, 0), 1, DefaultIOR)

	sinT := r.Direction.X
	assert.InDelta(t, math.Sin(angle)/DefaultIOR, sinT, 1e-12)
	assert.Less(t, r.Direction.Y, 0.0, "refracted ray continues through the surface")
}

func TestRefract_TotalInternalReflection(t *testing.T) {
	// Critical angle for glass to air is asin(1/1.52) ~ 0.717
	d := core.NewVec3(math.Sin(1.0), -math.Cos(1.0), 0)
	r := Refract(d, core.NewVec3(0, 1, 0), DefaultIOR, 1)

	assert.True(t, r.TIR)
	assert.Equal(t, 1.0, r.Fr)
	assert.Equal(t, 0.0, r.Ft)
	assert.Equal(t, core.Vec3{}, r.Direction)
}
