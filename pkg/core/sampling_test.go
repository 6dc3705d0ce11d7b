package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSampleHemisphere_StaysAboveSurface(t *testing.T) {
	sampler := NewSeededSampler(42)
	normals := []Vec3{
		NewVec3(0, 1, 0),
		NewVec3(0, 0, -1),
		NewVec3(1, 1, 1).Normalize(),
	}

	for _, n := range normals {
		for i := 0; i < 1000; i++ {
			u := SampleUniformHemisphere(n, sampler.Get2D())
			c := SampleCosineHemisphere(n, sampler.Get2D())
			if u.Dot(n) < 0 || c.Dot(n) < -1e-12 {
				t.Fatalf("sample below surface for normal %v: uniform %v cosine %v", n, u, c)
			}
			if math.Abs(u.Length()-1) > 1e-9 || math.Abs(c.Length()-1) > 1e-9 {
				t.Fatalf("sample not unit length: uniform %v cosine %v", u, c)
			}
		}
	}
}

func TestSampleHemisphere_MeanCosine(t *testing.T) {
	// E[cos] is 1/2 for uniform and 2/3 for cosine-weighted sampling.
	sampler := NewSeededSampler(7)
	n := NewVec3(0, 1, 0)
	const count = 50000

	var uniform, cosine float64
	for i := 0; i < count; i++ {
		uniform += SampleUniformHemisphere(n, sampler.Get2D()).Dot(n)
		cosine += SampleCosineHemisphere(n, sampler.Get2D()).Dot(n)
	}

	assert.InDelta(t, 0.5, uniform/count, 0.01)
	assert.InDelta(t, 2.0/3.0, cosine/count, 0.01)
}

func TestSeededSamplerIsDeterministic(t *testing.T) {
	a := NewSeededSampler(3)
	b := NewSeededSampler(3)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Get1D(), b.Get1D())
	}
}
