package integrator

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/material"
	"github.com/df07/go-bvh-raytracer/pkg/scene"
)

func TestWhitted_MissReturnsSky(t *testing.T) {
	s := floorScene(t, 0.5, false)
	w := NewWhittedIntegrator(s, DefaultConfig())

	ray := core.NewRay(core.NewVec3(5, 1, 0), core.NewVec3(0, 1, 0))
	assert.Equal(t, WhittedSky, w.Trace(ray, nil))
}

func TestWhitted_LightHitReturnsLightColor(t *testing.T) {
	s := floorScene(t, 0.5, false)
	w := NewWhittedIntegrator(s, DefaultConfig())

	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0))
	assert.Equal(t, core.Splat(4), w.Trace(ray, nil))
}

func TestWhitted_DiffuseDirectIllumination(t *testing.T) {
	s := floorScene(t, 0.5, false)
	w := NewWhittedIntegrator(s, DefaultConfig())

	// Hit the floor right below the light: the light point sits 1.99 above
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	got := w.Trace(ray, nil)
	expected := 0.5 * 4 / (1.99 * 1.99)
	assert.InDelta(t, expected, got.X, 1e-6)
	assert.InDelta(t, expected, got.Z, 1e-6)

	// Off to the side the cosine and the distance both reduce the light
	side := core.NewRay(core.NewVec3(1, 1, 0), core.NewVec3(0, -1, 0))
	gotSide := w.Trace(side, nil)
	d2 := 1 + 1.99*1.99
	cos := 1.99 / math.Sqrt(d2)
	assert.InDelta(t, 0.5*4*cos/d2, gotSide.X, 1e-6)
}

func TestWhitted_HardShadow(t *testing.T) {
	s := floorScene(t, 0.5, true)
	w := NewWhittedIntegrator(s, DefaultConfig())

	// Hit the floor at the origin, directly below the occluding sphere
	ray := core.NewRay(core.NewVec3(0.5, 0.5, 0), core.NewVec3(-1, -1, 0))
	got := w.Trace(ray, nil)
	assert.Equal(t, core.Vec3{}, got, "sphere between floor and light casts a shadow")
}

func TestWhitted_LightShapes(t *testing.T) {
	lightPos := core.NewVec3(0, 3, 0)
	tests := []struct {
		name     string
		add      func(b *scene.Builder, mat int) int
		occluder bool
	}{
		{"quad", func(b *scene.Builder, mat int) int {
			return b.AddQuad(mat, 0.5, core.Translate(lightPos))
		}, false},
		{"sphere", func(b *scene.Builder, mat int) int {
			return b.AddSphere(mat, lightPos, 0.5)
		}, false},
		{"cube", func(b *scene.Builder, mat int) int {
			return b.AddCube(mat, lightPos, core.Splat(1), core.Identity())
		}, false},
		{"sphere blocked", func(b *scene.Builder, mat int) int {
			return b.AddSphere(mat, lightPos, 0.5)
		}, true},
		{"cube blocked", func(b *scene.Builder, mat int) int {
			return b.AddCube(mat, lightPos, core.Splat(1), core.Identity())
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := scene.NewBuilder()
			light := b.AddMaterial(material.NewLight())
			floor := b.AddMaterial(material.NewDiffuse(core.Splat(0.5)))
			lightIdx := tt.add(b, light)
			b.AddPlane(floor, core.NewVec3(0, 1, 0), 0)
			if tt.occluder {
				b.AddSphere(floor, core.NewVec3(0, 1.5, 0), 0.25)
			}
			b.SetLight(lightIdx, core.Splat(10))
			s, err := b.Build()
			require.NoError(t, err)
			w := NewWhittedIntegrator(s, DefaultConfig())

			// Hits the floor at the origin, straight below the light
			ray := core.NewRay(core.NewVec3(0, 1, -1), core.NewVec3(0, -1, 1).Normalize())
			got := w.Trace(ray, nil)
			if tt.occluder {
				assert.Equal(t, core.Vec3{}, got)
				return
			}
			d := s.GetLightPos().Y
			assert.InDelta(t, 0.5*10/(d*d), got.X, 1e-6)
			assert.Greater(t, got.Y, 0.0, "the light does not shadow its own shading point")
		})
	}
}

func TestWhitted_GlassConservesEnergy(t *testing.T) {
	s := glassBallScene(t)
	w := NewWhittedIntegrator(s, DefaultConfig())

	// Straight through the center: every branch ends in the sky
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1))
	got := w.Trace(ray, nil)
	assert.InDelta(t, WhittedSky.X, got.X, 1e-4)
	assert.InDelta(t, WhittedSky.Y, got.Y, 1e-4)
	assert.InDelta(t, WhittedSky.Z, got.Z, 1e-4)

	// Off-center rays bend but still only see the sky
	for _, x := range []float64{0.3, 0.6, 0.9} {
		ray := core.NewRay(core.NewVec3(x, 0, 0), core.NewVec3(0, 0, 1))
		got := w.Trace(ray, nil)
		assert.True(t, got.IsFinite())
		assert.LessOrEqual(t, got.Y, WhittedSky.Y+1e-9)
		assert.Greater(t, got.Y, 0.9*WhittedSky.Y)
	}
}

func TestWhitted_MirrorDepthLimit(t *testing.T) {
	s, err := scene.NewMirrorScene()
	require.NoError(t, err)

	for _, limit := range []int{0, 1, 5, 12} {
		t.Run(fmt.Sprintf("limit=%d", limit), func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.DepthLimit = limit
			w := NewWhittedIntegrator(s, cfg)

			var stats traceStats
			ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(1, 0, 0))
			got := w.trace(ray, 0, &stats)

			assert.Equal(t, limit+1, stats.maxDepth, "recursion stops one past the limit")
			assert.True(t, got.IsFinite())
		})
	}
}
