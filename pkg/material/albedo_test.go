package material

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-bvh-raytracer/pkg/core"
)

func TestNewMaterialDefaults(t *testing.T) {
	m := NewMaterial()
	assert.Equal(t, core.Splat(1), m.Color)
	assert.Equal(t, 1.0, m.Reflectivity)
	assert.Equal(t, 1.0, m.Refractivity)
	assert.True(t, m.IsDiffuse())
	assert.False(t, NewLight().IsDiffuse())
	assert.Equal(t, core.RGB8(240, 98, 146), ErrorMaterial().Color)
}

func TestResolve_Constant(t *testing.T) {
	m := NewDiffuse(core.NewVec3(0.2, 0.4, 0.6))
	assert.Equal(t, m.Color, Resolve(m, core.NewVec3(5, 5, 5), nil))
}

func TestResolve_Checkerboard(t *testing.T) {
	m := NewMaterial()
	m.Albedo = AlbedoCheckerboard
	m.Color = core.Splat(0.5)

	tests := []struct {
		name     string
		point    core.Vec3
		expected core.Vec3
	}{
		// ix = 96, iz = 96 -> even
		{"dark tile", core.NewVec3(0.1, -1, 0.1), core.Splat(0.15)},
		// ix = 97, iz = 96 -> odd
		{"bright tile", core.NewVec3(0.6, -1, 0.1), core.Splat(0.5)},
		// ix = 98, iz = 98 switches to 32x frequency: int(1.1*32.01)=35, int(1.2*32.01)=38
		{"aliased tile", core.NewVec3(1.1, -1, 1.2), core.Splat(0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(m, tt.point, nil)
			assert.InDelta(t, tt.expected.X, got.X, 1e-12)
			assert.InDelta(t, tt.expected.Z, got.Z, 1e-12)
		})
	}
}

func TestResolve_Texture(t *testing.T) {
	assets := NewAssets()
	tex := NewCheckerboardTexture(8, 6, 1, core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1))
	id, err := assets.AddTexture(tex)
	require.NoError(t, err)

	m := NewMaterial()
	m.Albedo = AlbedoTexture
	m.TextureID = id

	// x=-4 maps to column 0, y=2 maps to row 0
	assert.Equal(t, core.NewVec3(1, 0, 0), Resolve(m, core.NewVec3(-3.9, 1.9, 3.99), assets))
	// one column to the right: 8 texels over 8 units
	assert.Equal(t, core.NewVec3(0, 0, 1), Resolve(m, core.NewVec3(-2.9, 1.9, 3.99), assets))
	// outside the window wraps around
	assert.Equal(t, tex.At(-1, 0), Resolve(m, core.NewVec3(-5.5, 1.9, 3.99), assets))

	m.TextureID = 7
	m.Color = core.NewVec3(0.1, 0.2, 0.3)
	assert.Equal(t, m.Color, Resolve(m, core.NewVec3(0, 0, 0), assets), "missing texture falls back to color")
}

func TestAssets_RejectsBadTexture(t *testing.T) {
	assets := NewAssets()
	_, err := assets.AddTexture(NewImageTexture(2, 2, make([]core.Vec3, 3)))
	assert.Error(t, err)
	_, err = assets.AddTexture(nil)
	assert.Error(t, err)
	assert.Equal(t, 0, assets.Len())
	assert.Nil(t, assets.Texture(0))
}

func TestImageTexture_AtWraps(t *testing.T) {
	tex := NewGradientTexture(2, 3, core.Splat(1), core.Splat(0))
	assert.Equal(t, core.Splat(1), tex.At(5, 0))
	assert.Equal(t, core.Splat(0.5), tex.At(0, 1))
	assert.Equal(t, core.Splat(0), tex.At(-1, -1))
}
