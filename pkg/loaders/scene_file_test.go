package loaders

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/material"
)

const texturedScene = `# Scene: Textured Box
# Description: a sphere in front of a textured wall
textures:
  - wall.png
materials:
  - name: lamp
    type: light
  - name: wall
    albedo: texture
    texture: 0
  - name: ball
    color: [0.2, 0.4, 0.6]
objects:
  - kind: quad
    material: lamp
    position: [0, 1.9, 1]
  - kind: plane
    material: wall
    normal: [0, 0, -1]
    distance: 3.99
  - kind: sphere
    material: ball
    position: [0, 0, 1]
    radius: 0.5
light:
  object: 0
  color: [2, 2, 1.6]
`

func TestLoadSceneFile(t *testing.T) {
	dir := t.TempDir()

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	writePNG(t, filepath.Join(dir, "wall.png"), img)

	path := filepath.Join(dir, "box.yaml")
	require.NoError(t, os.WriteFile(path, []byte(texturedScene), 0644))

	s, err := LoadSceneFile(path)
	require.NoError(t, err)

	assert.Equal(t, 3, s.PrimitiveCount())
	assert.Equal(t, 1, s.Assets.Len())
	assert.Equal(t, core.NewVec3(2, 2, 1.6), s.GetLightColor())

	wall := s.GetMaterial(1)
	assert.Equal(t, material.AlbedoTexture, wall.Albedo)
	albedo := s.GetAlbedo(1, core.NewVec3(0, 0, 3.99))
	assert.InDelta(t, 1, albedo.X, 1e-9)
	assert.InDelta(t, 0, albedo.Y, 1e-9)
}

func TestLoadSceneFile_Errors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		return path
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "missing.yaml")},
		{"unknown key", write("unknown.yaml", "objekts: []\n")},
		{"malformed yaml", write("bad.yaml", "materials: [\n")},
		{"missing texture", write("tex.yaml", "textures: [nope.png]\n")},
		{"bad vector", write("vec.yaml", "light: {object: 0, color: [1, 2]}\n")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSceneFile(tt.path)
			assert.Error(t, err)
		})
	}
}

func TestParseSceneDescription(t *testing.T) {
	desc, err := ParseSceneDescription([]byte(texturedScene))
	require.NoError(t, err)
	assert.Equal(t, []string{"wall.png"}, desc.Textures)
	assert.Len(t, desc.Materials, 3)
	assert.Len(t, desc.Objects, 3)
	require.NotNil(t, desc.Light)
	assert.Equal(t, 0, desc.Light.Object)
}
