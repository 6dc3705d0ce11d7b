package material

import (
	"fmt"

	"github.com/df07/go-bvh-raytracer/pkg/core"
)

// ImageTexture is a flat texel buffer
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x]
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// At returns the texel at (x, y), wrapping both coordinates
func (t *ImageTexture) At(x, y int) core.Vec3 {
	x = ((x % t.Width) + t.Width) % t.Width
	y = ((y % t.Height) + t.Height) % t.Height
	return t.Pixels[y*t.Width+x]
}

// Assets is the texture table built together with a scene. Materials
// refer to textures by index.
type Assets struct {
	textures []*ImageTexture
}

// NewAssets creates an empty asset table
func NewAssets() *Assets {
	return &Assets{}
}

// AddTexture stores a texture and returns its id
func (a *Assets) AddTexture(t *ImageTexture) (int, error) {
	if t == nil || t.Width <= 0 || t.Height <= 0 || len(t.Pixels) != t.Width*t.Height {
		return 0, fmt.Errorf("invalid texture: expected %dx%d texels", widthOf(t), heightOf(t))
	}
	a.textures = append(a.textures, t)
	return len(a.textures) - 1, nil
}

// Texture returns the texture with the given id, or nil
func (a *Assets) Texture(id int) *ImageTexture {
	if a == nil || id < 0 || id >= len(a.textures) {
		return nil
	}
	return a.textures[id]
}

// Len returns the number of textures
func (a *Assets) Len() int {
	if a == nil {
		return 0
	}
	return len(a.textures)
}

func widthOf(t *ImageTexture) int {
	if t == nil {
		return 0
	}
	return t.Width
}

func heightOf(t *ImageTexture) int {
	if t == nil {
		return 0
	}
	return t.Height
}
