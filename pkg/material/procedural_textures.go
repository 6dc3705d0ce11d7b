package material

import (
	"github.com/df07/go-bvh-raytracer/pkg/core"
)

// NewProceduralTexture fills a width x height texture by evaluating f at
// every texel
func NewProceduralTexture(width, height int, f func(x, y int) core.Vec3) *ImageTexture {
	pixels := make([]core.Vec3, 0, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			pixels = append(pixels, f(x, y))
		}
	}
	return NewImageTexture(width, height, pixels)
}

// NewCheckerboardTexture alternates a and b in square tiles of tile texels.
// The tile at the origin is a.
func NewCheckerboardTexture(width, height, tile int, a, b core.Vec3) *ImageTexture {
	if tile < 1 {
		tile = 1
	}
	return NewProceduralTexture(width, height, func(x, y int) core.Vec3 {
		if (x/tile+y/tile)&1 == 0 {
			return a
		}
		return b
	})
}

// NewGradientTexture fades from top on the first row to bottom on the last
func NewGradientTexture(width, height int, top, bottom core.Vec3) *ImageTexture {
	span := float64(max(height-1, 1))
	return NewProceduralTexture(width, height, func(_, y int) core.Vec3 {
		t := float64(y) / span
		return top.Add(bottom.Subtract(top).Multiply(t))
	})
}
