package material

import "github.com/df07/go-bvh-raytracer/pkg/core"

// Back wall texture window in world units
const (
	wallLeft   = -4.0
	wallTop    = 2.0
	wallWidth  = 8.0
	wallHeight = 3.0
)

// Resolve returns the surface color of m at world point p
func Resolve(m Material, p core.Vec3, assets *Assets) core.Vec3 {
	switch m.Albedo {
	case AlbedoCheckerboard:
		return checkerboard(m.Color, p)
	case AlbedoTexture:
		if tex := assets.Texture(m.TextureID); tex != nil {
			return wallTexture(tex, p)
		}
	}
	return m.Color
}

// checkerboard draws half-unit tiles on the XZ plane. Two tiles are
// deliberately drawn at a much finer frequency to show aliasing.
func checkerboard(color, p core.Vec3) core.Vec3 {
	ix := int(p.X*2 + 96.01)
	iz := int(p.Z*2 + 96.01)
	if ix == 98 && iz == 98 {
		ix, iz = int(p.X*32.01), int(p.Z*32.01)
	}
	if ix == 94 && iz == 98 {
		ix, iz = int(p.X*64.01), int(p.Z*64.01)
	}
	if (ix+iz)&1 != 0 {
		return color
	}
	return color.Multiply(0.3)
}

// wallTexture stretches the texture over the wall window in the XY plane
func wallTexture(tex *ImageTexture, p core.Vec3) core.Vec3 {
	ix := int((p.X - wallLeft) * (float64(tex.Width) / wallWidth))
	iy := int((wallTop - p.Y) * (float64(tex.Height) / wallHeight))
	return tex.At(ix, iy)
}
