package material

import "github.com/df07/go-bvh-raytracer/pkg/core"

// AlbedoKind selects how the surface color of a material is computed
type AlbedoKind int

const (
	// AlbedoConstant uses Material.Color everywhere
	AlbedoConstant AlbedoKind = iota
	// AlbedoCheckerboard is the floor pattern with two aliased tiles
	AlbedoCheckerboard
	// AlbedoTexture samples a texture from the asset table over the back wall
	AlbedoTexture
)

func (k AlbedoKind) String() string {
	switch k {
	case AlbedoCheckerboard:
		return "checkerboard"
	case AlbedoTexture:
		return "texture"
	default:
		return "constant"
	}
}

// Material is a plain record; the surface response is chosen by the
// integrators from the flags and the albedo by Resolve.
type Material struct {
	IsLight      bool
	IsMirror     bool
	IsGlass      bool
	Color        core.Vec3
	Reflectivity float64
	Refractivity float64
	Albedo       AlbedoKind
	TextureID    int
}

// NewMaterial returns a white diffuse material
func NewMaterial() Material {
	return Material{
		Color:        core.Splat(1),
		Reflectivity: 1,
		Refractivity: 1,
		Albedo:       AlbedoConstant,
	}
}

// NewLight returns an emitter material
func NewLight() Material {
	m := NewMaterial()
	m.IsLight = true
	return m
}

// NewMirror returns a mirror that reflects the given fraction of light
func NewMirror(color core.Vec3, reflectivity float64) Material {
	m := NewMaterial()
	m.IsMirror = true
	m.Color = color
	m.Reflectivity = reflectivity
	return m
}

// NewGlass returns a dielectric material tinted by color
func NewGlass(color core.Vec3) Material {
	m := NewMaterial()
	m.IsGlass = true
	m.Color = color
	return m
}

// NewDiffuse returns a diffuse material of the given color
func NewDiffuse(color core.Vec3) Material {
	m := NewMaterial()
	m.Color = color
	return m
}

// ErrorMaterial is returned for lookups of "no hit" or unknown objects
func ErrorMaterial() Material {
	return NewDiffuse(core.RGB8(240, 98, 146))
}

// IsDiffuse reports whether the material has no specular behavior
func (m Material) IsDiffuse() bool {
	return !m.IsLight && !m.IsMirror && !m.IsGlass
}
