package scene

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/geometry"
	"github.com/df07/go-bvh-raytracer/pkg/material"
)

// ErrUnknownMaterial is returned when an object names a material that the
// description does not define
var ErrUnknownMaterial = errors.New("unknown material")

// Vector is a YAML triple such as [0, 1, 0]
type Vector [3]float64

// Vec3 converts the triple to a core vector
func (v Vector) Vec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// Description is the YAML form of a scene
type Description struct {
	Name        string                `yaml:"name"`
	Description string                `yaml:"description"`
	Camera      *CameraDescription    `yaml:"camera"`
	Textures    []string              `yaml:"textures"`
	Materials   []MaterialDescription `yaml:"materials"`
	Objects     []ObjectDescription   `yaml:"objects"`
	Light       *LightDescription     `yaml:"light"`
}

// CameraDescription overrides the default view
type CameraDescription struct {
	Position Vector  `yaml:"position"`
	Target   Vector  `yaml:"target"`
	Up       *Vector `yaml:"up"`
	VFov     float64 `yaml:"vfov"`
}

// MaterialDescription defines a named material. Type is one of diffuse,
// mirror, glass or light.
type MaterialDescription struct {
	Name         string   `yaml:"name"`
	Type         string   `yaml:"type"`
	Color        *Vector  `yaml:"color"`
	Reflectivity *float64 `yaml:"reflectivity"`
	Refractivity *float64 `yaml:"refractivity"`
	Albedo       string   `yaml:"albedo"`
	Texture      int      `yaml:"texture"`
}

// ObjectDescription places one primitive. Rotation is in degrees and is
// applied around X, then Y, then Z.
type ObjectDescription struct {
	Kind     string    `yaml:"kind"`
	Material string    `yaml:"material"`
	Position Vector    `yaml:"position"`
	Rotation Vector    `yaml:"rotation"`
	Radius   float64   `yaml:"radius"`
	Size     *Vector   `yaml:"size"`
	Normal   Vector    `yaml:"normal"`
	Distance float64   `yaml:"distance"`
	Vertices [3]Vector `yaml:"vertices"`
}

// LightDescription names the emitting object by its index in Objects
type LightDescription struct {
	Object int    `yaml:"object"`
	Color  Vector `yaml:"color"`
}

// Transform returns the object's rotation followed by its translation
func (o ObjectDescription) Transform() core.Mat4 {
	rad := func(deg float64) float64 { return deg * math.Pi / 180 }
	return core.Translate(o.Position.Vec3()).
		Mul(core.RotateZ(rad(o.Rotation[2]))).
		Mul(core.RotateY(rad(o.Rotation[1]))).
		Mul(core.RotateX(rad(o.Rotation[0])))
}

// FromDescription builds a scene from its YAML form. Texture ids in
// materials refer to textures already stored in assets.
func FromDescription(desc Description, opts ...Option) (*Scene, error) {
	b := NewBuilder(opts...)

	byName := make(map[string]int, len(desc.Materials))
	for i, md := range desc.Materials {
		m, err := md.build()
		if err != nil {
			return nil, fmt.Errorf("material %d (%s): %w", i, md.Name, err)
		}
		if m.Albedo == material.AlbedoTexture && b.Assets().Texture(m.TextureID) == nil {
			return nil, fmt.Errorf("material %d (%s): texture %d not loaded", i, md.Name, m.TextureID)
		}
		byName[md.Name] = b.AddMaterial(m)
	}

	for i, od := range desc.Objects {
		matIdx, ok := byName[od.Material]
		if !ok {
			return nil, fmt.Errorf("object %d: %w %q", i, ErrUnknownMaterial, od.Material)
		}
		if err := od.add(b, matIdx); err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
	}

	if desc.Light != nil {
		b.SetLight(desc.Light.Object, desc.Light.Color.Vec3())
	}
	if c := desc.Camera; c != nil {
		cam := DefaultCamera()
		cam.Position = c.Position.Vec3()
		cam.Target = c.Target.Vec3()
		if c.Up != nil {
			cam.Up = c.Up.Vec3()
		}
		if c.VFov > 0 {
			cam.VFov = c.VFov
		}
		b.SetCamera(cam)
	}
	return b.Build()
}

func (md MaterialDescription) build() (material.Material, error) {
	color := core.Splat(1)
	if md.Color != nil {
		color = md.Color.Vec3()
	}

	var m material.Material
	switch strings.ToLower(md.Type) {
	case "", "diffuse":
		m = material.NewDiffuse(color)
	case "mirror":
		m = material.NewMirror(color, 1)
	case "glass":
		m = material.NewGlass(color)
	case "light":
		m = material.NewLight()
	default:
		return m, fmt.Errorf("unknown material type %q", md.Type)
	}
	if md.Reflectivity != nil {
		m.Reflectivity = *md.Reflectivity
	}
	if md.Refractivity != nil {
		m.Refractivity = *md.Refractivity
	}

	switch strings.ToLower(md.Albedo) {
	case "", "constant":
		m.Albedo = material.AlbedoConstant
	case "checkerboard":
		m.Albedo = material.AlbedoCheckerboard
	case "texture":
		m.Albedo = material.AlbedoTexture
		m.TextureID = md.Texture
	default:
		return m, fmt.Errorf("unknown albedo %q", md.Albedo)
	}
	return m, nil
}

func (od ObjectDescription) add(b *Builder, matIdx int) error {
	kind, err := geometry.ParseKind(od.Kind)
	if err != nil {
		return err
	}
	switch kind {
	case geometry.KindTriangle:
		v := od.Vertices
		b.AddTriangle(matIdx, v[0].Vec3(), v[1].Vec3(), v[2].Vec3())
	case geometry.KindSphere:
		b.AddSphere(matIdx, od.Position.Vec3(), od.Radius)
	case geometry.KindPlane:
		b.AddPlane(matIdx, od.Normal.Vec3(), od.Distance)
	case geometry.KindCube:
		size := core.Splat(1)
		if od.Size != nil {
			size = od.Size.Vec3()
		}
		b.AddCube(matIdx, core.Vec3{}, size, od.Transform())
	case geometry.KindQuad:
		size := 1.0
		if od.Size != nil {
			size = od.Size[0]
		}
		b.AddQuad(matIdx, size, od.Transform())
	}
	return nil
}
