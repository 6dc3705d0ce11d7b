package scene

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/geometry"
	"github.com/df07/go-bvh-raytracer/pkg/material"
)

// Option configures scene construction
type Option func(*options)

type options struct {
	policy geometry.SplitPolicy
	logger *zap.Logger
	assets *material.Assets
}

// WithSplitPolicy selects the BVH split policy (SAH by default)
func WithSplitPolicy(policy geometry.SplitPolicy) Option {
	return func(o *options) {
		o.policy = policy
	}
}

// WithLogger sets the logger used for build diagnostics
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithAssets shares an existing texture table with the scene
func WithAssets(assets *material.Assets) Option {
	return func(o *options) {
		if assets != nil {
			o.assets = assets
		}
	}
}

// Builder collects primitives and materials. Every Add call returns the
// object or material id it created.
type Builder struct {
	opts       options
	prims      []geometry.Primitive
	materials  []material.Material
	animations []Animation
	lightIdx   int
	lightColor core.Vec3
	camera     CameraConfig
	errs       []error
}

// NewBuilder creates an empty scene builder
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		opts: options{
			policy: geometry.SplitSAH,
			logger: zap.NewNop(),
			assets: material.NewAssets(),
		},
		lightIdx: core.NoHit,
		camera:   DefaultCamera(),
	}
	for _, opt := range opts {
		opt(&b.opts)
	}
	return b
}

// DefaultCamera looks down +Z from just in front of the origin
func DefaultCamera() CameraConfig {
	return CameraConfig{
		Position: core.NewVec3(0, 0, -2),
		Target:   core.NewVec3(0, 0, 0),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     60,
	}
}

// Assets returns the texture table the scene will use
func (b *Builder) Assets() *material.Assets {
	return b.opts.assets
}

// AddTexture stores a texture in the scene's asset table
func (b *Builder) AddTexture(t *material.ImageTexture) int {
	id, err := b.opts.assets.AddTexture(t)
	if err != nil {
		b.errs = append(b.errs, err)
		return -1
	}
	return id
}

// AddMaterial appends a material and returns its id
func (b *Builder) AddMaterial(m material.Material) int {
	b.materials = append(b.materials, m)
	return len(b.materials) - 1
}

func (b *Builder) add(p geometry.Primitive) int {
	b.prims = append(b.prims, p)
	return p.ObjIdx
}

// AddTriangle adds a triangle with world-space vertices
func (b *Builder) AddTriangle(matIdx int, v0, v1, v2 core.Vec3) int {
	return b.add(geometry.NewTriangle(len(b.prims), matIdx, v0, v1, v2))
}

// AddSphere adds a sphere
func (b *Builder) AddSphere(matIdx int, center core.Vec3, radius float64) int {
	if radius <= 0 {
		b.errs = append(b.errs, fmt.Errorf("object %d: sphere radius must be positive, got %g", len(b.prims), radius))
	}
	return b.add(geometry.NewSphere(len(b.prims), matIdx, center, radius))
}

// AddPlane adds an infinite plane with dot(P, normal) + distance = 0
func (b *Builder) AddPlane(matIdx int, normal core.Vec3, distance float64) int {
	if normal.LengthSquared() == 0 {
		b.errs = append(b.errs, fmt.Errorf("object %d: plane normal must not be zero", len(b.prims)))
	}
	return b.add(geometry.NewPlane(len(b.prims), matIdx, normal, distance))
}

// AddCube adds an oriented box
func (b *Builder) AddCube(matIdx int, pos, size core.Vec3, transform core.Mat4) int {
	return b.add(geometry.NewCube(len(b.prims), matIdx, pos, size, transform))
}

// AddQuad adds a square in the object-space XZ plane
func (b *Builder) AddQuad(matIdx int, size float64, transform core.Mat4) int {
	return b.add(geometry.NewQuad(len(b.prims), matIdx, size, transform))
}

// SetLight marks an object as the scene's area light
func (b *Builder) SetLight(objIdx int, color core.Vec3) {
	b.lightIdx = objIdx
	b.lightColor = color
}

// SetCamera overrides the default view
func (b *Builder) SetCamera(camera CameraConfig) {
	b.camera = camera
}

// Animate attaches a time-dependent transform to an object
func (b *Builder) Animate(objIdx int, transform func(t float64) core.Mat4) {
	b.animations = append(b.animations, Animation{ObjIdx: objIdx, Transform: transform})
}

// Build validates the collected objects, builds the BVH and places
// animated objects at time 0
func (b *Builder) Build() (*Scene, error) {
	errs := append([]error(nil), b.errs...)
	for i := range b.prims {
		if m := b.prims[i].MaterialIdx; m < 0 || m >= len(b.materials) {
			errs = append(errs, fmt.Errorf("object %d: material %d out of range", i, m))
		}
	}
	if b.lightIdx != core.NoHit && (b.lightIdx < 0 || b.lightIdx >= len(b.prims)) {
		errs = append(errs, fmt.Errorf("light object %d out of range", b.lightIdx))
	}
	for _, a := range b.animations {
		if a.ObjIdx < 0 || a.ObjIdx >= len(b.prims) {
			errs = append(errs, fmt.Errorf("animated object %d out of range", a.ObjIdx))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("invalid scene: %w", err)
	}

	s := &Scene{
		Primitives: b.prims,
		Materials:  b.materials,
		Assets:     b.opts.assets,
		Camera:     b.camera,
		lightIdx:   b.lightIdx,
		lightColor: b.lightColor,
		animations: b.animations,
		logger:     b.opts.logger,
	}
	s.partition(b.opts.policy)
	s.SetTime(0)

	b.opts.logger.Debug("scene built",
		zap.Int("primitives", len(s.Primitives)),
		zap.Int("bvhPrimitives", len(s.bounded)),
		zap.Int("unbounded", len(s.unbounded)),
		zap.Int("materials", len(s.Materials)),
		zap.Int("textures", s.Assets.Len()),
	)
	return s, nil
}
