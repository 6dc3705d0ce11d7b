package renderer

import (
	"math"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/scene"
)

// Camera is a pinhole camera that maps pixel coordinates onto an image
// plane in front of the eye
type Camera struct {
	position core.Vec3
	topLeft  core.Vec3 // image plane corner for pixel (0, 0)
	across   core.Vec3 // top-left to top-right corner
	down     core.Vec3 // top-left to bottom-left corner
	width    float64
	height   float64
}

// NewCamera creates a camera for an image of width x height pixels.
// A degenerate configuration (target on the eye, up parallel to the view
// direction) falls back to the default orientation.
func NewCamera(cfg scene.CameraConfig, width, height int) *Camera {
	def := scene.DefaultCamera()
	forward := cfg.Target.Subtract(cfg.Position)
	if forward.LengthSquared() == 0 {
		forward = def.Target.Subtract(def.Position)
	}
	forward = forward.Normalize()

	up := cfg.Up
	if up.LengthSquared() == 0 || up.Cross(forward).LengthSquared() == 0 {
		up = def.Up
		if up.Cross(forward).LengthSquared() == 0 {
			up = core.NewVec3(0, 0, 1)
		}
	}
	right := up.Cross(forward).Normalize()
	trueUp := forward.Cross(right)

	vfov := cfg.VFov
	if vfov <= 0 || vfov >= 180 {
		vfov = def.VFov
	}

	aspect := float64(width) / float64(height)
	// Half extents of the image plane at unit distance
	halfHeight := math.Tan(vfov / 2 * math.Pi / 180)
	halfWidth := halfHeight * aspect

	center := cfg.Position.Add(forward)
	topLeft := center.Subtract(right.Multiply(halfWidth)).Add(trueUp.Multiply(halfHeight))

	return &Camera{
		position: cfg.Position,
		topLeft:  topLeft,
		across:   right.Multiply(2 * halfWidth),
		down:     trueUp.Multiply(-2 * halfHeight),
		width:    float64(width),
		height:   float64(height),
	}
}

// GetPrimaryRay returns the ray through sub-pixel position (x, y), where
// (0, 0) is the top-left corner of the image
func (c *Camera) GetPrimaryRay(x, y float64) core.Ray {
	u := x / c.width
	v := y / c.height
	p := c.topLeft.Add(c.across.Multiply(u)).Add(c.down.Multiply(v))
	return core.NewRay(c.position, p.Subtract(c.position).Normalize())
}

// Position returns the eye position
func (c *Camera) Position() core.Vec3 {
	return c.position
}
