package scene

import (
	"math"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/material"
)

// Object ids of the room scene
const (
	RoomLight = iota
	RoomBall
	RoomCorners
	RoomCube
	RoomWallLeft
	RoomWallRight
	RoomFloor
	RoomCeiling
	RoomWallFront
	RoomWallBack
	RoomTriangle
)

// RoomLightColor is the radiance of the room's area light
var RoomLightColor = core.NewVec3(2, 2, 1.6)

// NewRoomScene builds the animated demo room: a swinging area light, a
// bouncing mirror ball, a spinning glass cube and a small triangle inside
// six walls whose corners are rounded by a large enclosing sphere.
// wallTexture is drawn on the back wall; nil uses a procedural pattern.
func NewRoomScene(wallTexture *material.ImageTexture, opts ...Option) (*Scene, error) {
	b := NewBuilder(opts...)

	if wallTexture == nil {
		wallTexture = material.NewCheckerboardTexture(128, 64, 8,
			core.RGB8(250, 250, 250), core.RGB8(60, 120, 200))
	}
	texID := b.AddTexture(wallTexture)

	light := b.AddMaterial(material.NewLight())
	white := b.AddMaterial(material.NewMaterial())
	ball := b.AddMaterial(material.NewMirror(core.RGB8(233, 199, 199), 1))
	cube := b.AddMaterial(material.NewGlass(core.RGB8(103, 137, 131)))
	plane := b.AddMaterial(material.NewDiffuse(core.Splat(0.8)))

	floorMat := material.NewMirror(core.Splat(1), 0.3)
	floorMat.Albedo = material.AlbedoCheckerboard
	floor := b.AddMaterial(floorMat)

	wallMat := material.NewMaterial()
	wallMat.Albedo = material.AlbedoTexture
	wallMat.TextureID = texID
	backWall := b.AddMaterial(wallMat)

	b.AddQuad(light, 1, core.Identity())
	b.AddSphere(ball, core.Vec3{}, 0.5)
	b.AddSphere(white, core.NewVec3(0, 2.5, -3.07), 8)
	b.AddCube(cube, core.Vec3{}, core.Splat(1.15), core.Identity())
	b.AddPlane(plane, core.NewVec3(1, 0, 0), 3)
	b.AddPlane(plane, core.NewVec3(-1, 0, 0), 2.99)
	b.AddPlane(floor, core.NewVec3(0, 1, 0), 1)
	b.AddPlane(plane, core.NewVec3(0, -1, 0), 2)
	b.AddPlane(plane, core.NewVec3(0, 0, 1), 3)
	b.AddPlane(backWall, core.NewVec3(0, 0, -1), 3.99)
	b.AddTriangle(white,
		core.NewVec3(-0.5, -0.5, 0),
		core.NewVec3(0, 0.5, 0),
		core.NewVec3(0.5, -0.5, 0))

	b.SetLight(RoomLight, RoomLightColor)
	b.Animate(RoomLight, LightSwing)
	b.Animate(RoomCube, CubeSpin)
	b.Animate(RoomBall, BallBounce)

	return b.Build()
}

// LightSwing hangs the light below the ceiling and swings it around Z
func LightSwing(t float64) core.Mat4 {
	return core.Translate(core.NewVec3(0, 2.6, 2)).
		Mul(core.RotateZ(math.Sin(t*0.6) * 0.1)).
		Mul(core.Translate(core.NewVec3(0, -0.9, 0)))
}

// CubeSpin stands the cube on a corner and spins it around Y
func CubeSpin(t float64) core.Mat4 {
	base := core.RotateX(math.Pi / 4).Mul(core.RotateZ(math.Pi / 4))
	return core.Translate(core.NewVec3(1.4, 0, 2)).Mul(core.RotateY(t * 0.5)).Mul(base)
}

// BallBounce moves the ball along a parabola with a period of 2
func BallBounce(t float64) core.Mat4 {
	f := math.Mod(t, 2) - 1
	tm := 1 - f*f
	return core.Translate(core.NewVec3(-1.4, -0.5+tm, 2))
}
