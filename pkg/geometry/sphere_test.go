package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-bvh-raytracer/pkg/core"
)

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(0, 0, core.NewVec3(0, 0, 0), 1.0)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	sphere.Intersect(&ray)
	if ray.HasHit() {
		t.Errorf("Expected miss, but got hit at t=%f", ray.T)
	}
}

func TestSphere_Hit_FrontAndInside(t *testing.T) {
	sphere := NewSphere(7, 0, core.NewVec3(0, 0, 0), 1.0)

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit",
			rayOrigin:      core.NewVec3(0, 0, -5),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      4.0,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
		{
			name:           "origin inside takes far root",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			sphere.Intersect(&ray)

			if !ray.HasHit() {
				t.Fatal("Expected hit, but got miss")
			}
			if ray.ObjIdx != 7 {
				t.Errorf("Expected objIdx 7, got %d", ray.ObjIdx)
			}
			if math.Abs(ray.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, ray.T)
			}

			normal := sphere.GetNormal(ray.IntersectionPoint())
			tolerance := 1e-9
			if math.Abs(normal.X-tt.expectedNormal.X) > tolerance ||
				math.Abs(normal.Y-tt.expectedNormal.Y) > tolerance ||
				math.Abs(normal.Z-tt.expectedNormal.Z) > tolerance {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, normal)
			}
		})
	}
}

func TestSphere_Hit_BehindOrigin(t *testing.T) {
	sphere := NewSphere(0, 0, core.NewVec3(0, 0, -5), 1.0)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))

	sphere.Intersect(&ray)
	if ray.HasHit() {
		t.Errorf("Expected no hit behind the origin, got t=%f", ray.T)
	}
}

func TestSphere_Hit_KeepsCloserHit(t *testing.T) {
	sphere := NewSphere(1, 0, core.NewVec3(0, 0, 0), 1.0)
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
	ray.T, ray.ObjIdx = 2, 9

	sphere.Intersect(&ray)
	if ray.T != 2 || ray.ObjIdx != 9 {
		t.Errorf("Closer hit was overwritten: t=%f obj=%d", ray.T, ray.ObjIdx)
	}
}

func TestSphere_Bounds(t *testing.T) {
	sphere := NewSphere(0, 0, core.NewVec3(1, 2, 3), 0.5)
	box := sphere.Bounds()
	if box.Min != core.NewVec3(0.5, 1.5, 2.5) || box.Max != core.NewVec3(1.5, 2.5, 3.5) {
		t.Errorf("Unexpected sphere bounds %+v", box)
	}
	if sphere.Position() != core.NewVec3(1, 2, 3) {
		t.Errorf("Expected position at center, got %v", sphere.Position())
	}
}
