package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAABB_EmptyAndGrow(t *testing.T) {
	assert := assert.New(t)

	box := EmptyAABB()
	assert.True(box.IsEmpty())
	assert.Equal(0.0, box.Area())

	box = box.Grow(NewVec3(1, 2, 3))
	assert.False(box.IsEmpty())
	assert.Equal(NewVec3(1, 2, 3), box.Min)
	assert.Equal(NewVec3(1, 2, 3), box.Max)

	box = box.Grow(NewVec3(-1, 4, 0))
	assert.Equal(NewVec3(-1, 2, 0), box.Min)
	assert.Equal(NewVec3(1, 4, 3), box.Max)
	assert.True(box.Contains(NewAABB(NewVec3(0, 2, 1), NewVec3(1, 3, 2))))
	assert.False(box.Contains(NewAABB(NewVec3(0, 2, 1), NewVec3(2, 3, 2))))
}

func TestAABB_Area(t *testing.T) {
	box := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 2, 3))
	// 1*2 + 2*3 + 3*1
	assert.Equal(t, 11.0, box.Area())
	assert.Equal(t, 2, box.LongestAxis())
}

func TestAABB_IntersectRay(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))

	tests := []struct {
		name     string
		origin   Vec3
		dir      Vec3
		expected float64
	}{
		{"front hit", NewVec3(0, 0, -5), NewVec3(0, 0, 1), 4},
		{"miss beside box", NewVec3(3, 0, -5), NewVec3(0, 0, 1), MaxDistance},
		{"box behind origin", NewVec3(0, 0, 5), NewVec3(0, 0, 1), MaxDistance},
		{"origin inside", NewVec3(0, 0, 0), NewVec3(1, 0, 0), -1},
		{"axis parallel outside slab", NewVec3(0, 2, -5), NewVec3(0, 0, 1), MaxDistance},
		{"origin on slab plane", NewVec3(0, 1, -5), NewVec3(0, 0, 1), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := NewRay(tt.origin, tt.dir)
			assert.InDelta(t, tt.expected, box.IntersectRay(&ray), 1e-9)
		})
	}
}

func TestAABB_IntersectRayRespectsCurrentHit(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))
	ray := NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1))
	ray.T = 3
	assert.Equal(t, MaxDistance, box.IntersectRay(&ray))
}

func TestAABB_IntersectRayNeverNaN(t *testing.T) {
	box := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	// Origin exactly on the min X plane with zero X direction gives 0*Inf.
	ray := NewRay(NewVec3(0, 0.5, -2), NewVec3(0, 0, 1))
	got := box.IntersectRay(&ray)
	assert.False(t, math.IsNaN(got))
	assert.InDelta(t, 2.0, got, 1e-9)
}
