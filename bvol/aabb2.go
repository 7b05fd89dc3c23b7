package bvol

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/solidphys/core/math/lin"
)

// AABB2 is the 2D counterpart of AABB3, kept only to support the
// dimension-reduced SAT kernels (IntersectsAABBAABB2, IntersectsOBBAABB2,
// IntersectsOBBOBB2) - there is no 2D BVH or TLAS in this engine, since
// every scene it accelerates is 3D.
type AABB2 struct {
	min mgl64.Vec2
	max mgl64.Vec2
}

// NewAABB2 returns a new AABB2 in the empty sentinel state.
func NewAABB2() AABB2 {
	return AABB2{
		min: mgl64.Vec2{lin.MAX, lin.MAX},
		max: mgl64.Vec2{lin.MIN, lin.MIN},
	}
}

func (a *AABB2) Reset() { *a = NewAABB2() }

func (a AABB2) IsEmpty() bool { return a.min[0] > a.max[0] }

func (a *AABB2) Grow(p mgl64.Vec2) {
	for i := 0; i < 2; i++ {
		a.min[i] = minF(a.min[i], p[i])
		a.max[i] = maxF(a.max[i], p[i])
	}
}

func (a AABB2) Min() mgl64.Vec2 { return a.min }
func (a AABB2) Max() mgl64.Vec2 { return a.max }

func (a AABB2) Center() mgl64.Vec2 {
	return mgl64.Vec2{(a.min[0] + a.max[0]) * 0.5, (a.min[1] + a.max[1]) * 0.5}
}

func (a AABB2) Size() mgl64.Vec2 {
	return mgl64.Vec2{a.max[0] - a.min[0], a.max[1] - a.min[1]}
}

func (a AABB2) HalfSize() mgl64.Vec2 {
	s := a.Size()
	return mgl64.Vec2{s[0] * 0.5, s[1] * 0.5}
}

func (a AABB2) IntersectsAABB2(other AABB2) bool {
	return IntersectsAABBAABB2(a.min, a.max, other.min, other.max)
}
