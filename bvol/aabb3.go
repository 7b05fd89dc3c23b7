package bvol

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/solidphys/core/math/lin"
)

// AABB3 is a 3-dimensional axis-aligned bounding box. The empty state is
// encoded as min = +MAX, max = -MAX so that growing an empty box by any
// point or box yields exactly that point or box - ported from
// original_source/src/volume/aabb.rs's AABB::new/reset.
type AABB3 struct {
	min mgl64.Vec3
	max mgl64.Vec3
}

// NewAABB3 returns a new AABB3 in the empty sentinel state.
func NewAABB3() AABB3 {
	return AABB3{
		min: mgl64.Vec3{lin.MAX, lin.MAX, lin.MAX},
		max: mgl64.Vec3{lin.MIN, lin.MIN, lin.MIN},
	}
}

// NewAABB3FromMinMax returns an AABB3 with the given bounds directly.
func NewAABB3FromMinMax(min, max mgl64.Vec3) AABB3 {
	return AABB3{min: min, max: max}
}

// Reset returns a to the empty sentinel state.
func (a *AABB3) Reset() { *a = NewAABB3() }

// IsEmpty reports whether a is still in the empty sentinel state.
func (a AABB3) IsEmpty() bool { return a.min[0] > a.max[0] }

// Adjust sets a to wrap both left and right.
func (a *AABB3) Adjust(left, right AABB3) {
	for i := 0; i < 3; i++ {
		a.min[i] = minF(left.min[i], right.min[i])
		a.max[i] = maxF(left.max[i], right.max[i])
	}
}

// GrowOther grows a to also wrap other, unless other is itself still empty.
func (a *AABB3) GrowOther(other AABB3) {
	if other.IsEmpty() {
		return
	}
	for i := 0; i < 3; i++ {
		a.min[i] = minF(a.min[i], other.min[i])
		a.max[i] = maxF(a.max[i], other.max[i])
	}
}

// Grow grows a to also wrap point p.
func (a *AABB3) Grow(p mgl64.Vec3) {
	for i := 0; i < 3; i++ {
		a.min[i] = minF(a.min[i], p[i])
		a.max[i] = maxF(a.max[i], p[i])
	}
}

func (a AABB3) Center() mgl64.Vec3 {
	return mgl64.Vec3{
		(a.min[0] + a.max[0]) * 0.5,
		(a.min[1] + a.max[1]) * 0.5,
		(a.min[2] + a.max[2]) * 0.5,
	}
}

// Area returns the surface-area proxy Σ sizeᵢ·size_(i+1 mod 3) - half the
// true surface area, but SAH only cares about the ordering it induces.
func (a AABB3) Area() float64 {
	s := a.Size()
	return s[0]*s[1] + s[1]*s[2] + s[2]*s[0]
}

func (a AABB3) Min() mgl64.Vec3 { return a.min }
func (a AABB3) Max() mgl64.Vec3 { return a.max }

func (a AABB3) Size() mgl64.Vec3 {
	return mgl64.Vec3{a.max[0] - a.min[0], a.max[1] - a.min[1], a.max[2] - a.min[2]}
}

func (a AABB3) HalfSize() mgl64.Vec3 {
	s := a.Size()
	return mgl64.Vec3{s[0] * 0.5, s[1] * 0.5, s[2] * 0.5}
}

// IntersectsAABB3 reports whether a and other overlap, touching included.
func (a AABB3) IntersectsAABB3(other AABB3) bool {
	return IntersectsAABBAABB(a.min, a.max, other.min, other.max)
}

// IntersectsPoint3 reports whether a contains p, boundary included.
func (a AABB3) IntersectsPoint3(p Point3) bool {
	v := mgl64.Vec3(p)
	for i := 0; i < 3; i++ {
		if v[i] < a.min[i] || v[i] > a.max[i] {
			return false
		}
	}
	return true
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
