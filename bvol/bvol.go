// Package bvol implements the bounding-volume algebra shared by the bottom
// and top level acceleration structures: axis-aligned boxes, oriented boxes,
// points, and the separating-axis tests that decide whether any pair of them
// overlaps.
//
// Vector arithmetic here is mgl64.Vec3/Vec2, not the teacher's lin package -
// lin stays the algebra for rigid-body state (rigid.Transformer keeps its own
// cached matrices), while bvol follows Gekko3D's acceleration-structure
// builder in using mathgl for plain point/centroid/union arithmetic.
package bvol

import "github.com/go-gl/mathgl/mgl64"

// BoundingVolume is the uniform geometric interface every bounding volume in
// the package implements. Area need not be the true surface area - only a
// value monotonic in box size, consistent across the volumes being compared
// in an SAH cost.
type BoundingVolume interface {
	Center() mgl64.Vec3
	Area() float64
	Min() mgl64.Vec3
	Max() mgl64.Vec3
	Size() mgl64.Vec3
	HalfSize() mgl64.Vec3
}

// Intersects dispatches a pairwise overlap test across the three concrete
// bounding volumes this package implements: AABB3, OBB, Point3. The pair
// Point3-Point3 always returns false - two points never have a positive
// overlap. Symmetric pairs (e.g. AABB3 vs OBB and OBB vs AABB3) delegate to
// one canonical kernel so the two directions can never drift apart.
func Intersects(a, b BoundingVolume) bool {
	switch av := a.(type) {
	case AABB3:
		switch bv := b.(type) {
		case AABB3:
			return av.IntersectsAABB3(bv)
		case OBB:
			return bv.IntersectsAABB3(av)
		case Point3:
			return av.IntersectsPoint3(bv)
		}
	case OBB:
		switch bv := b.(type) {
		case AABB3:
			return av.IntersectsAABB3(bv)
		case OBB:
			return av.IntersectsOBB(bv)
		case Point3:
			return av.IntersectsPoint3(bv)
		}
	case Point3:
		switch bv := b.(type) {
		case AABB3:
			return bv.IntersectsPoint3(av)
		case OBB:
			return bv.IntersectsPoint3(av)
		case Point3:
			_ = bv
			return false
		}
	}
	return false
}
