package bvol

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/solidphys/core/math/lin"
	"github.com/solidphys/core/rigid"
)

// OBB is an oriented bounding box: a half-size in its own local frame plus
// the same cached Transformer a rigid body's inertial system tracks. An
// entity's invariant is that its OBB's transform and its IS's transform are
// always the same pointer, kept in lockstep by entity.Sync.
type OBB struct {
	transform *rigid.Transformer
	halfSize  mgl64.Vec3
}

// NewOBB returns an OBB with the given half-size, tracking transform.
func NewOBB(transform *rigid.Transformer, halfSize mgl64.Vec3) OBB {
	return OBB{transform: transform, halfSize: halfSize}
}

func (o OBB) Transform() *rigid.Transformer { return o.transform }
func (o OBB) LocalHalfSize() mgl64.Vec3     { return o.halfSize }

func (o OBB) rotation() mgl64.Mat3 {
	right := o.transform.Right()
	up := o.transform.Up()
	forward := o.transform.Forward()
	return mgl64.Mat3FromCols(
		mgl64.Vec3{right.X, right.Y, right.Z},
		mgl64.Vec3{up.X, up.Y, up.Z},
		mgl64.Vec3{forward.X, forward.Y, forward.Z},
	)
}

func (o OBB) Center() mgl64.Vec3 {
	p := o.transform.Pos()
	return mgl64.Vec3{p.X, p.Y, p.Z}
}

func (o OBB) Area() float64 {
	s := o.Size()
	return s[0]*s[1] + s[1]*s[2] + s[2]*s[0]
}

// Min returns the axis-aligned lower bound of the OBB. Unlike the original
// implementation (which derived this from only two of the box's eight
// corners via TrafoPoint(±halfSize), missing the tight bound whenever the
// box is rotated), this projects all three local half-extents through the
// absolute value of the rotation matrix and bounds around the center -
// equivalent to taking the convex hull of all eight corners.
func (o OBB) Min() mgl64.Vec3 {
	c, e := o.worldExtent()
	return c.Sub(e)
}

// Max is the rotation-correct counterpart to Min, see its comment.
func (o OBB) Max() mgl64.Vec3 {
	c, e := o.worldExtent()
	return c.Add(e)
}

func (o OBB) worldExtent() (center, extent mgl64.Vec3) {
	r := o.rotation()
	center = o.Center()
	for i := 0; i < 3; i++ {
		row := mgl64.Vec3{absF(r[i]), absF(r[i+3]), absF(r[i+6])}
		extent[i] = row.Dot(o.halfSize)
	}
	return center, extent
}

func (o OBB) Size() mgl64.Vec3 {
	return mgl64.Vec3{o.halfSize[0] * 2, o.halfSize[1] * 2, o.halfSize[2] * 2}
}

func (o OBB) HalfSize() mgl64.Vec3 { return o.halfSize }

// IntersectsOBB tests o against other. The original implementation passed
// o's own half_size.z twice instead of other's, making the test about the
// wrong box's extent along z; this passes each box's own half-size to its
// own side of the kernel.
func (o OBB) IntersectsOBB(other OBB) bool {
	return IntersectsOBBOBB(o.Center(), o.halfSize, o.rotation(), other.Center(), other.halfSize, other.rotation())
}

func (o OBB) IntersectsAABB3(aabb AABB3) bool {
	return IntersectsOBBAABB(o.Center(), o.halfSize, o.rotation(), aabb.Min(), aabb.Max())
}

func (o OBB) IntersectsPoint3(p Point3) bool {
	local := o.transform.InvTrafoPoint(&lin.V3{X: p[0], Y: p[1], Z: p[2]})
	return absF(local.X) <= o.halfSize[0] && absF(local.Y) <= o.halfSize[1] && absF(local.Z) <= o.halfSize[2]
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
