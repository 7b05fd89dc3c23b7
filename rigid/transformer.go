// Package rigid implements rigid-body state: the cached affine transform
// shared by every bounding volume and inertial system, mass/inertia
// accumulation, and semi-implicit Euler integration of linear and angular
// momentum.
//
// Grounded on original_source/src/system/inertia.rs, with the integration
// step reusing the teacher's own math/lin.T.Integrate (itself ported from
// bullet physics' btTransformUtil::integrateTransform) rather than
// reimplementing the exponential-map rotation update a second time.
package rigid

import "github.com/solidphys/core/math/lin"

// Transformer caches the forward and inverse affine matrices for a
// position/rotation/scale/local-offset frame. Position and rotation live in
// an embedded lin.T so integration can reuse the teacher's own transform
// update code; scale and offset are this package's own addition since lin.T
// deliberately excludes them.
type Transformer struct {
	state  *lin.T  // position + rotation.
	scale  *lin.V3 // per-axis scale, applied before rotation.
	offset *lin.V3 // local pivot offset, applied before scale.

	mat    *lin.M4 // cached local-to-world affine matrix.
	invMat *lin.M4 // cached world-to-local affine matrix.
}

// NewTransformer returns a Transformer for the given position, rotation,
// scale and local offset, with its cached matrices already computed.
func NewTransformer(pos *lin.V3, rot *lin.Q, scale *lin.V3, offset *lin.V3) *Transformer {
	tr := &Transformer{
		state:  lin.NewT().SetVQ(pos, rot),
		scale:  lin.NewV3().Set(scale),
		offset: lin.NewV3().Set(offset),
		mat:    lin.NewM4(),
		invMat: lin.NewM4(),
	}
	tr.UpdateTransformation()
	return tr
}

// State returns the position/rotation transform. Callers that mutate it
// directly (e.g. IS.Integrate) must call UpdateTransformation afterwards.
func (tr *Transformer) State() *lin.T { return tr.state }

// Pos returns the world position.
func (tr *Transformer) Pos() *lin.V3 { return tr.state.Loc }

// Rot returns the world rotation.
func (tr *Transformer) Rot() *lin.Q { return tr.state.Rot }

// Scale returns the per-axis scale.
func (tr *Transformer) Scale() *lin.V3 { return tr.scale }

// Offset returns the local pivot offset.
func (tr *Transformer) Offset() *lin.V3 { return tr.offset }

// UpdateTransformation recomputes the cached forward and inverse matrices
// from the current position, rotation, scale and offset. Must be called
// after any direct mutation of those fields.
func (tr *Transformer) UpdateTransformation() {
	tr.genMat()
	tr.genInvMat()
}

// mat = T(offset) * S(scale) * R(rot) * T(pos) - offset is applied first
// (pivot about a local point), then scale, then rotation, then the world
// position translation.
func (tr *Transformer) genMat() {
	toffset := lin.TranslateM4(tr.offset.X, tr.offset.Y, tr.offset.Z)
	sscale := lin.ScaleM4(tr.scale.X, tr.scale.Y, tr.scale.Z)
	rrot := lin.RotateM4(tr.state.Rot)
	tpos := lin.TranslateM4(tr.state.Loc.X, tr.state.Loc.Y, tr.state.Loc.Z)

	m := lin.NewM4().Mult(toffset, sscale)
	m.Mult(m, rrot)
	m.Mult(m, tpos)
	tr.mat = m
}

// invMat = T(-pos) * R(rot)^-1 * S(1/scale) * T(-offset), the inverse of
// genMat's composition in reverse order.
func (tr *Transformer) genInvMat() {
	invTpos := lin.InvTranslateM4(tr.state.Loc.X, tr.state.Loc.Y, tr.state.Loc.Z)
	invRrot := lin.InvRotateM4(tr.state.Rot)
	invSscale := lin.InvScaleM4(tr.scale.X, tr.scale.Y, tr.scale.Z)
	invToffset := lin.InvTranslateM4(tr.offset.X, tr.offset.Y, tr.offset.Z)

	m := lin.NewM4().Mult(invTpos, invRrot)
	m.Mult(m, invSscale)
	m.Mult(m, invToffset)
	tr.invMat = m
}

// TrafoPoint transforms point v from local to world space through the full
// affine matrix (translation included).
func (tr *Transformer) TrafoPoint(v *lin.V3) *lin.V3 {
	out := lin.NewV4().MultvM(&lin.V4{X: v.X, Y: v.Y, Z: v.Z, W: 1}, tr.mat)
	return &lin.V3{X: out.X, Y: out.Y, Z: out.Z}
}

// TrafoVec transforms direction v from local to world space through the
// matrix's linear part only - translation does not act on directions.
func (tr *Transformer) TrafoVec(v *lin.V3) *lin.V3 {
	out := lin.NewV4().MultvM(&lin.V4{X: v.X, Y: v.Y, Z: v.Z, W: 0}, tr.mat)
	return &lin.V3{X: out.X, Y: out.Y, Z: out.Z}
}

// InvTrafoPoint transforms point v from world to local space.
func (tr *Transformer) InvTrafoPoint(v *lin.V3) *lin.V3 {
	out := lin.NewV4().MultvM(&lin.V4{X: v.X, Y: v.Y, Z: v.Z, W: 1}, tr.invMat)
	return &lin.V3{X: out.X, Y: out.Y, Z: out.Z}
}

// InvTrafoVec transforms direction v from world to local space.
func (tr *Transformer) InvTrafoVec(v *lin.V3) *lin.V3 {
	out := lin.NewV4().MultvM(&lin.V4{X: v.X, Y: v.Y, Z: v.Z, W: 0}, tr.invMat)
	return &lin.V3{X: out.X, Y: out.Y, Z: out.Z}
}

// Trafo returns a new Transformer whose forward matrix is tr's matrix
// composed with other's (tr applied first, then other).
func (tr *Transformer) Trafo(other *Transformer) *Transformer {
	out := tr.clone()
	out.mat = lin.NewM4().Mult(tr.mat, other.mat)
	out.invMat = lin.NewM4().Mult(other.invMat, tr.invMat)
	return out
}

// InvTrafo returns a new Transformer composing tr's inverse with other's
// inverse matrix, mirroring the reversed composition order inertia.rs uses
// for inv_mat in its own inv_trafo.
func (tr *Transformer) InvTrafo(other *Transformer) *Transformer {
	out := tr.clone()
	out.mat = lin.NewM4().Mult(other.mat, tr.mat)
	out.invMat = lin.NewM4().Mult(tr.invMat, other.invMat)
	return out
}

// Inverse returns a new Transformer that is tr's inverse. Since mat and
// invMat are already both cached, this swaps the caches directly instead
// of recomputing either of them.
func (tr *Transformer) Inverse() *Transformer {
	out := tr.clone()
	out.InverseMut()
	return out
}

// InverseMut inverts tr in place by swapping its cached matrices.
func (tr *Transformer) InverseMut() {
	tr.mat, tr.invMat = tr.invMat, tr.mat
}

func (tr *Transformer) clone() *Transformer {
	return &Transformer{
		state:  lin.NewT().Set(tr.state),
		scale:  lin.NewV3().Set(tr.scale),
		offset: lin.NewV3().Set(tr.offset),
		mat:    lin.NewM4().Set(tr.mat),
		invMat: lin.NewM4().Set(tr.invMat),
	}
}

// Right returns the world-space unit vector along the local +X axis.
func (tr *Transformer) Right() *lin.V3 {
	return (&lin.V3{X: tr.mat.Xx, Y: tr.mat.Xy, Z: tr.mat.Xz}).Unit()
}

// Left returns the world-space unit vector along the local -X axis.
func (tr *Transformer) Left() *lin.V3 { r := tr.Right(); return r.Scale(r, -1) }

// Up returns the world-space unit vector along the local +Y axis.
func (tr *Transformer) Up() *lin.V3 {
	return (&lin.V3{X: tr.mat.Yx, Y: tr.mat.Yy, Z: tr.mat.Yz}).Unit()
}

// Down returns the world-space unit vector along the local -Y axis.
func (tr *Transformer) Down() *lin.V3 { u := tr.Up(); return u.Scale(u, -1) }

// Forward returns the world-space unit vector along the local +Z axis.
func (tr *Transformer) Forward() *lin.V3 {
	return (&lin.V3{X: tr.mat.Zx, Y: tr.mat.Zy, Z: tr.mat.Zz}).Unit()
}

// Backward returns the world-space unit vector along the local -Z axis.
func (tr *Transformer) Backward() *lin.V3 { f := tr.Forward(); return f.Scale(f, -1) }
