package rigid

import (
	"math"

	"github.com/solidphys/core/math/lin"
)

// IS (inertial system) is a rigid body's dynamic state: linear and angular
// momentum, the cached Transformer tracking its pose, and the
// MassDistribution that relates momentum to velocity. Ported from
// original_source/src/system/inertia.rs's IS<T>.
type IS struct {
	momentum    *lin.V3
	angularMom  *lin.V3
	transformer *Transformer
	mass        *MassDistribution
}

// NewIS returns a new IS at rest (zero momentum) with the given pose and
// mass distribution.
func NewIS(transformer *Transformer, mass *MassDistribution) *IS {
	return &IS{
		momentum:    lin.NewV3(),
		angularMom:  lin.NewV3(),
		transformer: transformer,
		mass:        mass,
	}
}

func (is *IS) Transformer() *Transformer     { return is.transformer }
func (is *IS) Mass() *MassDistribution       { return is.mass }
func (is *IS) Momentum() *lin.V3             { return is.momentum }
func (is *IS) AngularMomentum() *lin.V3      { return is.angularMom }

// GetLinearVel returns the body's linear velocity: momentum / mass.
func (is *IS) GetLinearVel() *lin.V3 {
	return lin.NewV3().Scale(is.momentum, 1/is.mass.Mass())
}

// GetAngularVel returns the angular velocity of the inertial system within
// its own reference frame: invInertia * angularMom. Both the inertia tensor
// and the angular momentum are tracked in the system's own frame, so no
// conversion happens here - a caller holding world-space angular momentum
// converts it first with TrafoVecInto.
func (is *IS) GetAngularVel() *lin.V3 {
	inv := is.mass.InvInertia()
	am := is.angularMom
	return &lin.V3{
		X: am.X*inv.Xx + am.Y*inv.Xy + am.Z*inv.Xz,
		Y: am.X*inv.Yx + am.Y*inv.Yy + am.Z*inv.Yz,
		Z: am.X*inv.Zx + am.Y*inv.Zy + am.Z*inv.Zz,
	}
}

// GetPointVel returns the velocity of the point at local position p, itself
// expressed within the reference frame of this inertial system: the
// rotational contribution angularVel x p. To get a point's velocity from
// outside the system, transform in and out at the call site, e.g.
// is.TrafoVecOutof(is.GetPointVel(is.TrafoPointInto(worldPoint))).
func (is *IS) GetPointVel(p *lin.V3) *lin.V3 {
	return lin.NewV3().Cross(is.GetAngularVel(), p)
}

// ApplyImpulse applies impulse j at local point p - both already expressed
// within the reference frame of this inertial system - updating linear and
// angular momentum. A caller holding a world-space impulse and point
// converts them first with TrafoVecInto/TrafoPointInto.
func (is *IS) ApplyImpulse(p, j *lin.V3) {
	is.momentum.Add(is.momentum, j)
	torque := lin.NewV3().Cross(p, j)
	is.angularMom.Add(is.angularMom, torque)
}

// Integrate advances the body's pose by dt using the current linear and
// angular velocity, semi-implicit Euler: velocities are read from the
// current momentum first, then the pose is advanced as if that velocity
// were held constant over dt. lin.T.Integrate (the teacher's own port of
// btTransformUtil::integrateTransform) expects its angular velocity in the
// laboratory frame, so GetAngularVel's body-frame result is converted with
// TrafoVecOutof before the call - the same conversion any other caller of
// GetAngularVel would need to do to use it outside this system's frame.
// lin.T.Integrate caps the rotation of a single call at Pi/4, so a step
// that rotates further is split into equal sub-steps that each stay within
// that cap; with the velocity held constant they add up to the full step.
func (is *IS) Integrate(dt float64) {
	linVel := is.GetLinearVel()
	angVel := is.TrafoVecOutof(is.GetAngularVel())
	state := is.transformer.State()
	steps := 1
	if limit := 0.5 * lin.HalfPi; angVel.Len()*dt > limit {
		steps = int(math.Ceil(angVel.Len() * dt / limit))
	}
	h := dt / float64(steps)
	for i := 0; i < steps; i++ {
		next := lin.NewT().Integrate(state, linVel, angVel, h)
		state.Set(next)
	}
	is.transformer.UpdateTransformation()
}

// Sync recomputes the Transformer's cached matrices after any direct
// mutation of its position or rotation, e.g. after Integrate or after an
// external system has moved the body.
func (is *IS) Sync() { is.transformer.UpdateTransformation() }

// TrafoPointInto converts world point p into this body's local frame.
func (is *IS) TrafoPointInto(p *lin.V3) *lin.V3 { return is.transformer.InvTrafoPoint(p) }

// TrafoPointOutof converts local point p into world space.
func (is *IS) TrafoPointOutof(p *lin.V3) *lin.V3 { return is.transformer.TrafoPoint(p) }

// TrafoVecInto converts world direction v into this body's local frame.
func (is *IS) TrafoVecInto(v *lin.V3) *lin.V3 { return is.transformer.InvTrafoVec(v) }

// TrafoVecOutof converts local direction v into world space.
func (is *IS) TrafoVecOutof(v *lin.V3) *lin.V3 { return is.transformer.TrafoVec(v) }
