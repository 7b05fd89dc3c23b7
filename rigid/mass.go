package rigid

import "github.com/solidphys/core/math/lin"

// MassDistribution is the mass, center of mass and inertia tensor of a
// rigid body, plus the cached inverse inertia tensor angular dynamics read
// every tick. Ported from original_source/src/system/inertia.rs's
// MassDistribution and its assignop_inertia! point-mass accumulation.
type MassDistribution struct {
	mass         float64
	centerOfMass *lin.V3
	inertia      *lin.M3
	invInertia   *lin.M3
}

// NewMassDistribution builds a MassDistribution from an already-accumulated
// mass, center of mass and inertia tensor. It fails with a MathError if the
// inertia tensor is singular (e.g. all mass concentrated on a single point
// or axis) and with a PhysicsError if mass is not strictly positive.
func NewMassDistribution(mass float64, centerOfMass *lin.V3, inertia *lin.M3) (*MassDistribution, error) {
	if mass <= 0 {
		return nil, newPhysicsError("mass must be strictly positive")
	}
	if inertia.Det() == 0 {
		return nil, newMathError("inertia tensor is singular")
	}
	return &MassDistribution{
		mass:         mass,
		centerOfMass: lin.NewV3().Set(centerOfMass),
		inertia:      lin.NewM3().Set(inertia),
		invInertia:   lin.NewM3().Inv(inertia),
	}, nil
}

func (md *MassDistribution) Mass() float64         { return md.mass }
func (md *MassDistribution) CenterOfMass() *lin.V3  { return md.centerOfMass }
func (md *MassDistribution) Inertia() *lin.M3       { return md.inertia }
func (md *MassDistribution) InvInertia() *lin.M3    { return md.invInertia }

// AddMassPoint folds a point mass m at offset p (relative to the body's
// origin) into the distribution: mass and center of mass update by the
// standard weighted-average rule, and the point's own contribution to the
// inertia tensor (treating it as a point mass, not a solid) is added
// in directly via the parallel-axis-free point formula.
func (md *MassDistribution) AddMassPoint(p *lin.V3, m float64) error {
	newMass := md.mass + m
	if newMass <= 0 {
		return newPhysicsError("resulting mass must be strictly positive")
	}

	newCenter := &lin.V3{
		X: (md.centerOfMass.X*md.mass + p.X*m) / newMass,
		Y: (md.centerOfMass.Y*md.mass + p.Y*m) / newMass,
		Z: (md.centerOfMass.Z*md.mass + p.Z*m) / newMass,
	}

	// A removal (m < 0) measures the point from the current center, which
	// is the center the matching addition measured it from, so removing a
	// just-added point restores the previous inertia tensor.
	ref := newCenter
	if m < 0 {
		ref = md.centerOfMass
	}
	dx, dy, dz := p.X-ref.X, p.Y-ref.Y, p.Z-ref.Z
	newInertia := lin.NewM3().Set(md.inertia)
	newInertia.Xx += m * (dy*dy + dz*dz)
	newInertia.Yy += m * (dx*dx + dz*dz)
	newInertia.Zz += m * (dx*dx + dy*dy)
	newInertia.Xy -= m * dx * dy
	newInertia.Xz -= m * dx * dz
	newInertia.Yz -= m * dy * dz
	newInertia.Yx = newInertia.Xy
	newInertia.Zx = newInertia.Xz
	newInertia.Zy = newInertia.Yz

	if newInertia.Det() == 0 {
		return newMathError("inertia tensor would become singular")
	}

	md.mass = newMass
	md.centerOfMass = newCenter
	md.inertia = newInertia
	md.invInertia = lin.NewM3().Inv(newInertia)
	return nil
}

// SubMassPoint removes a previously-added point mass, the inverse of
// AddMassPoint.
func (md *MassDistribution) SubMassPoint(p *lin.V3, m float64) error {
	return md.AddMassPoint(p, -m)
}
