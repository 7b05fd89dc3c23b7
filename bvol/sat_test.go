package bvol_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/suite"

	"github.com/solidphys/core/bvol"
)

type SATSuite struct {
	suite.Suite
}

func TestSATSuite(t *testing.T) {
	suite.Run(t, new(SATSuite))
}

func (s *SATSuite) TestAABBAABBOverlap() {
	a := bvol.NewAABB3FromMinMax(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1})
	b := bvol.NewAABB3FromMinMax(mgl64.Vec3{0.5, 0.5, 0.5}, mgl64.Vec3{2, 2, 2})
	s.True(a.IntersectsAABB3(b))
	s.True(b.IntersectsAABB3(a))
}

func (s *SATSuite) TestAABBAABBTouchingCountsAsOverlap() {
	a := bvol.NewAABB3FromMinMax(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1})
	b := bvol.NewAABB3FromMinMax(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{2, 1, 1})
	s.True(a.IntersectsAABB3(b), "boxes sharing a face should count as overlapping")
}

func (s *SATSuite) TestAABBAABBSeparated() {
	a := bvol.NewAABB3FromMinMax(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1})
	b := bvol.NewAABB3FromMinMax(mgl64.Vec3{1.1, 0, 0}, mgl64.Vec3{2, 1, 1})
	s.False(a.IntersectsAABB3(b))
}

func (s *SATSuite) TestOBBOBBIsSymmetric() {
	a := bvol.NewOBB(identityTransformAt(0, 0, 0), mgl64.Vec3{1, 2, 3})
	b := bvol.NewOBB(identityTransformAt(1, 0, 0), mgl64.Vec3{1, 1, 1})
	s.Equal(a.IntersectsOBB(b), b.IntersectsOBB(a), "overlap must not depend on argument order")
}

func (s *SATSuite) TestOBBOBBOverlapUsesBothHalfSizes() {
	// A box with a large half_size.z should be able to reach a box placed
	// far away along z only if its OWN z extent, not the other box's, is
	// used on its own side of the test.
	a := bvol.NewOBB(identityTransformAt(0, 0, 0), mgl64.Vec3{1, 1, 10})
	b := bvol.NewOBB(identityTransformAt(0, 0, 9), mgl64.Vec3{1, 1, 0.1})
	s.True(a.IntersectsOBB(b))
	s.True(b.IntersectsOBB(a))
}
