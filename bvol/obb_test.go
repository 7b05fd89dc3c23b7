package bvol_test

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/suite"

	"github.com/solidphys/core/bvol"
	"github.com/solidphys/core/math/lin"
	"github.com/solidphys/core/rigid"
)

type OBBSuite struct {
	suite.Suite
}

func TestOBBSuite(t *testing.T) {
	suite.Run(t, new(OBBSuite))
}

// TestMinMaxProjectsAllCorners guards against the original's shortcut of
// deriving the AABB from only two of the box's eight corners: a box
// rotated 45 degrees about Z needs a noticeably wider axis-aligned bound
// than its unrotated half-size would suggest.
func (s *OBBSuite) TestMinMaxProjectsAllCorners() {
	rot := lin.NewQ().SetAa(0, 0, 1, math.Pi/4)
	transform := rigid.NewTransformer(lin.NewV3(), rot, &lin.V3{X: 1, Y: 1, Z: 1}, lin.NewV3())
	o := bvol.NewOBB(transform, mgl64.Vec3{2, 1, 1})

	max := o.Max()
	want := (2 + 1) * math.Sqrt(0.5) // (half_size.x + half_size.y) * cos(45deg)
	s.Greater(max[0], 2.0, "rotated box's x-extent must exceed its own half_size.x")
	s.InDelta(want, max[0], 1e-9)
}

func (s *OBBSuite) TestMinMaxUnrotatedMatchesHalfSize() {
	transform := rigid.NewTransformer(lin.NewV3(), lin.NewQI(), &lin.V3{X: 1, Y: 1, Z: 1}, lin.NewV3())
	o := bvol.NewOBB(transform, mgl64.Vec3{2, 3, 4})
	s.InDelta(2, o.Max()[0], 1e-9)
	s.InDelta(3, o.Max()[1], 1e-9)
	s.InDelta(4, o.Max()[2], 1e-9)
}
