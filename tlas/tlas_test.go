package tlas_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/suite"

	"github.com/solidphys/core/bvol"
	"github.com/solidphys/core/tlas"
)

type box struct {
	bounds bvol.AABB3
}

func (b box) Bounds() bvol.AABB3                    { return b.bounds }
func (b box) BoundingVolume() bvol.BoundingVolume { return b.bounds }

func newBox(cx, cy, cz float64) box {
	c := mgl64.Vec3{cx, cy, cz}
	eps := mgl64.Vec3{0.4, 0.4, 0.4}
	return box{bounds: bvol.NewAABB3FromMinMax(c.Sub(eps), c.Add(eps))}
}

type TLASSuite struct {
	suite.Suite
}

func TestTLASSuite(t *testing.T) {
	suite.Run(t, new(TLASSuite))
}

func (s *TLASSuite) elements() []tlas.Element {
	return []tlas.Element{
		newBox(0, 0, 0),
		newBox(1, 0, 0),
		newBox(20, 20, 20),
		newBox(21, 20, 20),
		newBox(-20, -20, -20),
	}
}

func (s *TLASSuite) TestQueryFindsOverlappingLeaf() {
	tree := tlas.New(s.elements())
	vol := bvol.NewAABB3FromMinMax(mgl64.Vec3{-0.1, -0.1, -0.1}, mgl64.Vec3{0.1, 0.1, 0.1})
	hits := tree.Query(vol)
	s.Contains(hits, 0)
}

func (s *TLASSuite) TestQueryMissesDistantVolume() {
	tree := tlas.New(s.elements())
	vol := bvol.NewAABB3FromMinMax(mgl64.Vec3{1000, 1000, 1000}, mgl64.Vec3{1001, 1001, 1001})
	s.Empty(tree.Query(vol))
}

func (s *TLASSuite) TestRefitAfterElementMovesFindsNewPosition() {
	elems := []tlas.Element{newBox(0, 0, 0), newBox(5, 5, 5)}
	tree := tlas.New(elems)

	moved := newBox(50, 50, 50)
	elems[1] = moved
	tree.Refit()

	hits := tree.Query(bvol.NewAABB3FromMinMax(mgl64.Vec3{49.9, 49.9, 49.9}, mgl64.Vec3{50.1, 50.1, 50.1}))
	s.Contains(hits, 1)
}

// Three leaves where the first two are close enough to merge into their own
// internal node before that node merges again with the third gives the tree
// two merge levels above the leaves - the minimum needed to tell an
// ascending, children-before-parents Refit walk apart from one that visits
// the tree in the wrong order and unions stale child bounds into a parent
// before that child has itself been refreshed.
func (s *TLASSuite) TestRefitAcrossTwoMergeLevelsFindsNewPosition() {
	elems := []tlas.Element{newBox(0, 0, 0), newBox(1, 0, 0), newBox(100, 100, 100)}
	tree := tlas.New(elems)

	moved := newBox(-80, -80, -80)
	elems[0] = moved
	tree.Refit()

	hits := tree.Query(bvol.NewAABB3FromMinMax(mgl64.Vec3{-80.1, -80.1, -80.1}, mgl64.Vec3{-79.9, -79.9, -79.9}))
	s.Contains(hits, 0)
}

func (s *TLASSuite) TestSingleElementBuild() {
	tree := tlas.New([]tlas.Element{newBox(3, 3, 3)})
	hits := tree.Query(bvol.NewAABB3FromMinMax(mgl64.Vec3{2.9, 2.9, 2.9}, mgl64.Vec3{3.1, 3.1, 3.1}))
	s.Equal([]int{0}, hits)
}
