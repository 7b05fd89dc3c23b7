package bvh_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/suite"

	"github.com/solidphys/core/bvh"
	"github.com/solidphys/core/bvol"
)

type point struct {
	pos mgl64.Vec3
}

func (p point) Centroid() mgl64.Vec3 { return p.pos }
func (p point) Wrap() bvol.AABB3 {
	eps := mgl64.Vec3{0.01, 0.01, 0.01}
	return bvol.NewAABB3FromMinMax(p.pos.Sub(eps), p.pos.Add(eps))
}

type BVHSuite struct {
	suite.Suite
}

func TestBVHSuite(t *testing.T) {
	suite.Run(t, new(BVHSuite))
}

func (s *BVHSuite) elements() []bvh.Element {
	pts := []mgl64.Vec3{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1},
		{10, 10, 10}, {11, 10, 10}, {10, 11, 10}, {10, 10, 11},
	}
	out := make([]bvh.Element, len(pts))
	for i, p := range pts {
		out[i] = point{p}
	}
	return out
}

func (s *BVHSuite) TestQueryFindsContainingLeaf() {
	tree := bvh.New(s.elements(), bvh.MidpointSAHSplit{})
	vol := bvol.NewAABB3FromMinMax(mgl64.Vec3{-0.1, -0.1, -0.1}, mgl64.Vec3{0.1, 0.1, 0.1})
	hits := tree.Query(vol)
	s.Contains(hits, 0)
}

func (s *BVHSuite) TestQueryMissesDistantVolume() {
	tree := bvh.New(s.elements(), bvh.FullSAHSplit{})
	vol := bvol.NewAABB3FromMinMax(mgl64.Vec3{100, 100, 100}, mgl64.Vec3{101, 101, 101})
	s.Empty(tree.Query(vol))
}

func (s *BVHSuite) TestRefitWithoutMovementKeepsRootBounds() {
	elems := s.elements()
	tree := bvh.New(elems, bvh.BinnedSAHSplit{NumBins: 4})
	before := tree.NodeBounds()
	tree.Refit()
	after := tree.NodeBounds()
	s.Equal(before.Min(), after.Min())
	s.Equal(before.Max(), after.Max())
}

func (s *BVHSuite) TestPartialSAHFindsSplit() {
	tree := bvh.New(s.elements(), bvh.PartialSAHSplit{NumPlanes: 4})
	vol := bvol.NewAABB3FromMinMax(mgl64.Vec3{9.9, 9.9, 9.9}, mgl64.Vec3{10.1, 10.1, 10.1})
	hits := tree.Query(vol)
	s.Contains(hits, 4)
}
