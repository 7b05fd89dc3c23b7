package bvh

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/solidphys/core/bvol"
	"github.com/solidphys/core/math/lin"
)

// Split describes a candidate partition of a node's primitives: split along
// Axis (0, 1 or 2) at position Pos, with estimated SAH Cost.
type Split struct {
	Axis int
	Pos  float64
	Cost float64
}

// Splitter chooses how to subdivide a BVH node. It returns ok=false when no
// candidate split improves on leaving the node as a single leaf.
type Splitter interface {
	Split(b *BVH, nodeIdx uint32) (Split, bool)
}

// parentCost is the SAH cost of NOT splitting: the node's own primitive
// count times its own surface-area proxy.
func parentCost(b *BVH, nodeIdx uint32) float64 {
	node := &b.nodes[nodeIdx]
	return float64(node.NumPrims) * node.Bounds.Area()
}

// evalSAH scores a candidate (axis, pos) split for the given node: the sum
// of each side's primitive count times its bounding area. Returns lin.MAX
// if the split would leave one side empty, since an empty side is not a
// real partition.
func evalSAH(b *BVH, nodeIdx uint32, axis int, pos float64) float64 {
	node := &b.nodes[nodeIdx]
	var leftBox, rightBox bvol.AABB3
	leftBox.Reset()
	rightBox.Reset()
	var leftCount, rightCount int

	first := node.LeftFirst
	for i := uint32(0); i < node.NumPrims; i++ {
		elem := b.elements[b.order[first+i]]
		if elem.Centroid()[axis] < pos {
			leftBox.GrowOther(elem.Wrap())
			leftCount++
		} else {
			rightBox.GrowOther(elem.Wrap())
			rightCount++
		}
	}

	if leftCount == 0 || rightCount == 0 {
		return lin.MAX
	}
	cost := float64(leftCount)*leftBox.Area() + float64(rightCount)*rightBox.Area()
	if cost <= 0 {
		return lin.MAX
	}
	return cost
}

func centroidBounds(b *BVH, nodeIdx uint32) (min, max mgl64.Vec3) {
	node := &b.nodes[nodeIdx]
	min = mgl64.Vec3{lin.MAX, lin.MAX, lin.MAX}
	max = mgl64.Vec3{lin.MIN, lin.MIN, lin.MIN}
	first := node.LeftFirst
	for i := uint32(0); i < node.NumPrims; i++ {
		c := b.elements[b.order[first+i]].Centroid()
		for a := 0; a < 3; a++ {
			if c[a] < min[a] {
				min[a] = c[a]
			}
			if c[a] > max[a] {
				max[a] = c[a]
			}
		}
	}
	return min, max
}

// FullSAHSplit evaluates every (primitive, axis) pair as a candidate split
// plane - the most thorough and most expensive splitter, grounded on
// bvh_splitting.rs's FullSAHSplit.
type FullSAHSplit struct{}

func (FullSAHSplit) Split(b *BVH, nodeIdx uint32) (Split, bool) {
	node := &b.nodes[nodeIdx]
	best := Split{Cost: lin.MAX}
	first := node.LeftFirst
	for i := uint32(0); i < node.NumPrims; i++ {
		c := b.elements[b.order[first+i]].Centroid()
		for axis := 0; axis < 3; axis++ {
			pos := c[axis]
			cost := evalSAH(b, nodeIdx, axis, pos)
			if cost < best.Cost {
				best = Split{Axis: axis, Pos: pos, Cost: cost}
			}
		}
	}
	if best.Cost >= parentCost(b, nodeIdx) {
		return Split{}, false
	}
	return best, true
}

// MidpointSAHSplit tries only the midpoint of the centroid bounds along
// each of the three axes.
type MidpointSAHSplit struct{}

func (MidpointSAHSplit) Split(b *BVH, nodeIdx uint32) (Split, bool) {
	min, max := centroidBounds(b, nodeIdx)
	best := Split{Cost: lin.MAX}
	for axis := 0; axis < 3; axis++ {
		pos := lin.Half(min[axis] + max[axis])
		cost := evalSAH(b, nodeIdx, axis, pos)
		if cost < best.Cost {
			best = Split{Axis: axis, Pos: pos, Cost: cost}
		}
	}
	if best.Cost >= parentCost(b, nodeIdx) {
		return Split{}, false
	}
	return best, true
}

// PartialSAHSplit tries NumPlanes-1 equally-spaced planes per axis across
// the node's centroid bounds.
type PartialSAHSplit struct {
	NumPlanes int
}

func (s PartialSAHSplit) Split(b *BVH, nodeIdx uint32) (Split, bool) {
	min, max := centroidBounds(b, nodeIdx)
	best := Split{Cost: lin.MAX}
	planes := s.NumPlanes
	if planes < 2 {
		planes = 2
	}
	for axis := 0; axis < 3; axis++ {
		extent := max[axis] - min[axis]
		if extent <= 0 {
			continue
		}
		step := extent / float64(planes)
		for k := 1; k < planes; k++ {
			pos := min[axis] + step*float64(k)
			cost := evalSAH(b, nodeIdx, axis, pos)
			if cost < best.Cost {
				best = Split{Axis: axis, Pos: pos, Cost: cost}
			}
		}
	}
	if best.Cost >= parentCost(b, nodeIdx) {
		return Split{}, false
	}
	return best, true
}

// BinnedSAHSplit buckets primitives into NumBins equal-width bins per axis
// and evaluates the NumBins-1 plane positions between bins using prefix and
// suffix count/area sums, avoiding the O(n) rescan FullSAHSplit does for
// every candidate plane.
type BinnedSAHSplit struct {
	NumBins int
}

type bin struct {
	bounds bvol.AABB3
	count  int
}

func (s BinnedSAHSplit) Split(b *BVH, nodeIdx uint32) (Split, bool) {
	numBins := s.NumBins
	if numBins < 2 {
		numBins = 2
	}
	node := &b.nodes[nodeIdx]
	min, max := centroidBounds(b, nodeIdx)
	best := Split{Cost: lin.MAX}

	for axis := 0; axis < 3; axis++ {
		extent := max[axis] - min[axis]
		if extent <= 0 {
			continue
		}
		scale := float64(numBins) / extent

		bins := make([]bin, numBins)
		for i := range bins {
			bins[i].bounds.Reset()
		}

		first := node.LeftFirst
		for i := uint32(0); i < node.NumPrims; i++ {
			elem := b.elements[b.order[first+i]]
			idx := lin.FloorToU32((elem.Centroid()[axis] - min[axis]) * scale)
			if int(idx) >= numBins {
				idx = uint32(numBins - 1)
			}
			bins[idx].count++
			bins[idx].bounds.GrowOther(elem.Wrap())
		}

		leftCount := make([]int, numBins)
		leftArea := make([]float64, numBins)
		var leftBox bvol.AABB3
		leftBox.Reset()
		runningCount := 0
		for i := 0; i < numBins; i++ {
			runningCount += bins[i].count
			leftBox.GrowOther(bins[i].bounds)
			leftCount[i] = runningCount
			leftArea[i] = leftBox.Area()
		}

		rightCount := make([]int, numBins)
		rightArea := make([]float64, numBins)
		var rightBox bvol.AABB3
		rightBox.Reset()
		runningCount = 0
		for i := numBins - 1; i >= 0; i-- {
			runningCount += bins[i].count
			rightBox.GrowOther(bins[i].bounds)
			rightCount[i] = runningCount
			rightArea[i] = rightBox.Area()
		}

		for i := 0; i < numBins-1; i++ {
			lc, rc := leftCount[i], rightCount[i+1]
			if lc == 0 || rc == 0 {
				continue
			}
			cost := float64(lc)*leftArea[i] + float64(rc)*rightArea[i+1]
			if cost <= 0 || math.IsNaN(cost) {
				continue
			}
			if cost < best.Cost {
				pos := min[axis] + extent*float64(i+1)/float64(numBins)
				best = Split{Axis: axis, Pos: pos, Cost: cost}
			}
		}
	}

	if best.Cost >= parentCost(b, nodeIdx) {
		return Split{}, false
	}
	return best, true
}
