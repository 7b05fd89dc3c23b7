// Package bvh implements a bottom-level bounding volume hierarchy over a
// fixed set of elements: an index-packed node pool, in-place subdivision
// driven by a pluggable SAH splitter, refit, and a non-recursive query
// using a fixed-depth traversal stack.
//
// Ported from original_source/src/volume/bvh.rs. The Rust BVH is generic
// over both the scalar type and the dimension (SVector<T, DIM>); this
// specializes to 3D float64, the only dimensionality the rest of the
// engine ever builds a tree over.
package bvh

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/solidphys/core/bvol"
)

// maxStackDepth bounds the fixed traversal stack used by Query. A balanced
// tree over any realistic scene element count comfortably fits within 64
// levels; this mirrors the Rust implementation's own fixed [Node; 64] stack
// array rather than a growable Vec.
const maxStackDepth = 64

// Element is anything a BVH can hold a leaf for: a centroid to partition
// primitives by, and a tight bounding volume to test against during a
// query.
type Element interface {
	Centroid() mgl64.Vec3
	Wrap() bvol.AABB3
}

// Node is one entry in the BVH's node pool. When NumPrims is zero the node
// is internal and LeftFirst is the index of its left child (its right
// child is always LeftFirst+1); otherwise the node is a leaf and
// LeftFirst is the index into the BVH's element order of its first
// primitive.
type Node struct {
	Bounds    bvol.AABB3
	LeftFirst uint32
	NumPrims  uint32
}

// IsLeaf reports whether n is a leaf node.
func (n *Node) IsLeaf() bool { return n.NumPrims > 0 }

// BVH is a bottom-level acceleration structure over a fixed slice of
// elements, rebuilt from scratch whenever the element set changes and
// refit in place whenever only the elements' bounds change.
type BVH struct {
	elements    []Element
	order       []uint32 // permutation of element indices, reordered during subdivide.
	nodes       []Node
	nodesInUse  int
	splitter    Splitter
	rootNodeIdx uint32
}

// New returns a BVH over elements, pre-sizing its node pool to 2n-1 (a
// full binary tree's worst case node count) and performing an initial
// build using splitter.
func New(elements []Element, splitter Splitter) *BVH {
	n := len(elements)
	poolSize := 1
	if n > 0 {
		poolSize = 2*n - 1
	}
	b := &BVH{
		elements: elements,
		order:    make([]uint32, n),
		nodes:    make([]Node, poolSize),
		splitter: splitter,
	}
	for i := range b.order {
		b.order[i] = uint32(i)
	}
	b.Rebuild()
	return b
}

// Elements returns the BVH's backing element slice.
func (b *BVH) Elements() []Element { return b.elements }

// Rebuild discards the current tree shape and subdivides from scratch.
// Call this whenever elements are added or removed, or whenever
// centroids have moved enough that the existing partition is stale.
func (b *BVH) Rebuild() {
	if len(b.elements) == 0 {
		return
	}
	for i := range b.order {
		b.order[i] = uint32(i)
	}
	b.nodesInUse = 1
	b.rootNodeIdx = 0
	root := &b.nodes[0]
	root.LeftFirst = 0
	root.NumPrims = uint32(len(b.elements))
	b.updateBounds(0)
	b.subdivide(0)
}

// Refit recomputes every node's bounds from the current element bounds
// without touching the tree's shape, walking the node pool in reverse so
// every child is refit before the parent that unions it.
func (b *BVH) Refit() {
	for i := b.nodesInUse - 1; i >= 0; i-- {
		node := &b.nodes[i]
		if node.IsLeaf() {
			b.updateBounds(uint32(i))
			continue
		}
		left := &b.nodes[node.LeftFirst]
		right := &b.nodes[node.LeftFirst+1]
		node.Bounds.Adjust(left.Bounds, right.Bounds)
	}
}

func (b *BVH) updateBounds(nodeIdx uint32) {
	node := &b.nodes[nodeIdx]
	node.Bounds.Reset()
	first := node.LeftFirst
	for i := uint32(0); i < node.NumPrims; i++ {
		elem := b.elements[b.order[first+i]]
		node.Bounds.GrowOther(elem.Wrap())
	}
}

func (b *BVH) subdivide(nodeIdx uint32) {
	node := &b.nodes[nodeIdx]
	split, ok := b.splitter.Split(b, nodeIdx)
	if !ok {
		return
	}

	first := node.LeftFirst
	count := node.NumPrims
	i := first
	j := first + count - 1
	for i <= j {
		c := b.elements[b.order[i]].Centroid()
		if c[split.Axis] < split.Pos {
			i++
		} else {
			b.order[i], b.order[j] = b.order[j], b.order[i]
			if j == 0 {
				break
			}
			j--
		}
	}

	leftCount := i - first
	if leftCount == 0 || leftCount == count {
		return
	}

	leftIdx := uint32(b.nodesInUse)
	rightIdx := uint32(b.nodesInUse + 1)
	b.nodesInUse += 2

	b.nodes[leftIdx].LeftFirst = first
	b.nodes[leftIdx].NumPrims = leftCount
	b.nodes[rightIdx].LeftFirst = i
	b.nodes[rightIdx].NumPrims = count - leftCount

	node.LeftFirst = leftIdx
	node.NumPrims = 0

	b.updateBounds(leftIdx)
	b.updateBounds(rightIdx)
	b.subdivide(leftIdx)
	b.subdivide(rightIdx)
}

// Query returns the indices (into Elements()) of every element whose
// bounding volume intersects vol, walking the tree with a fixed-depth
// stack rather than recursion.
func (b *BVH) Query(vol bvol.BoundingVolume) []int {
	out := make([]int, 0, 64)
	if len(b.elements) == 0 {
		return out
	}

	var stack [maxStackDepth]uint32
	sp := 0
	stack[sp] = b.rootNodeIdx
	sp++

	for sp > 0 {
		sp--
		nodeIdx := stack[sp]
		node := &b.nodes[nodeIdx]
		if !bvol.Intersects(node.Bounds, vol) {
			continue
		}
		if node.IsLeaf() {
			for k := uint32(0); k < node.NumPrims; k++ {
				elemIdx := b.order[node.LeftFirst+k]
				if bvol.Intersects(b.elements[elemIdx].Wrap(), vol) {
					out = append(out, int(elemIdx))
				}
			}
			continue
		}
		if sp+2 > maxStackDepth {
			continue
		}
		stack[sp] = node.LeftFirst
		sp++
		stack[sp] = node.LeftFirst + 1
		sp++
	}

	return out
}

// NodeBounds returns the world bounds of the BVH's root node.
func (b *BVH) NodeBounds() bvol.AABB3 {
	if b.nodesInUse == 0 {
		return bvol.NewAABB3()
	}
	return b.nodes[b.rootNodeIdx].Bounds
}
