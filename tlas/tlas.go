// Package tlas implements the top-level acceleration structure: a binary
// tree over a fixed set of bottom-level elements (the engine's rigid
// bodies), built by agglomerative clustering rather than top-down
// subdivision, and refit children-before-parents every tick.
//
// Ported from original_source/src/volume/tlas.rs, with two corrections
// from the original: find_best_match skips the node being matched against
// itself with `continue` instead of `break` (the original early-exits the
// whole search the first time it reaches its own index, silently excluding
// every candidate after it), and the active-node count used while
// clustering is decremented every merge rather than held fixed, so a
// shrinking candidate pool is actually searched once nodes are consumed.
package tlas

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/solidphys/core/bvol"
	"github.com/solidphys/core/math/lin"
)

// Element is one leaf the TLAS tracks: a coarse world-space AABB used to
// build and refit the tree, and the tighter bounding volume tested
// directly against queries once a leaf is reached.
type Element interface {
	Bounds() bvol.AABB3
	BoundingVolume() bvol.BoundingVolume
}

// Node is one entry in the TLAS node pool. A leaf has LeftRight == 0 and
// Blas set to the index of the element it wraps; an internal node has
// LeftRight holding its two children bit-packed 16-high/16-low.
type Node struct {
	Min, Max mgl64.Vec3
	// LeftRight packs the left child index in its high 16 bits and the
	// right child index in its low 16 bits - ported as-is from the
	// original bit layout, which callers never need to interpret directly
	// since GetLeftChild/GetRightChild hide it.
	LeftRight uint32
	Blas      uint32
}

func (n *Node) IsLeaf() bool { return n.LeftRight == 0 }

func (n *Node) GetLeftChild() uint32  { return n.LeftRight >> 16 }
func (n *Node) GetRightChild() uint32 { return n.LeftRight & 0xFFFF }

func (n *Node) bounds() bvol.AABB3 { return bvol.NewAABB3FromMinMax(n.Min, n.Max) }

func (n *Node) setBounds(b bvol.AABB3) {
	n.Min, n.Max = b.Min(), b.Max()
}

// TLAS is the top-level tree over a fixed element slice.
type TLAS struct {
	elements []Element
	nodes    []Node
	nodeUsed int
	rootIdx  uint32
}

// New builds a TLAS over elements.
func New(elements []Element) *TLAS {
	t := &TLAS{
		elements: elements,
		nodes:    make([]Node, 2*len(elements)+1),
	}
	t.Build()
	return t
}

func (t *TLAS) Elements() []Element { return t.elements }

// Build rebuilds the tree from scratch via agglomerative (mutual-nearest-
// neighbor) clustering: start with one leaf per element, repeatedly merge
// the pair of active nodes whose combined bounding area is smallest, until
// a single root remains.
func (t *TLAS) Build() {
	n := len(t.elements)
	if n == 0 {
		t.nodeUsed = 0
		return
	}

	t.nodeUsed = 1 // reserve node 0 for the eventual root.
	nodeIndices := make([]uint32, n)
	for i := 0; i < n; i++ {
		idx := uint32(t.nodeUsed)
		nodeIndices[i] = idx
		leaf := &t.nodes[idx]
		leaf.LeftRight = 0
		leaf.Blas = uint32(i)
		leaf.setBounds(t.elements[i].Bounds())
		t.nodeUsed++
	}

	if n == 1 {
		t.nodes[0] = t.nodes[nodeIndices[0]]
		t.rootIdx = 0
		return
	}

	active := n
	a := 0
	b := t.findBestMatch(nodeIndices, active, a)
	for active > 1 {
		c := t.findBestMatch(nodeIndices, active, b)
		if a == c {
			nodeIdxA := nodeIndices[a]
			nodeIdxB := nodeIndices[b]
			nodeA := &t.nodes[nodeIdxA]
			nodeB := &t.nodes[nodeIdxB]

			newIdx := t.nodeUsed
			newNode := &t.nodes[newIdx]
			newNode.LeftRight = nodeIdxA | (nodeIdxB << 16)
			var union bvol.AABB3
			union.Adjust(nodeA.bounds(), nodeB.bounds())
			newNode.setBounds(union)
			t.nodeUsed++

			nodeIndices[a] = uint32(newIdx)
			nodeIndices[b] = nodeIndices[active-1]
			active--
			b = t.findBestMatch(nodeIndices, active, a)
		} else {
			a = b
			b = c
		}
	}

	t.nodes[0] = t.nodes[nodeIndices[0]]
	t.rootIdx = 0
}

// findBestMatch returns the index (into nodeIndices[:active]) of the
// active node whose merge with nodeIndices[a] produces the smallest
// combined bounding area.
func (t *TLAS) findBestMatch(nodeIndices []uint32, active, a int) int {
	bestDist := lin.MAX
	bestB := -1
	boundsA := t.nodes[nodeIndices[a]].bounds()
	for b := 0; b < active; b++ {
		if b == a {
			continue
		}
		boundsB := t.nodes[nodeIndices[b]].bounds()
		var union bvol.AABB3
		union.Adjust(boundsA, boundsB)
		area := union.Area()
		if area < bestDist {
			bestDist = area
			bestB = b
		}
	}
	return bestB
}

// Refit recomputes every internal node's bounds from its leaves' current
// element bounds. Unlike a bottom-level tree's top-down pool, a node's
// index here is assigned as it is created during Build's agglomerative
// clustering, so every internal node's index is strictly greater than
// either of its children's - walking the pool ascending therefore refits
// every child before the parent that unions them. Node 0 is a standing
// duplicate of the real root (copied there by Build so the root is always
// reachable at a fixed index) rather than something any child points back
// to, so it is refreshed separately, from the last node appended - Build
// always appends the final merge, i.e. the real root, last. Call this
// after integrating rigid bodies. Refit keeps the tree's shape, so Build
// is needed again when the element set changes, or to recover clustering
// quality once elements have moved far from where they were clustered.
func (t *TLAS) Refit() {
	if t.nodeUsed == 0 {
		return
	}
	for i := 1; i < t.nodeUsed; i++ {
		node := &t.nodes[i]
		if node.IsLeaf() {
			node.setBounds(t.elements[node.Blas].Bounds())
			continue
		}
		left := &t.nodes[node.GetLeftChild()]
		right := &t.nodes[node.GetRightChild()]
		var union bvol.AABB3
		union.Adjust(left.bounds(), right.bounds())
		node.setBounds(union)
	}
	t.nodes[0] = t.nodes[t.nodeUsed-1]
}

// maxStackDepth mirrors bvh's fixed traversal stack sizing.
const maxStackDepth = 64

// Query returns the indices (into Elements()) of every element whose
// bounding volume intersects vol.
func (t *TLAS) Query(vol bvol.BoundingVolume) []int {
	out := make([]int, 0, 64)
	if t.nodeUsed == 0 {
		return out
	}

	var stack [maxStackDepth]uint32
	sp := 0
	stack[sp] = t.rootIdx
	sp++

	for sp > 0 {
		sp--
		nodeIdx := stack[sp]
		node := &t.nodes[nodeIdx]
		if !bvol.Intersects(node.bounds(), vol) {
			continue
		}
		if node.IsLeaf() {
			elem := t.elements[node.Blas]
			if bvol.Intersects(elem.BoundingVolume(), vol) {
				out = append(out, int(node.Blas))
			}
			continue
		}
		if sp+2 > maxStackDepth {
			continue
		}
		stack[sp] = node.GetLeftChild()
		sp++
		stack[sp] = node.GetRightChild()
		sp++
	}

	return out
}
