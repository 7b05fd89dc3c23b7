package bvol

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Separating axis tests. Every test here returns true when NO separating
// axis is found - i.e. true means overlap, with boxes that merely touch
// counted as overlapping. The "separated" branch always uses a strict `>`
// against the summed projection radii, never `>=`, so touching never
// triggers a false separation. Ported from
// original_source/src/helper/separated_axis.rs.
//
// axisEps is unrelated to that closed-interval rule: it only keeps the
// cross-product axis tests numerically sane when two box edges are
// near-parallel and the cross product nearly vanishes.
const axisEps = 1e-9

// IntersectsAABBAABB tests two axis-aligned boxes given as min/max corners.
func IntersectsAABBAABB(minA, maxA, minB, maxB mgl64.Vec3) bool {
	for i := 0; i < 3; i++ {
		if minA[i] > maxB[i] || minB[i] > maxA[i] {
			return false
		}
	}
	return true
}

// IntersectsAABBAABB2 is the 2D reduction of IntersectsAABBAABB.
func IntersectsAABBAABB2(minA, maxA, minB, maxB mgl64.Vec2) bool {
	for i := 0; i < 2; i++ {
		if minA[i] > maxB[i] || minB[i] > maxA[i] {
			return false
		}
	}
	return true
}

// IntersectsOBBOBB tests two oriented boxes given by center, half-size and
// a rotation matrix whose columns are the box's local axes expressed in
// world space. This is the classic 15-axis test (Gottschalk): the three
// face normals of each box, plus the nine cross products of one box's
// edges with the other's.
func IntersectsOBBOBB(cA, hA mgl64.Vec3, rA mgl64.Mat3, cB, hB mgl64.Vec3, rB mgl64.Mat3) bool {
	uA := axesOf(rA)
	uB := axesOf(rB)

	var r [3][3]float64
	var absR [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = uA[i].Dot(uB[j])
			absR[i][j] = math.Abs(r[i][j]) + axisEps
		}
	}

	d := cB.Sub(cA)
	var t [3]float64
	for i := 0; i < 3; i++ {
		t[i] = d.Dot(uA[i])
	}

	// Face normals of A.
	for i := 0; i < 3; i++ {
		ra := hA[i]
		rb := hB[0]*absR[i][0] + hB[1]*absR[i][1] + hB[2]*absR[i][2]
		if math.Abs(t[i]) > ra+rb {
			return false
		}
	}

	// Face normals of B.
	for j := 0; j < 3; j++ {
		ra := hA[0]*absR[0][j] + hA[1]*absR[1][j] + hA[2]*absR[2][j]
		rb := hB[j]
		proj := t[0]*r[0][j] + t[1]*r[1][j] + t[2]*r[2][j]
		if math.Abs(proj) > ra+rb {
			return false
		}
	}

	// Cross products of edges.
	for i := 0; i < 3; i++ {
		i1, i2 := (i+1)%3, (i+2)%3
		for j := 0; j < 3; j++ {
			j1, j2 := (j+1)%3, (j+2)%3
			ra := hA[i1]*absR[i2][j] + hA[i2]*absR[i1][j]
			rb := hB[j1]*absR[i][j2] + hB[j2]*absR[i][j1]

			var proj float64
			switch i {
			case 0:
				proj = t[2]*r[1][j] - t[1]*r[2][j]
			case 1:
				proj = t[0]*r[2][j] - t[2]*r[0][j]
			case 2:
				proj = t[1]*r[0][j] - t[0]*r[1][j]
			}
			if math.Abs(proj) > ra+rb {
				return false
			}
		}
	}

	return true
}

// IntersectsOBBAABB tests an oriented box against an axis-aligned one by
// treating the AABB as an OBB with identity rotation centered on its own
// center.
func IntersectsOBBAABB(oc, oh mgl64.Vec3, orot mgl64.Mat3, aMin, aMax mgl64.Vec3) bool {
	aCenter := aMin.Add(aMax).Mul(0.5)
	aHalf := aMax.Sub(aMin).Mul(0.5)
	return IntersectsOBBOBB(oc, oh, orot, aCenter, aHalf, mgl64.Ident3())
}

// IntersectsOBBOBB2 is the 2D reduction of IntersectsOBBOBB: two axes per
// box (their face normals), no cross-product axes since two lines in the
// plane are either parallel or their single crossing normal is already
// covered by the face-normal tests.
func IntersectsOBBOBB2(cA, hA mgl64.Vec2, rA mgl64.Mat2, cB, hB mgl64.Vec2, rB mgl64.Mat2) bool {
	uA := axesOf2(rA)
	uB := axesOf2(rB)

	var r, absR [2][2]float64
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			r[i][j] = uA[i].Dot(uB[j])
			absR[i][j] = math.Abs(r[i][j]) + axisEps
		}
	}

	d := cB.Sub(cA)
	var t [2]float64
	for i := 0; i < 2; i++ {
		t[i] = d.Dot(uA[i])
	}

	for i := 0; i < 2; i++ {
		ra := hA[i]
		rb := hB[0]*absR[i][0] + hB[1]*absR[i][1]
		if math.Abs(t[i]) > ra+rb {
			return false
		}
	}

	for j := 0; j < 2; j++ {
		ra := hA[0]*absR[0][j] + hA[1]*absR[1][j]
		rb := hB[j]
		proj := t[0]*r[0][j] + t[1]*r[1][j]
		if math.Abs(proj) > ra+rb {
			return false
		}
	}

	return true
}

// IntersectsOBBAABB2 is the 2D reduction of IntersectsOBBAABB.
func IntersectsOBBAABB2(oc, oh mgl64.Vec2, orot mgl64.Mat2, aMin, aMax mgl64.Vec2) bool {
	aCenter := aMin.Add(aMax).Mul(0.5)
	aHalf := aMax.Sub(aMin).Mul(0.5)
	return IntersectsOBBOBB2(oc, oh, orot, aCenter, aHalf, mgl64.Ident2())
}

func axesOf(m mgl64.Mat3) [3]mgl64.Vec3 {
	return [3]mgl64.Vec3{m.Col(0), m.Col(1), m.Col(2)}
}

func axesOf2(m mgl64.Mat2) [2]mgl64.Vec2 {
	return [2]mgl64.Vec2{m.Col(0), m.Col(1)}
}
