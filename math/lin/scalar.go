// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package lin

import "math"

// Scalar holds the free-function surface that the physics core needs from its
// base numeric type. The engine is concretely float64 throughout, so this
// collapses what would otherwise be a generic numeric trait into plain
// functions over float64 - there is no Go equivalent of a const-generic
// BaseFloat trait bound to reach for here.

// MIN is the smallest (most negative) finite float64 value.
const MIN = -math.MaxFloat64

// MAX is the largest finite float64 value.
const MAX = math.MaxFloat64

// Half returns half of v.
func Half(v float64) float64 { return v * 0.5 }

// Two returns twice v.
func Two(v float64) float64 { return v * 2 }

// FloorToU32 floors v and converts it to an unsigned 32 bit bin index.
// Negative inputs are clamped to 0 since callers only ever use this to
// bucket a value already known to be non-negative (a bin offset).
func FloorToU32(v float64) uint32 {
	f := math.Floor(v)
	if f < 0 {
		return 0
	}
	return uint32(f)
}
