package bvol_test

import (
	"github.com/solidphys/core/math/lin"
	"github.com/solidphys/core/rigid"
)

func identityTransformAt(x, y, z float64) *rigid.Transformer {
	return rigid.NewTransformer(&lin.V3{X: x, Y: y, Z: z}, lin.NewQI(), &lin.V3{X: 1, Y: 1, Z: 1}, lin.NewV3())
}
