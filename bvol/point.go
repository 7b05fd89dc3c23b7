package bvol

import "github.com/go-gl/mathgl/mgl64"

// Point3 is a degenerate bounding volume: a single location with zero
// extent. Ported from original_source/src/volume/point.rs's blanket
// BoundingVolume impl for SVector<T, DIM>.
type Point3 mgl64.Vec3

func (p Point3) Center() mgl64.Vec3   { return mgl64.Vec3(p) }
func (p Point3) Min() mgl64.Vec3      { return mgl64.Vec3(p) }
func (p Point3) Max() mgl64.Vec3      { return mgl64.Vec3(p) }
func (p Point3) Area() float64        { return 0 }
func (p Point3) Size() mgl64.Vec3     { return mgl64.Vec3{} }
func (p Point3) HalfSize() mgl64.Vec3 { return mgl64.Vec3{} }
