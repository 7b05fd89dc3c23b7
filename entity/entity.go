// Package entity ties a rigid body's dynamic state to its collision shape
// and its identity within the engine, and exposes that pairing as a
// tlas.Element so the top-level tree can hold entities directly as leaves.
package entity

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/solidphys/core/bvol"
	"github.com/solidphys/core/rigid"
)

// ID is the identity triple for a physics entity: which world, which chunk
// of that world, and which entity within the chunk. Kept small and
// comparable so it can be used as a map key.
type ID struct {
	WorldID  uint8
	ChunkID  uint32
	EntityID uint32
}

// PhyEntity pairs a rigid body's dynamic state (IS) with the collision
// shape (an oriented box) that tracks it. The invariant the engine
// maintains is that Collider's Transformer and Body's Transformer are the
// very same pointer - Sync exists only to make that invariant explicit at
// call sites, since the two are never actually allowed to drift apart.
type PhyEntity struct {
	ID         ID
	Body       *rigid.IS
	Collider   bvol.OBB
	ColliderID uint32
	// Free marks whether the engine integrates this entity's motion each
	// tick. Static or kinematic bodies (world geometry, platforms driven by
	// animation) set this false and are moved, if at all, by something
	// other than the integrator.
	Free bool
}

// New returns a PhyEntity whose body and collider share transform.
func New(id ID, transform *rigid.Transformer, mass *rigid.MassDistribution, halfSize mgl64.Vec3, colliderID uint32) *PhyEntity {
	return &PhyEntity{
		ID:         id,
		Body:       rigid.NewIS(transform, mass),
		Collider:   bvol.NewOBB(transform, halfSize),
		ColliderID: colliderID,
		Free:       true,
	}
}

// Sync keeps the documented invariant visible at call sites: after
// integrating or otherwise moving the body, the collider's cached matrices
// (driven by the same Transformer) must be brought up to date too.
func (e *PhyEntity) Sync() { e.Body.Sync() }

// Bounds returns the entity's coarse world AABB, used to build and refit
// the owning TLAS.
func (e *PhyEntity) Bounds() bvol.AABB3 {
	return bvol.NewAABB3FromMinMax(e.Collider.Min(), e.Collider.Max())
}

// BoundingVolume returns the entity's tight bounding volume (its oriented
// box), tested directly once a TLAS query reaches this leaf.
func (e *PhyEntity) BoundingVolume() bvol.BoundingVolume { return e.Collider }

// Centroid and Wrap additionally make PhyEntity a bvh.Element, so the same
// entity slice can be indexed by either the top-level tree (entity.go's
// Bounds/BoundingVolume) or a bottom-level tree built fresh each frame for
// cheaper repeated queries against a set of entities that aren't expected
// to need reclustering.
func (e *PhyEntity) Centroid() mgl64.Vec3 { return e.Collider.Center() }
func (e *PhyEntity) Wrap() bvol.AABB3     { return e.Bounds() }
