// Package engine drives the physics world: a top-level tree of entities,
// a collider-id lookup for narrow-phase systems that need to go from a
// query hit back to game-level state, and the per-tick integrate/sync/
// refit loop.
package engine

import (
	"github.com/google/uuid"
	"github.com/solidphys/core/bvh"
	"github.com/solidphys/core/bvol"
	"github.com/solidphys/core/entity"
	"github.com/solidphys/core/tlas"
)

// PhysicsEngine owns every entity in one physics world and the top-level
// tree accelerating queries over them.
type PhysicsEngine struct {
	SessionID uuid.UUID

	entities  []*entity.PhyEntity
	colliders map[uint32]*entity.PhyEntity
	tree      *tlas.TLAS

	// broadPhase is a bottom-level tree rebuilt on demand via BuildBroadPhase,
	// an alternative to the top-level tree for callers doing many queries
	// against an entity set they don't expect to need reclustered - a
	// top-down SAH build is cheaper to throw away and rebuild than
	// re-running the top-level tree's agglomerative clustering.
	broadPhase *bvh.BVH
}

// New returns an empty PhysicsEngine, ready to accept entities via
// PushEntity before the first Build.
func New() *PhysicsEngine {
	return &PhysicsEngine{
		SessionID: uuid.New(),
		colliders: make(map[uint32]*entity.PhyEntity),
	}
}

// PushEntity registers e with the engine. Build must be called again
// before queries or ticks see e.
func (pe *PhysicsEngine) PushEntity(e *entity.PhyEntity) {
	pe.entities = append(pe.entities, e)
	pe.colliders[e.ColliderID] = e
}

// Entity looks up a registered entity by its collider id, the same id
// narrow-phase systems get back from QueryColliders.
func (pe *PhysicsEngine) Entity(colliderID uint32) (*entity.PhyEntity, bool) {
	e, ok := pe.colliders[colliderID]
	return e, ok
}

// Entities returns every entity currently registered with the engine.
func (pe *PhysicsEngine) Entities() []*entity.PhyEntity { return pe.entities }

// elements adapts the engine's entity slice to tlas.Element without
// copying any entity state.
func (pe *PhysicsEngine) elements() []tlas.Element {
	out := make([]tlas.Element, len(pe.entities))
	for i, e := range pe.entities {
		out[i] = e
	}
	return out
}

// Build rebuilds the top-level tree from scratch over every registered
// entity. Call this after PushEntity calls, and periodically during play
// to recover tree quality that Refit alone cannot restore once bodies
// have moved far from where they were clustered.
func (pe *PhysicsEngine) Build() {
	pe.tree = tlas.New(pe.elements())
}

// Refit recomputes the top-level tree's bounds in place without changing
// its shape - cheap, but only correct as long as no entity has moved far
// enough to invalidate the clustering Build produced.
func (pe *PhysicsEngine) Refit() {
	if pe.tree != nil {
		pe.tree.Refit()
	}
}

// BuildBroadPhase (re)builds the bottom-level tree over every registered
// entity using a binned SAH splitter. Unlike Build/Refit for the top-level
// tree, there is no incremental refit for this structure - callers rebuild
// it whenever they want a fresh broad-phase pass.
func (pe *PhysicsEngine) BuildBroadPhase() {
	elems := make([]bvh.Element, len(pe.entities))
	for i, e := range pe.entities {
		elems[i] = e
	}
	pe.broadPhase = bvh.New(elems, bvh.BinnedSAHSplit{NumBins: 12})
}

// QueryBroadPhase returns every registered entity whose bounding volume
// intersects vol, using the bottom-level tree built by BuildBroadPhase.
func (pe *PhysicsEngine) QueryBroadPhase(vol bvol.BoundingVolume) []*entity.PhyEntity {
	if pe.broadPhase == nil {
		return nil
	}
	hits := pe.broadPhase.Query(vol)
	out := make([]*entity.PhyEntity, len(hits))
	for i, idx := range hits {
		out[i] = pe.entities[idx]
	}
	return out
}

// QueryColliders wraps the entity registered under colliderID in its own
// bounding volume and intersects that against the top-level tree. A body
// always intersects itself, so the returned slice always contains the
// queried entity - callers wanting only other bodies filter it out by id.
// Returns nil if colliderID isn't registered.
func (pe *PhysicsEngine) QueryColliders(colliderID uint32) []*entity.PhyEntity {
	e, ok := pe.colliders[colliderID]
	if !ok {
		return nil
	}
	return pe.QueryVolume(e.Collider)
}

// QueryVolume returns every registered entity whose bounding volume
// intersects vol.
func (pe *PhysicsEngine) QueryVolume(vol bvol.BoundingVolume) []*entity.PhyEntity {
	if pe.tree == nil {
		return nil
	}
	hits := pe.tree.Query(vol)
	out := make([]*entity.PhyEntity, len(hits))
	for i, idx := range hits {
		out[i] = pe.entities[idx]
	}
	return out
}

// Tick implements the engine's free-flight tick policy: for each free
// entity, query the top-level tree against the entity's own bounds first -
// a body always intersects itself, so any hit other than the entity itself
// means it's in contact and is left in place for this tick, since there is
// no impulse resolution to separate it. Otherwise the entity is integrated,
// its collider synced to the new pose, and the tree refit before moving on
// to the next body, so later queries and refits in the same tick already
// see earlier bodies in their new positions. After every free entity has
// been processed, the tree is rebuilt from scratch - a refit alone cannot
// recover clustering quality once bodies have moved far from their last
// build.
func (pe *PhysicsEngine) Tick(dt float64) {
	for _, e := range pe.entities {
		if !e.Free {
			continue
		}

		blocked := false
		for _, hit := range pe.QueryColliders(e.ColliderID) {
			if hit.ColliderID != e.ColliderID {
				blocked = true
				break
			}
		}
		if blocked {
			continue
		}

		e.Body.Integrate(dt)
		e.Sync()
		pe.Refit()
	}
	pe.Build()
}
