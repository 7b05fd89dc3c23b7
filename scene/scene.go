// Package scene loads a physics world's starting state from a YAML
// description: one entry per entity, giving its pose, mass distribution
// and collider half-size, and populates a PhysicsEngine with the result.
package scene

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/solidphys/core/engine"
	"github.com/solidphys/core/entity"
	"github.com/solidphys/core/math/lin"
	"github.com/solidphys/core/rigid"
)

// Vec3 is a plain {x, y, z} mapping as it appears in scene YAML - kept
// distinct from lin.V3/mgl64.Vec3 so the YAML schema doesn't leak either
// package's internal representation.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) toLin() *lin.V3    { return &lin.V3{X: v.X, Y: v.Y, Z: v.Z} }
func (v Vec3) toMgl() mgl64.Vec3 { return mgl64.Vec3{v.X, v.Y, v.Z} }

// EntityDef is one entity's description in a scene file.
type EntityDef struct {
	WorldID    uint8   `yaml:"world_id"`
	ChunkID    uint32  `yaml:"chunk_id"`
	EntityID   uint32  `yaml:"entity_id"`
	ColliderID uint32  `yaml:"collider_id"`
	Position   Vec3    `yaml:"position"`
	Scale      Vec3    `yaml:"scale"`
	HalfSize   Vec3    `yaml:"half_size"`
	Mass       float64 `yaml:"mass"`
	Free       bool    `yaml:"free"`
}

// Definition is the top-level shape of a scene YAML file.
type Definition struct {
	Entities []EntityDef `yaml:"entities"`
}

// Load parses a scene file from path and returns the PhysicsEngine it
// describes, built (its top-level tree constructed) and ready to tick.
func Load(path string) (*engine.PhysicsEngine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: reading %s: %w", path, err)
	}

	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("scene: parsing %s: %w", path, err)
	}

	eng := engine.New()
	for _, d := range def.Entities {
		scale := d.Scale
		if scale == (Vec3{}) {
			scale = Vec3{X: 1, Y: 1, Z: 1}
		}

		transform := rigid.NewTransformer(d.Position.toLin(), lin.NewQI(), scale.toLin(), lin.NewV3())

		// A uniform box of the given half-size and mass, inertia tensor
		// from the standard solid-cuboid formula about its own center.
		hs := d.HalfSize
		m := d.Mass
		inertia := &lin.M3{
			Xx: m / 3 * (hs.Y*hs.Y + hs.Z*hs.Z),
			Yy: m / 3 * (hs.X*hs.X + hs.Z*hs.Z),
			Zz: m / 3 * (hs.X*hs.X + hs.Y*hs.Y),
		}
		mass, err := rigid.NewMassDistribution(m, lin.NewV3(), inertia)
		if err != nil {
			return nil, fmt.Errorf("scene: entity %d/%d/%d: %w", d.WorldID, d.ChunkID, d.EntityID, err)
		}

		id := entity.ID{WorldID: d.WorldID, ChunkID: d.ChunkID, EntityID: d.EntityID}
		e := entity.New(id, transform, mass, hs.toMgl(), d.ColliderID)
		e.Free = d.Free
		eng.PushEntity(e)
	}

	eng.Build()
	return eng, nil
}
