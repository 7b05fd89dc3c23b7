package scene_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/solidphys/core/scene"
)

type SceneSuite struct {
	suite.Suite
}

func TestSceneSuite(t *testing.T) {
	suite.Run(t, new(SceneSuite))
}

func (s *SceneSuite) writeScene(body string) string {
	dir := s.T().TempDir()
	path := filepath.Join(dir, "scene.yaml")
	s.Require().NoError(os.WriteFile(path, []byte(body), 0o644))
	return path
}

func (s *SceneSuite) TestLoadBuildsQueryableEngine() {
	path := s.writeScene(`
entities:
  - world_id: 0
    chunk_id: 0
    entity_id: 1
    collider_id: 1
    position: {x: 0, y: 0, z: 0}
    half_size: {x: 0.5, y: 0.5, z: 0.5}
    mass: 1
    free: true
  - world_id: 0
    chunk_id: 0
    entity_id: 2
    collider_id: 2
    position: {x: 10, y: 10, z: 10}
    half_size: {x: 0.5, y: 0.5, z: 0.5}
    mass: 1
    free: false
`)

	eng, err := scene.Load(path)
	s.Require().NoError(err)
	s.Len(eng.Entities(), 2)

	e, ok := eng.Entity(1)
	s.Require().True(ok)
	s.True(e.Free)

	static, ok := eng.Entity(2)
	s.Require().True(ok)
	s.False(static.Free)
}

func (s *SceneSuite) TestLoadRejectsNonPositiveMass() {
	path := s.writeScene(`
entities:
  - world_id: 0
    chunk_id: 0
    entity_id: 1
    collider_id: 1
    position: {x: 0, y: 0, z: 0}
    half_size: {x: 0.5, y: 0.5, z: 0.5}
    mass: 0
    free: true
`)

	_, err := scene.Load(path)
	s.Error(err)
}

func (s *SceneSuite) TestLoadMissingFile() {
	_, err := scene.Load(filepath.Join(s.T().TempDir(), "missing.yaml"))
	s.Error(err)
}
