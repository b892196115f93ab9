// Copyright © 2024 Galvanized Logic Inc.

package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gazed/physcore/physics"
)

func TestLoadSceneParsesRigidsAndDefaults(t *testing.T) {
	cfg, err := loadScene([]byte(freeFallScene))
	require.NoError(t, err)
	require.Equal(t, "free_fall", cfg.Name)
	require.Len(t, cfg.Rigids, 1)
	require.Equal(t, "sphere", cfg.Rigids[0].Shape)
}

func TestPopulateSpawnsRopeLinksAndConstraints(t *testing.T) {
	cfg, err := loadScene([]byte(ropeChainScene))
	require.NoError(t, err)

	w := physics.NewWorld()
	require.NoError(t, cfg.populate(w))

	for i := 0; i < 60; i++ {
		w.Step()
	}
	require.Equal(t, 11, w.StatsSnapshot().RigidBodyCount) // 1 anchor + 10 links
	require.Equal(t, 10, w.StatsSnapshot().ActiveConstraints)
}

func TestPopulateSpawnsFluidFromSeedBox(t *testing.T) {
	cfg, err := loadScene([]byte(damBreakScene))
	require.NoError(t, err)

	w := physics.NewWorld()
	require.NoError(t, cfg.populate(w))
	require.Positive(t, w.StatsSnapshot().FluidParticleCount)
}

func TestRigidConfigRejectsUnknownShape(t *testing.T) {
	r := rigidConfig{Shape: "dodecahedron"}
	_, err := r.shapeSpec()
	require.Error(t, err)
}
