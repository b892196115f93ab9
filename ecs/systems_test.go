// Copyright © 2024 Galvanized Logic Inc.

package ecs

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gazed/physcore/math/lin"
	"github.com/gazed/physcore/physics"
)

func TestRunScheduleAdvancesWorldAndRecordsSystemDurations(t *testing.T) {
	w := NewWorld()
	pw := physics.NewWorld()
	h := pw.SpawnRigid(physics.ShapeSpec{Type: physics.ShapeSphere, Radius: 0.5}, 1.0, lin.V3{X: 0, Y: 10, Z: 0})

	for i := 0; i < 30; i++ {
		RunSchedule(w, pw)
	}

	require.Less(t, pw.RigidBody(h).Position().Y, 10.0, "rigid body should have fallen")
	require.Greater(t, w.Time.Elapsed, 0.0, "schedule should advance ecs Time")

	snap := w.Snapshot(nil)
	for _, sys := range Schedule {
		_, ok := snap.SystemDurations[sys.Name]
		require.True(t, ok, "expected a recorded duration for %s", sys.Name)
	}
}

func TestRunScheduleSkipsWhenPaused(t *testing.T) {
	w := NewWorld()
	w.Time.Paused = true
	pw := physics.NewWorld()
	h := pw.SpawnRigid(physics.ShapeSpec{Type: physics.ShapeSphere, Radius: 0.5}, 1.0, lin.V3{X: 0, Y: 10, Z: 0})

	RunSchedule(w, pw)

	require.Equal(t, 10.0, pw.RigidBody(h).Position().Y, "a paused schedule should not step physics")
	require.Equal(t, 0.0, w.Time.Elapsed)
}
