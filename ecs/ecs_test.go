// Copyright © 2024 Galvanized Logic Inc.

package ecs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSpawnDespawn(t *testing.T) {
	w := NewWorld()
	id := w.Spawn()
	require.True(t, w.Alive(id))
	require.Equal(t, 1, w.EntityCount())

	w.Despawn(id)
	require.False(t, w.Alive(id))
	require.Equal(t, 0, w.EntityCount())
}

func TestComponentStore(t *testing.T) {
	w := NewWorld()
	id := w.Spawn()

	transforms := NewComponentStore[PhysicsTransform]()
	transforms.Set(id, PhysicsTransform{})
	require.Equal(t, 1, transforms.Len())

	_, ok := transforms.Get(id)
	require.True(t, ok)

	transforms.Remove(id)
	require.Equal(t, 0, transforms.Len())
}

func TestSnapshotReflectsEntityCountAndComponentCounts(t *testing.T) {
	w := NewWorld()
	w.Spawn()
	w.Spawn()

	snap := w.Snapshot(map[string]int{"RigidBodyComponent": 2})
	require.Equal(t, 2, snap.EntityCount)
	require.Equal(t, 2, snap.ComponentCounts["RigidBodyComponent"])
}
