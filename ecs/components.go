// Copyright © 2024 Galvanized Logic Inc.

package ecs

import "github.com/gazed/physcore/physics"

// ComponentStore is a generic, map-keyed-by-entity component pool,
// generalizing the teacher pack's hand-written map[EntityId]*T pools
// (Gekko3D's particlePools) to any component type via Go generics.
type ComponentStore[T any] struct {
	data map[EntityID]T
}

// NewComponentStore returns an empty store.
func NewComponentStore[T any]() *ComponentStore[T] {
	return &ComponentStore[T]{data: map[EntityID]T{}}
}

// Set attaches or replaces id's component value.
func (s *ComponentStore[T]) Set(id EntityID, v T) { s.data[id] = v }

// Get returns id's component and whether it is present.
func (s *ComponentStore[T]) Get(id EntityID) (T, bool) {
	v, ok := s.data[id]
	return v, ok
}

// Remove drops id's component, if any.
func (s *ComponentStore[T]) Remove(id EntityID) { delete(s.data, id) }

// Len reports how many entities carry this component.
func (s *ComponentStore[T]) Len() int { return len(s.data) }

// Each calls fn for every (entity, component) pair. fn may mutate the
// store's value in place via the returned pointer semantics of T when
// T is itself a pointer type; for value types, callers should re-Set.
func (s *ComponentStore[T]) Each(fn func(EntityID, T)) {
	for id, v := range s.data {
		fn(id, v)
	}
}

// PhysicsTransform is the component spec §4.I requires on every entity
// participating in physics. It holds only the handle of the physics
// body whose position/orientation the physics.World owns.
type PhysicsTransform struct {
	Handle physics.Handle
}

// RigidBodyComponent marks an entity as backed by a rigid body in the
// physics.World's rigid pool. Handle duplicates PhysicsTransform.Handle
// for symmetry with SoftBodyComponent/FluidComponent, matching spec
// §4.I's "An entity carrying PhysicsTransform plus one of
// RigidBodyComponent, SoftBodyComponent, FluidComponent participates."
type RigidBodyComponent struct {
	Handle physics.Handle
}

// SoftBodyComponent marks an entity as backed by a soft body.
type SoftBodyComponent struct {
	Handle physics.Handle
}

// FluidComponent marks an entity as backed by a fluid block.
type FluidComponent struct {
	Handle physics.Handle
}
