// Copyright © 2024 Galvanized Logic Inc.

// Package ecs is a small generic entity-component-system that exposes
// a physics.World through the scheduled systems spec §4.I names:
// spatial_indexing_system, rigid_body_integration_system,
// soft_body_system, fluid_system, collision_detection_system,
// constraint_solving_system. Component storage follows the teacher
// pack's own map-keyed-by-entity-id pattern (Gekko3D's particlePool,
// keyed by EntityId) generalized with Go generics instead of one
// hand-written pool type per component.
package ecs

import "github.com/google/uuid"

// EntityID identifies an entity. Minted by World.Spawn; never reused
// (unlike physics.Handle, entities here do not need generational
// reuse since the ECS world is expected to live for one process run
// and entity counts are small relative to physics body/particle
// counts).
type EntityID uint64

// World is the ECS container: an entity counter, component stores
// registered by the caller, and the two global resources spec §4.I
// names (PhysicsConfig, Time).
type World struct {
	nextEntity EntityID
	alive      map[EntityID]bool

	Config PhysicsConfig
	Time   Time

	lastRun map[string]float64 // system name -> last run duration, seconds

	debugTag map[EntityID]uuid.UUID // debug-only entity tag, per SPEC_FULL.md §C
}

// NewWorld returns an empty ECS World with default PhysicsConfig/Time.
func NewWorld() *World {
	return &World{
		alive:    map[EntityID]bool{},
		Config:   DefaultPhysicsConfig(),
		Time:     Time{Scale: 1.0},
		lastRun:  map[string]float64{},
		debugTag: map[EntityID]uuid.UUID{},
	}
}

// Spawn creates a new entity id and marks it alive.
func (w *World) Spawn() EntityID {
	w.nextEntity++
	id := w.nextEntity
	w.alive[id] = true
	w.debugTag[id] = uuid.New()
	return id
}

// Despawn removes an entity. It does not touch any ComponentStore: the
// World keeps no registry of stores, so callers remove the entity's
// components themselves with each store's Remove(id).
func (w *World) Despawn(id EntityID) {
	delete(w.alive, id)
	delete(w.debugTag, id)
}

// Alive reports whether id is a currently spawned entity.
func (w *World) Alive(id EntityID) bool { return w.alive[id] }

// EntityCount returns the number of live entities.
func (w *World) EntityCount() int { return len(w.alive) }

// markSystemRun records a system's duration for DebugSnapshot.
func (w *World) markSystemRun(name string, seconds float64) { w.lastRun[name] = seconds }

// DebugSnapshot is the supplemental inspector view from
// SPEC_FULL.md §C / original_source/'s src/ecs world.rs: entity count,
// per-component-store counts, and per-system last-run duration. It is
// plain data, not a GUI, so it stays inside the spec's scope even
// though the editor GUI itself is out of scope (spec §1).
type DebugSnapshot struct {
	EntityCount      int
	ComponentCounts  map[string]int
	SystemDurations  map[string]float64
}

// Snapshot builds a DebugSnapshot. componentCounts is supplied by the
// caller (each ComponentStore knows its own Len()); ecs.World has no
// registry of stores to avoid forcing every component type through a
// common interface.
func (w *World) Snapshot(componentCounts map[string]int) DebugSnapshot {
	durations := make(map[string]float64, len(w.lastRun))
	for k, v := range w.lastRun {
		durations[k] = v
	}
	return DebugSnapshot{
		EntityCount:     w.EntityCount(),
		ComponentCounts: componentCounts,
		SystemDurations: durations,
	}
}
