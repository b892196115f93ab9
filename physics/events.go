// Copyright © 2024 Galvanized Logic Inc.

package physics

import (
	"github.com/google/uuid"

	"github.com/gazed/physcore/math/lin"
)

// EventKind tags the events World.DrainEvents hands back, per spec §6/§3.
type EventKind uint8

const (
	EventCollision EventKind = iota
	EventConstraintBroken
	EventTriggerEnter
	EventTriggerExit
	EventSleepStateChanged
)

// Event is one entry in a step's event buffer. Only the fields
// relevant to Kind are populated.
type Event struct {
	Kind EventKind

	A, B Handle

	Point      lin.V3
	Normal     lin.V3
	Impulse    float64
	ConstraintID uuid.UUID // set only for ConstraintBroken

	Sleeping bool
}

// Stats is the World.stats() snapshot (spec §6), updated once per step.
type Stats struct {
	Step               uint64
	Time               float64
	RigidBodyCount     int
	SoftBodyCount      int
	FluidParticleCount int
	BroadPhasePairs    int
	ActiveConstraints  int
	InvalidHandleCount uint64
	ShapeDegenerateCount uint64
	NumericalNonConvergenceCount uint64
	LastStepDuration float64 // seconds; World never measures it, so it stays 0
}
