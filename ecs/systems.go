// Copyright © 2024 Galvanized Logic Inc.

package ecs

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gazed/physcore/physics"
)

// System is one scheduled step of the fixed six-system order spec
// §4.I names. Each receives the ECS world (for Config/Time) and the
// physics.World it drives.
type System func(w *World, pw *physics.World)

// Schedule is the fixed system order spec §4.I requires:
// spatial_indexing -> rigid_body_integration -> soft_body -> fluid ->
// collision_detection -> constraint_solving. collision_detection_system
// is a documented no-op and constraint_solving_system only finalizes
// rigid bodies and advances the clock: the PBD engine's
// pbd_simulate_with_constraints (pbd.go) bundles narrow-phase detection
// and XPBD solving into the same call rigid_body_integration_system
// already makes (physics.World.StepRigidBodies), per SPEC_FULL.md §D.1's
// decision against a second, independent narrow-phase pass. They stay
// in the schedule, and run, so timing/logging still covers every named
// system even though the rigid work itself happened earlier in the list.
var Schedule = []struct {
	Name string
	Run  System
}{
	{"spatial_indexing_system", spatialIndexingSystem},
	{"rigid_body_integration_system", rigidBodyIntegrationSystem},
	{"soft_body_system", softBodySystem},
	{"fluid_system", fluidSystem},
	{"collision_detection_system", collisionDetectionSystem},
	{"constraint_solving_system", constraintSolvingSystem},
}

// RunSchedule applies PhysicsConfig to pw, advances Time (unless
// paused), and runs every system in Schedule's fixed order, recording
// each system's wall-clock duration for DebugSnapshot.
func RunSchedule(w *World, pw *physics.World) {
	if w.Time.Paused {
		return
	}
	dt := w.Config.TimeStep * w.Time.Scale
	pw.SetGravity(w.Config.Gravity)
	if err := pw.SetTimeStep(w.Config.TimeStep); err != nil {
		log.Warn().Err(err).Msg("ecs: invalid PhysicsConfig.TimeStep, keeping previous Δt")
	}
	if err := pw.SetSolverIterations(w.Config.SolverIterations); err != nil {
		log.Warn().Err(err).Msg("ecs: invalid PhysicsConfig.SolverIterations, keeping previous value")
	}
	if err := pw.SetMaxVelocity(w.Config.MaxVelocity); err != nil {
		log.Warn().Err(err).Msg("ecs: invalid PhysicsConfig.MaxVelocity, keeping previous value")
	}
	if err := pw.SetCollisionMargin(w.Config.CollisionMargin); err != nil {
		log.Warn().Err(err).Msg("ecs: invalid PhysicsConfig.CollisionMargin, keeping previous value")
	}
	if err := pw.SetPBFIterations(w.Config.PBFIterations); err != nil {
		log.Warn().Err(err).Msg("ecs: invalid PhysicsConfig.PBFIterations, keeping previous value")
	}

	for _, sys := range Schedule {
		start := time.Now()
		sys.Run(w, pw)
		elapsed := time.Since(start).Seconds()
		w.markSystemRun(sys.Name, elapsed)
		log.Debug().Str("system", sys.Name).Dur("took", time.Since(start)).Msg("ecs: system ran")
	}

	w.Time.Delta = dt
	w.Time.Elapsed += dt
}

func spatialIndexingSystem(w *World, pw *physics.World) {
	pw.RebuildSpatialIndex()
}

func rigidBodyIntegrationSystem(w *World, pw *physics.World) {
	pw.StepRigidBodies(w.Config.TimeStep * w.Time.Scale)
}

func softBodySystem(w *World, pw *physics.World) {
	pw.StepSoftBodies(w.Config.TimeStep * w.Time.Scale)
}

func fluidSystem(w *World, pw *physics.World) {
	pw.StepFluids(w.Config.TimeStep * w.Time.Scale)
}

// collisionDetectionSystem is a documented no-op; see Schedule's comment.
func collisionDetectionSystem(w *World, pw *physics.World) {}

// constraintSolvingSystem finalizes rigid bodies (clears force
// accumulators) and advances the physics.World clock; XPBD solving
// itself already ran inside rigidBodyIntegrationSystem.
func constraintSolvingSystem(w *World, pw *physics.World) {
	pw.FinalizeRigidBodies()
	pw.AdvanceClock(w.Config.TimeStep * w.Time.Scale)
}
