// Copyright © 2024 Galvanized Logic Inc.

package ecs

import "github.com/gazed/physcore/math/lin"

// PhysicsConfig is the global resource spec §4.I names: gravity, Δt,
// iteration counts, toggles. It mirrors the options table of spec §6
// one-for-one and is the source of truth an ecs.World applies to its
// physics.World before each scheduled step.
type PhysicsConfig struct {
	Gravity                   lin.V3
	TimeStep                  float64
	MaxVelocity               float64
	SolverIterations          int
	PBFIterations             int
	CollisionMargin           float64
	SleepThreshold            float64
	EnableSleeping            bool
	EnableContinuousDetection bool
}

// DefaultPhysicsConfig matches the World defaults of spec §4.H.
func DefaultPhysicsConfig() PhysicsConfig {
	return PhysicsConfig{
		Gravity:          lin.V3{X: 0, Y: -9.81, Z: 0},
		TimeStep:         1.0 / 60.0,
		MaxVelocity:      1000.0,
		SolverIterations: 8,
		PBFIterations:    4,
		CollisionMargin:  0.04,
		SleepThreshold:   0.10,
		EnableSleeping:   true,
	}
}

// Time is the global clock resource spec §4.I names.
type Time struct {
	Elapsed float64
	Delta   float64
	Scale   float64
	Paused  bool
}
