// Copyright © 2024 Galvanized Logic Inc.

package ode

import (
	"testing"

	"github.com/gazed/physcore/math/lin"
)

func TestAdaptiveTimestepperZeroErrorReturnsMax(t *testing.T) {
	a := NewAdaptiveTimestepper(0.001, 0.1, 1e-6)
	if got := a.CalculateTimestep(0.01, 0); got != 0.1 {
		t.Errorf("CalculateTimestep with zero error = %v, want MaxStep 0.1", got)
	}
}

func TestAdaptiveTimestepperClampsToBounds(t *testing.T) {
	a := NewAdaptiveTimestepper(0.001, 0.1, 1e-6)
	if got := a.CalculateTimestep(0.01, 1e6); got < 0.001 || got > 0.1 {
		t.Errorf("CalculateTimestep(large error) = %v, want within [0.001, 0.1]", got)
	}
	if got := a.CalculateTimestep(0.01, 1e-20); got < 0.001 || got > 0.1 {
		t.Errorf("CalculateTimestep(tiny error) = %v, want within [0.001, 0.1]", got)
	}
}

func TestEstimateErrorFloorsAtMinimum(t *testing.T) {
	a := &Particle{Position: lin.V3{X: 1}, Velocity: lin.V3{X: 1}}
	b := &Particle{Position: lin.V3{X: 1}, Velocity: lin.V3{X: 1}}
	if got := EstimateError(a, b); got != 1e-10 {
		t.Errorf("EstimateError for identical states = %v, want floor 1e-10", got)
	}
}

func TestEstimateErrorReflectsDivergence(t *testing.T) {
	a := &Particle{Position: lin.V3{X: 0}}
	b := &Particle{Position: lin.V3{X: 1}}
	if got := EstimateError(a, b); got < 0.9 {
		t.Errorf("EstimateError for divergent states = %v, want >= ~1.0", got)
	}
}
