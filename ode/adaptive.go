// Copyright © 2024 Galvanized Logic Inc.

package ode

import "math"

// AdaptiveTimestepper is a lightweight step-size controller for callers
// that integrate a single Particle outside the full Driver (soft-body
// and fluid substep loops): given the current step and an error
// estimate between two candidate integrations, it proposes the next
// step size. Constants (safety factor 0.9, growth/shrink clamp
// [0.1, 5.0]) mirror the driver's own adaptive control.
type AdaptiveTimestepper struct {
	MinStep      float64
	MaxStep      float64
	Tolerance    float64
	safetyFactor float64
}

// NewAdaptiveTimestepper returns a controller with the Galvanized
// default safety factor of 0.9.
func NewAdaptiveTimestepper(minStep, maxStep, tolerance float64) *AdaptiveTimestepper {
	return &AdaptiveTimestepper{
		MinStep:      minStep,
		MaxStep:      maxStep,
		Tolerance:    tolerance,
		safetyFactor: 0.9,
	}
}

// CalculateTimestep proposes the next step size given the current one
// and an error estimate. A non-positive error is treated as "integration
// is exact" and returns MaxStep outright.
func (a *AdaptiveTimestepper) CalculateTimestep(currentDt, errEstimate float64) float64 {
	if errEstimate <= 0 {
		return a.MaxStep
	}
	factor := a.safetyFactor * math.Pow(a.Tolerance/errEstimate, 0.2)
	if factor < 0.1 {
		factor = 0.1
	}
	if factor > 5.0 {
		factor = 5.0
	}
	newDt := currentDt * factor
	if newDt < a.MinStep {
		newDt = a.MinStep
	}
	if newDt > a.MaxStep {
		newDt = a.MaxStep
	}
	return newDt
}

// EstimateError returns a combined position+velocity error estimate
// between two candidate Particle states, floored at 1e-10 so a zero
// estimate never stalls CalculateTimestep at MaxStep forever.
func EstimateError(a, b *Particle) float64 {
	dp := a.Position.Dist(&b.Position)
	dv := a.Velocity.Dist(&b.Velocity)
	err := dp + dv
	if err < 1e-10 {
		err = 1e-10
	}
	return err
}
