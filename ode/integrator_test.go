// Copyright © 2024 Galvanized Logic Inc.

package ode

import (
	"math"
	"testing"

	"github.com/gazed/physcore/math/lin"
)

func TestSemiImplicitEulerFreeFall(t *testing.T) {
	p := &Particle{InvMass: 1}
	p.ApplyForce(lin.V3{Y: -10})
	integ := NewIntegrator(SemiImplicitEuler, 1.0)
	integ.Integrate(p, 0.1)

	if !lin.Aeq(p.Velocity.Y, -1.0) {
		t.Errorf("velocity.Y = %v, want -1.0", p.Velocity.Y)
	}
	if !lin.Aeq(p.Position.Y, -0.1) {
		t.Errorf("position.Y = %v, want -0.1", p.Position.Y)
	}
}

func TestApplyForceNoOpOnImmovable(t *testing.T) {
	p := &Particle{InvMass: 0}
	p.ApplyForce(lin.V3{Y: -10})
	if p.Acceleration != (lin.V3{}) {
		t.Errorf("immovable particle should not accumulate acceleration, got %+v", p.Acceleration)
	}
}

func TestRK4MatchesAnalyticConstantAcceleration(t *testing.T) {
	p := &Particle{InvMass: 1}
	p.ApplyForce(lin.V3{X: 2})
	integ := NewIntegrator(RungeKutta4, 1.0)
	integ.Integrate(p, 1.0)

	// x = 0.5*a*t^2 = 1.0, v = a*t = 2.0 for constant acceleration.
	if !lin.Aeq(p.Position.X, 1.0) {
		t.Errorf("RK4 position.X = %v, want 1.0", p.Position.X)
	}
	if !lin.Aeq(p.Velocity.X, 2.0) {
		t.Errorf("RK4 velocity.X = %v, want 2.0", p.Velocity.X)
	}
}

func TestLeapfrogConservesEnergyOverManySteps(t *testing.T) {
	// Simple harmonic oscillator approximated with recomputed acceleration
	// each step: a = -x. Leapfrog should keep the energy bounded (no blow-up)
	// over many steps, unlike explicit Euler.
	p := &Particle{InvMass: 1, Position: lin.V3{X: 1}}
	integ := NewIntegrator(Leapfrog, 1.0)
	dt := 0.01
	for i := 0; i < 1000; i++ {
		p.ClearForces()
		p.ApplyForce(lin.V3{X: -p.Position.X})
		integ.Integrate(p, dt)
	}
	energy := 0.5*p.Velocity.X*p.Velocity.X + 0.5*p.Position.X*p.Position.X
	if energy > 2.0 {
		t.Errorf("leapfrog energy drifted to %v, expected to stay near 0.5", energy)
	}
}

func TestIntegrateWithConstraintsRecomputesVelocity(t *testing.T) {
	p := &Particle{InvMass: 1, Position: lin.V3{X: 0}}
	p.ApplyForce(lin.V3{X: 10})
	integ := NewIntegrator(SemiImplicitEuler, 1.0)

	pin := func(pp *Particle) { pp.Position.X = 0 } // fully constrained.
	integ.IntegrateWithConstraints(p, 0.1, pin)

	if !lin.Aeq(p.Position.X, 0) {
		t.Errorf("constrained position.X = %v, want 0", p.Position.X)
	}
	if !lin.Aeq(p.Velocity.X, 0) {
		t.Errorf("constrained velocity.X = %v, want 0 (no displacement occurred)", p.Velocity.X)
	}
}

func TestIntegrateSystemAdvancesAllParticles(t *testing.T) {
	ps := make([]Particle, 3)
	for i := range ps {
		ps[i] = Particle{InvMass: 1}
		ps[i].ApplyForce(lin.V3{Y: -10})
	}
	integ := NewIntegrator(ExplicitEuler, 1.0)
	integ.IntegrateSystem(ps, 0.1)
	for i := range ps {
		if math.Abs(ps[i].Velocity.Y-(-1.0)) > 1e-9 {
			t.Errorf("particle %d velocity.Y = %v, want -1.0", i, ps[i].Velocity.Y)
		}
	}
}
