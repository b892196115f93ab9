// Copyright © 2024 Galvanized Logic Inc.

// Package ode provides the numerical-integration toolkit shared by the
// rigid-body, soft-body and fluid cores: single-particle time steppers
// (Euler, symplectic Euler, Verlet, leapfrog, RK4) and a general-purpose
// adaptive ODE driver (RKF45, implicit Euler) for
// callers that integrate an arbitrary state vector rather than a
// position/velocity/acceleration particle.
package ode

import "github.com/gazed/physcore/math/lin"

// Scheme names one of the fixed-step single-particle integrators.
type Scheme int

const (
	ExplicitEuler Scheme = iota
	SemiImplicitEuler
	VelocityVerlet
	Leapfrog
	RungeKutta4
)

// Particle is the minimal state a fixed-step integrator advances:
// position, velocity, acceleration and inverse mass. Acceleration is
// expected to already hold the sum of force*inv_mass for this step;
// callers that need per-substep force recomputation (RK4's internal
// stages assume constant acceleration within a step) should not rely
// on these integrators and should use the ODE driver instead.
type Particle struct {
	Position     lin.V3
	Velocity     lin.V3
	Acceleration lin.V3
	InvMass      float64
}

// ApplyForce accumulates force into the particle's acceleration,
// scaled by inverse mass. A particle with InvMass == 0 is immovable
// and forces applied to it are a no-op.
func (p *Particle) ApplyForce(force lin.V3) {
	if p.InvMass == 0 {
		return
	}
	p.Acceleration.X += force.X * p.InvMass
	p.Acceleration.Y += force.Y * p.InvMass
	p.Acceleration.Z += force.Z * p.InvMass
}

// ClearForces zeroes the accumulated acceleration, ready for the next step.
func (p *Particle) ClearForces() {
	p.Acceleration = lin.V3{}
}

// Integrator advances Particle state by a fixed Scheme and damping factor.
// Damping is applied multiplicatively to velocity each step (1.0 = none).
type Integrator struct {
	Scheme  Scheme
	Damping float64
}

// NewIntegrator returns an Integrator with the given scheme and damping.
func NewIntegrator(scheme Scheme, damping float64) *Integrator {
	return &Integrator{Scheme: scheme, Damping: damping}
}

// Integrate advances p forward by dt using the receiver's scheme.
func (i *Integrator) Integrate(p *Particle, dt float64) {
	switch i.Scheme {
	case ExplicitEuler:
		i.explicitEuler(p, dt)
	case SemiImplicitEuler:
		i.semiImplicitEuler(p, dt)
	case VelocityVerlet:
		i.velocityVerlet(p, dt)
	case Leapfrog:
		i.leapfrog(p, dt)
	case RungeKutta4:
		i.rungeKutta4(p, dt)
	default:
		i.semiImplicitEuler(p, dt)
	}
}

// IntegrateSystem advances every particle in ps forward by dt.
func (i *Integrator) IntegrateSystem(ps []Particle, dt float64) {
	for idx := range ps {
		i.Integrate(&ps[idx], dt)
	}
}

// explicitEuler: x += v*dt; v = v*damp + a*dt.
func (i *Integrator) explicitEuler(p *Particle, dt float64) {
	p.Position.X += p.Velocity.X * dt
	p.Position.Y += p.Velocity.Y * dt
	p.Position.Z += p.Velocity.Z * dt
	p.Velocity.X = p.Velocity.X*i.Damping + p.Acceleration.X*dt
	p.Velocity.Y = p.Velocity.Y*i.Damping + p.Acceleration.Y*dt
	p.Velocity.Z = p.Velocity.Z*i.Damping + p.Acceleration.Z*dt
}

// semiImplicitEuler: v = v*damp + a*dt; x += v*dt. Default for rigid bodies.
func (i *Integrator) semiImplicitEuler(p *Particle, dt float64) {
	p.Velocity.X = p.Velocity.X*i.Damping + p.Acceleration.X*dt
	p.Velocity.Y = p.Velocity.Y*i.Damping + p.Acceleration.Y*dt
	p.Velocity.Z = p.Velocity.Z*i.Damping + p.Acceleration.Z*dt
	p.Position.X += p.Velocity.X * dt
	p.Position.Y += p.Velocity.Y * dt
	p.Position.Z += p.Velocity.Z * dt
}

// velocityVerlet: x += v*dt + 0.5*a*dt^2; v = v*damp + a*dt. Force
// recomputation between the position and velocity update is the
// caller's responsibility; a is treated as constant over the step.
func (i *Integrator) velocityVerlet(p *Particle, dt float64) {
	a := p.Acceleration
	half := 0.5 * dt * dt
	p.Position.X += p.Velocity.X*dt + a.X*half
	p.Position.Y += p.Velocity.Y*dt + a.Y*half
	p.Position.Z += p.Velocity.Z*dt + a.Z*half
	p.Velocity.X = p.Velocity.X*i.Damping + a.X*dt
	p.Velocity.Y = p.Velocity.Y*i.Damping + a.Y*dt
	p.Velocity.Z = p.Velocity.Z*i.Damping + a.Z*dt
}

// leapfrog: half-step v, full-step x, half-step v, then damp.
func (i *Integrator) leapfrog(p *Particle, dt float64) {
	half := 0.5 * dt
	p.Velocity.X += p.Acceleration.X * half
	p.Velocity.Y += p.Acceleration.Y * half
	p.Velocity.Z += p.Acceleration.Z * half

	p.Position.X += p.Velocity.X * dt
	p.Position.Y += p.Velocity.Y * dt
	p.Position.Z += p.Velocity.Z * dt

	p.Velocity.X = (p.Velocity.X + p.Acceleration.X*half) * i.Damping
	p.Velocity.Y = (p.Velocity.Y + p.Acceleration.Y*half) * i.Damping
	p.Velocity.Z = (p.Velocity.Z + p.Acceleration.Z*half) * i.Damping
}

// rungeKutta4 integrates with the standard four-stage tableau, assuming
// acceleration is constant across the step (no mid-step force callback).
func (i *Integrator) rungeKutta4(p *Particle, dt float64) {
	x0, v0, a := p.Position, p.Velocity, p.Acceleration

	k1v, k1x := a, v0
	k2x := addScaled(v0, k1v, dt*0.5)
	k2v := a
	k3x := addScaled(v0, k2v, dt*0.5)
	k3v := a
	k4x := addScaled(v0, k3v, dt)
	k4v := a

	sixth := dt / 6.0
	p.Velocity.X = v0.X + (k1v.X+2*k2v.X+2*k3v.X+k4v.X)*sixth
	p.Velocity.Y = v0.Y + (k1v.Y+2*k2v.Y+2*k3v.Y+k4v.Y)*sixth
	p.Velocity.Z = v0.Z + (k1v.Z+2*k2v.Z+2*k3v.Z+k4v.Z)*sixth

	p.Position.X = x0.X + (k1x.X+2*k2x.X+2*k3x.X+k4x.X)*sixth
	p.Position.Y = x0.Y + (k1x.Y+2*k2x.Y+2*k3x.Y+k4x.Y)*sixth
	p.Position.Z = x0.Z + (k1x.Z+2*k2x.Z+2*k3x.Z+k4x.Z)*sixth

	p.Velocity.X *= i.Damping
	p.Velocity.Y *= i.Damping
	p.Velocity.Z *= i.Damping
}

func addScaled(v, d lin.V3, s float64) lin.V3 {
	return lin.V3{X: v.X + d.X*s, Y: v.Y + d.Y*s, Z: v.Z + d.Z*s}
}

// IntegrateWithConstraints integrates p normally, applies constrain to
// the resulting state, then recovers velocity from the constrained
// position displacement so velocity and position stay consistent.
func (i *Integrator) IntegrateWithConstraints(p *Particle, dt float64, constrain func(*Particle)) {
	original := p.Position
	i.Integrate(p, dt)
	constrain(p)
	if dt > 0 {
		p.Velocity.X = (p.Position.X - original.X) / dt * i.Damping
		p.Velocity.Y = (p.Position.Y - original.Y) / dt * i.Damping
		p.Velocity.Z = (p.Position.Z - original.Z) / dt * i.Damping
	}
}
