// Copyright © 2024 Galvanized Logic Inc.

package physics

import (
	"log/slog"

	"github.com/gazed/physcore/math/lin"
)

// softConstraintType tags a SoftBody constraint the way pbd.go's
// constraint_Type tags a rigid-body constraint. bend and volume are
// part of the closed tag set so scenes round-trip, but neither
// projects anything yet (see SoftBody.solveConstraints) — a faithful
// implementation may leave them unimplemented until needed.
type softConstraintType uint8

const (
	softDistance softConstraintType = iota
	softBend
	softVolume
)

// SoftConstraint ties two particles of the same SoftBody together.
// Stiffness is clamped to [0,1] by NewSoftBody.
type SoftConstraint struct {
	Type      softConstraintType
	A, B      int // particle indices within the owning SoftBody
	RestLen   float64
	Stiffness float64
}

// softParticle is one Verlet-integrated mass point.
type softParticle struct {
	position, previous lin.V3
	velocity           lin.V3
	inverseMass        float64
	pinned             bool
}

// SoftBody is a Verlet-integrated particle system with Gauss-Seidel
// distance constraint projection, grounded in spec §4.E. Unlike the
// rigid PBD engine's substep/lambda-accumulator machinery (pbd.go),
// soft-body projection here directly displaces particle positions
// every pass with no warm-started multiplier, matching the simpler
// mass-spring style spec.md prescribes.
type SoftBody struct {
	particles   []softParticle
	constraints []SoftConstraint
	iterations  int
	damping     float64
	active      bool
}

// NewSoftBody builds a soft body from initial particle positions
// (uniform mass 1 unless Pin is used after construction) and a set of
// constraints. iterations defaults to 4 per spec §4.E when <= 0.
func NewSoftBody(positions []lin.V3, constraints []SoftConstraint, iterations int) *SoftBody {
	if iterations <= 0 {
		iterations = 4
	}
	particles := make([]softParticle, len(positions))
	for i, p := range positions {
		particles[i] = softParticle{position: p, previous: p, inverseMass: 1.0}
	}
	clamped := make([]SoftConstraint, len(constraints))
	for i, c := range constraints {
		if c.Stiffness < 0 {
			c.Stiffness = 0
		}
		if c.Stiffness > 1 {
			c.Stiffness = 1
		}
		clamped[i] = c
	}
	return &SoftBody{particles: particles, constraints: clamped, iterations: iterations, damping: 0.99, active: true}
}

// Pin gives particle i zero effective inverse mass, so no constraint
// projection or integration step can move it.
func (s *SoftBody) Pin(i int) {
	if i < 0 || i >= len(s.particles) {
		slog.Error("SoftBody.Pin: index out of range", "index", i, "count", len(s.particles))
		return
	}
	s.particles[i].pinned = true
	s.particles[i].inverseMass = 0
}

// Positions returns the current world-space particle positions.
func (s *SoftBody) Positions() []lin.V3 {
	out := make([]lin.V3, len(s.particles))
	for i, p := range s.particles {
		out[i] = p.position
	}
	return out
}

// integrate advances every unpinned particle with Verlet integration:
// x' = 2x - x_prev + a*dt^2, per spec §4.E.
func (s *SoftBody) integrate(dt float64, gravity lin.V3) {
	dt2 := dt * dt
	for i := range s.particles {
		p := &s.particles[i]
		if p.pinned {
			continue
		}
		accel := gravity // unit mass in acceleration terms; forces are not modeled per-particle.
		next := lin.V3{
			X: 2*p.position.X - p.previous.X + accel.X*dt2,
			Y: 2*p.position.Y - p.previous.Y + accel.Y*dt2,
			Z: 2*p.position.Z - p.previous.Z + accel.Z*dt2,
		}
		p.previous = p.position
		p.position = next
	}
}

// solveConstraints runs Gauss-Seidel distance-constraint projection
// for s.iterations passes. bend/volume constraints are recognized but
// are no-ops (SPEC_FULL.md §D.2).
func (s *SoftBody) solveConstraints() {
	for iter := 0; iter < s.iterations; iter++ {
		for _, c := range s.constraints {
			switch c.Type {
			case softDistance:
				s.projectDistance(c)
			case softBend, softVolume:
				// reserved; no projection implemented yet.
			}
		}
	}
}

func (s *SoftBody) projectDistance(c SoftConstraint) {
	pa := &s.particles[c.A]
	pb := &s.particles[c.B]
	wSum := pa.inverseMass + pb.inverseMass
	if wSum == 0 {
		return
	}
	delta := lin.NewV3().Sub(&pb.position, &pa.position)
	dist := delta.Len()
	if dist < 1e-12 {
		return
	}
	diff := (dist - c.RestLen) / dist * c.Stiffness
	corrA := lin.NewV3().Scale(delta, diff*pa.inverseMass/wSum)
	corrB := lin.NewV3().Scale(delta, diff*pb.inverseMass/wSum)
	pa.position.Add(&pa.position, corrA)
	pb.position.Sub(&pb.position, corrB)
}

// finalize recovers velocity from displacement and applies damping,
// the Verlet-path analogue of rigid-body finalize_step/apply_damping
// (spec §4.D, applied here to soft particles per spec §4.E).
func (s *SoftBody) finalize(dt float64) {
	if dt <= 0 {
		return
	}
	for i := range s.particles {
		p := &s.particles[i]
		if p.pinned {
			p.velocity = lin.V3{}
			continue
		}
		p.velocity = *lin.NewV3().Scale(lin.NewV3().Sub(&p.position, &p.previous), 1.0/dt)
		p.velocity.Scale(&p.velocity, s.damping)
	}
}

// step runs one soft_body_system tick: integrate, solve, finalize.
func (s *SoftBody) step(dt float64, gravity lin.V3) {
	if !s.active {
		return
	}
	s.integrate(dt, gravity)
	s.solveConstraints()
	s.finalize(dt)
}

// bounds returns a loose AABB over every particle, used by the world
// to seed the spatial index for a soft body's handle.
func (s *SoftBody) bounds() lin.AABB {
	if len(s.particles) == 0 {
		return lin.AABB{}
	}
	box := lin.NewAabbPointRadius(s.particles[0].position, 0.05)
	for _, p := range s.particles[1:] {
		box = box.Union(lin.NewAabbPointRadius(p.position, 0.05))
	}
	return box
}
