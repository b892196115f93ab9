// Copyright © 2024 Galvanized Logic Inc.

// Package physics is a deterministic, fixed-timestep simulation of
// real-world physics: rigid, soft, and fluid bodies driven by an XPBD
// (extended position-based dynamics) solver. World is the package's
// top-level object; body.go/pbd.go/broad.go/gjk.go/epa.go/collider.go
// implement the solver World drives every Step.
//
// Ported from https://github.com/felipeek/raw-physics; several files
// still match that project's file/function names to ease comparison:
//
//	broad.go                : broad.cpp broad.h
//	clipping.go             : clipping.cpp clipping.h
//	collider.go             : collider.cpp collider.h
//	epa.go                  : epa.cpp epa.h
//	gjk.go                  : gjk.cpp gjk.h
//	pbd.go                  : pbd.cpp pbd.h
//	pbd_base_constraints.go : pbd_base_constraints.cpp pbd_base_constraints.h
//	physics_util.go         : physics_util.cpp physics_util.h
//	support.go              : support.cpp support.h
package physics

import (
	"math"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/gazed/physcore/math/lin"

	"github.com/gazed/physcore/spatial"
)

// World is the deterministic physics core's top-level object: it owns
// every rigid/soft/fluid body, the constraint set, the spatial index,
// the clock, and per-step stats/events, per spec §4.H's World state.
// It is the generational-handle front end over the PBD engine's
// internal bid-indexed []Body convention (body.go, pbd.go): bids are
// only valid for one pbd_simulate_with_constraints call, so World
// rebuilds a dense rigid-body slice every step and writes results back
// through the handle->index map below.
type World struct {
	rigidSlots  []slot
	rigidBodies []Body
	rigidFree   []uint32

	softSlots []slot
	soft      []*SoftBody
	softFree  []uint32

	fluidSlots []slot
	fluid      []*FluidBody
	fluidFree  []uint32

	constraints map[uuid.UUID]*Constraint

	index *spatial.Hash

	time      float64
	dt        float64
	gravity   lin.V3
	damping   float64
	timeScale float64

	solverIterations int
	pbfIterations    int
	enableCollisions bool
	maxVelocity      float64
	collisionMargin  float64

	events []Event
	stats  Stats

	errLog *errorLog
}

// errorLog counts the non-propagated conditions spec §7 treats as
// counters rather than returned errors (InvalidHandle, ShapeDegenerate,
// NumericalNonConvergence).
type errorLog struct {
	invalidHandle           uint64
	shapeDegenerate         uint64
	numericalNonConvergence uint64
}

// NewWorld builds an empty World with spec §4.H's defaults: Δt=1/60s,
// gravity=(0,-9.81,0), damping=0.99, 8 XPBD iterations, 4 PBF
// iterations, collision detection enabled, max_velocity=1000 and
// collision_margin=0.04 (spec §6's PhysicsConfig defaults).
func NewWorld() *World {
	return &World{
		constraints:      map[uuid.UUID]*Constraint{},
		index:            spatial.NewHash(1.0),
		dt:               1.0 / 60.0,
		gravity:          lin.V3{X: 0, Y: -9.81, Z: 0},
		damping:          0.99,
		timeScale:        1.0,
		solverIterations: 8,
		pbfIterations:    4,
		enableCollisions: true,
		maxVelocity:      1000.0,
		collisionMargin:  0.04,
		errLog:           &errorLog{},
	}
}

// --- spawn / despawn -------------------------------------------------

// SpawnRigid creates a rigid body of the given shape/mass at position
// and returns its handle, per spec §6's spawn_rigid(shape, mass, position).
func (w *World) SpawnRigid(spec ShapeSpec, mass float64, position lin.V3) Handle {
	colliders, degenerate := buildCollider(spec)
	if degenerate {
		w.errLog.shapeDegenerate++
	}
	static := mass <= 0
	body := body_build(position, *lin.NewQ(), lin.V3{X: 1, Y: 1, Z: 1}, mass, colliders, 0.5, 0.5, 0.0, static)
	idx, gen := w.allocSlot(&w.rigidSlots, &w.rigidFree)
	if idx == uint32(len(w.rigidBodies)) {
		w.rigidBodies = append(w.rigidBodies, body)
	} else {
		w.rigidBodies[idx] = body
	}
	return Handle{Index: idx, Gen: gen, Kind: KindRigid}
}

// SpawnSoft creates a soft body from initial particle positions and
// constraints, per spec §6's spawn_soft(particles, constraints).
func (w *World) SpawnSoft(positions []lin.V3, constraints []SoftConstraint) Handle {
	body := NewSoftBody(positions, constraints, w.pbfIterations)
	idx, gen := w.allocSlot(&w.softSlots, &w.softFree)
	if idx == uint32(len(w.soft)) {
		w.soft = append(w.soft, body)
	} else {
		w.soft[idx] = body
	}
	return Handle{Index: idx, Gen: gen, Kind: KindSoft}
}

// SpawnFluid creates a PBF fluid block, per spec §6's
// spawn_fluid(particle_seed, rest_density, bounds).
func (w *World) SpawnFluid(seed []lin.V3, restDensity float64, bounds lin.AABB) Handle {
	smoothing := (bounds.Size().X + bounds.Size().Y + bounds.Size().Z) / 30.0
	if smoothing <= 0 {
		smoothing = 0.2
	}
	body := NewFluidBody(seed, restDensity, bounds, smoothing)
	body.iterations = w.pbfIterations
	idx, gen := w.allocSlot(&w.fluidSlots, &w.fluidFree)
	if idx == uint32(len(w.fluid)) {
		w.fluid = append(w.fluid, body)
	} else {
		w.fluid[idx] = body
	}
	return Handle{Index: idx, Gen: gen, Kind: KindFluid}
}

// Despawn removes a body, per spec §6's despawn(handle). An invalid or
// already-despawned handle increments the InvalidHandle counter and is
// otherwise a no-op (spec §7).
func (w *World) Despawn(h Handle) {
	switch h.Kind {
	case KindRigid:
		if !w.freeSlot(&w.rigidSlots, &w.rigidFree, h) {
			w.errLog.invalidHandle++
		}
	case KindSoft:
		if !w.freeSlot(&w.softSlots, &w.softFree, h) {
			w.errLog.invalidHandle++
		}
	case KindFluid:
		if !w.freeSlot(&w.fluidSlots, &w.fluidFree, h) {
			w.errLog.invalidHandle++
		}
	default:
		w.errLog.invalidHandle++
	}
}

// allocSlot pops a free slot (bumping its generation) or appends a new
// one at generation 1 (0 is reserved so the zero Handle is never valid).
func (w *World) allocSlot(slots *[]slot, free *[]uint32) (uint32, uint32) {
	if len(*free) > 0 {
		idx := (*free)[len(*free)-1]
		*free = (*free)[:len(*free)-1]
		(*slots)[idx].alive = true
		return idx, (*slots)[idx].gen
	}
	idx := uint32(len(*slots))
	*slots = append(*slots, slot{gen: 1, alive: true})
	return idx, 1
}

// freeSlot marks h's slot dead and bumps its generation, reports false
// if h does not currently address a live slot.
func (w *World) freeSlot(slots *[]slot, free *[]uint32, h Handle) bool {
	if int(h.Index) >= len(*slots) || !(*slots)[h.Index].alive || (*slots)[h.Index].gen != h.Gen {
		return false
	}
	(*slots)[h.Index].alive = false
	(*slots)[h.Index].gen++
	*free = append(*free, h.Index)
	return true
}

func (w *World) rigidAlive(h Handle) bool {
	return h.Kind == KindRigid && int(h.Index) < len(w.rigidSlots) &&
		w.rigidSlots[h.Index].alive && w.rigidSlots[h.Index].gen == h.Gen
}

func (w *World) softAlive(h Handle) bool {
	return h.Kind == KindSoft && int(h.Index) < len(w.softSlots) &&
		w.softSlots[h.Index].alive && w.softSlots[h.Index].gen == h.Gen
}

func (w *World) fluidAlive(h Handle) bool {
	return h.Kind == KindFluid && int(h.Index) < len(w.fluidSlots) &&
		w.fluidSlots[h.Index].alive && w.fluidSlots[h.Index].gen == h.Gen
}

// --- forces / impulses (safe only between steps, spec §4.H) ---------

// ApplyForce adds F to handle's force accumulator.
func (w *World) ApplyForce(h Handle, f lin.V3) {
	if !w.rigidAlive(h) {
		w.errLog.invalidHandle++
		return
	}
	w.rigidBodies[h.Index].AddForce(lin.V3{}, f, false)
}

// ApplyTorque adds τ directly to handle's torque accumulator.
func (w *World) ApplyTorque(h Handle, torque lin.V3) {
	if !w.rigidAlive(h) {
		w.errLog.invalidHandle++
		return
	}
	w.rigidBodies[h.Index].AddForce(lin.V3{}, torque, true)
}

// ApplyForceAtPoint contributes (p - center_of_mass) x F to torque in
// addition to F to the force accumulator, per spec §4.D.
func (w *World) ApplyForceAtPoint(h Handle, f, p lin.V3) {
	if !w.rigidAlive(h) {
		w.errLog.invalidHandle++
		return
	}
	w.rigidBodies[h.Index].AddForce(p, f, false)
}

// ApplyImpulse immediately changes handle's velocity: v += J*inv_mass.
func (w *World) ApplyImpulse(h Handle, j lin.V3) {
	if !w.rigidAlive(h) {
		w.errLog.invalidHandle++
		return
	}
	w.rigidBodies[h.Index].ApplyImpulse(lin.V3{}, j)
}

// RigidBody exposes the live Body behind a handle for read access
// (position, velocity, ...); returns nil for a stale/invalid handle.
func (w *World) RigidBody(h Handle) *Body {
	if !w.rigidAlive(h) {
		w.errLog.invalidHandle++
		return nil
	}
	return &w.rigidBodies[h.Index]
}

// --- constraints ------------------------------------------------------

// AddConstraint registers a user constraint and returns its id, per
// spec §6's add_constraint(constraint) -> id.
func (w *World) AddConstraint(c Constraint) uuid.UUID {
	c.ID = uuid.New()
	w.constraints[c.ID] = &c
	return c.ID
}

// RemoveConstraint deletes a constraint by id, per spec §6's
// remove_constraint(id). Removing an unknown id is a no-op.
func (w *World) RemoveConstraint(id uuid.UUID) {
	delete(w.constraints, id)
}

// --- configuration ------------------------------------------------------

// SetGravity sets the force-per-unit-mass applied every step.
func (w *World) SetGravity(g lin.V3) { w.gravity = g }

// SetTimeScale scales the Δt used internally by step/advance; s <= 0
// is rejected as InvalidArgument (spec §7) and leaves state unchanged.
func (w *World) SetTimeScale(s float64) error {
	if s <= 0 {
		return errors.Errorf("physics: SetTimeScale: time scale must be positive, got %v", s)
	}
	w.timeScale = s
	return nil
}

// SetTimeStep sets Δt; a non-positive value is InvalidArgument.
func (w *World) SetTimeStep(dt float64) error {
	if dt <= 0 {
		return errors.Errorf("physics: SetTimeStep: Δt must be positive, got %v", dt)
	}
	w.dt = dt
	return nil
}

// SetSolverIterations sets the XPBD outer iteration count (default 8).
func (w *World) SetSolverIterations(n int) error {
	if n <= 0 {
		return errors.Errorf("physics: SetSolverIterations: must be positive, got %d", n)
	}
	w.solverIterations = n
	return nil
}

// SetPBFIterations sets the PBF solver iteration count new soft/fluid
// bodies are spawned with (default 4).
func (w *World) SetPBFIterations(n int) error {
	if n <= 0 {
		return errors.Errorf("physics: SetPBFIterations: must be positive, got %d", n)
	}
	w.pbfIterations = n
	return nil
}

// SetMaxVelocity caps the linear speed integrate_forces clamps every
// rigid body to each substep (spec §4.D/§6's max_velocity). A
// non-positive value is InvalidArgument and leaves state unchanged.
func (w *World) SetMaxVelocity(v float64) error {
	if v <= 0 {
		return errors.Errorf("physics: SetMaxVelocity: must be positive, got %v", v)
	}
	w.maxVelocity = v
	return nil
}

// SetCollisionMargin sets the broad-phase/narrow-phase fudge factor
// (spec §6's collision_margin): it inflates both the spatial index's
// AABBs (rebuildIndex) and the sphere-sphere analytic contact
// threshold (collider_get_contacts). A negative margin is
// InvalidArgument.
func (w *World) SetCollisionMargin(margin float64) error {
	if margin < 0 {
		return errors.Errorf("physics: SetCollisionMargin: must be non-negative, got %v", margin)
	}
	w.collisionMargin = margin
	return nil
}

// SetDamping sets the per-step linear/angular velocity multiplier
// FinalizeRigidBodies applies (spec §4.H phase 7). A value outside
// (0, 1] is InvalidArgument: 0 would stop every body dead every step,
// and a multiplier above 1 would inject energy instead of damping it.
func (w *World) SetDamping(d float64) error {
	if d <= 0 || d > 1 {
		return errors.Errorf("physics: SetDamping: must be in (0, 1], got %v", d)
	}
	w.damping = d
	return nil
}

// SetCollisionCountReset clears the broad-phase pair stat (the pair
// count of the last spatial-index rebuild, which the next rebuild sets
// again), per spec §6's set_collision_count_reset().
func (w *World) SetCollisionCountReset() { w.stats.BroadPhasePairs = 0 }

// --- step pipeline (spec §4.H) -----------------------------------------

// Step runs the 9-phase pipeline once, advancing the world by Δt*timeScale.
func (w *World) Step() {
	dt := w.dt * w.timeScale
	w.stepDt(dt)
}

// StepMulti runs Step n times, per spec §6's step_multi(n).
func (w *World) StepMulti(n int) {
	for i := 0; i < n; i++ {
		w.Step()
	}
}

// Advance subdivides seconds into Δt slices plus one partial final
// slice, per spec §4.H/§6's advance(seconds).
func (w *World) Advance(seconds float64) {
	if seconds <= 0 {
		return
	}
	step := w.dt * w.timeScale
	if step <= 0 {
		return
	}
	for remaining := seconds; remaining > 0; {
		slice := step
		if slice > remaining {
			slice = remaining
		}
		w.stepDt(slice)
		remaining -= step
	}
}

func (w *World) stepDt(dt float64) {
	if dt <= 0 {
		return
	}
	w.events = w.events[:0]

	w.RebuildSpatialIndex()       // phase 1
	w.StepRigidBodies(dt)         // phases 2-4, rigid: integrate/detect/solve bundled (SPEC_FULL.md §D.1)
	w.StepFluids(dt)              // phase 5
	w.StepSoftBodies(dt)          // phase 6
	w.FinalizeRigidBodies()       // phase 7
	// phase 8 (event emission) happens inside StepRigidBodies, where the
	// live rigid-body set used to detect collisions is still in scope.
	w.advanceTime(dt) // phase 9
}

// RebuildSpatialIndex is phase 1 of spec §4.H, exposed standalone so
// ecs.spatial_indexing_system can invoke exactly this phase.
func (w *World) RebuildSpatialIndex() { w.rebuildIndex() }

// StepRigidBodies runs phases 2-4 of spec §4.H for rigid bodies:
// integrate forces, detect collisions, and solve the XPBD constraint
// stream, all in the single pbd_simulate_with_constraints call the PBD
// engine already performs them in (pbd.go) — SPEC_FULL.md §D.1 decided
// against re-splitting this into a separate narrow-phase pass, which is
// why ecs.collision_detection_system is a documented no-op and
// ecs.constraint_solving_system only finalizes bodies and advances the
// clock: detection and solving already happened here.
func (w *World) StepRigidBodies(dt float64) {
	live := w.liveRigidBodies()
	external := w.rigidExternalConstraints(live)
	if len(live.bodies) > 0 {
		pbd_simulate_with_constraints(dt, live.bodies, external, 1, uint32(w.solverIterations), w.enableCollisions,
			w.maxVelocity, w.collisionMargin)
		w.writeBackRigidBodies(live)
	}
	w.collectCollisionEvents(live) // phase 8's rigid-collision slice
	w.errLog.numericalNonConvergence += drainDegenerateConstraintCount()
	w.errLog.numericalNonConvergence += drainNarrowPhaseNonConvergence()
}

// StepFluids runs phase 5 of spec §4.H.
func (w *World) StepFluids(dt float64) {
	for i := range w.fluid {
		if w.fluidSlots[i].alive {
			w.fluid[i].step(dt, w.gravity)
		}
	}
}

// StepSoftBodies runs phase 6 of spec §4.H.
func (w *World) StepSoftBodies(dt float64) {
	for i := range w.soft {
		if w.softSlots[i].alive {
			w.soft[i].step(dt, w.gravity)
		}
	}
}

// FinalizeRigidBodies runs phase 7 of spec §4.H: applies World.damping
// to every live rigid body's linear/angular velocity (the XPBD solver's
// own velocity update in pbd.go has no notion of a world-level damping
// coefficient) and clears the force accumulators for the next step.
func (w *World) FinalizeRigidBodies() {
	for i := range w.rigidBodies {
		if w.rigidSlots[i].alive {
			b := &w.rigidBodies[i]
			b.linear_velocity.Scale(&b.linear_velocity, w.damping)
			b.angular_velocity.Scale(&b.angular_velocity, w.damping)
			b.clear_forces()
		}
	}
}

// advanceTime runs phase 9 of spec §4.H.
func (w *World) advanceTime(dt float64) {
	w.time += dt
	w.stats.Step++
	w.stats.Time = w.time
}

// AdvanceClock runs phase 9 of spec §4.H standalone, for callers (like
// ecs.RunSchedule) that drive phases 1-7 through the exported
// Step*/FinalizeRigidBodies methods directly rather than through Step.
func (w *World) AdvanceClock(dt float64) { w.advanceTime(dt) }

// rigidLiveSet is the dense rebuild of world rigid bodies that
// pbd_simulate_with_constraints needs; handleOf maps a dense index
// back to the Handle it came from for write-back and events.
type rigidLiveSet struct {
	bodies    []Body
	handleOf  []Handle
	indexOfHandle map[uint32]int
}

func (w *World) liveRigidBodies() rigidLiveSet {
	set := rigidLiveSet{indexOfHandle: map[uint32]int{}}
	for i := range w.rigidBodies {
		if !w.rigidSlots[i].alive {
			continue
		}
		set.indexOfHandle[uint32(i)] = len(set.bodies)
		set.bodies = append(set.bodies, w.rigidBodies[i])
		set.handleOf = append(set.handleOf, Handle{Index: uint32(i), Gen: w.rigidSlots[i].gen, Kind: KindRigid})
	}
	return set
}

func (w *World) writeBackRigidBodies(live rigidLiveSet) {
	for i, h := range live.handleOf {
		w.rigidBodies[h.Index] = live.bodies[i]
	}
}

// rigidExternalConstraints translates every stored distance/spring/hinge
// Constraint whose endpoints are both live rigid bodies into the PBD
// engine's internal constraint form (constraints.go's toInternal).
func (w *World) rigidExternalConstraints(live rigidLiveSet) []constraint {
	out := make([]constraint, 0, len(w.constraints))
	for _, c := range w.constraints {
		if c.broken || c.Kind == ConstraintContact {
			continue
		}
		if !w.rigidAlive(c.A) || !w.rigidAlive(c.B) {
			continue
		}
		ai, aok := live.indexOfHandle[c.A.Index]
		bi, bok := live.indexOfHandle[c.B.Index]
		if !aok || !bok {
			continue
		}
		if internal, ok := c.toInternal(bid(ai), bid(bi)); ok {
			if internal.ctype == positional_CONSTRAINT {
				// hold RestLength along the bodies' current separation.
				sep := lin.NewV3().Sub(&live.bodies[ai].world_position, &live.bodies[bi].world_position)
				if sep.Len() > 0 {
					internal.positional_constraint.distance = *sep.Unit().Scale(sep, c.RestLength)
				}
			}
			out = append(out, internal)
		}
	}
	return out
}

// rebuildIndex re-inserts every live body's AABB into the spatial
// index, inflated by collisionMargin (spec §6's "extra AABB inflation
// for broad-phase") so a pair closing in on each other is surfaced to
// QueryAABB/GetPotentialPairs a little before their unexpanded bounds
// would actually touch.
func (w *World) rebuildIndex() {
	w.index.Clear()
	for i := range w.rigidBodies {
		if w.rigidSlots[i].alive {
			h := spatial.Handle(packHandle(Handle{Index: uint32(i), Gen: w.rigidSlots[i].gen, Kind: KindRigid}))
			w.index.Insert(h, body_world_aabb(&w.rigidBodies[i]).Expand(w.collisionMargin))
		}
	}
	for i, s := range w.soft {
		if w.softSlots[i].alive {
			h := spatial.Handle(packHandle(Handle{Index: uint32(i), Gen: w.softSlots[i].gen, Kind: KindSoft}))
			w.index.Insert(h, s.bounds().Expand(w.collisionMargin))
		}
	}
	for i, f := range w.fluid {
		if w.fluidSlots[i].alive {
			h := spatial.Handle(packHandle(Handle{Index: uint32(i), Gen: w.fluidSlots[i].gen, Kind: KindFluid}))
			w.index.Insert(h, f.bounds.Expand(w.collisionMargin))
		}
	}
	w.stats.BroadPhasePairs = len(w.index.GetPotentialPairs())
}

// packHandle folds a Handle into the uint64 spatial.Handle the
// spatial package's indexes store; unpackHandle is its inverse.
func packHandle(h Handle) uint64 {
	return uint64(h.Kind)<<56 | (uint64(h.Gen)&0xFFFFFF)<<32 | uint64(h.Index)
}

func unpackHandle(v uint64) Handle {
	return Handle{
		Kind:  BodyKind(v >> 56),
		Gen:   uint32((v >> 32) & 0xFFFFFF),
		Index: uint32(v & 0xFFFFFFFF),
	}
}

func (w *World) collectCollisionEvents(live rigidLiveSet) {
	pairs := broad_get_collision_pairs(live.bodies, w.collisionMargin)
	for _, p := range pairs {
		a := live.handleOf[p.b1_id]
		b := live.handleOf[p.b2_id]
		b1 := &live.bodies[p.b1_id]
		b2 := &live.bodies[p.b2_id]
		contacts := colliders_get_contacts(b1.colliders, b2.colliders, w.collisionMargin)
		for _, c := range contacts {
			w.events = append(w.events, Event{
				Kind:   EventCollision,
				A:      a,
				B:      b,
				Point:  c.collision_point1,
				Normal: c.normal,
			})
		}
	}
}

// --- queries (spec §6) --------------------------------------------------

// QueryAABB returns the handles whose current AABB intersects box.
func (w *World) QueryAABB(box lin.AABB) []Handle {
	raw := w.index.Query(box)
	out := make([]Handle, len(raw))
	for i, r := range raw {
		out[i] = unpackHandle(uint64(r))
	}
	return out
}

// Raycast returns handles whose bounding sphere the ray (origin,
// direction, normalized or not) intersects within maxDist. This is a
// bounding-sphere approximation, not exact per-shape intersection: no
// file in the pack implements a convex-hull raycast, and spec §6 only
// requires "handles", not a hit point, so the cheaper sphere test
// suffices.
func (w *World) Raycast(origin, direction lin.V3, maxDist float64) []Handle {
	dir := lin.NewV3().Set(&direction).Unit()
	var hits []Handle
	for i := range w.rigidBodies {
		if !w.rigidSlots[i].alive {
			continue
		}
		b := &w.rigidBodies[i]
		if _, ok := raySphereHit(origin, *dir, b.world_position, b.bounding_sphere_radius, maxDist); ok {
			hits = append(hits, Handle{Index: uint32(i), Gen: w.rigidSlots[i].gen, Kind: KindRigid})
		}
	}
	return hits
}

func raySphereHit(origin, dir, center lin.V3, radius, maxDist float64) (float64, bool) {
	oc := lin.NewV3().Sub(&origin, &center)
	b := oc.Dot(&dir)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	t := -b - math.Sqrt(disc)
	if t < 0 {
		t = -b + math.Sqrt(disc)
	}
	if t < 0 || t > maxDist {
		return 0, false
	}
	return t, true
}

// DrainEvents returns and clears the accumulated event buffer, per
// spec §6's drain_events().
func (w *World) DrainEvents() []Event {
	out := w.events
	w.events = nil
	return out
}

// StatsSnapshot returns the World's current PhysicsStats, per spec §6's stats().
func (w *World) StatsSnapshot() Stats {
	s := w.stats
	s.RigidBodyCount = w.liveCount(w.rigidSlots)
	s.SoftBodyCount = w.liveCount(w.softSlots)
	s.FluidParticleCount = 0
	for i, fb := range w.fluid {
		if w.fluidSlots[i].alive {
			s.FluidParticleCount += len(fb.particles)
		}
	}
	s.ActiveConstraints = len(w.constraints)
	s.InvalidHandleCount = w.errLog.invalidHandle
	s.ShapeDegenerateCount = w.errLog.shapeDegenerate
	s.NumericalNonConvergenceCount = w.errLog.numericalNonConvergence
	return s
}

func (w *World) liveCount(slots []slot) int {
	n := 0
	for _, s := range slots {
		if s.alive {
			n++
		}
	}
	return n
}

// Time returns the world's current simulated time, in seconds.
func (w *World) Time() float64 { return w.time }
