// Copyright © 2024 Galvanized Logic Inc.

package physics

import (
	"github.com/gazed/physcore/math/lin"
)

// bid is a rigid body's index into whatever []Body slice a call is
// currently operating over. It is never stored beyond that one call:
// World rebuilds a fresh dense []Body (and the bids that index it) every
// step in liveRigidBodies, so a bid from one step is meaningless in the
// next. constraint.b1_id/b2_id and broad_Collision_Pair carry bids that
// are only valid for the pbd_simulate_with_constraints call that produced
// them.
type bid uint32

// bodyForce is a single force applied at a body-local position, kept until
// the next clear_forces. calculate_external_force/calculate_external_torque
// in physics_util.go fold these into the net force and lever-arm torque.
type bodyForce struct {
	position lin.V3
	newtons  lin.V3
}

// Body is a PBD rigid body: a transform, a velocity state, a constant local
// inertia tensor, and the colliders used for narrow-phase contact generation.
// Bodies are addressed by bid, their index in the []Body slice passed to each
// call, rather than a pointer, so pbd_simulate can pass the whole slice and still
// have every constraint resolve to the same backing array.
type Body struct {
	world_position lin.V3
	world_rotation lin.Q
	world_scale    lin.V3

	previous_world_position lin.V3
	previous_world_rotation lin.Q

	linear_velocity  lin.V3
	angular_velocity lin.V3

	previous_linear_velocity  lin.V3
	previous_angular_velocity lin.V3

	forces  []bodyForce
	torques []lin.V3

	mass         float64
	inverse_mass float64

	inertia_tensor         lin.M3
	inverse_inertia_tensor lin.M3

	colliders              []collider
	bounding_sphere_radius float64

	static_friction_coefficient  float64
	dynamic_friction_coefficient float64
	restitution_coefficient      float64

	fixed             bool
	active            bool
	deactivation_time float64
}

// body_build constructs a Body. World.SpawnRigid calls this directly and
// keeps the result in its own generational-handle-indexed slots
// (rigidBodies); liveRigidBodies then rebuilds a dense, bid-indexed []Body
// from those slots for pbd_simulate_with_constraints each step and writes
// the results back through the handle afterward.
func body_build(world_position lin.V3, world_rotation lin.Q, world_scale lin.V3, mass float64,
	colliders []collider, static_friction_coefficient, dynamic_friction_coefficient, restitution_coefficient float64,
	static bool) Body {

	b := Body{
		world_position:               world_position,
		world_rotation:               world_rotation,
		world_scale:                  world_scale,
		previous_world_position:      world_position,
		previous_world_rotation:      world_rotation,
		colliders:                    colliders,
		mass:                         mass,
		static_friction_coefficient:  static_friction_coefficient,
		dynamic_friction_coefficient: dynamic_friction_coefficient,
		restitution_coefficient:      restitution_coefficient,
		fixed:                        static,
		active:                       true,
	}
	b.bounding_sphere_radius = colliders_get_bounding_sphere_radius(colliders)
	if static || mass <= 0.0 {
		b.inverse_mass = 0.0
		b.inertia_tensor = lin.M3{}
		b.inverse_inertia_tensor = lin.M3{}
	} else {
		b.inverse_mass = 1.0 / mass
		b.inertia_tensor = colliders_get_default_inertia_tensor(colliders, mass)
		if inv, ok := b.inertia_tensor.Inverse(); ok {
			b.inverse_inertia_tensor = inv
		}
	}
	return b
}

// body_get_by_id resolves a bid to its Body in bodies, the dense slice
// the current pbd_simulate_with_constraints call is operating over. Every
// constraint solver threads bodies through explicitly rather than reading
// a package-level registry, since a World's rigid-body set is rebuilt
// fresh (and renumbered) every step by liveRigidBodies.
func body_get_by_id(bodies []Body, id bid) *Body {
	return &bodies[id]
}

// AddForce records a force (or, when isTorque is true, a pure torque) to be
// applied over the next Simulate call. position is body-local and only
// meaningful for a lever-arm force; it is ignored for a pure torque.
func (b *Body) AddForce(position, force lin.V3, isTorque bool) {
	if isTorque {
		b.torques = append(b.torques, force)
		return
	}
	b.forces = append(b.forces, bodyForce{position: position, newtons: force})
}

// clear_forces discards all forces and torques accumulated since the last
// Simulate call.
func (b *Body) clear_forces() {
	b.forces = b.forces[:0]
	b.torques = b.torques[:0]
}

// ApplyImpulse immediately changes linear and, via the lever arm about the
// body's center of mass, angular velocity. Unlike AddForce this bypasses the
// force accumulator and takes effect before the next Simulate call.
func (b *Body) ApplyImpulse(position, impulse lin.V3) {
	if b.fixed {
		return
	}
	b.linear_velocity.Add(&b.linear_velocity, lin.NewV3().Scale(&impulse, b.inverse_mass))
	inv := get_dynamic_inverse_inertia_tensor(b)
	angularDelta := lin.NewV3().MultMv(&inv, lin.NewV3().Cross(&position, &impulse))
	b.angular_velocity.Add(&b.angular_velocity, angularDelta)
}

// Position returns the body's current world position.
func (b *Body) Position() lin.V3 { return b.world_position }

// Rotation returns the body's current world orientation.
func (b *Body) Rotation() lin.Q { return b.world_rotation }

// SetPosition teleports the body, bypassing integration for this step.
func (b *Body) SetPosition(p lin.V3) { b.world_position = p; b.previous_world_position = p }

// SetRotation teleports the body's orientation, bypassing integration for this step.
func (b *Body) SetRotation(q lin.Q) { b.world_rotation = q; b.previous_world_rotation = q }

// LinearVelocity returns the body's current linear velocity.
func (b *Body) LinearVelocity() lin.V3 { return b.linear_velocity }

// AngularVelocity returns the body's current angular velocity.
func (b *Body) AngularVelocity() lin.V3 { return b.angular_velocity }

// SetLinearVelocity overwrites the body's linear velocity directly.
func (b *Body) SetLinearVelocity(v lin.V3) { b.linear_velocity = v }

// SetAngularVelocity overwrites the body's angular velocity directly.
func (b *Body) SetAngularVelocity(v lin.V3) { b.angular_velocity = v }

// SetMaterial sets the friction/restitution coefficients the collision
// constraint solver reads. Static and dynamic friction are set equal; the
// solver only tells them apart by how large lambda_t grows relative to
// lambda_n, not by a separate coefficient.
func (b *Body) SetMaterial(friction, restitution float64) *Body {
	b.static_friction_coefficient = friction
	b.dynamic_friction_coefficient = friction
	b.restitution_coefficient = restitution
	return b
}

// IsStatic reports whether the body is fixed in place.
func (b *Body) IsStatic() bool { return b.fixed }

// IsActive reports whether the body's simulation island is still awake.
func (b *Body) IsActive() bool { return b.active }

// Mass returns the body's mass, or 0 for a static body.
func (b *Body) Mass() float64 { return b.mass }
