// Copyright © 2024 Galvanized Logic Inc.

package physics

import (
	"math"

	"github.com/google/uuid"

	"github.com/gazed/physcore/math/lin"
)

// ConstraintKind tags the generic constraint stream spec §3 describes:
// contact | distance | spring | hinge. World.add_constraint accepts
// distance/spring/hinge from callers; contact constraints are produced
// internally by the narrow phase each step and never stored past it.
// Hinge constraints are translated by toInternal, but pbd.go's
// solve_constraint does not project hinge_JOINT_CONSTRAINT, so a hinge
// Constraint does not move its bodies.
type ConstraintKind uint8

const (
	ConstraintContact ConstraintKind = iota
	ConstraintDistance
	ConstraintSpring
	ConstraintHinge
)

// Constraint is the caller-facing, handle-addressed constraint spec §3
// and §6's add_constraint/remove_constraint describe. It is translated
// to the PBD engine's internal constraint type (pbd.go) at solve time;
// World never hands the internal bid-addressed form back to a caller.
type Constraint struct {
	ID uuid.UUID

	Kind ConstraintKind
	A, B Handle

	RestLength float64 // distance, spring
	Stiffness  float64 // spring: k
	Compliance float64 // inverse stiffness used directly by XPBD; distance/hinge

	HingeAxis    lin.V3 // hinge: not read by toInternal, which always aligns each body's local +Y axis
	HingeLowerDeg float64
	HingeUpperDeg float64
	HingeLimited  bool

	broken bool // nothing in the package sets it; rigidExternalConstraints skips a constraint while it is true
}

// toInternal builds the pbd.go constraint this Constraint maps onto,
// given the bid each handle currently resolves to. Spring constraints
// become an equality positional_Constraint with compliance = 1/k (the
// damped-spring force law from original_source/differential.rs,
// expressed as an XPBD-compliant equality constraint per SPEC_FULL.md
// §C). Distance and spring constraints carry the offset (RestLength,0,0);
// World.rigidExternalConstraints re-aims it along the bodies' current
// separation each step. Hinge limits are converted from degrees to the
// radians pbd.go's limit_angle compares against. Contact constraints are
// never translated here; pbd_simulate_with_constraints builds
// collision_Constraint values directly from narrow-phase contacts.
func (c *Constraint) toInternal(b1, b2 bid) (constraint, bool) {
	var out constraint
	switch c.Kind {
	case ConstraintDistance:
		compliance := c.Compliance
		pbd_positional_constraint_init(&out, b1, b2, lin.V3{}, lin.V3{}, compliance,
			lin.V3{X: c.RestLength})
		return out, true
	case ConstraintSpring:
		compliance := c.Compliance
		if c.Stiffness > 0 {
			compliance = 1.0 / c.Stiffness
		}
		pbd_positional_constraint_init(&out, b1, b2, lin.V3{}, lin.V3{}, compliance,
			lin.V3{X: c.RestLength})
		return out, true
	case ConstraintHinge:
		axis := pbd_POSITIVE_Y_AXIS
		if c.HingeLimited {
			pbd_hinge_joint_constraint_limited_init(&out, b1, b2, lin.V3{}, lin.V3{}, c.Compliance,
				axis, axis, axis, axis, c.HingeLowerDeg*math.Pi/180, c.HingeUpperDeg*math.Pi/180)
		} else {
			pbd_hinge_joint_constraint_unlimited_init(&out, b1, b2, lin.V3{}, lin.V3{}, c.Compliance, axis, axis)
		}
		return out, true
	default:
		return out, false
	}
}
