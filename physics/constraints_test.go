// Copyright © 2024 Galvanized Logic Inc.

package physics

import (
	"testing"
)

// A contact-kind Constraint never translates: the narrow phase builds
// collision constraints internally and a caller-supplied one is
// rejected by toInternal.
func TestConstraintToInternalRejectsContact(t *testing.T) {
	c := Constraint{Kind: ConstraintContact}
	if _, ok := c.toInternal(0, 1); ok {
		t.Error("a contact-kind Constraint should not translate via toInternal")
	}
}

func TestConstraintToInternalDistance(t *testing.T) {
	c := Constraint{Kind: ConstraintDistance, RestLength: 2.0, Compliance: 0.001}
	_, ok := c.toInternal(0, 1)
	if !ok {
		t.Fatal("a distance Constraint should translate via toInternal")
	}
}

func TestConstraintToInternalSpringDerivesComplianceFromStiffness(t *testing.T) {
	c := Constraint{Kind: ConstraintSpring, RestLength: 1.0, Stiffness: 100}
	out, ok := c.toInternal(0, 1)
	if !ok {
		t.Fatal("a spring Constraint should translate via toInternal")
	}
	if got := out.positional_constraint.compliance; got != 1.0/100 {
		t.Errorf("spring compliance = %v, want 1/k = %v", got, 1.0/100)
	}
}

func TestConstraintToInternalHinge(t *testing.T) {
	limited := Constraint{Kind: ConstraintHinge, HingeLimited: true, HingeLowerDeg: -45, HingeUpperDeg: 45}
	if _, ok := limited.toInternal(0, 1); !ok {
		t.Error("a limited hinge Constraint should translate via toInternal")
	}
	unlimited := Constraint{Kind: ConstraintHinge}
	if _, ok := unlimited.toInternal(0, 1); !ok {
		t.Error("an unlimited hinge Constraint should translate via toInternal")
	}
}
