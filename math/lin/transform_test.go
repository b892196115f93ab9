// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package lin

import "testing"

func TestTIdentityRoundTrip(t *testing.T) {
	tr := NewT().SetLoc(3, -2, 5).SetAa(0, 1, 0, Rad(61))
	p := &V3{7, 1, -4}
	orig := NewV3().Set(p)

	tr.App(p)
	tr.Inv(p)

	if !p.Aeq(orig) {
		t.Errorf("inverse(apply(p)) = %+v, want %+v", p, orig)
	}
}

func TestTAppMatchesAppS(t *testing.T) {
	tr := NewT().SetLoc(1, 2, 3).SetAa(1, 0, 0, Rad(30))
	v := &V3{4, 5, 6}
	got := NewV3().Set(v)
	tr.App(got)

	vx, vy, vz := tr.AppS(v.X, v.Y, v.Z)
	if !Aeq(got.X, vx) || !Aeq(got.Y, vy) || !Aeq(got.Z, vz) {
		t.Errorf("App/AppS mismatch: App=%+v AppS=(%v,%v,%v)", got, vx, vy, vz)
	}
}

func TestTIntegrateZeroAngularVelocity(t *testing.T) {
	start := NewT().SetLoc(0, 0, 0).SetAa(0, 1, 0, Rad(20))
	linv, angv := &V3{1, 0, 0}, &V3{0, 0, 0}
	out := NewT()
	out.Integrate(start, linv, angv, 0.5)

	if !out.Rot.Aeq(start.Rot) {
		t.Errorf("rotation changed with zero angular velocity: got %+v, want %+v", out.Rot, start.Rot)
	}
	if !out.Loc.Aeq(&V3{0.5, 0, 0}) {
		t.Errorf("Integrate location = %+v, want (0.5,0,0)", out.Loc)
	}
}

func TestTIntegratePreservesUnitRotation(t *testing.T) {
	start := NewT()
	linv, angv := &V3{0, 0, 0}, &V3{0, 2, 0}
	out := NewT()
	out.Integrate(start, linv, angv, 0.1)

	if !Aeq(out.Rot.Len(), 1) {
		t.Errorf("Integrate produced non-unit rotation, len = %v", out.Rot.Len())
	}
}

func TestTScaleAppliedBeforeRotation(t *testing.T) {
	tr := NewT()
	tr.Scale = &V3{2, 3, 4}
	v := &V3{1, 1, 1}
	tr.App(v)
	if !v.Aeq(&V3{2, 3, 4}) {
		t.Errorf("scaled App got %+v, want (2,3,4)", v)
	}
}

func TestTScaleRoundTrip(t *testing.T) {
	tr := NewT().SetAa(0, 0, 1, Rad(45))
	tr.Scale = &V3{2, 0.5, 3}
	p := &V3{3, -1, 2}
	orig := NewV3().Set(p)

	tr.App(p)
	tr.Inv(p)

	if !p.Aeq(orig) {
		t.Errorf("scaled inverse(apply(p)) = %+v, want %+v", p, orig)
	}
}
