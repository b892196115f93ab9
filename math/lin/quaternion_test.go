// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package lin

import "testing"

func TestQIdentityRotate(t *testing.T) {
	v := &V3{1, 2, 3}
	got := NewV3().MultvQ(v, QI)
	if !got.Aeq(v) {
		t.Errorf("identity quaternion rotate got %+v, want %+v", got, v)
	}
}

func TestQAxisAngleRoundTrip(t *testing.T) {
	v := &V3{1, 0, 0}
	fwd := NewQ().SetAa(0, 1, 0, Rad(42))
	back := NewQ().SetAa(0, 1, 0, Rad(-42))
	rotated := NewV3().MultvQ(v, fwd)
	restored := NewV3().MultvQ(rotated, back)
	if !restored.Aeq(v) {
		t.Errorf("axis-angle round trip got %+v, want %+v", restored, v)
	}
}

func TestQMultInverseIsIdentity(t *testing.T) {
	q := NewQ().SetAa(1, 1, 0, Rad(73)).Unit()
	inv := NewQ().Inv(q)
	prod := NewQ().Mult(q, inv)
	if !prod.Aeq(QI) {
		t.Errorf("q * q^-1 = %+v, want identity", prod)
	}
}

func TestQUnitNormalizesNonUnit(t *testing.T) {
	q := &Q{1, 2, 3, 4}
	q.Unit()
	if !Aeq(q.Len(), 1) {
		t.Errorf("Unit length = %v, want 1", q.Len())
	}
}

func TestQNlerpEndpoints(t *testing.T) {
	a := NewQ().SetAa(0, 0, 1, 0)
	b := NewQ().SetAa(0, 0, 1, Rad(90))
	start := NewQ().Nlerp(a, b, 0)
	end := NewQ().Nlerp(a, b, 1)
	if !start.Aeq(a) {
		t.Errorf("Nlerp(0) = %+v, want %+v", start, a)
	}
	if !end.Aeq(b) {
		t.Errorf("Nlerp(1) = %+v, want %+v", end, b)
	}
}
