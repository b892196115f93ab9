// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package lin

import "testing"

func TestV3Add(t *testing.T) {
	a, b := &V3{1, 2, 3}, &V3{4, 5, 6}
	v := NewV3().Add(a, b)
	if !v.Aeq(&V3{5, 7, 9}) {
		t.Errorf("Add got %+v", v)
	}
}

func TestV3Sub(t *testing.T) {
	a, b := &V3{4, 5, 6}, &V3{1, 2, 3}
	v := NewV3().Sub(a, b)
	if !v.Aeq(&V3{3, 3, 3}) {
		t.Errorf("Sub got %+v", v)
	}
}

func TestV3Dot(t *testing.T) {
	a, b := &V3{1, 0, 0}, &V3{0, 1, 0}
	if a.Dot(b) != 0 {
		t.Error("perpendicular unit vectors should dot to zero")
	}
	if a.Dot(a) != 1 {
		t.Error("unit vector dotted with itself should be 1")
	}
}

func TestV3Cross(t *testing.T) {
	x, y := &V3{1, 0, 0}, &V3{0, 1, 0}
	v := NewV3().Cross(x, y)
	if !v.Aeq(&V3{0, 0, 1}) {
		t.Errorf("x cross y got %+v, want z", v)
	}
}

func TestV3UnitZero(t *testing.T) {
	v := NewV3().Unit()
	if v.X != 0 || v.Y != 0 || v.Z != 0 {
		t.Error("normalizing the zero vector must yield zero, not NaN")
	}
}

func TestV3UnitLength(t *testing.T) {
	v := NewV3S(3, 4, 0).Unit()
	if !Aeq(v.Len(), 1) {
		t.Errorf("unit vector length = %v, want 1", v.Len())
	}
}

func TestV3Reflect(t *testing.T) {
	incoming := &V3{1, -1, 0}
	normal := &V3{0, 1, 0}
	v := NewV3().Reflect(incoming, normal)
	if !v.Aeq(&V3{1, 1, 0}) {
		t.Errorf("Reflect got %+v, want (1,1,0)", v)
	}
}

func TestV3MinMax(t *testing.T) {
	a, b := &V3{1, 5, -2}, &V3{3, 2, -1}
	min := NewV3().Min(a, b)
	max := NewV3().Max(a, b)
	if !min.Aeq(&V3{1, 2, -2}) {
		t.Errorf("Min got %+v", min)
	}
	if !max.Aeq(&V3{3, 5, -1}) {
		t.Errorf("Max got %+v", max)
	}
}

func TestV3Lerp(t *testing.T) {
	a, b := &V3{0, 0, 0}, &V3{10, 10, 10}
	v := NewV3().Lerp(a, b, 0.25)
	if !v.Aeq(&V3{2.5, 2.5, 2.5}) {
		t.Errorf("Lerp got %+v", v)
	}
}

func TestV3DistSqr(t *testing.T) {
	a, b := &V3{0, 0, 0}, &V3{3, 4, 0}
	if got := a.DistSqr(b); !Aeq(got, 25) {
		t.Errorf("DistSqr got %v, want 25", got)
	}
}
