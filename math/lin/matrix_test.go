// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package lin

import "testing"

func TestM3Det(t *testing.T) {
	if got := NewM3I().Det(); got != 1 {
		t.Errorf("identity determinant = %v, want 1", got)
	}
}

func TestM3InvIdentity(t *testing.T) {
	m := NewM3I()
	inv, ok := m.Inverse()
	if !ok {
		t.Fatal("identity matrix must be invertible")
	}
	if !inv.Aeq(NewM3I()) {
		t.Errorf("inverse of identity = %+v, want identity", inv)
	}
}

func TestM3InvSingular(t *testing.T) {
	m := &M3{} // zero matrix, determinant 0
	_, ok := m.Inverse()
	if ok {
		t.Error("singular matrix must report invertible=false")
	}
}

func TestM3InvRoundTrip(t *testing.T) {
	m := NewM3().SetAa(0, 1, 0, Rad(37))
	inv, ok := m.Inverse()
	if !ok {
		t.Fatal("rotation matrix must be invertible")
	}
	product := NewM3().Mult(m, &inv)
	if !product.Aeq(NewM3I()) {
		t.Errorf("M * M^-1 = %+v, want identity", product)
	}
}

func TestM3Transpose(t *testing.T) {
	m := &M3{1, 2, 3, 4, 5, 6, 7, 8, 9}
	tr := NewM3().Transpose(m)
	want := &M3{1, 4, 7, 2, 5, 8, 3, 6, 9}
	if !tr.Aeq(want) {
		t.Errorf("Transpose got %+v, want %+v", tr, want)
	}
}

func TestM3SetQRoundTrip(t *testing.T) {
	q := NewQ().SetAa(0, 0, 1, Rad(90))
	m := NewM3().SetQ(q)
	v := m.MultMv(&V3{1, 0, 0})
	if !v.Aeq(&V3{0, 1, 0}) {
		t.Errorf("rotating (1,0,0) by 90deg about Z got %+v, want (0,1,0)", v)
	}
}

func TestM3SkewSymCrossEquivalence(t *testing.T) {
	v := &V3{1, 2, 3}
	w := &V3{4, -1, 2}
	skew := NewM3().SetSkewSym(v)
	viaMatrix := skew.MultMv(w)
	viaCross := NewV3().Cross(v, w)
	if !Aeq(viaMatrix.X, viaCross.X) || !Aeq(viaMatrix.Y, viaCross.Y) || !Aeq(viaMatrix.Z, viaCross.Z) {
		t.Errorf("[v]_x * w = %+v, v cross w = %+v", viaMatrix, viaCross)
	}
}
