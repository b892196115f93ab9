// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package lin

import "testing"

func TestAeq(t *testing.T) {
	if !Aeq(1.0, 1.0+Epsilon*0.1) {
		t.Error("expected almost-equal values to compare equal")
	}
	if Aeq(1.0, 1.1) {
		t.Error("expected distinct values to compare unequal")
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 0, 1) != 1 {
		t.Error("Clamp should cap at upper bound")
	}
	if Clamp(-5, 0, 1) != 0 {
		t.Error("Clamp should cap at lower bound")
	}
	if Clamp(0.5, 0, 1) != 0.5 {
		t.Error("Clamp should pass through in-range values")
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(0, 10, 0.5); !Aeq(got, 5) {
		t.Errorf("Lerp(0,10,0.5) = %v, want 5", got)
	}
}

func TestRad(t *testing.T) {
	if got := Rad(180); !Aeq(got, PI) {
		t.Errorf("Rad(180) = %v, want Pi", got)
	}
	if got := Deg(PI); !Aeq(got, 180) {
		t.Errorf("Deg(Pi) = %v, want 180", got)
	}
}
