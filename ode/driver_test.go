// Copyright © 2024 Galvanized Logic Inc.

package ode

import (
	"math"
	"testing"
)

func TestRKF45ExponentialDecay(t *testing.T) {
	// dy/dt = -y, y(0) = 1. Exact solution at t=1 is e^-1.
	f := func(t float64, y []float64) []float64 { return []float64{-y[0]} }
	d := NewDriver(1e-6, 0.1, 1e-8)
	sol, err := d.Solve(f, []float64{1}, 0, 1, 0.05)
	if err != nil {
		t.Fatalf("Solve returned error: %v", err)
	}
	got := sol.States[len(sol.States)-1][0]
	want := math.Exp(-1)
	if math.Abs(got-want) > 1e-4 {
		t.Errorf("y(1) = %v, want ~%v", got, want)
	}
}

func TestRKF45HarmonicOscillatorPeriod(t *testing.T) {
	// x'' = -x as a first-order system y = [x, v]: y' = [v, -x].
	// One full period is 2*pi; state should return near its start.
	f := func(t float64, y []float64) []float64 { return []float64{y[1], -y[0]} }
	d := NewDriver(1e-6, 0.05, 1e-6)
	y0 := []float64{1, 0}
	sol, err := d.Solve(f, y0, 0, 2*math.Pi, 0.01)
	if err != nil {
		t.Fatalf("Solve returned error: %v", err)
	}
	final := sol.States[len(sol.States)-1]
	if math.Abs(final[0]-y0[0]) > 0.1 || math.Abs(final[1]-y0[1]) > 0.1 {
		t.Errorf("after one period got %+v, want near %+v", final, y0)
	}
}

func TestRKF45RespectsStepBounds(t *testing.T) {
	f := func(t float64, y []float64) []float64 { return []float64{-1000 * y[0]} }
	d := NewDriver(1e-5, 0.01, 1e-8)
	sol, err := d.Solve(f, []float64{1}, 0, 0.1, 0.01)
	if err != nil {
		t.Fatalf("Solve returned error: %v", err)
	}
	for i := 1; i < len(sol.Times); i++ {
		h := sol.Times[i] - sol.Times[i-1]
		if h > d.MaxStep+1e-9 {
			t.Errorf("step %d size %v exceeds MaxStep %v", i, h, d.MaxStep)
		}
	}
}

func TestDriverAtInterpolates(t *testing.T) {
	sol := Solution{
		Times:  []float64{0, 1, 2},
		States: [][]float64{{0}, {10}, {20}},
	}
	got := sol.At(0.5)
	if math.Abs(got[0]-5) > 1e-9 {
		t.Errorf("At(0.5) = %v, want 5", got[0])
	}
}

func TestImplicitEulerStableOnStiffDecay(t *testing.T) {
	// dy/dt = -1000*y is numerically stiff; implicit Euler should stay
	// bounded where explicit methods at comparable h would blow up.
	f := func(t float64, y []float64) []float64 { return []float64{-1000 * y[0]} }
	d := &Driver{Method: ImplicitEulerMethod, MinStep: 0.01, MaxStep: 0.01}
	sol, err := d.Solve(f, []float64{1}, 0, 1, 0.01)
	if err != nil {
		t.Fatalf("Solve returned error: %v", err)
	}
	final := sol.States[len(sol.States)-1][0]
	if math.IsNaN(final) || math.Abs(final) > 1 {
		t.Errorf("implicit Euler blew up: final state = %v", final)
	}
}

func TestSolveRecordsEvents(t *testing.T) {
	// Event fires when y crosses zero: y(t) = 1 - t, root at t=1.
	f := func(t float64, y []float64) []float64 { return []float64{-1} }
	d := NewDriver(1e-4, 0.05, 1e-8)
	d.Events = []EventFunc{func(t float64, y []float64) float64 { return y[0] }}
	sol, err := d.Solve(f, []float64{1}, 0, 2, 0.05)
	if err != nil {
		t.Fatalf("Solve returned error: %v", err)
	}
	if len(sol.Events) == 0 {
		t.Error("expected at least one recorded event crossing zero")
	}
}
