// Copyright © 2024 Galvanized Logic Inc.

package ode

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// ErrNonConvergence is returned by Solve when the driver exceeds its
// step cap before reaching t_final, or when an adaptive step size is
// driven below MinStep without meeting tolerance.
var ErrNonConvergence = errors.New("ode: maximum steps exceeded")

// maxAcceptedSteps caps Solve against runaway non-convergence.
const maxAcceptedSteps = 1_000_000

// Derivative evaluates dy/dt = f(t, y). The returned slice must be the
// same length as y and must not alias y.
type Derivative func(t float64, y []float64) []float64

// Jacobian evaluates df/dy at (t, y), used by the implicit Euler method.
// When nil, ImplicitEulerMethod falls back to a forward-difference
// approximation.
type Jacobian func(t float64, y []float64) *mat.Dense

// EventFunc is a scalar function g(t, y) whose zero crossings the
// driver records. |g| < EventTolerance at a step's end triggers a record.
type EventFunc func(t float64, y []float64) float64

// Event records where and when an EventFunc crossed its threshold.
type Event struct {
	Index int
	Time  float64
	State []float64
}

// Method selects the integration scheme the Driver advances state with.
type Method int

const (
	RKF45Method Method = iota
	ImplicitEulerMethod
)

// Driver is the adaptive ODE driver contract: given a derivative,
// optional Jacobian and event functions, an initial state and a time
// interval, it produces a time series plus any recorded events.
type Driver struct {
	Method    Method
	MinStep   float64
	MaxStep   float64
	Tolerance float64 // τ, used by adaptive step control.
	Safety    float64 // safety factor applied to the new step estimate.
	Jac       Jacobian
	Events    []EventFunc

	// EventTolerance is the |g(t,y)| threshold below which a crossing
	// is recorded. Defaults to 1e-10 when zero.
	EventTolerance float64

	// NewtonIterations bounds the Newton loop used by ImplicitEulerMethod.
	// Defaults to 10 when zero.
	NewtonIterations int

	// NewtonTolerance is the residual-norm threshold below which a
	// Newton iteration is considered converged. Defaults to 1e-10.
	NewtonTolerance float64
}

// Solution is the result of a Solve call: parallel Times/States sample
// lists plus any events the driver's EventFuncs recorded along the way.
type Solution struct {
	Times  []float64
	States [][]float64
	Events []Event
}

// NewDriver returns a Driver configured for adaptive RKF45 with the
// given step bounds and tolerance, and Galvanized defaults otherwise.
func NewDriver(minStep, maxStep, tolerance float64) *Driver {
	return &Driver{
		Method:         RKF45Method,
		MinStep:        minStep,
		MaxStep:        maxStep,
		Tolerance:      tolerance,
		Safety:         0.9,
		EventTolerance: 1e-10,
	}
}

// Solve integrates dy/dt = f(t,y) from t0 with initial state y0 over
// [t0, tFinal] using the driver's configured method, returning the
// sampled times/states and any recorded events. Solve never panics on
// non-convergence: it returns the best-effort Solution gathered so far
// together with ErrNonConvergence.
func (d *Driver) Solve(f Derivative, y0 []float64, t0, tFinal, h0 float64) (Solution, error) {
	if d.EventTolerance == 0 {
		d.EventTolerance = 1e-10
	}
	switch d.Method {
	case ImplicitEulerMethod:
		return d.solveImplicitEuler(f, y0, t0, tFinal, h0)
	default:
		return d.solveRKF45(f, y0, t0, tFinal, h0)
	}
}

// At linearly interpolates sol between its stored samples to evaluate
// the state at an arbitrary t within [sol.Times[0], sol.Times[last]].
func (sol Solution) At(t float64) []float64 {
	n := len(sol.Times)
	if n == 0 {
		return nil
	}
	if t <= sol.Times[0] {
		return append([]float64(nil), sol.States[0]...)
	}
	if t >= sol.Times[n-1] {
		return append([]float64(nil), sol.States[n-1]...)
	}
	lo := 0
	for lo < n-1 && sol.Times[lo+1] < t {
		lo++
	}
	t0, t1 := sol.Times[lo], sol.Times[lo+1]
	ratio := 0.0
	if t1 != t0 {
		ratio = (t - t0) / (t1 - t0)
	}
	y0, y1 := sol.States[lo], sol.States[lo+1]
	out := make([]float64, len(y0))
	for i := range out {
		out[i] = y0[i] + (y1[i]-y0[i])*ratio
	}
	return out
}

// checkEvents records a crossing for every EventFunc whose |g(t,y)| at
// this step's end falls below EventTolerance.
func (d *Driver) checkEvents(idx int, t float64, y []float64, events *[]Event) {
	for _, g := range d.Events {
		if g == nil {
			continue
		}
		v := g(t, y)
		if v < 0 {
			v = -v
		}
		if v < d.EventTolerance {
			*events = append(*events, Event{Index: idx, Time: t, State: append([]float64(nil), y...)})
		}
	}
}
