// Copyright © 2024 Galvanized Logic Inc.

package ode

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// solveImplicitEuler runs the implicit Euler method at a fixed step h0
// across [t0, tFinal]: each step solves y_new - y - h*f(t+h, y_new) = 0
// for y_new via up to NewtonIterations Newton iterations, falling back
// to the last iterate when the residual never drops below
// NewtonTolerance. Required when stiffness makes the explicit methods
// unstable.
func (d *Driver) solveImplicitEuler(f Derivative, y0 []float64, t0, tFinal, h0 float64) (Solution, error) {
	sol := Solution{
		Times:  []float64{t0},
		States: [][]float64{append([]float64(nil), y0...)},
	}
	h := h0
	if h <= 0 {
		h = d.MaxStep
	}
	if h < d.MinStep {
		h = d.MinStep
	}
	if h > d.MaxStep {
		h = d.MaxStep
	}

	maxIter := d.NewtonIterations
	if maxIter <= 0 {
		maxIter = 10
	}
	tol := d.NewtonTolerance
	if tol <= 0 {
		tol = 1e-10
	}

	t, y := t0, append([]float64(nil), y0...)
	accepted := 0
	for t < tFinal {
		if accepted >= maxAcceptedSteps {
			return sol, ErrNonConvergence
		}
		step := h
		if t+step > tFinal {
			step = tFinal - t
		}
		tNext := t + step

		yNew := d.newtonSolve(f, tNext, y, step, maxIter, tol)

		t = tNext
		y = yNew
		sol.Times = append(sol.Times, t)
		sol.States = append(sol.States, append([]float64(nil), y...))
		d.checkEvents(len(sol.Times)-1, t, y, &sol.Events)
		accepted++
	}
	return sol, nil
}

// newtonSolve finds y_new solving y_new - y - h*f(tNext, y_new) = 0,
// using the driver's Jacobian when provided or a forward-difference
// approximation otherwise. Returns the last iterate if the residual
// norm never drops below tol within maxIter iterations.
func (d *Driver) newtonSolve(f Derivative, tNext float64, y []float64, h float64, maxIter int, tol float64) []float64 {
	n := len(y)
	yNew := append([]float64(nil), y...)

	residual := func(yc []float64) []float64 {
		fv := f(tNext, yc)
		r := make([]float64, n)
		for i := 0; i < n; i++ {
			r[i] = yc[i] - y[i] - h*fv[i]
		}
		return r
	}

	for iter := 0; iter < maxIter; iter++ {
		r := residual(yNew)
		norm := 0.0
		for _, v := range r {
			norm += v * v
		}
		norm = math.Sqrt(norm)
		if norm < tol {
			break
		}

		var jac *mat.Dense
		if d.Jac != nil {
			jac = d.Jac(tNext, yNew)
		} else {
			jac = finiteDifferenceJacobian(f, tNext, yNew, h)
		}

		rv := mat.NewVecDense(n, r)
		var delta mat.VecDense
		if err := delta.SolveVec(jac, rv); err != nil {
			break
		}
		for i := 0; i < n; i++ {
			yNew[i] -= delta.AtVec(i)
		}
	}
	return yNew
}

// finiteDifferenceJacobian approximates d(y - y0 - h*f(t,y))/dy at y
// using forward differences, for callers that don't supply an
// analytic Jacobian.
func finiteDifferenceJacobian(f Derivative, t float64, y []float64, h float64) *mat.Dense {
	n := len(y)
	jac := mat.NewDense(n, n, nil)
	base := f(t, y)
	const eps = 1e-7
	for j := 0; j < n; j++ {
		perturbed := append([]float64(nil), y...)
		step := eps * (1 + math.Abs(y[j]))
		perturbed[j] += step
		fp := f(t, perturbed)
		for i := 0; i < n; i++ {
			dGdy := (fp[i] - base[i]) / step
			residualDeriv := -h * dGdy
			if i == j {
				residualDeriv += 1
			}
			jac.Set(i, j, residualDeriv)
		}
	}
	return jac
}
