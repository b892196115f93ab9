// Copyright © 2024 Galvanized Logic Inc.

package ode

import (
	"math"

	"github.com/pkg/errors"
)

// Runge-Kutta-Fehlberg 4(5) Butcher tableau coefficients.
var (
	rkfC = [6]float64{0, 1.0 / 4, 3.0 / 8, 12.0 / 13, 1, 1.0 / 2}
	rkfA = [6][5]float64{
		{},
		{1.0 / 4},
		{3.0 / 32, 9.0 / 32},
		{1932.0 / 2197, -7200.0 / 2197, 7296.0 / 2197},
		{439.0 / 216, -8, 3680.0 / 513, -845.0 / 4104},
		{-8.0 / 27, 2, -3544.0 / 2565, 1859.0 / 4104, -11.0 / 40},
	}
	// 5th order solution weights.
	rkfB5 = [6]float64{16.0 / 135, 0, 6656.0 / 12825, 28561.0 / 56430, -9.0 / 50, 2.0 / 55}
	// 4th order solution weights, used only to form the error estimate.
	rkfB4 = [6]float64{25.0 / 216, 0, 1408.0 / 2565, 2197.0 / 4104, -1.0 / 5, 0}
)

// rkf45Step advances y by h and returns the 5th-order estimate plus the
// error norm between the 4th and 5th order solutions.
func rkf45Step(f Derivative, t float64, y []float64, h float64) (y5 []float64, errNorm float64) {
	n := len(y)
	k := make([][]float64, 6)
	scratch := make([]float64, n)
	for s := 0; s < 6; s++ {
		for i := 0; i < n; i++ {
			sum := y[i]
			for j := 0; j < s; j++ {
				sum += h * rkfA[s][j] * k[j][i]
			}
			scratch[i] = sum
		}
		k[s] = f(t+rkfC[s]*h, append([]float64(nil), scratch...))
	}

	y5 = make([]float64, n)
	y4 := make([]float64, n)
	for i := 0; i < n; i++ {
		sum5, sum4 := y[i], y[i]
		for s := 0; s < 6; s++ {
			sum5 += h * rkfB5[s] * k[s][i]
			sum4 += h * rkfB4[s] * k[s][i]
		}
		y5[i] = sum5
		y4[i] = sum4
	}

	for i := 0; i < n; i++ {
		d := y5[i] - y4[i]
		errNorm += d * d
	}
	errNorm = math.Sqrt(errNorm)
	return y5, errNorm
}

// solveRKF45 runs the adaptive Runge-Kutta-Fehlberg 4(5) driver.
// The next step size is h*safety*(tolerance/err)^(1/5); steps with
// err > tolerance are rejected and retaken at the reduced h without
// advancing t. A step still over tolerance at MinStep ends the solve
// with ErrNonConvergence. Step size is always clamped to
// [MinStep, MaxStep], except that the last step is cut short to end
// exactly at tFinal.
func (d *Driver) solveRKF45(f Derivative, y0 []float64, t0, tFinal, h0 float64) (Solution, error) {
	sol := Solution{
		Times:  []float64{t0},
		States: [][]float64{append([]float64(nil), y0...)},
	}
	t, y := t0, append([]float64(nil), y0...)
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
	safety := d.Safety
	if safety <= 0 {
		safety = 0.9
	}

	accepted := 0
	for t < tFinal {
		if accepted >= maxAcceptedSteps {
			return sol, ErrNonConvergence
		}
		if t+h > tFinal {
			h = tFinal - t
		}

		y5, errNorm := rkf45Step(f, t, y, h)

		if errNorm <= d.Tolerance {
			t += h
			y = y5
			sol.Times = append(sol.Times, t)
			sol.States = append(sol.States, append([]float64(nil), y...))
			d.checkEvents(len(sol.Times)-1, t, y, &sol.Events)
			accepted++
		} else if h <= d.MinStep+1e-15 {
			return sol, errors.Wrap(ErrNonConvergence, "ode: step size reached MinStep without meeting tolerance")
		}

		var factor float64
		if errNorm <= 0 {
			factor = 5.0
		} else {
			factor = safety * math.Pow(d.Tolerance/errNorm, 0.2)
		}
		if factor < 0.1 {
			factor = 0.1
		}
		if factor > 5.0 {
			factor = 5.0
		}
		h *= factor
		if h < d.MinStep {
			h = d.MinStep
		}
		if h > d.MaxStep {
			h = d.MaxStep
		}
	}
	return sol, nil
}
