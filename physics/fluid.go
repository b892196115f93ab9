// Copyright © 2024 Galvanized Logic Inc.

package physics

import (
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/gazed/physcore/math/lin"
)

// fluidParticle is one PBF particle: position, previous (pre-solve)
// position for velocity recovery, and the working velocity.
type fluidParticle struct {
	position, oldPosition lin.V3
	velocity              lin.V3
	lambda                float64
}

// FluidBody is a Position-Based Fluids (PBF) particle block, grounded
// in spec §4.F. The per-step algorithm mirrors the rigid PBD engine's
// predict/constrain/finalize shape (pbd_simulate_with_constraints in
// pbd.go) but works directly on particle positions with no rotational
// state and a density constraint instead of a distance constraint.
type FluidBody struct {
	particles    []fluidParticle
	restDensity  float64
	mass         float64
	smoothing    float64 // h
	iterations   int
	bounds       lin.AABB
	epsilon      float64 // relaxation term in the lambda denominator
	viscosity    float64 // XSPH coefficient
	cohesion     float64 // surface tension coefficient
	boundaryDamp float64
	active       bool
}

// NewFluidBody seeds a fluid block from particle_seed positions. h is
// the smoothing radius; restDensity and bounds match spec §6's
// spawn_fluid(particle_seed, rest_density, bounds).
func NewFluidBody(seed []lin.V3, restDensity float64, bounds lin.AABB, smoothingRadius float64) *FluidBody {
	if smoothingRadius <= 0 {
		smoothingRadius = 0.2
	}
	particles := make([]fluidParticle, len(seed))
	for i, p := range seed {
		particles[i] = fluidParticle{position: p, oldPosition: p}
	}
	return &FluidBody{
		particles:    particles,
		restDensity:  restDensity,
		mass:         restDensity * smoothingRadius * smoothingRadius * smoothingRadius,
		smoothing:    smoothingRadius,
		iterations:   4,
		bounds:       bounds,
		epsilon:      100.0,
		viscosity:    0.01,
		cohesion:     0.0,
		boundaryDamp: 0.5,
		active:       true,
	}
}

// Positions returns the current world-space particle positions.
func (f *FluidBody) Positions() []lin.V3 {
	out := make([]lin.V3, len(f.particles))
	for i, p := range f.particles {
		out[i] = p.position
	}
	return out
}

// poly6 implements spec §4.F's W_poly6(r,h), zero outside the support radius.
func poly6(r, h float64) float64 {
	if r < 0 || r >= h {
		return 0
	}
	hh := h * h
	d := hh - r*r
	return (315.0 / (64.0 * math.Pi * math.Pow(h, 9))) * d * d * d
}

// gradPoly6 implements spec §4.F's ∇W_poly6(r⃗,h).
func gradPoly6(rv lin.V3, h float64) lin.V3 {
	r := rv.Len()
	if r <= 0 || r >= h {
		return lin.V3{}
	}
	hh := h * h
	d := hh - r*r
	coeff := -945.0 / (32.0 * math.Pi * math.Pow(h, 9)) * d * d
	return lin.V3{X: rv.X * coeff, Y: rv.Y * coeff, Z: rv.Z * coeff}
}

// gradSpiky implements spec §4.F's ∇W_spiky(r⃗,h), used for the
// Lagrange multiplier gradient when the teacher's smoother poly6
// gradient would vanish near contact (spiky stays non-zero right up
// to r=0, matching the original PBF paper's choice for this term).
func gradSpiky(rv lin.V3, h float64) lin.V3 {
	r := rv.Len()
	if r <= 0 || r >= h {
		return lin.V3{}
	}
	d := h - r
	coeff := -45.0 / (math.Pi * math.Pow(h, 6)) * d * d / r
	return lin.V3{X: rv.X * coeff, Y: rv.Y * coeff, Z: rv.Z * coeff}
}

// laplacianVisc implements spec §4.F's ∇²W_visc(r,h).
func laplacianVisc(r, h float64) float64 {
	if r < 0 || r >= h {
		return 0
	}
	return 45.0 / (math.Pi * math.Pow(h, 6)) * (h - r)
}

// cohesionKernel is the Akinci et al. surface-tension kernel, split
// around h/2 per spec §4.F.
func cohesionKernel(r, h float64) float64 {
	if r <= 0 || r > h {
		return 0
	}
	coeff := 32.0 / (math.Pi * math.Pow(h, 9))
	switch {
	case r <= h/2:
		return coeff * (2*math.Pow(h-r, 3)*math.Pow(r, 3) - math.Pow(h, 6)/64.0)
	default:
		return coeff * math.Pow(h-r, 3) * math.Pow(r, 3)
	}
}

// neighbors returns, for every particle, the indices of particles
// within the smoothing radius (spec §4.F step 2: "AABB around each
// particle of radius = smoothing_radius"). O(n^2), matching the
// teacher's own broad_get_collision_pairs (broad.go) for the scale
// this engine targets; a spatial-hash-backed variant can replace this
// without changing the density/lambda/correction math below.
func (f *FluidBody) neighbors() [][]int {
	n := len(f.particles)
	out := make([][]int, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			d := lin.NewV3().Sub(&f.particles[i].position, &f.particles[j].position).Len()
			if d < f.smoothing {
				out[i] = append(out[i], j)
			}
		}
	}
	return out
}

// parallelOver runs body over chunks of [0,n) concurrently via
// errgroup, the deterministic worker-barrier spec §5 requires for the
// PBF inner loops ("implementations may parallelize ... as long as no
// phase begins until the previous has globally completed").
func parallelOver(n int, body func(i int)) {
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			body(i)
		}
		return
	}
	var g errgroup.Group
	chunk := (n + workers - 1) / workers
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				body(i)
			}
			return nil
		})
	}
	g.Wait()
}

// step runs the full PBF pipeline of spec §4.F steps 1-7.
func (f *FluidBody) step(dt float64, gravity lin.V3) {
	if !f.active || len(f.particles) == 0 {
		return
	}
	n := len(f.particles)

	// 1. predict
	for i := range f.particles {
		p := &f.particles[i]
		p.velocity.Add(&p.velocity, lin.NewV3().Scale(&gravity, dt))
		p.oldPosition = p.position
		p.position.Add(&p.position, lin.NewV3().Scale(&p.velocity, dt))
	}

	// 2. neighbor index rebuilt once per step (conservative reuse across
	// the inner iterations, matching spec step 2 running before the
	// iteration block rather than inside it).
	nbrs := f.neighbors()

	// 3. density / lambda / position-correction iterations.
	corrections := make([]lin.V3, n)
	for iter := 0; iter < f.iterations; iter++ {
		densities := make([]float64, n)
		parallelOver(n, func(i int) {
			rho := 0.0
			for _, j := range nbrs[i] {
				r := lin.NewV3().Sub(&f.particles[i].position, &f.particles[j].position).Len()
				rho += f.mass * poly6(r, f.smoothing)
			}
			densities[i] = rho
		})

		parallelOver(n, func(i int) {
			c := densities[i]/f.restDensity - 1.0
			gradSum := 0.0
			selfGrad := lin.V3{}
			for _, j := range nbrs[i] {
				if j == i {
					continue
				}
				rv := lin.NewV3().Sub(&f.particles[i].position, &f.particles[j].position)
				g := gradSpiky(*rv, f.smoothing)
				scaled := lin.NewV3().Scale(&g, 1.0/f.restDensity)
				gradSum += scaled.Dot(scaled)
				selfGrad.Add(&selfGrad, scaled)
			}
			gradSum += selfGrad.Dot(&selfGrad)
			f.particles[i].lambda = -c / (gradSum + f.epsilon)
		})

		parallelOver(n, func(i int) {
			delta := lin.V3{}
			for _, j := range nbrs[i] {
				if j == i {
					continue
				}
				rv := lin.NewV3().Sub(&f.particles[i].position, &f.particles[j].position)
				g := gradSpiky(*rv, f.smoothing)
				sum := f.particles[i].lambda + f.particles[j].lambda
				delta.Add(&delta, lin.NewV3().Scale(&g, sum))
			}
			delta.Scale(&delta, 1.0/f.restDensity)
			corrections[i] = delta
		})

		for i := range f.particles {
			f.particles[i].position.Add(&f.particles[i].position, &corrections[i])
		}
	}

	// 4. recompute velocity from the solved displacement.
	for i := range f.particles {
		p := &f.particles[i]
		p.velocity = *lin.NewV3().Scale(lin.NewV3().Sub(&p.position, &p.oldPosition), 1.0/dt)
	}

	// 5. XSPH viscosity.
	viscosities := make([]lin.V3, n)
	for i := range f.particles {
		sum := lin.V3{}
		for _, j := range nbrs[i] {
			if j == i {
				continue
			}
			r := lin.NewV3().Sub(&f.particles[i].position, &f.particles[j].position).Len()
			w := laplacianVisc(r, f.smoothing)
			vDiff := lin.NewV3().Sub(&f.particles[j].velocity, &f.particles[i].velocity)
			sum.Add(&sum, lin.NewV3().Scale(vDiff, w))
		}
		viscosities[i] = *lin.NewV3().Scale(&sum, f.viscosity)
	}
	for i := range f.particles {
		f.particles[i].velocity.Add(&f.particles[i].velocity, &viscosities[i])
	}

	// 6. surface tension cohesion.
	if f.cohesion != 0 {
		for i := range f.particles {
			force := lin.V3{}
			for _, j := range nbrs[i] {
				if j == i {
					continue
				}
				rv := lin.NewV3().Sub(&f.particles[i].position, &f.particles[j].position)
				r := rv.Len()
				if r < 1e-9 {
					continue
				}
				dir := lin.NewV3().Scale(rv, 1.0/r)
				k := cohesionKernel(r, f.smoothing) * f.cohesion
				force.Add(&force, lin.NewV3().Scale(dir, -k))
			}
			f.particles[i].velocity.Add(&f.particles[i].velocity, lin.NewV3().Scale(&force, dt))
		}
	}

	// 7. boundary handling: clamp to bounds and reflect with damping.
	for i := range f.particles {
		p := &f.particles[i]
		clampAxis(&p.position.X, &p.velocity.X, f.bounds.Min.X, f.bounds.Max.X, f.boundaryDamp)
		clampAxis(&p.position.Y, &p.velocity.Y, f.bounds.Min.Y, f.bounds.Max.Y, f.boundaryDamp)
		clampAxis(&p.position.Z, &p.velocity.Z, f.bounds.Min.Z, f.bounds.Max.Z, f.boundaryDamp)
	}
}

func clampAxis(pos, vel *float64, lo, hi, damp float64) {
	if *pos < lo {
		*pos = lo
		if *vel < 0 {
			*vel = -*vel * damp
		}
	}
	if *pos > hi {
		*pos = hi
		if *vel > 0 {
			*vel = -*vel * damp
		}
	}
}
