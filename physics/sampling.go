// Copyright © 2024 Galvanized Logic Inc.

package physics

import (
	"math/rand"

	"github.com/gazed/physcore/math/lin"
)

// SampleGridJittered builds a deterministic particle seed for
// spawn_fluid: a regular grid across bounds at the given spacing, each
// point displaced by a small seeded random jitter. Grounded in
// original_source/src/physics/sampling.rs's seeded-RNG particle
// sampling (AdvancedRng::new(seed)), generalized from that file's
// broader Monte-Carlo sampler catalog down to the one distribution
// spec §8's fluid scenarios actually need: a jittered fill of a box.
// jitter is a fraction of spacing, typically in [0, 0.5].
func SampleGridJittered(bounds lin.AABB, spacing, jitter float64, seed int64) []lin.V3 {
	if spacing <= 0 {
		return nil
	}
	rng := rand.New(rand.NewSource(seed))
	size := bounds.Size()
	nx := int(size.X/spacing) + 1
	ny := int(size.Y/spacing) + 1
	nz := int(size.Z/spacing) + 1

	points := make([]lin.V3, 0, nx*ny*nz)
	jit := func() float64 { return (rng.Float64()*2 - 1) * jitter * spacing }
	for ix := 0; ix < nx; ix++ {
		for iy := 0; iy < ny; iy++ {
			for iz := 0; iz < nz; iz++ {
				p := lin.V3{
					X: bounds.Min.X + float64(ix)*spacing + jit(),
					Y: bounds.Min.Y + float64(iy)*spacing + jit(),
					Z: bounds.Min.Z + float64(iz)*spacing + jit(),
				}
				points = append(points, p)
			}
		}
	}
	return points
}
