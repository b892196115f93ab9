// Copyright © 2024 Galvanized Logic Inc.

package physics

import (
	"testing"

	"github.com/gazed/physcore/math/lin"
)

// A fluid block seeded above an empty container falls and its
// particles never leave the declared bounds (spec §4.F step 7).
func TestFluidBodyStaysWithinBounds(t *testing.T) {
	bounds := lin.AABB{Min: lin.V3{X: -2, Y: 0, Z: -2}, Max: lin.V3{X: 2, Y: 4, Z: 2}}
	seed := SampleGridJittered(lin.AABB{Min: lin.V3{X: -1, Y: 2, Z: -1}, Max: lin.V3{X: 1, Y: 3, Z: 1}}, 0.3, 0.1, 7)
	f := NewFluidBody(seed, 1000, bounds, 0.3)

	for i := 0; i < 60; i++ {
		f.step(1.0/60.0, lin.V3{X: 0, Y: -9.81, Z: 0})
	}

	for i, p := range f.Positions() {
		if p.X < bounds.Min.X-1e-6 || p.X > bounds.Max.X+1e-6 ||
			p.Y < bounds.Min.Y-1e-6 || p.Y > bounds.Max.Y+1e-6 ||
			p.Z < bounds.Min.Z-1e-6 || p.Z > bounds.Max.Z+1e-6 {
			t.Errorf("particle %d escaped bounds at %+v", i, p)
		}
	}
}

// poly6 and gradSpiky vanish outside their support radius, the basic
// compact-support property spec §4.F's kernels require.
func TestFluidKernelsHaveCompactSupport(t *testing.T) {
	h := 1.0
	if poly6(h+0.01, h) != 0 {
		t.Error("poly6 should be zero beyond the smoothing radius")
	}
	if poly6(0, h) <= 0 {
		t.Error("poly6 should be positive at r=0")
	}
	g := gradSpiky(lin.V3{X: h + 0.01, Y: 0, Z: 0}, h)
	if g != (lin.V3{}) {
		t.Error("gradSpiky should be zero beyond the smoothing radius")
	}
}

// An empty fluid block (no seed particles) must not panic when stepped.
func TestFluidBodyEmptyStepIsSafe(t *testing.T) {
	f := NewFluidBody(nil, 1000, lin.AABB{Max: lin.V3{X: 1, Y: 1, Z: 1}}, 0.2)
	f.step(1.0/60.0, lin.V3{X: 0, Y: -9.81, Z: 0})
	if len(f.Positions()) != 0 {
		t.Error("expected no particles")
	}
}
