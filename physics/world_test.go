// Copyright © 2024 Galvanized Logic Inc.

package physics

import (
	"math"
	"testing"

	"github.com/gazed/physcore/math/lin"
)

// A lone sphere under gravity falls and never comes back up, per
// spec §8's free-fall scenario.
func TestWorldFreeFall(t *testing.T) {
	w := NewWorld()
	h := w.SpawnRigid(ShapeSpec{Type: ShapeSphere, Radius: 0.5}, 1.0, lin.V3{X: 0, Y: 10, Z: 0})

	lastY := math.Inf(1)
	for i := 0; i < 60; i++ {
		w.Step()
		body := w.RigidBody(h)
		if body == nil {
			t.Fatal("expected a live rigid body")
		}
		y := body.Position().Y
		if y > lastY {
			t.Fatalf("step %d: ball rose from %v to %v under gravity", i, lastY, y)
		}
		lastY = y
	}
	if lastY >= 10.0 {
		t.Errorf("ball should have fallen, stayed at y=%v", lastY)
	}
}

// A sphere dropped onto a static box floor settles and stays settled
// (bounded position, no explosion or sideways drift), per spec §8's
// resting-stack scenario.
func TestWorldStackedSpheresSettle(t *testing.T) {
	w := NewWorld()
	w.SpawnRigid(ShapeSpec{Type: ShapeBox, HalfX: 5, HalfY: 0.25, HalfZ: 5}, 0, lin.V3{})
	top := w.SpawnRigid(ShapeSpec{Type: ShapeSphere, Radius: 0.5}, 1.0, lin.V3{X: 0, Y: 3.0, Z: 0})

	for i := 0; i < 300; i++ {
		w.Step()
	}

	body := w.RigidBody(top)
	if body == nil {
		t.Fatal("expected the top sphere to still be live")
	}
	pos := body.Position()
	if pos.Y < 0 || pos.Y > 4 {
		t.Errorf("stack exploded or sank through the floor, top sphere at y=%v", pos.Y)
	}
	if math.Abs(pos.X) > 1.0 || math.Abs(pos.Z) > 1.0 {
		t.Errorf("stack drifted sideways to (%v, %v)", pos.X, pos.Z)
	}
}

// A one-link rope chain stays connected: after 120 steps the link is no
// further than 1.0 from its anchor (rest length 0.5 plus solver slack).
func TestWorldRopeChainStaysConnected(t *testing.T) {
	w := NewWorld()
	anchor := w.SpawnRigid(ShapeSpec{Type: ShapeSphere, Radius: 0.05}, 0, lin.V3{X: 0, Y: 5, Z: 0})
	link := w.SpawnRigid(ShapeSpec{Type: ShapeSphere, Radius: 0.08}, 0.2, lin.V3{X: 0, Y: 4.5, Z: 0})
	w.AddConstraint(Constraint{
		Kind:       ConstraintDistance,
		A:          anchor,
		B:          link,
		RestLength: 0.5,
		Compliance: 0.0001,
	})

	for i := 0; i < 120; i++ {
		w.Step()
	}

	a := w.RigidBody(anchor).Position()
	b := w.RigidBody(link).Position()
	d := lin.NewV3().Sub(&a, &b).Len()
	if d > 1.0 {
		t.Errorf("rope link drifted to distance %v from anchor, want close to rest length 0.5", d)
	}
}

// Despawning a handle and reusing its slot must not let the stale
// handle resolve to the new body (generational-handle invariant).
func TestWorldDespawnInvalidatesHandle(t *testing.T) {
	w := NewWorld()
	h1 := w.SpawnRigid(ShapeSpec{Type: ShapeSphere, Radius: 1}, 1, lin.V3{})
	w.Despawn(h1)
	h2 := w.SpawnRigid(ShapeSpec{Type: ShapeSphere, Radius: 1}, 1, lin.V3{})

	if h1.Index == h2.Index && h1.Gen == h2.Gen {
		t.Fatal("new spawn reused the exact same handle as the despawned one")
	}
	if w.RigidBody(h1) != nil {
		t.Error("a despawned handle should no longer resolve to a live body")
	}
	if w.RigidBody(h2) == nil {
		t.Error("the freshly spawned handle should resolve to a live body")
	}
}

// QueryAABB finds a body whose bounds overlap the query box and
// excludes one far away.
func TestWorldQueryAABB(t *testing.T) {
	w := NewWorld()
	near := w.SpawnRigid(ShapeSpec{Type: ShapeSphere, Radius: 0.5}, 1, lin.V3{X: 0, Y: 0, Z: 0})
	far := w.SpawnRigid(ShapeSpec{Type: ShapeSphere, Radius: 0.5}, 1, lin.V3{X: 100, Y: 100, Z: 100})
	w.RebuildSpatialIndex()

	hits := w.QueryAABB(lin.AABB{Min: lin.V3{X: -1, Y: -1, Z: -1}, Max: lin.V3{X: 1, Y: 1, Z: 1}})
	foundNear, foundFar := false, false
	for _, h := range hits {
		if h == near {
			foundNear = true
		}
		if h == far {
			foundFar = true
		}
	}
	if !foundNear {
		t.Error("QueryAABB should find the nearby sphere")
	}
	if foundFar {
		t.Error("QueryAABB should not find the far sphere")
	}
}

// Two worlds built and stepped identically from the same initial state
// diverge by nothing: the deterministic-replay scenario spec §8 names.
func TestWorldStepIsDeterministic(t *testing.T) {
	build := func() *World {
		w := NewWorld()
		w.SpawnRigid(ShapeSpec{Type: ShapeBox, HalfX: 5, HalfY: 0.25, HalfZ: 5}, 0, lin.V3{})
		w.SpawnRigid(ShapeSpec{Type: ShapeSphere, Radius: 0.5}, 1, lin.V3{X: 0.1, Y: 4, Z: -0.2})
		w.SpawnRigid(ShapeSpec{Type: ShapeSphere, Radius: 0.5}, 1, lin.V3{X: -0.1, Y: 6, Z: 0.3})
		return w
	}
	w1, w2 := build(), build()
	for i := 0; i < 200; i++ {
		w1.Step()
		w2.Step()
	}
	s1, s2 := w1.StatsSnapshot(), w2.StatsSnapshot()
	if s1 != s2 {
		t.Fatalf("two identically-built worlds diverged in stats: %+v vs %+v", s1, s2)
	}
	for i := range w1.rigidBodies {
		p1 := w1.rigidBodies[i].Position()
		p2 := w2.rigidBodies[i].Position()
		if p1 != p2 {
			t.Fatalf("body %d diverged: %+v vs %+v", i, p1, p2)
		}
	}
}
