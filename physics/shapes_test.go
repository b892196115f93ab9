// Copyright © 2024 Galvanized Logic Inc.

package physics

import (
	"testing"

	"github.com/gazed/physcore/math/lin"
)

// Every shape type builds at least one collider and reports no
// degeneracy for a valid spec.
func TestBuildColliderEveryShapeType(t *testing.T) {
	unitBox, _ := boxVertices(0.5, 0.5, 0.5)
	specs := []ShapeSpec{
		{Type: ShapeSphere, Radius: 0.5},
		{Type: ShapeBox, HalfX: 1, HalfY: 1, HalfZ: 1},
		{Type: ShapeCapsule, Radius: 0.3, Height: 1},
		{Type: ShapeCylinder, Radius: 0.3, Height: 1},
		{Type: ShapeConvexHull, Vertices: unitBox, Indices: boxIndices()},
		{Type: ShapeTriangleMesh, Vertices: unitBox, Indices: boxIndices()},
	}
	for _, spec := range specs {
		cs, degenerate := buildCollider(spec)
		if len(cs) == 0 {
			t.Errorf("shape type %v produced no colliders", spec.Type)
		}
		if degenerate {
			t.Errorf("shape type %v reported degenerate for a valid spec", spec.Type)
		}
	}
}

// A zero-radius sphere spec is invalid; buildCollider must fall back to
// a default size and report it rather than building an unusable collider.
func TestBuildColliderReportsDegenerate(t *testing.T) {
	cs, degenerate := buildCollider(ShapeSpec{Type: ShapeSphere, Radius: 0})
	if len(cs) == 0 {
		t.Fatal("degenerate sphere spec produced no colliders")
	}
	if !degenerate {
		t.Error("zero-radius sphere spec should report degenerate")
	}
}

func TestWorldSpawnEveryShapeFalls(t *testing.T) {
	w := NewWorld()
	specs := []ShapeSpec{
		{Type: ShapeSphere, Radius: 0.5},
		{Type: ShapeBox, HalfX: 1, HalfY: 1, HalfZ: 1},
		{Type: ShapeCapsule, Radius: 0.3, Height: 1},
		{Type: ShapeCylinder, Radius: 0.3, Height: 1},
	}
	handles := make([]Handle, len(specs))
	for i, spec := range specs {
		handles[i] = w.SpawnRigid(spec, 1.0, lin.V3{X: float64(i) * 5, Y: 10, Z: 0})
	}
	for i := 0; i < 10; i++ {
		w.Step()
	}
	for i, h := range handles {
		if w.RigidBody(h).Position().Y >= 10.0 {
			t.Errorf("shape %v did not fall under gravity", specs[i].Type)
		}
	}
}

func TestBodyWorldAABBContainsCenter(t *testing.T) {
	w := NewWorld()
	h := w.SpawnRigid(ShapeSpec{Type: ShapeSphere, Radius: 1}, 1, lin.V3{X: 2, Y: 3, Z: 4})
	box := body_world_aabb(w.RigidBody(h))
	if !box.Contains(lin.V3{X: 2, Y: 3, Z: 4}) {
		t.Errorf("body AABB %+v does not contain its own center", box)
	}
}
