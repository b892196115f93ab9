// Copyright © 2024 Galvanized Logic Inc.

package spatial

import (
	"math/rand"
	"testing"

	"github.com/gazed/physcore/math/lin"
)

func TestHashQueryFindsInsertedObject(t *testing.T) {
	h := NewHash(1.0)
	box := lin.NewAabbWH(lin.V3{X: 5, Y: 5, Z: 5}, lin.V3{X: 1, Y: 1, Z: 1})
	h.Insert(Handle(1), box)

	got := h.Query(box)
	if len(got) != 1 || got[0] != Handle(1) {
		t.Errorf("Query got %v, want [1]", got)
	}
}

func TestHashQueryExcludesNonOverlapping(t *testing.T) {
	h := NewHash(1.0)
	near := lin.NewAabbWH(lin.V3{X: 0, Y: 0, Z: 0}, lin.V3{X: 1, Y: 1, Z: 1})
	far := lin.NewAabbWH(lin.V3{X: 100, Y: 100, Z: 100}, lin.V3{X: 1, Y: 1, Z: 1})
	h.Insert(Handle(1), near)
	h.Insert(Handle(2), far)

	got := h.Query(near)
	for _, handle := range got {
		if handle == Handle(2) {
			t.Error("Query returned a spurious non-overlapping handle")
		}
	}
}

func TestHashQueryDedupesAcrossCells(t *testing.T) {
	h := NewHash(1.0)
	// An AABB spanning multiple cells should still be reported once.
	box := lin.NewAabbWH(lin.V3{X: 0, Y: 0, Z: 0}, lin.V3{X: 3, Y: 3, Z: 3})
	h.Insert(Handle(7), box)

	got := h.Query(box)
	if len(got) != 1 {
		t.Errorf("Query returned %d handles, want 1 (deduped)", len(got))
	}
}

func TestHashSanityRandomAABBs(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	h := NewHash(5.0)
	boxes := make([]lin.AABB, 1000)
	for i := range boxes {
		center := lin.V3{X: rng.Float64() * 100, Y: rng.Float64() * 100, Z: rng.Float64() * 100}
		boxes[i] = lin.NewAabbWH(center, lin.V3{X: 1, Y: 1, Z: 1})
		h.Insert(Handle(i), boxes[i])
	}

	for i, box := range boxes {
		direct := map[Handle]bool{}
		for j, other := range boxes {
			if box.Intersects(other) {
				direct[Handle(j)] = true
			}
		}
		got := h.Query(box)
		gotSet := map[Handle]bool{}
		for _, g := range got {
			gotSet[g] = true
			if !direct[g] {
				t.Fatalf("Query(%d) returned spurious handle %d", i, g)
			}
		}
		for d := range direct {
			if !gotSet[d] {
				t.Fatalf("Query(%d) missing expected handle %d", i, d)
			}
		}
	}
}

func TestGetPotentialPairsDeduplicates(t *testing.T) {
	h := NewHash(1.0)
	box := lin.NewAabbWH(lin.V3{X: 0, Y: 0, Z: 0}, lin.V3{X: 3, Y: 3, Z: 3})
	other := lin.NewAabbWH(lin.V3{X: 0.5, Y: 0, Z: 0}, lin.V3{X: 3, Y: 3, Z: 3})
	h.Insert(Handle(1), box)
	h.Insert(Handle(2), other)

	pairs := h.GetPotentialPairs()
	count := 0
	for _, p := range pairs {
		if p == (Pair{1, 2}) {
			count++
		}
	}
	if count != 1 {
		t.Errorf("pair (1,2) appeared %d times, want exactly 1", count)
	}
}

func TestGetPotentialPairsOrderIsDeterministic(t *testing.T) {
	h := NewHash(1.0)
	box := lin.NewAabbWH(lin.V3{X: 0, Y: 0, Z: 0}, lin.V3{X: 1, Y: 1, Z: 1})
	h.Insert(Handle(5), box)
	h.Insert(Handle(2), box)
	h.Insert(Handle(9), box)

	pairs := h.GetPotentialPairs()
	for _, p := range pairs {
		if p.A >= p.B {
			t.Errorf("pair %v not in canonical (A<B) order", p)
		}
	}
}

func TestHashOptimizeRebuildsOnLargeDeviation(t *testing.T) {
	h := NewHash(0.01)
	objects := []Object{
		{Handle(1), lin.NewAabbWH(lin.V3{}, lin.V3{X: 10, Y: 10, Z: 10})},
		{Handle(2), lin.NewAabbWH(lin.V3{X: 20}, lin.V3{X: 10, Y: 10, Z: 10})},
	}
	before := h.CellSize()
	h.Optimize(objects)
	if h.CellSize() == before {
		t.Error("Optimize should have rebuilt the grid for a large size deviation")
	}
	// objects should still be queryable after the rebuild.
	got := h.Query(objects[0].Box)
	if len(got) == 0 {
		t.Error("object lost after Optimize rebuild")
	}
}
