// Copyright © 2024 Galvanized Logic Inc.

package spatial

import (
	"testing"

	"github.com/gazed/physcore/math/lin"
)

func TestHierarchicalInsertQuerySmallObject(t *testing.T) {
	hh := NewHierarchical(1.0, 4)
	box := lin.NewAabbWH(lin.V3{X: 1, Y: 1, Z: 1}, lin.V3{X: 0.5, Y: 0.5, Z: 0.5})
	hh.Insert(Handle(1), box)

	got := hh.Query(box)
	found := false
	for _, g := range got {
		if g == Handle(1) {
			found = true
		}
	}
	if !found {
		t.Error("Hierarchical.Query did not find inserted small object")
	}
}

func TestHierarchicalInsertQueryLargeObject(t *testing.T) {
	hh := NewHierarchical(1.0, 4)
	box := lin.NewAabbWH(lin.V3{X: 10, Y: 10, Z: 10}, lin.V3{X: 8, Y: 8, Z: 8})
	hh.Insert(Handle(2), box)

	got := hh.Query(box)
	found := false
	for _, g := range got {
		if g == Handle(2) {
			found = true
		}
	}
	if !found {
		t.Error("Hierarchical.Query did not find inserted large object")
	}
}

func TestHierarchicalClearEmptiesAllLevels(t *testing.T) {
	hh := NewHierarchical(1.0, 3)
	box := lin.NewAabbWH(lin.V3{}, lin.V3{X: 1, Y: 1, Z: 1})
	hh.Insert(Handle(1), box)
	hh.Clear()

	got := hh.Query(box)
	if len(got) != 0 {
		t.Errorf("Query after Clear returned %v, want empty", got)
	}
}
