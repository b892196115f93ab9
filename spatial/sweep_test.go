// Copyright © 2024 Galvanized Logic Inc.

package spatial

import (
	"testing"

	"github.com/gazed/physcore/math/lin"
)

func TestSweepAndPruneFindsOverlap(t *testing.T) {
	s := NewSweepAndPrune(AxisX)
	objs := []Object{
		{Handle(1), lin.NewAabbWH(lin.V3{X: 0}, lin.V3{X: 2, Y: 1, Z: 1})},
		{Handle(2), lin.NewAabbWH(lin.V3{X: 0.5}, lin.V3{X: 2, Y: 1, Z: 1})},
	}
	s.Update(objs)
	pairs := s.FindOverlaps()
	if len(pairs) != 1 || pairs[0] != (Pair{1, 2}) {
		t.Errorf("FindOverlaps got %v, want [{1 2}]", pairs)
	}
}

func TestSweepAndPruneExcludesSeparated(t *testing.T) {
	s := NewSweepAndPrune(AxisX)
	objs := []Object{
		{Handle(1), lin.NewAabbWH(lin.V3{X: 0}, lin.V3{X: 1, Y: 1, Z: 1})},
		{Handle(2), lin.NewAabbWH(lin.V3{X: 10}, lin.V3{X: 1, Y: 1, Z: 1})},
	}
	s.Update(objs)
	pairs := s.FindOverlaps()
	if len(pairs) != 0 {
		t.Errorf("FindOverlaps got %v, want none", pairs)
	}
}

func TestSweepAndPruneStopsEarly(t *testing.T) {
	s := NewSweepAndPrune(AxisY)
	objs := []Object{
		{Handle(1), lin.NewAabbWH(lin.V3{Y: 0}, lin.V3{X: 1, Y: 1, Z: 1})},
		{Handle(2), lin.NewAabbWH(lin.V3{Y: 5}, lin.V3{X: 1, Y: 1, Z: 1})},
		{Handle(3), lin.NewAabbWH(lin.V3{Y: 10}, lin.V3{X: 1, Y: 1, Z: 1})},
	}
	s.Update(objs)
	pairs := s.FindOverlaps()
	if len(pairs) != 0 {
		t.Errorf("FindOverlaps got %v, want none (all separated)", pairs)
	}
}
