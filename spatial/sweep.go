// Copyright © 2024 Galvanized Logic Inc.

package spatial

import "sort"

// Axis selects which AABB axis SweepAndPrune sorts intervals along.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

type interval struct {
	handle   Handle
	min, max float64
}

// SweepAndPrune is a 1-D broad phase: sort entries by the chosen axis'
// interval minimum, then pair i with every following j while
// min_j <= max_i. It emits candidate pairs along that single axis
// only; callers wanting a full 3-D broad phase combine all three axes
// themselves rather than reaching for Hash.
type SweepAndPrune struct {
	axis      Axis
	intervals []interval
}

// NewSweepAndPrune returns a SweepAndPrune sorted along the given axis.
func NewSweepAndPrune(axis Axis) *SweepAndPrune {
	return &SweepAndPrune{axis: axis}
}

// Update replaces the index's contents with the given handle/AABB set,
// projected onto the configured axis and sorted by interval minimum.
func (s *SweepAndPrune) Update(objects []Object) {
	s.intervals = s.intervals[:0]
	for _, o := range objects {
		var min, max float64
		switch s.axis {
		case AxisY:
			min, max = o.Box.Min.Y, o.Box.Max.Y
		case AxisZ:
			min, max = o.Box.Min.Z, o.Box.Max.Z
		default:
			min, max = o.Box.Min.X, o.Box.Max.X
		}
		s.intervals = append(s.intervals, interval{o.Handle, min, max})
	}
	sort.Slice(s.intervals, func(i, j int) bool { return s.intervals[i].min < s.intervals[j].min })
}

// FindOverlaps returns candidate pairs whose intervals overlap along
// the configured axis, stopping the inner scan as soon as a later
// interval's minimum exceeds the current interval's maximum.
func (s *SweepAndPrune) FindOverlaps() []Pair {
	var pairs []Pair
	for i := 0; i < len(s.intervals); i++ {
		a := s.intervals[i]
		for j := i + 1; j < len(s.intervals); j++ {
			b := s.intervals[j]
			if b.min > a.max {
				break
			}
			h1, h2 := a.handle, b.handle
			if h1 > h2 {
				h1, h2 = h2, h1
			}
			pairs = append(pairs, Pair{h1, h2})
		}
	}
	return pairs
}
