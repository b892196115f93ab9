// Copyright © 2024 Galvanized Logic Inc.

// Package spatial provides the broad-phase spatial indexes the world
// rebuilds from body AABBs every step: a uniform grid hash, a
// hierarchical multi-level variant, and a 1-D sweep-and-prune index.
// None of these own body data; they hold only opaque handles and the
// AABBs the caller supplied for them.
package spatial

import (
	"sort"

	"github.com/gazed/physcore/math/lin"
)

// Handle is an opaque identifier the spatial index stores alongside an
// AABB. Callers (physics.World) own the mapping from Handle back to
// their body/particle data.
type Handle uint64

// cellKey is a floor-divided (x,y,z) grid cell coordinate.
type cellKey struct{ x, y, z int32 }

type entry struct {
	handle Handle
	box    lin.AABB
}

// Pair is an unordered, deduplicated candidate collision pair. A is
// always the smaller handle so pair ordering is deterministic.
type Pair struct {
	A, B Handle
}

// Object pairs a handle with its current AABB, the unit Optimize,
// Hierarchical.Insert and SweepAndPrune.Update all operate on.
type Object struct {
	Handle Handle
	Box    lin.AABB
}

// Hash is a uniform spatial hash: cell key -> list of (handle, AABB).
// Rebuilt wholesale every step via Clear+Insert; it never owns body data.
type Hash struct {
	cellSize    float64
	invCellSize float64
	grid        map[cellKey][]entry
}

// NewHash returns a Hash with the given (positive) cell size.
func NewHash(cellSize float64) *Hash {
	return &Hash{
		cellSize:    cellSize,
		invCellSize: 1 / cellSize,
		grid:        make(map[cellKey][]entry),
	}
}

// CellSize reports the grid's current cell size.
func (h *Hash) CellSize() float64 { return h.cellSize }

// Clear empties every cell, preparing the hash for the next step's inserts.
func (h *Hash) Clear() {
	for k := range h.grid {
		delete(h.grid, k)
	}
}

func (h *Hash) cellOf(p lin.V3) cellKey {
	return cellKey{
		x: int32(floor(p.X * h.invCellSize)),
		y: int32(floor(p.Y * h.invCellSize)),
		z: int32(floor(p.Z * h.invCellSize)),
	}
}

func floor(v float64) float64 {
	i := float64(int64(v))
	if v < 0 && i != v {
		return i - 1
	}
	return i
}

func (h *Hash) overlappingCells(box lin.AABB) []cellKey {
	min := h.cellOf(box.Min)
	max := h.cellOf(box.Max)
	cells := make([]cellKey, 0, (max.x-min.x+1)*(max.y-min.y+1)*(max.z-min.z+1))
	for x := min.x; x <= max.x; x++ {
		for y := min.y; y <= max.y; y++ {
			for z := min.z; z <= max.z; z++ {
				cells = append(cells, cellKey{x, y, z})
			}
		}
	}
	return cells
}

// Insert enumerates every cell box overlaps and appends (handle, box)
// to each.
func (h *Hash) Insert(handle Handle, box lin.AABB) {
	for _, c := range h.overlappingCells(box) {
		h.grid[c] = append(h.grid[c], entry{handle, box})
	}
}

// Query returns the de-duplicated set of handles whose stored AABB
// actually intersects queryBox: a two-pass test, cell lookup then
// pairwise AABB check, so cell-membership alone never produces a
// spurious hit.
func (h *Hash) Query(queryBox lin.AABB) []Handle {
	seen := make(map[Handle]bool)
	var out []Handle
	for _, c := range h.overlappingCells(queryBox) {
		for _, e := range h.grid[c] {
			if seen[e.handle] {
				continue
			}
			if queryBox.Intersects(e.box) {
				seen[e.handle] = true
				out = append(out, e.handle)
			}
		}
	}
	return out
}

// QuerySphere returns handles whose AABB intersects the AABB-of-sphere
// around center with the given radius. No radial test is performed;
// callers needing strict radius containment must filter the result
// themselves.
func (h *Hash) QuerySphere(center lin.V3, radius float64) []Handle {
	return h.Query(lin.NewAabbPointRadius(center, radius))
}

// Stats summarizes the current grid occupancy, useful for tuning cell size.
type Stats struct {
	TotalCells        int
	TotalObjects      int
	MaxObjectsPerCell int
	AvgObjectsPerCell float64
	CellSize          float64
}

// Stats computes occupancy statistics over the current grid contents.
func (h *Hash) Stats() Stats {
	s := Stats{TotalCells: len(h.grid), CellSize: h.cellSize}
	for _, es := range h.grid {
		s.TotalObjects += len(es)
		if len(es) > s.MaxObjectsPerCell {
			s.MaxObjectsPerCell = len(es)
		}
	}
	if s.TotalCells > 0 {
		s.AvgObjectsPerCell = float64(s.TotalObjects) / float64(s.TotalCells)
	}
	return s
}

// Optimize recomputes a cell size of 2*avg(AABB diagonal) over objects;
// if that differs from the current cell size by more than 50%, the
// grid is rebuilt at the new size. Intended to be called on demand by
// the world, not every step.
func (h *Hash) Optimize(objects []Object) {
	if len(objects) == 0 {
		return
	}
	var total float64
	for _, o := range objects {
		size := o.Box.Size()
		total += lin.NewV3().Set(&size).Len()
	}
	avgSize := total / float64(len(objects))
	optimal := avgSize * 2.0
	if optimal <= 0 {
		return
	}
	if absF(optimal-h.cellSize) > h.cellSize*0.5 {
		h.cellSize = optimal
		h.invCellSize = 1 / optimal
		h.Clear()
		for _, o := range objects {
			h.Insert(o.Handle, o.Box)
		}
	}
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// GetPotentialPairs emits every unordered pair of handles whose AABBs
// intersect and share at least one cell, then globally deduplicates
// via sort+unique. Deduplication is required because bodies straddling
// cell boundaries would otherwise appear once per shared cell. Output
// order is deterministic when input handles are.
func (h *Hash) GetPotentialPairs() []Pair {
	var pairs []Pair
	for _, es := range h.grid {
		for i := 0; i < len(es); i++ {
			for j := i + 1; j < len(es); j++ {
				if !es[i].box.Intersects(es[j].box) {
					continue
				}
				a, b := es[i].handle, es[j].handle
				if a > b {
					a, b = b, a
				}
				pairs = append(pairs, Pair{a, b})
			}
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].A != pairs[j].A {
			return pairs[i].A < pairs[j].A
		}
		return pairs[i].B < pairs[j].B
	})
	return dedupePairs(pairs)
}

func dedupePairs(pairs []Pair) []Pair {
	if len(pairs) == 0 {
		return pairs
	}
	out := pairs[:1]
	for _, p := range pairs[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}
