// Copyright © 2024 Galvanized Logic Inc.

package spatial

import (
	"math"

	"github.com/gazed/physcore/math/lin"
)

// Hierarchical is a multi-level uniform grid: level i has cell size
// baseCellSize*2^i. An object is inserted into every level whose cell
// size is within [size/2, 4*size] of the object's AABB diagonal, so
// small and large objects each land in a level sized for them.
type Hierarchical struct {
	levels       []*Hash
	baseCellSize float64
}

// NewHierarchical returns a Hierarchical index with the given number
// of levels, doubling cell size starting at baseCellSize.
func NewHierarchical(baseCellSize float64, numLevels int) *Hierarchical {
	levels := make([]*Hash, numLevels)
	for i := 0; i < numLevels; i++ {
		levels[i] = NewHash(baseCellSize * math.Pow(2, float64(i)))
	}
	return &Hierarchical{levels: levels, baseCellSize: baseCellSize}
}

// Clear empties every level.
func (h *Hierarchical) Clear() {
	for _, l := range h.levels {
		l.Clear()
	}
}

// Insert places handle/box into every level whose cell size fits the
// object's diameter.
func (h *Hierarchical) Insert(handle Handle, box lin.AABB) {
	size := box.Size()
	diameter := lin.NewV3().Set(&size).Len()
	for _, l := range h.levels {
		if l.cellSize >= diameter*0.5 && l.cellSize <= diameter*4.0 {
			l.Insert(handle, box)
		}
	}
}

// Query selects the level whose cell size best matches queryBox's
// diameter and queries that level.
func (h *Hierarchical) Query(queryBox lin.AABB) []Handle {
	size := queryBox.Size()
	diameter := lin.NewV3().Set(&size).Len()
	if diameter == 0 || len(h.levels) == 0 {
		if len(h.levels) > 0 {
			return h.levels[0].Query(queryBox)
		}
		return nil
	}

	best, bestRatio := 0, math.MaxFloat64
	for i, l := range h.levels {
		ratio := math.Abs(l.cellSize/diameter - 1.0)
		if ratio < bestRatio {
			bestRatio, best = ratio, i
		}
	}
	return h.levels[best].Query(queryBox)
}
