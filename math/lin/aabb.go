// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package lin

// AABB is an axis-aligned bounding box stored as a min/max corner pair.
// Used by the broad phase to cheaply test whether two shapes might be
// touching before paying for an exact narrow-phase test.
type AABB struct {
	Min V3
	Max V3
}

// NewAabbWH builds an AABB from a center point and a full-size extent
// (half of extent is applied on each side of center).
func NewAabbWH(center V3, extent V3) AABB {
	hx, hy, hz := extent.X*0.5, extent.Y*0.5, extent.Z*0.5
	return AABB{
		Min: V3{center.X - hx, center.Y - hy, center.Z - hz},
		Max: V3{center.X + hx, center.Y + hy, center.Z + hz},
	}
}

// NewAabbPointRadius builds an AABB that encloses a sphere of the given
// radius centered at point.
func NewAabbPointRadius(point V3, radius float64) AABB {
	r := V3{radius, radius, radius}
	return AABB{
		Min: V3{point.X - r.X, point.Y - r.Y, point.Z - r.Z},
		Max: V3{point.X + r.X, point.Y + r.Y, point.Z + r.Z},
	}
}

// Contains returns true when point p lies within the box, inclusive
// of the boundary.
func (a AABB) Contains(p V3) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X &&
		p.Y >= a.Min.Y && p.Y <= a.Max.Y &&
		p.Z >= a.Min.Z && p.Z <= a.Max.Z
}

// Intersects reports whether a and b overlap using the closed half-open
// test min <= other.max && max >= other.min on every axis. This is the
// canonical form the broad phase relies on for pair enumeration.
func (a AABB) Intersects(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

// Expand returns a grown by margin on every side.
func (a AABB) Expand(margin float64) AABB {
	m := V3{margin, margin, margin}
	return AABB{
		Min: V3{a.Min.X - m.X, a.Min.Y - m.Y, a.Min.Z - m.Z},
		Max: V3{a.Max.X + m.X, a.Max.Y + m.Y, a.Max.Z + m.Z},
	}
}

// Union returns the smallest AABB containing both a and b.
func (a AABB) Union(b AABB) AABB {
	var out AABB
	out.Min.Min(&a.Min, &b.Min)
	out.Max.Max(&a.Max, &b.Max)
	return out
}

// Center returns the midpoint of the box.
func (a AABB) Center() V3 {
	return V3{
		X: (a.Min.X + a.Max.X) * 0.5,
		Y: (a.Min.Y + a.Max.Y) * 0.5,
		Z: (a.Min.Z + a.Max.Z) * 0.5,
	}
}

// Size returns the full (not half) extent of the box on each axis.
func (a AABB) Size() V3 {
	return V3{
		X: a.Max.X - a.Min.X,
		Y: a.Max.Y - a.Min.Y,
		Z: a.Max.Z - a.Min.Z,
	}
}
