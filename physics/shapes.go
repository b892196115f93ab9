// Copyright © 2024 Galvanized Logic Inc.

package physics

import (
	"log/slog"
	"math"

	"github.com/gazed/physcore/math/lin"
)

// ShapeType enumerates the closed shape catalog a rigid body can be
// spawned with. Sphere gets collider.go's native sphere collider;
// the remaining five are built as convex hulls, since
// the ported collider package (collider.go) only ever implements
// collider_TYPE_SPHERE and collider_TYPE_CONVEX_HULL natively. This
// keeps GJK/EPA/clipping (gjk.go, epa.go, clipping.go) as the single
// narrow-phase path for every non-sphere shape instead of adding
// bespoke sphere-capsule/box-cylinder routines nothing in the pack
// demonstrates.
type ShapeType uint8

const (
	ShapeSphere ShapeType = iota
	ShapeBox
	ShapeCapsule
	ShapeCylinder
	ShapeConvexHull
	ShapeTriangleMesh
)

// ShapeSpec describes the shape a caller wants spawn_rigid to build.
// Only the fields relevant to Type need to be set.
type ShapeSpec struct {
	Type ShapeType

	Radius float64 // sphere, capsule, cylinder
	HalfX  float64 // box half-extents
	HalfY  float64
	HalfZ  float64
	Height float64 // capsule, cylinder: full height of the cylindrical section

	Vertices []lin.V3 // convex_hull, triangle_mesh
	Indices  []uint32 // convex_hull, triangle_mesh (triangle_mesh uses them as-is, 3 per face)
}

// shapeSegments is the tessellation used for capsule/cylinder hull
// approximations: coarse enough to stay cheap in GJK's support-point
// search, fine enough that the approximation error stays well under
// typical collision_margin values.
const shapeSegments = 10

// buildCollider constructs the collider(s) a ShapeSpec needs. Every shape
// except the sphere funnels through collider_convex_hull_create: box,
// capsule and cylinder from generated vertices, convex_hull and
// triangle_mesh from spec.Vertices/Indices as given.
//
// degenerate reports whether spec described an invalid dimension or an
// unrecognized ShapeType. A zero or negative radius or half-extent is
// replaced by 0.5 and an unknown type gets a 0.5-radius sphere; a zero or
// negative capsule/cylinder height and an empty vertex list are flagged
// but built as given. World.SpawnRigid counts this into Stats.ShapeDegenerateCount
// (spec §7) so a caller passing garbage dimensions doesn't fail silently.
func buildCollider(spec ShapeSpec) (colliders []collider, degenerate bool) {
	switch spec.Type {
	case ShapeSphere:
		r := spec.Radius
		if r <= 0 {
			r = 0.5
			degenerate = true
		}
		return []collider{collider_sphere_create(float32(r))}, degenerate
	case ShapeBox:
		verts, deg := boxVertices(spec.HalfX, spec.HalfY, spec.HalfZ)
		return []collider{collider_convex_hull_create(verts, boxIndices())}, deg
	case ShapeCapsule:
		verts, idxs, deg := capsuleHull(spec.Radius, spec.Height)
		return []collider{collider_convex_hull_create(verts, idxs)}, deg
	case ShapeCylinder:
		verts, idxs, deg := cylinderHull(spec.Radius, spec.Height)
		return []collider{collider_convex_hull_create(verts, idxs)}, deg
	case ShapeConvexHull, ShapeTriangleMesh:
		return []collider{collider_convex_hull_create(spec.Vertices, spec.Indices)}, len(spec.Vertices) == 0
	default:
		slog.Error("buildCollider: unsupported shape type", "type", spec.Type)
		return []collider{collider_sphere_create(0.5)}, true
	}
}

func boxVertices(hx, hy, hz float64) (verts []lin.V3, degenerate bool) {
	if hx <= 0 {
		hx = 0.5
		degenerate = true
	}
	if hy <= 0 {
		hy = 0.5
		degenerate = true
	}
	if hz <= 0 {
		hz = 0.5
		degenerate = true
	}
	return []lin.V3{
		{-hx, +hy, +hz}, {-hx, -hy, +hz}, {-hx, +hy, -hz}, {-hx, -hy, -hz},
		{+hx, +hy, +hz}, {+hx, -hy, +hz}, {+hx, +hy, -hz}, {+hx, -hy, -hz},
	}, degenerate
}

func boxIndices() []uint32 {
	return []uint32{
		4, 2, 0, 4, 6, 2,
		2, 7, 3, 2, 6, 7,
		6, 5, 7, 6, 4, 5,
		1, 7, 5, 1, 3, 7,
		0, 3, 1, 0, 2, 3,
		4, 1, 5, 4, 0, 1,
	}
}

// capsuleHull builds a convex-hull approximation of a capsule (a
// cylinder of the given height capped by two hemispheres) as a ring of
// shapeSegments vertices at the top and bottom of the cylindrical
// section plus the two pole points; collider_convex_hull_create builds
// faces/adjacency from whatever hull this produces, so it does not
// need to be an exact hemisphere tessellation to behave as a valid
// convex collider.
func capsuleHull(radius, height float64) (verts []lin.V3, idxs []uint32, degenerate bool) {
	if radius <= 0 {
		radius = 0.5
		degenerate = true
	}
	if height <= 0 {
		degenerate = true
	}
	halfHeight := height * 0.5
	verts = make([]lin.V3, 0, 2*shapeSegments+2)
	for i := 0; i < shapeSegments; i++ {
		theta := 2 * math.Pi * float64(i) / float64(shapeSegments)
		x := radius * math.Cos(theta)
		z := radius * math.Sin(theta)
		verts = append(verts, lin.V3{X: x, Y: halfHeight, Z: z})
	}
	for i := 0; i < shapeSegments; i++ {
		theta := 2 * math.Pi * float64(i) / float64(shapeSegments)
		x := radius * math.Cos(theta)
		z := radius * math.Sin(theta)
		verts = append(verts, lin.V3{X: x, Y: -halfHeight, Z: z})
	}
	verts = append(verts, lin.V3{X: 0, Y: halfHeight + radius, Z: 0}) // top pole
	verts = append(verts, lin.V3{X: 0, Y: -halfHeight - radius, Z: 0}) // bottom pole
	return verts, ringHullIndices(shapeSegments, len(verts)-2, len(verts)-1), degenerate
}

// cylinderHull builds a convex-hull approximation of a cylinder as two
// rings plus a center vertex on each cap, which ringHullIndices fans to
// its ring to close the top and bottom faces.
func cylinderHull(radius, height float64) (verts []lin.V3, idxs []uint32, degenerate bool) {
	if radius <= 0 {
		radius = 0.5
		degenerate = true
	}
	if height <= 0 {
		degenerate = true
	}
	halfHeight := height * 0.5
	verts = make([]lin.V3, 0, 2*shapeSegments)
	for i := 0; i < shapeSegments; i++ {
		theta := 2 * math.Pi * float64(i) / float64(shapeSegments)
		x := radius * math.Cos(theta)
		z := radius * math.Sin(theta)
		verts = append(verts, lin.V3{X: x, Y: halfHeight, Z: z})
	}
	for i := 0; i < shapeSegments; i++ {
		theta := 2 * math.Pi * float64(i) / float64(shapeSegments)
		x := radius * math.Cos(theta)
		z := radius * math.Sin(theta)
		verts = append(verts, lin.V3{X: x, Y: -halfHeight, Z: z})
	}
	topCenter := uint32(len(verts))
	verts = append(verts, lin.V3{X: 0, Y: halfHeight, Z: 0})
	bottomCenter := uint32(len(verts))
	verts = append(verts, lin.V3{X: 0, Y: -halfHeight, Z: 0})
	return verts, ringHullIndices(shapeSegments, int(topCenter), int(bottomCenter)), degenerate
}

// ringHullIndices fans triangles from the top/bottom pole (or cap
// center) vertices to the two rings, and bridges the rings with side
// quads split into triangles. Both capsuleHull and cylinderHull lay
// their rings out identically (ring0 = indices [0,n), ring1 = [n,2n)),
// so the same fan/bridge pattern covers both.
func ringHullIndices(n, topPole, bottomPole int) []uint32 {
	idxs := make([]uint32, 0, n*12)
	for i := 0; i < n; i++ {
		a := uint32(i)
		b := uint32((i + 1) % n)
		idxs = append(idxs, uint32(topPole), b, a) // top fan
	}
	for i := 0; i < n; i++ {
		a := uint32(n + i)
		b := uint32(n + (i+1)%n)
		idxs = append(idxs, uint32(bottomPole), a, b) // bottom fan
	}
	for i := 0; i < n; i++ {
		a0 := uint32(i)
		a1 := uint32((i + 1) % n)
		b0 := uint32(n + i)
		b1 := uint32(n + (i+1)%n)
		idxs = append(idxs, a0, b0, a1)
		idxs = append(idxs, a1, b0, b1)
	}
	return idxs
}

// body_world_aabb returns the world-space AABB the spatial index
// rebuilds from every step. Colliders never scale (see collider.go),
// and every shape already carries a bounding_sphere_radius computed at
// creation time, so a sphere-derived AABB is exact for spheres and a
// safe, cheap superset for every convex-hull shape.
func body_world_aabb(b *Body) lin.AABB {
	return lin.NewAabbPointRadius(b.world_position, b.bounding_sphere_radius)
}
