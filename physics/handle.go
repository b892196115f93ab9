// Copyright © 2024 Galvanized Logic Inc.

package physics

// BodyKind distinguishes the three storage pools a Handle can address.
type BodyKind uint8

const (
	KindRigid BodyKind = iota
	KindSoft
	KindFluid
)

// Handle is an opaque, stable identifier for a rigid, soft, or fluid
// body spawned into a World. Index selects the storage slot; Gen is
// bumped every time a slot is despawned and reused, so a Handle kept
// past its despawn cannot alias a later occupant of the same slot.
// Unlike the PBD engine's internal bid (a bare slice index only valid
// for one Simulate call, see body.go), a Handle stays meaningful
// across many steps and tolerates despawn/respawn churn.
type Handle struct {
	Index uint32
	Gen   uint32
	Kind  BodyKind
}

// Valid reports whether h could possibly address a live slot; it does
// not check the slot is still occupied by this generation (only World
// can check that, since generations live in its slot tables).
func (h Handle) Valid() bool { return h.Gen != 0 }

// slot is the generic generational-index bookkeeping shared by the
// rigid/soft/fluid storage pools. gen is incremented on despawn; a
// slot with alive == false is on the pool's free list.
type slot struct {
	gen   uint32
	alive bool
}
