// Package swept implements the one-tile swept AABB primitive: given a
// moving entity's box and a timestep, it reports when and with what
// surface normal the box first touches a given tile's Minkowski-expanded
// box, honoring directional (one-way) tile kinds.
package swept

import (
	"math"

	"github.com/ridgepeak/tilephysics/tilegrid"
	"github.com/ridgepeak/tilephysics/vecmath"
)

// Result reports a resolved swept collision.
type Result struct {
	// Collided is false when no collision occurred within [0, 1].
	Collided bool
	// Time is the entry time in [0, 1] at which the swept box first
	// touches the tile's Minkowski-expanded box.
	Time float64
	// Normal is the surface normal of the resolved face: one of
	// (±1,0) or (0,±1). Ties between axes resolve to the X axis.
	Normal vecmath.Vec2
	// TileX, TileY are the tile coordinates collided with.
	TileX, TileY int
}

// Against computes the swept collision of an entity centered at c with
// half-extents (hx, hy) and velocity v over dtSeconds, against the tile
// at (tileX, tileY) of the given kind. A one-way tile the entity isn't
// moving into behaves as no collision.
func Against(c vecmath.Vec2, hx, hy float64, v vecmath.Vec2, dtSeconds float64, tileX, tileY int, kind tilegrid.GeometryType) Result {
	if kind == tilegrid.Empty {
		return Result{}
	}

	displacement := v.Scale(dtSeconds)

	// Minkowski-expanded tile box: [tx-hx, tx+1+hx] x [ty-hy, ty+1+hy].
	minX := float64(tileX) - hx
	maxX := float64(tileX) + 1 + hx
	minY := float64(tileY) - hy
	maxY := float64(tileY) + 1 + hy

	txEnter, txExit, okX := slab(c.X, displacement.X, minX, maxX)
	tyEnter, tyExit, okY := slab(c.Y, displacement.Y, minY, maxY)
	if !okX || !okY {
		return Result{}
	}

	entry := math.Max(txEnter, tyEnter)
	exit := math.Min(txExit, tyExit)

	if entry >= exit || entry < 0 || entry > 1 {
		return Result{}
	}

	var normal vecmath.Vec2
	if txEnter >= tyEnter {
		// A tie between axes resolves to X.
		if displacement.X > 0 {
			normal = vecmath.Vec2{X: -1}
		} else {
			normal = vecmath.Vec2{X: 1}
		}
	} else {
		if displacement.Y > 0 {
			normal = vecmath.Vec2{Y: -1}
		} else {
			normal = vecmath.Vec2{Y: 1}
		}
	}

	// Directional tiles participate only if the entity's velocity sign
	// on the blocked axis matches the blocker direction;
	// GeometryType.BlocksVelocity already encodes that rule per-axis.
	if !kind.BlocksVelocity(v.X, v.Y) {
		return Result{}
	}

	return Result{
		Collided: true,
		Time:     entry,
		Normal:   normal,
		TileX:    tileX,
		TileY:    tileY,
	}
}

// slab computes the entry/exit time of a point at position p moving by
// displacement d through the 1D interval [min, max]. ok is false when d
// is zero and p lies outside the slab — such an axis can never produce a
// collision regardless of the other axis.
func slab(p, d, min, max float64) (enter, exit float64, ok bool) {
	if d == 0 {
		if p < min || p > max {
			return 0, 0, false
		}
		return math.Inf(-1), math.Inf(1), true
	}
	t0 := (min - p) / d
	t1 := (max - p) / d
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	return t0, t1, true
}
