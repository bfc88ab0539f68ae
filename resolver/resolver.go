// Package resolver implements the per-entity tile-push loop: candidate
// culling against the geometry grid, nearest-first ordering, swept
// resolution, then the final position integration.
package resolver

import (
	"math"

	"github.com/ridgepeak/tilephysics/entity"
	"github.com/ridgepeak/tilephysics/swept"
	"github.com/ridgepeak/tilephysics/tilegrid"
	"github.com/ridgepeak/tilephysics/vecmath"
)

// candidate is a tile coordinate awaiting swept resolution, paired with
// its squared distance from the entity's center so Resolve can select
// nearest-first without an explicit sort.
type candidate struct {
	x, y int
	dist float64
}

// Resolve runs the full push loop for one entity over one tick: cull
// candidate tiles, order them nearest-first, resolve each in order via
// swept.Against, and finally advance the entity's position. Only called
// for entities with PushedByGeometry() true.
func Resolve(e entity.Dynamic, grid *tilegrid.Grid, dtSeconds float64) {
	candidates := cull(e, grid, dtSeconds)
	order(candidates, e.Loc())

	for _, c := range candidates {
		result := swept.Against(e.Loc(), e.HalfWidth(), e.HalfHeight(), e.Speed(), dtSeconds, c.x, c.y, grid.At(c.x, c.y))
		if result.Collided {
			e.AdjustForCollision(result)
		}
	}

	e.ApplySpeeds(dtSeconds)
}

// cull returns every non-Empty tile (geometry or out-of-bounds, which
// behaves as Full) inside the entity's swept tile-coordinate AABB.
func cull(e entity.Dynamic, grid *tilegrid.Grid, dtSeconds float64) []candidate {
	origin := e.GetPotentialCollisionOrigin(dtSeconds)
	end := e.GetPotentialCollisionEnd(dtSeconds)

	ox, oy := int(origin.X), int(origin.Y)
	ex, ey := int(end.X), int(end.Y)
	if ox > ex {
		ox, ex = ex, ox
	}
	if oy > ey {
		oy, ey = ey, oy
	}

	var out []candidate
	for x := ox; x <= ex; x++ {
		for y := oy; y <= ey; y++ {
			if !grid.InBounds(x, y) || grid.At(x, y) != tilegrid.Empty {
				out = append(out, candidate{x: x, y: y})
			}
		}
	}
	return out
}

// order sorts candidates ascending by squared distance from their tile
// center to loc, ties resolved by insertion order, via a stable
// repeated-minimum scan so the nearest blocker resolves first even
// though tile centers that tie keep their cull order.
func order(candidates []candidate, loc vecmath.Vec2) {
	for i := range candidates {
		candidates[i].dist = tileDistance(candidates[i], loc)
	}
	for i := 0; i < len(candidates); i++ {
		best := i
		for j := i + 1; j < len(candidates); j++ {
			if candidates[j].dist < candidates[best].dist {
				best = j
			}
		}
		nearest := candidates[best]
		copy(candidates[i+1:best+1], candidates[i:best])
		candidates[i] = nearest
	}
}

func tileDistance(c candidate, loc vecmath.Vec2) float64 {
	center := vecmath.Vec2{X: float64(c.x) + 0.5, Y: float64(c.y) + 0.5}
	return vecmath.DistanceSquared(center, loc)
}

// collisionCheckGeometry reports whether a tile is solid against e (for
// this static query family): a tile is a hit iff it is non-Empty and e
// shifted by (xShift, yShift) has its center inside the tile's
// Minkowski-expanded box. Out-of-bounds tiles are always a hit.
func collisionCheckGeometry(e entity.Dynamic, grid *tilegrid.Grid, x, y int, xShift, yShift float64) bool {
	if !grid.InBounds(x, y) {
		return true
	}
	if grid.At(x, y) == tilegrid.Empty {
		return false
	}
	minX := float64(x) - e.HalfWidth()
	maxX := float64(x) + 1 + e.HalfWidth()
	minY := float64(y) - e.HalfHeight()
	maxY := float64(y) + 1 + e.HalfHeight()
	loc := e.Loc()
	return loc.X+xShift >= minX && loc.X+xShift <= maxX &&
		loc.Y+yShift >= minY && loc.Y+yShift <= maxY
}

// TouchingFloor reports whether e is touching a solid tile immediately
// below it.
func TouchingFloor(e entity.Dynamic, grid *tilegrid.Grid) bool {
	loc := e.Loc()
	height := 2 * e.HalfHeight()
	startX := int(math.Floor(loc.X - e.HalfWidth()))
	endX := int(math.Floor(loc.X + e.HalfWidth()))
	for x := startX; x <= endX; x++ {
		if collisionCheckGeometry(e, grid, x, int(math.Floor(loc.Y+height)), 0, 0.01) {
			return true
		}
	}
	return false
}

// TouchingCeiling reports whether e is touching a solid tile immediately
// above it.
func TouchingCeiling(e entity.Dynamic, grid *tilegrid.Grid) bool {
	loc := e.Loc()
	height := 2 * e.HalfHeight()
	startX := int(math.Floor(loc.X - e.HalfWidth()))
	endX := int(math.Floor(loc.X + e.HalfWidth()))
	for x := startX; x <= endX; x++ {
		if collisionCheckGeometry(e, grid, x, int(math.Floor(loc.Y-height)), 0, -0.01) {
			return true
		}
	}
	return false
}

// TouchingLeftWall reports whether e is touching a solid tile immediately
// to its left.
func TouchingLeftWall(e entity.Dynamic, grid *tilegrid.Grid) bool {
	loc := e.Loc()
	width := 2 * e.HalfWidth()
	startY := int(math.Floor(loc.Y - e.HalfHeight()))
	endY := int(math.Floor(loc.Y + e.HalfHeight()))
	for y := startY; y <= endY; y++ {
		if collisionCheckGeometry(e, grid, int(math.Floor(loc.X-width)), y, -0.01, 0) {
			return true
		}
	}
	return false
}

// TouchingRightWall reports whether e is touching a solid tile
// immediately to its right.
func TouchingRightWall(e entity.Dynamic, grid *tilegrid.Grid) bool {
	loc := e.Loc()
	width := 2 * e.HalfWidth()
	startY := int(math.Floor(loc.Y - e.HalfHeight()))
	endY := int(math.Floor(loc.Y + e.HalfHeight()))
	for y := startY; y <= endY; y++ {
		if collisionCheckGeometry(e, grid, int(math.Floor(loc.X+width)), y, 0.01, 0) {
			return true
		}
	}
	return false
}

// OrthoGeometryCollisionNormals returns a {x, y} pair each in {-1, 0, +1}
// summarizing adjacent-tile blockage one tile up/down/left/right of e's
// center. Unreliable for entities wider than one tile; that limitation
// is preserved, not guarded against.
func OrthoGeometryCollisionNormals(e entity.Dynamic, grid *tilegrid.Grid) vecmath.Vec2 {
	loc := e.Loc()
	var bump vecmath.Vec2
	if collisionCheckGeometry(e, grid, int(loc.X), int(loc.Y-e.HalfHeight()), 0, -0.01) {
		bump.Y = 1
	}
	if collisionCheckGeometry(e, grid, int(loc.X), int(loc.Y+e.HalfHeight()), 0, 0.01) {
		bump.Y = -1
	}
	if collisionCheckGeometry(e, grid, int(loc.X-e.HalfWidth()), int(loc.Y), -0.01, 0) {
		bump.X = 1
	}
	if collisionCheckGeometry(e, grid, int(loc.X+e.HalfWidth()), int(loc.Y), 0.01, 0) {
		bump.X = -1
	}
	return bump
}

// IsCollidingWithGeometry reports whether e's static AABB overlaps any
// non-Empty tile.
func IsCollidingWithGeometry(e entity.Dynamic, grid *tilegrid.Grid) bool {
	loc := e.Loc()
	startX := int(math.Floor(loc.X - e.HalfWidth()))
	endX := int(math.Floor(loc.X + e.HalfWidth()))
	startY := int(math.Floor(loc.Y - e.HalfHeight()))
	endY := int(math.Floor(loc.Y + e.HalfHeight()))
	for x := startX; x <= endX; x++ {
		for y := startY; y <= endY; y++ {
			if collisionCheckGeometry(e, grid, x, y, 0, 0) {
				return true
			}
		}
	}
	return false
}

// PointCollidesWithGeometry reports whether point lies inside a solid
// tile. Directional tiles count as solid here too: a point query has no
// velocity to check against a blocker's direction.
func PointCollidesWithGeometry(grid *tilegrid.Grid, point vecmath.Vec2) bool {
	x, y := int(math.Floor(point.X)), int(math.Floor(point.Y))
	return grid.At(x, y) != tilegrid.Empty
}
