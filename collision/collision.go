// Package collision implements the categorized pairwise collision
// reporting phase that runs after motion integration: the fixed
// category-interaction matrix, geometry-overlap reports for entities not
// pushed by geometry, and the environment-vs-environment reciprocal-
// report dedup.
package collision

import (
	"github.com/ridgepeak/tilephysics/entity"
	"github.com/ridgepeak/tilephysics/resolver"
	"github.com/ridgepeak/tilephysics/tilegrid"
)

// Run executes one collision phase against the current contents of reg.
// Must be called after every pushed entity has completed motion
// integration for the tick.
func Run(reg *entity.Registry, grid *tilegrid.Grid) {
	players := reg.Category(entity.Player)
	playerProjectiles := reg.Category(entity.PlayerProjectile)
	enemies := reg.Category(entity.Enemy)
	enemyProjectiles := reg.Category(entity.EnemyProjectile)
	environment := reg.Category(entity.Environment)

	for _, p := range players {
		reportGeometryOverlap(p, grid)
		reciprocalAgainstAll(p, enemies)
		reciprocalAgainstAll(p, enemyProjectiles)
	}

	for _, e := range enemies {
		reportGeometryOverlap(e, grid)
		reciprocalAgainstAll(e, playerProjectiles)
	}

	for _, pp := range playerProjectiles {
		reportGeometryOverlap(pp, grid)
	}

	for _, ep := range enemyProjectiles {
		reportGeometryOverlap(ep, grid)
	}

	isEnvironment := make(map[entity.Dynamic]bool, len(environment))
	for _, env := range environment {
		isEnvironment[env] = true
	}

	all := reg.All()
	for _, env := range environment {
		reportGeometryOverlap(env, grid)
		for _, other := range all {
			if other == env {
				continue
			}
			if !env.IsColliding(other) {
				continue
			}
			env.MovingCollisionOccured(entity.MovingCollision{Self: env, Other: other})
			// Don't add a reciprocal event for other environment
			// entities: they will emit their own when their own
			// iteration reaches this pair.
			if !isEnvironment[other] {
				other.MovingCollisionOccured(entity.MovingCollision{Self: other, Other: env})
			}
		}
	}
}

// reportGeometryOverlap delivers a nil-Other collision report when e is
// not pushed by geometry and its static AABB overlaps the grid.
func reportGeometryOverlap(e entity.Dynamic, grid *tilegrid.Grid) {
	if e.PushedByGeometry() {
		return
	}
	if resolver.IsCollidingWithGeometry(e, grid) {
		e.MovingCollisionOccured(entity.MovingCollision{Self: e, Other: nil})
	}
}

// reciprocalAgainstAll tests self against every entity in partners,
// delivering a symmetric report to both sides of any overlapping pair.
func reciprocalAgainstAll(self entity.Dynamic, partners []entity.Dynamic) {
	for _, other := range partners {
		if !self.IsColliding(other) {
			continue
		}
		self.MovingCollisionOccured(entity.MovingCollision{Self: self, Other: other})
		other.MovingCollisionOccured(entity.MovingCollision{Self: other, Other: self})
	}
}
