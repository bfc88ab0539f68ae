// Package physics implements the tick integration step: for every
// registered entity, apply its own accelerations, apply a gravity
// impulse when affected, resolve against geometry when pushed by it, and
// advance position.
package physics

import (
	"github.com/ridgepeak/tilephysics/entity"
	"github.com/ridgepeak/tilephysics/resolver"
	"github.com/ridgepeak/tilephysics/tilegrid"
	"github.com/ridgepeak/tilephysics/vecmath"
)

// Step runs one tick's worth of integration over every entity in reg, in
// master-list insertion order. gravity is in tiles/s², terminalVelocity
// in tiles/s, dtSeconds the tick's elapsed time.
func Step(reg *entity.Registry, grid *tilegrid.Grid, gravity, terminalVelocity, dtSeconds float64) {
	for _, e := range reg.All() {
		e.ApplyAccelerations(dtSeconds)

		if e.AffectedByGravity() {
			dv := vecmath.AccelerationToImpulse(gravity, dtSeconds)
			e.ApplyGravityImpulse(dv, terminalVelocity)
		}

		if e.PushedByGeometry() {
			resolver.Resolve(e, grid, dtSeconds)
		} else {
			e.ApplySpeeds(dtSeconds)
		}
	}
}
