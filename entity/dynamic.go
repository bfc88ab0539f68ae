package entity

import (
	"github.com/ridgepeak/tilephysics/swept"
	"github.com/ridgepeak/tilephysics/vecmath"
)

// Dynamic is the capability contract a host entity must satisfy to be
// simulated. The engine never constructs or owns the concrete type
// behind this interface; it only calls back into it during a tick.
type Dynamic interface {
	// Loc returns the entity's center position.
	Loc() vecmath.Vec2
	// Speed returns the entity's current velocity.
	Speed() vecmath.Vec2
	// HalfWidth and HalfHeight return the entity's half-extents.
	HalfWidth() float64
	HalfHeight() float64

	// AffectedByGravity reports whether PhysicsStep should apply a
	// gravity impulse to this entity each tick.
	AffectedByGravity() bool
	// PushedByGeometry reports whether GeometryResolver should adjust
	// this entity's speed/position to prevent tile penetration. If
	// false, the entity only ever receives overlap notifications.
	PushedByGeometry() bool

	// ApplyAccelerations integrates the entity's own acceleration state
	// (including any self-supplied friction) into its speed over dt
	// seconds, capped to the entity's own limits.
	ApplyAccelerations(dtSeconds float64)
	// ApplyGravityImpulse adds a vertical impulse, clamped so that
	// downward speed never exceeds terminalVelocity.
	ApplyGravityImpulse(dv, terminalVelocity float64)
	// ApplySpeeds advances the entity's location by speed * dt.
	ApplySpeeds(dtSeconds float64)

	// AdjustForCollision clamps speed along the collision's normal axis
	// to zero and snaps position so the entity exactly touches the
	// blocking face.
	AdjustForCollision(collision swept.Result)

	// GetPotentialCollisionOrigin and GetPotentialCollisionEnd return
	// the integer tile-coordinate AABB that tightly bounds the entity's
	// swept box over the interval dt, used to cull geometry candidates.
	GetPotentialCollisionOrigin(dtSeconds float64) vecmath.Vec2
	GetPotentialCollisionEnd(dtSeconds float64) vecmath.Vec2

	// IsColliding reports static AABB overlap against another entity.
	IsColliding(other Dynamic) bool

	// MovingCollisionOccured delivers a pairwise (or geometry, with a
	// nil Other) collision report.
	MovingCollisionOccured(collision MovingCollision)
}

// MovingCollision is a pairwise collision report. Other is nil when the
// report describes an overlap against static geometry rather than
// another entity.
type MovingCollision struct {
	Self  Dynamic
	Other Dynamic
}
