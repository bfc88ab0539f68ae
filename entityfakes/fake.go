// Package entityfakes provides a hand-rolled fake satisfying
// entity.Dynamic for use in tests across this module, in the style of
// lixenwraith-vi-fighter's engine/clock_scheduler_test.go Mock* types —
// a small struct implementing a narrow interface directly, not a
// generated mock.
package entityfakes

import (
	"github.com/ridgepeak/tilephysics/entity"
	"github.com/ridgepeak/tilephysics/swept"
	"github.com/ridgepeak/tilephysics/vecmath"
)

// Fake is a minimal, fully-scriptable entity.Dynamic. Callers set the
// public fields directly; it implements the capability methods the
// way a host-owned platformer entity plausibly would (self-applied
// friction, gravity clamp, swept-collision snap) so resolver/physics/
// collision tests exercise realistic behavior, not stubs.
type Fake struct {
	Location vecmath.Vec2
	Vel      vecmath.Vec2
	HalfW    float64
	HalfH    float64

	Gravity     bool
	Pushed      bool
	Friction    float64 // tiles/s², applied by ApplyAccelerations
	Accel       vecmath.Vec2

	Collisions []entity.MovingCollision
}

func New(x, y, halfW, halfH float64) *Fake {
	return &Fake{Location: vecmath.Vec2{X: x, Y: y}, HalfW: halfW, HalfH: halfH}
}

func (f *Fake) Loc() vecmath.Vec2       { return f.Location }
func (f *Fake) Speed() vecmath.Vec2     { return f.Vel }
func (f *Fake) HalfWidth() float64      { return f.HalfW }
func (f *Fake) HalfHeight() float64     { return f.HalfH }
func (f *Fake) AffectedByGravity() bool { return f.Gravity }
func (f *Fake) PushedByGeometry() bool  { return f.Pushed }

func (f *Fake) ApplyAccelerations(dtSeconds float64) {
	if f.Accel.X != 0 {
		f.Vel.X += f.Accel.X * dtSeconds
	}
	if f.Accel.Y != 0 {
		f.Vel.Y += f.Accel.Y * dtSeconds
	}
	if f.Friction != 0 {
		f.Vel.X = vecmath.ApplyFriction(f.Vel.X, f.Friction*dtSeconds)
	}
}

func (f *Fake) ApplyGravityImpulse(dv, terminalVelocity float64) {
	f.Vel.Y += dv
	if f.Vel.Y > terminalVelocity {
		f.Vel.Y = terminalVelocity
	}
}

func (f *Fake) ApplySpeeds(dtSeconds float64) {
	f.Location = f.Location.Add(f.Vel.Scale(dtSeconds))
}

func (f *Fake) AdjustForCollision(c swept.Result) {
	if c.Normal.X != 0 {
		f.Vel.X = 0
		if c.Normal.X > 0 {
			f.Location.X = float64(c.TileX) + 1 + f.HalfW
		} else {
			f.Location.X = float64(c.TileX) - f.HalfW
		}
	}
	if c.Normal.Y != 0 {
		f.Vel.Y = 0
		if c.Normal.Y > 0 {
			f.Location.Y = float64(c.TileY) + 1 + f.HalfH
		} else {
			f.Location.Y = float64(c.TileY) - f.HalfH
		}
	}
}

func (f *Fake) GetPotentialCollisionOrigin(dtSeconds float64) vecmath.Vec2 {
	end := f.Location.Add(f.Vel.Scale(dtSeconds))
	minX := minf(f.Location.X, end.X) - f.HalfW
	minY := minf(f.Location.Y, end.Y) - f.HalfH
	return vecmath.Vec2{X: floorf(minX), Y: floorf(minY)}
}

func (f *Fake) GetPotentialCollisionEnd(dtSeconds float64) vecmath.Vec2 {
	end := f.Location.Add(f.Vel.Scale(dtSeconds))
	maxX := maxf(f.Location.X, end.X) + f.HalfW
	maxY := maxf(f.Location.Y, end.Y) + f.HalfH
	return vecmath.Vec2{X: floorf(maxX), Y: floorf(maxY)}
}

func (f *Fake) IsColliding(other entity.Dynamic) bool {
	ol := other.Loc()
	return f.Location.X-f.HalfW < ol.X+other.HalfWidth() &&
		f.Location.X+f.HalfW > ol.X-other.HalfWidth() &&
		f.Location.Y-f.HalfH < ol.Y+other.HalfHeight() &&
		f.Location.Y+f.HalfH > ol.Y-other.HalfHeight()
}

func (f *Fake) MovingCollisionOccured(c entity.MovingCollision) {
	f.Collisions = append(f.Collisions, c)
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func floorf(v float64) float64 {
	i := int(v)
	if float64(i) > v {
		i--
	}
	return float64(i)
}
