package entity

import (
	"testing"

	"github.com/ridgepeak/tilephysics/swept"
	"github.com/ridgepeak/tilephysics/vecmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryAddPreservesInsertionOrder(t *testing.T) {
	reg := NewRegistry()
	e1, e2, e3 := newDyn(), newDyn(), newDyn()
	reg.Add(e1, Player)
	reg.Add(e2, Enemy)
	reg.Add(e3, Player)

	all := reg.All()
	require.Len(t, all, 3)
	assert.Same(t, e1, all[0])
	assert.Same(t, e2, all[1])
	assert.Same(t, e3, all[2])

	players := reg.Category(Player)
	require.Len(t, players, 2)
	assert.Same(t, e1, players[0])
	assert.Same(t, e3, players[1])
}

func TestRegistryAddDefaultsInvalidCategoryToEnvironment(t *testing.T) {
	reg := NewRegistry()
	e := newDyn()
	reg.Add(e, Category(99))

	env := reg.Category(Environment)
	require.Len(t, env, 1)
	assert.Same(t, e, env[0])
}

func TestRegistryRemoveIsDeferredUntilDrain(t *testing.T) {
	reg := NewRegistry()
	e1, e2 := newDyn(), newDyn()
	h1 := reg.Add(e1, Environment)
	reg.Add(e2, Environment)

	reg.Remove(h1)
	assert.Equal(t, 2, reg.Len(), "removal must not take effect before DrainPending")
	assert.Len(t, reg.All(), 2)

	reg.DrainPending()
	assert.Equal(t, 1, reg.Len())
	all := reg.All()
	require.Len(t, all, 1)
	assert.Same(t, e2, all[0])
}

func TestRegistryHandleOf(t *testing.T) {
	reg := NewRegistry()
	e := newDyn()
	h := reg.Add(e, Player)

	got, ok := reg.HandleOf(e)
	require.True(t, ok)
	assert.Equal(t, h, got)

	_, ok = reg.HandleOf(newDyn())
	assert.False(t, ok)
}

// newDyn returns a minimal Dynamic with distinct identity, enough for
// registry bookkeeping tests that never exercise simulation behavior.
func newDyn() Dynamic { return &noopDynamic{} }

type noopDynamic struct{}

func (n *noopDynamic) Loc() vecmath.Vec2                          { return vecmath.Vec2{} }
func (n *noopDynamic) Speed() vecmath.Vec2                        { return vecmath.Vec2{} }
func (n *noopDynamic) HalfWidth() float64                         { return 0 }
func (n *noopDynamic) HalfHeight() float64                        { return 0 }
func (n *noopDynamic) AffectedByGravity() bool                    { return false }
func (n *noopDynamic) PushedByGeometry() bool                     { return false }
func (n *noopDynamic) ApplyAccelerations(dtSeconds float64)       {}
func (n *noopDynamic) ApplyGravityImpulse(dv, terminalVelocity float64) {}
func (n *noopDynamic) ApplySpeeds(dtSeconds float64)              {}
func (n *noopDynamic) AdjustForCollision(c swept.Result)          {}
func (n *noopDynamic) GetPotentialCollisionOrigin(dtSeconds float64) vecmath.Vec2 {
	return vecmath.Vec2{}
}
func (n *noopDynamic) GetPotentialCollisionEnd(dtSeconds float64) vecmath.Vec2 {
	return vecmath.Vec2{}
}
func (n *noopDynamic) IsColliding(other Dynamic) bool           { return false }
func (n *noopDynamic) MovingCollisionOccured(c MovingCollision) {}
