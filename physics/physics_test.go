package physics

import (
	"testing"

	"github.com/ridgepeak/tilephysics/entity"
	"github.com/ridgepeak/tilephysics/entityfakes"
	"github.com/ridgepeak/tilephysics/tilegrid"
	"github.com/ridgepeak/tilephysics/vecmath"
	"github.com/stretchr/testify/assert"
)

func TestStepAppliesGravityAndRestsOnFloor(t *testing.T) {
	grid := tilegrid.New(3, 3)
	for x := 0; x < 3; x++ {
		grid.Set(x, 2, tilegrid.Full)
	}
	reg := entity.NewRegistry()
	e := entityfakes.New(1.0, 0.5, 0.4, 0.4)
	e.Gravity = true
	e.Pushed = true
	reg.Add(e, entity.Player)

	Step(reg, grid, 10, 20, 0.5)

	assert.InDelta(t, 1.6, e.Location.Y, 1e-9)
	assert.Equal(t, 0.0, e.Vel.Y)
}

func TestStepClampsToTerminalVelocity(t *testing.T) {
	grid := tilegrid.New(3, 3)
	reg := entity.NewRegistry()
	e := entityfakes.New(1.0, 0.0, 0.4, 0.4)
	e.Gravity = true
	e.Pushed = false

	reg.Add(e, entity.Environment)

	for i := 0; i < 100; i++ {
		Step(reg, grid, 50, 3, 0.1)
	}

	assert.Equal(t, 3.0, e.Vel.Y)
}

func TestStepWithoutGravitySkipsImpulse(t *testing.T) {
	grid := tilegrid.New(3, 3)
	reg := entity.NewRegistry()
	e := entityfakes.New(1.0, 1.0, 0.4, 0.4)
	e.Gravity = false
	e.Pushed = false
	reg.Add(e, entity.Environment)

	Step(reg, grid, 10, 20, 1.0)

	assert.Equal(t, 0.0, e.Vel.Y)
	assert.Equal(t, vecmath.Vec2{X: 1.0, Y: 1.0}, e.Location)
}

func TestStepIntegratesEachRegisteredEntityIndependently(t *testing.T) {
	grid := tilegrid.New(3, 3)
	reg := entity.NewRegistry()

	e1 := entityfakes.New(0, 0, 0.1, 0.1)
	e2 := entityfakes.New(0, 0, 0.1, 0.1)
	reg.Add(e1, entity.Environment)
	reg.Add(e2, entity.Environment)

	e1.Vel = vecmath.Vec2{X: 1, Y: 0}
	e2.Vel = vecmath.Vec2{X: 2, Y: 0}

	Step(reg, grid, 0, 0, 1.0)

	assert.Equal(t, 1.0, e1.Location.X)
	assert.Equal(t, 2.0, e2.Location.X)
}
