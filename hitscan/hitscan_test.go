package hitscan

import (
	"testing"

	"github.com/ridgepeak/tilephysics/entity"
	"github.com/ridgepeak/tilephysics/entityfakes"
	"github.com/ridgepeak/tilephysics/tilegrid"
	"github.com/ridgepeak/tilephysics/vecmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityImpactFindsNearestEligibleEntity(t *testing.T) {
	reg := entity.NewRegistry()
	near := entityfakes.New(5, 0, 0.5, 0.5)
	far := entityfakes.New(9, 0, 0.5, 0.5)
	reg.Add(near, entity.Enemy)
	reg.Add(far, entity.Enemy)

	hit, hitTime, ok := EntityImpact(reg, vecmath.Vec2{X: 0, Y: 0}, vecmath.Vec2{X: 10, Y: 0}, entity.PlayerProjectile, nil)

	require.True(t, ok)
	assert.Same(t, near, hit)
	assert.True(t, hitTime >= 0 && hitTime < 1)
}

func TestEntityImpactScanTypeExcludesOwnCategory(t *testing.T) {
	reg := entity.NewRegistry()
	player := entityfakes.New(5, 0, 0.5, 0.5)
	reg.Add(player, entity.Player)

	_, _, ok := EntityImpact(reg, vecmath.Vec2{X: 0, Y: 0}, vecmath.Vec2{X: 10, Y: 0}, entity.Player, nil)

	assert.False(t, ok, "a Player-scanType ray must not hit other Player entities")
}

func TestEntityImpactEnvironmentScanHitsEverything(t *testing.T) {
	reg := entity.NewRegistry()
	player := entityfakes.New(5, 0, 0.5, 0.5)
	reg.Add(player, entity.Player)

	_, _, ok := EntityImpact(reg, vecmath.Vec2{X: 0, Y: 0}, vecmath.Vec2{X: 10, Y: 0}, entity.Environment, nil)

	assert.True(t, ok)
}

func TestEntityImpactNoHitWhenNothingInPath(t *testing.T) {
	reg := entity.NewRegistry()
	reg.Add(entityfakes.New(5, 10, 0.5, 0.5), entity.Enemy)

	_, _, ok := EntityImpact(reg, vecmath.Vec2{X: 0, Y: 0}, vecmath.Vec2{X: 10, Y: 0}, entity.Environment, nil)

	assert.False(t, ok)
}

func TestGeometryImpactHitsSolidTileAlongRay(t *testing.T) {
	grid := tilegrid.New(10, 1)
	grid.Set(5, 0, tilegrid.Full)

	offset := GeometryImpact(grid, vecmath.Vec2{X: 0.5, Y: 0.5}, vecmath.Vec2{X: 9, Y: 0})

	hitX := 0.5 + offset.X
	assert.GreaterOrEqual(t, hitX, 5.0)
	assert.Less(t, hitX, 6.0)
}

func TestGeometryImpactUnchangedWhenNoHit(t *testing.T) {
	grid := tilegrid.New(10, 1)

	dist := vecmath.Vec2{X: 9, Y: 0}
	offset := GeometryImpact(grid, vecmath.Vec2{X: 0.5, Y: 0.5}, dist)

	assert.Equal(t, dist, offset)
}

func TestGeometryImpactZeroDistanceReturnsDistance(t *testing.T) {
	dist := vecmath.Vec2{X: 0, Y: 0}
	offset := GeometryImpact(tilegrid.New(3, 3), vecmath.Vec2{X: 1, Y: 1}, dist)
	assert.Equal(t, dist, offset)
}

func TestCalculateCombinesBothQueries(t *testing.T) {
	reg := entity.NewRegistry()
	grid := tilegrid.New(10, 1)
	grid.Set(5, 0, tilegrid.Full)
	enemy := entityfakes.New(2, 0, 0.2, 0.2)
	reg.Add(enemy, entity.Enemy)

	result := Calculate(reg, grid, vecmath.Vec2{X: 0, Y: 0}, vecmath.Vec2{X: 9, Y: 0}, entity.Environment, nil)

	require.NotNil(t, result.FirstEntity)
	assert.Same(t, enemy, result.FirstEntity)
	assert.NotEqual(t, vecmath.Vec2{X: 9, Y: 0}, result.GeometryImpact, "geometry impact must still be computed independently of the entity hit")
}

func TestEntityImpactInvalidScanTypePanics(t *testing.T) {
	reg := entity.NewRegistry()
	assert.Panics(t, func() {
		EntityImpact(reg, vecmath.Vec2{}, vecmath.Vec2{X: 1}, entity.Category(0), nil)
	})
}
