package tilegrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlocksVelocity(t *testing.T) {
	cases := []struct {
		kind     GeometryType
		vx, vy   float64
		expected bool
	}{
		{Empty, -5, -5, false},
		{Full, 0, 0, true},
		{BlocksLeft, -1, 0, true},
		{BlocksLeft, 1, 0, false},
		{BlocksLeft, 0, 0, false},
		{BlocksRight, 1, 0, true},
		{BlocksRight, -1, 0, false},
		{BlocksUp, 0, -1, true},
		{BlocksUp, 0, 1, false},
		{BlocksDown, 0, 1, true},
		{BlocksDown, 0, -1, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.expected, c.kind.BlocksVelocity(c.vx, c.vy), "%v vx=%v vy=%v", c.kind, c.vx, c.vy)
	}
}

func TestGridOutOfBoundsIsFull(t *testing.T) {
	g := New(3, 3)
	assert.Equal(t, Full, g.At(-1, 0))
	assert.Equal(t, Full, g.At(0, -1))
	assert.Equal(t, Full, g.At(3, 0))
	assert.Equal(t, Full, g.At(0, 3))
	assert.False(t, g.InBounds(3, 0))
}

func TestGridSetGet(t *testing.T) {
	g := New(3, 3)
	g.Set(1, 1, BlocksUp)
	assert.Equal(t, BlocksUp, g.At(1, 1))
	assert.Equal(t, Empty, g.At(0, 0))

	// Out-of-bounds Set is a no-op, not a panic.
	g.Set(10, 10, Full)
	assert.False(t, g.InBounds(10, 10))
}

func TestGeometryTypeString(t *testing.T) {
	assert.Equal(t, "BLOCKS_UP", BlocksUp.String())
	assert.Equal(t, "UNKNOWN", GeometryType(99).String())
}
