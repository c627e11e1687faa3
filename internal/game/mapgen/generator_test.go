package mapgen

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/GraphChase/internal/game/core"
	"github.com/mitchelldurbincs/GraphChase/internal/game/pathfind"
)

// newTestRNG provides a random number generator with a fixed seed for deterministic tests.
func newTestRNG() *rand.Rand {
	return rand.New(rand.NewSource(12345))
}

func allVertices(g *core.Graph) []core.VertexID {
	out := make([]core.VertexID, g.VertexCount())
	for i := range out {
		out[i] = core.VertexID(i)
	}
	return out
}

func TestDefaultMapConfig(t *testing.T) {
	config := DefaultMapConfig(7, 5, 2)

	assert.Equal(t, 7, config.Width)
	assert.Equal(t, 5, config.Height)
	assert.Equal(t, 2, config.Enemies)
	assert.Equal(t, 0.3, config.ExtraEdgeRatio)
	assert.Equal(t, 0.1, config.DiagonalRatio)
	assert.Equal(t, 3, config.MinUnitSpacing)
	assert.NoError(t, config.Validate())
}

func TestMapConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*MapConfig)
		want   string
	}{
		{"zero width", func(c *MapConfig) { c.Width = 0 }, "board size"},
		{"no enemies", func(c *MapConfig) { c.Enemies = 0 }, "at least one enemy"},
		{"too many units", func(c *MapConfig) { c.Width, c.Height, c.Enemies = 2, 1, 2 }, "cannot hold"},
		{"extra ratio", func(c *MapConfig) { c.ExtraEdgeRatio = 1.5 }, "extra edge ratio"},
		{"diagonal ratio", func(c *MapConfig) { c.DiagonalRatio = -0.1 }, "diagonal ratio"},
		{"spacing", func(c *MapConfig) { c.MinUnitSpacing = 0 }, "spacing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultMapConfig(7, 7, 2)
			tt.mutate(&c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNewGenerator(t *testing.T) {
	config := DefaultMapConfig(10, 10, 1)
	rng := newTestRNG()
	generator := NewGenerator(config, rng)

	require.NotNil(t, generator)
	assert.Equal(t, config, generator.config)
	assert.Same(t, rng, generator.rng)
}

func TestGenerateMap(t *testing.T) {
	config := DefaultMapConfig(7, 7, 3)
	board, err := NewGenerator(config, newTestRNG()).GenerateMap()
	require.NoError(t, err)

	assert.Equal(t, 49, board.VertexCount())
	assert.GreaterOrEqual(t, board.EdgeCount(), 48, "spanning tree needs n-1 edges")
	assert.True(t, pathfind.Connected(board, allVertices(board)))

	require.NotNil(t, board.Player())
	assert.Len(t, board.Enemies(), 3)
	require.NoError(t, board.CheckOccupancy())

	// Every edge joins lattice neighbours, orthogonal or diagonal.
	for _, e := range board.Edges() {
		a, b := board.Coord(e.From), board.Coord(e.To)
		dx, dy := a.X-b.X, a.Y-b.Y
		assert.LessOrEqual(t, dx*dx+dy*dy, 2, "edge %v-%v is not between neighbours", a, b)
	}
}

func TestGenerateMapUnitSpacing(t *testing.T) {
	config := DefaultMapConfig(9, 9, 2)
	config.MinUnitSpacing = 3

	for seed := int64(1); seed <= 10; seed++ {
		board, err := NewGenerator(config, rand.New(rand.NewSource(seed))).GenerateMap()
		require.NoError(t, err)

		units := board.Units()
		for i, u := range units {
			for _, other := range units[i+1:] {
				d, err := pathfind.ShortestPath(board, u.Vertex, other.Vertex)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, d.Hops(), config.MinUnitSpacing, "seed %d", seed)
			}
		}
	}
}

func TestGenerateMapFallbackPlacement(t *testing.T) {
	// Spacing cannot be honoured on a 3x1 line with two enemies; the board must
	// still fill up.
	config := DefaultMapConfig(3, 1, 2)
	config.MinUnitSpacing = 10

	board, err := NewGenerator(config, newTestRNG()).GenerateMap()
	require.NoError(t, err)
	assert.Equal(t, 3, board.UnitCount())
	require.NoError(t, board.CheckOccupancy())
}

func TestGenerateMapDeterministic(t *testing.T) {
	config := DefaultMapConfig(8, 6, 2)
	config.DiagonalRatio = 0.5

	a, err := NewGenerator(config, rand.New(rand.NewSource(99))).GenerateMap()
	require.NoError(t, err)
	b, err := NewGenerator(config, rand.New(rand.NewSource(99))).GenerateMap()
	require.NoError(t, err)

	assert.Equal(t, a.Edges(), b.Edges())
	require.Equal(t, a.UnitCount(), b.UnitCount())
	for i, u := range a.Units() {
		assert.Equal(t, u.Vertex, b.Units()[i].Vertex)
		assert.Equal(t, u.Role, b.Units()[i].Role)
	}
}

func TestGenerateMapRatios(t *testing.T) {
	t.Run("tree only", func(t *testing.T) {
		config := DefaultMapConfig(6, 6, 1)
		config.ExtraEdgeRatio = 0
		config.DiagonalRatio = 0
		board, err := NewGenerator(config, newTestRNG()).GenerateMap()
		require.NoError(t, err)
		assert.Equal(t, 35, board.EdgeCount())
	})

	t.Run("full lattice", func(t *testing.T) {
		config := DefaultMapConfig(6, 6, 1)
		config.ExtraEdgeRatio = 1
		config.DiagonalRatio = 0
		board, err := NewGenerator(config, newTestRNG()).GenerateMap()
		require.NoError(t, err)
		assert.Equal(t, 2*6*5, board.EdgeCount())
	})

	t.Run("every cell gets a diagonal", func(t *testing.T) {
		config := DefaultMapConfig(4, 4, 1)
		config.ExtraEdgeRatio = 1
		config.DiagonalRatio = 1
		board, err := NewGenerator(config, newTestRNG()).GenerateMap()
		require.NoError(t, err)
		assert.Equal(t, 2*4*3+3*3, board.EdgeCount())
	})
}

func TestAddDiagonalsOnePerCell(t *testing.T) {
	config := DefaultMapConfig(5, 4, 1)
	config.DiagonalRatio = 1
	gen := NewGenerator(config, newTestRNG())

	board := core.NewGraph(5, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 5; x++ {
			board.AddVertex(core.NewCoordinate(x, y))
		}
	}
	gen.addDiagonals(board)

	edge := func(a, b core.Coordinate) bool {
		u, _ := board.Lookup(a)
		v, _ := board.Lookup(b)
		return board.HasEdge(core.NewEdge(u, v))
	}
	for y := 0; y+1 < 4; y++ {
		for x := 0; x+1 < 5; x++ {
			down := edge(core.NewCoordinate(x, y), core.NewCoordinate(x+1, y+1))
			up := edge(core.NewCoordinate(x+1, y), core.NewCoordinate(x, y+1))
			assert.True(t, down != up, "cell (%d,%d) needs exactly one diagonal", x, y)
		}
	}
	assert.Equal(t, 4*3, board.EdgeCount())
	assert.Equal(t, 5*4, board.VertexCount())
}

func TestPlaceUnitsNoFreeVertex(t *testing.T) {
	board := core.NewGraph(2, 1)
	board.Connect(core.NewCoordinate(0, 0), core.NewCoordinate(1, 0))

	gen := NewGenerator(DefaultMapConfig(2, 1, 2), newTestRNG())
	err := gen.placeUnits(board)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no free vertex for enemy 1")
	assert.Len(t, board.Units(), 2)
}

func TestGenerateMapInvalidConfig(t *testing.T) {
	_, err := NewGenerator(DefaultMapConfig(1, 1, 1), newTestRNG()).GenerateMap()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid map config")
}
