package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/GraphChase/internal/game/core"
)

// LineBoard creates an n×1 board with vertices (0,0)..(n-1,0) joined in a line
func LineBoard(n int) *core.Graph {
	g := core.NewGraph(n, 1)
	g.AddVertex(core.NewCoordinate(0, 0))
	for x := 1; x < n; x++ {
		g.Connect(core.NewCoordinate(x-1, 0), core.NewCoordinate(x, 0))
	}
	return g
}

// GridBoard creates a fully connected orthogonal lattice of width×height vertices.
// Vertex ids are assigned row by row.
func GridBoard(width, height int) *core.Graph {
	g := core.NewGraph(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.AddVertex(core.NewCoordinate(x, y))
		}
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := core.NewCoordinate(x, y)
			if x+1 < width {
				g.Connect(c, core.NewCoordinate(x+1, y))
			}
			if y+1 < height {
				g.Connect(c, core.NewCoordinate(x, y+1))
			}
		}
	}
	return g
}

// PlaceUnits puts the player at player and one enemy at each of enemies, in order
func PlaceUnits(t *testing.T, g *core.Graph, player core.Coordinate, enemies ...core.Coordinate) (*core.Unit, []*core.Unit) {
	t.Helper()
	at := func(c core.Coordinate) core.VertexID {
		id, ok := g.Lookup(c)
		require.True(t, ok, "no vertex at %v", c)
		return id
	}

	p := core.NewPlayer(at(player))
	_, err := g.AddUnit(p)
	require.NoError(t, err)

	out := make([]*core.Unit, 0, len(enemies))
	for _, c := range enemies {
		e := core.NewEnemy(at(c))
		_, err := g.AddUnit(e)
		require.NoError(t, err)
		out = append(out, e)
	}
	return p, out
}

// MustLookup returns the vertex at (x,y) or fails the test
func MustLookup(t *testing.T, g *core.Graph, x, y int) core.VertexID {
	t.Helper()
	id, ok := g.Lookup(core.NewCoordinate(x, y))
	require.True(t, ok, "no vertex at (%d,%d)", x, y)
	return id
}
