package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lineGraph builds (0,0)-(1,0)-...-(n-1,0)
func lineGraph(n int) *Graph {
	g := NewGraph(n, 1)
	for x := 0; x+1 < n; x++ {
		g.Connect(Coordinate{x, 0}, Coordinate{x + 1, 0})
	}
	return g
}

func TestGraph_AddVertexIsIdempotent(t *testing.T) {
	g := NewGraph(2, 2)
	a := g.AddVertex(Coordinate{1, 1})
	b := g.AddVertex(Coordinate{1, 1})
	assert.Equal(t, a, b)
	assert.Equal(t, 1, g.VertexCount())

	id, ok := g.Lookup(Coordinate{1, 1})
	assert.True(t, ok)
	assert.Equal(t, a, id)
	_, ok = g.Lookup(Coordinate{0, 0})
	assert.False(t, ok)
}

func TestGraph_AddEdge(t *testing.T) {
	g := NewGraph(3, 1)
	a := g.AddVertex(Coordinate{0, 0})
	b := g.AddVertex(Coordinate{1, 0})

	assert.True(t, g.AddEdge(NewEdge(a, b)))
	assert.False(t, g.AddEdge(NewEdge(a, b)), "duplicate edge")
	assert.False(t, g.AddEdge(NewEdge(b, a)), "reversed duplicate edge")
	assert.Equal(t, 1, g.EdgeCount())

	assert.False(t, g.AddEdge(NewEdge(a, a)), "self loop")
	assert.False(t, g.AddEdge(NewEdge(a, VertexID(9))), "unknown endpoint")
	assert.Equal(t, 1, g.EdgeCount())

	assert.Equal(t, []VertexID{b}, g.Neighbors(a))
	assert.Equal(t, []VertexID{a}, g.Neighbors(b))
	assert.Len(t, g.Vertex(a).IncidentEdges(), 1)
	assert.True(t, g.HasEdge(NewEdge(b, a)))
}

func TestGraph_ConnectAddsVertices(t *testing.T) {
	g := lineGraph(3)
	assert.Equal(t, 3, g.VertexCount())
	assert.Equal(t, 2, g.EdgeCount())
	assert.False(t, g.Connect(Coordinate{1, 0}, Coordinate{0, 0}))
	assert.Equal(t, 2, g.EdgeCount())
}

func TestEdge_Equal(t *testing.T) {
	assert.True(t, NewEdge(1, 2).Equal(NewEdge(2, 1)))
	assert.True(t, NewEdge(1, 2).Equal(NewEdge(1, 2)))
	assert.False(t, NewEdge(1, 2).Equal(NewEdge(1, 3)))
	assert.Equal(t, VertexID(2), NewEdge(1, 2).Other(1))
	assert.Equal(t, VertexID(1), NewEdge(1, 2).Other(2))
	assert.Equal(t, NewEdge(2, 1), NewEdge(1, 2).Reverse())
}

func TestGraph_AddUnit(t *testing.T) {
	g := lineGraph(3)
	player := NewPlayer(0)
	enemy := NewEnemy(2)

	added, err := g.AddUnit(player)
	require.NoError(t, err)
	assert.True(t, added)
	added, err = g.AddUnit(enemy)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = g.AddUnit(player)
	require.NoError(t, err)
	assert.False(t, added, "duplicate unit is a silent no-op")

	assert.Same(t, player, g.Player())
	assert.Same(t, player, g.VertexOccupant(0))
	assert.Same(t, enemy, g.VertexOccupant(2))
	assert.Nil(t, g.VertexOccupant(1))
	assert.Equal(t, []*Unit{enemy}, g.Enemies())
	assert.Equal(t, 2, g.UnitCount())
	assert.NotEqual(t, player.ID, enemy.ID)
	require.NoError(t, g.CheckOccupancy())
}

func TestGraph_AddUnitPreconditions(t *testing.T) {
	g := lineGraph(3)
	_, err := g.AddUnit(NewPlayer(0))
	require.NoError(t, err)

	_, err = g.AddUnit(NewPlayer(1))
	assert.ErrorIs(t, err, ErrMultiplePlayers)

	_, err = g.AddUnit(NewEnemy(0))
	assert.ErrorIs(t, err, ErrVertexOccupied)

	_, err = g.AddUnit(NewEnemy(42))
	assert.ErrorIs(t, err, ErrUnknownVertex)

	assert.Equal(t, 1, g.UnitCount())
}

func TestGraph_RemoveUnit(t *testing.T) {
	g := lineGraph(2)
	player := NewPlayer(0)
	enemy := NewEnemy(1)
	_, _ = g.AddUnit(player)
	_, _ = g.AddUnit(enemy)

	assert.True(t, g.RemoveUnit(enemy))
	assert.False(t, g.RemoveUnit(enemy))
	assert.True(t, enemy.IsCaptured())
	assert.Nil(t, g.VertexOccupant(1))
	assert.Empty(t, g.Enemies())

	assert.True(t, g.RemoveUnit(player))
	assert.Nil(t, g.Player())
	require.NoError(t, g.CheckOccupancy())
}

func TestUnit_Defaults(t *testing.T) {
	u := NewEnemy(3)
	assert.True(t, u.CanSkipAction)
	assert.False(t, u.IsPlayer())
	assert.Equal(t, 0, u.ActionCount())
	u.IncrementActionCount()
	u.IncrementActionCount()
	assert.Equal(t, 2, u.ActionCount())
	assert.Equal(t, "Enemy", RoleEnemy.String())
	assert.Equal(t, "Player", RolePlayer.String())
	assert.Equal(t, "Role(7)", Role(7).String())
}
