package mapgen

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/mitchelldurbincs/GraphChase/internal/game/core"
	"github.com/mitchelldurbincs/GraphChase/internal/game/pathfind"
)

// MapConfig holds configuration for board generation
type MapConfig struct {
	Width          int
	Height         int
	Enemies        int
	ExtraEdgeRatio float64 // chance of keeping each lattice edge left out of the spanning tree
	DiagonalRatio  float64 // chance of a diagonal across each lattice cell
	MinUnitSpacing int     // minimum hops between any two units
}

// DefaultMapConfig returns a sensible default configuration
func DefaultMapConfig(w, h, enemies int) MapConfig {
	return MapConfig{
		Width:          w,
		Height:         h,
		Enemies:        enemies,
		ExtraEdgeRatio: 0.3,
		DiagonalRatio:  0.1,
		MinUnitSpacing: 3,
	}
}

// Validate checks that a board can be built from c
func (c MapConfig) Validate() error {
	var errs []error
	if c.Width < 1 || c.Height < 1 {
		errs = append(errs, fmt.Errorf("board size must be positive, got %dx%d", c.Width, c.Height))
	}
	if c.Enemies < 1 {
		errs = append(errs, fmt.Errorf("need at least one enemy, got %d", c.Enemies))
	}
	if c.Width*c.Height < c.Enemies+1 {
		errs = append(errs, fmt.Errorf("%dx%d board cannot hold %d units", c.Width, c.Height, c.Enemies+1))
	}
	if c.ExtraEdgeRatio < 0 || c.ExtraEdgeRatio > 1 {
		errs = append(errs, fmt.Errorf("extra edge ratio must be in [0,1], got %v", c.ExtraEdgeRatio))
	}
	if c.DiagonalRatio < 0 || c.DiagonalRatio > 1 {
		errs = append(errs, fmt.Errorf("diagonal ratio must be in [0,1], got %v", c.DiagonalRatio))
	}
	if c.MinUnitSpacing < 1 {
		errs = append(errs, fmt.Errorf("min unit spacing must be at least 1, got %d", c.MinUnitSpacing))
	}
	return errors.Join(errs...)
}

// Generator handles board generation with deterministic RNG
type Generator struct {
	config MapConfig
	rng    *rand.Rand
}

// NewGenerator creates a new board generator
func NewGenerator(config MapConfig, rng *rand.Rand) *Generator {
	return &Generator{
		config: config,
		rng:    rng,
	}
}

// GenerateMap creates a connected lattice board with the player and enemies
// placed on it. The same seed always produces the same board.
func (g *Generator) GenerateMap() (*core.Graph, error) {
	if err := g.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid map config: %w", err)
	}

	board := core.NewGraph(g.config.Width, g.config.Height)
	for y := 0; y < g.config.Height; y++ {
		for x := 0; x < g.config.Width; x++ {
			board.AddVertex(core.NewCoordinate(x, y))
		}
	}

	g.carveSpanningTree(board)
	g.addExtraEdges(board)
	g.addDiagonals(board)

	if err := g.placeUnits(board); err != nil {
		return nil, err
	}
	return board, nil
}

// carveSpanningTree joins every vertex with a randomized depth-first walk over
// the orthogonal lattice.
func (g *Generator) carveSpanningTree(b *core.Graph) {
	visited := make([]bool, b.VertexCount())
	start := core.VertexID(g.rng.Intn(b.VertexCount()))
	stack := []core.VertexID{start}
	visited[start] = true

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		var open []core.VertexID
		for _, next := range g.latticeNeighbors(b, cur) {
			if !visited[next] {
				open = append(open, next)
			}
		}
		if len(open) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		next := open[g.rng.Intn(len(open))]
		visited[next] = true
		b.AddEdge(core.NewEdge(cur, next))
		stack = append(stack, next)
	}
}

func (g *Generator) latticeNeighbors(b *core.Graph, v core.VertexID) []core.VertexID {
	c := b.Coord(v)
	var out []core.VertexID
	for _, off := range core.OrthogonalOffsets {
		n := c.Add(off)
		if !n.IsValid(g.config.Width, g.config.Height) {
			continue
		}
		if id, ok := b.Lookup(n); ok {
			out = append(out, id)
		}
	}
	return out
}

// addExtraEdges keeps a share of the lattice edges the tree left out, so boards
// have cycles to run around.
func (g *Generator) addExtraEdges(b *core.Graph) {
	for y := 0; y < g.config.Height; y++ {
		for x := 0; x < g.config.Width; x++ {
			c := core.NewCoordinate(x, y)
			for _, off := range []core.Coordinate{{X: 1, Y: 0}, {X: 0, Y: 1}} {
				n := c.Add(off)
				if !n.IsValid(g.config.Width, g.config.Height) {
					continue
				}
				a, _ := b.Lookup(c)
				d, _ := b.Lookup(n)
				if b.HasEdge(core.NewEdge(a, d)) {
					continue
				}
				if g.rng.Float64() < g.config.ExtraEdgeRatio {
					b.AddEdge(core.NewEdge(a, d))
				}
			}
		}
	}
}

// addDiagonals puts at most one diagonal across each lattice cell so diagonals
// never cross. A downward step anchored at the cell's top corner on the
// opposite side covers either diagonal.
func (g *Generator) addDiagonals(b *core.Graph) {
	var down []core.Coordinate
	for _, off := range core.DiagonalOffsets {
		if off.Y == 1 {
			down = append(down, off)
		}
	}

	for y := 0; y+1 < g.config.Height; y++ {
		for x := 0; x+1 < g.config.Width; x++ {
			if g.rng.Float64() >= g.config.DiagonalRatio {
				continue
			}
			off := down[g.rng.Intn(len(down))]
			from := core.NewCoordinate(x, y)
			if off.X < 0 {
				from.X++
			}
			b.Connect(from, from.Add(off))
		}
	}
}

// placeUnits puts the player on a random vertex and each enemy on a random free
// vertex at least MinUnitSpacing hops from every unit already placed. When no
// such vertex turns up the enemy goes on the free vertex furthest from the
// others.
func (g *Generator) placeUnits(b *core.Graph) error {
	placed := make([]core.VertexID, 0, g.config.Enemies+1)

	place := func(role core.Role, v core.VertexID) error {
		if _, err := b.AddUnit(core.NewUnit(role, v)); err != nil {
			return fmt.Errorf("place %s: %w", role, err)
		}
		placed = append(placed, v)
		return nil
	}

	if err := place(core.RolePlayer, core.VertexID(g.rng.Intn(b.VertexCount()))); err != nil {
		return err
	}

	for i := 0; i < g.config.Enemies; i++ {
		v, ok := g.findEnemyLocation(b, placed)
		if !ok {
			return fmt.Errorf("no free vertex for enemy %d", i)
		}
		if err := place(core.RoleEnemy, v); err != nil {
			return err
		}
	}
	return nil
}

// spacing returns the fewest hops from v to any placed unit
func spacing(b *core.Graph, v core.VertexID, placed []core.VertexID) int {
	res := pathfind.ShortestPaths(b, v, placed)
	best := b.VertexCount()
	for _, d := range res.Distances {
		if d.Hops() < best {
			best = d.Hops()
		}
	}
	return best
}

func (g *Generator) findEnemyLocation(b *core.Graph, placed []core.VertexID) (core.VertexID, bool) {
	maxAttempts := b.VertexCount() // Fallback to prevent endless sampling

	for attempts := 0; attempts < maxAttempts; attempts++ {
		v := core.VertexID(g.rng.Intn(b.VertexCount()))
		if b.VertexOccupant(v) != nil {
			continue
		}
		if spacing(b, v, placed) >= g.config.MinUnitSpacing {
			return v, true
		}
	}

	// Fallback: the free vertex furthest from every placed unit, lowest id first
	best, bestSpacing := core.NoVertex, -1
	for id := 0; id < b.VertexCount(); id++ {
		v := core.VertexID(id)
		if b.VertexOccupant(v) != nil {
			continue
		}
		if s := spacing(b, v, placed); s > bestSpacing {
			best, bestSpacing = v, s
		}
	}
	return best, best != core.NoVertex
}
