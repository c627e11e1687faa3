package core

import "fmt"

// VertexID is the arena index of a vertex inside its Graph.
type VertexID int

// NoVertex marks the absence of a vertex.
const NoVertex VertexID = -1

// Vertex is a board position. Adjacency and incident edges are kept in
// insertion order, which is also the tie-break order for path reconstruction.
type Vertex struct {
	ID    VertexID
	Coord Coordinate

	occupant  *Unit
	neighbors []VertexID
	edges     []Edge
}

func (v *Vertex) Neighbors() []VertexID { return v.neighbors }
func (v *Vertex) IncidentEdges() []Edge { return v.edges }
func (v *Vertex) Occupant() *Unit       { return v.occupant }
func (v *Vertex) IsOccupied() bool      { return v.occupant != nil }

func (v *Vertex) String() string { return v.Coord.String() }

func (v *Vertex) attach(e Edge) {
	v.edges = append(v.edges, e)
	v.neighbors = append(v.neighbors, e.Other(v.ID))
}

// Edge is an unordered connection between two vertices.
type Edge struct {
	From, To VertexID
}

func NewEdge(from, to VertexID) Edge { return Edge{From: from, To: to} }

// Equal reports whether both edges connect the same pair, in either direction.
func (e Edge) Equal(other Edge) bool {
	return e.key() == other.key()
}

// Reverse returns the same connection walked the other way.
func (e Edge) Reverse() Edge { return Edge{From: e.To, To: e.From} }

// Other returns the endpoint opposite to v. If v is not an endpoint, From is returned.
func (e Edge) Other(v VertexID) VertexID {
	if e.From == v {
		return e.To
	}
	return e.From
}

func (e Edge) key() Edge {
	if e.From > e.To {
		return e.Reverse()
	}
	return e
}

// Graph is the board: vertices, undirected edges and the units standing on them.
// Width and height only matter for mapping coordinates to the screen.
type Graph struct {
	W, H int

	vertices []Vertex
	index    map[Coordinate]VertexID
	edges    []Edge
	edgeSet  map[Edge]struct{}

	units      []*Unit
	player     *Unit
	nextUnitID UnitID
}

func NewGraph(w, h int) *Graph {
	return &Graph{
		W:       w,
		H:       h,
		index:   make(map[Coordinate]VertexID),
		edgeSet: make(map[Edge]struct{}),
	}
}

// AddVertex returns the vertex at c, creating it if needed.
func (g *Graph) AddVertex(c Coordinate) VertexID {
	if id, ok := g.index[c]; ok {
		return id
	}
	id := VertexID(len(g.vertices))
	g.vertices = append(g.vertices, Vertex{ID: id, Coord: c})
	g.index[c] = id
	return id
}

// Lookup finds the vertex at c
func (g *Graph) Lookup(c Coordinate) (VertexID, bool) {
	id, ok := g.index[c]
	return id, ok
}

// Vertex returns the vertex with the given id, or nil if it is not on the board
func (g *Graph) Vertex(id VertexID) *Vertex {
	if !g.Contains(id) {
		return nil
	}
	return &g.vertices[id]
}

func (g *Graph) Contains(id VertexID) bool {
	return id >= 0 && int(id) < len(g.vertices)
}

func (g *Graph) Coord(id VertexID) Coordinate {
	return g.vertices[id].Coord
}

func (g *Graph) Neighbors(id VertexID) []VertexID {
	return g.vertices[id].neighbors
}

func (g *Graph) VertexCount() int { return len(g.vertices) }
func (g *Graph) EdgeCount() int   { return len(g.edges) }

// Edges returns a copy of the edge list in insertion order
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// AddEdge inserts e and registers adjacency on both endpoints. It returns false
// without changing anything when the edge (in either direction) already exists,
// when it is a self loop, or when an endpoint is not on the board.
func (g *Graph) AddEdge(e Edge) bool {
	if !g.Contains(e.From) || !g.Contains(e.To) || e.From == e.To {
		return false
	}
	if _, dup := g.edgeSet[e.key()]; dup {
		return false
	}
	g.edgeSet[e.key()] = struct{}{}
	g.edges = append(g.edges, e)
	g.vertices[e.From].attach(e)
	g.vertices[e.To].attach(e)
	return true
}

// Connect adds both coordinates as vertices if needed and joins them.
func (g *Graph) Connect(a, b Coordinate) bool {
	return g.AddEdge(NewEdge(g.AddVertex(a), g.AddVertex(b)))
}

func (g *Graph) HasEdge(e Edge) bool {
	_, ok := g.edgeSet[e.key()]
	return ok
}

// Units returns the live units in board order
func (g *Graph) Units() []*Unit {
	out := make([]*Unit, len(g.units))
	copy(out, g.units)
	return out
}

func (g *Graph) UnitCount() int { return len(g.units) }

// Player returns the player unit, or nil once it has been captured
func (g *Graph) Player() *Unit { return g.player }

// Enemies returns the live non-player units in board order
func (g *Graph) Enemies() []*Unit {
	var out []*Unit
	for _, u := range g.units {
		if u.Role == RoleEnemy {
			out = append(out, u)
		}
	}
	return out
}

// AddUnit places u on its vertex and appends it to the unit list. Adding a unit
// that is already on the board is a no-op returning false. A second player, an
// unknown vertex or an occupied vertex is a precondition violation.
func (g *Graph) AddUnit(u *Unit) (bool, error) {
	for _, existing := range g.units {
		if existing == u {
			return false, nil
		}
	}
	if !g.Contains(u.Vertex) {
		return false, fmt.Errorf("add unit at %d: %w", u.Vertex, ErrUnknownVertex)
	}
	if u.Role == RolePlayer && g.player != nil {
		return false, fmt.Errorf("add unit at %v: %w", g.Coord(u.Vertex), ErrMultiplePlayers)
	}
	v := &g.vertices[u.Vertex]
	if v.occupant != nil {
		return false, fmt.Errorf("add unit at %v: %w", v.Coord, ErrVertexOccupied)
	}

	u.ID = g.nextUnitID
	g.nextUnitID++
	u.captured = false
	v.occupant = u
	g.units = append(g.units, u)
	if u.Role == RolePlayer {
		g.player = u
	}
	return true, nil
}

// VertexOccupant returns the unit standing on id, if any
func (g *Graph) VertexOccupant(id VertexID) *Unit {
	if !g.Contains(id) {
		return nil
	}
	return g.vertices[id].occupant
}

// RemoveUnit takes u off the board and clears its vertex. It reports whether u
// was on the board.
func (g *Graph) RemoveUnit(u *Unit) bool {
	for i, existing := range g.units {
		if existing != u {
			continue
		}
		g.units = append(g.units[:i], g.units[i+1:]...)
		if g.Contains(u.Vertex) && g.vertices[u.Vertex].occupant == u {
			g.vertices[u.Vertex].occupant = nil
		}
		if g.player == u {
			g.player = nil
		}
		u.captured = true
		return true
	}
	return false
}

// CheckOccupancy verifies that every live unit's vertex points back at it and that
// no vertex is claimed by a unit that is not live.
func (g *Graph) CheckOccupancy() error {
	claimed := make(map[VertexID]*Unit, len(g.units))
	for _, u := range g.units {
		if !g.Contains(u.Vertex) {
			return fmt.Errorf("unit %d: %w", u.ID, ErrUnknownVertex)
		}
		if other, dup := claimed[u.Vertex]; dup {
			return fmt.Errorf("units %d and %d share vertex %v", other.ID, u.ID, g.Coord(u.Vertex))
		}
		claimed[u.Vertex] = u
		if g.vertices[u.Vertex].occupant != u {
			return fmt.Errorf("vertex %v does not point at unit %d", g.Coord(u.Vertex), u.ID)
		}
	}
	for i := range g.vertices {
		v := &g.vertices[i]
		if v.occupant != nil && claimed[v.ID] != v.occupant {
			return fmt.Errorf("vertex %v occupied by unit %d which is not on the board", v.Coord, v.occupant.ID)
		}
	}
	return nil
}
