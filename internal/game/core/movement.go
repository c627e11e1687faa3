package core

// MoveResult describes one applied unit move
type MoveResult struct {
	Unit     *Unit
	From     VertexID
	To       VertexID
	Captured *Unit // unit removed from To, nil if To was empty
}

// Moved is false for a move onto the unit's own vertex
func (r MoveResult) Moved() bool { return r.From != r.To }

// MoveUnit moves u onto to. Whatever unit already stands on to is captured and
// removed from the board before u takes its place. Adjacency is not checked here;
// callers validate the step.
func (g *Graph) MoveUnit(u *Unit, to VertexID) (MoveResult, error) {
	if u.IsCaptured() || !g.Contains(u.Vertex) || g.vertices[u.Vertex].occupant != u {
		return MoveResult{}, ErrUnitNotOnBoard
	}
	if !g.Contains(to) {
		return MoveResult{}, ErrUnknownVertex
	}

	res := MoveResult{Unit: u, From: u.Vertex, To: to}
	if to == u.Vertex {
		return res, nil
	}

	if victim := g.vertices[to].occupant; victim != nil {
		g.RemoveUnit(victim)
		res.Captured = victim
	}

	g.vertices[u.Vertex].occupant = nil
	g.vertices[to].occupant = u
	u.Vertex = to
	return res, nil
}
