package rules

import "github.com/mitchelldurbincs/GraphChase/internal/game/core"

// LegalMoveCalculator lists and validates player moves
type LegalMoveCalculator struct{}

// NewLegalMoveCalculator creates a new legal move calculator
func NewLegalMoveCalculator() *LegalMoveCalculator {
	return &LegalMoveCalculator{}
}

// LegalMoves returns every edge leaving the player's vertex, oriented away from
// it, in adjacency order. It is empty once the player has been captured.
func (lmc *LegalMoveCalculator) LegalMoves(g *core.Graph) []core.Edge {
	player := g.Player()
	if player == nil {
		return nil
	}
	neighbors := g.Neighbors(player.Vertex)
	moves := make([]core.Edge, 0, len(neighbors))
	for _, n := range neighbors {
		moves = append(moves, core.NewEdge(player.Vertex, n))
	}
	return moves
}

// ValidatePlayerMove checks that edge starts at the player's vertex and exists
// on the board. Errors wrap core.ErrIllegalMove.
func (lmc *LegalMoveCalculator) ValidatePlayerMove(g *core.Graph, edge core.Edge) error {
	player := g.Player()
	if player == nil {
		return core.WrapMoveError(edge, core.ErrNoPlayer)
	}
	if edge.From != player.Vertex {
		return core.WrapMoveError(edge, core.ErrNotPlayerVertex)
	}
	if !g.HasEdge(edge) {
		return core.WrapMoveError(edge, core.ErrEdgeNotFound)
	}
	return nil
}
