package game

import (
	"github.com/mitchelldurbincs/GraphChase/internal/game/core"
	"github.com/mitchelldurbincs/GraphChase/internal/game/rules"
)

// GameState is the mutable part of a running game
type GameState struct {
	Turn    int
	Board   *core.Graph
	Outcome rules.Outcome
}

// UnitView is a read-only description of a unit for presentation layers
type UnitView struct {
	ID     core.UnitID
	Role   core.Role
	Vertex core.VertexID
	Coord  core.Coordinate
	// CanSkipAction is the unit's current skip flag
	CanSkipAction bool
	Actions       int
}

// Units lists the live units in board order
func (gs *GameState) Units() []UnitView {
	units := gs.Board.Units()
	out := make([]UnitView, 0, len(units))
	for _, u := range units {
		out = append(out, UnitView{
			ID:            u.ID,
			Role:          u.Role,
			Vertex:        u.Vertex,
			Coord:         gs.Board.Coord(u.Vertex),
			CanSkipAction: u.CanSkipAction,
			Actions:       u.ActionCount(),
		})
	}
	return out
}
