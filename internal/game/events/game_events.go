package events

import (
	"time"

	"github.com/mitchelldurbincs/GraphChase/internal/game/core"
)

// Event types published by the engine
const (
	TypeGameStarted     = "game.started"
	TypeGameEnded       = "game.ended"
	TypeTurnStarted     = "turn.started"
	TypeTurnEnded       = "turn.ended"
	TypeUnitMoved       = "unit.moved"
	TypeUnitKilled      = "unit.killed"
	TypeUnitSkipped     = "unit.skipped"
	TypeUnitStranded    = "unit.stranded"
	TypeMoveRejected    = "move.rejected"
	TypeStateTransition = "state.transition"
)

// GameStartedEvent announces a freshly loaded board
type GameStartedEvent struct {
	Envelope
	VertexCount int
	EdgeCount   int
	UnitCount   int
	BoardWidth  int
	BoardHeight int
}

func NewGameStartedEvent(gameID string, g *core.Graph) *GameStartedEvent {
	return &GameStartedEvent{
		Envelope:    envelope(TypeGameStarted, gameID, 0),
		VertexCount: g.VertexCount(),
		EdgeCount:   g.EdgeCount(),
		UnitCount:   g.UnitCount(),
		BoardWidth:  g.W,
		BoardHeight: g.H,
	}
}

// GameEndedEvent carries the outcome. Its turn is the last resolved turn.
type GameEndedEvent struct {
	Envelope
	Outcome  string
	Duration time.Duration
}

func NewGameEndedEvent(gameID, outcome string, duration time.Duration, finalTurn int) *GameEndedEvent {
	return &GameEndedEvent{
		Envelope: envelope(TypeGameEnded, gameID, finalTurn),
		Outcome:  outcome,
		Duration: duration,
	}
}

// TurnStartedEvent fires once input for a turn has been accepted
type TurnStartedEvent struct {
	Envelope
}

func NewTurnStartedEvent(gameID string, turn int) *TurnStartedEvent {
	return &TurnStartedEvent{Envelope: envelope(TypeTurnStarted, gameID, turn)}
}

// TurnEndedEvent fires after the last enemy of a turn has acted
type TurnEndedEvent struct {
	Envelope
	UnitsMoved    int
	UnitsSkipped  int
	ProcessedTime time.Duration
}

func NewTurnEndedEvent(gameID string, turn, moved, skipped int, processedTime time.Duration) *TurnEndedEvent {
	return &TurnEndedEvent{
		Envelope:      envelope(TypeTurnEnded, gameID, turn),
		UnitsMoved:    moved,
		UnitsSkipped:  skipped,
		ProcessedTime: processedTime,
	}
}

// UnitMovedEvent reports one step along an edge. Both the vertex IDs and
// their lattice coordinates are included so renderers need not hold the graph.
type UnitMovedEvent struct {
	Envelope
	UnitID     core.UnitID
	Role       core.Role
	FromVertex core.VertexID
	ToVertex   core.VertexID
	From       core.Coordinate
	To         core.Coordinate
}

func NewUnitMovedEvent(gameID string, g *core.Graph, res core.MoveResult, turn int) *UnitMovedEvent {
	return &UnitMovedEvent{
		Envelope:   envelope(TypeUnitMoved, gameID, turn),
		UnitID:     res.Unit.ID,
		Role:       res.Unit.Role,
		FromVertex: res.From,
		ToVertex:   res.To,
		From:       g.Coord(res.From),
		To:         g.Coord(res.To),
	}
}

// UnitKilledEvent reports a capture. At is where the victim stood.
type UnitKilledEvent struct {
	Envelope
	UnitID   core.UnitID
	Role     core.Role
	KilledBy core.UnitID
	At       core.Coordinate
}

func NewUnitKilledEvent(gameID string, g *core.Graph, victim, killer *core.Unit, turn int) *UnitKilledEvent {
	return &UnitKilledEvent{
		Envelope: envelope(TypeUnitKilled, gameID, turn),
		UnitID:   victim.ID,
		Role:     victim.Role,
		KilledBy: killer.ID,
		At:       g.Coord(victim.Vertex),
	}
}

// UnitSkippedEvent reports an adjacent enemy spending its one held attack
type UnitSkippedEvent struct {
	Envelope
	UnitID core.UnitID
	At     core.Coordinate
}

func NewUnitSkippedEvent(gameID string, g *core.Graph, u *core.Unit, turn int) *UnitSkippedEvent {
	return &UnitSkippedEvent{
		Envelope: envelope(TypeUnitSkipped, gameID, turn),
		UnitID:   u.ID,
		At:       g.Coord(u.Vertex),
	}
}

// UnitStrandedEvent reports a unit with no path to any target
type UnitStrandedEvent struct {
	Envelope
	UnitID core.UnitID
	At     core.Coordinate
}

func NewUnitStrandedEvent(gameID string, g *core.Graph, u *core.Unit, turn int) *UnitStrandedEvent {
	return &UnitStrandedEvent{
		Envelope: envelope(TypeUnitStranded, gameID, turn),
		UnitID:   u.ID,
		At:       g.Coord(u.Vertex),
	}
}

// MoveRejectedEvent reports player input that failed validation. turn is
// the last resolved turn since rejected input never opens a new one.
type MoveRejectedEvent struct {
	Envelope
	From   core.VertexID
	To     core.VertexID
	Reason string
}

func NewMoveRejectedEvent(gameID string, edge core.Edge, reason error, turn int) *MoveRejectedEvent {
	return &MoveRejectedEvent{
		Envelope: envelope(TypeMoveRejected, gameID, turn),
		From:     edge.From,
		To:       edge.To,
		Reason:   reason.Error(),
	}
}

// StateTransitionEvent mirrors every phase change of the state machine
type StateTransitionEvent struct {
	Envelope
	FromPhase string
	ToPhase   string
	Reason    string
}

func NewStateTransitionEvent(gameID string, turn int, fromPhase, toPhase, reason string) *StateTransitionEvent {
	return &StateTransitionEvent{
		Envelope:  envelope(TypeStateTransition, gameID, turn),
		FromPhase: fromPhase,
		ToPhase:   toPhase,
		Reason:    reason,
	}
}
