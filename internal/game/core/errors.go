package core

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownVertex   = errors.New("vertex not on board")
	ErrEdgeNotFound    = errors.New("edge does not exist")
	ErrIllegalMove     = errors.New("illegal move")
	ErrNotPlayerVertex = errors.New("move does not start at player vertex")
	ErrNoPlayer        = errors.New("board has no player")
	ErrMultiplePlayers = errors.New("board already has a player")
	ErrVertexOccupied  = errors.New("vertex already occupied")
	ErrUnitNotOnBoard  = errors.New("unit not on board")
	ErrUnreachable     = errors.New("target unreachable")
	ErrGameOver        = errors.New("game is over")
	ErrTurnBusy        = errors.New("turn resolution in progress")
)

// MoveError records a rejected player move.
type MoveError struct {
	Edge Edge
	Err  error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("move %v -> %v: %v", e.Edge.From, e.Edge.To, e.Err)
}

func (e *MoveError) Unwrap() error { return e.Err }

// WrapMoveError wraps err with the edge that was requested. Any move error
// also satisfies errors.Is(err, ErrIllegalMove).
func WrapMoveError(edge Edge, err error) error {
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrIllegalMove) {
		err = fmt.Errorf("%w: %w", ErrIllegalMove, err)
	}
	return &MoveError{Edge: edge, Err: err}
}

// TurnError carries the turn number and the phase in which resolution failed.
type TurnError struct {
	Turn      int
	Operation string
	Err       error
}

func (e *TurnError) Error() string {
	return fmt.Sprintf("turn %d: %s: %v", e.Turn, e.Operation, e.Err)
}

func (e *TurnError) Unwrap() error { return e.Err }

// WrapTurnError wraps err with turn context
func WrapTurnError(turn int, operation string, err error) error {
	if err == nil {
		return nil
	}
	return &TurnError{Turn: turn, Operation: operation, Err: err}
}
