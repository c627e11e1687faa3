package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/GraphChase/internal/game/core"
	"github.com/mitchelldurbincs/GraphChase/internal/game/events"
	"github.com/mitchelldurbincs/GraphChase/internal/game/processor"
	"github.com/mitchelldurbincs/GraphChase/internal/game/rules"
	"github.com/mitchelldurbincs/GraphChase/internal/game/states"
)

// ErrNotFinished is returned when restarting a game that is still being played
var ErrNotFinished = errors.New("game has not finished")

// Engine runs one chase game. It is driven from a single goroutine; the only
// concurrency guard is the turn busy gate, which rejects input while a turn is
// being resolved or the game is paused.
type Engine struct {
	gs     *GameState
	gameID string
	logger zerolog.Logger

	eventBus      *events.EventBus
	stateMachine  *states.StateMachine
	resolver      *processor.TurnResolver
	winCondition  *rules.WinConditionChecker
	legalMoves    *rules.LegalMoveCalculator
	turnProcessor *TurnProcessor

	enemyStartsWithSkip bool
	counters            counters

	// restore rebuilds the starting board for Restart
	restore func() (*core.Graph, error)
}

// start installs board as the current game and opens it for input
func (e *Engine) start(board *core.Graph) error {
	for _, u := range board.Enemies() {
		u.CanSkipAction = e.enemyStartsWithSkip
	}
	e.gs = &GameState{Board: board}
	e.counters = counters{}

	gc := e.stateMachine.GetContext()
	gc.VertexCount = board.VertexCount()
	gc.UnitCount = board.UnitCount()

	if err := e.stateMachine.TransitionTo(states.PhaseAwaitingInput, "Board loaded"); err != nil {
		e.logger.Error().Err(err).Msg("Failed to transition to AwaitingInput state")
		return fmt.Errorf("state machine initialization failed: %w", err)
	}

	e.eventBus.Publish(events.NewGameStartedEvent(e.gameID, board))

	if outcome := e.winCondition.CheckGameOver(board); outcome != rules.OutcomeInProgress {
		return e.endGame(outcome, "Board starts decided")
	}
	return nil
}

// GameID returns the identifier stamped on every event of the current game
func (e *Engine) GameID() string { return e.gameID }

// EventBus returns the bus the engine publishes on
func (e *Engine) EventBus() *events.EventBus { return e.eventBus }

// Graph returns the live board. Callers must not mutate it.
func (e *Engine) Graph() *core.Graph { return e.gs.Board }

// State returns the live game state. Callers must not mutate it.
func (e *Engine) State() *GameState { return e.gs }

// Turn returns the number of turns resolved so far
func (e *Engine) Turn() int { return e.gs.Turn }

// Phase returns the current state machine phase
func (e *Engine) Phase() states.GamePhase { return e.stateMachine.CurrentPhase() }

// History returns the state machine transitions of the current game
func (e *Engine) History() []states.Transition { return e.stateMachine.GetHistory() }

// Outcome returns InProgress until the game has been won or lost
func (e *Engine) Outcome() rules.Outcome { return e.gs.Outcome }

// IsGameOver reports whether the game has ended
func (e *Engine) IsGameOver() bool {
	return e.stateMachine.CurrentPhase() == states.PhaseEnded
}

// IsTurnBusy reports whether the engine will refuse input right now
func (e *Engine) IsTurnBusy() bool {
	return !e.stateMachine.CurrentPhase().CanReceiveActions()
}

// LegalMoves returns the edges the player may take this turn
func (e *Engine) LegalMoves() []core.Edge {
	if e.IsTurnBusy() {
		return nil
	}
	return e.legalMoves.LegalMoves(e.gs.Board)
}

// gate returns an error when the engine cannot accept input
func (e *Engine) gate(operation string) error {
	phase := e.stateMachine.CurrentPhase()
	switch {
	case phase == states.PhaseEnded:
		return core.WrapTurnError(e.gs.Turn, operation, core.ErrGameOver)
	case !phase.CanReceiveActions():
		e.logger.Debug().
			Str("current_phase", phase.String()).
			Str("operation", operation).
			Msg("Input rejected while turn is busy")
		return core.WrapTurnError(e.gs.Turn, operation, core.ErrTurnBusy)
	}
	return nil
}

// ApplyPlayerMove moves the player along edge and then lets every enemy act.
// An illegal edge is rejected with an error wrapping core.ErrIllegalMove and
// leaves the board and turn counter untouched.
func (e *Engine) ApplyPlayerMove(ctx context.Context, edge core.Edge) (TurnSummary, error) {
	if err := e.gate("player move"); err != nil {
		return TurnSummary{}, err
	}

	if err := e.legalMoves.ValidatePlayerMove(e.gs.Board, edge); err != nil {
		e.counters.rejectedMoves++
		e.logger.Info().
			Err(err).
			Int("turn", e.gs.Turn).
			Int("from", int(edge.From)).
			Int("to", int(edge.To)).
			Msg("Rejected player move")
		e.eventBus.Publish(events.NewMoveRejectedEvent(e.gameID, edge, err, e.gs.Turn))
		return TurnSummary{}, err
	}

	return e.turnProcessor.ProcessTurn(ctx, &edge)
}

// MoveTo moves the player to the neighbouring vertex at c
func (e *Engine) MoveTo(ctx context.Context, c core.Coordinate) (TurnSummary, error) {
	if err := e.gate("player move"); err != nil {
		return TurnSummary{}, err
	}
	player := e.gs.Board.Player()
	if player == nil {
		return TurnSummary{}, core.WrapTurnError(e.gs.Turn, "player move", core.ErrNoPlayer)
	}
	to, ok := e.gs.Board.Lookup(c)
	if !ok {
		to = core.NoVertex
	}
	return e.ApplyPlayerMove(ctx, core.NewEdge(player.Vertex, to))
}

// Wait resolves a turn in which the player stays put
func (e *Engine) Wait(ctx context.Context) (TurnSummary, error) {
	if err := e.gate("wait"); err != nil {
		return TurnSummary{}, err
	}
	return e.turnProcessor.ProcessTurn(ctx, nil)
}

// Pause stops the game from accepting input until Resume
func (e *Engine) Pause() error {
	return e.stateMachine.TransitionTo(states.PhasePaused, "Paused by user")
}

// Resume reopens a paused game for input
func (e *Engine) Resume() error {
	return e.stateMachine.TransitionTo(states.PhaseAwaitingInput, "Resumed by user")
}

// Restart replays the starting board of a finished or failed game under a new
// game ID.
func (e *Engine) Restart(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	phase := e.stateMachine.CurrentPhase()
	if !phase.IsTerminal() {
		return fmt.Errorf("restart in %s phase: %w", phase, ErrNotFinished)
	}

	if err := e.stateMachine.Reset(); err != nil {
		return fmt.Errorf("reset state machine: %w", err)
	}

	e.gameID = uuid.NewString()
	gc := e.stateMachine.GetContext()
	gc.GameID = e.gameID
	gc.Logger = e.logger.With().Str("game_id", e.gameID).Logger()
	e.resolver.SetEventPublisher(e.eventBus, e.gameID)

	if err := e.stateMachine.TransitionTo(states.PhaseLoading, "Restart requested"); err != nil {
		return err
	}
	board, err := e.restore()
	if err != nil {
		e.fail(err, "Board reload failed")
		return fmt.Errorf("board reload failed: %w", err)
	}

	e.logger.Info().Str("game_id", e.gameID).Msg("Game restarted")
	return e.start(board)
}

// endGame records the outcome and moves to the Ended phase
func (e *Engine) endGame(outcome rules.Outcome, reason string) error {
	e.gs.Outcome = outcome
	gc := e.stateMachine.GetContext()
	gc.Outcome = outcome.String()
	duration := gc.Elapsed()

	if err := e.stateMachine.TransitionTo(states.PhaseEnded, reason); err != nil {
		e.logger.Error().Err(err).Msg("Failed to transition to Ended state")
		return err
	}

	e.eventBus.Publish(events.NewGameEndedEvent(e.gameID, outcome.String(), duration, e.gs.Turn))
	return nil
}

// fail moves the machine to the Error phase, keeping err in the game context
func (e *Engine) fail(err error, reason string) {
	gc := e.stateMachine.GetContext()
	gc.Error = err
	if terr := e.stateMachine.TransitionTo(states.PhaseError, reason); terr != nil {
		e.logger.Error().
			Err(terr).
			AnErr("cause", err).
			Msg("Failed to transition to Error state")
	}
}
