package game

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/GraphChase/internal/game/core"
	"github.com/mitchelldurbincs/GraphChase/internal/game/events"
	"github.com/mitchelldurbincs/GraphChase/internal/game/processor"
	"github.com/mitchelldurbincs/GraphChase/internal/game/rules"
	"github.com/mitchelldurbincs/GraphChase/internal/game/states"
)

// TurnSummary describes one resolved turn
type TurnSummary struct {
	Turn int
	// PlayerMove is nil for a turn in which the player waited
	PlayerMove *core.MoveResult
	Enemies    processor.TurnResult
	Outcome    rules.Outcome
	Duration   time.Duration
}

// TurnProcessor handles the orchestration of a single turn
type TurnProcessor struct {
	engine *Engine
	logger zerolog.Logger
}

// NewTurnProcessor creates a new turn processor
func NewTurnProcessor(engine *Engine) *TurnProcessor {
	return &TurnProcessor{
		engine: engine,
		logger: engine.logger,
	}
}

// ProcessTurn applies the player's move, if any, then resolves the enemies. The
// engine stays in the Resolving phase, and therefore busy, until every unit has
// acted. Errors during resolution move the game to the Error phase.
func (tp *TurnProcessor) ProcessTurn(ctx context.Context, edge *core.Edge) (TurnSummary, error) {
	e := tp.engine

	if err := tp.checkContext(ctx, "before starting"); err != nil {
		return TurnSummary{}, err
	}

	// Claiming Resolving is the busy gate; it only succeeds from AwaitingInput
	if err := e.stateMachine.TransitionTo(states.PhaseResolving, "Turn submitted"); err != nil {
		tp.logger.Warn().
			Err(err).
			Str("current_phase", e.stateMachine.CurrentPhase().String()).
			Msg("Could not start turn")
		return TurnSummary{}, core.WrapTurnError(e.gs.Turn, "start turn", core.ErrTurnBusy)
	}

	e.gs.Turn++
	e.stateMachine.GetContext().Turn = e.gs.Turn
	turn := e.gs.Turn

	turnLogger := tp.logger.With().Int("turn", turn).Logger()
	turnLogger.Debug().Bool("player_moves", edge != nil).Msg("Starting turn")

	turnStartTime := time.Now()
	tp.publishTurnStarted(turn)

	summary := TurnSummary{Turn: turn}

	if edge != nil {
		res, err := tp.applyPlayerMove(*edge, turn, turnLogger)
		if err != nil {
			return summary, tp.abort(err)
		}
		summary.PlayerMove = &res
	}

	outcome := e.winCondition.CheckGameOver(e.gs.Board)
	if outcome == rules.OutcomeInProgress {
		if err := tp.checkContext(ctx, "before enemy turn"); err != nil {
			return summary, tp.abort(core.WrapTurnError(turn, "resolve", err))
		}
		result, err := e.resolver.ResolveTurn(ctx, e.gs.Board, turn)
		summary.Enemies = result
		if err != nil {
			return summary, tp.abort(err)
		}
		outcome = e.winCondition.CheckGameOver(e.gs.Board)
	} else {
		turnLogger.Info().Str("outcome", outcome.String()).Msg("Player move decided the game, enemies do not act")
	}

	summary.Outcome = outcome
	summary.Duration = time.Since(turnStartTime)
	e.recordTurn(summary)
	tp.publishTurnEnded(summary)

	if outcome != rules.OutcomeInProgress {
		if err := e.endGame(outcome, "Turn decided the game"); err != nil {
			return summary, err
		}
		turnLogger.Debug().Msg("Turn finished, game over")
		return summary, nil
	}

	if err := e.stateMachine.TransitionTo(states.PhaseAwaitingInput, "Turn resolved"); err != nil {
		return summary, tp.abort(err)
	}

	turnLogger.Debug().Msg("Turn finished")
	return summary, nil
}

// applyPlayerMove moves the player along a validated edge, capturing any enemy
// standing at the far end.
func (tp *TurnProcessor) applyPlayerMove(edge core.Edge, turn int, turnLogger zerolog.Logger) (core.MoveResult, error) {
	e := tp.engine
	player := e.gs.Board.Player()

	res, err := e.gs.Board.MoveUnit(player, edge.To)
	if err != nil {
		return res, core.WrapTurnError(turn, "player move", err)
	}

	turnLogger.Debug().
		Stringer("from", e.gs.Board.Coord(res.From)).
		Stringer("to", e.gs.Board.Coord(res.To)).
		Msg("Player moved")
	e.eventBus.Publish(events.NewUnitMovedEvent(e.gameID, e.gs.Board, res, turn))

	if res.Captured != nil {
		turnLogger.Info().
			Int("captured_id", int(res.Captured.ID)).
			Stringer("at", e.gs.Board.Coord(res.To)).
			Msg("Player captured an enemy")
		e.eventBus.Publish(events.NewUnitKilledEvent(e.gameID, e.gs.Board, res.Captured, player, turn))
	}
	return res, nil
}

// abort moves the game to the Error phase and returns err
func (tp *TurnProcessor) abort(err error) error {
	tp.logger.Error().Err(err).Int("turn", tp.engine.gs.Turn).Msg("Turn resolution failed")
	tp.engine.fail(err, "Turn resolution failed")
	return err
}

// checkContext checks if the context is cancelled
func (tp *TurnProcessor) checkContext(ctx context.Context, phase string) error {
	select {
	case <-ctx.Done():
		tp.logger.Warn().
			Err(ctx.Err()).
			Int("turn", tp.engine.gs.Turn).
			Str("phase", phase).
			Msg("Turn cancelled or timed out")
		return ctx.Err()
	default:
		return nil
	}
}

// publishTurnStarted publishes the turn started event
func (tp *TurnProcessor) publishTurnStarted(turn int) {
	tp.engine.eventBus.Publish(events.NewTurnStartedEvent(tp.engine.gameID, turn))
}

// publishTurnEnded publishes the turn ended event
func (tp *TurnProcessor) publishTurnEnded(summary TurnSummary) {
	moved := summary.Enemies.Moved
	if summary.PlayerMove != nil && summary.PlayerMove.Moved() {
		moved++
	}
	tp.engine.eventBus.Publish(events.NewTurnEndedEvent(
		tp.engine.gameID,
		summary.Turn,
		moved,
		summary.Enemies.Skipped,
		summary.Duration,
	))
}
