package states

import (
	"errors"
	"fmt"
	"time"
)

// State is the behaviour attached to one phase. Validate runs before the
// machine commits to a transition, Exit on the phase being left and Enter on
// the phase being entered.
type State interface {
	Phase() GamePhase
	Enter(ctx *GameContext) error
	Exit(ctx *GameContext) error
	Validate(ctx *GameContext) error
}

// hooks is a State assembled from optional functions. A nil hook succeeds.
type hooks struct {
	phase    GamePhase
	validate func(*GameContext) error
	enter    func(*GameContext) error
	exit     func(*GameContext) error
}

func (h *hooks) Phase() GamePhase { return h.phase }

func (h *hooks) Enter(ctx *GameContext) error    { return run(h.enter, ctx) }
func (h *hooks) Exit(ctx *GameContext) error     { return run(h.exit, ctx) }
func (h *hooks) Validate(ctx *GameContext) error { return run(h.validate, ctx) }

func run(fn func(*GameContext) error, ctx *GameContext) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

var (
	errNoBoard      = errors.New("cannot await input without a board")
	errNotStarted   = errors.New("cannot pause a game that hasn't started")
	errNoOutcome    = errors.New("ended state requires an outcome")
	errMissingCause = errors.New("error state requires an error in context")
)

// DefaultStates returns one State per phase
func DefaultStates() []State {
	return []State{
		NewInitializingState(),
		NewLoadingState(),
		NewAwaitingInputState(),
		NewResolvingState(),
		NewPausedState(),
		NewEndedState(),
		NewErrorState(),
		NewResetState(),
	}
}

func NewInitializingState() State {
	return &hooks{phase: PhaseInitializing}
}

// NewLoadingState logs the size of the board once loading finishes
func NewLoadingState() State {
	return &hooks{
		phase: PhaseLoading,
		enter: func(ctx *GameContext) error {
			ctx.Logger.Info().Msg("Loading board")
			return nil
		},
		exit: func(ctx *GameContext) error {
			ctx.Logger.Info().
				Int("vertices", ctx.VertexCount).
				Int("units", ctx.UnitCount).
				Msg("Board loaded")
			return nil
		},
	}
}

// NewAwaitingInputState requires a loaded board. The first entry starts the
// game clock.
func NewAwaitingInputState() State {
	return &hooks{
		phase: PhaseAwaitingInput,
		validate: func(ctx *GameContext) error {
			if !ctx.HasBoard() {
				return fmt.Errorf("%w: %d vertices, %d units", errNoBoard, ctx.VertexCount, ctx.UnitCount)
			}
			return nil
		},
		enter: func(ctx *GameContext) error {
			if ctx.StartTime.IsZero() {
				ctx.StartTime = time.Now()
				ctx.Logger.Info().Time("start_time", ctx.StartTime).Msg("Game started")
			}
			ctx.Logger.Debug().Int("turn", ctx.Turn).Msg("Awaiting player input")
			return nil
		},
	}
}

func NewResolvingState() State {
	return &hooks{
		phase: PhaseResolving,
		enter: func(ctx *GameContext) error {
			ctx.Logger.Debug().Int("turn", ctx.Turn+1).Msg("Resolving turn")
			return nil
		},
	}
}

// NewPausedState keeps paused time out of Elapsed
func NewPausedState() State {
	return &hooks{
		phase: PhasePaused,
		validate: func(ctx *GameContext) error {
			if ctx.StartTime.IsZero() {
				return errNotStarted
			}
			return nil
		},
		enter: func(ctx *GameContext) error {
			ctx.PauseTime = time.Now()
			ctx.Logger.Info().Msg("Game paused")
			return nil
		},
		exit: func(ctx *GameContext) error {
			if ctx.PauseTime.IsZero() {
				return nil
			}
			paused := time.Since(ctx.PauseTime)
			ctx.TotalPauseDuration += paused
			ctx.PauseTime = time.Time{}
			ctx.Logger.Info().
				Dur("pause_duration", paused).
				Dur("total_pause_duration", ctx.TotalPauseDuration).
				Msg("Game resumed")
			return nil
		},
	}
}

func NewEndedState() State {
	return &hooks{
		phase: PhaseEnded,
		validate: func(ctx *GameContext) error {
			if ctx.Outcome == "" {
				return errNoOutcome
			}
			return nil
		},
		enter: func(ctx *GameContext) error {
			ctx.Logger.Info().
				Str("outcome", ctx.Outcome).
				Int("turns", ctx.Turn).
				Dur("game_duration", ctx.Elapsed()).
				Msg("Game ended")
			return nil
		},
	}
}

// NewErrorState needs the failure stored in the context and clears it on exit
func NewErrorState() State {
	return &hooks{
		phase: PhaseError,
		validate: func(ctx *GameContext) error {
			if ctx.Error == nil {
				return errMissingCause
			}
			return nil
		},
		enter: func(ctx *GameContext) error {
			ctx.Logger.Error().Err(ctx.Error).Msg("Game entered error state")
			return nil
		},
		exit: func(ctx *GameContext) error {
			ctx.Error = nil
			return nil
		},
	}
}

// NewResetState wipes everything the previous game left in the context
func NewResetState() State {
	return &hooks{
		phase: PhaseReset,
		enter: func(ctx *GameContext) error {
			ctx.Logger.Info().Msg("Resetting game")
			ctx.clear()
			return nil
		},
	}
}
