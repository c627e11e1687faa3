package states

import (
	"fmt"
	"time"

	"github.com/mitchelldurbincs/GraphChase/internal/game/events"
)

const historyLimit = 1000

// Transition is one entry of the machine's history
type Transition struct {
	From      GamePhase
	To        GamePhase
	Timestamp time.Time
	Reason    string
}

// StateMachine walks a game through its phases. It is not safe for
// concurrent use; the engine drives it from a single goroutine.
type StateMachine struct {
	phase     GamePhase
	states    map[GamePhase]State
	ctx       *GameContext
	history   []Transition
	publisher events.Publisher
}

// NewStateMachine starts in PhaseInitializing with the default states
// registered. Every successful transition is published as a
// StateTransitionEvent when publisher is not nil.
func NewStateMachine(ctx *GameContext, publisher events.Publisher) *StateMachine {
	sm := &StateMachine{
		phase:     PhaseInitializing,
		states:    make(map[GamePhase]State, len(phaseNames)),
		ctx:       ctx,
		publisher: publisher,
	}
	for _, s := range DefaultStates() {
		sm.RegisterState(s)
	}
	return sm
}

// RegisterState replaces the State used for s.Phase()
func (sm *StateMachine) RegisterState(s State) {
	sm.states[s.Phase()] = s
}

func (sm *StateMachine) CurrentPhase() GamePhase { return sm.phase }

func (sm *StateMachine) GetContext() *GameContext { return sm.ctx }

// CanTransitionTo reports whether target is reachable from the current phase
func (sm *StateMachine) CanTransitionTo(target GamePhase) bool {
	return sm.phase.CanTransitionTo(target)
}

// TransitionTo moves the machine to target. The transition is refused when
// the phase graph does not allow it or the target state fails validation. An
// Exit error is logged and ignored; an Enter error leaves the machine where
// it was.
func (sm *StateMachine) TransitionTo(target GamePhase, reason string) error {
	from := sm.phase
	if !from.CanTransitionTo(target) {
		return fmt.Errorf("invalid transition from %s to %s", from, target)
	}

	next, ok := sm.states[target]
	if !ok {
		return fmt.Errorf("no state implementation for phase %s", target)
	}
	if err := next.Validate(sm.ctx); err != nil {
		return fmt.Errorf("target state validation failed: %w", err)
	}

	if cur, ok := sm.states[from]; ok {
		if err := cur.Exit(sm.ctx); err != nil {
			sm.ctx.Logger.Error().
				Err(err).
				Str("from_phase", from.String()).
				Str("to_phase", target.String()).
				Msg("Error exiting state")
		}
	}

	sm.phase = target
	if err := next.Enter(sm.ctx); err != nil {
		sm.phase = from
		return fmt.Errorf("failed to enter state %s: %w", target, err)
	}

	sm.history = append(sm.history, Transition{From: from, To: target, Timestamp: time.Now(), Reason: reason})
	if len(sm.history) > historyLimit {
		sm.history = sm.history[len(sm.history)-historyLimit:]
	}

	sm.ctx.Logger.Debug().
		Str("from_phase", from.String()).
		Str("to_phase", target.String()).
		Str("reason", reason).
		Msg("State transition completed")

	if sm.publisher != nil {
		sm.publisher.Publish(events.NewStateTransitionEvent(sm.ctx.GameID, sm.ctx.Turn, from.String(), target.String(), reason))
	}
	return nil
}

// GetHistory returns a copy of the transitions since the last Reset
func (sm *StateMachine) GetHistory() []Transition {
	return append([]Transition(nil), sm.history...)
}

// Reset takes an ended or failed game back to Initializing by way of
// PhaseReset and forgets the history.
func (sm *StateMachine) Reset() error {
	if sm.phase != PhaseReset {
		if err := sm.TransitionTo(PhaseReset, "Reset requested"); err != nil {
			return err
		}
	}
	if err := sm.TransitionTo(PhaseInitializing, "Reset complete"); err != nil {
		return err
	}
	sm.history = nil
	return nil
}
