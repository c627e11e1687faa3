package states

import "fmt"

// GamePhase is where a game is in its lifecycle
type GamePhase int

const (
	PhaseInitializing GamePhase = iota
	// PhaseLoading covers reading or generating the board
	PhaseLoading
	// PhaseAwaitingInput is the only phase that accepts player input
	PhaseAwaitingInput
	// PhaseResolving lasts from an accepted move until every enemy has acted
	PhaseResolving
	PhasePaused
	// PhaseEnded means the player won or was captured
	PhaseEnded
	PhaseError
	// PhaseReset leads a finished game back to PhaseInitializing
	PhaseReset
)

var phaseNames = [...]string{
	PhaseInitializing:  "Initializing",
	PhaseLoading:       "Loading",
	PhaseAwaitingInput: "AwaitingInput",
	PhaseResolving:     "Resolving",
	PhasePaused:        "Paused",
	PhaseEnded:         "Ended",
	PhaseError:         "Error",
	PhaseReset:         "Reset",
}

// transitions lists, per phase, the phases it may move to
var transitions = map[GamePhase][]GamePhase{
	PhaseInitializing:  {PhaseLoading, PhaseError},
	PhaseLoading:       {PhaseAwaitingInput, PhaseError},
	PhaseAwaitingInput: {PhaseResolving, PhasePaused, PhaseEnded, PhaseError},
	PhaseResolving:     {PhaseAwaitingInput, PhaseEnded, PhaseError},
	PhasePaused:        {PhaseAwaitingInput, PhaseEnded, PhaseError},
	PhaseEnded:         {PhaseReset},
	PhaseError:         {PhaseReset},
	PhaseReset:         {PhaseInitializing},
}

func (p GamePhase) String() string {
	if p >= 0 && int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("Unknown(%d)", int(p))
}

// IsTerminal is true for phases that only Reset can leave
func (p GamePhase) IsTerminal() bool {
	return p == PhaseEnded || p == PhaseError
}

// CanReceiveActions is false in every phase where the turn counts as busy
func (p GamePhase) CanReceiveActions() bool {
	return p == PhaseAwaitingInput
}

// AllowedTransitions returns a copy of the phases reachable from p
func (p GamePhase) AllowedTransitions() []GamePhase {
	return append([]GamePhase{}, transitions[p]...)
}

func (p GamePhase) CanTransitionTo(target GamePhase) bool {
	for _, next := range transitions[p] {
		if next == target {
			return true
		}
	}
	return false
}

// ParsePhase is the inverse of String. Unknown names map to PhaseInitializing.
func ParsePhase(s string) GamePhase {
	for i, name := range phaseNames {
		if name == s {
			return GamePhase(i)
		}
	}
	return PhaseInitializing
}
