package rules

import (
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/GraphChase/internal/game/core"
)

// Outcome is the state of the game from the player's point of view
type Outcome int

const (
	OutcomeInProgress Outcome = iota
	OutcomeWon
	OutcomeLost
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	default:
		return "in_progress"
	}
}

// WinConditionChecker handles game over detection
type WinConditionChecker struct {
	logger zerolog.Logger
}

// NewWinConditionChecker creates a new win condition checker
func NewWinConditionChecker(logger zerolog.Logger) *WinConditionChecker {
	return &WinConditionChecker{
		logger: logger.With().Str("component", "WinConditionChecker").Logger(),
	}
}

// CheckGameOver returns Lost once the player has been captured and Won once no
// enemy is left. A captured player takes precedence.
func (wc *WinConditionChecker) CheckGameOver(g *core.Graph) Outcome {
	enemies := len(g.Enemies())
	outcome := OutcomeInProgress
	switch {
	case g.Player() == nil:
		outcome = OutcomeLost
	case enemies == 0:
		outcome = OutcomeWon
	}

	wc.logger.Debug().
		Bool("player_alive", g.Player() != nil).
		Int("enemies_left", enemies).
		Str("outcome", outcome.String()).
		Msg("Game over check complete")
	return outcome
}
