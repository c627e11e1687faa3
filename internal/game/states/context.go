package states

import (
	"time"

	"github.com/rs/zerolog"
)

// GameContext is the data the phase hooks read and update. The engine fills
// in the board size, turn, outcome and error before asking for transitions
// that depend on them.
type GameContext struct {
	GameID string
	Logger zerolog.Logger

	VertexCount int
	UnitCount   int
	Turn        int

	// StartTime is set on the first entry into AwaitingInput
	StartTime          time.Time
	PauseTime          time.Time
	TotalPauseDuration time.Duration

	// Outcome is "won" or "lost" once the game has ended
	Outcome string
	// Error is the failure that moved the game to PhaseError
	Error error
}

func NewGameContext(gameID string, logger zerolog.Logger) *GameContext {
	return &GameContext{
		GameID: gameID,
		Logger: logger.With().Str("game_id", gameID).Logger(),
	}
}

// HasBoard reports whether a board with at least one unit has been loaded
func (gc *GameContext) HasBoard() bool {
	return gc.VertexCount > 0 && gc.UnitCount > 0
}

// Elapsed is the wall time since the game started, paused time excluded
func (gc *GameContext) Elapsed() time.Duration {
	if gc.StartTime.IsZero() {
		return 0
	}
	return time.Since(gc.StartTime) - gc.TotalPauseDuration
}

func (gc *GameContext) clear() {
	*gc = GameContext{GameID: gc.GameID, Logger: gc.Logger}
}
